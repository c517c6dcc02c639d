package fixtures

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVideoEngagementDeterministic(t *testing.T) {
	a := VideoEngagement(42)
	b := VideoEngagement(42)
	assert.Equal(t, a, b)
}

func TestVideoEngagementNonNegative(t *testing.T) {
	for _, id := range []uint{0, 1, 7, 1000, 99999} {
		e := VideoEngagement(id)
		assert.GreaterOrEqual(t, e.Views, int64(0))
		assert.GreaterOrEqual(t, e.Likes, int64(0))
		assert.GreaterOrEqual(t, e.Comments, int64(0))
		assert.GreaterOrEqual(t, e.Shares, int64(0))
	}
}
