package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"creator_wallet/internal/dao"
	"creator_wallet/internal/domain"
	"creator_wallet/internal/ledger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalancePayload(t *testing.T) {
	wallet := &domain.Wallet{TK: 10_000, TKI: 400}
	payload := balancePayload(wallet)

	assert.Equal(t, 100.0, payload.TK)
	assert.Equal(t, 4.0, payload.TKI)
	assert.Equal(t, 104.0, payload.Total)
}

func TestBalancePayloadJSONRoundTrip(t *testing.T) {
	wallets := []*domain.Wallet{
		{TK: 0, TKI: 0},
		{TK: 10_400, TKI: 0},
		{TK: 4999, TKI: 99},
		{TK: 123_456, TKI: 700},
	}
	for _, w := range wallets {
		payload := balancePayload(w)

		data, err := json.Marshal(payload)
		require.NoError(t, err)

		var got BalancePayload
		require.NoError(t, json.Unmarshal(data, &got))

		assert.Equal(t, payload.TK, got.TK)
		assert.Equal(t, payload.TKI, got.TKI)
		// the recomputed total matches the serialized one exactly
		assert.Equal(t, ledger.MajorUnits(w.TK+w.TKI), got.Total)
	}
}

func TestRespondOperationError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid amount", ledger.ErrInvalidAmount, http.StatusBadRequest, "invalid-amount"},
		{"insufficient balance", ledger.ErrInsufficientBalance, http.StatusBadRequest, "insufficient-balance"},
		{"deposit limit", ledger.ErrDepositLimit, http.StatusBadRequest, "deposit-limit-exceeded"},
		{"invalid operation", ledger.ErrInvalidOperation, http.StatusBadRequest, "invalid-operation"},
		{"self gift", dao.ErrSelfGift, http.StatusBadRequest, "invalid-request"},
		{"wallet not found", dao.ErrWalletNotFound, http.StatusNotFound, "wallet-not-found"},
		{"video not found", dao.ErrVideoNotFound, http.StatusNotFound, "video-not-found"},
		{"unhandled", errors.New("db exploded"), http.StatusInternalServerError, "internal-error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondOperationError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["code"])
			if tt.wantStatus == http.StatusInternalServerError {
				// 500s carry the raw error string in a details field
				assert.Equal(t, "db exploded", body["details"])
			}
		})
	}
}
