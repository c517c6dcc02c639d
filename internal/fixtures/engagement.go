// Package fixtures holds demo display data. Nothing here is durable state and
// nothing here may be read by a balance-affecting code path: the numbers are
// derived deterministically from the video ID so the UI has something stable
// to render, and they are merged with real counters only when building a
// response.
package fixtures

// Engagement is the canned display-side engagement block for a video
type Engagement struct {
	Views    int64 `json:"views"`    // Demo view count
	Likes    int64 `json:"likes"`    // Demo like count
	Comments int64 `json:"comments"` // Demo comment count
	Shares   int64 `json:"shares"`   // Demo share count
}

// VideoEngagement returns stable demo engagement numbers for a video.
// Deterministic in the ID so repeated requests render the same counts.
func VideoEngagement(videoID uint) Engagement {
	seed := int64(videoID)
	return Engagement{
		Views:    10_000 + seed*137%90_000, // Demo views
		Likes:    500 + seed*31%9_500,      // Demo likes
		Comments: 20 + seed*17%980,         // Demo comments
		Shares:   5 + seed*7%495,           // Demo shares
	}
}
