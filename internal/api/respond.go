package api

import (
	"errors"   // Sentinel matching
	"net/http" // HTTP status codes

	"creator_wallet/internal/dao"    // Persistence errors
	"creator_wallet/internal/domain" // Importing domain models
	"creator_wallet/internal/ledger" // Balance errors and conversion

	"github.com/gin-gonic/gin" // Gin web framework
)

// BalancePayload is the wire shape of a wallet balance, in major units
type BalancePayload struct {
	TK    float64 `json:"tk"`    // Spendable Spark balance
	TKI   float64 `json:"tki"`   // Hype reward balance
	Total float64 `json:"total"` // Combined balance, recomputed on the way out
}

// balancePayload converts a wallet's minor-unit balances for a response
func balancePayload(w *domain.Wallet) BalancePayload {
	b := ledger.Balance{TK: w.TK, TKI: w.TKI}
	return BalancePayload{
		TK:    ledger.MajorUnits(b.TK),      // Sparks in major units
		TKI:   ledger.MajorUnits(b.TKI),     // Hypes in major units
		Total: ledger.MajorUnits(b.Total()), // Derived total, never stored
	}
}

// respondError writes a structured error payload
func respondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, gin.H{"error": msg, "code": code})
}

// respondOperationError maps ledger and persistence errors to HTTP responses.
// Validation failures are 4xx with their sentinel code; anything else is a 500
// with the raw error string in a details field.
func respondOperationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		respondError(c, http.StatusBadRequest, "invalid-amount", "Amount must be a positive finite number")
	case errors.Is(err, ledger.ErrInsufficientBalance):
		respondError(c, http.StatusBadRequest, "insufficient-balance", "Amount exceeds available balance")
	case errors.Is(err, ledger.ErrDepositLimit):
		respondError(c, http.StatusBadRequest, "deposit-limit-exceeded", "Amount exceeds the deposit limit")
	case errors.Is(err, ledger.ErrInvalidOperation):
		respondError(c, http.StatusBadRequest, "invalid-operation", "Unsupported wallet operation")
	case errors.Is(err, dao.ErrSelfGift):
		respondError(c, http.StatusBadRequest, "invalid-request", "Cannot gift your own video")
	case errors.Is(err, dao.ErrWalletNotFound):
		respondError(c, http.StatusNotFound, "wallet-not-found", "Wallet not found")
	case errors.Is(err, dao.ErrVideoNotFound):
		respondError(c, http.StatusNotFound, "video-not-found", "Video not found")
	default:
		// Unhandled failure, surfaced generically with the raw error attached
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Operation failed", // Generic message
			"code":    "internal-error",   // Error code
			"details": err.Error(),        // Raw error string
		})
	}
}
