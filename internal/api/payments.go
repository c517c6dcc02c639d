package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Time durations

	"creator_wallet/internal/dao"      // Wallet persistence
	"creator_wallet/internal/domain"   // Importing domain models
	"creator_wallet/internal/ledger"   // Amount conversion
	"creator_wallet/internal/payments" // Payment provider simulator
	"creator_wallet/internal/utils"    // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// PayoutRequest is the body of a payout request
type PayoutRequest struct {
	Amount float64 `json:"amount" binding:"required"` // Payout amount in major units
}

// PayoutHandler withdraws from the caller's wallet and routes the payout
// through the simulated payment provider for the requested method family.
// The wallet debit is real and durable; the provider leg is a mock.
func PayoutHandler(walletDAO *dao.WalletDAO, sim *payments.Simulator, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			respondError(c, http.StatusUnauthorized, "unauthorized", "Unauthorized")
			return
		}
		method := c.Param("method") // Payment-method family from the path
		// Reject methods outside the four supported families
		if !sim.Supported(method) {
			respondError(c, http.StatusBadRequest, "unsupported-method", "Unsupported payment method")
			return
		}
		var req PayoutRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			respondError(c, http.StatusBadRequest, "invalid-request", "Invalid request")
			return
		}
		// Convert the amount to minor units at the boundary
		amount, err := ledger.ParseAmount(req.Amount)
		if err != nil {
			respondOperationError(c, err)
			return
		}
		// Debit the wallet first; a payout only simulates its provider leg
		wallet, record, err := walletDAO.Mutate(userID.(uint), ledger.OpWithdraw, amount, domain.TxTypePayout)
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"method":  method,      // Payment method
				"amount":  req.Amount,  // Requested amount
				"error":   err.Error(), // Error message
			}).Error("Payout failed") // Log payout failure
			respondOperationError(c, err)
			return
		}
		// Invalidate the balance and history cache after the debit
		utils.InvalidateWalletCache(context.Background(), rdb, userID.(uint))
		// Run the canned provider flow; respects request cancellation
		receipt, err := sim.Process(c.Request.Context(), method, amount)
		if err != nil {
			// The debit is already durable; surface the provider failure with
			// the transaction reference so the payout can be reconciled
			logrus.WithFields(logrus.Fields{
				"user_id":   userID,           // User ID
				"method":    method,           // Payment method
				"reference": record.Reference, // Debit reference
				"error":     err.Error(),      // Error message
			}).Error("Payment provider failed after debit")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Payout provider failed", // Generic message
				"code":      "provider-error",         // Error code
				"details":   err.Error(),              // Raw error string
				"reference": record.Reference,         // Debit reference for reconciliation
			})
			return
		}
		// Log the successful payout
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,                          // User ID
			"method":    method,                          // Payment method
			"amount":    req.Amount,                      // Paid amount
			"reference": record.Reference,                // Debit reference
			"provider":  receipt.Provider,                // Provider display name
			"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Payout completed")
		// Return the receipt and the updated balance
		c.JSON(http.StatusOK, gin.H{
			"message":   "Payout completed",     // Success message
			"receipt":   receipt,                // Canned provider receipt
			"balance":   balancePayload(wallet), // Updated balance
			"reference": record.Reference,       // Debit reference
		})
	}
}
