package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Time durations

	"creator_wallet/internal/dao"    // Wallet persistence
	"creator_wallet/internal/ledger" // Amount conversion
	"creator_wallet/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// GiftRequest represents a token transfer to a video's creator
type GiftRequest struct {
	VideoID uint    `json:"video_id" binding:"required"` // Target video
	Amount  float64 `json:"amount" binding:"required"`   // Gift amount in major units
}

// GiftHandler moves Sparks from the authenticated user to a video's creator.
// The debit, the video counter credit, the creator's earnings credit and the
// log row commit together or not at all.
func GiftHandler(walletDAO *dao.WalletDAO, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			respondError(c, http.StatusUnauthorized, "unauthorized", "Unauthorized")
			return
		}
		var req GiftRequest // Bind JSON request to struct
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
		// Atomic transfer across both wallets and the video counter
		result, err := walletDAO.Gift(userID.(uint), req.VideoID, amount)
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"from_user_id": userID,      // Sender user ID
				"video_id":     req.VideoID, // Gifted video
				"amount":       req.Amount,  // Gift amount
				"error":        err.Error(), // Error message
			}).Error("Gift failed") // Log gift failure
			respondOperationError(c, err)
			return
		}
		// Log successful gift
		logrus.WithFields(logrus.Fields{
			"from_user_id": userID,                          // Sender user ID
			"to_user_id":   result.CreatorID,                // Recipient creator ID
			"video_id":     req.VideoID,                     // Gifted video
			"amount":       req.Amount,                      // Gift amount
			"reference":    result.Record.Reference,         // Log row reference
			"timestamp":    time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Gift transaction")
		// Invalidate balance and history cache for both parties
		ctx := context.Background()
		utils.InvalidateWalletCache(ctx, rdb, userID.(uint))
		utils.InvalidateWalletCache(ctx, rdb, result.CreatorID)
		// The gifted video's earned counter changed, so cached feed pages are stale
		utils.InvalidateFeedCache(ctx, rdb)
		// Return the sender's updated balance
		c.JSON(http.StatusOK, gin.H{
			"message":   "Gift sent",                          // Success message
			"balance":   balancePayload(result.SenderWallet),  // Sender's balance
			"reference": result.Record.Reference,              // Transaction reference
		})
	}
}
