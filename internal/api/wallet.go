package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Time durations

	"creator_wallet/internal/dao"    // Wallet persistence
	"creator_wallet/internal/domain" // Importing domain models
	"creator_wallet/internal/ledger" // Balance state machine
	"creator_wallet/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// BalanceUpdateRequest is the body of a PUT balance request
type BalanceUpdateRequest struct {
	Amount    float64 `json:"amount" binding:"required"`    // Amount in major units
	Operation string  `json:"operation" binding:"required"` // Operation name
}

// txTypeFor maps a wallet operation to its transaction log type
func txTypeFor(op ledger.Operation) string {
	switch op {
	case ledger.OpAdd:
		return domain.TxTypeDeposit // Funds added
	case ledger.OpSubtract:
		return domain.TxTypeSpend // Sparks spent
	case ledger.OpWithdraw:
		return domain.TxTypeWithdraw // Balance withdrawn
	case ledger.OpAddEarnings:
		return domain.TxTypeEarnings // Earnings credited
	default:
		return string(op)
	}
}

// GetUserBalanceHandler returns the authenticated user's balance
func GetUserBalanceHandler(walletDAO *dao.WalletDAO, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			respondError(c, http.StatusUnauthorized, "unauthorized", "Unauthorized")
			return
		}
		ctx := context.Background()                       // Context for Redis operations
		cacheKey := utils.WalletCacheKey(userID.(uint))   // Cache key for the balance
		var cached BalancePayload                         // Cached balance payload
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached) // Try the cache first
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"balance": cached, "cached": true})
			return
		}
		// On a miss, load (lazily creating) the wallet
		wallet, err := walletDAO.GetOrCreate(userID.(uint))
		if err != nil {
			respondOperationError(c, err) // Surface the failure
			return
		}
		payload := balancePayload(wallet)                               // Convert to major units
		_ = utils.SetCache(ctx, rdb, cacheKey, payload, 60*time.Second) // Cache for 60 seconds
		c.JSON(http.StatusOK, gin.H{"balance": payload, "cached": false})
	}
}

// UpdateUserBalanceHandler applies add, subtract or withdraw to the
// authenticated user's wallet
func UpdateUserBalanceHandler(walletDAO *dao.WalletDAO, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			respondError(c, http.StatusUnauthorized, "unauthorized", "Unauthorized")
			return
		}
		var req BalanceUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			respondError(c, http.StatusBadRequest, "invalid-request", "Invalid request")
			return
		}
		op := ledger.Operation(req.Operation) // Requested operation
		// User wallets accept add, subtract and withdraw only
		if op != ledger.OpAdd && op != ledger.OpSubtract && op != ledger.OpWithdraw {
			respondError(c, http.StatusBadRequest, "invalid-operation", "Operation must be add, subtract or withdraw")
			return
		}
		// Convert the amount to minor units at the boundary
		amount, err := ledger.ParseAmount(req.Amount)
		if err != nil {
			respondOperationError(c, err)
			return
		}
		// Apply through the single authoritative mutation path
		wallet, record, err := walletDAO.Mutate(userID.(uint), op, amount, txTypeFor(op))
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":   userID,        // User ID
				"operation": req.Operation, // Requested operation
				"amount":    req.Amount,    // Requested amount
				"error":     err.Error(),   // Error message
			}).Error("Balance update failed") // Log the failure
			respondOperationError(c, err)
			return
		}
		// Log the successful mutation
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,                          // User ID
			"operation": req.Operation,                   // Applied operation
			"amount":    req.Amount,                      // Applied amount
			"reference": record.Reference,                // Log row reference
			"timestamp": time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Balance updated")
		// Invalidate the balance and history cache
		utils.InvalidateWalletCache(context.Background(), rdb, userID.(uint))
		// Return the updated balance
		c.JSON(http.StatusOK, gin.H{
			"message":   "Balance updated",       // Success message
			"balance":   balancePayload(wallet),  // Updated balance in major units
			"reference": record.Reference,        // Transaction reference
		})
	}
}

// GetCreatorBalanceHandler returns a creator's balance and cumulative counters
func GetCreatorBalanceHandler(walletDAO *dao.WalletDAO, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			respondError(c, http.StatusUnauthorized, "unauthorized", "Unauthorized")
			return
		}
		// Counters make the creator payload unsuitable for the user cache entry,
		// so it is always read through
		wallet, err := walletDAO.GetOrCreate(userID.(uint))
		if err != nil {
			respondOperationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"balance":         balancePayload(wallet),                  // Balance in major units
			"total_earnings":  ledger.MajorUnits(wallet.TotalEarnings),  // Cumulative earnings
			"total_withdrawn": ledger.MajorUnits(wallet.TotalWithdrawn), // Cumulative withdrawals
		})
	}
}

// UpdateCreatorBalanceHandler applies add_earnings or withdraw to a creator's
// wallet
func UpdateCreatorBalanceHandler(walletDAO *dao.WalletDAO, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			respondError(c, http.StatusUnauthorized, "unauthorized", "Unauthorized")
			return
		}
		var req BalanceUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			respondError(c, http.StatusBadRequest, "invalid-request", "Invalid request")
			return
		}
		op := ledger.Operation(req.Operation) // Requested operation
		// Creator wallets accept add_earnings and withdraw only
		if op != ledger.OpAddEarnings && op != ledger.OpWithdraw {
			respondError(c, http.StatusBadRequest, "invalid-operation", "Operation must be add_earnings or withdraw")
			return
		}
		// Convert the amount to minor units at the boundary
		amount, err := ledger.ParseAmount(req.Amount)
		if err != nil {
			respondOperationError(c, err)
			return
		}
		// Apply through the single authoritative mutation path
		wallet, record, err := walletDAO.Mutate(userID.(uint), op, amount, txTypeFor(op))
		if err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"creator_id": userID,        // Creator ID
				"operation":  req.Operation, // Requested operation
				"amount":     req.Amount,    // Requested amount
				"error":      err.Error(),   // Error message
			}).Error("Creator balance update failed")
			respondOperationError(c, err)
			return
		}
		// Log the successful mutation
		logrus.WithFields(logrus.Fields{
			"creator_id": userID,                          // Creator ID
			"operation":  req.Operation,                   // Applied operation
			"amount":     req.Amount,                      // Applied amount
			"reference":  record.Reference,                // Log row reference
			"timestamp":  time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Creator balance updated")
		// Invalidate the balance and history cache
		utils.InvalidateWalletCache(context.Background(), rdb, userID.(uint))
		// Return the updated balance and counters
		c.JSON(http.StatusOK, gin.H{
			"message":         "Balance updated",                        // Success message
			"balance":         balancePayload(wallet),                   // Updated balance
			"total_earnings":  ledger.MajorUnits(wallet.TotalEarnings),  // Cumulative earnings
			"total_withdrawn": ledger.MajorUnits(wallet.TotalWithdrawn), // Cumulative withdrawals
			"reference":       record.Reference,                         // Transaction reference
		})
	}
}
