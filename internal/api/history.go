package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"creator_wallet/internal/dao"    // Wallet persistence
	"creator_wallet/internal/domain" // Importing domain models
	"creator_wallet/internal/ledger" // Amount conversion
	"creator_wallet/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// TransactionResponse is the wire shape of a log row, amounts in major units
type TransactionResponse struct {
	Reference string  `json:"reference"`          // Unique reference
	Type      string  `json:"type"`               // Transaction type
	Direction string  `json:"direction"`          // in or out, relative to the caller's wallet
	Amount    float64 `json:"amount"`             // Moved amount in major units
	Rebate    float64 `json:"rebate"`             // Rebate in major units
	VideoID   *uint   `json:"video_id,omitempty"` // Gifted video, gifts only
	CreatedAt int64   `json:"created_at"`         // Creation timestamp in milliseconds
}

// GetTransactionHistoryHandler returns the authenticated user's transaction
// log, paginated and cached
func GetTransactionHistoryHandler(db *gorm.DB, walletDAO *dao.WalletDAO, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			respondError(c, http.StatusUnauthorized, "unauthorized", "Unauthorized")
			return
		}
		// Load (lazily creating) the wallet to resolve its ID
		wallet, err := walletDAO.GetOrCreate(userID.(uint))
		if err != nil {
			respondOperationError(c, err)
			return
		}
		page := 1      // Default page
		pageSize := 20 // Default page size
		// If page exists in query
		if p := c.Query("page"); p != "" {
			// Convert page to integer
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// If page_size exists in query
		if ps := c.Query("page_size"); ps != "" {
			// Convert page_size to integer
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size if valid
			}
		}
		offset := (page - 1) * pageSize // Calculate offset
		// Redis cache key
		cacheKey := utils.TxHistoryCacheKey(userID.(uint), page, pageSize)
		ctx := context.Background() // Context for Redis operations
		var cached struct {
			Transactions []TransactionResponse `json:"transactions"` // List of transactions
			Page         int                   `json:"page"`         // Current page
			PageSize     int                   `json:"page_size"`    // Page size
			Total        int64                 `json:"total"`        // Total transactions
			TotalPages   int                   `json:"total_pages"`  // Total pages
		}
		// Try to get from cache
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		// If found in cache, return it
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"transactions": cached.Transactions, // Cached transactions
				"page":         cached.Page,         // Current page
				"page_size":    cached.PageSize,     // Page size
				"total":        cached.Total,        // Total transactions
				"total_pages":  cached.TotalPages,   // Total pages
				"cached":       true,
			})
			return
		}
		// Optional filter by transaction type
		query := db.Model(&domain.Transaction{}).
			Where("from_wallet_id = ? OR to_wallet_id = ?", wallet.ID, wallet.ID)
		if txType := c.Query("type"); txType != "" {
			query = query.Where("type = ?", txType) // Filter by transaction type
		}
		var total int64 // Total count of transactions
		// Count total transactions for pagination
		if err := query.Count(&total).Error; err != nil {
			// If counting fails, return error
			respondError(c, http.StatusInternalServerError, "internal-error", "Failed to count transactions")
			return
		}
		var transactions []domain.Transaction // Slice to hold transactions
		// Fetch paginated transactions
		if err := query.
			Order("created_at desc").
			Offset(offset).
			Limit(pageSize).
			Find(&transactions).Error; err != nil {
			// If fetching fails, return error
			respondError(c, http.StatusInternalServerError, "internal-error", "Failed to fetch transactions")
			return
		}
		// Map rows to the wire shape, converting minor units at the boundary
		resp := make([]TransactionResponse, len(transactions))
		for i, t := range transactions {
			direction := "in" // Credits point at this wallet
			if t.FromWalletID != nil && *t.FromWalletID == wallet.ID {
				direction = "out" // Debits point away from it
			}
			resp[i] = TransactionResponse{
				Reference: t.Reference,                  // Unique reference
				Type:      t.Type,                       // Transaction type
				Direction: direction,                    // Relative direction
				Amount:    ledger.MajorUnits(t.Amount),  // Amount in major units
				Rebate:    ledger.MajorUnits(t.Rebate),  // Rebate in major units
				VideoID:   t.VideoID,                    // Gifted video, if any
				CreatedAt: t.CreatedAt,                  // Creation timestamp
			}
		}
		// Calculate total pages
		totalPages := (int(total) + pageSize - 1) / pageSize
		respData := gin.H{
			"transactions": resp,       // List of transactions
			"page":         page,       // Current page
			"page_size":    pageSize,   // Page size
			"total":        total,      // Total transactions
			"total_pages":  totalPages, // Total pages
			"cached":       false,      // Not from cache
		}
		// Cache the result for 60 seconds
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData) // Return transaction history
	}
}
