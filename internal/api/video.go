package api

import (
	"context"  // Context for Redis operations
	"errors"   // Sentinel matching
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"creator_wallet/internal/domain"   // Importing domain models
	"creator_wallet/internal/fixtures" // Demo engagement numbers
	"creator_wallet/internal/ledger"   // Amount conversion
	"creator_wallet/internal/utils"    // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// VideoRequest is the body of a publish request
type VideoRequest struct {
	Title       string `json:"title" binding:"required"` // Display title
	Description string `json:"description"`              // Optional description
}

// VideoResponse is the wire shape of a video
type VideoResponse struct {
	ID          uint    `json:"id"`          // Video ID
	CreatorID   uint    `json:"creator_id"`  // Owning creator
	Title       string  `json:"title"`       // Display title
	Description string  `json:"description"` // Description
	Earned      float64 `json:"earned"`      // Sparks gifted, major units
	CreatedAt   int64   `json:"created_at"`  // Creation timestamp in milliseconds
}

// videoResponse converts a video row for a response
func videoResponse(v domain.Video) VideoResponse {
	return VideoResponse{
		ID:          v.ID,                            // Video ID
		CreatorID:   v.CreatorID,                     // Owning creator
		Title:       v.Title,                         // Display title
		Description: v.Description,                   // Description
		Earned:      ledger.MajorUnits(v.EarnedTotal), // Earned Sparks in major units
		CreatedAt:   v.CreatedAt,                     // Creation timestamp
	}
}

// CreateVideoHandler publishes a video for the authenticated creator
func CreateVideoHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, return unauthorized
			respondError(c, http.StatusUnauthorized, "unauthorized", "Unauthorized")
			return
		}
		var req VideoRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			respondError(c, http.StatusBadRequest, "invalid-request", "Invalid request")
			return
		}
		// Create the video row
		video := domain.Video{
			CreatorID:   userID.(uint),   // Owning creator
			Title:       req.Title,       // Display title
			Description: req.Description, // Description
		}
		if err := db.Create(&video).Error; err != nil {
			logrus.WithFields(logrus.Fields{
				"creator_id": userID,      // Creator ID
				"error":      err.Error(), // Error message
			}).Error("Failed to create video") // Log failure
			respondError(c, http.StatusInternalServerError, "internal-error", "Failed to create video")
			return
		}
		// Drop cached feed pages so the new video shows up immediately
		utils.InvalidateFeedCache(context.Background(), rdb)
		// Return the created video
		c.JSON(http.StatusCreated, gin.H{"message": "Video published", "video": videoResponse(video)})
	}
}

// ListVideosHandler returns the paginated video feed, cached
func ListVideosHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Context for Redis operations
		// Create a cache key based on pagination parameters
		cacheKey := utils.FeedCacheKey(c.DefaultQuery("page", "1"), c.DefaultQuery("page_size", "20"))
		// Try to get cached response
		var cached struct {
			Videos     []VideoResponse `json:"videos"`      // List of videos
			Page       int             `json:"page"`        // Current page
			PageSize   int             `json:"page_size"`   // Page size
			Total      int64           `json:"total"`       // Total number of videos
			TotalPages int             `json:"total_pages"` // Total pages
		}
		// If cached data found, return it
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"videos":      cached.Videos,     // List of videos
				"page":        cached.Page,       // Current page
				"page_size":   cached.PageSize,   // Page size
				"total":       cached.Total,      // Total number of videos
				"total_pages": cached.TotalPages, // Total pages
				"cached":      true,              // Indicate response is from cache
			})
			return
		}
		page := 1      // Default page number
		pageSize := 20 // Default page size
		if p := c.Query("page"); p != "" {
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// Check and set page size within limits
		if ps := c.Query("page_size"); ps != "" {
			// If valid, set page size
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size
			}
		}
		offset := (page - 1) * pageSize // Calculate offset for pagination
		var total int64                 // Total video count
		// Fetch total video count for pagination
		if err := db.Model(&domain.Video{}).Count(&total).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "internal-error", "Failed to count videos")
			return
		}
		var videos []domain.Video // Slice to hold videos
		// Newest first, apply offset and limit for pagination
		if err := db.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&videos).Error; err != nil {
			respondError(c, http.StatusInternalServerError, "internal-error", "Failed to fetch videos")
			return
		}
		// The total number of pages
		totalPages := (int(total) + pageSize - 1) / pageSize
		// Prepare response data
		resp := make([]VideoResponse, len(videos))
		for i, v := range videos {
			resp[i] = videoResponse(v) // Map to wire shape
		}
		// Prepare final response data
		respData := gin.H{
			"videos":      resp,       // List of videos
			"page":        page,       // Current page
			"page_size":   pageSize,   // Page size
			"total":       total,      // Total number of videos
			"total_pages": totalPages, // Total pages
			"cached":      false,      // Indicate response is not from cache
		}
		// Cache the response for future requests
		_ = utils.SetCache(ctx, rdb, cacheKey, respData, 60*time.Second)
		c.JSON(http.StatusOK, respData) // Return the response
	}
}

// VideoStatsHandler returns a video's sharing/engagement display block. The
// earned counter is durable state; the engagement numbers are demo fixtures.
func VideoStatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id")) // Parse the video ID
		if err != nil || id <= 0 {
			respondError(c, http.StatusBadRequest, "invalid-request", "Invalid video id")
			return
		}
		var video domain.Video // Fetch the video
		if err := db.First(&video, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, http.StatusNotFound, "video-not-found", "Video not found")
				return
			}
			respondError(c, http.StatusInternalServerError, "internal-error", "Failed to fetch video")
			return
		}
		// Merge the durable earned counter with demo engagement numbers
		c.JSON(http.StatusOK, gin.H{
			"video_id":   video.ID,                              // Video ID
			"title":      video.Title,                           // Display title
			"earned":     ledger.MajorUnits(video.EarnedTotal),  // Durable earned counter
			"engagement": fixtures.VideoEngagement(video.ID),    // Demo display numbers
		})
	}
}
