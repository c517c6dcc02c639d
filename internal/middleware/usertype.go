package middleware

import (
	"net/http" // HTTP status codes

	"creator_wallet/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// RequireUserType checks the user's type from the database on each request.
// The type is re-read rather than trusted from the token so a stale token
// cannot keep accessing a wallet class the account no longer has.
func RequireUserType(db *gorm.DB, userType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			// If user not found or any error, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": userType + " access required"})
			return
		}
		// Check if the user has the required type
		if user.UserType != userType {
			// If not, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": userType + " access required"})
			return
		}
		// If the type matches, proceed to the next handler
		c.Next()
	}
}
