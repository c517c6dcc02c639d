package api

import (
	"errors"   // Sentinel matching
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions
	"strings"  // String manipulation

	"creator_wallet/internal/domain" // Importing domain models
	"creator_wallet/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"       // Gin web framework
	"github.com/go-sql-driver/mysql" // MySQL error codes
	"golang.org/x/crypto/bcrypt"     // Password hashing
	"gorm.io/gorm"                   // GORM ORM library
)

// Request struct for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
	UserType string `json:"user_type"`                   // Optional: user (default) or creator
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string       `json:"token"` // JWT token
	User  UserResponse `json:"user"`  // Authenticated user
}

// UserResponse is the public shape of a user
type UserResponse struct {
	ID       uint   `json:"id"`        // User ID
	Username string `json:"username"`  // Username
	UserType string `json:"user_type"` // User type
}

// isValidUsername checks if the username contains only alphabetic characters
func isValidUsername(username string) bool {
	matched, _ := regexp.MatchString(`^[A-Za-z]+$`, username) // Regex to match alphabetic characters only
	return matched                                            // Return whether it matched
}

// isValidPassword checks if the password length is between 8 and 15 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 15 // Return true if length is valid
}

// isValidEmail performs a light syntactic check on the email address
func isValidEmail(email string) bool {
	matched, _ := regexp.MatchString(`^[^@\s]+@[^@\s]+\.[^@\s]+$`, email) // Basic shape check only
	return matched
}

// isDuplicateKey reports whether err is a unique-constraint violation
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError // Raw driver error when GORM does not translate it
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}

// RegisterHandler creates a new user account and its zero-balance wallet
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			respondError(c, http.StatusBadRequest, "invalid-request", "Invalid request")
			return
		}
		// Validate username and password
		if !isValidUsername(req.Username) {
			// If username is invalid, return bad request
			respondError(c, http.StatusBadRequest, "invalid-request", "Username must be alphabetic only")
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			// If password is invalid, return bad request
			respondError(c, http.StatusBadRequest, "invalid-request", "Password must be 8-15 characters")
			return
		}
		// Validate email shape
		if !isValidEmail(req.Email) {
			respondError(c, http.StatusBadRequest, "invalid-request", "Invalid email address")
			return
		}
		// Default and validate the user type
		userType := req.UserType
		if userType == "" {
			userType = domain.UserTypeUser // Default to a regular user
		}
		if userType != domain.UserTypeUser && userType != domain.UserTypeCreator {
			respondError(c, http.StatusBadRequest, "invalid-request", "User type must be user or creator")
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			respondError(c, http.StatusInternalServerError, "internal-error", "Failed to hash password")
			return
		}
		// Create user with lowercase username and email to ensure uniqueness
		user := domain.User{
			Username: strings.ToLower(req.Username), // Lowercased username
			Email:    strings.ToLower(req.Email),    // Lowercased email
			Password: string(hash),                  // Hashed password
			UserType: userType,                      // User type
		}
		// Create the user and its wallet together
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err // Duplicate username/email or other failure
			}
			// Explicit wallet setup with a zero starting balance
			return tx.Create(&domain.Wallet{UserID: user.ID}).Error
		})
		if err != nil {
			// Duplicate username or email, return conflict
			if isDuplicateKey(err) {
				respondError(c, http.StatusConflict, "duplicate-registration", "Username or email already exists")
				return
			}
			// Anything else is a database failure, not a client error
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Registration failed",
				"code":    "internal-error",
				"details": err.Error(),
			})
			return
		}
		// Return success response
		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully",
			"user":    UserResponse{ID: user.ID, Username: user.Username, UserType: user.UserType},
		})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			respondError(c, http.StatusBadRequest, "invalid-request", "Invalid request")
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("username = ?", strings.ToLower(req.Username)).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			respondError(c, http.StatusUnauthorized, "invalid-credentials", "Invalid credentials")
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			respondError(c, http.StatusUnauthorized, "invalid-credentials", "Invalid credentials")
			return
		}
		// Generate JWT token carrying the user's identity and type
		token, err := utils.GenerateJWT(user.ID, user.Username, user.UserType, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			respondError(c, http.StatusInternalServerError, "internal-error", "Failed to generate token")
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{
			Token: token,
			User:  UserResponse{ID: user.ID, Username: user.Username, UserType: user.UserType},
		})
	}
}
