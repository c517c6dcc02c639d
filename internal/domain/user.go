package domain

// User types supported by the platform
const (
	UserTypeUser    = "user"    // Regular viewer who spends Sparks on gifts
	UserTypeCreator = "creator" // Creator who earns Sparks from gifts and withdraws them
)

// User Model
type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`                                    // Primary key
	Username string  `gorm:"unique;not null" json:"username"`                         // Unique username
	Email    string  `gorm:"unique;not null" json:"email"`                            // Unique email address
	Password string  `gorm:"not null" json:"-"`                                       // Hashed password, never serialized
	UserType string  `gorm:"default:user" json:"user_type"`                           // User type: user or creator
	Wallet   Wallet  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"` // One-to-one relationship with Wallet
	Videos   []Video `gorm:"foreignKey:CreatorID" json:"-"`                           // Videos published by this user (creators only)
}
