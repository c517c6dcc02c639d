package domain

// Video Model
type Video struct {
	ID          uint   `gorm:"primaryKey" json:"id"`                   // Primary key
	CreatorID   uint   `gorm:"index;not null" json:"creator_id"`       // Foreign key to the owning creator
	Title       string `gorm:"not null" json:"title"`                  // Display title
	Description string `json:"description"`                           // Optional description
	EarnedTotal int64  `gorm:"not null;default:0" json:"earned_total"` // Sparks gifted to this video in minor units
	CreatedAt   int64  `gorm:"autoCreateTime:milli" json:"created_at"` // Timestamp of creation in milliseconds
}
