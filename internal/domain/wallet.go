package domain

// Wallet Model
//
// All balances are stored as integer minor units (cents). TK is the spendable
// Spark balance, TKI the Hype reward balance. Version is the optimistic-lock
// token: every mutation writes conditionally on it so concurrent updates to the
// same wallet cannot silently overwrite each other.
type Wallet struct {
	ID             uint  `gorm:"primaryKey" json:"id"`                // Primary key
	UserID         uint  `gorm:"uniqueIndex" json:"user_id"`          // Foreign key to User (one wallet per user)
	TK             int64 `gorm:"column:tk;not null;default:0" json:"tk"`   // Spendable Spark balance in minor units
	TKI            int64 `gorm:"column:tki;not null;default:0" json:"tki"` // Hype reward balance in minor units
	TotalEarnings  int64 `gorm:"not null;default:0" json:"total_earnings"`  // Cumulative earnings credited in minor units
	TotalWithdrawn int64 `gorm:"not null;default:0" json:"total_withdrawn"` // Cumulative amount withdrawn in minor units
	Version        uint  `gorm:"not null;default:0" json:"-"`         // Optimistic concurrency token
}
