package domain

// Transaction types recorded in the ledger log
const (
	TxTypeDeposit  = "deposit"  // Funds added to a user wallet
	TxTypeSpend    = "spend"    // Sparks spent from a user wallet
	TxTypeWithdraw = "withdraw" // Balance withdrawn (TK first, then TKI)
	TxTypeGift     = "gift"     // Transfer from a user to a video's creator
	TxTypeEarnings = "earnings" // Earnings credited to a creator wallet
	TxTypePayout   = "payout"   // Withdrawal routed through a payment provider
)

// Transaction Model
//
// Append-only log entry created alongside every wallet mutation. Rows are never
// updated or deleted; they exist for display, not for reconstructing balances.
type Transaction struct {
	ID           uint   `gorm:"primaryKey" json:"id"`               // Primary key
	Reference    string `gorm:"size:36;uniqueIndex" json:"reference"` // UUID assigned at creation
	FromWalletID *uint  `json:"from_wallet_id,omitempty"`           // Wallet debited, nil for pure credits
	ToWalletID   *uint  `json:"to_wallet_id,omitempty"`             // Wallet credited, nil for pure debits
	VideoID      *uint  `json:"video_id,omitempty"`                 // Video the gift was attached to, gifts only
	Amount       int64  `json:"amount"`                             // Moved amount in minor units
	Rebate       int64  `json:"rebate"`                             // Hypes credited as rebate, minor units
	Type         string `json:"type"`                               // Transaction type, see TxType constants
	CreatedAt    int64  `gorm:"autoCreateTime:milli" json:"created_at"` // Timestamp of creation in milliseconds
}
