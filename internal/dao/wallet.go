package dao

import (
	"errors" // Sentinel errors
	"fmt"    // Error wrapping
	"time"   // Retry backoff

	"creator_wallet/internal/domain" // Importing domain models
	"creator_wallet/internal/ledger" // Balance state machine

	"github.com/google/uuid"     // Transaction references
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Persistence errors surfaced to handlers
var (
	ErrWalletNotFound  = errors.New("wallet not found")  // No wallet row for the user
	ErrVideoNotFound   = errors.New("video not found")   // No video row for the gift target
	ErrSelfGift        = errors.New("cannot gift your own video") // Gifting yourself is rejected
	errVersionConflict = errors.New("wallet version conflict")    // Concurrent writer won the conditional update
)

// Retry policy for optimistic-lock conflicts
const (
	maxRetries     = 5                     // Attempts before giving up
	initialBackoff = 10 * time.Millisecond // First retry delay, doubled each attempt
)

// WalletDAO is the single persistence path for wallet mutations. Every write
// is conditional on the wallet's version column, so two concurrent requests
// against the same wallet cannot both apply against the same stale balance;
// the loser of the conditional update is retried against fresh state.
type WalletDAO struct {
	db         *gorm.DB // Database handle
	maxDeposit int64    // Cap per credit operation, minor units
}

// NewWalletDAO creates a WalletDAO with the configured deposit cap
func NewWalletDAO(db *gorm.DB, maxDeposit int64) *WalletDAO {
	return &WalletDAO{db: db, maxDeposit: maxDeposit}
}

// GetOrCreate returns the user's wallet, lazily creating it with a zero
// balance on first access
func (d *WalletDAO) GetOrCreate(userID uint) (*domain.Wallet, error) {
	var wallet domain.Wallet
	// FirstOrCreate is race-safe here: the unique index on user_id means a
	// concurrent creator fails the insert, and the subsequent read sees its row
	if err := d.db.Where(domain.Wallet{UserID: userID}).FirstOrCreate(&wallet).Error; err != nil {
		return nil, err // Return error if lookup and creation both fail
	}
	return &wallet, nil
}

// Mutate applies one ledger operation to a user's wallet and appends the
// transaction log row, atomically and with optimistic retry. txType is the
// log row's type; it differs from the operation for payouts.
func (d *WalletDAO) Mutate(userID uint, op ledger.Operation, amount int64, txType string) (*domain.Wallet, *domain.Transaction, error) {
	// Enforce the deposit cap uniformly on every credit path
	if op.IsCredit() && amount > d.maxDeposit {
		return nil, nil, ledger.ErrDepositLimit
	}
	backoff := initialBackoff // Current retry delay
	var lastErr error         // Last conflict error, for the final wrap
	for i := 0; i < maxRetries; i++ {
		wallet, err := d.GetOrCreate(userID) // Load current balance and version
		if err != nil {
			return nil, nil, err
		}
		// Compute the transition through the authoritative state machine
		balance := ledger.Balance{TK: wallet.TK, TKI: wallet.TKI}
		next, rebate, err := balance.Apply(op, amount)
		if err != nil {
			return nil, nil, err // Validation failures are not retried
		}
		// Build the append-only log row
		record := &domain.Transaction{
			Reference: uuid.NewString(), // Unique reference for display and reconciliation
			Amount:    amount,           // Moved amount in minor units
			Rebate:    rebate,           // Hypes credited, zero for debits
			Type:      txType,           // Log row type
		}
		if op.IsCredit() {
			record.ToWalletID = &wallet.ID // Credits point at the wallet
		} else {
			record.FromWalletID = &wallet.ID // Debits point away from it
		}
		// Conditional write and log append, all or nothing
		err = d.db.Transaction(func(tx *gorm.DB) error {
			updates := map[string]any{
				"tk":      next.TK,            // New Spark balance
				"tki":     next.TKI,           // New Hype balance
				"version": wallet.Version + 1, // Bump the optimistic-lock token
			}
			// Cumulative counters move with the balance in the same write
			if op == ledger.OpAddEarnings {
				updates["total_earnings"] = gorm.Expr("total_earnings + ?", amount)
			}
			if op == ledger.OpWithdraw {
				updates["total_withdrawn"] = gorm.Expr("total_withdrawn + ?", amount)
			}
			res := tx.Model(&domain.Wallet{}).
				Where("id = ? AND version = ?", wallet.ID, wallet.Version).
				Updates(updates)
			if res.Error != nil {
				return res.Error // Database error, rolls back
			}
			if res.RowsAffected == 0 {
				return errVersionConflict // A concurrent writer got there first
			}
			return tx.Create(record).Error // Append the log row
		})
		if err == nil {
			// Reflect the committed state on the in-memory copy
			wallet.TK = next.TK
			wallet.TKI = next.TKI
			wallet.Version++
			if op == ledger.OpAddEarnings {
				wallet.TotalEarnings += amount
			}
			if op == ledger.OpWithdraw {
				wallet.TotalWithdrawn += amount
			}
			return wallet, record, nil
		}
		if !errors.Is(err, errVersionConflict) {
			return nil, nil, err // Only conflicts are worth retrying
		}
		lastErr = err
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,     // Wallet owner
			"operation": string(op), // Attempted operation
			"attempt":   i + 1,      // Attempt number
		}).Warn("Wallet version conflict, retrying")
		time.Sleep(backoff) // Exponential delay before re-reading
		backoff *= 2
	}
	return nil, nil, fmt.Errorf("wallet mutation failed after %d attempts: %w", maxRetries, lastErr)
}

// GiftResult reports the committed state of a gift transfer
type GiftResult struct {
	SenderWallet *domain.Wallet      // Sender's wallet after the debit
	Record       *domain.Transaction // The appended gift log row
	CreatorID    uint                // Owner of the gifted video
}

// Gift atomically moves Sparks from a user to a video's creator: the sender is
// debited, the video's earned counter and the creator's earnings are credited,
// and one gift log row is appended. Either every write commits or none do.
func (d *WalletDAO) Gift(fromUserID, videoID uint, amount int64) (*GiftResult, error) {
	// The creator credit is a deposit like any other, capped the same way
	if amount > d.maxDeposit {
		return nil, ledger.ErrDepositLimit
	}
	var video domain.Video // Gift target
	if err := d.db.First(&video, videoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	// Prevent round-tripping Sparks through your own videos for free Hypes
	if video.CreatorID == fromUserID {
		return nil, ErrSelfGift
	}
	backoff := initialBackoff
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		fromWallet, err := d.GetOrCreate(fromUserID) // Sender's wallet
		if err != nil {
			return nil, err
		}
		toWallet, err := d.GetOrCreate(video.CreatorID) // Creator's wallet
		if err != nil {
			return nil, err
		}
		// Debit leg: spend draws from TK only
		fromNext, _, err := ledger.Balance{TK: fromWallet.TK, TKI: fromWallet.TKI}.Apply(ledger.OpSubtract, amount)
		if err != nil {
			return nil, err // Insufficient balance is not retried
		}
		// Credit leg: earnings with the rebate
		toNext, rebate, err := ledger.Balance{TK: toWallet.TK, TKI: toWallet.TKI}.Apply(ledger.OpAddEarnings, amount)
		if err != nil {
			return nil, err
		}
		record := &domain.Transaction{
			Reference:    uuid.NewString(),   // Unique reference
			FromWalletID: &fromWallet.ID,     // Sender wallet
			ToWalletID:   &toWallet.ID,       // Creator wallet
			VideoID:      &video.ID,          // Gifted video
			Amount:       amount,             // Gift amount in minor units
			Rebate:       rebate,             // Creator's Hype rebate
			Type:         domain.TxTypeGift,  // Transaction type
		}
		// Both wallets, the video counter and the log row in one transaction
		err = d.db.Transaction(func(tx *gorm.DB) error {
			// Conditional debit of the sender
			res := tx.Model(&domain.Wallet{}).
				Where("id = ? AND version = ?", fromWallet.ID, fromWallet.Version).
				Updates(map[string]any{"tk": fromNext.TK, "tki": fromNext.TKI, "version": fromWallet.Version + 1})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errVersionConflict // Sender wallet changed underneath us
			}
			// Conditional credit of the creator, counters included
			res = tx.Model(&domain.Wallet{}).
				Where("id = ? AND version = ?", toWallet.ID, toWallet.Version).
				Updates(map[string]any{
					"tk":             toNext.TK,
					"tki":            toNext.TKI,
					"version":        toWallet.Version + 1,
					"total_earnings": gorm.Expr("total_earnings + ?", amount),
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errVersionConflict // Creator wallet changed underneath us
			}
			// Credit the video's earned counter with a relative update
			if err := tx.Model(&domain.Video{}).
				Where("id = ?", video.ID).
				Update("earned_total", gorm.Expr("earned_total + ?", amount)).Error; err != nil {
				return err
			}
			return tx.Create(record).Error // Append the gift log row
		})
		if err == nil {
			fromWallet.TK = fromNext.TK
			fromWallet.TKI = fromNext.TKI
			fromWallet.Version++
			return &GiftResult{SenderWallet: fromWallet, Record: record, CreatorID: video.CreatorID}, nil
		}
		if !errors.Is(err, errVersionConflict) {
			return nil, err
		}
		lastErr = err
		logrus.WithFields(logrus.Fields{
			"from_user_id": fromUserID, // Sender
			"video_id":     videoID,    // Gift target
			"attempt":      i + 1,      // Attempt number
		}).Warn("Gift version conflict, retrying")
		time.Sleep(backoff)
		backoff *= 2
	}
	return nil, fmt.Errorf("gift failed after %d attempts: %w", maxRetries, lastErr)
}
