package ledger

import "errors"

// Token economy constants. TK ("Sparks") is pegged 1:1 to currency and handled
// in integer minor units. TKI ("Hypes") is earned only as a rebate on Spark
// movements: 0.04% of the moved amount, scaled by the 100x Hype conversion
// factor, floored at whole Hypes.
const (
	MinorUnitsPerToken = 100   // Minor units (cents) per whole token
	RebateNumerator    = 4     // Effective rebate rate is 4/10000 of minor units, in whole Hypes
	RebateDenominator  = 10000 // Denominator of the rebate rate
)

// Sentinel errors for balance operations
var (
	ErrInvalidAmount       = errors.New("invalid-amount")         // Amount is zero, negative or non-finite
	ErrInsufficientBalance = errors.New("insufficient-balance")   // Amount exceeds the available balance
	ErrDepositLimit        = errors.New("deposit-limit-exceeded") // Amount exceeds the configured deposit cap
	ErrInvalidOperation    = errors.New("invalid-operation")      // Unknown operation name
)

// Operation names accepted by Apply
type Operation string

const (
	OpAdd         Operation = "add"          // Credit TK and the rebate
	OpSubtract    Operation = "subtract"     // Debit TK only
	OpWithdraw    Operation = "withdraw"     // Debit TK first, then TKI
	OpAddEarnings Operation = "add_earnings" // Same as add, creator wallets only
)

// Balance is a wallet's token position in minor units.
type Balance struct {
	TK  int64 // Spendable Sparks
	TKI int64 // Reward Hypes
}

// Total returns the combined balance. It is computed on demand and never
// stored, so it cannot drift from the two underlying fields.
func (b Balance) Total() int64 {
	return b.TK + b.TKI
}

// Rebate returns the Hypes earned on a Spark movement, in minor units.
// The rebate floors at whole Hypes, so movements under 25 whole Sparks earn nothing.
func Rebate(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	hypes := amount * RebateNumerator / RebateDenominator // Whole Hypes earned
	return hypes * MinorUnitsPerToken                     // Back to minor units
}

// ValidateTransaction checks an amount against an available balance.
// The boundary amount == available is allowed.
func ValidateTransaction(amount, available int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > available {
		return ErrInsufficientBalance
	}
	return nil
}

// Apply is the single authoritative balance transition. Every endpoint that
// mutates a wallet goes through it; no handler computes balances on its own.
// It returns the new balance and the rebate credited (zero for debits).
func (b Balance) Apply(op Operation, amount int64) (Balance, int64, error) {
	if amount <= 0 {
		return b, 0, ErrInvalidAmount
	}
	switch op {
	case OpAdd, OpAddEarnings:
		rebate := Rebate(amount)
		return Balance{TK: b.TK + amount, TKI: b.TKI + rebate}, rebate, nil
	case OpSubtract:
		// Spend draws from TK only; Hypes are untouched
		if err := ValidateTransaction(amount, b.TK); err != nil {
			return b, 0, err
		}
		return Balance{TK: b.TK - amount, TKI: b.TKI}, 0, nil
	case OpWithdraw:
		// Withdraw drains TK first, then covers any remainder from TKI
		if err := ValidateTransaction(amount, b.Total()); err != nil {
			return b, 0, err
		}
		fromTK := amount
		if fromTK > b.TK {
			fromTK = b.TK
		}
		return Balance{TK: b.TK - fromTK, TKI: b.TKI - (amount - fromTK)}, 0, nil
	default:
		return b, 0, ErrInvalidOperation
	}
}

// IsCredit reports whether the operation adds funds to the wallet.
func (op Operation) IsCredit() bool {
	return op == OpAdd || op == OpAddEarnings
}
