// Package payments simulates the external payment providers used for creator
// payouts. Everything in here is a demo stand-in: it keeps no durable state,
// never touches the wallet tables, and returns canned receipts after a fixed
// processing delay. The real wallet debit happens before a provider is called.
package payments

import (
	"context" // Cancellation of the simulated delay
	"errors"  // Sentinel errors
	"time"    // Processing delay

	"creator_wallet/internal/ledger" // Amount formatting

	"github.com/google/uuid" // Payout references
)

// Payment-method families supported for payouts
const (
	MethodCard      = "card"      // Credit / debit card
	MethodPayPal    = "paypal"    // PayPal
	MethodGooglePay = "googlepay" // Google Pay
	MethodApplePay  = "applepay"  // Apple Pay
)

// ErrUnsupportedMethod is returned for payment methods outside the four families
var ErrUnsupportedMethod = errors.New("unsupported payment method")

// Receipt is the canned provider response for a completed payout
type Receipt struct {
	Reference   string  `json:"reference"`    // Provider-side payout reference
	Method      string  `json:"method"`       // Payment-method family
	Provider    string  `json:"provider"`     // Display name of the provider
	Amount      float64 `json:"amount"`       // Paid amount in major units
	Status      string  `json:"status"`       // Always "completed" in the simulator
	ProcessedAt int64   `json:"processed_at"` // Completion timestamp in milliseconds
}

// providerNames maps method families to display names
var providerNames = map[string]string{
	MethodCard:      "MockCard Gateway",
	MethodPayPal:    "PayPal Sandbox",
	MethodGooglePay: "Google Pay Sandbox",
	MethodApplePay:  "Apple Pay Sandbox",
}

// Simulator issues canned receipts after a fixed configurable delay
type Simulator struct {
	delay time.Duration // Simulated provider processing time
}

// NewSimulator creates a Simulator with the given processing delay
func NewSimulator(delay time.Duration) *Simulator {
	return &Simulator{delay: delay}
}

// Supported reports whether the method is one of the four payout families
func (s *Simulator) Supported(method string) bool {
	_, ok := providerNames[method]
	return ok
}

// Process simulates a payout through the named provider. The delay respects
// context cancellation so an abandoned request does not hold its handler.
func (s *Simulator) Process(ctx context.Context, method string, amount int64) (*Receipt, error) {
	name, ok := providerNames[method]
	if !ok {
		return nil, ErrUnsupportedMethod // Unknown family
	}
	// Wait out the simulated processing time, or bail on cancellation
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err() // Request abandoned
	case <-timer.C:
	}
	// Canned success payload
	return &Receipt{
		Reference:   uuid.NewString(),           // Fresh provider reference
		Method:      method,                     // Requested family
		Provider:    name,                       // Provider display name
		Amount:      ledger.MajorUnits(amount),  // Paid amount in major units
		Status:      "completed",                // Simulator always succeeds
		ProcessedAt: time.Now().UnixMilli(),     // Completion timestamp
	}, nil
}
