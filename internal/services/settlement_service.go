package services

import (
	"log"

	"github.com/zhingPin/gsoe-contracts/internal/models"
)

// LoggingSink is the default outbound value sink. It records each payment
// and always succeeds; a deployment settling against a real payment rail
// replaces it with its own Sink.
type LoggingSink struct{}

// NewLoggingSink creates a new LoggingSink
func NewLoggingSink() *LoggingSink {
	return &LoggingSink{}
}

// Pay records an outbound payment
func (s *LoggingSink) Pay(account string, amount int64) error {
	log.Printf("Settled %s to %s", models.FormatAmount(amount), account)
	return nil
}

// forwardFees settles collected flat fees to the fee recipient after the
// mint or listing that earned them has committed. The fee counters commit
// with that operation, so a failed settlement is logged for out-of-band
// reconciliation instead of unwinding it.
func forwardFees(sink Sink, recipient string, amount int64) {
	if amount == 0 {
		return
	}
	if err := sink.Pay(recipient, amount); err != nil {
		log.Printf("fee settlement of %s to %s failed: %v", models.FormatAmount(amount), recipient, err)
	}
}
