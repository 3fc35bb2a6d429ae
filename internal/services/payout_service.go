package services

import (
	"fmt"

	"github.com/zhingPin/gsoe-contracts/internal/models"
)

// PayoutService handles the pull-payment withdrawal flow
type PayoutService struct {
	payouts PayoutStore
	sink    Sink
	events  EventPublisher
}

// NewPayoutService creates a new PayoutService
func NewPayoutService(payouts PayoutStore, sink Sink, events EventPublisher) *PayoutService {
	return &PayoutService{
		payouts: payouts,
		sink:    sink,
		events:  events,
	}
}

// Pending returns the caller's withdrawable balance
func (s *PayoutService) Pending(account string) (int64, error) {
	return s.payouts.Pending(account)
}

// Withdraw pays out the caller's entire pending balance. The balance is
// zeroed before the outbound payment is attempted; a rejected payment
// rolls the debit back.
func (s *PayoutService) Withdraw(account string) (*models.WithdrawResponse, error) {
	amount, err := s.payouts.Withdraw(account, func(to string, value int64) error {
		if err := s.sink.Pay(to, value); err != nil {
			return fmt.Errorf("%w: %v", models.ErrPayoutRejected, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(models.NewEvent(models.EventFundsWithdrawn, models.FundsWithdrawnEvent{
		Account: account,
		Amount:  amount,
	}))

	return &models.WithdrawResponse{
		Account: account,
		Amount:  amount,
	}, nil
}

// Withdrawals returns the caller's withdrawal history
func (s *PayoutService) Withdrawals(account string) ([]models.Withdrawal, error) {
	return s.payouts.Withdrawals(account)
}

// Earnings returns the marketplace earnings view from the ledger counters
func (s *PayoutService) Earnings() (*models.EarningsResponse, error) {
	totals, err := s.payouts.Totals()
	if err != nil {
		return nil, err
	}

	return &models.EarningsResponse{
		SaleVolume:       totals.SaleVolume,
		PlatformEarnings: totals.PlatformEarnings,
		MintFees:         totals.MintFees,
		ListingFees:      totals.ListingFees,
		TotalEarnings:    totals.PlatformEarnings + totals.MintFees + totals.ListingFees,
	}, nil
}
