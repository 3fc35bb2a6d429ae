package handlers

import (
	"net/http"

	"github.com/zhingPin/gsoe-contracts/internal/models"
	"github.com/zhingPin/gsoe-contracts/internal/services"
)

// GetPendingBalance handles retrieving the caller's withdrawable balance
func GetPendingBalance(payoutService *services.PayoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.Context().Value(AddressKey).(string)

		amount, err := payoutService.Pending(address)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, models.PendingBalance{
			Account: address,
			Amount:  amount,
		})
	}
}

// Withdraw handles withdrawing the caller's entire pending balance
func Withdraw(payoutService *services.PayoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.Context().Value(AddressKey).(string)

		resp, err := payoutService.Withdraw(address)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// GetWithdrawals handles retrieving the caller's withdrawal history
func GetWithdrawals(payoutService *services.PayoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.Context().Value(AddressKey).(string)

		withdrawals, err := payoutService.Withdrawals(address)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, withdrawals)
	}
}

// GetEarnings handles retrieving the marketplace earnings view
func GetEarnings(payoutService *services.PayoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		earnings, err := payoutService.Earnings()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, earnings)
	}
}
