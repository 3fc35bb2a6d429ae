package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/zhingPin/gsoe-contracts/internal/models"
	"github.com/zhingPin/gsoe-contracts/internal/services"
)

// GetFees handles retrieving the current fee configuration
func GetFees(adminService *services.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fees, err := adminService.GetFees()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, fees)
	}
}

// SetPlatformFeePercent handles changing the percentage fee on sales
func SetPlatformFeePercent(adminService *services.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.Context().Value(AddressKey).(string)

		var req models.SetFeePercentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := adminService.SetPlatformFeePercent(req.Percent, address); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Platform fee updated",
		})
	}
}

// SetListingFee handles changing the flat listing fee
func SetListingFee(adminService *services.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.Context().Value(AddressKey).(string)

		var req models.SetFeeAmountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := adminService.SetListingFee(req.Amount, address); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Listing fee updated",
		})
	}
}

// SetMintFee handles changing the flat per-unit mint fee
func SetMintFee(adminService *services.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.Context().Value(AddressKey).(string)

		var req models.SetFeeAmountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := adminService.SetMintFeePerUnit(req.Amount, address); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Mint fee updated",
		})
	}
}

// SetFeeRecipient handles changing the fee collection account
func SetFeeRecipient(adminService *services.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.Context().Value(AddressKey).(string)

		var req models.SetFeeRecipientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := adminService.SetFeeRecipient(req.Account, address); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Fee recipient updated",
		})
	}
}

// GrantRole handles granting a capability to an account
func GrantRole(adminService *services.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.Context().Value(AddressKey).(string)

		var req models.RoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := adminService.GrantRole(req, address); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Role granted",
		})
	}
}

// RevokeRole handles revoking a capability from an account
func RevokeRole(adminService *services.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.Context().Value(AddressKey).(string)

		var req models.RoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := adminService.RevokeRole(req, address); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Role revoked",
		})
	}
}

// GetRoles handles retrieving the capabilities granted to an account
func GetRoles(adminService *services.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := chi.URLParam(r, "account")
		if account == "" {
			http.Error(w, "Account is required", http.StatusBadRequest)
			return
		}

		grants, err := adminService.RolesFor(account)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, grants)
	}
}
