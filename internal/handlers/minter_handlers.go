package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/zhingPin/gsoe-contracts/internal/models"
	"github.com/zhingPin/gsoe-contracts/internal/services"
)

// MintBatch handles minting a batch of assets
func MintBatch(minterService *services.MinterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.Context().Value(AddressKey).(string)

		var req models.MintBatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		resp, err := minterService.MintBatch(req, address)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}

// MintAndList handles minting a batch and listing every asset in one call
func MintAndList(minterService *services.MinterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.Context().Value(AddressKey).(string)

		var req models.MintAndListRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		resp, err := minterService.MintAndList(req, address)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}
