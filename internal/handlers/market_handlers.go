package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/zhingPin/gsoe-contracts/internal/models"
	"github.com/zhingPin/gsoe-contracts/internal/services"
)

// GetAllListings handles retrieving listings
func GetAllListings(marketService *services.MarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := parseListingParams(r)

		response, err := marketService.List(params)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// GetListing handles retrieving a single listing
func GetListing(marketService *services.MarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := listingID(w, r)
		if !ok {
			return
		}

		listing, err := marketService.GetByID(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if listing == nil {
			http.Error(w, "Listing not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, listing)
	}
}

// CreateListing handles listing an asset for sale
func CreateListing(marketService *services.MarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.Context().Value(AddressKey).(string)

		var req models.CreateListingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		listing, err := marketService.ListItem(req, address)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, listing)
	}
}

// BuyListing handles purchasing an active listing
func BuyListing(marketService *services.MarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.Context().Value(AddressKey).(string)

		id, ok := listingID(w, r)
		if !ok {
			return
		}

		var req models.BuyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		sale, err := marketService.BuyItem(id, req, address)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, sale)
	}
}

// DelistListing handles cancelling an active listing
func DelistListing(marketService *services.MarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.Context().Value(AddressKey).(string)

		id, ok := listingID(w, r)
		if !ok {
			return
		}

		listing, err := marketService.DelistItem(id, address)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, listing)
	}
}

// SetApproval handles granting or revoking operator approval
func SetApproval(marketService *services.MarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.Context().Value(AddressKey).(string)

		var req models.ApprovalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := marketService.SetApproval(req, address); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Approval updated",
		})
	}
}

// Helper to parse the listing ID from the URL
func listingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid listing ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// Helper function to parse listing query parameters
func parseListingParams(r *http.Request) models.ListingParams {
	params := models.ListingParams{}

	statusStr := r.URL.Query().Get("status")
	if statusStr != "" {
		params.Status = models.ListingStatus(statusStr)
	}

	params.Seller = r.URL.Query().Get("seller")
	params.Buyer = r.URL.Query().Get("buyer")

	assetIDStr := r.URL.Query().Get("asset_id")
	if assetIDStr != "" {
		assetID, err := strconv.ParseInt(assetIDStr, 10, 64)
		if err == nil && assetID > 0 {
			params.AssetID = assetID
		}
	}

	pageStr := r.URL.Query().Get("page")
	if pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err == nil && page > 0 {
			params.Page = page
		}
	}

	pageSizeStr := r.URL.Query().Get("page_size")
	if pageSizeStr != "" {
		pageSize, err := strconv.Atoi(pageSizeStr)
		if err == nil && pageSize > 0 {
			params.PageSize = pageSize
		}
	}

	return params
}
