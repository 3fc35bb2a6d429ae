package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/zhingPin/gsoe-contracts/internal/models"
	"github.com/zhingPin/gsoe-contracts/internal/services"
)

// GetAllAssets handles retrieving assets
func GetAllAssets(assetService *services.AssetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := parseAssetParams(r)

		response, err := assetService.List(params)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// GetAsset handles retrieving a single asset
func GetAsset(assetService *services.AssetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := chi.URLParam(r, "id")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "Invalid asset ID", http.StatusBadRequest)
			return
		}

		asset, err := assetService.GetByID(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if asset == nil {
			http.Error(w, "Asset not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, asset)
	}
}

// GetBatch handles retrieving a mint batch
func GetBatch(assetService *services.AssetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := chi.URLParam(r, "id")
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "Invalid batch ID", http.StatusBadRequest)
			return
		}

		batch, err := assetService.GetBatch(id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		if batch == nil {
			http.Error(w, "Batch not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, batch)
	}
}

// GetMyAssets handles retrieving the caller's assets
func GetMyAssets(assetService *services.AssetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := r.Context().Value(AddressKey).(string)

		params := parseAssetParams(r)
		params.Owner = address

		response, err := assetService.List(params)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// Helper function to parse asset query parameters
func parseAssetParams(r *http.Request) models.AssetParams {
	params := models.AssetParams{}

	params.Owner = r.URL.Query().Get("owner")
	params.Creator = r.URL.Query().Get("creator")

	batchIDStr := r.URL.Query().Get("batch_id")
	if batchIDStr != "" {
		batchID, err := strconv.ParseInt(batchIDStr, 10, 64)
		if err == nil && batchID > 0 {
			params.BatchID = batchID
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
