package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zhingPin/gsoe-contracts/internal/models"
)

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps a marketplace error onto its HTTP status. Errors that are
// not marketplace errors are treated as internal.
func writeError(w http.ResponseWriter, err error) {
	var mErr *models.MarketError
	if !errors.As(err, &mErr) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"code":    "Internal",
			"message": "internal server error",
		})
		return
	}

	status := http.StatusInternalServerError
	switch mErr.Kind {
	case models.KindAuthorization:
		status = http.StatusForbidden
	case models.KindValidation:
		status = http.StatusBadRequest
	case models.KindStateConflict:
		status = http.StatusConflict
	case models.KindExternalDependency:
		status = http.StatusBadGateway
	case models.KindAccountingInvariant:
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, mErr)
}
