package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zhingPin/gsoe-contracts/internal/models"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{models.ErrUnauthorized, 403, "Unauthorized"},
		{models.ErrNotOwner, 403, "NotOwner"},
		{models.ErrInvalidQuantity, 400, "InvalidQuantity"},
		{models.ErrIncorrectFee, 400, "IncorrectFee"},
		{models.ErrWrongPaymentAmount, 400, "WrongPaymentAmount"},
		{models.ErrAlreadyListed, 409, "AlreadyListed"},
		{models.ErrItemNotAvailable, 409, "ItemNotAvailable"},
		{models.ErrNothingToWithdraw, 409, "NothingToWithdraw"},
		{models.ErrTransferRejected, 502, "TransferRejected"},
		{models.ErrPayoutRejected, 502, "PayoutRejected"},
		{models.ErrAccountingBroken, 500, "AccountingInvariant"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body["code"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestWriteErrorWrapped(t *testing.T) {
	// Wrapped marketplace errors keep their mapping
	rec := httptest.NewRecorder()
	writeError(rec, fmt.Errorf("%w: connection refused", models.ErrPayoutRejected))

	assert.Equal(t, 502, rec.Code)
}

func TestWriteErrorUnknown(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, errors.New("driver: bad connection"))

	assert.Equal(t, 500, rec.Code)

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Internal", body["code"])
	// Internal detail never leaks to the client
	assert.NotContains(t, body["message"], "driver")
}
