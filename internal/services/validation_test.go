package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kasflow/backend/internal/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testInput struct {
	Name   string          `json:"name" validate:"required,min=2"`
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0"`
	On     date.Date       `json:"on" validate:"required"`
	Until  *date.Date      `json:"until" validate:"omitempty"`
}

func TestValidationHelper_ValidateStruct(t *testing.T) {
	vh := NewValidationHelper()

	t.Run("valid struct", func(t *testing.T) {
		valid := testInput{
			Name:   "Rent",
			Amount: decimal.RequireFromString("12.50"),
			On:     date.MustParse("2025-01-06"),
		}

		assert.NoError(t, vh.ValidateStruct(&valid))
	})

	t.Run("reports json field names", func(t *testing.T) {
		invalid := testInput{
			Name:   "R",
			Amount: decimal.NewFromInt(-3),
		}

		err := vh.ValidateStruct(&invalid)
		require.ErrorIs(t, err, ErrValidation)

		details := ValidationDetails(err)
		assert.Len(t, details, 3)
		assert.Contains(t, details, "name")
		assert.Equal(t, "Field Validation Failed on 'gt' tag", details["amount"])
		assert.Equal(t, "Field Validation Failed on 'required' tag", details["on"])
	})

	t.Run("zero amount is required", func(t *testing.T) {
		err := vh.ValidateStruct(&testInput{Name: "Rent", On: date.MustParse("2025-01-06")})

		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "amount", ve.Field)
	})
}

func TestValidationDetails(t *testing.T) {
	assert.Equal(t, map[string]string{"amount": "must be positive"},
		ValidationDetails(invalid("amount", "must be positive")))
	assert.Nil(t, ValidationDetails(&NotFoundError{Resource: "account", ID: 1}))
}

func TestSendErrorResponse(t *testing.T) {
	t.Run("error response without validation errors", func(t *testing.T) {
		w := httptest.NewRecorder()

		SendErrorResponse(w, "Something went wrong", http.StatusInternalServerError, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "Something went wrong", response.Error)
		assert.Nil(t, response.Details)
	})

	t.Run("error response with validation errors", func(t *testing.T) {
		w := httptest.NewRecorder()

		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, invalid("category_id", "required for expense"))

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "required for expense", response.Details["category_id"])
	})
}
