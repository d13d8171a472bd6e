package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kasflow/backend/internal/date"
	"github.com/shopspring/decimal"
)

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Error   string            `json:"error"`             // Error message
	Details map[string]string `json:"details,omitempty"` // Validation details
}

// ValidationHelper provides shared validation functionality
type ValidationHelper struct {
	validator *validator.Validate
}

// NewValidationHelper creates a validator that reports json field names and
// understands decimal amounts and calendar dates.
func NewValidationHelper() *ValidationHelper {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		switch val := field.Interface().(type) {
		case decimal.Decimal:
			return val.InexactFloat64()
		case date.Date:
			if val.IsZero() {
				return ""
			}
			return val.String()
		}
		return nil
	}, decimal.Decimal{}, date.Date{})

	return &ValidationHelper{validator: v}
}

// ValidateStruct validates s and converts failures into a *ValidationError.
func (vh *ValidationHelper) ValidateStruct(s any) error {
	err := vh.validator.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for i, fe := range verrs {
		reason := fmt.Sprintf("Field Validation Failed on '%s' tag", fe.Tag())
		out.Fields[fe.Field()] = reason
		if i == 0 {
			out.Field, out.Reason = fe.Field(), reason
		}
	}
	return out
}

// ValidationDetails returns per-field reasons for a validation failure, nil
// for any other error.
func ValidationDetails(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		if len(ve.Fields) > 0 {
			return ve.Fields
		}
		return map[string]string{ve.Field: ve.Reason}
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = fmt.Sprintf("Field Validation Failed on '%s' tag", fe.Tag())
		}
		return details
	}
	return nil
}

// SendErrorResponse sends a JSON error response
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, validationErr error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResp := ErrorResponse{Error: message}
	if validationErr != nil {
		errorResp.Details = ValidationDetails(validationErr)
	}

	json.NewEncoder(w).Encode(errorResp)
}
