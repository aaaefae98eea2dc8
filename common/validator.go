package common

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateAndDecode decodes a JSON request body into payload and runs
// struct validation. Validation happens before any store call.
func ValidateAndDecode(r *http.Request, payload interface{}) *AppError {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		return NewAppError(http.StatusBadRequest, "Invalid request body", err)
	}
	return Validate(payload)
}

// Validate runs struct validation on an already-populated payload. Used by
// the HTML form paths where values arrive URL-encoded.
func Validate(payload interface{}) *AppError {
	if err := validate.Struct(payload); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		return NewAppError(http.StatusBadRequest, validationErrors.Error(), err)
	}
	return nil
}
