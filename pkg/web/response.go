// Package web defines common components for a web application.
package web

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	AccessToken           string     `json:"access_token,omitempty"`
	AccessTokenExpiresAt  *time.Time `json:"access_token_expires_at,omitempty"`
	RefreshToken          string     `json:"refresh_token,omitempty"`
	RefreshTokenExpiresAt *time.Time `json:"refresh_token_expires_at,omitempty"`
	Data                  any        `json:"data,omitempty"`
	Error                 string     `json:"error,omitempty"`
}

// Error wraps a given err into json frinedly struct.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// BindingError converts a request binding error into a response.
//
// Validation failures are reported for the first failing field in a human
// readable form; any other error (e.g. malformed JSON) is reported as is.
func BindingError(err error) Response {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return Response{Error: GetErrorMsg(ve[0])}
	}

	return Error(err)
}

// GetErrorMsg returns a human readable message for the failed validation.
func GetErrorMsg(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return field + " field is required"
	case "min":
		return field + " must be at least " + fe.Param() + " characters long"
	case "max":
		return field + " must be less than " + fe.Param()
	case "alphanum":
		return field + " must contain only letters and digits"
	case "numeric":
		return field + " must contain only digits"
	case "accountkind":
		return field + " must be one of savings, current"
	case "amount":
		return field + " must be a decimal number"
	}

	return field + " is invalid"
}
