// Package web defines common components for a web application.
package web

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Response holds the common response type for all APIs.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Error wraps a given err into json frinedly struct.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// BindingError converts a request binding error into a response.
//
// Validation errors are reported for the first invalid field only.
func BindingError(err error) Response {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		field := ve[0]
		return Response{Error: toSnakeCase(field.Field()) + GetErrorMsg(field)}
	}

	return Response{Error: "invalid request body"}
}

// GetErrorMsg returns human readable ending for the failed validation tag.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " field is required"
	case "min":
		return " must be at least " + fe.Param()
	case "max":
		return " must be at most " + fe.Param()
	case "gt":
		return " must be greater than " + fe.Param()
	case "gte":
		return " must be greater than or equal to " + fe.Param()
	case "uuid", "uuid4":
		return " must be a valid uuid"
	case "currency":
		return " must be a three letter currency code"
	case "oneof":
		return " must be one of: " + fe.Param()
	}

	return " is invalid"
}

func toSnakeCase(s string) string {
	var sb strings.Builder

	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				sb.WriteByte('_')
			}

			r += 'a' - 'A'
		}

		sb.WriteRune(r)
	}

	return sb.String()
}
