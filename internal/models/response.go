package models

// ErrorResponse is the body for simple failures.
type ErrorResponse struct {
	Msg string `json:"msg"`
}

// FieldError is one entry of a validation failure.
type FieldError struct {
	Field string `json:"field,omitempty"`
	Msg   string `json:"msg"`
}

// ValidationErrorResponse carries the full list of request-shape problems.
type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// NewErrorResponse creates a simple error response
func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{Msg: msg}
}

// NewValidationErrorResponse creates a validation error response
func NewValidationErrorResponse(errs []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse{Errors: errs}
}
