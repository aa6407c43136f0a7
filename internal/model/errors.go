package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode represents API error codes
type ErrorCode int

const (
	// Authentication errors (1xxx)
	ErrCodeLoginFailed ErrorCode = 1004

	// Resource errors (3xxx)
	ErrCodeNotFound      ErrorCode = 3001
	ErrCodeAlreadyExists ErrorCode = 3002
	ErrCodeConflict      ErrorCode = 3003

	// Validation errors (4xxx)
	ErrCodeValidation   ErrorCode = 4001
	ErrCodeInvalidInput ErrorCode = 4002
	ErrCodeRateLimited  ErrorCode = 4029

	// Internal errors (5xxx)
	ErrCodeInternal    ErrorCode = 5001
	ErrCodeDatabase    ErrorCode = 5002
	ErrCodeExternalAPI ErrorCode = 5003
)

// MissingFieldsMessage is returned when required body fields are absent or empty
const MissingFieldsMessage = "Missing or empty fields"

// APIError is the failure envelope shared by every route:
//
//	{"result": false, "error": "User not found", "code": 3001}
type APIError struct {
	Result  bool         `json:"result"`
	Message string       `json:"error"`
	Code    ErrorCode    `json:"code,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
	Status  int          `json:"-"`
}

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// WriteJSON writes the envelope with its status code
func (e *APIError) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

func newAPIError(status int, code ErrorCode, msg string) *APIError {
	return &APIError{Status: status, Code: code, Message: msg}
}

// Common error constructors

// NewMissingFieldsError lists the required fields that were absent or empty
func NewMissingFieldsError(fields []string) *APIError {
	e := newAPIError(http.StatusBadRequest, ErrCodeValidation, MissingFieldsMessage)
	for _, f := range fields {
		e.Fields = append(e.Fields, FieldError{Field: f, Message: "required"})
	}
	return e
}

// NewValidationError reports a rejected input; fields are optional
func NewValidationError(msg string, fields ...FieldError) *APIError {
	e := newAPIError(http.StatusBadRequest, ErrCodeValidation, msg)
	e.Fields = fields
	return e
}

func NewBadRequestError(msg string) *APIError {
	return newAPIError(http.StatusBadRequest, ErrCodeInvalidInput, msg)
}

func NewLoginFailedError(msg string) *APIError {
	return newAPIError(http.StatusUnauthorized, ErrCodeLoginFailed, msg)
}

func NewNotFoundError(msg string) *APIError {
	return newAPIError(http.StatusNotFound, ErrCodeNotFound, msg)
}

func NewAlreadyExistsError(msg string) *APIError {
	return newAPIError(http.StatusConflict, ErrCodeAlreadyExists, msg)
}

func NewConflictError(msg string) *APIError {
	return newAPIError(http.StatusConflict, ErrCodeConflict, msg)
}

func NewInternalError(msg string) *APIError {
	if msg == "" {
		msg = "An unexpected error occurred"
	}
	return newAPIError(http.StatusInternalServerError, ErrCodeInternal, msg)
}

func NewDatabaseError() *APIError {
	return newAPIError(http.StatusInternalServerError, ErrCodeDatabase, "Database error")
}

func NewUpstreamError(msg string) *APIError {
	return newAPIError(http.StatusBadGateway, ErrCodeExternalAPI, msg)
}

func NewRateLimitError(retryAfter int) *APIError {
	return newAPIError(http.StatusTooManyRequests, ErrCodeRateLimited,
		fmt.Sprintf("Rate limit exceeded. Retry after %d seconds", retryAfter))
}
