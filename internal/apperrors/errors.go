// Package apperrors defines the domain error taxonomy. Every domain
// error is raised synchronously and translated at the HTTP boundary
// into a uniform {success:false, message, errors:[]} envelope with the
// matching status code.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a domain error carrying the HTTP status it maps to.
type APIError struct {
	StatusCode int      `json:"-"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
	err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.err
}

// New creates an APIError with an arbitrary status code.
func New(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

// Wrap attaches an underlying cause for logging and errors.Is checks.
func (e *APIError) Wrap(err error) *APIError {
	clone := *e
	clone.err = err
	return &clone
}

// NewValidation reports missing or malformed input (400). Field-level
// detail goes into the errors list of the envelope.
func NewValidation(message string, fieldErrors ...string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Message: message, Errors: fieldErrors}
}

// NewNotFound reports an absent resource (404).
func NewNotFound(message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Message: message}
}

// NewAuth reports missing or invalid credentials (401).
func NewAuth(message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Message: message}
}

// NewForbidden reports an authorization failure (403).
func NewForbidden(message string) *APIError {
	return &APIError{StatusCode: http.StatusForbidden, Message: message}
}

// NewConflict reports a uniqueness or state conflict (409).
func NewConflict(message string) *APIError {
	return &APIError{StatusCode: http.StatusConflict, Message: message}
}

// NewPaymentFailed reports a failed or unconfirmed payment
// authorization (402). A collaborator timeout is a failure, never a
// success.
func NewPaymentFailed(message string) *APIError {
	return &APIError{StatusCode: http.StatusPaymentRequired, Message: message}
}

// NewInternal reports an unexpected failure (500).
func NewInternal(message string) *APIError {
	return &APIError{StatusCode: http.StatusInternalServerError, Message: message}
}

// ErrEmptyCart is returned by checkout operations on a cart with no
// line items. No order is ever created from an empty cart.
var ErrEmptyCart = &APIError{StatusCode: http.StatusBadRequest, Message: "Your cart is empty."}

// InsufficientStockError reports that a requested quantity exceeds the
// shoe's current stock. It names the shoe and carries the remaining
// count so callers can adjust.
type InsufficientStockError struct {
	ShoeName  string
	Requested int
	Remaining int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Not enough stock for %s. Only %d left.", e.ShoeName, e.Remaining)
}

// ReconciliationError marks an order that was committed but whose
// follow-up stock or cart updates did not complete. The order exists;
// operators must repair the remainder. It is deliberately distinct
// from a generic internal error.
type ReconciliationError struct {
	OrderID string
	Err     error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("order %s committed but reconciliation is pending: %v", e.OrderID, e.Err)
}

func (e *ReconciliationError) Unwrap() error {
	return e.Err
}

// StatusCode maps any error to the HTTP status of its taxonomy class,
// defaulting to 500 for unexpected errors.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var stockErr *InsufficientStockError
	if errors.As(err, &stockErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
