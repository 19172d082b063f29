package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured application error with HTTP status code.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`

	// Remaining carries the exact remaining allowance on quota rejections.
	Remaining *int `json:"remaining,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error constructors.

func ErrNotFound(msg string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: msg}
}

func ErrUnauthorized(msg string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: msg}
}

func ErrForbidden(msg string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: msg}
}

func ErrBadRequest(msg string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: msg}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: http.StatusUnprocessableEntity, Message: msg}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: msg}
}

func ErrInternal(msg string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: msg, Err: err}
}

// ErrQuotaExceeded rejects an issuance that would overrun the owner's tier
// limit. The remaining allowance is reported back to the caller verbatim.
func ErrQuotaExceeded(remaining int) *AppError {
	return &AppError{
		Code:      http.StatusForbidden,
		Message:   fmt.Sprintf("coupon limit reached, you can only create %d more coupons", remaining),
		Remaining: &remaining,
	}
}

// ErrCouponNotRedeemable covers not-found, wrong-owner, already-used and
// expired in a single terminal outcome. The cases are deliberately not
// distinguished to the caller.
func ErrCouponNotRedeemable() *AppError {
	return &AppError{Code: http.StatusConflict, Message: "coupon invalid, used, or not owned"}
}

// ErrNoPrizesAvailable rejects a spin when the owner has no prizes to award.
func ErrNoPrizesAvailable() *AppError {
	return &AppError{Code: http.StatusConflict, Message: "no prizes available currently"}
}

// AsAppError attempts to extract an AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
