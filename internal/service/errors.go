package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors shared across services. Handlers map these onto
// response codes with errors.Is.
var (
	ErrForbidden = errors.New("forbidden")

	ErrOfferNotFound      = errors.New("offer not found")
	ErrOfferInvalid       = errors.New("offer invalid")
	ErrOfferConflict      = errors.New("offer status conflict")
	ErrOfferNotLive       = errors.New("offer not live")
	ErrOfferFetchFailed   = errors.New("offer fetch failed")
	ErrOfferCreateFailed  = errors.New("offer create failed")
	ErrOfferUpdateFailed  = errors.New("offer update failed")
	ErrOfferDeleteFailed  = errors.New("offer delete failed")
	ErrQuotaConfigInvalid = errors.New("quota config invalid")

	ErrRedemptionNotFound     = errors.New("redemption not found")
	ErrRedemptionInvalid      = errors.New("redemption invalid")
	ErrRedemptionFetchFailed  = errors.New("redemption fetch failed")
	ErrRedemptionCreateFailed = errors.New("redemption create failed")
	ErrAlreadySettled         = errors.New("redemption already settled")
	ErrQuotaExceeded          = errors.New("quota exceeded")

	ErrAssignmentInvalid    = errors.New("assignment invalid")
	ErrAssignmentSyncFailed = errors.New("assignment sync failed")
	ErrRoleConflict         = errors.New("role conflict")

	ErrUserNotFound     = errors.New("user not found")
	ErrUserInvalid      = errors.New("user invalid")
	ErrUserExists       = errors.New("user already exists")
	ErrUserDisabled     = errors.New("user disabled")
	ErrUserFetchFailed  = errors.New("user fetch failed")
	ErrUserCreateFailed = errors.New("user create failed")
	ErrUserUpdateFailed = errors.New("user update failed")

	ErrProviderNotFound = errors.New("provider not found")
	ErrProviderInvalid  = errors.New("provider invalid")

	ErrReferenceNotFound = errors.New("reference not found")
	ErrReferenceInvalid  = errors.New("reference invalid")
	ErrReferenceInUse    = errors.New("reference in use")

	ErrNotificationNotFound = errors.New("notification not found")

	ErrPasswordInvalid    = errors.New("password invalid")
	ErrCredentialsInvalid = errors.New("credentials invalid")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
	ErrLoginRateLimited   = errors.New("login rate limited")
	ErrTokenInvalid       = errors.New("token invalid")

	ErrQueueUnavailable = errors.New("queue unavailable")
)

// ValidationError field-level input failure with per-field messages
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add records a field failure
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

// HasErrors reports whether any field failed
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError unwraps a validation error
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
