package stripe

import (
	"fmt"
)

// StripeError represents a Stripe-specific error. The Code is used by the
// HTTP layer to map failures to response statuses.
type StripeError struct {
	Code    string
	Message string
	Err     error
}

func (e *StripeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("stripe error [%s]: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("stripe error [%s]: %s", e.Code, e.Message)
}

func (e *StripeError) Unwrap() error {
	return e.Err
}

// Error codes used across the package.
const (
	CodeWebhookValidation  = "webhook_validation"
	CodeInvalidEvent       = "invalid_event"
	CodeUserNotFound       = "user_not_found"
	CodeUserMissingEmail   = "user_missing_email"
	CodeCampgroundNotFound = "campground_not_found"
	CodeTripNotFound       = "trip_not_found"
	CodeRefundRejected     = "refund_rejected"
	CodeAPICallFailed      = "api_call_failed"
	CodeStorageFailed      = "storage_failed"
)

// NewStripeError creates a new StripeError with the given code, message, and
// underlying error.
func NewStripeError(code, message string, err error) *StripeError {
	return &StripeError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ErrorCode returns the StripeError code of err, or an empty string when err
// is not a StripeError.
func ErrorCode(err error) string {
	if stripeErr, ok := err.(*StripeError); ok {
		return stripeErr.Code
	}
	return ""
}
