// Package errors provides the coded error catalog used by the HTTP API.
//
//nolint:lll
package errors

import (
	"fmt"
	"net/http"
)

// Error codes in the 40001-49999 range are the client's fault and return an
// HTTP 4xx status. Codes 50001-59999 are the server's fault and return 5xx.
// Never change an existing code, only append after the current last one.
var (
	// Validation errors (400)
	ErrMalformedBody       = Error{Code: 40001, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid JSON request body")}
	ErrMissingSignature    = Error{Code: 40003, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("missing signature or webhook secret")}
	ErrWebhookVerification = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("webhook signature verification failed")}
	ErrUserMissingEmail    = Error{Code: 40005, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("user has no email address")}
	ErrInvalidBookingData  = Error{Code: 40006, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid booking data provided")}

	// Not found errors (404, or 400 for webhook contract)
	ErrUserNotFound              = Error{Code: 40007, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("user not found")}
	ErrTripNotFound              = Error{Code: 40008, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("trip not found")}
	ErrCampgroundNotFound        = Error{Code: 40009, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("campground not found")}
	ErrWebhookUserNotFound       = Error{Code: 40010, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("user not found")}
	ErrWebhookCampgroundNotFound = Error{Code: 40011, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("campground not found")}

	// Server errors (500)
	ErrGenericInternalServerError = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: operation failed")}
	ErrMarshalingServerJSONFailed = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("server error: failed to process response")}
	ErrRefundRejected             = Error{Code: 50003, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("refund was not accepted by the payment gateway")}
	ErrStripeError                = Error{Code: 50004, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("payment gateway error")}
	ErrInternalStorageError       = Error{Code: 50005, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("internal storage error")}
)
