package api

import (
	"encoding/json"
	"net/http"

	"github.com/opencamp-hq/backend/errors"
	"github.com/opencamp-hq/backend/stripe"
)

// cancelBookingHandler handles the cancellation of a booked trip. It refunds
// the charge through the payment gateway, removes the trip from the user's
// document and reverses the owner's earnings. Non-premium users are refunded
// 85% of the stored charge; premium users the full charge.
func (a *API) cancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	req := &CancelBookingRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		errors.ErrMalformedBody.Write(w)
		return
	}
	if req.User.IsZero() || req.Trip.IsZero() {
		errors.ErrInvalidBookingData.With("user and trip references are required").Write(w)
		return
	}

	refund, err := a.stripe.CancelBooking(req.User, req.Trip)
	if err != nil {
		switch stripe.ErrorCode(err) {
		case stripe.CodeUserNotFound:
			errors.ErrUserNotFound.Write(w)
		case stripe.CodeTripNotFound:
			errors.ErrTripNotFound.Write(w)
		case stripe.CodeRefundRejected:
			// the gateway answered but did not accept the refund, include the
			// refund object so the client can inspect its status
			errors.ErrRefundRejected.WithData(refund).Write(w)
		case stripe.CodeAPICallFailed:
			errors.ErrStripeError.WithErr(err).Write(w)
		case stripe.CodeStorageFailed:
			errors.ErrInternalStorageError.WithErr(err).Write(w)
		default:
			errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		}
		return
	}

	httpWriteJSON(w, refund)
}

// checkoutHandler creates a payment checkout session for a stay. The session
// metadata carries the booking details the webhook consumes on completion.
func (a *API) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	req := &CheckoutRequest{}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		errors.ErrMalformedBody.Write(w)
		return
	}
	if req.User.IsZero() || req.Campground.IsZero() {
		errors.ErrInvalidBookingData.With("user and campground references are required").Write(w)
		return
	}
	if req.CheckIn == "" || req.CheckOut == "" || req.Days < 1 {
		errors.ErrInvalidBookingData.With("stay dates and days are required").Write(w)
		return
	}
	if req.Guests.Adults < 1 {
		errors.ErrInvalidBookingData.With("at least one adult guest is required").Write(w)
		return
	}

	session, err := a.stripe.CreateBookingCheckout(&stripe.BookingCheckoutRequest{
		UserID:       req.User,
		CampgroundID: req.Campground,
		CheckIn:      req.CheckIn,
		CheckOut:     req.CheckOut,
		Days:         req.Days,
		Guests:       req.Guests,
		SuccessURL:   a.webAppURL + "/bookings/success",
		CancelURL:    a.webAppURL + "/bookings/cancelled",
	})
	if err != nil {
		switch stripe.ErrorCode(err) {
		case stripe.CodeUserNotFound:
			errors.ErrUserNotFound.Write(w)
		case stripe.CodeUserMissingEmail:
			errors.ErrUserMissingEmail.Write(w)
		case stripe.CodeCampgroundNotFound:
			errors.ErrCampgroundNotFound.Write(w)
		case stripe.CodeAPICallFailed:
			errors.ErrStripeError.WithErr(err).Write(w)
		default:
			errors.ErrGenericInternalServerError.WithErr(err).Write(w)
		}
		return
	}

	httpWriteJSON(w, &CheckoutResponse{
		ClientSecret: session.ClientSecret,
		SessionID:    session.ID,
		URL:          session.URL,
	})
}
