package api

import (
	"github.com/opencamp-hq/backend/db"
	"github.com/opencamp-hq/backend/internal"
)

// CancelBookingRequest is the request to cancel a booked trip.
type CancelBookingRequest struct {
	User internal.ObjectID `json:"user"`
	Trip internal.ObjectID `json:"trip"`
}

// CheckoutRequest is the request to create a checkout session for a stay.
type CheckoutRequest struct {
	User       internal.ObjectID `json:"user"`
	Campground internal.ObjectID `json:"campground"`
	CheckIn    string            `json:"checkIn"`
	CheckOut   string            `json:"checkOut"`
	Days       int               `json:"days"`
	Guests     db.Guests         `json:"guests"`
}

// CheckoutResponse carries the created checkout session the front end
// redirects the user to.
type CheckoutResponse struct {
	ClientSecret string `json:"clientSecret,omitempty"`
	SessionID    string `json:"sessionId"`
	URL          string `json:"url"`
}
