package api

// API endpoints.
const (
	// POST /bookings/cancel refunds and removes a booked trip.
	bookingsCancelEndpoint = "/bookings/cancel"
	// POST /bookings/checkout creates a payment checkout session for a stay.
	bookingsCheckoutEndpoint = "/bookings/checkout"
	// POST /stripe/webhook receives the payment gateway webhook events.
	stripeWebhookEndpoint = "/stripe/webhook"
)
