package stripe

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/opencamp-hq/backend/db"
	"github.com/opencamp-hq/backend/internal"
	stripeapi "github.com/stripe/stripe-go/v81"
)

// CheckoutInfo represents the booking information extracted from a
// checkout.session.completed event. The references and stay details travel in
// the session metadata; the charged total and payment intent come from the
// session object itself, and the total is authoritative for the ledger.
type CheckoutInfo struct {
	UserID        internal.ObjectID
	CampgroundID  internal.ObjectID
	OwnerID       internal.ObjectID
	CheckIn       string
	CheckOut      string
	Days          int
	Guests        db.Guests
	AmountTotal   int64 // minor units, as reported by the gateway
	PaymentIntent string
}

// SubscriptionInfo represents the information extracted from a
// customer.subscription.created event.
type SubscriptionInfo struct {
	ID    string
	Email string
}

// parseCheckoutFromEvent extracts booking information from a webhook event.
func parseCheckoutFromEvent(event *stripeapi.Event) (*CheckoutInfo, error) {
	var session stripeapi.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return nil, fmt.Errorf("failed to parse checkout session from event: %v", err)
	}

	userID, err := internal.ObjectIDFromHex(session.Metadata["user"])
	if err != nil {
		return nil, fmt.Errorf("checkout session missing user metadata: %v", err)
	}
	campgroundID, err := internal.ObjectIDFromHex(session.Metadata["camp"])
	if err != nil {
		return nil, fmt.Errorf("checkout session missing camp metadata: %v", err)
	}
	// the owner reference is best effort, a missing owner only skips the
	// notification step later on
	ownerID, _ := internal.ObjectIDFromHex(session.Metadata["owner"])

	info := &CheckoutInfo{
		UserID:       userID,
		CampgroundID: campgroundID,
		OwnerID:      ownerID,
		CheckIn:      session.Metadata["checkIn"],
		CheckOut:     session.Metadata["checkOut"],
		Days:         atoiOrZero(session.Metadata["days"]),
		Guests: db.Guests{
			Adults:   atoiOrZero(session.Metadata["adults"]),
			Children: atoiOrZero(session.Metadata["children"]),
			Infants:  atoiOrZero(session.Metadata["infants"]),
		},
		AmountTotal: session.AmountTotal,
	}
	if session.PaymentIntent != nil {
		info.PaymentIntent = session.PaymentIntent.ID
	}
	return info, nil
}

// parseSubscriptionFromEvent extracts subscription information from a webhook
// event.
func parseSubscriptionFromEvent(event *stripeapi.Event) (*SubscriptionInfo, error) {
	var subscription stripeapi.Subscription
	if err := json.Unmarshal(event.Data.Raw, &subscription); err != nil {
		return nil, fmt.Errorf("failed to parse subscription from event: %v", err)
	}

	email := subscription.Metadata["email"]
	if email == "" {
		return nil, fmt.Errorf("subscription missing email metadata")
	}

	return &SubscriptionInfo{
		ID:    subscription.ID,
		Email: email,
	}, nil
}

// atoiOrZero parses a metadata counter, falling back to zero on malformed
// values the same way the booking front end does.
func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
