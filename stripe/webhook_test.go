package stripe

import (
	"encoding/json"
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/opencamp-hq/backend/internal"
	stripeapi "github.com/stripe/stripe-go/v81"
)

func checkoutEvent(c *qt.C, metadata map[string]string, amountTotal int64, paymentIntent string) *stripeapi.Event {
	session := map[string]any{
		"id":           "cs_test_123",
		"object":       "checkout.session",
		"amount_total": amountTotal,
		"metadata":     metadata,
	}
	if paymentIntent != "" {
		session["payment_intent"] = paymentIntent
	}
	raw, err := json.Marshal(session)
	c.Assert(err, qt.IsNil)
	return &stripeapi.Event{
		ID:   "evt_test_123",
		Type: stripeapi.EventTypeCheckoutSessionCompleted,
		Data: &stripeapi.EventData{Raw: raw},
	}
}

func TestParseCheckoutFromEvent(t *testing.T) {
	c := qt.New(t)

	userID := internal.NewObjectID()
	campID := internal.NewObjectID()
	ownerID := internal.NewObjectID()
	event := checkoutEvent(c, map[string]string{
		"user":     userID.Hex(),
		"camp":     campID.Hex(),
		"owner":    ownerID.Hex(),
		"checkIn":  "2026-09-01",
		"checkOut": "2026-09-04",
		"days":     "3",
		"adults":   "2",
		"children": "1",
		"infants":  "1",
	}, 21600, "pi_test_123")

	info, err := parseCheckoutFromEvent(event)
	c.Assert(err, qt.IsNil)
	c.Assert(info.UserID, qt.Equals, userID)
	c.Assert(info.CampgroundID, qt.Equals, campID)
	c.Assert(info.OwnerID, qt.Equals, ownerID)
	c.Assert(info.CheckIn, qt.Equals, "2026-09-01")
	c.Assert(info.CheckOut, qt.Equals, "2026-09-04")
	c.Assert(info.Days, qt.Equals, 3)
	c.Assert(info.Guests.Adults, qt.Equals, 2)
	c.Assert(info.Guests.Children, qt.Equals, 1)
	c.Assert(info.Guests.Infants, qt.Equals, 1)
	c.Assert(info.AmountTotal, qt.Equals, int64(21600))
	c.Assert(info.PaymentIntent, qt.Equals, "pi_test_123")
}

func TestParseCheckoutMissingMetadata(t *testing.T) {
	c := qt.New(t)

	// no user reference
	event := checkoutEvent(c, map[string]string{
		"camp": internal.NewObjectID().Hex(),
	}, 1000, "")
	_, err := parseCheckoutFromEvent(event)
	c.Assert(err, qt.IsNotNil)

	// no campground reference
	event = checkoutEvent(c, map[string]string{
		"user": internal.NewObjectID().Hex(),
	}, 1000, "")
	_, err = parseCheckoutFromEvent(event)
	c.Assert(err, qt.IsNotNil)
}

func TestParseCheckoutMissingOwner(t *testing.T) {
	c := qt.New(t)

	// a missing owner is tolerated, it only skips the notification step
	event := checkoutEvent(c, map[string]string{
		"user":   internal.NewObjectID().Hex(),
		"camp":   internal.NewObjectID().Hex(),
		"days":   "not-a-number",
		"adults": "2",
	}, 1000, "")
	info, err := parseCheckoutFromEvent(event)
	c.Assert(err, qt.IsNil)
	c.Assert(info.OwnerID.IsZero(), qt.IsTrue)
	c.Assert(info.Days, qt.Equals, 0)
	c.Assert(info.Guests.Adults, qt.Equals, 2)
	c.Assert(info.PaymentIntent, qt.Equals, "")
}

func TestParseSubscriptionFromEvent(t *testing.T) {
	c := qt.New(t)

	raw := []byte(fmt.Sprintf(`{"id":"sub_test_123","metadata":{"email":%q}}`, "camper@example.com"))
	event := &stripeapi.Event{
		ID:   "evt_test_456",
		Type: stripeapi.EventTypeCustomerSubscriptionCreated,
		Data: &stripeapi.EventData{Raw: raw},
	}

	info, err := parseSubscriptionFromEvent(event)
	c.Assert(err, qt.IsNil)
	c.Assert(info.ID, qt.Equals, "sub_test_123")
	c.Assert(info.Email, qt.Equals, "camper@example.com")

	// missing email metadata is an error
	event.Data.Raw = []byte(`{"id":"sub_test_123","metadata":{}}`)
	_, err = parseSubscriptionFromEvent(event)
	c.Assert(err, qt.IsNotNil)
}
