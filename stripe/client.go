package stripe

import (
	"fmt"
	"math"
	"strconv"

	"github.com/opencamp-hq/backend/db"
	"github.com/opencamp-hq/backend/internal"
	stripeapi "github.com/stripe/stripe-go/v81"
	stripecheckoutsession "github.com/stripe/stripe-go/v81/checkout/session"
	striperefund "github.com/stripe/stripe-go/v81/refund"
	stripewebhook "github.com/stripe/stripe-go/v81/webhook"
)

// Client wraps the Stripe API client with additional functionality.
type Client struct {
	config *Config
}

// NewClient creates a new Stripe client with the given configuration.
func NewClient(config *Config) *Client {
	stripeapi.Key = config.APIKey

	return &Client{
		config: config,
	}
}

// ValidateWebhookEvent validates and parses a webhook event. The payload must
// be the raw (unparsed) request body.
func (c *Client) ValidateWebhookEvent(payload []byte, signatureHeader string) (*stripeapi.Event, error) {
	event, err := stripewebhook.ConstructEvent(payload, signatureHeader, c.config.WebhookSecret)
	if err != nil {
		return nil, NewStripeError(CodeWebhookValidation, "webhook signature validation failed", err)
	}
	return &event, nil
}

// CreateRefund requests a refund for the given payment intent. The amount is
// expressed in minor units (cents).
func (*Client) CreateRefund(paymentIntent string, amountCents int64) (*stripeapi.Refund, error) {
	params := &stripeapi.RefundParams{
		PaymentIntent: stripeapi.String(paymentIntent),
		Amount:        stripeapi.Int64(amountCents),
	}
	refund, err := striperefund.New(params)
	if err != nil {
		return nil, NewStripeError(CodeAPICallFailed, "failed to create refund", err)
	}
	return refund, nil
}

// CheckoutSessionParams holds the parameters for creating a booking checkout
// session. The metadata mirrors exactly what the webhook consumes when the
// session completes.
type CheckoutSessionParams struct {
	UserID         internal.ObjectID
	CampgroundID   internal.ObjectID
	OwnerID        internal.ObjectID
	CampgroundName string
	CustomerEmail  string
	CheckIn        string
	CheckOut       string
	Days           int
	Guests         db.Guests
	AmountCents    int64
	SuccessURL     string
	CancelURL      string
}

// CreateCheckoutSession creates a payment-mode checkout session for a stay.
// The session carries the booking metadata the webhook later reads from the
// checkout.session.completed event.
func (*Client) CreateCheckoutSession(params *CheckoutSessionParams) (*stripeapi.CheckoutSession, error) {
	checkoutParams := &stripeapi.CheckoutSessionParams{
		Mode: stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{
			{
				PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripeapi.String(string(stripeapi.CurrencyUSD)),
					UnitAmount: stripeapi.Int64(params.AmountCents),
					ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripeapi.String(fmt.Sprintf("Stay at %s", params.CampgroundName)),
					},
				},
				Quantity: stripeapi.Int64(1),
			},
		},
		CustomerEmail: stripeapi.String(params.CustomerEmail),
		SuccessURL:    stripeapi.String(params.SuccessURL),
		CancelURL:     stripeapi.String(params.CancelURL),
	}
	checkoutParams.AddMetadata("user", params.UserID.Hex())
	checkoutParams.AddMetadata("camp", params.CampgroundID.Hex())
	checkoutParams.AddMetadata("owner", params.OwnerID.Hex())
	checkoutParams.AddMetadata("checkIn", params.CheckIn)
	checkoutParams.AddMetadata("checkOut", params.CheckOut)
	checkoutParams.AddMetadata("days", strconv.Itoa(params.Days))
	checkoutParams.AddMetadata("adults", strconv.Itoa(params.Guests.Adults))
	checkoutParams.AddMetadata("children", strconv.Itoa(params.Guests.Children))
	checkoutParams.AddMetadata("infants", strconv.Itoa(params.Guests.Infants))

	session, err := stripecheckoutsession.New(checkoutParams)
	if err != nil {
		return nil, NewStripeError(CodeAPICallFailed, "failed to create checkout session", err)
	}

	return session, nil
}

// toMinorUnits converts a major-unit amount (dollars) into the minor units
// (cents) the gateway expects.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
