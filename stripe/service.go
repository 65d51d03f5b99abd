package stripe

import (
	"context"
	"time"

	"github.com/opencamp-hq/backend/db"
	"github.com/opencamp-hq/backend/internal"
	"github.com/opencamp-hq/backend/log"
	"github.com/opencamp-hq/backend/notifications"
	"github.com/opencamp-hq/backend/notifications/mailtemplates"
	stripeapi "github.com/stripe/stripe-go/v81"
)

// gateway is the surface of the Stripe client the service uses. Tests
// substitute it to exercise the money paths without the live API.
type gateway interface {
	ValidateWebhookEvent(payload []byte, signatureHeader string) (*stripeapi.Event, error)
	CreateRefund(paymentIntent string, amountCents int64) (*stripeapi.Refund, error)
	CreateCheckoutSession(params *CheckoutSessionParams) (*stripeapi.CheckoutSession, error)
}

// Service is the payments service. It verifies and processes gateway webhook
// events, creates checkout sessions and handles booking cancellations with
// their refunds.
type Service struct {
	client gateway
	db     *db.MongoStorage
	mailer notifications.NotificationService
	events *MemoryEventStore
	locks  *LockManager
	config *Config
}

// NewService creates the payments service. The mailer may be nil, in which
// case confirmation emails are skipped.
func NewService(config *Config, database *db.MongoStorage, mailer notifications.NotificationService) (*Service, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		client: NewClient(config),
		db:     database,
		mailer: mailer,
		events: NewMemoryEventStore(0),
		locks:  NewLockManager(),
		config: config,
	}, nil
}

// CreateCheckoutSession forwards to the underlying gateway client.
func (s *Service) CreateCheckoutSession(params *CheckoutSessionParams) (*stripeapi.CheckoutSession, error) {
	return s.client.CreateCheckoutSession(params)
}

// BookingCheckoutRequest holds the stay details a checkout session is priced
// and created from.
type BookingCheckoutRequest struct {
	UserID       internal.ObjectID
	CampgroundID internal.ObjectID
	CheckIn      string
	CheckOut     string
	Days         int
	Guests       db.Guests
	SuccessURL   string
	CancelURL    string
}

// CreateBookingCheckout prices a stay and creates the checkout session for
// it. The session metadata carries everything the completion webhook needs to
// finalize the booking later.
func (s *Service) CreateBookingCheckout(req *BookingCheckoutRequest) (*stripeapi.CheckoutSession, error) {
	campground, err := s.db.Campground(req.CampgroundID)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, NewStripeError(CodeCampgroundNotFound, "campground not found", nil)
		}
		return nil, NewStripeError(CodeStorageFailed, "failed to fetch campground", err)
	}
	user, err := s.db.User(req.UserID)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, NewStripeError(CodeUserNotFound, "user not found", nil)
		}
		return nil, NewStripeError(CodeStorageFailed, "failed to fetch user", err)
	}
	if user.Email == "" {
		return nil, NewStripeError(CodeUserMissingEmail, "user has no email", nil)
	}

	bill := NewBill(campground, &db.Trip{
		Days:   req.Days,
		Guests: req.Guests,
	}, user.Premium.Subscribed)

	return s.client.CreateCheckoutSession(&CheckoutSessionParams{
		UserID:         user.ID,
		CampgroundID:   campground.ID,
		OwnerID:        campground.Owner,
		CampgroundName: campground.Name,
		CustomerEmail:  user.Email,
		CheckIn:        req.CheckIn,
		CheckOut:       req.CheckOut,
		Days:           bill.Days,
		Guests:         req.Guests,
		AmountCents:    toMinorUnits(bill.Total),
		SuccessURL:     req.SuccessURL,
		CancelURL:      req.CancelURL,
	})
}

// ProcessWebhookEvent verifies the event signature, claims the event in the
// processed ledger and dispatches it to its handler. The claim happens before
// any mutation, so concurrent or redelivered copies of the same event are
// acknowledged without reprocessing.
func (s *Service) ProcessWebhookEvent(payload []byte, signatureHeader string) error {
	event, err := s.client.ValidateWebhookEvent(payload, signatureHeader)
	if err != nil {
		return err
	}

	// fast path for duplicate deliveries arriving close together
	if s.events.EventExists(event.ID) {
		log.Debugw("skipping already processed event", "eventID", event.ID, "type", event.Type)
		return nil
	}
	// the unique ledger insert is the atomic claim: concurrent deliveries of
	// the same event race here and exactly one reaches the handlers
	claimed, err := s.db.ClaimWebhookEvent(event.ID, string(event.Type))
	if err != nil {
		// a ledger failure must not drop the event, the handlers are written
		// to tolerate an occasional replay
		log.Warnw("could not claim webhook event in ledger", "eventID", event.ID, "error", err)
	} else if !claimed {
		log.Debugw("skipping already processed event", "eventID", event.ID, "type", event.Type)
		return nil
	}

	if err := s.HandleEvent(event); err != nil {
		if claimed {
			// free the claim so the gateway retry can reprocess the event
			if relErr := s.db.ReleaseWebhookEvent(event.ID); relErr != nil {
				log.Warnw("could not release webhook event claim",
					"eventID", event.ID, "error", relErr)
			}
		}
		return err
	}
	s.events.MarkProcessed(event.ID)
	return nil
}

// HandleEvent dispatches a verified webhook event to its handler. Event types
// without a handler are acknowledged without action.
func (s *Service) HandleEvent(event *stripeapi.Event) error {
	log.Infow("processing webhook event", "eventID", event.ID, "type", event.Type)

	switch event.Type {
	case stripeapi.EventTypeCustomerSubscriptionCreated:
		return s.handleSubscriptionCreated(event)
	case stripeapi.EventTypeCheckoutSessionCompleted:
		return s.handleCheckoutCompleted(event)
	default:
		log.Debugw("ignoring unhandled event type", "type", event.Type)
		return nil
	}
}

// handleSubscriptionCreated activates the premium subscription of the user
// whose email travels in the subscription metadata.
func (s *Service) handleSubscriptionCreated(event *stripeapi.Event) error {
	info, err := parseSubscriptionFromEvent(event)
	if err != nil {
		return NewStripeError(CodeInvalidEvent, "invalid subscription event", err)
	}

	if err := s.db.SetUserPremium(info.Email, true); err != nil {
		if err == db.ErrNotFound {
			// acknowledge anyway, retrying the delivery cannot create the user
			log.Warnw("subscription for unknown user", "email", info.Email, "subscriptionID", info.ID)
			return nil
		}
		return NewStripeError(CodeStorageFailed, "failed to activate subscription", err)
	}
	log.Infow("premium subscription activated", "email", info.Email, "subscriptionID", info.ID)

	s.sendPremiumWelcome(info.Email)
	return nil
}

// handleCheckoutCompleted finalizes a booking: it records the trip on the
// camper's document, credits the owner's earnings, pushes the owner
// notification and sends the confirmation emails.
func (s *Service) handleCheckoutCompleted(event *stripeapi.Event) error {
	info, err := parseCheckoutFromEvent(event)
	if err != nil {
		return NewStripeError(CodeInvalidEvent, "invalid checkout event", err)
	}

	unlock := s.locks.LockUser(info.UserID)
	defer unlock()

	campground, err := s.db.Campground(info.CampgroundID)
	if err != nil {
		if err == db.ErrNotFound {
			return NewStripeError(CodeCampgroundNotFound, "campground not found", nil)
		}
		return NewStripeError(CodeStorageFailed, "failed to fetch campground", err)
	}
	user, err := s.db.User(info.UserID)
	if err != nil {
		if err == db.ErrNotFound {
			return NewStripeError(CodeUserNotFound, "user not found", nil)
		}
		return NewStripeError(CodeStorageFailed, "failed to fetch user", err)
	}
	if user.Email == "" {
		return NewStripeError(CodeUserMissingEmail, "user has no email", nil)
	}

	// the gateway-reported total is authoritative for the ledger
	charge := float64(info.AmountTotal) / 100

	trip := &db.Trip{
		ID:            internal.NewObjectID(),
		CheckIn:       info.CheckIn,
		CheckOut:      info.CheckOut,
		Campground:    info.CampgroundID,
		PaymentIntent: info.PaymentIntent,
		Charge:        charge,
		Days:          info.Days,
		Guests:        info.Guests,
	}
	if err := s.db.AddTrip(user.ID, trip); err != nil {
		return NewStripeError(CodeStorageFailed, "failed to record trip", err)
	}
	log.Infow("trip recorded", "user", user.ID.Hex(), "campground", campground.ID.Hex(),
		"tripID", trip.ID.Hex(), "charge", charge)

	if err := s.db.AddCampgroundEarnings(info.CampgroundID, charge*OwnerShare); err != nil {
		// booking already stands, a missing owner accumulator only loses the
		// earnings credit
		log.Warnw("could not credit campground earnings",
			"campground", info.CampgroundID.Hex(), "error", err)
	}

	var owner *db.User
	if !info.OwnerID.IsZero() {
		owner, err = s.db.User(info.OwnerID)
		if err != nil {
			log.Warnw("could not resolve campground owner",
				"owner", info.OwnerID.Hex(), "error", err)
			owner = nil
		}
	}
	if owner != nil {
		notification := &db.Notification{
			Campground: campground.ID,
			User:       user.ID,
			Dates:      db.StayDates{CheckIn: trip.CheckIn, CheckOut: trip.CheckOut},
			Guests:     trip.Guests,
			CreatedAt:  time.Now(),
		}
		if err := s.db.AddNotification(owner.ID, notification); err != nil {
			log.Warnw("could not push owner notification", "owner", owner.ID.Hex(), "error", err)
		}
	}

	s.sendBookingEmails(user, owner, campground, trip)
	return nil
}

// CancelBooking refunds and removes a trip. Non-premium users get 85% of the
// stored charge back; premium users get the full charge. The owner's earnings
// accumulator is decremented by the owner share of the refunded amount.
func (s *Service) CancelBooking(userID, tripID internal.ObjectID) (*stripeapi.Refund, error) {
	unlock := s.locks.LockUser(userID)
	defer unlock()

	user, err := s.db.User(userID)
	if err != nil {
		if err == db.ErrNotFound {
			return nil, NewStripeError(CodeUserNotFound, "user not found", nil)
		}
		return nil, NewStripeError(CodeStorageFailed, "failed to fetch user", err)
	}

	trip := user.TripByID(tripID)
	if trip == nil {
		return nil, NewStripeError(CodeTripNotFound, "trip not found", nil)
	}

	amount := refundAmount(trip.Charge, user.Premium.Subscribed)
	refund, err := s.client.CreateRefund(trip.PaymentIntent, toMinorUnits(amount))
	if err != nil {
		return nil, err
	}
	if refund.Status != stripeapi.RefundStatusSucceeded {
		return refund, NewStripeError(CodeRefundRejected, "refund was not accepted", nil)
	}
	log.Infow("refund issued", "user", user.ID.Hex(), "tripID", tripID.Hex(),
		"amount", amount, "refundID", refund.ID)

	if err := s.db.DelTrip(userID, tripID); err != nil {
		return refund, NewStripeError(CodeStorageFailed, "failed to remove trip", err)
	}
	if err := s.db.AddCampgroundEarnings(trip.Campground, -amount*OwnerShare); err != nil {
		// the refund and trip removal stand either way
		log.Warnw("could not reverse campground earnings",
			"campground", trip.Campground.Hex(), "error", err)
	}
	return refund, nil
}

// sendBookingEmails sends the confirmation email to the camper and, when the
// owner is known, the booking alert to the owner. Failures are logged and
// never surfaced: the booking is already recorded.
func (s *Service) sendBookingEmails(user, owner *db.User, campground *db.Campground, trip *db.Trip) {
	if s.mailer == nil {
		return
	}
	bill := NewBill(campground, trip, user.Premium.Subscribed)
	data := &mailtemplates.BookingData{
		UserName:        user.Name,
		CampgroundName:  campground.Name,
		City:            campground.Location.City,
		State:           campground.Location.State,
		Country:         campground.Location.Country,
		CheckIn:         trip.CheckIn,
		CheckOut:        trip.CheckOut,
		Adults:          trip.Guests.Adults,
		Children:        trip.Guests.Children,
		Infants:         trip.Guests.Infants,
		Days:            bill.Days,
		AdultRate:       bill.AdultRate,
		ChildRate:       bill.ChildRate,
		BasePrice:       bill.BasePrice,
		DiscountPercent: bill.DiscountPercent,
		DiscountAmount:  bill.DiscountAmount,
		PremiumDiscount: bill.PremiumDiscount,
		Premium:         user.Premium.Subscribed,
		Total:           bill.Total,
		OwnerEarnings:   bill.OwnerEarnings(),
	}

	s.sendTemplate(mailtemplates.BookingConfirmationNotification, data, user.Name, user.Email)

	if owner != nil && owner.Email != "" {
		ownerData := *data
		ownerData.OwnerName = owner.Name
		s.sendTemplate(mailtemplates.OwnerBookingAlertNotification, &ownerData, owner.Name, owner.Email)
	}
}

// sendPremiumWelcome sends the premium welcome email, best effort.
func (s *Service) sendPremiumWelcome(email string) {
	if s.mailer == nil {
		return
	}
	user, err := s.db.UserByEmail(email)
	if err != nil {
		log.Warnw("could not load user for welcome email", "email", email, "error", err)
		return
	}
	s.sendTemplate(mailtemplates.PremiumWelcomeNotification, &mailtemplates.BookingData{
		UserName: user.Name,
	}, user.Name, user.Email)
}

func (s *Service) sendTemplate(template mailtemplates.MailTemplate, data any, toName, toAddress string) {
	notification, err := template.ExecTemplate(data)
	if err != nil {
		log.Warnw("could not render email", "template", template.Key, "error", err)
		return
	}
	notification.ToName = toName
	notification.ToAddress = toAddress

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.mailer.SendNotification(ctx, notification); err != nil {
		log.Warnw("could not send email", "template", template.Key,
			"to", toAddress, "error", err)
	}
}
