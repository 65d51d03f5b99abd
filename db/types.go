package db

import (
	"time"

	"github.com/opencamp-hq/backend/internal"
)

// User is a registered camper. A user may also own campgrounds, in which case
// the per-campground earnings accumulators live on their document.
type User struct {
	ID            internal.ObjectID `json:"id" bson:"_id"`
	Name          string            `json:"name" bson:"name"`
	Email         string            `json:"email" bson:"email"`
	Premium       Premium           `json:"premium" bson:"premium"`
	Trips         []Trip            `json:"trips" bson:"trips"`
	Notifications []Notification    `json:"notifications" bson:"notifications"`
	Campgrounds   []OwnedCampground `json:"campgrounds" bson:"campgrounds"`
}

// Premium holds the premium-subscription state of a user.
type Premium struct {
	Subscribed bool `json:"subscribed" bson:"subscribed"`
}

// Trip is a booked stay at a campground. The ID is assigned at creation time
// and is the only key used to select a trip afterwards, so two trips at the
// same campground never collide.
type Trip struct {
	ID            internal.ObjectID `json:"id" bson:"_id"`
	CheckIn       string            `json:"checkIn" bson:"checkIn"`
	CheckOut      string            `json:"checkOut" bson:"checkOut"`
	Campground    internal.ObjectID `json:"campground" bson:"campground"`
	PaymentIntent string            `json:"paymentIntent" bson:"paymentIntent"`
	Charge        float64           `json:"charge" bson:"charge"`
	Days          int               `json:"days" bson:"days"`
	Guests        Guests            `json:"guests" bson:"guests"`
}

// TripByID returns the user's trip with the given ID, or nil if none matches.
func (u *User) TripByID(id internal.ObjectID) *Trip {
	for i := range u.Trips {
		if u.Trips[i].ID == id {
			return &u.Trips[i]
		}
	}
	return nil
}

// Guests holds the guest counts of a trip.
type Guests struct {
	Adults   int `json:"adults" bson:"adults"`
	Children int `json:"children" bson:"children"`
	Infants  int `json:"infants" bson:"infants"`
}

// Notification is pushed onto a campground owner's document when one of
// their campgrounds is booked.
type Notification struct {
	Campground internal.ObjectID `json:"campground" bson:"campground"`
	User       internal.ObjectID `json:"user" bson:"user"`
	Dates      StayDates         `json:"dates" bson:"dates"`
	Guests     Guests            `json:"guests" bson:"guests"`
	Read       bool              `json:"read" bson:"read"`
	CreatedAt  time.Time         `json:"createdAt" bson:"createdAt"`
}

// StayDates holds the check-in and check-out dates of a stay, as the date
// strings carried in the gateway metadata.
type StayDates struct {
	CheckIn  string `json:"checkIn" bson:"checkIn"`
	CheckOut string `json:"checkOut" bson:"checkOut"`
}

// OwnedCampground pairs a campground reference with its running earnings
// accumulator on the owner's user document.
type OwnedCampground struct {
	Campground internal.ObjectID `json:"campground" bson:"campground"`
	Earnings   float64           `json:"earnings" bson:"earnings"`
}

// Campground is a bookable campground document.
type Campground struct {
	ID       internal.ObjectID `json:"id" bson:"_id"`
	Name     string            `json:"name" bson:"name"`
	Location Location          `json:"location" bson:"location"`
	Price    Price             `json:"price" bson:"price"`
	Owner    internal.ObjectID `json:"owner" bson:"owner"`
}

// Location holds the campground location.
type Location struct {
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Country string `json:"country" bson:"country"`
}

// Price holds the per-guest-type nightly rates and the campground discount
// percent.
type Price struct {
	Adults   float64 `json:"adults" bson:"adults"`
	Children float64 `json:"children" bson:"children"`
	Discount float64 `json:"discount" bson:"discount"`
}

// WebhookEvent records a processed gateway event ID so redelivered events can
// be skipped before any store mutation.
type WebhookEvent struct {
	ID          string    `json:"id" bson:"_id"`
	Type        string    `json:"type" bson:"type"`
	ProcessedAt time.Time `json:"processedAt" bson:"processedAt"`
}
