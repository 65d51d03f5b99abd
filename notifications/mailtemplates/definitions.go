// Package mailtemplates provides the predefined email templates sent by the
// booking flows, along with utilities for rendering email content.
package mailtemplates

import "github.com/opencamp-hq/backend/notifications"

// BookingData is the data every booking email template is executed with.
// Monetary fields are major units; templates format them with printf.
type BookingData struct {
	UserName       string
	OwnerName      string
	CampgroundName string
	City           string
	State          string
	Country        string
	CheckIn        string
	CheckOut       string
	Adults         int
	Children       int
	Infants        int
	Days           int

	AdultRate       float64
	ChildRate       float64
	BasePrice       float64
	DiscountPercent float64
	DiscountAmount  float64
	PremiumDiscount float64
	Premium         bool
	Total           float64
	OwnerEarnings   float64
}

// BookingConfirmationNotification is the notification sent to the camper
// after a successful checkout.
var BookingConfirmationNotification = MailTemplate{
	Key: "booking_confirmation",
	Placeholder: notifications.Notification{
		Subject: "Your Booking Confirmation for {{.CampgroundName}}",
		PlainBody: `Dear {{.UserName}},

Thank you for booking with OpenCamp! Your adventure awaits!

Campground: {{.CampgroundName}}
Location: {{.City}}, {{.State}}, {{.Country}}
Check-In: {{.CheckIn}}
Check-Out: {{.CheckOut}}
Guests: {{.Adults}} Adults, {{.Children}} Children, {{.Infants}} Infants
Total: ${{printf "%.2f" .Total}}

We look forward to your stay!`,
	},
}

// OwnerBookingAlertNotification is the notification sent to the campground
// owner after one of their campgrounds is booked.
var OwnerBookingAlertNotification = MailTemplate{
	Key: "owner_booking_alert",
	Placeholder: notifications.Notification{
		Subject: "New Booking Confirmation for {{.CampgroundName}}",
		PlainBody: `Dear {{.OwnerName}},

A new booking has been made for your campground.

Campground: {{.CampgroundName}}
Check-In: {{.CheckIn}}
Check-Out: {{.CheckOut}}
Guests: {{.Adults}} Adults, {{.Children}} Children, {{.Infants}} Infants
Total: ${{printf "%.2f" .Total}}
Earnings credited: ${{printf "%.2f" .OwnerEarnings}} (65% of total)`,
	},
}

// PremiumWelcomeNotification is the notification sent when a user's premium
// subscription is activated.
var PremiumWelcomeNotification = MailTemplate{
	Key: "premium_welcome",
	Placeholder: notifications.Notification{
		Subject: "Welcome to OpenCamp Plus",
		PlainBody: `Dear {{.UserName}},

Your OpenCamp Plus subscription is now active. You get 20% off every booking
from now on.

Happy camping!`,
	},
}
