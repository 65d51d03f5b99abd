package mailtemplates

import (
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestLoad(t *testing.T) {
	c := qt.New(t)

	c.Assert(Load(), qt.IsNil)
	available := Available()
	for _, key := range []TemplateKey{
		BookingConfirmationNotification.Key,
		OwnerBookingAlertNotification.Key,
		PremiumWelcomeNotification.Key,
	} {
		_, ok := available[key]
		c.Assert(ok, qt.IsTrue, qt.Commentf("template %q not loaded", key))
	}
}

func TestExecTemplate(t *testing.T) {
	c := qt.New(t)
	c.Assert(Load(), qt.IsNil)

	data := &BookingData{
		UserName:        "Test Camper",
		OwnerName:       "Test Owner",
		CampgroundName:  "Cloud's Rest",
		City:            "Yosemite",
		State:           "CA",
		Country:         "USA",
		CheckIn:         "2026-09-01",
		CheckOut:        "2026-09-04",
		Adults:          2,
		Children:        1,
		Days:            3,
		AdultRate:       30,
		ChildRate:       20,
		BasePrice:       240,
		DiscountPercent: 10,
		DiscountAmount:  24,
		Total:           216,
		OwnerEarnings:   140.40,
	}

	n, err := BookingConfirmationNotification.ExecTemplate(data)
	c.Assert(err, qt.IsNil)
	c.Assert(n.Subject, qt.Equals, "Your Booking Confirmation for Cloud's Rest")
	c.Assert(strings.Contains(n.Body, "Cloud&#39;s Rest"), qt.IsTrue)
	c.Assert(strings.Contains(n.Body, "216.00"), qt.IsTrue)
	c.Assert(strings.Contains(n.PlainBody, "$216.00"), qt.IsTrue)
	// no premium discount row without a premium subscription
	c.Assert(strings.Contains(n.Body, "OpenCamp Plus Discount"), qt.IsFalse)

	data.Premium = true
	data.PremiumDiscount = 43.20
	n, err = OwnerBookingAlertNotification.ExecTemplate(data)
	c.Assert(err, qt.IsNil)
	c.Assert(strings.Contains(n.Body, "Test Owner"), qt.IsTrue)
	c.Assert(strings.Contains(n.Body, "OpenCamp Plus Discount"), qt.IsTrue)
	c.Assert(strings.Contains(n.Body, "140.40"), qt.IsTrue)
	c.Assert(strings.Contains(n.PlainBody, "65% of total"), qt.IsTrue)
}

func TestExecTemplateUnknownKey(t *testing.T) {
	c := qt.New(t)
	c.Assert(Load(), qt.IsNil)

	missing := MailTemplate{Key: "no_such_template"}
	_, err := missing.ExecTemplate(nil)
	c.Assert(err, qt.IsNotNil)
}
