package db

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/opencamp-hq/backend/internal"
)

func TestUserByEmail(t *testing.T) {
	c := qt.New(t)
	defer func() {
		c.Assert(testDB.Reset(), qt.IsNil)
	}()

	_, err := testDB.UserByEmail(testUserEmail)
	c.Assert(err, qt.Equals, ErrNotFound)

	user := &User{Name: testUserName, Email: testUserEmail}
	c.Assert(testDB.SetUser(user), qt.IsNil)
	c.Assert(user.ID.IsZero(), qt.IsFalse)

	got, err := testDB.UserByEmail(testUserEmail)
	c.Assert(err, qt.IsNil)
	c.Assert(got.ID, qt.Equals, user.ID)
	c.Assert(got.Name, qt.Equals, testUserName)
	c.Assert(got.Premium.Subscribed, qt.IsFalse)

	got2, err := testDB.User(user.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got2.Email, qt.Equals, testUserEmail)
}

func TestSetUserPremium(t *testing.T) {
	c := qt.New(t)
	defer func() {
		c.Assert(testDB.Reset(), qt.IsNil)
	}()

	c.Assert(testDB.SetUserPremium(testUserEmail, true), qt.Equals, ErrNotFound)

	user := &User{Name: testUserName, Email: testUserEmail}
	c.Assert(testDB.SetUser(user), qt.IsNil)
	c.Assert(testDB.SetUserPremium(testUserEmail, true), qt.IsNil)

	got, err := testDB.User(user.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Premium.Subscribed, qt.IsTrue)
}

func TestAddAndDelTrip(t *testing.T) {
	c := qt.New(t)
	defer func() {
		c.Assert(testDB.Reset(), qt.IsNil)
	}()

	user := &User{Name: testUserName, Email: testUserEmail}
	c.Assert(testDB.SetUser(user), qt.IsNil)

	campground := internal.NewObjectID()
	// two trips at the same campground must stay distinguishable
	first := &Trip{
		ID:            internal.NewObjectID(),
		CheckIn:       "2026-06-01",
		CheckOut:      "2026-06-04",
		Campground:    campground,
		PaymentIntent: "pi_first",
		Charge:        100,
		Days:          3,
		Guests:        Guests{Adults: 2, Children: 1},
	}
	second := &Trip{
		ID:            internal.NewObjectID(),
		CheckIn:       "2026-07-10",
		CheckOut:      "2026-07-12",
		Campground:    campground,
		PaymentIntent: "pi_second",
		Charge:        80,
		Days:          2,
		Guests:        Guests{Adults: 2},
	}
	c.Assert(testDB.AddTrip(user.ID, first), qt.IsNil)
	c.Assert(testDB.AddTrip(user.ID, second), qt.IsNil)

	got, err := testDB.User(user.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Trips, qt.HasLen, 2)

	c.Assert(testDB.DelTrip(user.ID, first.ID), qt.IsNil)
	got, err = testDB.User(user.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Trips, qt.HasLen, 1)
	c.Assert(got.Trips[0].ID, qt.Equals, second.ID)
	c.Assert(got.Trips[0].PaymentIntent, qt.Equals, "pi_second")

	c.Assert(testDB.AddTrip(internal.NewObjectID(), first), qt.Equals, ErrNotFound)
}

func TestAddNotification(t *testing.T) {
	c := qt.New(t)
	defer func() {
		c.Assert(testDB.Reset(), qt.IsNil)
	}()

	owner := &User{Name: testOwnerName, Email: testOwnerEmail}
	c.Assert(testDB.SetUser(owner), qt.IsNil)

	notification := &Notification{
		Campground: internal.NewObjectID(),
		User:       internal.NewObjectID(),
		Dates:      StayDates{CheckIn: "2026-06-01", CheckOut: "2026-06-04"},
		Guests:     Guests{Adults: 2, Children: 1},
	}
	c.Assert(testDB.AddNotification(owner.ID, notification), qt.IsNil)

	got, err := testDB.User(owner.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Notifications, qt.HasLen, 1)
	c.Assert(got.Notifications[0].Read, qt.IsFalse)
	c.Assert(got.Notifications[0].Dates.CheckIn, qt.Equals, "2026-06-01")

	c.Assert(testDB.AddNotification(internal.NewObjectID(), notification), qt.Equals, ErrNotFound)
}
