package db

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/opencamp-hq/backend/internal"
)

func TestCampground(t *testing.T) {
	c := qt.New(t)
	defer func() {
		c.Assert(testDB.Reset(), qt.IsNil)
	}()

	_, err := testDB.Campground(internal.NewObjectID())
	c.Assert(err, qt.Equals, ErrNotFound)

	campground := &Campground{
		Name:     testCampName,
		Location: Location{City: "Mariposa", State: "CA", Country: "USA"},
		Price:    Price{Adults: 30, Children: 20, Discount: 10},
		Owner:    internal.NewObjectID(),
	}
	c.Assert(testDB.SetCampground(campground), qt.IsNil)
	c.Assert(campground.ID.IsZero(), qt.IsFalse)

	got, err := testDB.Campground(campground.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Name, qt.Equals, testCampName)
	c.Assert(got.Price.Discount, qt.Equals, 10.0)
	c.Assert(got.Owner, qt.Equals, campground.Owner)
}

func TestAddCampgroundEarnings(t *testing.T) {
	c := qt.New(t)
	defer func() {
		c.Assert(testDB.Reset(), qt.IsNil)
	}()

	campgroundID := internal.NewObjectID()
	c.Assert(testDB.AddCampgroundEarnings(campgroundID, 65), qt.Equals, ErrNotFound)

	owner := &User{
		Name:        testOwnerName,
		Email:       testOwnerEmail,
		Campgrounds: []OwnedCampground{{Campground: campgroundID}},
	}
	c.Assert(testDB.SetUser(owner), qt.IsNil)

	c.Assert(testDB.AddCampgroundEarnings(campgroundID, 65), qt.IsNil)
	earnings, err := testDB.CampgroundEarnings(campgroundID)
	c.Assert(err, qt.IsNil)
	c.Assert(earnings, qt.Equals, 65.0)

	// a cancellation reverses part of the accumulator
	c.Assert(testDB.AddCampgroundEarnings(campgroundID, -55.25), qt.IsNil)
	earnings, err = testDB.CampgroundEarnings(campgroundID)
	c.Assert(err, qt.IsNil)
	c.Assert(earnings, qt.Equals, 9.75)
}

func TestWebhookEventLedger(t *testing.T) {
	c := qt.New(t)
	defer func() {
		c.Assert(testDB.Reset(), qt.IsNil)
	}()

	processed, err := testDB.IsWebhookEventProcessed("evt_test_1")
	c.Assert(err, qt.IsNil)
	c.Assert(processed, qt.IsFalse)

	claimed, err := testDB.ClaimWebhookEvent("evt_test_1", "checkout.session.completed")
	c.Assert(err, qt.IsNil)
	c.Assert(claimed, qt.IsTrue)
	processed, err = testDB.IsWebhookEventProcessed("evt_test_1")
	c.Assert(err, qt.IsNil)
	c.Assert(processed, qt.IsTrue)

	// only the first claim wins
	claimed, err = testDB.ClaimWebhookEvent("evt_test_1", "checkout.session.completed")
	c.Assert(err, qt.IsNil)
	c.Assert(claimed, qt.IsFalse)

	// releasing makes the event claimable again
	c.Assert(testDB.ReleaseWebhookEvent("evt_test_1"), qt.IsNil)
	claimed, err = testDB.ClaimWebhookEvent("evt_test_1", "checkout.session.completed")
	c.Assert(err, qt.IsNil)
	c.Assert(claimed, qt.IsTrue)
}

func TestClaimWebhookEventConcurrent(t *testing.T) {
	c := qt.New(t)
	defer func() {
		c.Assert(testDB.Reset(), qt.IsNil)
	}()

	const workers = 8
	results := make(chan bool, workers)
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			claimed, err := testDB.ClaimWebhookEvent("evt_race_1", "checkout.session.completed")
			results <- claimed
			errs <- err
		}()
	}
	winners := 0
	for i := 0; i < workers; i++ {
		c.Assert(<-errs, qt.IsNil)
		if <-results {
			winners++
		}
	}
	c.Assert(winners, qt.Equals, 1)
}
