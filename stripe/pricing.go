package stripe

import "github.com/opencamp-hq/backend/db"

// Revenue split and discount rules.
const (
	// OwnerShare is the fraction of a charge credited to the campground
	// owner; the rest is the platform fee.
	OwnerShare = 0.65
	// NonPremiumRefundFactor is applied to the stored charge when a
	// non-premium user cancels, mirroring the discount premium users got at
	// booking time.
	NonPremiumRefundFactor = 0.85
	// PremiumDiscount is the premium-subscriber discount shown on bills.
	PremiumDiscount = 0.20
)

// Bill is the price breakdown shown in confirmation emails. It exists for
// display only: the authoritative charge always comes from the gateway's
// reported total and the Bill never feeds ledger mutations.
type Bill struct {
	Adults    int
	Children  int
	Infants   int
	Days      int
	AdultRate float64
	ChildRate float64

	BasePrice       float64
	DiscountPercent float64
	DiscountAmount  float64
	PremiumDiscount float64
	Total           float64
}

// NewBill computes the display breakdown for a trip at a campground. When the
// trip carries a gateway-reported charge, that figure wins as the displayed
// total; the recomputed price is only the fallback.
func NewBill(campground *db.Campground, trip *db.Trip, premium bool) *Bill {
	days := trip.Days
	if days < 1 {
		days = 1
	}
	bill := &Bill{
		Adults:          trip.Guests.Adults,
		Children:        trip.Guests.Children,
		Infants:         trip.Guests.Infants,
		Days:            days,
		AdultRate:       campground.Price.Adults,
		ChildRate:       campground.Price.Children,
		DiscountPercent: campground.Price.Discount,
	}

	bill.BasePrice = (float64(bill.Adults)*bill.AdultRate + float64(bill.Children)*bill.ChildRate) * float64(days)
	if bill.DiscountPercent > 0 {
		bill.DiscountAmount = bill.BasePrice * bill.DiscountPercent / 100
	}
	afterDiscount := bill.BasePrice - bill.DiscountAmount
	if premium {
		bill.PremiumDiscount = afterDiscount * PremiumDiscount
	}

	bill.Total = trip.Charge
	if bill.Total == 0 {
		bill.Total = afterDiscount - bill.PremiumDiscount
	}
	return bill
}

// OwnerEarnings returns the share of the displayed total credited to the
// campground owner.
func (b *Bill) OwnerEarnings() float64 {
	return b.Total * OwnerShare
}

// refundAmount returns the amount refunded when a trip with the given stored
// charge is cancelled. Premium subscribers get the full charge back,
// everyone else 85% of it.
func refundAmount(charge float64, premium bool) float64 {
	if premium {
		return charge
	}
	return charge * NonPremiumRefundFactor
}
