package entity

import "time"

type BookingStatus string

// BookingActive is the only state a booking has; there are no transitions.
const BookingActive BookingStatus = "active"

// Booking reserves a listing for the half-open range [StartDate, EndDate).
type Booking struct {
	ID         string        `json:"_id"`
	ListingID  string        `json:"listingId"`
	CustomerID string        `json:"customerId"`
	HostID     string        `json:"hostId"`
	StartDate  time.Time     `json:"startDate"`
	EndDate    time.Time     `json:"endDate"`
	TotalPrice float64       `json:"totalPrice"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Overlaps reports whether [aStart,aEnd) and [bStart,bEnd) intersect.
// Touching ranges (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// OverlapsRange reports whether the booking conflicts with [start,end).
func (b *Booking) OverlapsRange(start, end time.Time) bool {
	if b.Status != "" && b.Status != BookingActive {
		return false
	}
	return Overlaps(b.StartDate, b.EndDate, start, end)
}
