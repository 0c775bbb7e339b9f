package domain

import "time"

// Day is the length of one billable night
const Day = 24 * time.Hour

// OverlapPolicy defines how two stays sharing a boundary date are treated
type OverlapPolicy int

const (
	// OverlapInclusive treats [in, out] as closed: a checkout and a checkin on the same
	// calendar date conflict. Default.
	OverlapInclusive OverlapPolicy = iota
	// OverlapHalfOpen treats [in, out) as half-open: same-day turnover is allowed.
	OverlapHalfOpen
)

// String returns the policy name used in configuration and logs
func (p OverlapPolicy) String() string {
	if p == OverlapHalfOpen {
		return "half_open"
	}
	return "inclusive"
}

// Stay is a check-in/check-out interval
type Stay struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewBillableStay validates a raw interval and snaps it to whole calendar days:
// check-in becomes its UTC date and check-out is moved to check-in plus the billed
// nights. The stored range then covers exactly the nights that are paid for.
func NewBillableStay(checkIn, checkOut time.Time) (Stay, error) {
	raw := Stay{CheckIn: checkIn, CheckOut: checkOut}
	if err := raw.Validate(); err != nil {
		return Stay{}, err
	}

	in := DateOnly(checkIn)
	return Stay{CheckIn: in, CheckOut: in.AddDate(0, 0, raw.Nights())}, nil
}

// Validate checks that check-out is strictly after check-in
func (s Stay) Validate() error {
	if s.CheckIn.IsZero() || s.CheckOut.IsZero() {
		return ErrInvalidStayRange
	}
	if !s.CheckOut.After(s.CheckIn) {
		return ErrInvalidStayRange
	}
	return nil
}

// Nights returns the number of billable nights: every started 24-hour period counts.
// Returns 0 or a negative number when check-out is not after check-in.
func (s Stay) Nights() int {
	d := s.CheckOut.Sub(s.CheckIn)
	nights := int(d / Day)
	if d > 0 && d%Day != 0 {
		nights++
	}
	return nights
}

// Overlaps reports whether two stays conflict under the given policy
func (s Stay) Overlaps(other Stay, policy OverlapPolicy) bool {
	if policy == OverlapHalfOpen {
		return s.CheckIn.Before(other.CheckOut) && s.CheckOut.After(other.CheckIn)
	}
	return !s.CheckIn.After(other.CheckOut) && !s.CheckOut.Before(other.CheckIn)
}

// DateOnly truncates t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
