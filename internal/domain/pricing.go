package domain

import (
	"math"
	"time"
)

// ComputeTotalPrice returns rate × nights for the stay.
// The stay is rejected, not priced, when check-out is not after check-in.
func ComputeTotalPrice(nightlyRate float64, checkIn, checkOut time.Time) (float64, error) {
	if nightlyRate <= 0 || math.IsNaN(nightlyRate) || math.IsInf(nightlyRate, 0) {
		return 0, ErrInvalidRate
	}

	stay := Stay{CheckIn: checkIn, CheckOut: checkOut}
	if err := stay.Validate(); err != nil {
		return 0, err
	}

	return RoundPrice(nightlyRate * float64(stay.Nights())), nil
}

// RoundPrice rounds to cents, matching the decimal(10,2) columns
func RoundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}
