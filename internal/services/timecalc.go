package services

import "math"

// ToMinutes converts an (hours, minutes) pair to total minutes.
// Inputs are not range-checked.
func ToMinutes(hours, minutes int) int {
	return hours*60 + minutes
}

// FromMinutes splits a non-negative minute count into whole hours and the
// remaining minutes.
func FromMinutes(totalMinutes int) (hours, minutes int) {
	return totalMinutes / 60, totalMinutes % 60
}

// fractionalHours returns hours + minutes/60 without flooring.
func fractionalHours(hours, minutes int) float64 {
	return float64(hours) + float64(minutes)/60
}

// Round2 rounds to two decimals so equal figures compare equal.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
