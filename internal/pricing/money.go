package pricing

import "math"

// RoundMoney rounds half-up to currency minor units. It is applied only when a
// summary or quote total is produced; daily rates stay unrounded.
func RoundMoney(v float64) float64 {
	const eps = 1e-9
	if v < 0 {
		return -RoundMoney(-v)
	}
	return math.Floor(v*100+0.5+eps) / 100
}

func percentOf(amount, percentage float64) float64 {
	return amount * percentage / 100
}
