/*
Package fare converts a trip's path distance into a price using the
fare schedule. The tariff is a coarse step function, not a per-meter
rate: the minimum fare buys the first 500 meters, and every further
500 m increment, even a partial one, costs one more minimum fare.
*/
package fare

import "math"

// IncrementMeters is the width of one fare step.
const IncrementMeters = 500.0

// Trip returns the fare for a trip of the given length. A zero-distance
// trip (tap-in and tap-out at the same station) still costs exactly one
// minimum fare.
func Trip(distanceMeters float64, minimumFare int64) int64 {
	extra := distanceMeters - IncrementMeters
	if extra <= 0 {
		return minimumFare
	}
	increments := int64(math.Ceil(extra / IncrementMeters))
	return minimumFare * (1 + increments)
}
