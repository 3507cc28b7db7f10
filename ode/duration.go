package ode

import "time"

// durationFromSeconds converts a fractional-seconds float into a
// time.Duration, used for reset-timeout and persistence-window configs
// expressed in seconds throughout the public API.
func durationFromSeconds(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
