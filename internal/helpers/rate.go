package helpers

import (
	"time"

	"golang.org/x/time/rate"
)

// OnceAMinute throttles noisy diagnostics to at most one emission per minute.
var OnceAMinute = onceAMinute()

func onceAMinute() *rate.Sometimes {
	return &rate.Sometimes{
		Interval: time.Minute,
	}
}
