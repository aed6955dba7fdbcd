package timezone

import (
	"sync"
	"time"
	_ "time/tzdata"
)

// DefaultTimezone is the pharmacy's local zone. Dates typed by patients
// ("hoy", "mañana") and the lead-time rule are evaluated in it.
const DefaultTimezone = "America/Bogota"

var cache sync.Map // name -> *time.Location

func lookup(tz string) (*time.Location, bool) {
	if tz == "" {
		return nil, false
	}
	if loc, ok := cache.Load(tz); ok {
		return loc.(*time.Location), true
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, false
	}
	cache.Store(tz, loc)
	return loc, true
}

func IsValid(tz string) bool {
	_, ok := lookup(tz)
	return ok
}

// Location falls back to DefaultTimezone for empty or unknown names.
func Location(tz string) *time.Location {
	if loc, ok := lookup(tz); ok {
		return loc
	}
	loc, _ := lookup(DefaultTimezone)
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Clock returns a clock pinned to tz for the booking rules.
func Clock(tz string) func() time.Time {
	loc := Location(tz)
	return func() time.Time {
		return time.Now().In(loc)
	}
}
