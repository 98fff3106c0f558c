package timezone

import (
	"sync/atomic"
	"time"
)

const DefaultTimezone = "America/Recife"

var current atomic.Pointer[time.Location]

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Set define o fuso usado por Now (DEFAULT_TIMEZONE). Chamado no startup.
func Set(tz string) {
	current.Store(Location(tz))
}

// Current devolve o fuso configurado.
func Current() *time.Location {
	if loc := current.Load(); loc != nil {
		return loc
	}
	return Location(DefaultTimezone)
}

func Now() time.Time {
	return time.Now().In(Current())
}
