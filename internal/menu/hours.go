// Package menu holds the public-ordering business logic: operating-hours
// evaluation, cart arithmetic, and order-message rendering. Everything here
// is pure computation so it can be tested without a database or clock.
package menu

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cardaloom/internal/model"
)

const minutesPerDay = 24 * 60

// IsOpenAt reports whether the schedule is open at the given instant.
// Windows whose close time is earlier than their open time cross midnight:
// 18:00-02:00 is open at 23:30 and at 01:00, closed at 10:00.
func IsOpenAt(hours model.Schedule, now time.Time) bool {
	day := strings.ToLower(now.Weekday().String())
	window, ok := hours[day]
	if !ok || !window.Open {
		return false
	}

	openMin, err := parseClock(window.OpenTime)
	if err != nil {
		return false
	}
	closeMin, err := parseClock(window.CloseTime)
	if err != nil {
		return false
	}

	current := now.Hour()*60 + now.Minute()

	if closeMin < openMin {
		// Overnight window: push the close boundary to the next day, and a
		// pre-open current time along with it.
		closeMin += minutesPerDay
		if current < openMin {
			current += minutesPerDay
		}
	}

	return current >= openMin && current < closeMin
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", clock)
	}

	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in %q", clock)
	}

	return hours*60 + minutes, nil
}
