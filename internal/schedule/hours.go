// Package schedule computes a store's open/closed state from its weekly
// hours and closure windows in the store's own timezone.
package schedule

import (
	"time"

	"github.com/tabletap/tabletap-backend/internal/app/model"
)

// IsOpen reports whether the store is open at the given instant.
// Closures always win over weekly hours. A period whose close time is
// earlier than its open time wraps past midnight. A store with no hour
// rows at all is closed.
func IsOpen(hours []model.StoreHour, closures []model.StoreClosure, timezone string, now time.Time) bool {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	local := now.In(loc)

	today := local.Format("2006-01-02")
	for _, closure := range closures {
		// Inclusive date range; ISO dates compare correctly as strings.
		if closure.StartDate <= today && today <= closure.EndDate {
			return false
		}
	}

	if len(hours) == 0 {
		return false
	}

	day := int(local.Weekday())
	current := local.Format("15:04")

	for _, period := range hours {
		if period.DayOfWeek != day {
			continue
		}
		if period.CloseTime < period.OpenTime {
			// Overnight period, e.g. 22:00-02:00.
			if current >= period.OpenTime || current < period.CloseTime {
				return true
			}
		} else if current >= period.OpenTime && current < period.CloseTime {
			return true
		}
	}
	return false
}
