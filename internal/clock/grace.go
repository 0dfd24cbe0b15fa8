package clock

import "time"

const dayKeyLayout = "2006-01-02"

// DayKey formats t as a local-timezone YYYY-MM-DD calendar date.
func DayKey(t time.Time) string {
	return t.In(time.Local).Format(dayKeyLayout)
}

// ParseDayKey parses a YYYY-MM-DD key into a local midnight instant.
func ParseDayKey(key string) (time.Time, error) {
	return time.ParseInLocation(dayKeyLayout, key, time.Local)
}

// Weekday returns the day of week (0=Sunday..6=Saturday) for a day key.
// Unparseable keys report ok=false.
func Weekday(key string) (int, bool) {
	t, err := ParseDayKey(key)
	if err != nil {
		return 0, false
	}
	return int(t.Weekday()), true
}

// ActiveHour reports which hour's tasks are current. For the first
// graceMinutes of every hour the previous hour is still active, wrapping
// 00:xx back to 23.
func ActiveHour(now time.Time, graceMinutes int) int {
	hour := now.Hour()
	if now.Minute() < graceMinutes {
		if hour == 0 {
			return 23
		}
		return hour - 1
	}
	return hour
}

// IsWithinGracePeriod reports whether now still counts for targetHour:
// either inside the hour itself or in the following hour's grace window.
func IsWithinGracePeriod(now time.Time, targetHour, graceMinutes int) bool {
	if now.Hour() == targetHour {
		return true
	}
	return now.Hour() == (targetHour+1)%24 && now.Minute() < graceMinutes
}

// NextBoundary returns the next instant at which the active hour changes:
// the end of the running grace window, or the next hour plus grace.
func NextBoundary(now time.Time, graceMinutes int) time.Time {
	base := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	if now.Minute() < graceMinutes {
		return base.Add(time.Duration(graceMinutes) * time.Minute)
	}
	return base.Add(time.Hour + time.Duration(graceMinutes)*time.Minute)
}

// TimeUntilNextRefresh is the wait before a renderable snapshot goes stale.
func TimeUntilNextRefresh(now time.Time, graceMinutes int) time.Duration {
	return NextBoundary(now, graceMinutes).Sub(now)
}
