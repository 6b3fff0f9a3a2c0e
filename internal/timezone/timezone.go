package timezone

import "time"

// The business operates out of Sydney; all calendar-date maths (sales
// windows, date parsing) happens in this zone unless overridden.
const DefaultTimezone = "Australia/Sydney"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

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

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate validates a YYYY-MM-DD calendar date in the business zone.
func ParseDate(tz, date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, Location(tz))
}

// ParseClock validates a HH:MM wall-clock value.
func ParseClock(clock string) (time.Time, error) {
	return time.Parse(TimeLayout, clock)
}
