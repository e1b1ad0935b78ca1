package pkg

import (
	"fmt"
	"net/http"
	"time"
)

// DateLayout is the calendar date format used for every stored record date.
const DateLayout = "2006-01-02"

// ParseDate validates a YYYY-MM-DD calendar date.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date [%s], expected YYYY-MM-DD", date)
	}
	return t, nil
}

// TodayIn returns the calendar date of now in the given location.
func TodayIn(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return now.In(loc).Format(DateLayout)
}

// RequestDate resolves the calendar date a request refers to:
// an explicit ?date=YYYY-MM-DD wins, then today in ?tz=<IANA name>, then today in defaultLoc.
func RequestDate(r *http.Request, now time.Time, defaultLoc *time.Location) (string, error) {
	query := r.URL.Query()
	if date := query.Get("date"); date != "" {
		if _, err := ParseDate(date); err != nil {
			return "", err
		}
		return date, nil
	}

	loc := defaultLoc
	if tz := query.Get("tz"); tz != "" {
		var err error
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return "", fmt.Errorf("invalid timezone [%s]", tz)
		}
	}
	return TodayIn(now, loc), nil
}
