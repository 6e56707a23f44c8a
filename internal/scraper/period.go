package scraper

import (
	"fmt"
	"regexp"
	"time"
)

// Period is an application window parsed out of the free-form period
// text, e.g. "2025-08-01 ~ 2025-08-31 17:00".
type Period struct {
	Start time.Time
	End   time.Time
}

var dateRe = regexp.MustCompile(`(\d{4})[.\-/](\d{1,2})[.\-/](\d{1,2})`)

// ParsePeriod extracts up to two dates from the period text. A single
// date is treated as both start and end. Used only to annotate the
// notification with a deadline; callers must tolerate an error.
func ParsePeriod(text string) (*Period, error) {
	matches := dateRe.FindAllStringSubmatch(text, 2)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no dates in period text: %q", text)
	}

	start, err := toDate(matches[0])
	if err != nil {
		return nil, err
	}

	period := &Period{Start: start, End: start}
	if len(matches) > 1 {
		end, err := toDate(matches[1])
		if err != nil {
			return nil, err
		}
		period.End = end
	}

	if period.End.Before(period.Start) {
		return nil, fmt.Errorf("period ends before it starts: %q", text)
	}
	return period, nil
}

func toDate(m []string) (time.Time, error) {
	var year, month, day int
	if _, err := fmt.Sscanf(m[1]+" "+m[2]+" "+m[3], "%d %d %d", &year, &month, &day); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date %q: %w", m[0], err)
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("invalid month: %d", month)
	}
	if day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid day: %d", day)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}
