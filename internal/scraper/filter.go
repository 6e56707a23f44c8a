package scraper

import "strings"

// DefaultMarkers pass an announcement whose eligibility text covers all
// ages ("전체") or mentions age 40 ("40세", covering "만 40세 이상").
var DefaultMarkers = []string{"전체", "40세"}

// Filter decides whether an announcement's eligibility text qualifies
// for notification. Pure substring containment, script-sensitive.
type Filter struct {
	markers []string
}

func NewFilter(markers []string) *Filter {
	if len(markers) == 0 {
		markers = DefaultMarkers
	}
	return &Filter{markers: markers}
}

func (f *Filter) Eligible(eligibilityText string) bool {
	for _, marker := range f.markers {
		if strings.Contains(eligibilityText, marker) {
			return true
		}
	}
	return false
}
