package scraper

// Unavailable is the sentinel recorded for a detail field that could not
// be extracted from the page.
const Unavailable = "정보 없음"

// Detail holds the fields extracted from one announcement's detail page.
type Detail struct {
	ID          string
	URL         string
	Title       string
	Period      string
	Eligibility string
}

// Selectors describes how announcements are located on the listing and
// detail pages. Fields holding a list are fallback chains tried in order.
type Selectors struct {
	ListingLinks     string   `yaml:"listing_links"`
	ViewRefPattern   string   `yaml:"view_ref_pattern"`
	Title            []string `yaml:"title"`
	Period           []string `yaml:"period"`
	EligibilityItem  string   `yaml:"eligibility_item"`
	EligibilityToken string   `yaml:"eligibility_token"`
	EligibilityText  []string `yaml:"eligibility_text"`
}

// DefaultSelectors returns the selector set verified against the k-startup
// ongoing-announcements pages.
func DefaultSelectors() *Selectors {
	return &Selectors{
		ListingLinks:     `a[href^="javascript:go_view"]`,
		ViewRefPattern:   `go_view\((\d+)\)`,
		Title:            []string{"div.view_tit h3", "h3"},
		Period:           []string{"#rcptPeriod"},
		EligibilityItem:  "li",
		EligibilityToken: "대상연령",
		EligibilityText:  []string{"p.txt"},
	}
}
