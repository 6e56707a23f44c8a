package scraper

import (
	"fmt"
	"regexp"

	"kstartup-pbanc-watcher/internal/browser"
	"kstartup-pbanc-watcher/internal/observability"
)

// ListingScanner discovers candidate announcement identifiers on the
// listing page. Identifiers are embedded in javascript "view item"
// hrefs of the form go_view(174632).
type ListingScanner struct {
	selectors *Selectors
	refRe     *regexp.Regexp
	logger    *observability.Logger
}

func NewListingScanner(selectors *Selectors, logger *observability.Logger) (*ListingScanner, error) {
	refRe, err := regexp.Compile(selectors.ViewRefPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid view_ref_pattern: %w", err)
	}
	if refRe.NumSubexp() < 1 {
		return nil, fmt.Errorf("view_ref_pattern must capture the identifier")
	}
	return &ListingScanner{selectors: selectors, refRe: refRe, logger: logger}, nil
}

// Scan returns the ordered, de-duplicated identifiers found on the page.
// Links whose reference does not match the pattern are skipped: the
// listing page carries plenty of non-item links.
func (s *ListingScanner) Scan(page *browser.Page) []string {
	links := page.Elements(s.selectors.ListingLinks)

	seen := make(map[string]struct{}, len(links))
	ids := make([]string, 0, len(links))

	for _, link := range links {
		m := s.refRe.FindStringSubmatch(link.Attr("href"))
		if m == nil {
			continue
		}
		id := m[1]
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	s.logger.Debug("Listing scanned", "links", len(links), "identifiers", len(ids))
	return ids
}
