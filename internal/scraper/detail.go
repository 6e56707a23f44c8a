package scraper

import (
	"context"
	"fmt"
	"net/url"

	"kstartup-pbanc-watcher/internal/browser"
	"kstartup-pbanc-watcher/internal/normalize"
	"kstartup-pbanc-watcher/internal/observability"
)

// DetailExtractor fetches one announcement's detail page and pulls out
// title, application period and eligibility text. Each field walks its
// fallback selector chain; a field that stays missing gets the
// Unavailable sentinel instead of failing the item.
type DetailExtractor struct {
	baseURL   string
	selectors *Selectors
	logger    *observability.Logger
}

func NewDetailExtractor(baseURL string, selectors *Selectors, logger *observability.Logger) *DetailExtractor {
	return &DetailExtractor{baseURL: baseURL, selectors: selectors, logger: logger}
}

// DetailURL builds the detail-page URL for an identifier by adding the
// view-mode query parameters to the listing URL.
func (e *DetailExtractor) DetailURL(id string) string {
	u, err := url.Parse(e.baseURL)
	if err != nil {
		return fmt.Sprintf("%s?schM=view&pbancSn=%s", e.baseURL, id)
	}
	q := u.Query()
	q.Set("schM", "view")
	q.Set("pbancSn", id)
	u.RawQuery = q.Encode()
	return u.String()
}

func (e *DetailExtractor) Extract(ctx context.Context, session browser.Session, id string) (*Detail, error) {
	detailURL := e.DetailURL(id)

	page, err := session.Navigate(ctx, detailURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open detail page for %s: %w", id, err)
	}

	detail := &Detail{
		ID:          id,
		URL:         detailURL,
		Title:       Unavailable,
		Period:      Unavailable,
		Eligibility: Unavailable,
	}

	if title, ok := firstText(page, e.selectors.Title); ok {
		detail.Title = title
	} else {
		e.logger.Warn("Title not found on detail page", "id", id)
	}

	if period, ok := firstText(page, e.selectors.Period); ok {
		detail.Period = period
	}

	if item, ok := page.ElementContaining(e.selectors.EligibilityItem, e.selectors.EligibilityToken); ok {
		for _, sel := range e.selectors.EligibilityText {
			el, ok := item.Find(sel)
			if !ok {
				continue
			}
			if text := normalize.Clean(el.Text()); text != "" {
				detail.Eligibility = text
				break
			}
		}
	}

	return detail, nil
}

// firstText tries selectors in order and returns the first non-empty text.
func firstText(page *browser.Page, selectors []string) (string, bool) {
	for _, sel := range selectors {
		el, ok := page.First(sel)
		if !ok {
			continue
		}
		if text := normalize.Clean(el.Text()); text != "" {
			return text, true
		}
	}
	return "", false
}
