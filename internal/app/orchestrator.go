package app

import (
	"context"
	"fmt"
	"strings"

	"kstartup-pbanc-watcher/internal/browser"
	"kstartup-pbanc-watcher/internal/config"
	"kstartup-pbanc-watcher/internal/notify"
	"kstartup-pbanc-watcher/internal/observability"
	"kstartup-pbanc-watcher/internal/scraper"
	"kstartup-pbanc-watcher/internal/state"
)

// Diagnostic artifacts written when the listing page cannot be processed.
const (
	DiagScreenshotFile = "error_screenshot.png"
	DiagHTMLFile       = "error_debug_page.html"
)

type Orchestrator struct {
	cfg       *config.Config
	logger    *observability.Logger
	engines   []browser.Engine
	store     state.Store
	scanner   *scraper.ListingScanner
	extractor *scraper.DetailExtractor
	filter    *scraper.Filter
	notifier  *notify.Notifier
}

func NewOrchestrator(
	cfg *config.Config,
	logger *observability.Logger,
	engines []browser.Engine,
	store state.Store,
	scanner *scraper.ListingScanner,
	extractor *scraper.DetailExtractor,
	filter *scraper.Filter,
	notifier *notify.Notifier,
) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		logger:    logger,
		engines:   engines,
		store:     store,
		scanner:   scanner,
		extractor: extractor,
		filter:    filter,
		notifier:  notifier,
	}
}

type RunStats struct {
	Candidates     int
	New            int
	Extracted      int
	Qualified      int
	Notified       int
	DeliveryErrors int
}

// Run executes one crawl-diff-notify pass.
//
// Invariants: every newly observed identifier is merged into the seen
// state exactly once, whatever its extraction, filter or delivery
// outcome; the state is persisted once, after notifications were
// attempted, and only when the listing was actually scanned.
func (o *Orchestrator) Run(ctx context.Context) (*RunStats, error) {
	stats := &RunStats{}

	seen, err := o.store.Load(ctx)
	if err != nil {
		o.logger.Warn("State load failed, starting fresh", "error", err.Error())
		seen = state.NewSeenState()
	}

	session, err := browser.Launch(ctx, o.logger, o.engines...)
	if err != nil {
		return stats, err
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			o.logger.Warn("Failed to close browser session", "error", closeErr.Error())
		}
	}()

	o.logger.Info("Navigating to listing page", "url", o.cfg.Listing.URL)
	page, err := session.Navigate(ctx, o.cfg.Listing.URL)
	if err != nil {
		session.Diagnostics(DiagScreenshotFile, DiagHTMLFile)
		return stats, fmt.Errorf("listing navigation failed: %w", err)
	}

	candidates := o.scanner.Scan(page)
	stats.Candidates = len(candidates)

	newIDs := make([]string, 0, len(candidates))
	for _, id := range candidates {
		if !seen.Contains(id) {
			newIDs = append(newIDs, id)
		}
	}
	stats.New = len(newIDs)

	o.logger.Info("Listing scanned",
		"candidates", stats.Candidates,
		"new", stats.New,
	)

	processed := make([]string, 0, len(newIDs))
	var pending []*scraper.Detail

	for _, id := range newIDs {
		// Mark processed no matter how extraction goes, so a broken
		// detail page is never re-checked on the next run.
		processed = append(processed, id)

		detail, err := o.extractor.Extract(ctx, session, id)
		if err != nil {
			o.logger.Error("Detail extraction failed",
				"id", id,
				"error", err.Error(),
			)
			continue
		}
		stats.Extracted++

		o.logger.Debug("Detail extracted",
			"id", id,
			"title", detail.Title,
			"period", detail.Period,
			"eligibility", detail.Eligibility,
		)

		if !o.filter.Eligible(detail.Eligibility) {
			o.logger.Info("Announcement outside target age, skipping",
				"id", id,
				"eligibility", detail.Eligibility,
			)
			continue
		}

		stats.Qualified++
		pending = append(pending, detail)
	}

	for _, post := range pending {
		if err := o.notifier.Send(ctx, formatAnnouncement(post)); err != nil {
			stats.DeliveryErrors++
			o.logger.Error("Notification delivery failed",
				"id", post.ID,
				"error", err.Error(),
			)
			continue
		}
		stats.Notified++
	}

	seen.MergeFront(processed)
	if err := o.store.Save(ctx, seen); err != nil {
		// Non-fatal: the notifications already went out, the worst case
		// is a duplicate notification on the next run.
		o.logger.Error("Failed to persist seen state", "error", err.Error())
	}

	o.logger.Info("Run completed",
		"candidates", stats.Candidates,
		"new", stats.New,
		"extracted", stats.Extracted,
		"qualified", stats.Qualified,
		"notified", stats.Notified,
		"delivery_errors", stats.DeliveryErrors,
	)
	return stats, nil
}

func formatAnnouncement(d *scraper.Detail) string {
	var b strings.Builder
	b.WriteString("[새로운 공고]\n")
	fmt.Fprintf(&b, "제목: %s\n", d.Title)
	fmt.Fprintf(&b, "기간: %s\n", d.Period)
	fmt.Fprintf(&b, "대상: %s\n", d.Eligibility)
	if p, err := scraper.ParsePeriod(d.Period); err == nil {
		fmt.Fprintf(&b, "마감: %s\n", p.End.Format("2006-01-02"))
	}
	b.WriteString(d.URL)
	return b.String()
}
