package scraper

import (
	"testing"

	"kstartup-pbanc-watcher/internal/browser"
	"kstartup-pbanc-watcher/internal/observability"
)

const listingHTML = `
<html><body>
<ul class="notice">
  <li><a href="javascript:go_view(174632);">첫 번째 공고</a></li>
  <li><a href="javascript:go_view(174633);">두 번째 공고</a></li>
  <li><a href="javascript:go_view(174632);">첫 번째 공고 (중복)</a></li>
  <li><a href="javascript:go_view();">잘못된 링크</a></li>
  <li><a href="javascript:go_list(3);">페이지 링크</a></li>
  <li><a href="/web/board/faq.do">FAQ</a></li>
  <li><a href="javascript:go_view(174640);">세 번째 공고</a></li>
</ul>
</body></html>`

func testLogger() *observability.Logger {
	return observability.NewLogger("", "error")
}

func TestScanListing(t *testing.T) {
	scanner, err := NewListingScanner(DefaultSelectors(), testLogger())
	if err != nil {
		t.Fatalf("NewListingScanner: %v", err)
	}

	page, err := browser.NewPage("https://example.test/list.do", listingHTML)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}

	ids := scanner.Scan(page)

	want := []string{"174632", "174633", "174640"}
	if len(ids) != len(want) {
		t.Fatalf("Scan returned %v, want %v", ids, want)
	}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], id)
		}
	}
}

func TestScanListingEmptyPage(t *testing.T) {
	scanner, err := NewListingScanner(DefaultSelectors(), testLogger())
	if err != nil {
		t.Fatalf("NewListingScanner: %v", err)
	}

	page, err := browser.NewPage("https://example.test/list.do", "<html><body><p>점검 중</p></body></html>")
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}

	if ids := scanner.Scan(page); len(ids) != 0 {
		t.Errorf("Scan on empty page = %v, want none", ids)
	}
}

func TestNewListingScannerRejectsBadPattern(t *testing.T) {
	selectors := DefaultSelectors()
	selectors.ViewRefPattern = `go_view\(\d+\)` // no capture group

	if _, err := NewListingScanner(selectors, testLogger()); err == nil {
		t.Error("expected error for pattern without capture group")
	}

	selectors.ViewRefPattern = `go_view\((\d+`
	if _, err := NewListingScanner(selectors, testLogger()); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
