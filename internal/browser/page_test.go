package browser

import (
	"testing"
)

const pageHTML = `
<html><body>
<div class="view_tit"><h3>공고 제목</h3></div>
<span id="rcptPeriod">2025-08-01 ~ 2025-08-31</span>
<ul>
  <li><p class="tit">지원분야</p><p class="txt">전분야</p></li>
  <li><p class="tit">대상연령</p><p class="txt">만 40세 이상</p></li>
</ul>
<a href="javascript:go_view(1);">one</a>
<a href="javascript:go_view(2);">two</a>
</body></html>`

func mustPage(t *testing.T, html string) *Page {
	t.Helper()
	page, err := NewPage("https://example.test/", html)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	return page
}

func TestPageElements(t *testing.T) {
	page := mustPage(t, pageHTML)

	links := page.Elements("a")
	if len(links) != 2 {
		t.Fatalf("Elements(a) = %d, want 2", len(links))
	}
	if links[0].Attr("href") != "javascript:go_view(1);" {
		t.Errorf("first href = %q", links[0].Attr("href"))
	}
	if links[0].Attr("missing") != "" {
		t.Errorf("absent attribute should be empty")
	}

	if none := page.Elements("table"); len(none) != 0 {
		t.Errorf("Elements(table) = %d, want 0", len(none))
	}
}

func TestPageFirst(t *testing.T) {
	page := mustPage(t, pageHTML)

	el, ok := page.First("div.view_tit h3")
	if !ok {
		t.Fatal("First(div.view_tit h3) not found")
	}
	if el.Text() != "공고 제목" {
		t.Errorf("Text = %q", el.Text())
	}

	if _, ok := page.First("#nope"); ok {
		t.Error("First on absent selector reported a match")
	}
}

func TestPageElementContaining(t *testing.T) {
	page := mustPage(t, pageHTML)

	item, ok := page.ElementContaining("li", "대상연령")
	if !ok {
		t.Fatal("ElementContaining(li, 대상연령) not found")
	}

	text, ok := item.Find("p.txt")
	if !ok {
		t.Fatal("Find(p.txt) not found inside item")
	}
	if text.Text() != "만 40세 이상" {
		t.Errorf("Text = %q", text.Text())
	}

	if _, ok := page.ElementContaining("li", "없는토큰"); ok {
		t.Error("ElementContaining matched an absent token")
	}
}

func TestPageScreenshotUnsupported(t *testing.T) {
	page := mustPage(t, pageHTML)

	if err := page.Screenshot("out.png"); err == nil {
		t.Error("snapshot-only page should not support screenshots")
	}
}
