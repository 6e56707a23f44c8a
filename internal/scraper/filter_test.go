package scraper

import "testing"

func TestFilterEligible(t *testing.T) {
	filter := NewFilter(nil)

	tests := []struct {
		text     string
		eligible bool
	}{
		{"전체", true},
		{"만 40세 이상", true},
		{"만 20세 이상 만 39세 이하", false},
		{"만 39세 이하", false},
		{"연령 전체 대상", true},
		{"", false},
		{Unavailable, false},
	}

	for _, tt := range tests {
		if got := filter.Eligible(tt.text); got != tt.eligible {
			t.Errorf("Eligible(%q) = %v, want %v", tt.text, got, tt.eligible)
		}
	}
}

func TestFilterCustomMarkers(t *testing.T) {
	filter := NewFilter([]string{"청년"})

	if !filter.Eligible("청년 창업자") {
		t.Error("custom marker should match")
	}
	if filter.Eligible("전체") {
		t.Error("default markers must not apply when custom markers are set")
	}
}
