package ui

import (
	"strings"
	"testing"
	"time"
)

func TestPreviewDescriptionShortUnchanged(t *testing.T) {
	s := "The printer is jammed again."
	if got := PreviewDescription(s); got != s {
		t.Errorf("short description changed: %q", got)
	}
}

func TestPreviewDescriptionTruncates(t *testing.T) {
	long := strings.Repeat("a", 300)
	got := PreviewDescription(long)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
	if len([]rune(got)) > PreviewWidth {
		t.Errorf("preview too long: %d runes", len([]rune(got)))
	}
}

func TestPreviewDescriptionWideRunes(t *testing.T) {
	long := strings.Repeat("描", 200)
	got := PreviewDescription(long)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis suffix for wide text")
	}
	// Wide runes count double; far fewer than 120 of them fit.
	if n := len([]rune(got)); n > PreviewWidth/2+1 {
		t.Errorf("wide-rune preview too long: %d runes", n)
	}
}

func TestFormatTimeRel(t *testing.T) {
	now := time.Now()
	cases := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-48 * time.Hour), "2d ago"},
	}
	for _, tc := range cases {
		if got := FormatTimeRel(tc.t); got != tc.want {
			t.Errorf("FormatTimeRel(%v) = %q, want %q", tc.t, got, tc.want)
		}
	}
	if got := FormatTimeRel(time.Time{}); got != "" {
		t.Errorf("zero time should render empty, got %q", got)
	}
}
