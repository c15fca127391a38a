package services

import (
	"strings"
	"testing"
)

func TestTruncateSMS(t *testing.T) {
	short := "Take rest and drink fluids."
	if got := TruncateSMS(short); got != short {
		t.Errorf("short message must be unchanged, got %q", got)
	}

	long := strings.Repeat("a", 200)
	got := TruncateSMS(long)
	if len([]rune(got)) != 160 {
		t.Errorf("expected 160 chars, got %d", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got[len(got)-5:])
	}

	exact := strings.Repeat("b", 160)
	if got := TruncateSMS(exact); got != exact {
		t.Error("message at the limit must be unchanged")
	}
}
