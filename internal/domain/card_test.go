package domain

import (
	"testing"
	"time"
)

func TestParseDueDate(t *testing.T) {
	got, err := ParseDueDate("2026-03-15")
	if err != nil {
		t.Fatalf("ParseDueDate date-only: %v", err)
	}
	if got == nil || got.Year() != 2026 || got.Month() != time.March || got.Day() != 15 {
		t.Errorf("unexpected date: %v", got)
	}

	got, err = ParseDueDate("2026-03-15T14:30:00Z")
	if err != nil {
		t.Fatalf("ParseDueDate RFC3339: %v", err)
	}
	if got == nil || got.Hour() != 14 || got.Minute() != 30 {
		t.Errorf("unexpected time: %v", got)
	}
}

func TestParseDueDate_Empty(t *testing.T) {
	got, err := ParseDueDate("")
	if err != nil {
		t.Fatalf("ParseDueDate empty: %v", err)
	}
	if got != nil {
		t.Errorf("empty due date should be nil, got %v", got)
	}
}

func TestParseDueDate_Invalid(t *testing.T) {
	for _, s := range []string{"15/03/2026", "tomorrow", "2026-13-45"} {
		if _, err := ParseDueDate(s); err == nil {
			t.Errorf("ParseDueDate(%q) should fail", s)
		}
	}
}
