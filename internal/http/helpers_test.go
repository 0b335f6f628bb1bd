package http

import (
	"net/http/httptest"
	"testing"

	"kakeibo/internal/core"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name     string
		xff      string
		realIP   string
		remote   string
		expected string
	}{
		{"forwarded for wins", "203.0.113.9", "198.51.100.2", "10.0.0.1:1234", "203.0.113.9"},
		{"real ip next", "", "198.51.100.2", "10.0.0.1:1234", "198.51.100.2"},
		{"remote addr fallback", "", "", "10.0.0.1:1234", "10.0.0.1:1234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}
			if got := clientIP(req); got != tt.expected {
				t.Errorf("clientIP() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"  スーパー  ", "スーパー"},
		{"food\x00bar", "foodbar"},
		{"a\tb", "a\tb"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.expected {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2026-01-10")
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	if d.Year() != 2026 || d.Month() != 1 || d.Day() != 10 {
		t.Errorf("unexpected date parts: %d-%d-%d", d.Year(), d.Month(), d.Day())
	}

	for _, bad := range []string{"", "10/01/2026", "2026-13-01", "not a date"} {
		if _, err := parseDate(bad); err == nil {
			t.Errorf("parseDate(%q) should fail", bad)
		}
	}
}

func TestReverseChronological(t *testing.T) {
	list := []core.Transaction{
		{ID: "a", Date: core.NewDate(2026, 1, 5)},
		{ID: "b", Date: core.NewDate(2026, 1, 10)},
		{ID: "c", Date: core.NewDate(2026, 1, 10)},
		{ID: "d", Date: core.NewDate(2025, 12, 31)},
	}
	out := reverseChronological(list)

	want := []string{"c", "b", "a", "d"}
	if len(out) != len(want) {
		t.Fatalf("length = %d, want %d", len(out), len(want))
	}
	for i, id := range want {
		if out[i].ID != id {
			t.Errorf("position %d: got %q, want %q (order %v)", i, out[i].ID, id, out)
		}
	}

	// Input slice stays untouched.
	if list[0].ID != "a" || list[3].ID != "d" {
		t.Errorf("input mutated: %v", list)
	}
}

func TestMonthLabel(t *testing.T) {
	if got := monthLabel(2026, 1); got != "2026-01" {
		t.Errorf("monthLabel = %q", got)
	}
	if got := monthLabel(999, 12); got != "0999-12" {
		t.Errorf("monthLabel = %q", got)
	}
}
