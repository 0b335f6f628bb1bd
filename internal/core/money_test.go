package core

import "testing"

func TestParseYen(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 1, true},
		{"0", 0, true},
		{"1200", 1200, true},
		{"1,200", 1200, true},
		{" 350 ", 350, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"1.5", 0, false},
		{"abc", 0, false},
		{"12a", 0, false},
		{"", 0, false},
		{"  ", 0, false},
		{"99999999999999999999", 0, false}, // overflow
	}
	for _, tc := range cases {
		got, err := ParseYen(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestFormatYen(t *testing.T) {
	cases := []struct {
		in  int64
		out string
	}{
		{0, "¥0"},
		{5, "¥5"},
		{400, "¥400"},
		{1000, "¥1,000"},
		{1234567, "¥1,234,567"},
		{-600, "-¥600"},
		{-1234567, "-¥1,234,567"},
	}
	for _, tc := range cases {
		if got := FormatYen(tc.in); got != tc.out {
			t.Fatalf("FormatYen(%d) = %q, want %q", tc.in, got, tc.out)
		}
	}
}
