// Package core provides the ledger domain model and aggregation logic.
//
// This file contains functions for parsing whole-yen amounts from user
// input and formatting them for display.
package core

import (
	"strconv"
	"strings"
)

// ParseYen converts an amount string to whole yen.
//
// Amounts are integral: digits only after trimming, with commas tolerated as
// thousands separators ("1,200" -> 1200). Signs, decimal points and any other
// runes are rejected. Returns ErrInvalidAmount for anything that does not
// parse; callers decide whether that failure is surfaced or swallowed.
func ParseYen(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, ErrInvalidAmount
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Only overflow is possible here
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// FormatYen renders an amount as "¥1,234" with thousands separators.
// Negative values (a balance can go below zero) render as "-¥1,234".
func FormatYen(yen int64) string {
	neg := yen < 0
	if neg {
		yen = -yen
	}
	digits := strconv.FormatInt(yen, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("¥")
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Format renders the money value for display.
func (m Money) Format() string {
	return FormatYen(m.Yen)
}
