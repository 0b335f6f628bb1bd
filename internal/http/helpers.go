package http

import (
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"strings"
	"time"

	"kakeibo/internal/core"
)

// clientIP extracts the client address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (core.Date, error) {
	parsedTime, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: parsedTime}, nil
}

// reverseChronological returns a copy ordered newest date first; records on
// the same date keep most-recently-added first.
func reverseChronological(list []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, len(list))
	for i, t := range list {
		out[len(list)-1-i] = t
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Time.After(out[j].Date.Time)
	})
	return out
}

// monthLabel renders "2026-01" for a monthly summary row.
func monthLabel(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"yen":        core.FormatYen,
		"monthLabel": monthLabel,
		"contains": func(list []string, v string) bool {
			for _, s := range list {
				if s == v {
					return true
				}
			}
			return false
		},
	}
}
