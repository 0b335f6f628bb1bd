package http

import (
	"net/url"
	"strings"

	"kakeibo/internal/core"
)

// EntryForm holds the raw entry-form fields as submitted. Amount stays text
// here; parsing it is part of the save flow.
type EntryForm struct {
	DateText   string
	Kind       core.Kind
	Category   string
	AmountText string
	Memo       string
}

// ParseEntryForm extracts the entry fields from a submitted form. The kind
// toggle is two-valued: anything that is not "income" is an expense.
func ParseEntryForm(form url.Values) EntryForm {
	kind := core.Expense
	if strings.TrimSpace(form.Get("kind")) == string(core.Income) {
		kind = core.Income
	}
	return EntryForm{
		DateText:   strings.TrimSpace(form.Get("date")),
		Kind:       kind,
		Category:   sanitizeInput(form.Get("category")),
		AmountText: strings.TrimSpace(form.Get("amount")),
		Memo:       sanitizeInput(form.Get("memo")),
	}
}

// ParseKindParam reads the kind toggle from query parameters, defaulting to
// expense.
func ParseKindParam(query url.Values) core.Kind {
	if strings.TrimSpace(query.Get("kind")) == string(core.Income) {
		return core.Income
	}
	return core.Expense
}
