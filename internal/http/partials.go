package http

import (
	"log/slog"
	"net/http"

	"kakeibo/internal/core"
)

// View models for templates. Everything is preformatted here so the
// templates stay free of arithmetic.
type (
	totalsView struct {
		Income  string
		Expense string
		Balance string
		Deficit bool
	}

	transactionRow struct {
		ID       string
		Date     string
		Category string
		Amount   string
		Memo     string
		IsIncome bool
	}

	monthRow struct {
		Label   string
		Income  string
		Expense string
	}

	categoryRow struct {
		Category string
		Amount   string
		Width    int // percent of the largest category, for the bar chart
	}

	entryFormView struct {
		Date       string
		Kind       core.Kind
		Category   string
		Categories []string
	}

	indexData struct {
		Totals       totalsView
		Transactions []transactionRow
		Monthly      []monthRow
		Categories   []categoryRow
		Form         entryFormView
	}
)

func newTotalsView(t core.Totals) totalsView {
	return totalsView{
		Income:  t.Income.Format(),
		Expense: t.Expense.Format(),
		Balance: t.Balance.Format(),
		Deficit: t.Balance.Yen < 0,
	}
}

func transactionRows(list []core.Transaction) []transactionRow {
	ordered := reverseChronological(list)
	rows := make([]transactionRow, 0, len(ordered))
	for _, t := range ordered {
		rows = append(rows, transactionRow{
			ID:       t.ID,
			Date:     t.Date.Format("2006-01-02"),
			Category: t.Category,
			Amount:   t.Amount.Format(),
			Memo:     t.Memo,
			IsIncome: t.Kind.IsIncome(),
		})
	}
	return rows
}

func monthRows(summaries []core.MonthlySummary) []monthRow {
	rows := make([]monthRow, 0, len(summaries))
	for _, m := range summaries {
		rows = append(rows, monthRow{
			Label:   monthLabel(m.Year, m.Month),
			Income:  m.Income.Format(),
			Expense: m.Expense.Format(),
		})
	}
	return rows
}

func categoryRows(summaries []core.CategorySummary) []categoryRow {
	var maxYen int64
	for _, c := range summaries {
		if c.Amount.Yen > maxYen {
			maxYen = c.Amount.Yen
		}
	}
	rows := make([]categoryRow, 0, len(summaries))
	for _, c := range summaries {
		width := 0
		if maxYen > 0 && c.Amount.Yen > 0 {
			width = int((c.Amount.Yen*100 + maxYen/2) / maxYen) // rounded percent
			if width < 2 {
				width = 2 // keep tiny categories visible
			}
			if width > 100 {
				width = 100
			}
		}
		rows = append(rows, categoryRow{
			Category: c.Category,
			Amount:   c.Amount.Format(),
			Width:    width,
		})
	}
	return rows
}

func (s *Server) renderPartial(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", name)
		_, _ = w.Write([]byte(`<div class="placeholder">表示エラー</div>`))
	}
}

// handleSummaryPartial renders the three headline figures.
func (s *Server) handleSummaryPartial(w http.ResponseWriter, r *http.Request) {
	totals, err := s.getTotals(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Totals error", "error", err)
		http.Error(w, "summary unavailable", http.StatusInternalServerError)
		return
	}
	s.renderPartial(w, r, "summary.html", newTotalsView(totals))
}

// handleTransactionsPartial renders the reverse-chronological list.
func (s *Server) handleTransactionsPartial(w http.ResponseWriter, r *http.Request) {
	list, err := s.snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction list error", "error", err)
		http.Error(w, "transactions unavailable", http.StatusInternalServerError)
		return
	}
	s.renderPartial(w, r, "transactions.html", transactionRows(list))
}

// handleMonthlyPartial renders the month-by-month breakdown.
func (s *Server) handleMonthlyPartial(w http.ResponseWriter, r *http.Request) {
	monthly, err := s.getMonthly(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Monthly summaries error", "error", err)
		http.Error(w, "monthly view unavailable", http.StatusInternalServerError)
		return
	}
	s.renderPartial(w, r, "monthly.html", monthRows(monthly))
}

// handleCategoriesPartial renders the expense-by-category breakdown.
func (s *Server) handleCategoriesPartial(w http.ResponseWriter, r *http.Request) {
	categories, err := s.getCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Category summaries error", "error", err)
		http.Error(w, "category view unavailable", http.StatusInternalServerError)
		return
	}
	s.renderPartial(w, r, "categories.html", categoryRows(categories))
}

// handleEntryFormPartial re-renders the category select when the kind
// toggle changes. The held category is kept even when it belongs to the
// other kind's list; it changes only when the user picks a new one.
func (s *Server) handleEntryFormPartial(w http.ResponseWriter, r *http.Request) {
	kind := ParseKindParam(r.URL.Query())
	category := sanitizeInput(r.URL.Query().Get("category"))

	cats, err := s.taxonomy.Suggested(r.Context(), kind)
	if err != nil {
		slog.ErrorContext(r.Context(), "Taxonomy list error", "error", err, "kind", kind)
	}

	s.renderPartial(w, r, "category_select.html", entryFormView{
		Kind:       kind,
		Category:   category,
		Categories: cats,
	})
}
