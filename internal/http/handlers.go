package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"kakeibo/internal/core"
	"kakeibo/internal/entry"
)

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("templates not loaded"))
		return
	}
	if _, err := s.lister.List(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("store not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "path", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	expenseCats, err := s.taxonomy.Suggested(ctx, core.Expense)
	if err != nil {
		slog.ErrorContext(ctx, "Taxonomy list error", "error", err, "kind", core.Expense)
	}
	incomeCats, err := s.taxonomy.Suggested(ctx, core.Income)
	if err != nil {
		slog.ErrorContext(ctx, "Taxonomy list error", "error", err, "kind", core.Income)
	}

	// A fresh draft provides the form defaults: today's date, expense
	// kind, first suggested expense category.
	sess := entry.NewSession(expenseCats, incomeCats)
	_ = sess.Begin(time.Now())
	draft := sess.Draft()

	list, err := s.snapshot(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Transaction list error", "error", err)
	}
	totals, err := s.getTotals(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Totals error", "error", err)
	}
	monthly, err := s.getMonthly(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Monthly summaries error", "error", err)
	}
	categories, err := s.getCategories(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Category summaries error", "error", err)
	}

	data := indexData{
		Totals:       newTotalsView(totals),
		Transactions: transactionRows(list),
		Monthly:      monthRows(monthly),
		Categories:   categoryRows(categories),
		Form: entryFormView{
			Date:       draft.Date.Format("2006-01-02"),
			Kind:       draft.Kind,
			Category:   draft.Category,
			Categories: sess.Suggestions(),
		},
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(ctx, "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "path", r.URL.Path)
		BadRequestError("リクエストの形式が正しくありません").Write(w)
		return
	}

	ctx := r.Context()
	expenseCats, err := s.taxonomy.Suggested(ctx, core.Expense)
	if err != nil {
		slog.ErrorContext(ctx, "Taxonomy list error", "error", err)
	}
	incomeCats, err := s.taxonomy.Suggested(ctx, core.Income)
	if err != nil {
		slog.ErrorContext(ctx, "Taxonomy list error", "error", err)
	}

	f := ParseEntryForm(r.Form)

	sess := entry.NewSession(expenseCats, incomeCats)
	_ = sess.Begin(time.Now())
	_ = sess.SetKind(f.Kind)
	if f.DateText != "" {
		if d, err := parseDate(f.DateText); err == nil {
			_ = sess.SetDate(d)
		}
	}
	_ = sess.SetCategory(f.Category)
	_ = sess.SetAmountText(f.AmountText)
	_ = sess.SetMemo(f.Memo)

	tx, err := sess.Save()
	switch {
	case errors.Is(err, entry.ErrIncompleteDraft):
		UnprocessableEntityError("カテゴリと金額を入力してください").Write(w)
		return
	case errors.Is(err, core.ErrInvalidAmount):
		// The source behavior: an unparseable amount aborts the save with
		// no record and no visible error. The form stays as it was.
		slog.WarnContext(ctx, "Amount text did not parse, save aborted",
			"amount_text", f.AmountText)
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		UnprocessableEntityError("入力内容が正しくありません: " + err.Error()).Write(w)
		return
	}

	saved, err := s.appender.Append(ctx, tx)
	if err != nil {
		slog.ErrorContext(ctx, "Transaction append error", "error", err,
			"category", tx.Category, "amount_yen", tx.Amount.Yen, "kind", tx.Kind)
		InternalServerError("保存に失敗しました").Write(w)
		return
	}
	s.invalidateViews()

	slog.InfoContext(ctx, "Transaction recorded",
		"transaction_id", saved.ID,
		"category", saved.Category,
		"amount_yen", saved.Amount.Yen,
		"kind", saved.Kind)

	label := "支出"
	if saved.Kind.IsIncome() {
		label = "収入"
	}
	NewHTMXResponse().
		TriggerTransactionCreated(saved.Date.Year(), saved.Date.Month()).
		TriggerFormReset().
		BodyHTML(`<div class="success">` + label + `を記録しました: ` +
			template.HTMLEscapeString(saved.Category) + ` ` +
			template.HTMLEscapeString(saved.Amount.Format()) + `</div>`).
		Write(w)
}

func (s *Server) handleDeleteTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowedError("POST").Write(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "path", r.URL.Path)
		BadRequestError("リクエストの形式が正しくありません").Write(w)
		return
	}

	ids := r.Form["id"]
	if len(ids) == 0 {
		BadRequestError("削除対象が指定されていません").Write(w)
		return
	}

	removed, err := s.remover.Remove(r.Context(), ids...)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction remove error", "error", err, "count", len(ids))
		InternalServerError("削除に失敗しました").Write(w)
		return
	}
	if removed > 0 {
		s.invalidateViews()
	}

	slog.InfoContext(r.Context(), "Transactions removed", "requested", len(ids), "removed", removed)

	NewHTMXResponse().
		TriggerTransactionDeleted(removed).
		BodyHTML(`<div class="success">削除しました</div>`).
		Write(w)
}
