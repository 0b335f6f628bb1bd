package entry

import (
	"errors"
	"testing"
	"time"

	"kakeibo/internal/core"
)

var (
	expCats = []string{"食費", "日用品"}
	incCats = []string{"給料", "ボーナス"}
)

func editingSession(t *testing.T) *Session {
	t.Helper()
	s := NewSession(expCats, incCats)
	if err := s.Begin(time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("begin: %v", err)
	}
	return s
}

func TestBeginDefaults(t *testing.T) {
	s := editingSession(t)
	if s.State() != StateEditing {
		t.Fatalf("state = %q, want editing", s.State())
	}
	d := s.Draft()
	if d.Kind != core.Expense {
		t.Errorf("kind = %q, want expense", d.Kind)
	}
	if d.Category != "食費" {
		t.Errorf("category = %q, want first expense suggestion", d.Category)
	}
	if d.AmountText != "" || d.Memo != "" {
		t.Errorf("amount/memo should start empty: %+v", d)
	}
	if d.Date.Year() != 2026 || d.Date.Month() != 1 || d.Date.Day() != 10 {
		t.Errorf("unexpected draft date: %v", d.Date)
	}

	if err := s.Begin(time.Now()); !errors.Is(err, ErrAlreadyEditing) {
		t.Fatalf("second begin: got %v, want ErrAlreadyEditing", err)
	}
}

func TestKindToggleKeepsCategory(t *testing.T) {
	s := editingSession(t)
	if got := s.Suggestions(); len(got) != 2 || got[0] != "食費" {
		t.Fatalf("expense suggestions: %v", got)
	}
	if err := s.SetKind(core.Income); err != nil {
		t.Fatalf("set kind: %v", err)
	}
	if got := s.Suggestions(); len(got) != 2 || got[0] != "給料" {
		t.Fatalf("income suggestions: %v", got)
	}
	// Held category survives the toggle until explicitly changed.
	if got := s.Draft().Category; got != "食費" {
		t.Fatalf("category after toggle = %q, want 食費", got)
	}

	if err := s.SetKind(core.Kind("transfer")); !errors.Is(err, core.ErrInvalidKind) {
		t.Fatalf("invalid kind: got %v", err)
	}
}

func TestCanSave(t *testing.T) {
	s := editingSession(t)
	if s.CanSave() {
		t.Fatalf("empty amount should disable save")
	}
	if err := s.SetAmountText("400"); err != nil {
		t.Fatalf("set amount: %v", err)
	}
	if !s.CanSave() {
		t.Fatalf("save should be enabled")
	}
	if err := s.SetCategory(""); err != nil {
		t.Fatalf("set category: %v", err)
	}
	if s.CanSave() {
		t.Fatalf("empty category should disable save")
	}
}

func TestSaveSuccess(t *testing.T) {
	s := editingSession(t)
	_ = s.SetAmountText("1,200")
	_ = s.SetMemo("スーパー")
	tx, err := s.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if tx.Amount.Yen != 1200 || tx.Category != "食費" || tx.Kind != core.Expense || tx.Memo != "スーパー" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if tx.ID != "" {
		t.Fatalf("session must not assign IDs, got %q", tx.ID)
	}
	if s.State() != StateIdle {
		t.Fatalf("state after save = %q, want idle", s.State())
	}
}

func TestSaveInvalidAmountStaysEditing(t *testing.T) {
	s := editingSession(t)
	_ = s.SetAmountText("abc")
	_, err := s.Save()
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("got %v, want ErrInvalidAmount", err)
	}
	if s.State() != StateEditing {
		t.Fatalf("state = %q, want still editing", s.State())
	}
	// Draft is untouched, nothing was created.
	if s.Draft().AmountText != "abc" {
		t.Fatalf("draft amount changed: %+v", s.Draft())
	}
}

func TestSaveIncomplete(t *testing.T) {
	s := editingSession(t)
	if _, err := s.Save(); !errors.Is(err, ErrIncompleteDraft) {
		t.Fatalf("got %v, want ErrIncompleteDraft", err)
	}
}

func TestCancelDiscards(t *testing.T) {
	s := editingSession(t)
	_ = s.SetAmountText("400")
	s.Cancel()
	if s.State() != StateIdle {
		t.Fatalf("state = %q, want idle", s.State())
	}
	if s.Draft() != (Draft{}) {
		t.Fatalf("draft not discarded: %+v", s.Draft())
	}
	// Cancel when idle is harmless.
	s.Cancel()

	if _, err := s.Save(); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("save when idle: got %v, want ErrNotEditing", err)
	}
	if err := s.SetAmountText("1"); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("set when idle: got %v, want ErrNotEditing", err)
	}
}
