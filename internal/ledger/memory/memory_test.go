package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"kakeibo/internal/core"
)

func TestAppendAssignsUniqueIDs(t *testing.T) {
	s := New(nil, nil)
	ctx := context.Background()

	a, err := s.Append(ctx, core.Transaction{
		Date: core.NewDate(2026, 1, 5), Category: "食費",
		Amount: core.Money{Yen: 400}, Kind: core.Expense,
	})
	if err != nil || a.ID == "" {
		t.Fatalf("unexpected append: id=%q err=%v", a.ID, err)
	}
	b, err := s.Append(ctx, core.Transaction{
		Date: core.NewDate(2026, 1, 6), Category: "給料",
		Amount: core.Money{Yen: 1000}, Kind: core.Income,
	})
	if err != nil || b.ID == "" || b.ID == a.ID {
		t.Fatalf("expected distinct id, got %q and %q (err=%v)", a.ID, b.ID, err)
	}

	items, err := s.List(ctx)
	if err != nil || len(items) != 2 {
		t.Fatalf("unexpected list: %v err=%v", items, err)
	}
	if items[0].ID != a.ID || items[1].ID != b.ID {
		t.Fatalf("insertion order not preserved: %v", items)
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	s := New(nil, nil)
	ctx := context.Background()

	var ids []string
	for _, cat := range []string{"a", "b", "c", "d"} {
		tx, err := s.Append(ctx, core.Transaction{
			Date: core.NewDate(2026, 2, 1), Category: cat,
			Amount: core.Money{Yen: 100}, Kind: core.Expense,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		ids = append(ids, tx.ID)
	}

	n, err := s.Remove(ctx, ids[1])
	if err != nil || n != 1 {
		t.Fatalf("remove: n=%d err=%v", n, err)
	}
	items, _ := s.List(ctx)
	if len(items) != 3 {
		t.Fatalf("expected 3 left, got %d", len(items))
	}
	for i, want := range []string{"a", "c", "d"} {
		if items[i].Category != want {
			t.Fatalf("position %d: got %q, want %q", i, items[i].Category, want)
		}
	}

	// Unknown ids are a no-op
	n, err = s.Remove(ctx, "nope", "also-nope")
	if err != nil || n != 0 {
		t.Fatalf("expected no-op remove, n=%d err=%v", n, err)
	}
	items, _ = s.List(ctx)
	if len(items) != 3 {
		t.Fatalf("no-op remove changed the list: %v", items)
	}

	n, err = s.Remove(ctx)
	if err != nil || n != 0 {
		t.Fatalf("empty remove: n=%d err=%v", n, err)
	}
}

func TestSuggestedPerKind(t *testing.T) {
	s := New([]string{"食費", "日用品"}, []string{"給料"})
	ctx := context.Background()

	exp, err := s.Suggested(ctx, core.Expense)
	if err != nil || len(exp) != 2 || exp[0] != "食費" {
		t.Fatalf("unexpected expense suggestions: %v err=%v", exp, err)
	}
	inc, err := s.Suggested(ctx, core.Income)
	if err != nil || len(inc) != 1 || inc[0] != "給料" {
		t.Fatalf("unexpected income suggestions: %v err=%v", inc, err)
	}
}

func TestNewDefaultsWhenEmpty(t *testing.T) {
	s := New(nil, nil)
	exp, _ := s.Suggested(context.Background(), core.Expense)
	inc, _ := s.Suggested(context.Background(), core.Income)
	if len(exp) == 0 || len(inc) == 0 {
		t.Fatalf("expected built-in defaults, got exp=%v inc=%v", exp, inc)
	}
}

func TestNewFromFilesSeedsAndDedupe(t *testing.T) {
	dir := t.TempDir()
	// No files -> defaults
	s := NewFromFiles(dir)
	exp, _ := s.Suggested(context.Background(), core.Expense)
	if len(exp) == 0 {
		t.Fatalf("expected defaults when files missing")
	}

	mustWrite := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	mustWrite("seed_expense_categories.txt", "# header\n食費\n日用品\n食費\n\n")
	mustWrite("seed_income_categories.txt", "# header\n給料\n給料\nボーナス\n\n")

	s = NewFromFiles(dir)
	exp, _ = s.Suggested(context.Background(), core.Expense)
	inc, _ := s.Suggested(context.Background(), core.Income)
	if len(exp) != 2 || exp[0] != "食費" || exp[1] != "日用品" {
		t.Fatalf("unexpected expense seed: %v", exp)
	}
	if len(inc) != 2 || inc[0] != "給料" || inc[1] != "ボーナス" {
		t.Fatalf("unexpected income seed: %v", inc)
	}
}
