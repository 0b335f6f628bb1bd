package memory

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"kakeibo/internal/core"
)

// Default suggested categories, used when no seed files are present.
var (
	defaultExpenseCategories = []string{"食費", "日用品", "交通費", "住居費", "交際費", "趣味", "医療費", "その他"}
	defaultIncomeCategories  = []string{"給料", "ボーナス", "副収入", "その他"}
)

// Store holds the transaction list in memory for the process lifetime.
// Mutex-guarded so overlapping HTTP requests stay safe.
type Store struct {
	mu          sync.Mutex
	expenseCats []string
	incomeCats  []string
	items       []core.Transaction
}

func New(expenseCats, incomeCats []string) *Store {
	if len(expenseCats) == 0 {
		expenseCats = defaultExpenseCategories
	}
	if len(incomeCats) == 0 {
		incomeCats = defaultIncomeCategories
	}
	return &Store{expenseCats: dedupe(expenseCats), incomeCats: dedupe(incomeCats)}
}

// NewFromFiles builds a store with suggested categories seeded from
// base/seed_expense_categories.txt and base/seed_income_categories.txt.
// Missing files fall back to the built-in defaults.
func NewFromFiles(base string) *Store {
	return New(
		readLines(filepath.Join(base, "seed_expense_categories.txt")),
		readLines(filepath.Join(base, "seed_income_categories.txt")),
	)
}

// Append stores the transaction under a fresh identifier and returns the
// stored record. No validation happens here: the entry flow validates
// before calling, and an arbitrary category string is structurally valid.
func (s *Store) Append(_ context.Context, t core.Transaction) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.NewString()
	s.items = append(s.items, t)
	return t, nil
}

// Remove deletes the records whose IDs appear in ids, preserving the
// relative order of the survivors. Unknown IDs are a no-op.
func (s *Store) Remove(_ context.Context, ids ...string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.items[:0]
	removed := 0
	for _, t := range s.items {
		if _, ok := drop[t.ID]; ok {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	s.items = kept
	return removed, nil
}

// List returns a copy of all records in insertion order.
func (s *Store) List(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Suggested returns the suggested category list for the given kind.
func (s *Store) Suggested(_ context.Context, kind core.Kind) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.expenseCats
	if kind.IsIncome() {
		src = s.incomeCats
	}
	out := make([]string, len(src))
	copy(out, src)
	return out, nil
}

func readLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return dedupe(out)
}

// dedupe trims and removes duplicates, preserving input order.
func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
