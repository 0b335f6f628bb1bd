package core

import "sort"

// Totals holds the three headline figures for a transaction list.
type Totals struct {
	Income  Money
	Expense Money
	Balance Money
}

// MonthlySummary is the income/expense breakdown for one calendar month.
type MonthlySummary struct {
	Year    int
	Month   int // 1-12
	Income  Money
	Expense Money
}

// CategorySummary is an expense amount aggregated by category name.
type CategorySummary struct {
	Category string
	Amount   Money
}

// TotalIncome sums the amounts of all income records.
func TotalIncome(list []Transaction) Money {
	var sum int64
	for _, t := range list {
		if t.Kind.IsIncome() {
			sum += t.Amount.Yen
		}
	}
	return Money{Yen: sum}
}

// TotalExpense sums the amounts of all expense records.
func TotalExpense(list []Transaction) Money {
	var sum int64
	for _, t := range list {
		if !t.Kind.IsIncome() {
			sum += t.Amount.Yen
		}
	}
	return Money{Yen: sum}
}

// Balance is total income minus total expense. May be negative.
func Balance(list []Transaction) Money {
	return Money{Yen: TotalIncome(list).Yen - TotalExpense(list).Yen}
}

// Summarize computes all three headline figures in one pass over the list.
func Summarize(list []Transaction) Totals {
	var income, expense int64
	for _, t := range list {
		if t.Kind.IsIncome() {
			income += t.Amount.Yen
		} else {
			expense += t.Amount.Yen
		}
	}
	return Totals{
		Income:  Money{Yen: income},
		Expense: Money{Yen: expense},
		Balance: Money{Yen: income - expense},
	}
}

// MonthlySummaries partitions the list by (year, month) of each record's date
// and sums income and expense per partition. The result is ordered ascending
// by month; months with no transactions never appear.
func MonthlySummaries(list []Transaction) []MonthlySummary {
	type ym struct{ year, month int }
	byMonth := make(map[ym]*MonthlySummary)
	for _, t := range list {
		key := ym{t.Date.Year(), t.Date.Month()}
		s, ok := byMonth[key]
		if !ok {
			s = &MonthlySummary{Year: key.year, Month: key.month}
			byMonth[key] = s
		}
		if t.Kind.IsIncome() {
			s.Income.Yen += t.Amount.Yen
		} else {
			s.Expense.Yen += t.Amount.Yen
		}
	}
	out := make([]MonthlySummary, 0, len(byMonth))
	for _, s := range byMonth {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// ExpenseCategorySummaries partitions expense records by category and sums
// the amount per partition. The result is ordered descending by amount;
// equal amounts are ordered ascending by category name so the output is
// deterministic.
func ExpenseCategorySummaries(list []Transaction) []CategorySummary {
	byCat := make(map[string]int64)
	for _, t := range list {
		if t.Kind.IsIncome() {
			continue
		}
		byCat[t.Category] += t.Amount.Yen
	}
	out := make([]CategorySummary, 0, len(byCat))
	for cat, sum := range byCat {
		out = append(out, CategorySummary{Category: cat, Amount: Money{Yen: sum}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Yen != out[j].Amount.Yen {
			return out[i].Amount.Yen > out[j].Amount.Yen
		}
		return out[i].Category < out[j].Category
	})
	return out
}
