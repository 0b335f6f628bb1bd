package core

import (
	"errors"
	"time"
)

const (
	Expense Kind = "expense"
	Income  Kind = "income"
)

type (
	// Kind discriminates income from expense records. There is no third kind.
	Kind string

	Date struct {
		time.Time
	}

	Money struct {
		Yen int64
	}

	// Transaction is a single recorded income or expense event.
	// ID is assigned by the store at append time and never changes.
	Transaction struct {
		ID       string
		Date     Date
		Category string
		Amount   Money
		Kind     Kind
		Memo     string
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid kind")
)

func (k Kind) Validate() error {
	switch k {
	case Expense, Income:
		return nil
	}
	return ErrInvalidKind
}

// IsIncome reports whether the kind is income.
func (k Kind) IsIncome() bool {
	return k == Income
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month (1-12)
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today truncates the given moment to a calendar date.
func Today(now time.Time) Date {
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (m Money) Validate() error {
	if m.Yen < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks structural validity only. A transaction with an arbitrary
// category string (including empty) is structurally valid; the entry flow is
// responsible for requiring a category before save.
func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	return nil
}
