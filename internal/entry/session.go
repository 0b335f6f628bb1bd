// Package entry implements the transaction entry flow: a two-state
// machine (idle, editing) over an uncommitted draft.
package entry

import (
	"errors"
	"strings"
	"time"

	"kakeibo/internal/core"
)

const (
	StateIdle    State = "idle"
	StateEditing State = "editing"
)

type (
	State string

	// Draft is the in-progress, uncommitted state of the entry form.
	// AmountText stays text until save; parsing is part of the save action.
	Draft struct {
		Date       core.Date
		Category   string
		AmountText string
		Kind       core.Kind
		Memo       string
	}

	// Session owns one draft at a time. Not safe for concurrent use;
	// each caller builds its own session.
	Session struct {
		state       State
		draft       Draft
		expenseCats []string
		incomeCats  []string
	}
)

var (
	ErrAlreadyEditing  = errors.New("entry already in progress")
	ErrNotEditing      = errors.New("no entry in progress")
	ErrIncompleteDraft = errors.New("category and amount are required")
)

// NewSession creates an idle session with the given suggested-category lists.
func NewSession(expenseCats, incomeCats []string) *Session {
	return &Session{
		state:       StateIdle,
		expenseCats: expenseCats,
		incomeCats:  incomeCats,
	}
}

func (s *Session) State() State { return s.state }

func (s *Session) Draft() Draft { return s.draft }

// Begin opens a new draft: date set to the given moment, kind expense,
// category preselected to the first suggested expense category, amount and
// memo empty.
func (s *Session) Begin(now time.Time) error {
	if s.state == StateEditing {
		return ErrAlreadyEditing
	}
	s.draft = Draft{
		Date: core.Today(now),
		Kind: core.Expense,
	}
	if len(s.expenseCats) > 0 {
		s.draft.Category = s.expenseCats[0]
	}
	s.state = StateEditing
	return nil
}

// SetKind switches the draft between expense and income. The suggestion
// list returned by Suggestions changes accordingly, but the currently held
// category is kept until explicitly changed.
func (s *Session) SetKind(k core.Kind) error {
	if s.state != StateEditing {
		return ErrNotEditing
	}
	if err := k.Validate(); err != nil {
		return err
	}
	s.draft.Kind = k
	return nil
}

func (s *Session) SetDate(d core.Date) error {
	if s.state != StateEditing {
		return ErrNotEditing
	}
	s.draft.Date = d
	return nil
}

func (s *Session) SetCategory(c string) error {
	if s.state != StateEditing {
		return ErrNotEditing
	}
	s.draft.Category = strings.TrimSpace(c)
	return nil
}

func (s *Session) SetAmountText(a string) error {
	if s.state != StateEditing {
		return ErrNotEditing
	}
	s.draft.AmountText = strings.TrimSpace(a)
	return nil
}

func (s *Session) SetMemo(m string) error {
	if s.state != StateEditing {
		return ErrNotEditing
	}
	s.draft.Memo = m
	return nil
}

// Suggestions returns the suggested categories for the draft's current kind.
func (s *Session) Suggestions() []string {
	if s.draft.Kind.IsIncome() {
		return s.incomeCats
	}
	return s.expenseCats
}

// CanSave reports whether the save action is enabled: category and amount
// text must both be non-empty. It says nothing about whether the amount
// actually parses.
func (s *Session) CanSave() bool {
	return s.state == StateEditing && s.draft.Category != "" && s.draft.AmountText != ""
}

// Save parses the amount text and builds the transaction. On success the
// session returns to idle and the transaction (ID unassigned) is returned
// for the caller to append to the store. On parse failure the session stays
// editing and core.ErrInvalidAmount is returned; callers choose whether to
// surface it.
func (s *Session) Save() (core.Transaction, error) {
	if s.state != StateEditing {
		return core.Transaction{}, ErrNotEditing
	}
	if !s.CanSave() {
		return core.Transaction{}, ErrIncompleteDraft
	}
	yen, err := core.ParseYen(s.draft.AmountText)
	if err != nil {
		// Draft stays open, nothing is created.
		return core.Transaction{}, err
	}
	t := core.Transaction{
		Date:     s.draft.Date,
		Category: s.draft.Category,
		Amount:   core.Money{Yen: yen},
		Kind:     s.draft.Kind,
		Memo:     s.draft.Memo,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	s.state = StateIdle
	s.draft = Draft{}
	return t, nil
}

// Cancel discards the draft unconditionally and returns to idle.
func (s *Session) Cancel() {
	s.state = StateIdle
	s.draft = Draft{}
}
