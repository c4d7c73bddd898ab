// Package companies keeps the user-entered list of company names
package companies

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	// ErrLastRow returned when removing the only remaining row
	ErrLastRow = errors.New("at least one company row is required")
	// ErrOutOfRange returned for a row index outside the list
	ErrOutOfRange = errors.New("company row index out of range")
)

// List is an ordered set of raw company name rows. It always has at least one row,
// rows may be blank or duplicated.
type List struct {
	mu   sync.Mutex
	rows []string
}

// New makes a list with the given rows, or with a single blank row if none given
func New(rows ...string) *List {
	if len(rows) == 0 {
		return &List{rows: []string{""}}
	}
	return &List{rows: append([]string(nil), rows...)}
}

// Add appends a blank row
func (l *List) Add() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = append(l.rows, "")
}

// Remove deletes the row at index. The last remaining row can't be removed.
func (l *List) Remove(index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.rows) {
		return fmt.Errorf("remove row %d: %w", index, ErrOutOfRange)
	}
	if len(l.rows) == 1 {
		return ErrLastRow
	}
	l.rows = append(l.rows[:index], l.rows[index+1:]...)
	return nil
}

// Update replaces the text of the row at index as is, without trimming
func (l *List) Update(index int, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if index < 0 || index >= len(l.rows) {
		return fmt.Errorf("update row %d: %w", index, ErrOutOfRange)
	}
	l.rows[index] = value
	return nil
}

// Snapshot returns a copy of the raw rows in display order
func (l *List) Snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	res := make([]string, len(l.rows))
	copy(res, l.rows)
	return res
}

// Len returns number of rows
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.rows)
}

// HasCompanies reports whether at least one row is non-blank
func (l *List) HasCompanies() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range l.rows {
		if strings.TrimSpace(r) != "" {
			return true
		}
	}
	return false
}
