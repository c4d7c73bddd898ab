package monitor

import (
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/umputun/newsdesk/pkg/domain"
)

// ParseDate parses a timestamp-like string in any common layout, zone-less values are UTC.
// ok is false if the string can't be parsed.
func ParseDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Normalize returns a copy of items stable-sorted by date, newest first.
// Items with unparsable dates keep their relative order and go after all dated items.
func Normalize(items []domain.NewsItem) []domain.NewsItem {
	res := make([]domain.NewsItem, len(items))
	copy(res, items)

	keys := make([]dateKey, len(res))
	for i := range res {
		keys[i] = newDateKey(res[i].Date)
	}
	sort.Stable(byDateDesc{items: res, keys: keys})
	return res
}

// dateKey is a parsed date, valid is false for unparsable dates
type dateKey struct {
	t     time.Time
	valid bool
}

func newDateKey(s string) dateKey {
	t, ok := ParseDate(s)
	return dateKey{t: t, valid: ok}
}

// CompareDates orders two date strings by time, unparsable dates after parsable ones
// and equal to each other. Returns -1, 0 or 1.
func CompareDates(a, b string) int {
	return newDateKey(a).compare(newDateKey(b))
}

func (d dateKey) compare(o dateKey) int {
	switch {
	case !d.valid && !o.valid:
		return 0
	case !d.valid:
		return 1
	case !o.valid:
		return -1
	}
	return d.t.Compare(o.t)
}

// byDateDesc sorts items and their pre-parsed keys together
type byDateDesc struct {
	items []domain.NewsItem
	keys  []dateKey
}

func (s byDateDesc) Len() int { return len(s.items) }

func (s byDateDesc) Swap(i, j int) {
	s.items[i], s.items[j] = s.items[j], s.items[i]
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
}

func (s byDateDesc) Less(i, j int) bool {
	a, b := s.keys[i], s.keys[j]
	if a.valid != b.valid {
		return a.valid // dated items first
	}
	if !a.valid {
		return false
	}
	return a.t.After(b.t)
}
