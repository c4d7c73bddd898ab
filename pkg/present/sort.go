// Package present orders fetched news for display and builds display rows
package present

import (
	"sort"
	"strings"
	"sync"

	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/monitor"
)

// comparator returns negative, zero or positive like strings.Compare
type comparator func(a, b *domain.NewsItem) int

var comparators = map[domain.SortKey]comparator{
	domain.SortByDate:      func(a, b *domain.NewsItem) int { return monitor.CompareDates(a.Date, b.Date) },
	domain.SortByCompany:   func(a, b *domain.NewsItem) int { return strings.Compare(a.Company, b.Company) },
	domain.SortBySummary:   func(a, b *domain.NewsItem) int { return strings.Compare(a.Summary, b.Summary) },
	domain.SortBySentiment: func(a, b *domain.NewsItem) int { return strings.Compare(a.Sentiment, b.Sentiment) },
}

// trailing marks items that go after all others for a key, in either direction
var trailing = map[domain.SortKey]func(it *domain.NewsItem) bool{
	domain.SortByDate: func(it *domain.NewsItem) bool {
		_, ok := monitor.ParseDate(it.Date)
		return !ok
	},
}

// SortBy returns a stable-sorted copy of items. Unknown keys keep the input order.
func SortBy(items []domain.NewsItem, spec domain.SortSpec) []domain.NewsItem {
	res := make([]domain.NewsItem, len(items))
	copy(res, items)

	cmp, ok := comparators[spec.Key]
	if !ok {
		return res
	}
	last := trailing[spec.Key]
	desc := spec.Direction == domain.Descending

	sort.SliceStable(res, func(i, j int) bool {
		a, b := &res[i], &res[j]
		if last != nil {
			la, lb := last(a), last(b)
			if la != lb {
				return lb
			}
			if la {
				return false
			}
		}
		if desc {
			return cmp(a, b) > 0
		}
		return cmp(a, b) < 0
	})
	return res
}

// Toggle returns the spec after the user picks key: the active key flips direction,
// any other key becomes active in ascending order
func Toggle(current domain.SortSpec, key domain.SortKey) domain.SortSpec {
	if current.Key == key {
		if current.Direction == domain.Ascending {
			return domain.SortSpec{Key: key, Direction: domain.Descending}
		}
		return domain.SortSpec{Key: key, Direction: domain.Ascending}
	}
	return domain.SortSpec{Key: key, Direction: domain.Ascending}
}

// Presenter keeps the user-selected sort, independent of fetches
type Presenter struct {
	mu   sync.Mutex
	spec domain.SortSpec
}

// NewPresenter makes a presenter sorted by date, newest first
func NewPresenter() *Presenter {
	return &Presenter{spec: domain.DefaultSortSpec}
}

// Spec returns the current sort spec
func (p *Presenter) Spec() domain.SortSpec {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.spec
}

// Click applies a column pick and returns the new spec
func (p *Presenter) Click(key domain.SortKey) domain.SortSpec {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.spec = Toggle(p.spec, key)
	return p.spec
}

// Sorted returns items ordered by the current spec, items are not modified
func (p *Presenter) Sorted(items []domain.NewsItem) []domain.NewsItem {
	return SortBy(items, p.Spec())
}
