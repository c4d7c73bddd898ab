package domain

// NewsItem represents a single news record returned by the news service
type NewsItem struct {
	Date      string   `json:"date"`
	Company   string   `json:"company"`
	Summary   string   `json:"summary"`
	Sentiment string   `json:"sentiment"`
	Links     []string `json:"links"`
	Cached    *bool    `json:"cached,omitempty"`
}

// IsCached reports whether the service served the item from its cache
func (n NewsItem) IsCached() bool {
	return n.Cached != nil && *n.Cached
}

// SortKey represents a column the results can be sorted by
type SortKey string

const (
	SortByDate      SortKey = "date"
	SortByCompany   SortKey = "company"
	SortBySummary   SortKey = "summary"
	SortBySentiment SortKey = "sentiment"
)

// SortKeys lists all sort keys in column order
var SortKeys = []SortKey{SortByDate, SortByCompany, SortBySummary, SortBySentiment}

// ParseSortKey converts a string into a SortKey, ok is false for unknown keys
func ParseSortKey(s string) (SortKey, bool) {
	for _, k := range SortKeys {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Direction represents sort direction
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortSpec defines the user-selected sort applied on top of normalized results
type SortSpec struct {
	Key       SortKey
	Direction Direction
}

// DefaultSortSpec is the sort in effect before the user picks a column
var DefaultSortSpec = SortSpec{Key: SortByDate, Direction: Descending}
