package present

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/monitor"
)

// DefaultDateFormat used for the date column
const DefaultDateFormat = "Jan 2, 2006"

// sentiment classes
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

var stripPolicy = bluemonday.StrictPolicy()

// Row is a news item prepared for display
type Row struct {
	Date           string // formatted date, raw value if unparsable
	Company        string
	Summary        string // plain text, markup removed
	Sentiment      string
	SentimentClass string // positive, negative or neutral
	Links          []Link
	Cached         bool
}

// Link is a source link of a row
type Link struct {
	Label string
	URL   string
}

// Rows converts items to display rows, order is kept
func Rows(items []domain.NewsItem, dateFormat string) []Row {
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}
	res := make([]Row, 0, len(items))
	for _, it := range items {
		res = append(res, Row{
			Date:           FormatDate(it.Date, dateFormat),
			Company:        it.Company,
			Summary:        PlainText(it.Summary),
			Sentiment:      it.Sentiment,
			SentimentClass: SentimentClass(it.Sentiment),
			Links:          links(it.Links),
			Cached:         it.IsCached(),
		})
	}
	return res
}

// FormatDate formats a date string with layout, unparsable values are returned as is
func FormatDate(s, layout string) string {
	t, ok := monitor.ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(layout)
}

// PlainText removes html markup from s
func PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}

// SentimentClass maps a sentiment label to its display class
func SentimentClass(sentiment string) string {
	switch strings.ToLower(strings.TrimSpace(sentiment)) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// links keeps http(s) links, a source is numbered by its position in the item's links
func links(urls []string) []Link {
	res := make([]Link, 0, len(urls))
	for i, u := range urls {
		parsed, err := url.Parse(strings.TrimSpace(u))
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			continue
		}
		res = append(res, Link{Label: fmt.Sprintf("Source %d", i+1), URL: parsed.String()})
	}
	return res
}
