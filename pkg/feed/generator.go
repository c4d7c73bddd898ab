// Package feed exports fetched news as an RSS 2.0 feed.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/monitor"
	"github.com/umputun/newsdesk/pkg/present"
)

const titleSummaryLen = 80

// Generator creates RSS feeds from news items
type Generator struct {
	baseURL string
	now     func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator(baseURL string) *Generator {
	return &Generator{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// GenerateRSS creates an RSS 2.0 feed from items, order is kept
func (g *Generator) GenerateRSS(items []domain.NewsItem) (string, error) {
	companies := companyNames(items)
	title := "Company News"
	if len(companies) > 0 {
		title = fmt.Sprintf("Company News - %s", strings.Join(companies, ", "))
	}

	rssItems := make([]*RSSItem, 0, len(items))
	for _, item := range items {
		rssItems = append(rssItems, g.convertToRSSItem(item))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         title,
			Link:          g.baseURL + "/",
			Description:   fmt.Sprintf("Latest news for %d companies", len(companies)),
			AtomLink:      &AtomLink{Href: g.baseURL + "/rss", Rel: "self", Type: "application/rss+xml"},
			LastBuildDate: g.now().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}

	return xml.Header + string(output), nil
}

// convertToRSSItem converts a news item, the first source link becomes the item link
func (g *Generator) convertToRSSItem(item domain.NewsItem) *RSSItem {
	row := present.Rows([]domain.NewsItem{item}, time.RFC1123Z)[0]

	desc := row.Summary
	if row.Sentiment != "" {
		desc += "\n\nSentiment: " + row.Sentiment
	}
	link := ""
	for i, l := range row.Links {
		if i == 0 {
			link = l.URL
		}
		desc += fmt.Sprintf("\n%s: %s", l.Label, l.URL)
	}

	res := &RSSItem{
		Title:       fmt.Sprintf("%s: %s", item.Company, truncate(row.Summary, titleSummaryLen)),
		Link:        link,
		GUID:        GUID{Value: itemID(item)},
		Description: desc,
		Categories:  []string{item.Company, row.SentimentClass},
	}
	if t, ok := monitor.ParseDate(item.Date); ok {
		res.PubDate = t.Format(time.RFC1123Z)
	}
	return res
}

// itemID is stable for the same company, date and summary
func itemID(item domain.NewsItem) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(item.Company+"\x00"+item.Date+"\x00"+item.Summary)).String()
}

// companyNames returns distinct companies in order of appearance
func companyNames(items []domain.NewsItem) []string {
	seen := map[string]bool{}
	res := []string{}
	for _, it := range items {
		if it.Company == "" || seen[it.Company] {
			continue
		}
		seen[it.Company] = true
		res = append(res, it.Company)
	}
	return res
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n])) + "..."
}
