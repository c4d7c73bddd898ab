// Package report prints a fetch outcome as a plain table for one-shot CLI runs.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/present"
)

var headers = []string{"Date", "Company", "Summary", "Sentiment", "Sources"}

// Printer writes outcomes to out
type Printer struct {
	out        io.Writer
	dateFormat string
	noColor    bool
}

// New makes a printer, dateFormat is a Go time layout
func New(out io.Writer, dateFormat string, noColor bool) *Printer {
	return &Printer{out: out, dateFormat: dateFormat, noColor: noColor}
}

// Print renders outcome with items ordered by spec. Idle and loading outcomes print nothing.
func (p *Printer) Print(outcome domain.Outcome, spec domain.SortSpec) error {
	switch o := outcome.(type) {
	case domain.Failed:
		p.colored(color.FgRed, color.Bold).Fprintf(p.out, "Error: %s\n", o.Message)
		return nil
	case domain.Succeeded:
		if len(o.Items) == 0 {
			notice := o.Notice
			if notice == "" {
				notice = "no news"
			}
			p.colored(color.FgHiBlack).Fprintln(p.out, notice)
			return nil
		}
		return p.table(o.Items, spec)
	}
	return nil
}

func (p *Printer) table(items []domain.NewsItem, spec domain.SortSpec) error {
	table := tablewriter.NewTable(p.out,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)

	rows := present.Rows(present.SortBy(items, spec), p.dateFormat)
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		company := r.Company
		if r.Cached {
			company += " (cached)"
		}
		urls := make([]string, 0, len(r.Links))
		for _, l := range r.Links {
			urls = append(urls, l.URL)
		}
		data = append(data, []string{r.Date, company, r.Summary, p.sentiment(r), strings.Join(urls, " ")})
	}

	table.Header(headers)
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("add rows: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	fmt.Fprintf(p.out, "\n%d items, sorted by %s %s\n", len(rows), spec.Key, spec.Direction)
	return nil
}

func (p *Printer) sentiment(r present.Row) string {
	switch r.SentimentClass {
	case present.SentimentPositive:
		return p.colored(color.FgGreen).Sprint(r.Sentiment)
	case present.SentimentNegative:
		return p.colored(color.FgRed).Sprint(r.Sentiment)
	default:
		return r.Sentiment
	}
}

func (p *Printer) colored(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.noColor {
		c.DisableColor()
	}
	return c
}
