package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/newsdesk/pkg/domain"
)

func TestParseDate(t *testing.T) {
	tbl := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2024-01-15", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{"2024-01-15T10:30:00Z", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"2024-01-15 10:30:00", time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"Mon, 02 Jan 2006 15:04:05 +0000", time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), true},
		{"  2024-03-01  ", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"not a date", time.Time{}, false},
	}

	for _, tt := range tbl {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %v", got)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("newest first", func(t *testing.T) {
		items := []domain.NewsItem{
			{Date: "2024-01-10", Company: "a"},
			{Date: "2024-01-15T08:00:00Z", Company: "b"},
			{Date: "2024-01-12", Company: "c"},
		}
		res := Normalize(items)
		assert.Equal(t, []string{"b", "c", "a"}, companiesOf(res))
		assert.Equal(t, "a", items[0].Company, "input not modified")
	})

	t.Run("stable for equal dates", func(t *testing.T) {
		items := []domain.NewsItem{
			{Date: "2024-01-10", Company: "a"},
			{Date: "2024-01-15", Company: "b"},
			{Date: "2024-01-10", Company: "c"},
			{Date: "2024-01-15", Company: "d"},
		}
		assert.Equal(t, []string{"b", "d", "a", "c"}, companiesOf(Normalize(items)))
	})

	t.Run("unparsable dates last in input order", func(t *testing.T) {
		items := []domain.NewsItem{
			{Date: "garbage", Company: "x"},
			{Date: "2024-01-10", Company: "a"},
			{Date: "", Company: "y"},
			{Date: "2024-01-15", Company: "b"},
		}
		assert.Equal(t, []string{"b", "a", "x", "y"}, companiesOf(Normalize(items)))
	})

	t.Run("idempotent", func(t *testing.T) {
		items := []domain.NewsItem{
			{Date: "2023-05-01", Company: "a"},
			{Date: "bad", Company: "b"},
			{Date: "2024-05-01", Company: "c"},
			{Date: "2023-05-01", Company: "d"},
		}
		once := Normalize(items)
		assert.Equal(t, once, Normalize(once))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Normalize(nil))
	})
}

func TestCompareDates(t *testing.T) {
	assert.Equal(t, -1, CompareDates("2024-01-01", "2024-01-02"))
	assert.Equal(t, 1, CompareDates("2024-01-02", "2024-01-01"))
	assert.Equal(t, 0, CompareDates("2024-01-01", "2024-01-01T00:00:00Z"))
	assert.Equal(t, 1, CompareDates("bad", "2024-01-01"))
	assert.Equal(t, -1, CompareDates("2024-01-01", "bad"))
	assert.Equal(t, 0, CompareDates("bad", "worse"))
}

func companiesOf(items []domain.NewsItem) []string {
	res := make([]string, len(items))
	for i, it := range items {
		res[i] = it.Company
	}
	return res
}
