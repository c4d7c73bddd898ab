package server

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/umputun/newsdesk/pkg/companies"
	"github.com/umputun/newsdesk/pkg/domain"
	"github.com/umputun/newsdesk/pkg/present"
)

const (
	// template names
	templateIndex     = "index.html"
	templateCompanies = "companies.html"
	templateOutcome   = "outcome.html"
)

var columnTitles = map[domain.SortKey]string{
	domain.SortByDate:      "Date",
	domain.SortByCompany:   "Company",
	domain.SortBySummary:   "Summary",
	domain.SortBySentiment: "Sentiment",
}

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// pageData is used to render the full page
type pageData struct {
	Version   string
	Companies companiesView
	Outcome   outcomeView
}

// companiesView is the company form with its fetch buttons
type companiesView struct {
	Rows     []string
	CanFetch bool
	Single   bool // remove is disabled for the only row
}

// outcomeView is the outcome area, one of idle, loading, failed or succeeded
type outcomeView struct {
	State   domain.State
	Message string
	Notice  string
	Columns []columnView
	Rows    []present.Row
}

// columnView is a sortable column header
type columnView struct {
	Key    domain.SortKey
	Title  string
	Active bool
	Arrow  string
}

// indexHandler renders the full page
func (s *Server) indexHandler(w http.ResponseWriter, _ *http.Request) {
	data := pageData{
		Version:   s.version,
		Companies: s.companiesView(),
		Outcome:   s.outcomeView(s.monitor.Outcome()),
	}
	s.render(w, templateIndex, data)
}

// addCompanyHandler appends a blank company row
func (s *Server) addCompanyHandler(w http.ResponseWriter, _ *http.Request) {
	s.companies.Add()
	s.render(w, templateCompanies, s.companiesView())
}

// updateCompanyHandler stores the value typed into a company row.
// A full form post carries all rows, the row at idx is taken from it.
func (s *Server) updateCompanyHandler(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(r.PathValue("idx"))
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid row index"), http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		renderError(w, r, fmt.Errorf("invalid form: %w", err), http.StatusBadRequest)
		return
	}
	// the input sits in the companies form, htmx posts every row with it
	value := r.FormValue("company")
	if rows := r.PostForm["company"]; len(rows) == s.companies.Len() && idx >= 0 && idx < len(rows) {
		value = rows[idx]
	}
	if err := s.companies.Update(idx, value); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	s.render(w, templateCompanies, s.companiesView())
}

// deleteCompanyHandler removes a company row, the last row can't be removed
func (s *Server) deleteCompanyHandler(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(r.PathValue("idx"))
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid row index"), http.StatusBadRequest)
		return
	}
	if err := s.companies.Remove(idx); err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, companies.ErrLastRow) {
			code = http.StatusConflict
		}
		renderError(w, r, err, code)
		return
	}
	s.render(w, templateCompanies, s.companiesView())
}

// fetchHandler fetches news for the current rows and renders the outcome area.
// Rows posted with the form replace the stored ones, so a click right after typing sees the latest text.
func (s *Server) fetchHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, r, fmt.Errorf("invalid form: %w", err), http.StatusBadRequest)
		return
	}
	if rows, ok := r.PostForm["company"]; ok && len(rows) == s.companies.Len() {
		for i, v := range rows {
			if err := s.companies.Update(i, v); err != nil {
				log.Printf("[WARN] can't sync company row %d: %v", i, err)
			}
		}
	}

	force := strings.EqualFold(r.FormValue("force"), "true")
	outcome := s.monitor.FetchNews(r.Context(), s.companies.Snapshot(), force)
	s.render(w, templateOutcome, s.outcomeView(outcome))
}

// resultsHandler changes the sort and re-renders results without fetching
func (s *Server) resultsHandler(w http.ResponseWriter, r *http.Request) {
	if sortParam := r.URL.Query().Get("sort"); sortParam != "" {
		key, ok := domain.ParseSortKey(sortParam)
		if !ok {
			renderError(w, r, fmt.Errorf("unknown sort key %q", sortParam), http.StatusBadRequest)
			return
		}
		s.presenter.Click(key)
	}
	s.render(w, templateOutcome, s.outcomeView(s.monitor.Outcome()))
}

// resetHandler drops the current outcome
func (s *Server) resetHandler(w http.ResponseWriter, _ *http.Request) {
	s.monitor.Reset()
	s.render(w, templateOutcome, s.outcomeView(s.monitor.Outcome()))
}

func (s *Server) companiesView() companiesView {
	rows := s.companies.Snapshot()
	return companiesView{Rows: rows, CanFetch: s.companies.HasCompanies(), Single: len(rows) == 1}
}

// outcomeView prepares an outcome for the template, results are sorted by the presenter
func (s *Server) outcomeView(o domain.Outcome) outcomeView {
	res := outcomeView{State: domain.StateOf(o)}
	switch v := o.(type) {
	case domain.Failed:
		res.Message = v.Message
	case domain.Succeeded:
		res.Notice = v.Notice
		res.Rows = present.Rows(s.presenter.Sorted(v.Items), s.config.GetDateFormat())
		res.Columns = s.columns()
	}
	return res
}

func (s *Server) columns() []columnView {
	spec := s.presenter.Spec()
	res := make([]columnView, 0, len(domain.SortKeys))
	for _, key := range domain.SortKeys {
		col := columnView{Key: key, Title: columnTitles[key]}
		if key == spec.Key {
			col.Active = true
			col.Arrow = "▲"
			if spec.Direction == domain.Descending {
				col.Arrow = "▼"
			}
		}
		res = append(res, col)
	}
	return res
}

// render executes a named template as an html response
func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("[ERROR] failed to render %s: %v", name, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}
