package models

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// DatasetStatus is the processing state of a snapshot.
type DatasetStatus string

const (
	StatusRaw       DatasetStatus = "raw"
	StatusValidated DatasetStatus = "validated"
)

// ResponseFormat selects the serialization of query results.
type ResponseFormat string

const (
	FormatCSV  ResponseFormat = "csv"
	FormatJSON ResponseFormat = "json"
)

const (
	minCountryLen = 2
	maxCountryLen = 50

	// MaxLimit is the absolute row ceiling no key may exceed.
	MaxLimit = 1_000_000
)

var identPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidIdentifier reports whether s is safe to splice into generated
// SQL as a raw identifier. Everything else must travel as a bound
// parameter.
func ValidIdentifier(s string) bool { return identPattern.MatchString(s) }

// DatasetQueryParams is the parsed and validated query shape of one
// dataset request.
type DatasetQueryParams struct {
	Country    string
	Status     DatasetStatus
	DateFrom   *Date
	DateTo     *Date
	Gaul1      *string
	Gaul2      *string
	CatchTaxon *string
	SurveyID   *string
	Fields     string
	Scope      string
	Limit      *int
	Format     ResponseFormat
}

// ParseDatasetQuery validates raw query parameters. Any failure maps
// to a bad-request DomainError before permissions are even consulted.
func ParseDatasetQuery(r *http.Request) (*DatasetQueryParams, *DomainError) {
	q := r.URL.Query()

	p := &DatasetQueryParams{
		Status: StatusValidated,
		Format: FormatCSV,
	}

	country := strings.ToLower(strings.TrimSpace(q.Get("country")))
	if len(country) < minCountryLen || len(country) > maxCountryLen {
		return nil, BadRequest(fmt.Sprintf("country is required and must be %d-%d characters", minCountryLen, maxCountryLen))
	}
	p.Country = country

	if s := q.Get("status"); s != "" {
		switch DatasetStatus(strings.ToLower(s)) {
		case StatusRaw:
			p.Status = StatusRaw
		case StatusValidated:
			p.Status = StatusValidated
		default:
			return nil, BadRequest(fmt.Sprintf("invalid status %q, must be 'raw' or 'validated'", s))
		}
	}

	var err error
	if p.DateFrom, err = parseDateParam(q.Get("date_from")); err != nil {
		return nil, BadRequest(err.Error())
	}
	if p.DateTo, err = parseDateParam(q.Get("date_to")); err != nil {
		return nil, BadRequest(err.Error())
	}
	if p.DateFrom != nil && p.DateTo != nil && p.DateTo.Before(p.DateFrom.Time) {
		return nil, BadRequest("date_to must be >= date_from")
	}

	p.Gaul1 = optional(q.Get("gaul_1"))
	p.Gaul2 = optional(q.Get("gaul_2"))
	p.CatchTaxon = optional(q.Get("catch_taxon"))
	p.SurveyID = optional(q.Get("survey_id"))
	p.Fields = strings.TrimSpace(q.Get("fields"))
	p.Scope = strings.TrimSpace(q.Get("scope"))

	if raw := q.Get("limit"); raw != "" {
		n, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return nil, BadRequest(fmt.Sprintf("invalid limit %q", raw))
		}
		if n < 1 || n > MaxLimit {
			return nil, BadRequest(fmt.Sprintf("limit must be between 1 and %d", MaxLimit))
		}
		p.Limit = &n
	}

	if f := q.Get("format"); f != "" {
		switch ResponseFormat(strings.ToLower(f)) {
		case FormatCSV:
			p.Format = FormatCSV
		case FormatJSON:
			p.Format = FormatJSON
		default:
			return nil, BadRequest(fmt.Sprintf("invalid format %q, must be 'csv' or 'json'", f))
		}
	}

	return p, nil
}

func parseDateParam(raw string) (*Date, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// FieldList returns the explicit column projection, nil when the
// request carried no fields parameter. Explicit fields take precedence
// over a named scope.
func (p *DatasetQueryParams) FieldList() []string {
	if p.Fields == "" {
		return nil
	}
	parts := strings.Split(p.Fields, ",")
	out := make([]string, 0, len(parts))
	for _, f := range parts {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// QueryMap renders the parameter set for audit events.
func (p *DatasetQueryParams) QueryMap() map[string]any {
	m := map[string]any{
		"country": p.Country,
		"status":  string(p.Status),
		"format":  string(p.Format),
	}
	if p.DateFrom != nil {
		m["date_from"] = p.DateFrom.String()
	}
	if p.DateTo != nil {
		m["date_to"] = p.DateTo.String()
	}
	if p.Gaul1 != nil {
		m["gaul_1"] = *p.Gaul1
	}
	if p.Gaul2 != nil {
		m["gaul_2"] = *p.Gaul2
	}
	if p.CatchTaxon != nil {
		m["catch_taxon"] = *p.CatchTaxon
	}
	if p.SurveyID != nil {
		m["survey_id"] = *p.SurveyID
	}
	if p.Fields != "" {
		m["fields"] = p.Fields
	}
	if p.Scope != "" {
		m["scope"] = p.Scope
	}
	if p.Limit != nil {
		m["limit"] = *p.Limit
	}
	return m
}
