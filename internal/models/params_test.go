package models

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseQuery(t *testing.T, rawQuery string) (*DatasetQueryParams, *DomainError) {
	t.Helper()
	r := httptest.NewRequest("GET", "/api/v1/data/landings?"+rawQuery, nil)
	return ParseDatasetQuery(r)
}

func TestParseDatasetQuery_Defaults(t *testing.T) {
	p, derr := parseQuery(t, "country=zanzibar")
	require.Nil(t, derr)

	assert.Equal(t, "zanzibar", p.Country)
	assert.Equal(t, StatusValidated, p.Status)
	assert.Equal(t, FormatCSV, p.Format)
	assert.Nil(t, p.DateFrom)
	assert.Nil(t, p.Limit)
}

func TestParseDatasetQuery_CountryRequired(t *testing.T) {
	_, derr := parseQuery(t, "status=raw")
	require.NotNil(t, derr)
	assert.Equal(t, KindBadRequest, derr.Kind)
}

func TestParseDatasetQuery_CountryLowercased(t *testing.T) {
	p, derr := parseQuery(t, "country=Zanzibar")
	require.Nil(t, derr)
	assert.Equal(t, "zanzibar", p.Country)
}

func TestParseDatasetQuery_CountryTooShort(t *testing.T) {
	_, derr := parseQuery(t, "country=z")
	require.NotNil(t, derr)
	assert.Equal(t, KindBadRequest, derr.Kind)
}

func TestParseDatasetQuery_InvalidStatus(t *testing.T) {
	_, derr := parseQuery(t, "country=zanzibar&status=draft")
	require.NotNil(t, derr)
	assert.Contains(t, derr.Message, "invalid status")
}

func TestParseDatasetQuery_DateOrder(t *testing.T) {
	_, derr := parseQuery(t, "country=zanzibar&date_from=2025-06-01&date_to=2025-01-01")
	require.NotNil(t, derr)
	assert.Equal(t, KindBadRequest, derr.Kind)
	assert.Equal(t, "date_to must be >= date_from", derr.Message)
}

func TestParseDatasetQuery_MalformedDate(t *testing.T) {
	_, derr := parseQuery(t, "country=zanzibar&date_from=01-06-2025")
	require.NotNil(t, derr)
	assert.Equal(t, KindBadRequest, derr.Kind)
}

func TestParseDatasetQuery_LimitBounds(t *testing.T) {
	_, derr := parseQuery(t, "country=zanzibar&limit=0")
	require.NotNil(t, derr)
	assert.Equal(t, KindBadRequest, derr.Kind)

	_, derr = parseQuery(t, "country=zanzibar&limit=-5")
	require.NotNil(t, derr)

	_, derr = parseQuery(t, "country=zanzibar&limit=1000001")
	require.NotNil(t, derr)

	p, derr := parseQuery(t, "country=zanzibar&limit=500")
	require.Nil(t, derr)
	require.NotNil(t, p.Limit)
	assert.Equal(t, 500, *p.Limit)
}

func TestParseDatasetQuery_InvalidFormat(t *testing.T) {
	_, derr := parseQuery(t, "country=zanzibar&format=xml")
	require.NotNil(t, derr)
	assert.Contains(t, derr.Message, "invalid format")
}

func TestParseDatasetQuery_Filters(t *testing.T) {
	p, derr := parseQuery(t, "country=zanzibar&gaul_1=TZA-1&catch_taxon=TUN&survey_id=abc123")
	require.Nil(t, derr)
	require.NotNil(t, p.Gaul1)
	assert.Equal(t, "TZA-1", *p.Gaul1)
	require.NotNil(t, p.CatchTaxon)
	assert.Equal(t, "TUN", *p.CatchTaxon)
	require.NotNil(t, p.SurveyID)
	assert.Equal(t, "abc123", *p.SurveyID)
	assert.Nil(t, p.Gaul2)
}

func TestFieldList(t *testing.T) {
	p := &DatasetQueryParams{Fields: "trip_id, catch_kg ,, landing_date"}
	assert.Equal(t, []string{"trip_id", "catch_kg", "landing_date"}, p.FieldList())

	p = &DatasetQueryParams{}
	assert.Nil(t, p.FieldList())
}

func TestQueryMap_OmitsAbsentParams(t *testing.T) {
	p, derr := parseQuery(t, "country=zanzibar&limit=10&scope=trip_info")
	assert.Nil(t, derr)

	m := p.QueryMap()
	assert.Equal(t, "zanzibar", m["country"])
	assert.Equal(t, 10, m["limit"])
	assert.Equal(t, "trip_info", m["scope"])
	_, hasDateFrom := m["date_from"]
	assert.False(t, hasDateFrom)
}

func TestValidIdentifier(t *testing.T) {
	assert.True(t, ValidIdentifier("landing_date"))
	assert.True(t, ValidIdentifier("gaul-1"))
	assert.True(t, ValidIdentifier("Catch123"))
	assert.False(t, ValidIdentifier(""))
	assert.False(t, ValidIdentifier("a b"))
	assert.False(t, ValidIdentifier(`x"; DROP TABLE t--`))
	assert.False(t, ValidIdentifier("col;"))
}
