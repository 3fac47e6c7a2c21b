package query

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	_ "github.com/marcboeker/go-duckdb/v2"

	"fishdata/internal/models"
	"fishdata/internal/providers"
	"fishdata/internal/structures"
)

// Filters is the conjunction of predicates applied to a snapshot
// query. Nil fields are omitted from the generated SQL.
type Filters struct {
	DateColumn string
	DateFrom   *models.Date
	DateTo     *models.Date
	Gaul1      *string
	Gaul2      *string
	CatchTaxon *string
	SurveyID   *string
}

type EngineInterface interface {
	Execute(ctx context.Context, parquetPath string, projection []string, filters Filters, limit int) (*RowStream, *models.DomainError)
	Close() error
}

// Engine runs filtered projections over local parquet snapshots
// through an embedded DuckDB connection. database/sql serializes
// concurrent submissions, so a single Engine is shared process-wide.
type Engine struct {
	db      *sql.DB
	conf    *structures.Config
	cache   providers.CacheProviderInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewEngine(conf *structures.Config, cache providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (*Engine, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &Engine{
		db:      db,
		conf:    conf,
		cache:   cache,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// NewEngineWithDB is used by tests to substitute a mocked database.
func NewEngineWithDB(db *sql.DB, conf *structures.Config, cache providers.CacheProviderInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *Engine {
	return &Engine{
		db:      db,
		conf:    conf,
		cache:   cache,
		logger:  logger,
		metrics: metrics,
	}
}

func (e *Engine) Close() error {
	return e.db.Close()
}

// escapePath makes a filesystem path safe for embedding in a single
// quoted SQL literal.
func escapePath(path string) string {
	return strings.ReplaceAll(path, "'", "''")
}

// schemaColumns returns the set of columns in the parquet file.
// Results are cached per local path, which is safe because snapshot
// files are immutable once written.
func (e *Engine) schemaColumns(ctx context.Context, parquetPath string) (map[string]bool, error) {
	cacheKey := "schema:" + parquetPath
	if raw, ok := e.cache.Get(cacheKey); ok {
		var names []string
		if err := json.Unmarshal(raw, &names); err == nil {
			cols := make(map[string]bool, len(names))
			for _, n := range names {
				cols[n] = true
			}
			return cols, nil
		}
	}

	rows, err := e.db.QueryContext(ctx, fmt.Sprintf("DESCRIBE SELECT * FROM read_parquet('%s')", escapePath(parquetPath)))
	if err != nil {
		return nil, fmt.Errorf("describe parquet schema: %w", err)
	}
	defer rows.Close()

	resultCols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var names []string
	cols := make(map[string]bool)
	for rows.Next() {
		dest := make([]any, len(resultCols))
		var name string
		dest[0] = &name
		for i := 1; i < len(dest); i++ {
			dest[i] = new(any)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		names = append(names, name)
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(names); err == nil {
		e.cache.Set(cacheKey, encoded)
	}
	return cols, nil
}

// resolveProjection validates the requested columns against the real
// schema. Unknown columns are dropped with a warning; if nothing
// survives, the projection falls back to all columns.
func (e *Engine) resolveProjection(ctx context.Context, parquetPath string, projection []string) ([]string, *models.DomainError) {
	if len(projection) == 0 {
		return nil, nil
	}

	for _, col := range projection {
		if !models.ValidIdentifier(col) {
			return nil, models.BadRequest(fmt.Sprintf("Invalid column name: '%s'", col))
		}
	}

	available, err := e.schemaColumns(ctx, parquetPath)
	if err != nil {
		return nil, models.QueryFailed("failed to read snapshot schema", err)
	}

	valid := make([]string, 0, len(projection))
	for _, col := range projection {
		if available[col] {
			valid = append(valid, col)
			continue
		}
		e.logger.Warnf(providers.TypeApp, "Dropping unknown column from projection: %s", col)
	}

	if len(valid) == 0 {
		e.logger.Warnf(providers.TypeApp, "Projection reduced to empty, falling back to all columns")
		return nil, nil
	}
	return valid, nil
}

// buildQuery assembles the SQL text and its bound arguments. Filter
// values travel exclusively as placeholders; only allow-list validated
// identifiers reach the query text.
func buildQuery(parquetPath string, projection []string, filters Filters, limit int) (string, []any, *models.DomainError) {
	colExpr := "*"
	if len(projection) > 0 {
		quoted := make([]string, len(projection))
		for i, col := range projection {
			quoted[i] = `"` + col + `"`
		}
		colExpr = strings.Join(quoted, ", ")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM read_parquet('%s')", colExpr, escapePath(parquetPath))

	var conditions []string
	var args []any

	if filters.DateFrom != nil || filters.DateTo != nil {
		if !models.ValidIdentifier(filters.DateColumn) {
			return "", nil, models.BadRequest(fmt.Sprintf("Invalid column name: '%s'", filters.DateColumn))
		}
		if filters.DateFrom != nil {
			conditions = append(conditions, fmt.Sprintf(`"%s" >= ?`, filters.DateColumn))
			args = append(args, filters.DateFrom.String())
		}
		if filters.DateTo != nil {
			conditions = append(conditions, fmt.Sprintf(`"%s" <= ?`, filters.DateColumn))
			args = append(args, filters.DateTo.String())
		}
	}

	if filters.Gaul1 != nil {
		conditions = append(conditions, `"gaul_1_code" = ?`)
		args = append(args, *filters.Gaul1)
	}
	if filters.Gaul2 != nil {
		conditions = append(conditions, `"gaul_2_code" = ?`)
		args = append(args, *filters.Gaul2)
	}
	if filters.CatchTaxon != nil {
		conditions = append(conditions, `"catch_taxon" = ?`)
		args = append(args, *filters.CatchTaxon)
	}
	if filters.SurveyID != nil {
		conditions = append(conditions, `"survey_id" = ?`)
		args = append(args, *filters.SurveyID)
	}

	if len(conditions) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}

	fmt.Fprintf(&sb, " LIMIT %d", limit)
	return sb.String(), args, nil
}

// effectiveLimit clamps the requested limit to the configured ceiling.
func (e *Engine) effectiveLimit(requested int) int {
	if requested <= 0 {
		requested = e.conf.Query.DefaultLimit
	}
	if requested > e.conf.Query.MaxLimit {
		return e.conf.Query.MaxLimit
	}
	return requested
}

func (e *Engine) Execute(ctx context.Context, parquetPath string, projection []string, filters Filters, limit int) (*RowStream, *models.DomainError) {
	valid, derr := e.resolveProjection(ctx, parquetPath, projection)
	if derr != nil {
		return nil, derr
	}

	queryText, args, derr := buildQuery(parquetPath, valid, filters, e.effectiveLimit(limit))
	if derr != nil {
		return nil, derr
	}

	start := time.Now()
	rows, err := e.db.QueryContext(ctx, queryText, args...)
	e.metrics.ObserveQueryDuration(time.Since(start))
	if err != nil {
		e.logger.Errorf(providers.TypeApp, "Query failed: %s: %v", queryText, err)
		return nil, models.QueryFailed("query execution failed", err)
	}

	stream, err := NewRowStream(rows, len(valid) > 0)
	if err != nil {
		rows.Close()
		return nil, models.QueryFailed("failed to read result columns", err)
	}
	return stream, nil
}
