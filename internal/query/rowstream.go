package query

import "database/sql"

// RowStream wraps a live result set so serializers can iterate rows
// without touching database/sql directly. Callers must Close it.
type RowStream struct {
	rows     *sql.Rows
	columns  []string
	explicit bool
}

func NewRowStream(rows *sql.Rows, explicitProjection bool) (*RowStream, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	return &RowStream{
		rows:     rows,
		columns:  columns,
		explicit: explicitProjection,
	}, nil
}

func (s *RowStream) Columns() []string {
	return s.columns
}

// ExplicitProjection reports whether the caller named columns, as
// opposed to selecting the full row shape.
func (s *RowStream) ExplicitProjection() bool {
	return s.explicit
}

func (s *RowStream) Next() bool {
	return s.rows.Next()
}

// Scan reads the current row into a generic value slice, one entry per
// column.
func (s *RowStream) Scan() ([]any, error) {
	values := make([]any, len(s.columns))
	dest := make([]any, len(s.columns))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := s.rows.Scan(dest...); err != nil {
		return nil, err
	}
	return values, nil
}

func (s *RowStream) Err() error {
	return s.rows.Err()
}

func (s *RowStream) Close() error {
	return s.rows.Close()
}
