package query

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// WriteCSV renders the stream as CSV. An explicit projection always
// yields a header row, even with zero data rows; a full-row-shape
// query with zero rows yields an empty body.
func WriteCSV(w io.Writer, stream *RowStream) error {
	cw := csv.NewWriter(w)

	wroteHeader := false
	if stream.ExplicitProjection() {
		if err := cw.Write(stream.Columns()); err != nil {
			return err
		}
		wroteHeader = true
	}

	record := make([]string, len(stream.Columns()))
	for stream.Next() {
		if !wroteHeader {
			if err := cw.Write(stream.Columns()); err != nil {
				return err
			}
			wroteHeader = true
		}
		values, err := stream.Scan()
		if err != nil {
			return err
		}
		for i, v := range values {
			record[i] = renderCSVValue(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	if err := stream.Err(); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// WriteJSON renders the stream as {"data": [...]}, one object per row.
func WriteJSON(w io.Writer, stream *RowStream) error {
	columns := stream.Columns()
	data := make([]map[string]any, 0)

	for stream.Next() {
		values, err := stream.Scan()
		if err != nil {
			return err
		}
		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = renderJSONValue(values[i])
		}
		data = append(data, row)
	}
	if err := stream.Err(); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	return enc.Encode(map[string]any{"data": data})
}

func renderCSVValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	case string:
		return val
	case time.Time:
		return renderTime(val)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return ""
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case float32:
		return renderCSVValue(float64(val))
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// renderJSONValue substitutes null for values JSON cannot represent
// and renders timestamps as ISO-8601 strings.
func renderJSONValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return renderTime(val)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return nil
		}
		return val
	case float32:
		return renderJSONValue(float64(val))
	default:
		return v
	}
}

// renderTime emits a plain date for midnight values, which is how
// date-typed parquet columns surface through the driver.
func renderTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02T15:04:05")
}
