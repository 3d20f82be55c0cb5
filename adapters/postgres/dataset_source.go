package postgres

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"txdash/domain/dataset"
	"txdash/internal"
	"txdash/internal/errors"
	"txdash/ports"
)

// undefinedTable is the SQLSTATE for a missing relation
const undefinedTable = "42P01"

// datasetSource reads each dataset from the table of the same name
type datasetSource struct {
	db     *sqlx.DB
	schema string
	logger *internal.Logger
}

// NewDatasetSource creates a read-only source over db. Tables are looked up
// in schema, or on the search path when schema is empty.
func NewDatasetSource(db *sqlx.DB, schema string) ports.DatasetSource {
	return &datasetSource{db: db, schema: schema, logger: internal.DefaultLogger}
}

// Describe names the source for logs
func (s *datasetSource) Describe() string {
	if s.schema == "" {
		return "postgres"
	}
	return "postgres:" + s.schema
}

// Read selects every row of the dataset's table, in physical order
func (s *datasetSource) Read(ctx context.Context, spec dataset.Spec) (*dataset.Table, error) {
	start := time.Now()
	query := "SELECT * FROM " + TableName(s.schema, spec.Name)

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == undefinedTable {
			return nil, errors.DatasetMissing(string(spec.Name), err)
		}
		return nil, errors.DatabaseError(fmt.Sprintf("failed to query dataset %s", spec.Name), err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.DatabaseError(fmt.Sprintf("failed to read columns of %s", spec.Name), err)
	}
	headers, err := mapColumns(spec, columns)
	if err != nil {
		return nil, err
	}

	table := &dataset.Table{Name: spec.Name, Columns: headers}
	if spec.IndexFirst && len(headers) > 0 {
		table.Index = headers[0]
	}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, errors.DatabaseError(fmt.Sprintf("failed to scan row of %s", spec.Name), err)
		}
		row := make([]dataset.Value, len(values))
		for i, v := range values {
			row[i] = dataset.ParseValue(FormatSQLValue(v))
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError(fmt.Sprintf("failed to iterate %s", spec.Name), err)
	}

	s.logger.Debug("[PostgresSource] %s read in %.2fms (%d rows)",
		spec.Name, float64(time.Since(start).Nanoseconds())/1e6, table.Len())
	return table, nil
}

// TableName quotes the table holding name
func TableName(schema string, name dataset.Name) string {
	if schema == "" {
		return pq.QuoteIdentifier(string(name))
	}
	return pq.QuoteIdentifier(schema) + "." + pq.QuoteIdentifier(string(name))
}

// mapColumns applies positional names to header-less datasets, whose tables
// may carry arbitrary column names upstream
func mapColumns(spec dataset.Spec, columns []string) ([]string, error) {
	if !spec.Headerless {
		return columns, nil
	}
	if len(columns) != len(spec.Columns) {
		return nil, errors.DatasetMalformed(string(spec.Name),
			fmt.Errorf("expected %d columns, table has %d", len(spec.Columns), len(columns)))
	}
	return append([]string(nil), spec.Columns...), nil
}

// FormatSQLValue converts a scanned driver value to cell text
func FormatSQLValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}
