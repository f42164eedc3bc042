package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/channelstat/internal/survey"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresSource reads every row of one table. Values are stringified so
// the normalizer sees the same shape as a file.
type PostgresSource struct {
	DSN   string
	Table string
}

// NewPostgresSource returns a source for table, or DefaultTable when empty.
func NewPostgresSource(dsn, table string) *PostgresSource {
	if strings.TrimSpace(table) == "" {
		table = DefaultTable
	}
	return &PostgresSource{DSN: dsn, Table: table}
}

func (s *PostgresSource) Load(ctx context.Context) (*survey.Table, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", s.DSN)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryxContext(ctx, "SELECT * FROM "+quoteTable(s.Table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.Table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	t := &survey.Table{Name: s.Table, Columns: cols}
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.Table, err)
		}
		rec := make([]string, len(vals))
		for i, v := range vals {
			rec[i] = stringify(v)
		}
		t.Records = append(t.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.Table, err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%s: %w", s.Table, ErrEmpty)
	}
	return t, nil
}

// quoteTable quotes each dot-separated part, so schema.table works.
func quoteTable(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}
