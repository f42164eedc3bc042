// Package source loads raw survey tables from files, request bodies or a
// Postgres table.
package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/channelstat/internal/survey"
)

// ErrEmpty is returned when a source has no header row.
var ErrEmpty = errors.New("source has no header row")

// Source produces a raw table.
type Source interface {
	Load(ctx context.Context) (*survey.Table, error)
}

// Options tune how Open picks and configures a Source.
type Options struct {
	// Delimiter for CSV. If 0, chosen from the file extension.
	Delimiter rune
	// SheetName selects an XLSX sheet; SheetIndex is 1-based and used when the name is empty.
	SheetName  string
	SheetIndex int
	// Table is the Postgres table read for DSN inputs.
	Table string
}

// DefaultTable is the Postgres table read when none is configured.
const DefaultTable = "responses"

// IsDSN reports whether target looks like a Postgres connection string.
func IsDSN(target string) bool {
	t := strings.ToLower(target)
	return strings.HasPrefix(t, "postgres://") || strings.HasPrefix(t, "postgresql://")
}

// Open selects a Source for target by scheme or file extension.
func Open(target string, opt Options) (Source, error) {
	if strings.TrimSpace(target) == "" {
		return nil, errors.New("no input given")
	}
	if IsDSN(target) {
		return NewPostgresSource(target, opt.Table), nil
	}
	switch strings.ToLower(filepath.Ext(target)) {
	case ".csv", ".tsv", ".txt":
		return &CSVSource{Path: target, Delimiter: opt.Delimiter}, nil
	case ".xlsx":
		return &XLSXSource{Path: target, SheetName: opt.SheetName, SheetIndex: opt.SheetIndex}, nil
	}
	return nil, fmt.Errorf("unsupported input: %s (use .csv, .tsv, .xlsx or a postgres:// DSN)", filepath.Base(target))
}

// newTable splits the header row off raw rows.
func newTable(name string, rows [][]string) (*survey.Table, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmpty)
	}
	return &survey.Table{Name: name, Columns: rows[0], Records: rows[1:]}, nil
}
