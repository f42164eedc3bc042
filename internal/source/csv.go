package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/channelstat/internal/survey"
)

// CSVSource reads a delimited text file.
type CSVSource struct {
	Path      string
	Delimiter rune
}

func (s *CSVSource) Load(ctx context.Context) (*survey.Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	delim := s.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(s.Path)
	}
	return readDelimited(ctx, filepath.Base(s.Path), f, delim)
}

// ReaderSource reads CSV from an arbitrary stream, such as an upload body.
type ReaderSource struct {
	Name      string
	R         io.Reader
	Delimiter rune
}

func (s *ReaderSource) Load(ctx context.Context) (*survey.Table, error) {
	delim := s.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(s.Name)
	}
	return readDelimited(ctx, s.Name, s.R, delim)
}

func readDelimited(ctx context.Context, name string, in io.Reader, delim rune) (*survey.Table, error) {
	r := csv.NewReader(in)
	r.ReuseRecord = true
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true
	r.Comma = delim

	var rows [][]string
	for {
		if len(rows)%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		rows = append(rows, append([]string(nil), rec...))
	}
	return newTable(name, rows)
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
