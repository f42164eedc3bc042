package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/channelstat/internal/survey"
	"github.com/xuri/excelize/v2"
)

// XLSXSource reads one worksheet of a workbook. With no name and an index
// <= 0 the first sheet is used. SheetIndex is 1-based.
type XLSXSource struct {
	Path       string
	SheetName  string
	SheetIndex int
}

func (s *XLSXSource) Load(ctx context.Context) (*survey.Table, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet, err := s.pick(f.GetSheetList())
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return newTable(filepath.Base(s.Path), rows)
}

func (s *XLSXSource) pick(sheets []string) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook '%s' has no sheets", filepath.Base(s.Path))
	}
	if s.SheetName != "" {
		for _, name := range sheets {
			if strings.EqualFold(name, s.SheetName) {
				return name, nil
			}
		}
		return "", fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
			s.SheetName, filepath.Base(s.Path), strings.Join(sheets, ", "))
	}
	idx := s.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(sheets))
	}
	return sheets[idx-1], nil
}
