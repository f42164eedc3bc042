package survey

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Canonical column keys after normalization.
const (
	ColDigitalIntent = "d_intent"
	ColOfflineIntent = "o_intent"
	ColDigitalTrust  = "d_trust"
	ColOfflineTrust  = "o_trust"
	ColAge           = "age"
)

// MetricColumns lists the numeric columns every dataset must carry.
var MetricColumns = []string{ColDigitalIntent, ColOfflineIntent, ColDigitalTrust, ColOfflineTrust}

// Table is a raw tabular source: a header plus string records.
type Table struct {
	Name    string
	Columns []string
	Records [][]string
}

// Row is one respondent. Metric columns are held as coerced floats,
// every other normalized column as its raw text in Fields.
type Row struct {
	DigitalIntent float64
	OfflineIntent float64
	DigitalTrust  float64
	OfflineTrust  float64
	// Age is the trimmed age group; empty means missing.
	Age    string
	Fields map[string]string
}

// Metric returns the value of a metric column and whether col is one.
func (r Row) Metric(col string) (float64, bool) {
	switch col {
	case ColDigitalIntent:
		return r.DigitalIntent, true
	case ColOfflineIntent:
		return r.OfflineIntent, true
	case ColDigitalTrust:
		return r.DigitalTrust, true
	case ColOfflineTrust:
		return r.OfflineTrust, true
	}
	return 0, false
}

// Get returns the textual value of any normalized column.
func (r Row) Get(col string) string {
	if v, ok := r.Metric(col); ok {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return r.Fields[col]
}

// Dataset is the normalized form of a Table. All rows share Columns.
type Dataset struct {
	Name    string
	Columns []string
	Rows    []Row
	// Coerced counts metric cells that were missing or non-numeric and became 0.0.
	Coerced int
	Notes   []string
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Rows) }

// HasColumn reports whether col survived normalization.
func (d *Dataset) HasColumn(col string) bool {
	for _, c := range d.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Metric returns the column of a metric as a fresh slice.
func (d *Dataset) Metric(col string) ([]float64, error) {
	out := make([]float64, 0, len(d.Rows))
	for _, r := range d.Rows {
		v, ok := r.Metric(col)
		if !ok {
			return nil, fmt.Errorf("not a metric column: %s", col)
		}
		out = append(out, v)
	}
	return out, nil
}

// AgeGroups returns the sorted distinct non-empty age values.
func (d *Dataset) AgeGroups() []string {
	seen := map[string]struct{}{}
	for _, r := range d.Rows {
		if r.Age == "" {
			continue
		}
		seen[r.Age] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Table converts the dataset back to raw form. Normalizing the result yields
// the same columns and rows.
func (d *Dataset) Table() *Table {
	t := &Table{Name: d.Name, Columns: append([]string(nil), d.Columns...)}
	t.Records = make([][]string, 0, len(d.Rows))
	for _, r := range d.Rows {
		rec := make([]string, len(d.Columns))
		for i, c := range d.Columns {
			rec[i] = r.Get(c)
		}
		t.Records = append(t.Records, rec)
	}
	return t
}

// MissingColumnError reports required columns absent after normalization.
type MissingColumnError struct {
	Columns   []string
	Available []string
}

func (e *MissingColumnError) Error() string {
	msg := fmt.Sprintf("missing required column(s): %s", strings.Join(e.Columns, ", "))
	if len(e.Available) > 0 {
		msg += fmt.Sprintf(" (found: %s)", strings.Join(e.Available, ", "))
	}
	return msg
}
