package survey

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Long-form headers accepted in place of the canonical metric keys.
var columnAliases = map[string]string{
	"digital_intent": ColDigitalIntent,
	"offline_intent": ColOfflineIntent,
	"digital_trust":  ColDigitalTrust,
	"offline_trust":  ColOfflineTrust,
}

// Options controls metric parsing.
type Options struct {
	// DecimalSeparator for metric cells. If 0, auto-detect per value.
	DecimalSeparator rune
}

// NormalizeColumn trims, lower-cases and joins internal whitespace runs with '_'.
func NormalizeColumn(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// Normalize returns a new Dataset built from t using default options.
func Normalize(t *Table) (*Dataset, error) {
	return NormalizeWithOptions(t, Options{})
}

// NormalizeWithOptions maps headers to canonical keys, coerces the metric
// columns to float64 and fails with *MissingColumnError when a metric is absent.
// t is never modified.
func NormalizeWithOptions(t *Table, opt Options) (*Dataset, error) {
	if t == nil {
		return nil, &MissingColumnError{Columns: append([]string(nil), MetricColumns...)}
	}
	ds := &Dataset{Name: t.Name}

	// header -> source index; first occurrence wins
	index := make(map[string]int, len(t.Columns))
	for i, raw := range t.Columns {
		name := NormalizeColumn(strings.TrimPrefix(raw, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("col_%d", i+1)
		}
		if _, dup := index[name]; dup {
			ds.Notes = append(ds.Notes, fmt.Sprintf("duplicate column %q ignored (position %d)", name, i+1))
			continue
		}
		index[name] = i
		ds.Columns = append(ds.Columns, name)
	}
	for alias, canon := range columnAliases {
		pos, ok := index[alias]
		if !ok {
			continue
		}
		if _, taken := index[canon]; taken {
			continue
		}
		delete(index, alias)
		index[canon] = pos
		for i, c := range ds.Columns {
			if c == alias {
				ds.Columns[i] = canon
			}
		}
	}

	var missing []string
	for _, c := range MetricColumns {
		if _, ok := index[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Columns: missing, Available: append([]string(nil), ds.Columns...)}
	}
	if _, ok := index[ColAge]; !ok {
		ds.Notes = append(ds.Notes, "no age column: age-dependent tests cannot run")
	}

	blank := 0
	for _, rec := range t.Records {
		if isBlank(rec) {
			blank++
			continue
		}
		cell := func(col string) string {
			i := index[col]
			if i < len(rec) {
				return rec[i]
			}
			return ""
		}
		row := Row{Fields: map[string]string{}}
		for _, c := range ds.Columns {
			if isMetric(c) {
				continue
			}
			row.Fields[c] = cell(c)
		}
		coerce := func(col string) float64 {
			v, ok := parseMetric(cell(col), opt)
			if !ok {
				ds.Coerced++
			}
			return v
		}
		row.DigitalIntent = coerce(ColDigitalIntent)
		row.OfflineIntent = coerce(ColOfflineIntent)
		row.DigitalTrust = coerce(ColDigitalTrust)
		row.OfflineTrust = coerce(ColOfflineTrust)
		row.Age = strings.TrimSpace(row.Fields[ColAge])
		ds.Rows = append(ds.Rows, row)
	}
	if blank > 0 {
		ds.Notes = append(ds.Notes, fmt.Sprintf("skipped %d blank row(s)", blank))
	}
	if ds.Coerced > 0 {
		ds.Notes = append(ds.Notes, fmt.Sprintf("%d metric cell(s) missing or non-numeric, coerced to 0.0", ds.Coerced))
	}
	return ds, nil
}

func isMetric(col string) bool {
	for _, c := range MetricColumns {
		if c == col {
			return true
		}
	}
	return false
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// parseMetric parses a survey score. Failure (including non-finite values)
// yields 0.0 and ok=false.
func parseMetric(s string, opt Options) (float64, bool) {
	raw := strings.ReplaceAll(s, "\u00a0", " ")
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "%", ""))
	if raw == "" {
		return 0, false
	}
	dec := opt.DecimalSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		switch {
		case cpos >= 0 && dpos >= 0 && cpos > dpos:
			dec = ','
		case cpos >= 0 && dpos < 0:
			dec = ','
		default:
			dec = '.'
		}
	}
	// drop thousands separators
	for _, sep := range []rune{',', '.', ' '} {
		if sep != dec {
			raw = strings.ReplaceAll(raw, string(sep), "")
		}
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
