package survey

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNormalizeColumn(t *testing.T) {
	cases := map[string]string{
		" D_Intent ":      "d_intent",
		"Digital Intent":  "digital_intent",
		"AGE":             "age",
		"o\tTrust":        "o_trust",
		"  many   spaces": "many_spaces",
		"d_intent":        "d_intent",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeColumn(in), "input %q", in)
	}
}

func TestNormalizeCoercesMetrics(t *testing.T) {
	tbl := &Table{
		Name:    "survey.csv",
		Columns: []string{" D_Intent ", "O Intent", "d_trust", "o_trust", "Age"},
		Records: [][]string{
			{"5", "1", "4", "2", "18-30"},
			{"abc", "", "3,5", "n/a", " 50+ "},
		},
	}
	ds, err := Normalize(tbl)
	require.NoError(t, err)
	require.Equal(t, []string{"d_intent", "o_intent", "d_trust", "o_trust", "age"}, ds.Columns)
	require.Len(t, ds.Rows, 2)

	assert.Equal(t, 5.0, ds.Rows[0].DigitalIntent)
	assert.Equal(t, "18-30", ds.Rows[0].Age)

	r := ds.Rows[1]
	assert.Equal(t, 0.0, r.DigitalIntent)
	assert.Equal(t, 0.0, r.OfflineIntent)
	assert.Equal(t, 3.5, r.DigitalTrust)
	assert.Equal(t, 0.0, r.OfflineTrust)
	assert.Equal(t, "50+", r.Age)
	assert.Equal(t, 3, ds.Coerced)
	assert.NotEmpty(t, ds.Notes)

	// input untouched
	assert.Equal(t, " D_Intent ", tbl.Columns[0])
	assert.Equal(t, "abc", tbl.Records[1][0])
}

func TestNormalizeAliases(t *testing.T) {
	tbl := &Table{
		Columns: []string{"Digital Intent", "Offline Intent", "Digital Trust", "Offline Trust"},
		Records: [][]string{{"4", "2", "3", "5"}},
	}
	ds, err := Normalize(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"d_intent", "o_intent", "d_trust", "o_trust"}, ds.Columns)
	assert.Equal(t, 4.0, ds.Rows[0].DigitalIntent)
	assert.Equal(t, 5.0, ds.Rows[0].OfflineTrust)
	assert.Contains(t, strings.Join(ds.Notes, "\n"), "no age column")
}

func TestNormalizeMissingColumn(t *testing.T) {
	tbl := &Table{
		Columns: []string{"d_intent", "d_trust", "age"},
		Records: [][]string{{"1", "2", "18-30"}},
	}
	_, err := Normalize(tbl)
	require.Error(t, err)
	var mce *MissingColumnError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, []string{"o_intent", "o_trust"}, mce.Columns)
	assert.Contains(t, err.Error(), "o_intent, o_trust")
}

func TestNormalizePadsShortRowsAndSkipsBlank(t *testing.T) {
	tbl := &Table{
		Columns: []string{"d_intent", "o_intent", "d_trust", "o_trust", "age"},
		Records: [][]string{
			{"1", "2"},
			{"", " ", "", "", ""},
		},
	}
	ds, err := Normalize(tbl)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "", ds.Rows[0].Age)
	assert.Equal(t, 2.0, ds.Rows[0].OfflineIntent)
	assert.Equal(t, 0.0, ds.Rows[0].OfflineTrust)
}

func TestNormalizeIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		metricHeaders := []string{
			decorate(rt, "d_intent", "d intent", "D_INTENT", "Digital Intent"),
			decorate(rt, "o_intent", "O Intent", "offline_intent"),
			decorate(rt, "d_trust", "D Trust", "DIGITAL TRUST"),
			decorate(rt, "o_trust", " o_trust ", "Offline  Trust"),
		}
		header := append([]string(nil), metricHeaders...)
		if rapid.Bool().Draw(rt, "with_age") {
			header = append(header, rapid.SampledFrom([]string{"age", " Age ", "AGE"}).Draw(rt, "age"))
		}
		extra := rapid.SliceOfN(rapid.StringMatching(`[A-Za-z ]{0,8}`), 0, 3).Draw(rt, "extra")
		header = append(header, extra...)

		cellGen := rapid.OneOf(
			rapid.StringMatching(`-?[0-9]{1,2}(\.[0-9]{1,3})?`),
			rapid.StringMatching(`[0-9],[0-9]`),
			rapid.StringMatching(`[a-z ]{0,5}`),
			rapid.SampledFrom([]string{"18-30", "31-50", "50+", ""}),
		)
		n := rapid.IntRange(0, 12).Draw(rt, "rows")
		records := make([][]string, n)
		for i := range records {
			records[i] = rapid.SliceOfN(cellGen, 0, len(header)).Draw(rt, "record")
		}

		first, err := Normalize(&Table{Columns: header, Records: records})
		if err != nil {
			rt.Fatalf("first pass: %v", err)
		}
		second, err := Normalize(first.Table())
		if err != nil {
			rt.Fatalf("second pass: %v", err)
		}
		if !assert.ObjectsAreEqual(first.Columns, second.Columns) {
			rt.Fatalf("columns changed: %v -> %v", first.Columns, second.Columns)
		}
		if !assert.ObjectsAreEqual(first.Rows, second.Rows) {
			rt.Fatalf("rows changed:\n%+v\n%+v", first.Rows, second.Rows)
		}
		if second.Coerced != 0 {
			rt.Fatalf("second pass coerced %d cells", second.Coerced)
		}
	})
}

func TestCoercionNeverFails(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cell := rapid.String().Draw(rt, "cell")
		v, ok := parseMetric(cell, Options{})
		if !ok && v != 0 {
			rt.Fatalf("failed parse must yield 0.0, got %v", v)
		}
	})
}

func decorate(rt *rapid.T, variants ...string) string {
	return rapid.SampledFrom(variants).Draw(rt, "header")
}
