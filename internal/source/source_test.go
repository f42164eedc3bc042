package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/channelstat/internal/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestCSVSourceTemplate(t *testing.T) {
	p := writeFile(t, "survey.csv", survey.TemplateCSV)
	tbl, err := (&CSVSource{Path: p}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "survey.csv", tbl.Name)
	assert.Contains(t, tbl.Columns, "d_intent")
	assert.Len(t, tbl.Records, 6)
	// records must not alias the reader's reuse buffer
	assert.NotEqual(t, tbl.Records[0], tbl.Records[len(tbl.Records)-1])
}

func TestCSVSourceTSVAndRagged(t *testing.T) {
	p := writeFile(t, "s.tsv", "age\td_intent\to_intent\n18-25\t5\n26-35\t3\t4\textra\n")
	tbl, err := (&CSVSource{Path: p}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "d_intent", "o_intent"}, tbl.Columns)
	assert.Equal(t, []string{"18-25", "5"}, tbl.Records[0])
	assert.Len(t, tbl.Records[1], 4)
}

func TestCSVSourceEmpty(t *testing.T) {
	p := writeFile(t, "empty.csv", "")
	_, err := (&CSVSource{Path: p}).Load(context.Background())
	assert.True(t, errors.Is(err, ErrEmpty))

	_, err = (&CSVSource{Path: filepath.Join(t.TempDir(), "missing.csv")}).Load(context.Background())
	assert.Error(t, err)
}

func TestReaderSourceSemicolon(t *testing.T) {
	src := &ReaderSource{Name: "upload", R: strings.NewReader("a;b\n1;2\n"), Delimiter: ';'}
	tbl, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Columns)
	assert.Equal(t, [][]string{{"1", "2"}}, tbl.Records)
}

func TestReaderSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&ReaderSource{Name: "x", R: strings.NewReader("a\n1\n")}).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func writeWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"notes"}))
	_, err := f.NewSheet("Responses")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Responses", "A1", &[]any{"Age", "D_Intent", "O_Intent", "D_Trust", "O_Trust"}))
	require.NoError(t, f.SetSheetRow("Responses", "A2", &[]any{"18-25", 5, 3, 4, 2}))
	require.NoError(t, f.SetSheetRow("Responses", "A3", &[]any{"50+", 1, 4, 2, 5}))
	p := filepath.Join(t.TempDir(), "survey.xlsx")
	require.NoError(t, f.SaveAs(p))
	return p
}

func TestXLSXSourceSheetSelection(t *testing.T) {
	p := writeWorkbook(t)

	tbl, err := (&XLSXSource{Path: p, SheetName: "responses"}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Age", "D_Intent", "O_Intent", "D_Trust", "O_Trust"}, tbl.Columns)
	assert.Equal(t, []string{"18-25", "5", "3", "4", "2"}, tbl.Records[0])

	byIndex, err := (&XLSXSource{Path: p, SheetIndex: 2}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tbl.Records, byIndex.Records)

	first, err := (&XLSXSource{Path: p}).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"notes"}, first.Columns)

	_, err = (&XLSXSource{Path: p, SheetName: "nope"}).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available sheets: Sheet1, Responses")

	_, err = (&XLSXSource{Path: p, SheetIndex: 9}).Load(context.Background())
	assert.Error(t, err)
}

func TestOpenDispatch(t *testing.T) {
	s, err := Open("data.csv", Options{})
	require.NoError(t, err)
	assert.IsType(t, &CSVSource{}, s)

	s, err = Open("book.XLSX", Options{SheetName: "x"})
	require.NoError(t, err)
	assert.Equal(t, "x", s.(*XLSXSource).SheetName)

	s, err = Open("postgres://u@localhost/db", Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTable, s.(*PostgresSource).Table)

	_, err = Open("report.pdf", Options{})
	assert.Error(t, err)
	_, err = Open(" ", Options{})
	assert.Error(t, err)
}

func TestQuoteTable(t *testing.T) {
	assert.Equal(t, `"responses"`, quoteTable("responses"))
	assert.Equal(t, `"public"."survey"`, quoteTable("public.survey"))
	assert.Equal(t, `"a""b"`, quoteTable(`a"b`))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", stringify(nil))
	assert.Equal(t, "4.5", stringify(4.5))
	assert.Equal(t, "7", stringify(int64(7)))
	assert.Equal(t, "abc", stringify([]byte("abc")))
	assert.Equal(t, "true", stringify(true))
}

// Runs against a live database when CHANNELSTAT_TEST_PG_DSN is set.
func TestPostgresSourceLive(t *testing.T) {
	dsn := os.Getenv("CHANNELSTAT_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("CHANNELSTAT_TEST_PG_DSN not set")
	}
	tbl, err := NewPostgresSource(dsn, "").Load(context.Background())
	require.NoError(t, err)
	ds, err := survey.Normalize(tbl)
	require.NoError(t, err)
	assert.Positive(t, ds.Len())
}
