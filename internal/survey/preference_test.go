package survey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, PreferDigital, Classify(Row{DigitalIntent: 4, OfflineIntent: 2}))
	assert.Equal(t, PreferOffline, Classify(Row{DigitalIntent: 1, OfflineIntent: 5}))
	assert.Equal(t, PreferDigital, Classify(Row{DigitalIntent: 3, OfflineIntent: 3}), "ties go to Digital")
}

func TestClassifyTotal(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := Row{
			DigitalIntent: rapid.Float64Range(-10, 10).Draw(rt, "d"),
			OfflineIntent: rapid.Float64Range(-10, 10).Draw(rt, "o"),
		}
		got := Classify(r)
		want := PreferOffline
		if r.DigitalIntent >= r.OfflineIntent {
			want = PreferDigital
		}
		if got != want {
			rt.Fatalf("Classify(%v, %v) = %s, want %s", r.DigitalIntent, r.OfflineIntent, got, want)
		}
	})
}

func TestTemplateNormalizes(t *testing.T) {
	// header line of the template must satisfy the normalizer
	tbl := &Table{
		Columns: []string{"age", "d_intent", "o_intent", "d_trust", "o_trust"},
		Records: [][]string{{"18-30", "5", "3", "4", "2"}},
	}
	ds, err := Normalize(tbl)
	assert.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
	assert.Contains(t, TemplateCSV, "age,d_intent,o_intent,d_trust,o_trust\n")
}
