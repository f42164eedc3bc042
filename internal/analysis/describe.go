package analysis

import (
	"github.com/KaramelBytes/channelstat/internal/survey"
	"github.com/montanaflynn/stats"
)

// Means holds the average of each metric column.
type Means struct {
	DigitalIntent float64 `json:"digital_intent" yaml:"digital_intent"`
	OfflineIntent float64 `json:"offline_intent" yaml:"offline_intent"`
	DigitalTrust  float64 `json:"digital_trust" yaml:"digital_trust"`
	OfflineTrust  float64 `json:"offline_trust" yaml:"offline_trust"`
}

// GroupMean is the mean digital intent of one age group.
type GroupMean struct {
	Group         string  `json:"group" yaml:"group"`
	N             int     `json:"n" yaml:"n"`
	DigitalIntent float64 `json:"digital_intent" yaml:"digital_intent"`
}

// Descriptives summarizes a dataset without testing anything.
type Descriptives struct {
	SampleSize int         `json:"sample_size" yaml:"sample_size"`
	Means      Means       `json:"means" yaml:"means"`
	AgeIntent  []GroupMean `json:"age_intent,omitempty" yaml:"age_intent,omitempty"`
}

// Describe computes metric means and per-age mean digital intent.
func Describe(ds *survey.Dataset) Descriptives {
	d := Descriptives{SampleSize: ds.Len()}
	d.Means = Means{
		DigitalIntent: columnMean(ds, survey.ColDigitalIntent),
		OfflineIntent: columnMean(ds, survey.ColOfflineIntent),
		DigitalTrust:  columnMean(ds, survey.ColDigitalTrust),
		OfflineTrust:  columnMean(ds, survey.ColOfflineTrust),
	}
	groups := ageIntentGroups(ds)
	for _, age := range ds.AgeGroups() {
		vals := groups[age]
		m, err := stats.Mean(stats.Float64Data(vals))
		if err != nil {
			continue
		}
		d.AgeIntent = append(d.AgeIntent, GroupMean{Group: age, N: len(vals), DigitalIntent: m})
	}
	return d
}

func columnMean(ds *survey.Dataset, col string) float64 {
	vals, err := ds.Metric(col)
	if err != nil {
		return 0
	}
	m, err := stats.Mean(stats.Float64Data(vals))
	if err != nil {
		// empty dataset
		return 0
	}
	return m
}

// ageIntentGroups partitions digital intent by non-empty age.
func ageIntentGroups(ds *survey.Dataset) map[string][]float64 {
	out := map[string][]float64{}
	for _, r := range ds.Rows {
		if r.Age == "" {
			continue
		}
		out[r.Age] = append(out[r.Age], r.DigitalIntent)
	}
	return out
}

// CrossTab counts rows by age group and preference label. Only ages and
// labels that occur are included; rows without an age are skipped.
func CrossTab(ds *survey.Dataset) (ages []string, labels []survey.Preference, counts [][]float64) {
	ages = ds.AgeGroups()
	seen := map[survey.Preference]bool{}
	for _, r := range ds.Rows {
		if r.Age != "" {
			seen[survey.Classify(r)] = true
		}
	}
	for _, p := range survey.Preferences {
		if seen[p] {
			labels = append(labels, p)
		}
	}
	rowIdx := make(map[string]int, len(ages))
	for i, a := range ages {
		rowIdx[a] = i
	}
	colIdx := make(map[survey.Preference]int, len(labels))
	for j, p := range labels {
		colIdx[p] = j
	}
	counts = make([][]float64, len(ages))
	for i := range counts {
		counts[i] = make([]float64, len(labels))
	}
	for _, r := range ds.Rows {
		if r.Age == "" {
			continue
		}
		counts[rowIdx[r.Age]][colIdx[survey.Classify(r)]]++
	}
	return ages, labels, counts
}
