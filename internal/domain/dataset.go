package domain

// Dataset is the decoded global temperature document. It is read-only once
// parsed and lives for the duration of a single render.
type Dataset struct {
	BaseTemperature float64         `json:"baseTemperature"` // °C
	MonthlyVariance []MonthlyRecord `json:"monthlyVariance"`
}

// MonthlyRecord is one month's deviation from the base temperature.
type MonthlyRecord struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`    // 1–12
	Variance float64 `json:"variance"` // °C offset from Dataset.BaseTemperature
}

// Temperature returns the absolute temperature for r given the dataset base.
func (r MonthlyRecord) Temperature(base float64) float64 {
	return base + r.Variance
}

// Years returns the distinct record years in first-seen order.
func (d Dataset) Years() []int {
	seen := make(map[int]struct{}, len(d.MonthlyVariance)/12+1)
	years := make([]int, 0, len(d.MonthlyVariance)/12+1)
	for _, r := range d.MonthlyVariance {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		years = append(years, r.Year)
	}
	return years
}

// VarianceBounds returns the smallest and largest variance across all records.
// An empty dataset reports (0, 0).
func (d Dataset) VarianceBounds() (lo, hi float64) {
	for i, r := range d.MonthlyVariance {
		if i == 0 || r.Variance < lo {
			lo = r.Variance
		}
		if i == 0 || r.Variance > hi {
			hi = r.Variance
		}
	}
	return lo, hi
}

// YearSpan returns the earliest and latest record years. An empty dataset
// reports (0, 0).
func (d Dataset) YearSpan() (first, last int) {
	for i, r := range d.MonthlyVariance {
		if i == 0 || r.Year < first {
			first = r.Year
		}
		if i == 0 || r.Year > last {
			last = r.Year
		}
	}
	return first, last
}
