// Command genmock writes a synthetic global temperature dataset in the same
// JSON shape as the published one, so the heat map can be rendered offline
// through a file:// DATA_URL.
//
// Usage:
//
//	go run ./cmd/genmock -start 1753 -end 2015 -out data/mock/global-temperature.json
//	DATA_URL=file://$PWD/data/mock/global-temperature.json go run ./cmd/heatmap
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/couchcryptid/temperature-heatmap/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	start := flag.Int("start", 1753, "first year")
	end := flag.Int("end", 2015, "last year (inclusive)")
	base := flag.Float64("base", 8.66, "base temperature in °C")
	seed := flag.Uint64("seed", 1, "random seed; equal seeds give identical output")
	out := flag.String("out", "", "output path for the dataset JSON")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *end < *start {
		return fmt.Errorf("-end %d is before -start %d", *end, *start)
	}

	ds := generate(*start, *end, *base, *seed)

	// Round-trip through the real parser so the fixture is known-good.
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dataset: %w", err)
	}
	if _, err := domain.ParseDataset(data); err != nil {
		return fmt.Errorf("generated dataset is invalid: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0o644); err != nil { //nolint:gosec // fixture file
		return fmt.Errorf("write dataset: %w", err)
	}

	lo, hi := ds.VarianceBounds()
	log.Printf("wrote %s: %d records, %d-%d, variance [%.3f, %.3f]",
		*out, len(ds.MonthlyVariance), *start, *end, lo, hi)
	return nil
}

// generate builds a warming trend with a seasonal wobble and noise. Values are
// rounded to three decimals like the published dataset.
func generate(start, end int, base float64, seed uint64) domain.Dataset {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec // fixture data

	span := float64(end - start + 1)
	ds := domain.Dataset{
		BaseTemperature: base,
		MonthlyVariance: make([]domain.MonthlyRecord, 0, (end-start+1)*12),
	}
	for year := start; year <= end; year++ {
		trend := -1 + 2*float64(year-start)/span
		for month := 1; month <= 12; month++ {
			seasonal := 0.3 * math.Sin(2*math.Pi*float64(month)/12)
			noise := rng.NormFloat64() * 0.6
			v := math.Round((trend+seasonal+noise)*1000) / 1000
			ds.MonthlyVariance = append(ds.MonthlyVariance, domain.MonthlyRecord{
				Year:     year,
				Month:    month,
				Variance: v,
			})
		}
	}
	return ds
}
