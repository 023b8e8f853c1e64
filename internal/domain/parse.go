package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidDataset is wrapped by every ValidationError so callers can match
// the whole class with errors.Is.
var ErrInvalidDataset = errors.New("invalid dataset")

// ValidationError reports a dataset field that is missing or out of range.
type ValidationError struct {
	Field  string // JSON path, e.g. "monthlyVariance[3].month"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidDataset }

// payload mirrors the wire document with pointer fields so absent keys can be
// told apart from zero values.
type payload struct {
	BaseTemperature *float64        `json:"baseTemperature"`
	MonthlyVariance []recordPayload `json:"monthlyVariance"`
}

type recordPayload struct {
	Year     *int     `json:"year"`
	Month    *int     `json:"month"`
	Variance *float64 `json:"variance"`
}

// ParseDataset decodes and validates a global temperature document.
// Mistyped fields fail in the JSON decoder; missing fields, an empty record
// list, and months outside 1–12 fail with a *ValidationError.
func ParseDataset(data []byte) (Dataset, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Dataset{}, fmt.Errorf("parse dataset: %w", err)
	}

	if p.BaseTemperature == nil {
		return Dataset{}, &ValidationError{Field: "baseTemperature", Reason: "missing"}
	}
	if p.MonthlyVariance == nil {
		return Dataset{}, &ValidationError{Field: "monthlyVariance", Reason: "missing"}
	}
	if len(p.MonthlyVariance) == 0 {
		return Dataset{}, &ValidationError{Field: "monthlyVariance", Reason: "no records"}
	}

	records := make([]MonthlyRecord, len(p.MonthlyVariance))
	for i, rp := range p.MonthlyVariance {
		r, err := rp.record(i)
		if err != nil {
			return Dataset{}, err
		}
		records[i] = r
	}

	return Dataset{
		BaseTemperature: *p.BaseTemperature,
		MonthlyVariance: records,
	}, nil
}

func (rp recordPayload) record(i int) (MonthlyRecord, error) {
	field := func(name string) string {
		return fmt.Sprintf("monthlyVariance[%d].%s", i, name)
	}
	switch {
	case rp.Year == nil:
		return MonthlyRecord{}, &ValidationError{Field: field("year"), Reason: "missing"}
	case rp.Month == nil:
		return MonthlyRecord{}, &ValidationError{Field: field("month"), Reason: "missing"}
	case rp.Variance == nil:
		return MonthlyRecord{}, &ValidationError{Field: field("variance"), Reason: "missing"}
	case *rp.Month < 1 || *rp.Month > 12:
		return MonthlyRecord{}, &ValidationError{
			Field:  field("month"),
			Reason: fmt.Sprintf("%d out of range 1-12", *rp.Month),
		}
	}
	return MonthlyRecord{Year: *rp.Year, Month: *rp.Month, Variance: *rp.Variance}, nil
}
