// Package domain models the monthly global land-surface temperature dataset.
//
// # Data Source
//
// The dataset is published by freeCodeCamp as ProjectReferenceData
// global-temperature.json. It is a single JSON document:
//
//	{
//	  "baseTemperature": 8.66,
//	  "monthlyVariance": [
//	    {"year": 1753, "month": 1, "variance": -1.366},
//	    ...
//	  ]
//	}
//
// Conventions:
//
//	baseTemperature is the reference temperature in °C for the whole series.
//	variance is the deviation in °C of one month from that base, so the
//	absolute temperature of a record is baseTemperature + variance.
//	month is 1-based (1 = January). Records appear in chronological order,
//	one per (year, month); the order of first appearance of each year is the
//	order used on the chart's horizontal axis.
//
// The series runs from 1753 to 2015. Uniqueness of (year, month) is assumed
// from the source and not checked.
//
// # Validation
//
// [ParseDataset] decodes into a typed payload and fails fast: malformed JSON
// and mistyped numbers surface as decoder errors, absent or out-of-range
// fields as a [*ValidationError] that names the JSON path of the field. An
// empty record list is rejected because every derived scale would be
// degenerate.
package domain
