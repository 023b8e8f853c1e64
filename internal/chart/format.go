package chart

import (
	"strconv"
	"time"
)

// MonthName returns the full English name of a 1-based month, or "" outside
// 1–12.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()
}

// MonthNames returns January through December.
func MonthNames() []string {
	names := make([]string, 12)
	for i := range names {
		names[i] = MonthName(i + 1)
	}
	return names
}

// FormatTemperature formats t with two decimals, as the tooltip shows it.
func FormatTemperature(t float64) string {
	return strconv.FormatFloat(t, 'f', 2, 64)
}

// FormatLegendTick formats a legend axis value with one decimal.
func FormatLegendTick(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
