package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloat converts string to float64 with default value
func ParseFloat(value string, defaultValue float64) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultValue
	}

	result, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(result) || math.IsInf(result, 0) {
		return defaultValue
	}
	return result
}

// ParseBool accepts the checkbox spellings a form may send
func ParseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// RoundToOneDecimal keeps movie ratings at the granularity the catalog stores.
func RoundToOneDecimal(value float64) float64 {
	return math.Round(value*10) / 10.0
}

// DateOnly trims an ISO timestamp such as 2010-07-16T00:00:00.000Z to its date.
func DateOnly(value string) string {
	if i := strings.IndexByte(value, 'T'); i >= 0 {
		return value[:i]
	}
	return value
}
