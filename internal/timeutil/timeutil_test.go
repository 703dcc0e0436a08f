package timeutil

import (
	"math"
	"testing"
)

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		name     string
		seconds  float64
		expected string
	}{
		{"Zero", 0, "0:00.00"},
		{"Live Photo clip", 2.966667, "0:02.97"},
		{"One second", 1, "0:01.00"},
		{"One minute", 60, "1:00.00"},
		{"Minute with fraction", 90.75, "1:30.75"},
		{"Carries into minute", 59.999, "1:00.00"},
		{"Just under an hour", 3599.5, "59:59.50"},
		{"Carries into hour", 3599.999, "1:00:00"},
		{"One hour", 3600, "1:00:00"},
		{"Complex time", 3661, "1:01:01"},
		{"Hour rounds seconds", 3661.6, "1:01:02"},
		{"Large time", 86400, "24:00:00"},
		{"Negative", -5, "0:00.00"},
		{"NaN", math.NaN(), "0:00.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatSeconds(tt.seconds)
			if result != tt.expected {
				t.Errorf("FormatSeconds(%.3f) = %s; want %s", tt.seconds, result, tt.expected)
			}
		})
	}
}
