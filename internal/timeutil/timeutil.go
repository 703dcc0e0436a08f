// Package timeutil formats clip lengths for reports.
package timeutil

import (
	"fmt"
	"math"
)

// FormatSeconds renders a clip length the way a library browser shows it:
// "M:SS.ss" below one hour, "H:MM:SS" from one hour up. Negative and NaN
// input render as zero.
//
// Example:
//
//	FormatSeconds(2.966667) // "0:02.97"
//	FormatSeconds(90.75)    // "1:30.75"
//	FormatSeconds(3661)     // "1:01:01"
func FormatSeconds(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}

	// Round to centiseconds before splitting so 59.999 carries into the minute.
	cs := int64(math.Round(seconds * 100))
	if cs < 3600*100 {
		return fmt.Sprintf("%d:%05.2f", cs/6000, float64(cs%6000)/100)
	}

	total := int64(math.Round(seconds))
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
