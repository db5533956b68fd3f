package policy

import "fmt"

// FormatHours encodes whole hours as an ISO-8601 duration, e.g. PT8H
func FormatHours(hours int) string {
	return fmt.Sprintf("PT%dH", hours)
}

// FormatDays encodes whole days as an ISO-8601 duration, e.g. P3D
func FormatDays(days int) string {
	return fmt.Sprintf("P%dD", days)
}
