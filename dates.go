package tradebook

import "time"

// DateFormat is the format used to represent dates as strings in ISO-8601 form.
const DateFormat = "2006-01-02"

// Dates are carried as plain YYYY-MM-DD strings and ordered by lexicographic
// comparison. This is deliberate: it gives malformed and empty dates a total,
// stable order (the empty string sorts before every real date) without any
// timezone arithmetic inside the engine.

// Today returns the current local date as a YYYY-MM-DD string.
func Today() string { return time.Now().Format(DateFormat) }

// YearMonth returns the YYYY-MM prefix of a date string, or "" when the
// string is too short to carry a year-month.
func YearMonth(date string) string {
	if len(date) < 7 {
		return ""
	}
	return date[:7]
}
