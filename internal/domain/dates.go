package domain

import "time"

// ISODateFormat is the canonical wire format for calendar dates. Every
// boundary speaks ISO 8601 dates; legacy day-first values are converted
// on read, never written back.
const ISODateFormat = "2006-01-02"

// legacyDateFormat is the day-first format older attendance rows were
// recorded in.
const legacyDateFormat = "02-01-2006"

// ParseISODate validates an ISO calendar date string.
func ParseISODate(s string) (time.Time, error) {
	t, err := time.Parse(ISODateFormat, s)
	if err != nil {
		return time.Time{}, ErrValidation("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// NormalizeDate converts a date string to the canonical ISO format,
// accepting both ISO and the legacy DD-MM-YYYY form.
func NormalizeDate(s string) (string, error) {
	if t, err := time.Parse(ISODateFormat, s); err == nil {
		return t.Format(ISODateFormat), nil
	}
	if t, err := time.Parse(legacyDateFormat, s); err == nil {
		return t.Format(ISODateFormat), nil
	}
	return "", ErrValidation("invalid date %q: expected YYYY-MM-DD", s)
}

// Today returns the current date in canonical ISO form.
func Today() string {
	return time.Now().Format(ISODateFormat)
}

// FormatISODate renders a time as a canonical ISO date string.
func FormatISODate(t time.Time) string {
	return t.Format(ISODateFormat)
}
