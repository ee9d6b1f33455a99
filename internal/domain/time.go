package domain

import "time"

// legacyTimestampLayout appears in older exports and spreadsheet uploads.
const legacyTimestampLayout = "2006-01-02 15:04:05"

// ParseTimestamp converts a source timestamp string to a UTC instant. This is
// the single conversion point for booking timestamps: values are normalized
// here, on the way in, and never re-interpreted afterwards. Empty or
// unparseable input yields the zero time, which marks the booking as having
// no usable timestamp (see Booking.HasTimestamp).
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(legacyTimestampLayout, s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
