package utils

import "time"

// TimestampPrecision is the resolution kept for note and record timestamps.
// Both SQLite and PostgreSQL round-trip microseconds losslessly, so a note
// compared before and after persistence stays equal.
const TimestampPrecision = time.Microsecond

// Now returns the current UTC time truncated to [TimestampPrecision].
func Now() time.Time {
	return Normalize(time.Now())
}

// Normalize converts t to UTC and truncates it to [TimestampPrecision].
func Normalize(t time.Time) time.Time {
	return t.UTC().Truncate(TimestampPrecision)
}
