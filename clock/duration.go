package clock

const (
	nsPerSecond = 1_000_000_000
	nsPerDay    = 24 * 60 * 60 * nsPerSecond
)

// Duration is a signed span of time counted in nanoseconds. It is an
// ordered value type; compare durations with the usual operators.
type Duration int64

// FromNanoseconds returns a duration of ns nanoseconds.
func FromNanoseconds(ns int64) Duration {
	return Duration(ns)
}

// FromSeconds returns a duration of s seconds.
func FromSeconds(s int64) Duration {
	return Duration(s * nsPerSecond)
}

// FromDays returns a duration of d days.
func FromDays(d int64) Duration {
	return Duration(d * nsPerDay)
}

// Nanoseconds returns the duration as a nanosecond count.
func (d Duration) Nanoseconds() int64 {
	return int64(d)
}

// Seconds returns the duration in whole seconds, truncated toward zero.
func (d Duration) Seconds() int64 {
	return int64(d) / nsPerSecond
}

// Add returns d + other.
func (d Duration) Add(other Duration) Duration {
	return d + other
}

// Sub returns d - other.
func (d Duration) Sub(other Duration) Duration {
	return d - other
}
