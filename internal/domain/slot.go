package domain

import "time"

// Slot is a half-open interval [Start, End) between two absolute instants
type Slot struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open intervals intersect.
// Touching endpoints do not overlap.
func (s Slot) Overlaps(other Slot) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}

// Duration returns End - Start
func (s Slot) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// IsValid reports whether Start is strictly before End
func (s Slot) IsValid() bool {
	return s.Start.Before(s.End)
}

// Equal compares instants regardless of location
func (s Slot) Equal(other Slot) bool {
	return s.Start.Equal(other.Start) && s.End.Equal(other.End)
}
