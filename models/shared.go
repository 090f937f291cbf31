package models

import "time"

// Coordinates is a resolved geographic point for a booking location or
// the studio's home base.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// TimeWindow is a half-open interval [Start, End). The end instant is
// excluded so back-to-back sessions never count as overlapping.
type TimeWindow struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Overlaps reports whether the two half-open windows share any instant.
func (w TimeWindow) Overlaps(o TimeWindow) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Valid reports whether the window has positive length.
func (w TimeWindow) Valid() bool {
	return w.End.After(w.Start)
}

// Duration returns the window length.
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}
