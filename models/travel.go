package models

// TravelEstimate is the ephemeral travel annotation attached to a
// booking whose location resolved to coordinates. Absence of an estimate
// is an expected outcome (no home base configured, routing lookup
// failed), never an error.
type TravelEstimate struct {
	DistanceMiles     float64 `bson:"distance_miles" json:"distance_miles"`
	TravelTimeMinutes int     `bson:"travel_time_minutes" json:"travel_time_minutes"`
	FeeCents          int64   `bson:"fee_cents" json:"fee_cents"`
}

// TravelFeeConfig is the studio's travel fee policy: miles covered for
// free, then a per-mile rate in cents.
type TravelFeeConfig struct {
	FreeThresholdMiles float64 `json:"free_threshold_miles"`
	FeePerMileCents    int64   `json:"fee_per_mile_cents"`
}
