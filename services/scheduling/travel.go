package scheduling

import (
	"context"
	"math"

	"go.uber.org/zap"

	"studioflow/models"
	"studioflow/utils"
)

// RouteLeg is what a routing backend reports for one origin-destination
// pair.
type RouteLeg struct {
	DistanceMiles     float64
	TravelTimeMinutes int
}

// RouteProvider resolves distance and duration between two points. The
// production implementation calls the Google Directions API; tests stub
// it out.
type RouteProvider interface {
	Route(ctx context.Context, origin, destination models.Coordinates) (RouteLeg, error)
}

// TravelEstimator annotates bookings with distance, duration and a
// travel fee computed from the studio's fee policy. An absent home base
// or a failed route lookup degrades to no estimate; the estimator never
// fails a booking.
type TravelEstimator struct {
	Routes RouteProvider
}

// Estimate returns the travel annotation for the destination, or nil
// when no estimate can be produced. nil is an expected outcome, not an
// error.
func (te *TravelEstimator) Estimate(ctx context.Context, origin *models.Coordinates, destination models.Coordinates, fee models.TravelFeeConfig) *models.TravelEstimate {
	if te == nil || te.Routes == nil || origin == nil {
		return nil
	}

	leg, err := te.Routes.Route(ctx, *origin, destination)
	if err != nil {
		utils.GetLogger().Debug("travel estimate unavailable", zap.Error(err))
		return nil
	}

	return &models.TravelEstimate{
		DistanceMiles:     leg.DistanceMiles,
		TravelTimeMinutes: leg.TravelTimeMinutes,
		FeeCents:          travelFeeCents(leg.DistanceMiles, fee),
	}
}

// travelFeeCents charges the per-mile rate on distance past the free
// threshold, rounded to the nearest cent and never negative.
func travelFeeCents(distanceMiles float64, fee models.TravelFeeConfig) int64 {
	billable := distanceMiles - fee.FreeThresholdMiles
	if billable <= 0 {
		return 0
	}
	return int64(math.Round(billable * float64(fee.FeePerMileCents)))
}
