package scheduling

import (
	"context"
	"errors"
	"testing"

	"studioflow/models"
)

type stubRouteProvider struct {
	leg RouteLeg
	err error
}

func (s *stubRouteProvider) Route(_ context.Context, _, _ models.Coordinates) (RouteLeg, error) {
	return s.leg, s.err
}

var testFees = models.TravelFeeConfig{FreeThresholdMiles: 10, FeePerMileCents: 65}

func TestEstimateWithoutHomeBase(t *testing.T) {
	te := &TravelEstimator{Routes: &stubRouteProvider{leg: RouteLeg{DistanceMiles: 5}}}

	if got := te.Estimate(context.Background(), nil, models.Coordinates{Lat: 1, Lng: 2}, testFees); got != nil {
		t.Errorf("expected nil estimate without a home base, got %+v", got)
	}
}

func TestEstimateRouteFailureDegrades(t *testing.T) {
	te := &TravelEstimator{Routes: &stubRouteProvider{err: errors.New("no route")}}
	origin := &models.Coordinates{Lat: 40.0, Lng: -105.0}

	if got := te.Estimate(context.Background(), origin, models.Coordinates{Lat: 40.1, Lng: -105.1}, testFees); got != nil {
		t.Errorf("expected nil estimate on route failure, got %+v", got)
	}
}

func TestEstimateComputesFee(t *testing.T) {
	origin := &models.Coordinates{Lat: 40.0, Lng: -105.0}
	dest := models.Coordinates{Lat: 40.5, Lng: -105.5}

	cases := []struct {
		name      string
		miles     float64
		minutes   int
		wantCents int64
	}{
		{"under threshold", 6.2, 15, 0},
		{"at threshold", 10.0, 22, 0},
		{"past threshold", 22.5, 40, 813}, // 12.5 billable miles at 65c
		{"rounding", 10.01, 23, 1},        // 0.01 * 65 = 0.65, rounds to 1
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			te := &TravelEstimator{Routes: &stubRouteProvider{
				leg: RouteLeg{DistanceMiles: tc.miles, TravelTimeMinutes: tc.minutes},
			}}
			got := te.Estimate(context.Background(), origin, dest, testFees)
			if got == nil {
				t.Fatal("expected an estimate")
			}
			if got.DistanceMiles != tc.miles {
				t.Errorf("distance = %v, want %v", got.DistanceMiles, tc.miles)
			}
			if got.TravelTimeMinutes != tc.minutes {
				t.Errorf("travel time = %v, want %v", got.TravelTimeMinutes, tc.minutes)
			}
			if got.FeeCents != tc.wantCents {
				t.Errorf("fee = %d cents, want %d", got.FeeCents, tc.wantCents)
			}
		})
	}
}

func TestTravelFeeNeverNegative(t *testing.T) {
	if fee := travelFeeCents(0, testFees); fee != 0 {
		t.Errorf("zero distance fee = %d, want 0", fee)
	}
}
