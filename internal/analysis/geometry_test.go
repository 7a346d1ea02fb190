package analysis

import (
	"math"
	"testing"
)

// stepDeg100m is close to 100 m of latitude.
const stepDeg100m = 0.00089932

func lineTrack(stepDeg float64, elevs []float64) NormalizedTrack {
	pts := make([]TrackPoint, len(elevs))
	for i := range elevs {
		pts[i] = TrackPoint{Lat: float64(i) * stepDeg, Lon: 6.0, Elevation: elevs[i]}
	}
	return NormalizedTrack{Points: pts}
}

func flatElevs(n int, alt float64) []float64 {
	elevs := make([]float64, n)
	for i := range elevs {
		elevs[i] = alt
	}
	return elevs
}

func TestSummarizeFlatTrack(t *testing.T) {
	// ~10 km dead flat at 1000 m.
	track := lineTrack(stepDeg100m, flatElevs(101, 1000))
	s := Summarize(track, DefaultConfig())

	if math.Abs(s.TotalDistanceKm-10) > 0.05 {
		t.Fatalf("expected ~10 km, got %v", s.TotalDistanceKm)
	}
	if s.ElevationGainM != 0 || s.ElevationLossM != 0 {
		t.Fatalf("expected zero gain/loss, got %v/%v", s.ElevationGainM, s.ElevationLossM)
	}
	if s.MaxSlopePct != 0 || s.AvgUphillSlopePct != 0 {
		t.Fatalf("expected zero slopes, got %v/%v", s.MaxSlopePct, s.AvgUphillSlopePct)
	}
	if s.MaxAltitudeM != 1000 || s.MinAltitudeM != 1000 || s.AvgAltitudeM != 1000 {
		t.Fatalf("unexpected altitudes: %+v", s)
	}
	if s.LongestClimbM != 0 {
		t.Fatalf("expected no climb, got %v", s.LongestClimbM)
	}
}

func TestSummarizeDistanceRounded(t *testing.T) {
	track := lineTrack(0.0007, flatElevs(13, 0))
	s := Summarize(track, DefaultConfig())
	if s.TotalDistanceKm < 0 {
		t.Fatalf("negative distance")
	}
	scaled := s.TotalDistanceKm * 1000
	if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
		t.Fatalf("distance not rounded to 3 decimals: %v", s.TotalDistanceKm)
	}
}

func TestSummarizeMonotonicClimbExactGain(t *testing.T) {
	// Fine 0.5 m steps, each below the hysteresis threshold: the pending
	// delta must carry forward and flush so nothing is under-reported.
	elevs := make([]float64, 41)
	for i := range elevs {
		elevs[i] = float64(i) * 0.5
	}
	s := Summarize(lineTrack(stepDeg100m, elevs), DefaultConfig())

	if math.Abs(s.ElevationGainM-20) > 1e-9 {
		t.Fatalf("expected exactly 20 m gain on clean climb, got %v", s.ElevationGainM)
	}
	if s.ElevationLossM != 0 {
		t.Fatalf("expected zero loss, got %v", s.ElevationLossM)
	}
	if math.Abs(s.LongestClimbM-20) > 1e-9 {
		t.Fatalf("expected 20 m longest climb, got %v", s.LongestClimbM)
	}
}

func TestSummarizeRejectsJitter(t *testing.T) {
	// +1/-1 m oscillation never reaches the 2 m threshold.
	elevs := make([]float64, 41)
	for i := range elevs {
		elevs[i] = 1000 + float64(i%2)
	}
	s := Summarize(lineTrack(stepDeg100m, elevs), DefaultConfig())

	if s.ElevationGainM != 0 || s.ElevationLossM != 0 {
		t.Fatalf("expected jitter rejected, got gain %v loss %v", s.ElevationGainM, s.ElevationLossM)
	}
}

func TestSummarizeCommittedProfile(t *testing.T) {
	// ~100 m segments with deltas 50, -30, 60, -50.
	s := Summarize(lineTrack(stepDeg100m, []float64{100, 150, 120, 180, 130}), DefaultConfig())

	if math.Abs(s.ElevationGainM-110) > 1e-9 || math.Abs(s.ElevationLossM-80) > 1e-9 {
		t.Fatalf("expected gain 110 loss 80, got %v/%v", s.ElevationGainM, s.ElevationLossM)
	}
	if s.MaxSlopePct < 55 || s.MaxSlopePct > 65 {
		t.Fatalf("expected max slope ~60%%, got %v", s.MaxSlopePct)
	}
	// Distance-weighted uphill mean of ~50% and ~60% over equal segments.
	if s.AvgUphillSlopePct < 50 || s.AvgUphillSlopePct > 60 {
		t.Fatalf("expected avg uphill ~55%%, got %v", s.AvgUphillSlopePct)
	}
	if math.Abs(s.LongestClimbM-60) > 1e-9 {
		t.Fatalf("expected longest climb 60, got %v", s.LongestClimbM)
	}
	if s.MaxAltitudeM != 180 || s.MinAltitudeM != 100 {
		t.Fatalf("unexpected extrema: %+v", s)
	}
}

func TestSummarizeReverseSwapsGainAndLoss(t *testing.T) {
	elevs := []float64{100, 150, 120, 180, 130}
	fwd := lineTrack(stepDeg100m, elevs)

	rev := make([]float64, len(elevs))
	for i := range elevs {
		rev[i] = elevs[len(elevs)-1-i]
	}
	bwd := lineTrack(stepDeg100m, rev)

	cfg := DefaultConfig()
	sf := Summarize(fwd, cfg)
	sb := Summarize(bwd, cfg)

	if sf.TotalDistanceKm != sb.TotalDistanceKm {
		t.Fatalf("expected identical distances: %v vs %v", sf.TotalDistanceKm, sb.TotalDistanceKm)
	}
	if math.Abs(sf.ElevationGainM-sb.ElevationLossM) > 1e-9 ||
		math.Abs(sf.ElevationLossM-sb.ElevationGainM) > 1e-9 {
		t.Fatalf("expected gain/loss swapped: fwd %v/%v bwd %v/%v",
			sf.ElevationGainM, sf.ElevationLossM, sb.ElevationGainM, sb.ElevationLossM)
	}
}

func TestSummarizeTwoPointNoElevation(t *testing.T) {
	s := Summarize(lineTrack(stepDeg100m, []float64{0, 0}), DefaultConfig())
	if s.TotalDistanceKm <= 0 {
		t.Fatalf("expected positive distance")
	}
	if s.ElevationGainM != 0 {
		t.Fatalf("expected zero gain, got %v", s.ElevationGainM)
	}
}

func TestSummarizeZeroHorizontalDistance(t *testing.T) {
	// Two samples at the same coordinates: slope undefined, must be skipped
	// without producing NaN.
	track := NormalizedTrack{Points: []TrackPoint{
		{Lat: 45, Lon: 6, Elevation: 100},
		{Lat: 45, Lon: 6, Elevation: 150},
		{Lat: 45.001, Lon: 6, Elevation: 150},
	}}
	s := Summarize(track, DefaultConfig())
	if math.IsNaN(s.MaxSlopePct) || math.IsNaN(s.AvgUphillSlopePct) {
		t.Fatalf("slope must not be NaN: %+v", s)
	}
}
