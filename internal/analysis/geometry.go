package analysis

import (
	"math"

	"github.com/Reubrecht/KairnGpx/internal/shared/geo"
)

// segment is a consecutive point pair with its horizontal length and raw
// elevation delta.
type segment struct {
	DistM  float64
	DeltaM float64
}

func segments(track NormalizedTrack) []segment {
	segs := make([]segment, 0, len(track.Points)-1)
	for i := 0; i+1 < len(track.Points); i++ {
		a, b := track.Points[i], track.Points[i+1]
		segs = append(segs, segment{
			DistM:  geo.HaversineM(a.Lat, a.Lon, b.Lat, b.Lon),
			DeltaM: b.Elevation - a.Elevation,
		})
	}
	return segs
}

// Summarize derives the GeometrySummary of a normalized track. Pure and
// deterministic; no failure modes.
func Summarize(track NormalizedTrack, cfg Config) GeometrySummary {
	segs := segments(track)

	totalM := 0.0
	for _, s := range segs {
		totalM += s.DistM
	}

	maxAlt := track.Points[0].Elevation
	minAlt := maxAlt
	sumAlt := 0.0
	for _, p := range track.Points {
		maxAlt = math.Max(maxAlt, p.Elevation)
		minAlt = math.Min(minAlt, p.Elevation)
		sumAlt += p.Elevation
	}

	gain, loss, longestClimb := committedElevation(segs, cfg.HysteresisM)

	maxSlope := 0.0
	uphillWeighted := 0.0
	uphillDist := 0.0
	for _, s := range segs {
		if s.DistM <= 0 {
			continue // slope undefined on zero horizontal distance
		}
		slope := s.DeltaM / s.DistM * 100
		maxSlope = math.Max(maxSlope, math.Abs(slope))
		if s.DeltaM > 0 {
			uphillWeighted += slope * s.DistM
			uphillDist += s.DistM
		}
	}
	avgUphill := 0.0
	if uphillDist > 0 {
		avgUphill = uphillWeighted / uphillDist
	}

	return GeometrySummary{
		TotalDistanceKm:   math.Round(totalM) / 1000,
		ElevationGainM:    gain,
		ElevationLossM:    loss,
		MaxAltitudeM:      maxAlt,
		MinAltitudeM:      minAlt,
		AvgAltitudeM:      sumAlt / float64(len(track.Points)),
		MaxSlopePct:       maxSlope,
		AvgUphillSlopePct: avgUphill,
		LongestClimbM:     longestClimb,
	}
}

// committedElevation applies noise-rejection hysteresis: deltas accumulate
// into a pending value that only commits once its magnitude reaches the
// threshold, so barometric jitter cancels out instead of inflating gain.
// The residual pending is flushed at the end, which keeps a clean monotonic
// climb exact. Also tracks the longest run of uninterrupted positive commits.
func committedElevation(segs []segment, thresholdM float64) (gain, loss, longestClimb float64) {
	pending := 0.0
	currentClimb := 0.0

	commit := func(delta float64) {
		if delta > 0 {
			gain += delta
			currentClimb += delta
		} else if delta < 0 {
			loss += -delta
			longestClimb = math.Max(longestClimb, currentClimb)
			currentClimb = 0
		}
	}

	for _, s := range segs {
		pending += s.DeltaM
		if math.Abs(pending) >= thresholdM {
			commit(pending)
			pending = 0
		}
	}
	commit(pending)
	longestClimb = math.Max(longestClimb, currentClimb)
	return gain, loss, longestClimb
}

// slopeStddev is the distance-weighted standard deviation of segment slopes,
// a proxy for how inconsistent the terrain is.
func slopeStddev(track NormalizedTrack) float64 {
	segs := segments(track)

	totalDist := 0.0
	mean := 0.0
	for _, s := range segs {
		if s.DistM <= 0 {
			continue
		}
		mean += s.DeltaM / s.DistM * 100 * s.DistM
		totalDist += s.DistM
	}
	if totalDist == 0 {
		return 0
	}
	mean /= totalDist

	variance := 0.0
	for _, s := range segs {
		if s.DistM <= 0 {
			continue
		}
		slope := s.DeltaM / s.DistM * 100
		variance += (slope - mean) * (slope - mean) * s.DistM
	}
	return math.Sqrt(variance / totalDist)
}
