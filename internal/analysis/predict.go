package analysis

import (
	"fmt"
	"math"
	"time"
)

// Predict estimates the completion time and checkpoint splits for one runner
// profile. A fitness index, when supplied, takes precedence over the
// archetype speed table.
func Predict(track NormalizedTrack, geom GeometrySummary, tech TechnicityProfile, profile RunnerProfile, cfg Config) (PredictionResult, error) {
	effortKm := geom.TotalDistanceKm + geom.ElevationGainM/cfg.ClimbPenaltyM

	var totalHours float64
	if profile.FitnessIndex != nil {
		idx := *profile.FitnessIndex
		if idx < cfg.MinFitnessIndex || idx > cfg.MaxFitnessIndex {
			return PredictionResult{}, fmt.Errorf("%w: fitness index %.0f outside [%.0f, %.0f]",
				ErrInvalidProfile, idx, cfg.MinFitnessIndex, cfg.MaxFitnessIndex)
		}
		totalHours = indexHours(idx, effortKm, tech.Score, cfg)
	} else {
		flat, ok := cfg.FlatSpeedKmh[profile.Archetype]
		if !ok {
			return PredictionResult{}, fmt.Errorf("%w: unknown archetype %q", ErrInvalidProfile, profile.Archetype)
		}
		base := geom.TotalDistanceKm/flat +
			geom.ElevationGainM/cfg.ClimbRateMPerH[profile.Archetype]
		totalHours = base / techFactor(cfg.TechPenalty[profile.Archetype], tech.Score)
	}

	total := time.Duration(totalHours * float64(time.Hour))
	return PredictionResult{
		Archetype:     profile.Archetype,
		FitnessIndex:  profile.FitnessIndex,
		EffortKm:      math.Round(effortKm*10) / 10,
		TotalTime:     total,
		TotalTimeText: formatHours(totalHours),
		Splits:        checkpointSplits(track, total, cfg),
	}, nil
}

// indexHours interpolates pace from the reference index-to-speed curve
// instead of snapping to an archetype, then applies the technicity slowdown
// and a fatigue decay on long efforts.
func indexHours(idx, effortKm, techScore float64, cfg Config) float64 {
	speed := cfg.IndexSpeedSlope*idx - cfg.IndexSpeedIntercept
	if speed < cfg.MinSpeedKmh {
		speed = cfg.MinSpeedKmh
	}

	if effortKm > cfg.DecayStartKm {
		decay := (effortKm - cfg.DecayStartKm) / cfg.DecayStepKm * cfg.DecayRatePerStep
		if decay > cfg.DecayMaxTotal {
			decay = cfg.DecayMaxTotal
		}
		speed *= 1 - decay
	}

	// Skilled runners lose less speed on technical ground: slide the penalty
	// from the hiker end of the curve to the elite end as the index grows.
	frac := (idx - 300) / 400
	frac = math.Max(0, math.Min(1, frac))
	penalty := cfg.TechPenalty[Hiker] + frac*(cfg.TechPenalty[Elite]-cfg.TechPenalty[Hiker])

	return effortKm / (speed * techFactor(penalty, techScore))
}

func techFactor(penalty, score float64) float64 {
	return 1 - penalty*score/100
}

// checkpointSplits emits cumulative times at fixed distance intervals by
// distributing the total time proportionally to per-segment effort cost, so
// steep sections slow the local pace instead of assuming one track-wide
// speed.
func checkpointSplits(track NormalizedTrack, total time.Duration, cfg Config) []Split {
	segs := segments(track)

	costs := make([]float64, len(segs))
	totalCost := 0.0
	totalKm := 0.0
	for i, s := range segs {
		cost := s.DistM / 1000
		if s.DeltaM > 0 {
			cost += s.DeltaM / cfg.ClimbPenaltyM
		}
		if s.DistM > 0 && math.Abs(s.DeltaM/s.DistM*100) > cfg.SteepSlopePct {
			cost *= cfg.SteepCostFactor
		}
		costs[i] = cost
		totalCost += cost
		totalKm += s.DistM / 1000
	}
	if totalCost <= 0 || totalKm <= 0 {
		return []Split{{DistanceKm: totalKm, CumulativeTime: total}}
	}

	splits := []Split{}
	next := cfg.SplitIntervalKm
	cumKm := 0.0
	cumCost := 0.0
	for i, s := range segs {
		segKm := s.DistM / 1000
		for next <= cumKm+segKm && segKm > 0 {
			frac := (next - cumKm) / segKm
			costAt := cumCost + frac*costs[i]
			splits = append(splits, Split{
				DistanceKm:     next,
				CumulativeTime: time.Duration(costAt / totalCost * float64(total)),
			})
			next += cfg.SplitIntervalKm
		}
		cumKm += segKm
		cumCost += costs[i]
	}
	splits = append(splits, Split{
		DistanceKm:     math.Round(cumKm*1000) / 1000,
		CumulativeTime: total,
	})
	return splits
}

func formatHours(hours float64) string {
	if hours > 99 {
		return ">99h"
	}
	h := int(hours)
	m := int((hours - float64(h)) * 60)
	return fmt.Sprintf("%dh%02d", h, m)
}
