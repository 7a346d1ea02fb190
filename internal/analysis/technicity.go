package analysis

import "math"

// ScoreTechnicity derives the rule-based difficulty profile of a track from
// its slope and altitude distributions. Steeper, more variable and higher
// tracks always score higher; tags, mud and exposure are advisory and never
// fail an analysis.
func ScoreTechnicity(summary GeometrySummary, track NormalizedTrack, cfg Config) TechnicityProfile {
	altRange := summary.MaxAltitudeM - summary.MinAltitudeM
	stddev := slopeStddev(track)

	// Each input runs through a saturating x/(x+k) normalizer so the score is
	// strictly increasing in every component yet bounded.
	score := 100 * (cfg.WeightMaxSlope*saturate(summary.MaxSlopePct, cfg.SatMaxSlopePct) +
		cfg.WeightAvgUphill*saturate(summary.AvgUphillSlopePct, cfg.SatAvgUphillPct) +
		cfg.WeightAltRange*saturate(altRange, cfg.SatAltRangeM) +
		cfg.WeightSlopeVar*saturate(stddev, cfg.SatSlopeStddev))
	score = math.Max(0, math.Min(100, score))

	return TechnicityProfile{
		Score:    score,
		Tags:     environmentTags(summary, cfg),
		MudIndex: mudIndex(summary),
		Exposure: exposure(summary, cfg),
	}
}

func saturate(x, k float64) float64 {
	if x <= 0 {
		return 0
	}
	return x / (x + k)
}

// environmentTags assigns coarse, non-exclusive terrain labels from altitude
// and slope thresholds. Altitude-based tags are monotonic: raising an
// altitude never removes one.
func environmentTags(s GeometrySummary, cfg Config) []EnvironmentTag {
	tags := []EnvironmentTag{}

	if s.MaxAltitudeM >= cfg.HighMountainAltM {
		tags = append(tags, TagHighMountain)
	}
	if s.MaxAltitudeM >= cfg.HighMountainAltM && s.MaxSlopePct > 30 {
		tags = append(tags, TagSkyrunning)
	}
	if s.TotalDistanceKm > 0 && s.ElevationGainM/s.TotalDistanceKm > cfg.VerticalGainPerKm {
		tags = append(tags, TagVertical)
	}
	if s.AvgAltitudeM >= 300 && s.AvgAltitudeM <= 1500 && s.AvgUphillSlopePct >= 5 {
		tags = append(tags, TagForest)
	}
	if s.MinAltitudeM <= 30 {
		tags = append(tags, TagCoastal)
	}
	if s.AvgAltitudeM < 200 && s.MaxSlopePct < 3 {
		tags = append(tags, TagUrban)
	}
	return tags
}

// mudIndex estimates on a 0-3 scale how mud-prone the terrain is: sustained
// uphill gradients at low and mid altitude correlate with soft ground.
// Best-effort heuristic.
func mudIndex(s GeometrySummary) int {
	switch {
	case s.AvgUphillSlopePct >= 10 && s.AvgAltitudeM < 1200:
		return 3
	case s.AvgUphillSlopePct >= 10:
		return 2
	case s.AvgUphillSlopePct >= 5:
		return 1
	default:
		return 0
	}
}

// exposure estimates on a 0-3 scale how exposed the route is, from slope and
// altitude extremity. Best-effort heuristic.
func exposure(s GeometrySummary, cfg Config) int {
	switch {
	case s.MaxSlopePct > 40 && s.MaxAltitudeM > cfg.HighMountainAltM+500:
		return 3
	case s.MaxSlopePct > 30 && s.MaxAltitudeM > cfg.HighMountainAltM:
		return 2
	case s.MaxSlopePct > 25 || s.MaxAltitudeM > cfg.HighMountainAltM:
		return 1
	default:
		return 0
	}
}
