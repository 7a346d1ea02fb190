package analysis

import (
	"github.com/Reubrecht/KairnGpx/internal/shared/geo"
)

// ClassifyRoute determines the track topology. A route is a loop candidate
// when start and end sit within a small fraction of the total distance;
// self-overlap sampling then separates a there-and-back trail from a true
// loop. Sampling is capped so degenerate tracks cannot cause unbounded work.
func ClassifyRoute(track NormalizedTrack, summary GeometrySummary, cfg Config) RouteType {
	first := track.Points[0]
	last := track.Points[len(track.Points)-1]
	closureM := geo.HaversineM(first.Lat, first.Lon, last.Lat, last.Lon)
	totalM := summary.TotalDistanceKm * 1000

	if totalM <= 0 {
		return Loop
	}
	if closureM > cfg.LoopClosureFraction*totalM {
		return PointToPoint
	}

	if overlapRatio(track, totalM, cfg) > cfg.OverlapRatio {
		return OutAndBack
	}
	return Loop
}

// overlapRatio samples the outbound half of the track at regular distance
// intervals and reports the fraction of samples whose nearest return-half
// point lies within the nearness threshold.
func overlapRatio(track NormalizedTrack, totalM float64, cfg Config) float64 {
	cum := make([]float64, len(track.Points))
	for i := 1; i < len(track.Points); i++ {
		a, b := track.Points[i-1], track.Points[i]
		cum[i] = cum[i-1] + geo.HaversineM(a.Lat, a.Lon, b.Lat, b.Lon)
	}

	halfM := totalM / 2
	split := 1
	for split < len(cum) && cum[split] < halfM {
		split++
	}
	if split >= len(track.Points)-1 {
		return 0
	}
	returnPts := track.Points[split:]

	samples := cfg.OverlapSamples
	if samples > split {
		samples = split
	}
	if samples < 1 {
		return 0
	}
	step := halfM / float64(samples)

	near := 0
	idx := 0
	for k := 0; k < samples; k++ {
		target := float64(k) * step
		for idx+1 <= split && cum[idx+1] <= target {
			idx++
		}
		p := track.Points[idx]

		best := -1.0
		for _, q := range returnPts {
			d := geo.HaversineM(p.Lat, p.Lon, q.Lat, q.Lon)
			if best < 0 || d < best {
				best = d
			}
		}
		if best >= 0 && best <= cfg.OverlapNearnessM {
			near++
		}
	}
	return float64(near) / float64(samples)
}
