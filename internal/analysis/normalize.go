package analysis

import (
	"fmt"

	"github.com/Reubrecht/KairnGpx/internal/shared/geo"
)

// Normalize cleans a raw point sequence into a NormalizedTrack: coordinate
// validation, consecutive-duplicate collapsing, timestamp monotonicity and
// elevation fill. Points are never reordered.
func Normalize(raw []RawPoint, cfg Config) (NormalizedTrack, error) {
	if len(raw) == 0 {
		return NormalizedTrack{}, ErrInsufficientData
	}

	for i, p := range raw {
		if p.Lat < -90 || p.Lat > 90 || p.Lon < -180 || p.Lon > 180 {
			return NormalizedTrack{}, fmt.Errorf("%w: point %d coordinates (%f, %f)", ErrMalformedPoint, i, p.Lat, p.Lon)
		}
		if p.Elevation != nil && (*p.Elevation < cfg.MinElevationM || *p.Elevation > cfg.MaxElevationM) {
			return NormalizedTrack{}, fmt.Errorf("%w: point %d elevation %.1f m", ErrMalformedPoint, i, *p.Elevation)
		}
	}

	// Collapse runs of identical coordinates, keeping the first occurrence.
	// A duplicate may still contribute its elevation when the survivor has none.
	kept := make([]RawPoint, 0, len(raw))
	for _, p := range raw {
		if n := len(kept); n > 0 && kept[n-1].Lat == p.Lat && kept[n-1].Lon == p.Lon {
			if kept[n-1].Elevation == nil && p.Elevation != nil {
				kept[n-1].Elevation = p.Elevation
			}
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) < 2 {
		return NormalizedTrack{}, ErrInsufficientData
	}

	// Timestamps, where present, must not regress.
	var lastSeen *RawPoint
	for i := range kept {
		if kept[i].Time == nil {
			continue
		}
		if lastSeen != nil && kept[i].Time.Before(*lastSeen.Time) {
			return NormalizedTrack{}, fmt.Errorf("%w: point %d", ErrTemporalOrder, i)
		}
		lastSeen = &kept[i]
	}

	points := make([]TrackPoint, len(kept))
	for i, p := range kept {
		points[i] = TrackPoint{Lat: p.Lat, Lon: p.Lon}
		if p.Time != nil {
			points[i].Time = *p.Time
		}
	}
	fillElevations(kept, points)

	return NormalizedTrack{Points: points}, nil
}

// fillElevations interpolates interior gaps along the path and clamps
// boundary gaps to the nearest known value. A track with no elevation at all
// stays at zero throughout.
func fillElevations(kept []RawPoint, points []TrackPoint) {
	known := make([]int, 0, len(kept))
	for i, p := range kept {
		if p.Elevation != nil {
			points[i].Elevation = *p.Elevation
			known = append(known, i)
		}
	}
	if len(known) == 0 {
		return
	}

	// Leading and trailing gaps copy the nearest known value.
	for i := 0; i < known[0]; i++ {
		points[i].Elevation = points[known[0]].Elevation
	}
	for i := known[len(known)-1] + 1; i < len(points); i++ {
		points[i].Elevation = points[known[len(known)-1]].Elevation
	}

	// Interior gaps interpolate linearly over along-path distance between the
	// two enclosing known points.
	for k := 0; k+1 < len(known); k++ {
		lo, hi := known[k], known[k+1]
		if hi-lo < 2 {
			continue
		}
		total := 0.0
		for i := lo; i < hi; i++ {
			total += geo.HaversineM(points[i].Lat, points[i].Lon, points[i+1].Lat, points[i+1].Lon)
		}
		run := 0.0
		for i := lo + 1; i < hi; i++ {
			run += geo.HaversineM(points[i-1].Lat, points[i-1].Lon, points[i].Lat, points[i].Lon)
			frac := 0.5
			if total > 0 {
				frac = run / total
			}
			points[i].Elevation = points[lo].Elevation + frac*(points[hi].Elevation-points[lo].Elevation)
		}
	}
}
