package analysis

import (
	"encoding/json"
	"time"
)

// RawPoint is a single GPS sample as delivered by a track source.
// Elevation and Time are optional; a nil elevation is interpolated during
// normalization and a zero Time means the recording carried no timestamps.
type RawPoint struct {
	Lat       float64    `json:"lat"`
	Lon       float64    `json:"lon"`
	Elevation *float64   `json:"elevation,omitempty"`
	Time      *time.Time `json:"time,omitempty"`
}

// TrackPoint is a normalized sample: elevation is always present, Time may be
// zero when the source had no timestamps.
type TrackPoint struct {
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Elevation float64   `json:"elevation"`
	Time      time.Time `json:"time,omitempty"`
}

// NormalizedTrack is an ordered, deduplicated point sequence with elevations
// filled in. Invariant: at least 2 points, no two consecutive points share
// both coordinates, timestamps (where present) are non-decreasing.
type NormalizedTrack struct {
	Points []TrackPoint
}

// GeometrySummary holds the derived metrics of a track. Produced once per
// track and never mutated.
type GeometrySummary struct {
	TotalDistanceKm   float64 `json:"total_distance_km"`
	ElevationGainM    float64 `json:"elevation_gain_m"`
	ElevationLossM    float64 `json:"elevation_loss_m"`
	MaxAltitudeM      float64 `json:"max_altitude_m"`
	MinAltitudeM      float64 `json:"min_altitude_m"`
	AvgAltitudeM      float64 `json:"avg_altitude_m"`
	MaxSlopePct       float64 `json:"max_slope_pct"`
	AvgUphillSlopePct float64 `json:"avg_uphill_slope_pct"`
	LongestClimbM     float64 `json:"longest_climb_m"`
}

// RouteType classifies the track topology.
type RouteType int

const (
	Loop RouteType = iota
	OutAndBack
	PointToPoint
)

func (r RouteType) String() string {
	switch r {
	case Loop:
		return "loop"
	case OutAndBack:
		return "out_and_back"
	default:
		return "point_to_point"
	}
}

func (r RouteType) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *RouteType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "loop":
		*r = Loop
	case "out_and_back":
		*r = OutAndBack
	default:
		*r = PointToPoint
	}
	return nil
}

// EnvironmentTag is a coarse terrain label inferred from the track's own
// geometry and elevation profile.
type EnvironmentTag string

const (
	TagHighMountain EnvironmentTag = "HIGH_MOUNTAIN"
	TagSkyrunning   EnvironmentTag = "SKYRUNNING"
	TagVertical     EnvironmentTag = "VERTICAL"
	TagForest       EnvironmentTag = "FOREST"
	TagCoastal      EnvironmentTag = "COASTAL"
	TagUrban        EnvironmentTag = "URBAN"
)

// TechnicityProfile scores how demanding the terrain is. Tags, MudIndex and
// Exposure are advisory heuristics and never cause an analysis to fail.
type TechnicityProfile struct {
	Score    float64          `json:"technicity_score"`
	Tags     []EnvironmentTag `json:"environment_tags"`
	MudIndex int              `json:"mud_index"`
	Exposure int              `json:"exposure"`
}

// Archetype is a reference runner speed profile used when no fitness index is
// supplied.
type Archetype string

const (
	Hiker  Archetype = "HIKER"
	Runner Archetype = "RUNNER"
	Elite  Archetype = "ELITE"
)

// Archetypes lists the standard profiles, slowest first.
var Archetypes = []Archetype{Hiker, Runner, Elite}

// RunnerProfile selects how a prediction is paced: a fixed archetype, an
// ITRA-like fitness index, or both (the index wins when present).
type RunnerProfile struct {
	Archetype    Archetype `json:"archetype,omitempty"`
	FitnessIndex *float64  `json:"fitness_index,omitempty"`
}

// Split is a cumulative time at a checkpoint distance.
type Split struct {
	DistanceKm     float64       `json:"distance_km"`
	CumulativeTime time.Duration `json:"cumulative_time"`
}

// PredictionResult is the estimated completion time for one profile.
type PredictionResult struct {
	Archetype     Archetype     `json:"archetype,omitempty"`
	FitnessIndex  *float64      `json:"fitness_index,omitempty"`
	EffortKm      float64       `json:"effort_km"`
	TotalTime     time.Duration `json:"total_time"`
	TotalTimeText string        `json:"total_time_text"`
	Splits        []Split       `json:"checkpoint_splits"`
}

// AnalysisResult is the complete output of Analyze.
type AnalysisResult struct {
	Geometry    GeometrySummary    `json:"geometry"`
	RouteType   RouteType          `json:"route_type"`
	Technicity  TechnicityProfile  `json:"technicity"`
	Predictions []PredictionResult `json:"predictions"`
}
