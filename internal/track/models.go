package track

import (
	"time"

	"github.com/Reubrecht/KairnGpx/internal/analysis"
)

// AnalyzeRequest is the JSON body of POST /tracks/analyze.
type AnalyzeRequest struct {
	Points   []analysis.RawPoint      `json:"points"`
	Profiles []analysis.RunnerProfile `json:"profiles,omitempty"`
}

// Record is a stored analysis, the platform-facing view of a track.
type Record struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Description     string                  `json:"description,omitempty"`
	ContentHash     string                  `json:"content_hash"`
	RouteType       string                  `json:"route_type"`
	DistanceKm      float64                 `json:"distance_km"`
	ElevationGainM  float64                 `json:"elevation_gain_m"`
	ElevationLossM  float64                 `json:"elevation_loss_m"`
	MaxAltitudeM    float64                 `json:"max_altitude_m"`
	TechnicityScore float64                 `json:"technicity_score"`
	Result          analysis.AnalysisResult `json:"result"`
	CreatedAt       time.Time               `json:"created_at"`
}
