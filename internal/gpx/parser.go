package gpx

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/Reubrecht/KairnGpx/internal/analysis"

	"github.com/tkrajina/gpxgo/gpx"
)

// Metadata is the descriptive header carried by a GPX file.
type Metadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Parse converts GPX bytes into a raw point sequence. Track segments are
// preferred; files exported by route planners carry only routes, so those
// are the fallback.
func Parse(data []byte) ([]analysis.RawPoint, Metadata, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, Metadata{}, fmt.Errorf("parse gpx: %w", err)
	}

	var points []analysis.RawPoint
	for _, track := range doc.Tracks {
		for _, seg := range track.Segments {
			for i := range seg.Points {
				points = append(points, toRawPoint(&seg.Points[i]))
			}
		}
	}
	if len(points) == 0 {
		for _, route := range doc.Routes {
			for i := range route.Points {
				points = append(points, toRawPoint(&route.Points[i]))
			}
		}
	}
	if len(points) == 0 {
		return nil, Metadata{}, fmt.Errorf("%w: gpx has no track or route points", analysis.ErrInsufficientData)
	}

	return points, Metadata{Name: doc.Name, Description: doc.Description}, nil
}

func toRawPoint(p *gpx.GPXPoint) analysis.RawPoint {
	raw := analysis.RawPoint{Lat: p.Latitude, Lon: p.Longitude}
	if p.Elevation.NotNull() {
		elev := p.Elevation.Value()
		raw.Elevation = &elev
	}
	if !p.Timestamp.IsZero() {
		ts := p.Timestamp
		raw.Time = &ts
	}
	return raw
}

// ContentHash is the sha256 of the uploaded bytes, used to dedupe re-uploads
// of the same file.
func ContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
