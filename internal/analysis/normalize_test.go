package analysis

import (
	"errors"
	"math"
	"testing"
	"time"
)

func fptr(v float64) *float64 { return &v }

func tptr(v time.Time) *time.Time { return &v }

func TestNormalizeCollapsesDuplicates(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	raw := []RawPoint{
		{Lat: 45.0, Lon: 6.0, Elevation: fptr(1000), Time: tptr(t0)},
		{Lat: 45.0, Lon: 6.0, Elevation: fptr(1001), Time: tptr(t0.Add(time.Second))},
		{Lat: 45.001, Lon: 6.0, Elevation: fptr(1010)},
	}
	track, err := Normalize(raw, DefaultConfig())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(track.Points) != 2 {
		t.Fatalf("expected 2 points after dedup, got %d", len(track.Points))
	}
	if !track.Points[0].Time.Equal(t0) {
		t.Fatalf("expected first occurrence timestamp to survive")
	}
	if track.Points[0].Elevation != 1000 {
		t.Fatalf("expected first occurrence elevation to survive, got %v", track.Points[0].Elevation)
	}
}

func TestNormalizeInsufficientData(t *testing.T) {
	raw := []RawPoint{
		{Lat: 45.0, Lon: 6.0},
		{Lat: 45.0, Lon: 6.0},
	}
	_, err := Normalize(raw, DefaultConfig())
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	if _, err := Normalize(nil, DefaultConfig()); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData for empty input, got %v", err)
	}
}

func TestNormalizeMalformedPoint(t *testing.T) {
	cases := [][]RawPoint{
		{{Lat: 95, Lon: 6}, {Lat: 45, Lon: 6}},
		{{Lat: 45, Lon: 200}, {Lat: 45, Lon: 6}},
		{{Lat: 45, Lon: 6, Elevation: fptr(12000)}, {Lat: 45.001, Lon: 6}},
		{{Lat: 45, Lon: 6, Elevation: fptr(-1000)}, {Lat: 45.001, Lon: 6}},
	}
	for i, raw := range cases {
		if _, err := Normalize(raw, DefaultConfig()); !errors.Is(err, ErrMalformedPoint) {
			t.Fatalf("case %d: expected ErrMalformedPoint, got %v", i, err)
		}
	}
}

func TestNormalizeTemporalOrder(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	raw := []RawPoint{
		{Lat: 45.0, Lon: 6.0, Time: tptr(t0)},
		{Lat: 45.001, Lon: 6.0, Time: tptr(t0.Add(-time.Minute))},
	}
	if _, err := Normalize(raw, DefaultConfig()); !errors.Is(err, ErrTemporalOrder) {
		t.Fatalf("expected ErrTemporalOrder, got %v", err)
	}
}

func TestNormalizeTolerableWithoutTimestamps(t *testing.T) {
	raw := []RawPoint{
		{Lat: 45.0, Lon: 6.0},
		{Lat: 45.001, Lon: 6.0},
	}
	track, err := Normalize(raw, DefaultConfig())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if len(track.Points) != 2 {
		t.Fatalf("expected 2 points")
	}
}

func TestNormalizeInterpolatesInteriorElevation(t *testing.T) {
	raw := []RawPoint{
		{Lat: 45.000, Lon: 6.0, Elevation: fptr(100)},
		{Lat: 45.001, Lon: 6.0},
		{Lat: 45.002, Lon: 6.0, Elevation: fptr(200)},
	}
	track, err := Normalize(raw, DefaultConfig())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	// The gap sits halfway along the path.
	if math.Abs(track.Points[1].Elevation-150) > 0.5 {
		t.Fatalf("expected ~150 m interpolated, got %v", track.Points[1].Elevation)
	}
}

func TestNormalizeClampsBoundaryElevation(t *testing.T) {
	raw := []RawPoint{
		{Lat: 45.000, Lon: 6.0},
		{Lat: 45.001, Lon: 6.0, Elevation: fptr(500)},
		{Lat: 45.002, Lon: 6.0},
	}
	track, err := Normalize(raw, DefaultConfig())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if track.Points[0].Elevation != 500 || track.Points[2].Elevation != 500 {
		t.Fatalf("expected boundary clamp to 500, got %v and %v",
			track.Points[0].Elevation, track.Points[2].Elevation)
	}
}

func TestNormalizeNoElevationAtAll(t *testing.T) {
	raw := []RawPoint{
		{Lat: 45.000, Lon: 6.0},
		{Lat: 45.001, Lon: 6.0},
	}
	track, err := Normalize(raw, DefaultConfig())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	for _, p := range track.Points {
		if p.Elevation != 0 {
			t.Fatalf("expected zero elevation, got %v", p.Elevation)
		}
	}
}
