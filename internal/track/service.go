package track

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Reubrecht/KairnGpx/internal/analysis"
	"github.com/Reubrecht/KairnGpx/internal/db"
	"github.com/Reubrecht/KairnGpx/internal/gpx"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Service struct {
	db    db.Querier
	cache *redis.Client
	cfg   analysis.Config
	ttl   time.Duration
}

func NewService(q db.Querier, cache *redis.Client, cfg analysis.Config, ttl time.Duration) *Service {
	return &Service{db: q, cache: cache, cfg: cfg, ttl: ttl}
}

// Analyze runs the pipeline on caller-supplied points without touching
// storage.
func (s *Service) Analyze(points []analysis.RawPoint, profiles []analysis.RunnerProfile) (analysis.AnalysisResult, error) {
	return analysis.Analyze(points, profiles, s.cfg)
}

// Upload parses a GPX file, analyzes it and stores the result. Re-uploads of
// an identical file hit the cache and skip recomputation.
func (s *Service) Upload(ctx context.Context, filename string, data []byte) (Record, error) {
	points, meta, err := gpx.Parse(data)
	if err != nil {
		return Record{}, err
	}

	hash := gpx.ContentHash(data)
	result, ok := s.cachedResult(ctx, hash)
	if !ok {
		result, err = analysis.Analyze(points, nil, s.cfg)
		if err != nil {
			return Record{}, err
		}
		s.storeCachedResult(ctx, hash, result)
	}

	name := meta.Name
	if name == "" {
		name = filename
	}
	rec := Record{
		ID:              uuid.NewString(),
		Name:            name,
		Description:     meta.Description,
		ContentHash:     hash,
		RouteType:       result.RouteType.String(),
		DistanceKm:      result.Geometry.TotalDistanceKm,
		ElevationGainM:  result.Geometry.ElevationGainM,
		ElevationLossM:  result.Geometry.ElevationLossM,
		MaxAltitudeM:    result.Geometry.MaxAltitudeM,
		TechnicityScore: result.Technicity.Score,
		Result:          result,
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return Record{}, err
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO tracks (id, name, description, content_hash, route_type, distance_km, elevation_gain_m, elevation_loss_m, max_altitude_m, technicity_score, result)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at
	`, rec.ID, rec.Name, rec.Description, rec.ContentHash, rec.RouteType,
		rec.DistanceKm, rec.ElevationGainM, rec.ElevationLossM, rec.MaxAltitudeM,
		rec.TechnicityScore, payload)
	if err := row.Scan(&rec.CreatedAt); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	var payload []byte
	row := s.db.QueryRow(ctx, `
		SELECT id, name, description, content_hash, route_type, distance_km, elevation_gain_m, elevation_loss_m, max_altitude_m, technicity_score, result, created_at
		FROM tracks WHERE id=$1
	`, id)
	if err := row.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.ContentHash, &rec.RouteType,
		&rec.DistanceKm, &rec.ElevationGainM, &rec.ElevationLossM, &rec.MaxAltitudeM,
		&rec.TechnicityScore, &payload, &rec.CreatedAt); err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal(payload, &rec.Result); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Service) cachedResult(ctx context.Context, hash string) (analysis.AnalysisResult, bool) {
	var result analysis.AnalysisResult
	if s.cache == nil {
		return result, false
	}
	raw, err := s.cache.Get(ctx, cacheKey(hash)).Bytes()
	if err != nil {
		return result, false
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return result, false
	}
	return result, true
}

func (s *Service) storeCachedResult(ctx context.Context, hash string, result analysis.AnalysisResult) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, cacheKey(hash), raw, s.ttl).Err()
}

func cacheKey(hash string) string {
	return "analysis:" + hash
}
