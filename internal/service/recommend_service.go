package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/samikd35/RebootEarth-Dana/internal/cache"
	"github.com/samikd35/RebootEarth-Dana/internal/ml"
	"github.com/samikd35/RebootEarth-Dana/internal/models"
	"github.com/samikd35/RebootEarth-Dana/internal/resolver"
	"github.com/samikd35/RebootEarth-Dana/internal/stats"
)

// RecommendService orchestrates one recommendation cycle: fingerprint,
// cache, feature resolution, classification, response assembly. Safe for
// concurrent use.
type RecommendService struct {
	resolver *resolver.Resolver
	engine   *ml.Engine
	cache    *cache.RecommendationCache

	// Running counters for the stats surface. Updated atomically; they may
	// be momentarily inconsistent with each other under load but never
	// block the request path.
	totalRequests  atomic.Int64
	cacheHits      atomic.Int64
	totalLatencyUs atomic.Int64
	latency        *stats.LatencyTracker
}

// NewRecommendService creates a new recommendation orchestrator
func NewRecommendService(res *resolver.Resolver, engine *ml.Engine, memo *cache.RecommendationCache) *RecommendService {
	return &RecommendService{
		resolver: res,
		engine:   engine,
		cache:    memo,
		latency:  stats.NewLatencyTracker(1024),
	}
}

// Recommend resolves a crop recommendation for one request. Malformed
// coordinates fail with models.InputError; classification failures surface
// as models.ResolutionError carrying the coordinate.
func (s *RecommendService) Recommend(ctx context.Context, req models.RecommendationRequest) (models.RecommendationResponse, error) {
	start := time.Now()

	if err := req.Coordinate.Validate(); err != nil {
		return models.RecommendationResponse{}, err
	}

	compute := func() (models.RecommendationResponse, error) {
		return s.compute(ctx, req)
	}

	var (
		response models.RecommendationResponse
		hit      bool
		err      error
	)
	if req.UseCache {
		response, hit, err = s.cache.GetOrCompute(models.FingerprintOf(req).Key(), compute)
	} else {
		response, err = compute()
	}
	if err != nil {
		return models.RecommendationResponse{}, err
	}

	elapsed := time.Since(start)
	response.CacheHit = hit
	response.ProcessingTimeMs = float64(elapsed.Microseconds()) / 1000.0

	s.totalRequests.Add(1)
	if hit {
		s.cacheHits.Add(1)
	}
	s.totalLatencyUs.Add(elapsed.Microseconds())
	s.latency.Record(response.ProcessingTimeMs)

	return response, nil
}

// compute runs the resolve + classify path and assembles a response. The
// resolver never fails; classification failures are wrapped with the
// offending coordinate so batch callers can attribute them.
func (s *RecommendService) compute(ctx context.Context, req models.RecommendationRequest) (models.RecommendationResponse, error) {
	features, meta := s.resolver.Resolve(ctx, req.Coordinate, req.Year, req.BufferMeters)

	classification, err := s.engine.Classify(features)
	if err != nil {
		return models.RecommendationResponse{}, &models.ResolutionError{Coordinate: req.Coordinate, Err: err}
	}

	return models.RecommendationResponse{
		Coordinate:     req.Coordinate,
		Features:       features,
		Classification: classification,
		Resolver:       meta,
	}, nil
}

// Stats snapshots the orchestrator's running counters.
func (s *RecommendService) Stats() models.ServiceStats {
	total := s.totalRequests.Load()
	avg := 0.0
	if total > 0 {
		avg = float64(s.totalLatencyUs.Load()) / float64(total) / 1000.0
	}
	return models.ServiceStats{
		TotalRequests:    total,
		CacheHits:        s.cacheHits.Load(),
		AverageLatencyMs: avg,
		P95LatencyMs:     s.latency.Percentile(95),
		CacheSize:        s.cache.Len(),
		CacheCapacity:    s.cache.Capacity(),
		FeatureSource:    s.resolver.Mode(),
	}
}
