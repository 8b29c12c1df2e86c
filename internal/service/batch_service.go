package service

import (
	"context"
	"time"

	"github.com/samikd35/RebootEarth-Dana/internal/models"
)

// MaxBatchSize is the pre-flight cap on batch requests; larger batches are
// rejected before any item is dispatched.
const MaxBatchSize = 100

// BatchService fans recommendation requests across a bounded worker pool
// with per-item isolation: one item's failure or timeout never affects the
// others, and results stay index-aligned with the input.
type BatchService struct {
	recommend      *RecommendService
	maxConcurrency int
	itemTimeout    time.Duration
}

// NewBatchService creates a new batch dispatcher
func NewBatchService(recommend *RecommendService, maxConcurrency int, itemTimeout time.Duration) *BatchService {
	if maxConcurrency <= 0 {
		maxConcurrency = 10
	}
	if itemTimeout <= 0 {
		itemTimeout = 30 * time.Second
	}
	return &BatchService{
		recommend:      recommend,
		maxConcurrency: maxConcurrency,
		itemTimeout:    itemTimeout,
	}
}

type itemOutcome struct {
	response models.RecommendationResponse
	err      error
}

// RecommendBatch runs the orchestrator over all requests. The result slice
// always has one entry per input index. A per-item timeout abandons that
// item's wait only: the underlying computation keeps running detached and
// still populates the cache for later callers.
func (s *BatchService) RecommendBatch(ctx context.Context, requests []models.RecommendationRequest) ([]models.BatchItemResult, models.BatchMetadata, error) {
	if len(requests) > MaxBatchSize {
		return nil, models.BatchMetadata{}, models.ErrBatchSizeExceeded
	}

	start := time.Now()

	sem := make(chan struct{}, s.maxConcurrency)
	outcomes := make([]chan itemOutcome, len(requests))

	for i, req := range requests {
		// Buffered so an abandoned worker can still complete its send.
		outcomes[i] = make(chan itemOutcome, 1)
		go func(i int, req models.RecommendationRequest, out chan<- itemOutcome) {
			sem <- struct{}{}
			defer func() { <-sem }()

			// Detached from the batch context: a timed-out item's work is
			// left running to warm the cache.
			response, err := s.recommend.Recommend(context.WithoutCancel(ctx), req)
			out <- itemOutcome{response: response, err: err}
		}(i, req, outcomes[i])
	}

	results := make([]models.BatchItemResult, len(requests))
	successful := 0
	cacheHits := 0

	timeout := time.NewTimer(s.itemTimeout)
	defer timeout.Stop()

	for i := range requests {
		// Each item gets a full itemTimeout window from the moment its
		// result is awaited.
		if !timeout.Stop() {
			select {
			case <-timeout.C:
			default:
			}
		}
		timeout.Reset(s.itemTimeout)

		select {
		case outcome := <-outcomes[i]:
			if outcome.err != nil {
				results[i] = models.BatchItemResult{Index: i, Error: outcome.err.Error()}
				continue
			}
			response := outcome.response
			results[i] = models.BatchItemResult{Index: i, Response: &response}
			successful++
			if response.CacheHit {
				cacheHits++
			}
		case <-timeout.C:
			results[i] = models.BatchItemResult{Index: i, Error: models.ErrItemTimeout.Error()}
		}
	}

	totalMs := float64(time.Since(start).Microseconds()) / 1000.0
	meta := models.BatchMetadata{
		TotalLocations: len(requests),
		Successful:     successful,
		TotalTimeMs:    totalMs,
		CacheHits:      cacheHits,
	}
	if len(requests) > 0 {
		meta.AverageTimeMs = totalMs / float64(len(requests))
	}

	return results, meta, nil
}
