// Package service provides the core business service that implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pitchside/oracle/internal/adapters/cache"
	"github.com/pitchside/oracle/internal/adapters/modelstore"
	eventqueue "github.com/pitchside/oracle/internal/adapters/mq/queue"
	workerpool "github.com/pitchside/oracle/internal/adapters/mq/worker"
	"github.com/pitchside/oracle/internal/adapters/repository"
	"github.com/pitchside/oracle/internal/domain/dedupe"
	"github.com/pitchside/oracle/internal/domain/insight"
	"github.com/pitchside/oracle/internal/domain/model"
	"github.com/pitchside/oracle/internal/domain/predict"
	"github.com/pitchside/oracle/internal/domain/stats"
	"github.com/pitchside/oracle/pkg/logger"
	"github.com/pitchside/oracle/pkg/metrics"
)

// ErrNotStarted is returned by operations invoked before Start.
var ErrNotStarted = errors.New("service not started")

// Service implements the prediction API: match ingestion, training,
// prediction and insight serving.
//
// The trained aggregate is the one shared mutable resource. A training cycle
// builds the new snapshot in isolation and publishes it with a single pointer
// swap only after recompute and persistence both succeed, so readers always
// observe either the fully-old or fully-new snapshot. trainMu makes training
// a single-writer critical section.
type Service struct {
	mu sync.RWMutex

	// Core components
	matchLog  repository.Store
	models    *modelstore.FileStore
	deduper   dedupe.Deduper
	queue     eventqueue.Queue
	pool      *workerpool.Pool
	predCache *cache.PredictionCache

	// Published aggregate
	current atomic.Pointer[stats.Snapshot]
	trainMu sync.Mutex

	// Configuration
	workerCount  int
	queueSize    int
	dedupeSize   int
	databasePath string
	modelPath    string

	// State
	started bool
	stopCh  chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of append workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the match-event queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithDatabasePath sets the sqlite match log location.
func WithDatabasePath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.databasePath = path
		}
	}
}

// WithModelPath sets the persisted model snapshot location.
func WithModelPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.modelPath = path
		}
	}
}

// WithPredictionCache attaches an optional prediction cache.
func WithPredictionCache(c *cache.PredictionCache) Option {
	return func(s *Service) {
		s.predCache = c
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  runtime.NumCPU() * 2,
		queueSize:    10000,
		dedupeSize:   50000,
		databasePath: "data/matches.db",
		modelPath:    "data/model.json",
		stopCh:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start opens storage, restores the last persisted snapshot and starts the
// ingestion pipeline.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting prediction service...")

	matchLog, err := repository.OpenSQLite(ctx, s.databasePath)
	if err != nil {
		return fmt.Errorf("open match log: %w", err)
	}
	s.matchLog = matchLog

	s.models = modelstore.NewFileStore(s.modelPath)
	snap, err := s.models.Load(ctx)
	if err != nil {
		_ = matchLog.Close()
		return fmt.Errorf("load model snapshot: %w", err)
	}
	s.current.Store(snap)
	metrics.UpdateTeamsTracked(len(snap.TeamStats))
	metrics.UpdateVenuesTracked(len(snap.VenueStats))

	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
		eventqueue.WithBufferSize(s.queueSize),
	)
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.matchLog)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "prediction service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Bool("modelLoaded", !snap.TrainedAt.IsZero()),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping prediction service...")

	if q, ok := s.queue.(*eventqueue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}
	if s.matchLog != nil {
		_ = s.matchLog.Close()
	}
	if s.predCache != nil {
		_ = s.predCache.Close()
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(ctx, "prediction service stopped")
}

// SeenAndRecord atomically checks if an event id was seen and records it if
// not. Returns true if the event was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordMatchDuplicate()
	}
	return seen
}

// Unrecord removes an event id from the seen list, allowing it to be retried.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// Enqueue submits a validated match record for asynchronous appending.
// Returns false on backpressure.
func (s *Service) Enqueue(ctx context.Context, m model.Match) bool {
	s.logger.Debug(ctx, "enqueueing match event",
		logger.String("eventID", m.EventID),
		logger.String("team1", m.Team1),
		logger.String("team2", m.Team2),
	)
	return s.queue.Enqueue(ctx, m)
}

// AddMatch validates and synchronously appends a match record, returning its
// sequential id. The ingested record affects predictions only after the next
// training cycle.
func (s *Service) AddMatch(ctx context.Context, m model.Match) (int64, error) {
	if s.matchLog == nil {
		return 0, ErrNotStarted
	}
	id, err := s.matchLog.Append(ctx, m)
	if err != nil {
		return 0, err
	}
	metrics.RecordMatchIngested()
	return id, nil
}

// Train recomputes the aggregates over the full stored history, persists the
// snapshot, backtests it, and publishes it. Only one train cycle runs at a
// time; readers are never blocked.
func (s *Service) Train(ctx context.Context) (model.TrainResult, error) {
	s.trainMu.Lock()
	defer s.trainMu.Unlock()

	if s.matchLog == nil {
		return model.TrainResult{}, ErrNotStarted
	}

	start := time.Now()

	history, err := s.matchLog.All(ctx)
	if err != nil {
		metrics.RecordTrainingFailure()
		return model.TrainResult{}, fmt.Errorf("read match history: %w", err)
	}

	snap, err := stats.Recompute(history)
	if err != nil {
		metrics.RecordTrainingFailure()
		return model.TrainResult{}, err
	}

	// Persist before publishing: a snapshot that failed to persist is not
	// durably trained and the previous one stays authoritative.
	if err := s.models.Save(ctx, snap); err != nil {
		metrics.RecordTrainingFailure()
		return model.TrainResult{}, fmt.Errorf("persist model snapshot: %w", err)
	}

	accuracy := predict.Accuracy(snap, history)

	s.current.Store(snap)

	metrics.RecordTraining()
	metrics.RecordTrainingDuration(float64(time.Since(start).Milliseconds()))
	metrics.UpdateModelAccuracy(accuracy)
	metrics.UpdateLastTrainedAt(snap.TrainedAt.Unix())
	metrics.UpdateTeamsTracked(len(snap.TeamStats))
	metrics.UpdateVenuesTracked(len(snap.VenueStats))
	metrics.UpdateMatchesTotal(len(history))

	s.logger.Info(ctx, "model trained",
		logger.Int("matches", len(history)),
		logger.Int("teams", len(snap.TeamStats)),
		logger.Int("venues", len(snap.VenueStats)),
		logger.Float64("accuracy", accuracy),
	)

	return model.TrainResult{
		Success:        true,
		MatchesTrained: len(history),
		TeamsAnalyzed:  len(snap.TeamStats),
		VenuesAnalyzed: len(snap.VenueStats),
		Accuracy:       accuracy,
		TrainedAt:      snap.TrainedAt,
	}, nil
}

// Predict computes win probabilities for team1 vs team2, optionally at a
// venue, from the currently published snapshot.
func (s *Service) Predict(ctx context.Context, team1, team2, venue string) (model.Prediction, error) {
	snap := s.current.Load()
	if snap == nil {
		return model.Prediction{}, ErrNotStarted
	}

	var key string
	if s.predCache != nil {
		key = cache.Key(snap.TrainedAt, team1, team2, venue)
		if p, ok := s.predCache.Get(ctx, key); ok {
			metrics.RecordPredictionServed()
			return p, nil
		}
	}

	start := time.Now()
	p := predict.Predict(snap, team1, team2, venue)
	metrics.RecordPredictionLatency(float64(time.Since(start).Milliseconds()))
	metrics.RecordPredictionServed()

	if s.predCache != nil {
		s.predCache.Set(ctx, key, p)
	}
	return p, nil
}

// Insights builds the per-team report from the published snapshot and the
// stored history.
func (s *Service) Insights(ctx context.Context, team string) (model.TeamInsight, error) {
	snap := s.current.Load()
	if snap == nil || s.matchLog == nil {
		return model.TeamInsight{}, ErrNotStarted
	}
	history, err := s.matchLog.All(ctx)
	if err != nil {
		return model.TeamInsight{}, fmt.Errorf("read match history: %w", err)
	}
	metrics.RecordInsightServed()
	return insight.Report(snap, history, team), nil
}

// GetStats returns service statistics for monitoring and the /stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	out := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if !s.started {
		return out
	}

	out["queueLength"] = s.queue.Len(ctx)
	if n, err := s.matchLog.Count(ctx); err == nil {
		out["totalMatches"] = n
		metrics.UpdateMatchesTotal(n)
	}

	if snap := s.current.Load(); snap != nil {
		out["teams"] = len(snap.TeamStats)
		out["venues"] = len(snap.VenueStats)
		out["tossImpact"] = snap.TossImpact
		out["teamStats"] = snap.TeamStats
		if !snap.TrainedAt.IsZero() {
			out["trainedAt"] = snap.TrainedAt
		}
	}
	return out
}

// Snapshot returns the currently published aggregate.
func (s *Service) Snapshot() *stats.Snapshot {
	return s.current.Load()
}
