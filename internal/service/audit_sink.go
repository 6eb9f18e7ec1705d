package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"rentdesk/internal/domain"
	"rentdesk/internal/logger"
	"rentdesk/internal/port"
)

const auditWriteTimeout = 5 * time.Second

// AuditSinkConfig holds settings for the asynchronous audit sink.
type AuditSinkConfig struct {
	BufferSize int
	Workers    int
}

// AsyncAuditSink persists generated-report records off the request path.
// A full buffer drops the record with a warning.
type AsyncAuditSink struct {
	repo  port.GeneratedReportRepository
	cfg   AuditSinkConfig
	log   *zap.Logger
	queue chan domain.GeneratedReport
	wg    sync.WaitGroup

	mu      sync.RWMutex
	closed  bool
	started bool
}

// NewAsyncAuditSink creates a sink writing into repo. Call Start before use.
func NewAsyncAuditSink(repo port.GeneratedReportRepository, cfg AuditSinkConfig, log *zap.Logger) *AsyncAuditSink {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &AsyncAuditSink{
		repo:  repo,
		cfg:   cfg,
		log:   logger.OrNop(log),
		queue: make(chan domain.GeneratedReport, cfg.BufferSize),
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (s *AsyncAuditSink) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.closed {
		return
	}
	s.started = true

	for i := 0; i < s.cfg.Workers; i++ {
		s.wg.Add(1)
		go s.work()
	}
	s.log.Info("audit sink started",
		zap.Int("workers", s.cfg.Workers),
		zap.Int("buffer", s.cfg.BufferSize),
	)
}

// Record enqueues rep without blocking.
func (s *AsyncAuditSink) Record(rep domain.GeneratedReport) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.log.Warn("audit sink closed, dropping record", zap.String("report", string(rep.Type)))
		return
	}

	select {
	case s.queue <- rep:
	default:
		s.log.Warn("audit buffer full, dropping record",
			zap.String("report", string(rep.Type)),
			zap.String("file", rep.FileName),
		)
	}
}

// Close stops accepting records and waits for the queue to drain or for ctx
// to expire.
func (s *AsyncAuditSink) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	started := s.started
	s.mu.Unlock()

	if !started {
		for rep := range s.queue {
			s.write(rep)
		}
		return nil
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("audit sink drained")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *AsyncAuditSink) work() {
	defer s.wg.Done()
	for rep := range s.queue {
		s.write(rep)
	}
}

func (s *AsyncAuditSink) write(rep domain.GeneratedReport) {
	// Fresh context so pending records are written during shutdown.
	ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
	defer cancel()

	if err := s.repo.Create(ctx, &rep); err != nil {
		s.log.Error("failed to persist generated report",
			zap.String("report", string(rep.Type)),
			zap.String("file", rep.FileName),
			zap.Error(err),
		)
		return
	}
	s.log.Debug("generated report recorded",
		zap.String("id", rep.ID.String()),
		zap.String("report", string(rep.Type)),
	)
}
