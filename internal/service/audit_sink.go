package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/workdesk/work-control-api/internal/models"
	"github.com/workdesk/work-control-api/pkg/jobs"
)

type auditWriter interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// AuditSink persists audit trail entries through a background queue so the
// request path never waits on the audit table. Entries that keep failing are
// logged and dropped after the queue's retry budget.
type AuditSink struct {
	repo   auditWriter
	queue  *jobs.Queue
	logger *zap.Logger
}

// NewAuditSink constructs the sink. Call Start before use.
func NewAuditSink(repo auditWriter, logger *zap.Logger) *AuditSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuditSink{repo: repo, logger: logger}
	s.queue = jobs.NewQueue("audit", s.persist, jobs.QueueConfig{Workers: 1, Logger: logger})
	return s
}

// Start launches the background worker. A nil sink is a no-op.
func (s *AuditSink) Start(ctx context.Context) {
	if s == nil {
		return
	}
	s.queue.Start(ctx)
}

// Stop drains the worker.
func (s *AuditSink) Stop() {
	if s == nil {
		return
	}
	s.queue.Stop()
}

// CreateAuditLog enqueues the entry. The error reports enqueue failure only;
// persistence happens asynchronously.
func (s *AuditSink) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if s == nil {
		return nil
	}
	return s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    log.Action,
		Payload: log,
	})
}

func (s *AuditSink) persist(ctx context.Context, job jobs.Job) error {
	log, ok := job.Payload.(*models.AuditLog)
	if !ok {
		s.logger.Warn("audit job with unexpected payload", zap.String("type", job.Type))
		return nil
	}
	return s.repo.CreateAuditLog(ctx, log)
}
