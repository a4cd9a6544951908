package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/workdesk/work-control-api/internal/models"
)

type auditRepoStub struct {
	mu      sync.Mutex
	entries []*models.AuditLog
	fails   int
}

func (s *auditRepoStub) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails > 0 {
		s.fails--
		return errors.New("table locked")
	}
	s.entries = append(s.entries, log)
	return nil
}

func (s *auditRepoStub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func TestAuditSinkPersistsAsynchronously(t *testing.T) {
	repo := &auditRepoStub{}
	sink := NewAuditSink(repo, nil)
	sink.Start(context.Background())
	defer sink.Stop()

	err := sink.CreateAuditLog(context.Background(), &models.AuditLog{Action: models.AuditActionRequestCreate})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return repo.count() == 1 }, time.Second, 5*time.Millisecond)
}

func TestAuditSinkRequiresStart(t *testing.T) {
	sink := NewAuditSink(&auditRepoStub{}, nil)
	err := sink.CreateAuditLog(context.Background(), &models.AuditLog{Action: models.AuditActionLogin})
	require.Error(t, err)
}
