package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/workdesk/work-control-api/internal/aggregate"
	"github.com/workdesk/work-control-api/internal/models"
)

type assignmentFeed interface {
	OpenByDivision(ctx context.Context, divisionID int) ([]models.AssignmentRow, error)
}

// WorkService composes the per-division cache with the assignment feed and
// exposes the multi-division merged work record view.
type WorkService struct {
	feed      assignmentFeed
	cache     *DivisionCache
	respCache *CacheService
	logger    *zap.Logger
}

// NewWorkService constructs the service.
func NewWorkService(feed assignmentFeed, cache *DivisionCache, respCache *CacheService, logger *zap.Logger) *WorkService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = NewDivisionCache(0)
	}
	return &WorkService{feed: feed, cache: cache, respCache: respCache, logger: logger}
}

// divisionWorks returns the aggregated record list for one division, serving
// from the cache when fresh. Concurrent misses may re-query storage; the
// subsequent Set replaces the key atomically, which is the only guarantee the
// contract requires.
func (s *WorkService) divisionWorks(ctx context.Context, divisionID int) ([]models.WorkRecord, error) {
	if records, ok := s.cache.Works(divisionID); ok {
		return records, nil
	}

	rows, err := s.feed.OpenByDivision(ctx, divisionID)
	if err != nil {
		return nil, err
	}
	records := aggregate.Rows(rows)
	s.cache.SetWorks(divisionID, records)
	return records, nil
}

// GetWorkRecords merges the cached per-division results for the given
// division set. Duplicated ids are collapsed before processing; an empty set
// yields an empty result without touching storage. The concatenated records
// run through a second aggregation pass so a record present in two divisions
// with identical key fields merges again.
func (s *WorkService) GetWorkRecords(ctx context.Context, divisionIDs []int) ([]models.WorkRecord, error) {
	ids := dedupeInts(divisionIDs)
	if len(ids) == 0 {
		return []models.WorkRecord{}, nil
	}

	var combined []models.WorkRecord
	for _, id := range ids {
		records, err := s.divisionWorks(ctx, id)
		if err != nil {
			return nil, err
		}
		combined = append(combined, records...)
	}

	return aggregate.Records(combined), nil
}

// FindRecord locates one work record by document number within the given
// division set. A nil result means the document is not visible there.
func (s *WorkService) FindRecord(ctx context.Context, divisionIDs []int, documentNumber string) (*models.WorkRecord, error) {
	records, err := s.GetWorkRecords(ctx, divisionIDs)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].DocumentNumber == documentNumber {
			return &records[i], nil
		}
	}
	return nil, nil
}

// Executors returns the distinct executor names of a division's open works,
// first-appearance order, cached beside the record list.
func (s *WorkService) Executors(ctx context.Context, divisionID int) ([]string, error) {
	if names, ok := s.cache.Executors(divisionID); ok {
		return names, nil
	}

	records, err := s.divisionWorks(ctx, divisionID)
	if err != nil {
		return nil, err
	}
	names := []string{}
	seen := make(map[string]struct{})
	for _, rec := range records {
		for _, name := range rec.Executors {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	s.cache.SetExecutors(divisionID, names)
	return names, nil
}

// Approvers returns the distinct approver names of a division's open works.
func (s *WorkService) Approvers(ctx context.Context, divisionID int) ([]string, error) {
	if names, ok := s.cache.Approvers(divisionID); ok {
		return names, nil
	}

	records, err := s.divisionWorks(ctx, divisionID)
	if err != nil {
		return nil, err
	}
	names := []string{}
	seen := make(map[string]struct{})
	for _, rec := range records {
		if rec.Approver == "" {
			continue
		}
		if _, ok := seen[rec.Approver]; ok {
			continue
		}
		seen[rec.Approver] = struct{}{}
		names = append(names, rec.Approver)
	}
	s.cache.SetApprovers(divisionID, names)
	return names, nil
}

// ClearCache drops every cached artifact of a division, forcing the next read
// to re-query storage. The response payload cache is invalidated alongside.
func (s *WorkService) ClearCache(ctx context.Context, divisionID int) {
	s.cache.Invalidate(divisionID)
	if s.respCache.Enabled() {
		if err := s.respCache.Invalidate(ctx, "works:*"); err != nil {
			s.logger.Warn("response cache invalidation failed",
				zap.Int("division_id", divisionID), zap.Error(err))
		}
	}
	s.logger.Info("division cache cleared", zap.Int("division_id", divisionID))
}

func dedupeInts(ids []int) []int {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
