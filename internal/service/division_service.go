package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/workdesk/work-control-api/internal/models"
	appErrors "github.com/workdesk/work-control-api/pkg/errors"
)

type divisionStore interface {
	List(ctx context.Context) ([]models.Division, error)
	AllowedForUser(ctx context.Context, userID string) ([]int, error)
	ReplaceAllowedForUser(ctx context.Context, userID string, divisionIDs []int) error
}

// DivisionService exposes the division directory and per-user visibility.
type DivisionService struct {
	repo   divisionStore
	logger *zap.Logger
}

// NewDivisionService constructs the service.
func NewDivisionService(repo divisionStore, logger *zap.Logger) *DivisionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DivisionService{repo: repo, logger: logger}
}

// List returns every division.
func (s *DivisionService) List(ctx context.Context) ([]models.Division, error) {
	divisions, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list divisions")
	}
	return divisions, nil
}

// AllowedForUser returns the division ids a user may view.
func (s *DivisionService) AllowedForUser(ctx context.Context, userID string) ([]int, error) {
	ids, err := s.repo.AllowedForUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list allowed divisions")
	}
	return ids, nil
}

// ReplaceAllowed swaps a user's allowed-division set. The repository performs
// the delete-then-insert in a single transaction.
func (s *DivisionService) ReplaceAllowed(ctx context.Context, userID string, divisionIDs []int) error {
	if err := s.repo.ReplaceAllowedForUser(ctx, userID, dedupeInts(divisionIDs)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to replace allowed divisions")
	}
	return nil
}
