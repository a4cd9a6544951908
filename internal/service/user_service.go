package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/workdesk/work-control-api/internal/dto"
	"github.com/workdesk/work-control-api/internal/models"
	appErrors "github.com/workdesk/work-control-api/pkg/errors"
)

type userStore interface {
	Register(ctx context.Context, user *models.User, divisionIDs []int) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// UserService handles user provisioning.
type UserService struct {
	repo   userStore
	logger *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(repo userStore, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, logger: logger}
}

// Register creates a user together with their allowed-division set in one
// transaction; a failure leaves neither behind.
func (s *UserService) Register(ctx context.Context, req dto.RegisterUserRequest, actor *models.JWTClaims) (*models.User, error) {
	role := models.UserRole(strings.ToUpper(strings.TrimSpace(string(req.Role))))
	switch role {
	case models.RoleAdmin, models.RoleExecutor, models.RoleController, models.RoleApprover:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Role:         role,
		Active:       true,
	}
	if user.Email == "" || user.FullName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "email and full name are required")
	}

	if err := s.repo.Register(ctx, user, req.DivisionIDs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to register user")
	}

	if actor != nil {
		if err := s.repo.CreateAuditLog(ctx, &models.AuditLog{
			UserID:     &actor.UserID,
			Action:     models.AuditActionUserCreate,
			Resource:   "user",
			ResourceID: &user.ID,
			NewValues:  []byte(`{"role":"` + string(role) + `"}`),
			IPAddress:  "system",
			UserAgent:  "user-service",
			CreatedAt:  time.Now().UTC(),
		}); err != nil {
			s.logger.Warn("failed to record user create audit log", zap.Error(err))
		}
	}

	return user, nil
}

// Get returns one user by id.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load user")
	}
	return user, nil
}
