package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/workdesk/work-control-api/internal/models"
	appErrors "github.com/workdesk/work-control-api/pkg/errors"
)

type authRepoStub struct {
	user          *models.User
	lastLoginSet  bool
	auditRecorded bool
}

func (s *authRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, sql.ErrNoRows
	}
	return s.user, nil
}

func (s *authRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, sql.ErrNoRows
	}
	return s.user, nil
}

func (s *authRepoStub) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	s.lastLoginSet = true
	return nil
}

func (s *authRepoStub) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	s.auditRecorded = true
	return nil
}

func authTestConfig() AuthConfig {
	return AuthConfig{AccessTokenSecret: "test-secret", AccessTokenExpiry: time.Hour, Issuer: "work-control-api"}
}

func activeUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "u-1",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
		FullName:     "Alice",
		Role:         models.RoleExecutor,
		Active:       true,
	}
}

func TestAuthServiceLoginIssuesValidToken(t *testing.T) {
	repo := &authRepoStub{user: activeUser(t, "s3cret-pass")}
	svc := NewAuthService(repo, nil, nil, authTestConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.NotEmpty(t, res.AccessToken)
	assert.True(t, repo.lastLoginSet)
	assert.True(t, repo.auditRecorded)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, models.RoleExecutor, claims.Role)
	assert.Equal(t, "Alice", claims.FullName)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := &authRepoStub{user: activeUser(t, "s3cret-pass")}
	svc := NewAuthService(repo, nil, nil, authTestConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	require.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(&authRepoStub{}, nil, nil, authTestConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	require.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	user := activeUser(t, "s3cret-pass")
	user.Active = false
	svc := NewAuthService(&authRepoStub{user: user}, nil, nil, authTestConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "s3cret-pass"})
	require.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsTampering(t *testing.T) {
	repo := &authRepoStub{user: activeUser(t, "s3cret-pass")}
	svc := NewAuthService(repo, nil, nil, authTestConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	other := NewAuthService(repo, nil, nil, AuthConfig{AccessTokenSecret: "other-secret", AccessTokenExpiry: time.Hour})
	_, err = other.ValidateToken(res.AccessToken)
	require.Error(t, err)
}

func TestAuthServiceValidateTokenExpired(t *testing.T) {
	repo := &authRepoStub{user: activeUser(t, "s3cret-pass")}
	cfg := authTestConfig()
	cfg.AccessTokenExpiry = -time.Minute
	svc := NewAuthService(repo, nil, nil, cfg)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(res.AccessToken)
	require.Error(t, err)
}
