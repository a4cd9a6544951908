package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workdesk/work-control-api/internal/dto"
	"github.com/workdesk/work-control-api/internal/middleware"
	"github.com/workdesk/work-control-api/internal/models"
	"github.com/workdesk/work-control-api/internal/service"
	appErrors "github.com/workdesk/work-control-api/pkg/errors"
)

type requestWorkflowMock struct {
	createResp  *models.WorkRequest
	createErr   error
	lastCreate  service.CreateRequestParams
	resolveResp *models.WorkRequest
	resolveErr  error
	lastStatus  models.RequestStatus
	lastActor   string
	inboxResp   []models.WorkRequest
	listResp    []models.WorkRequest
	deleteErr   error
}

func (m *requestWorkflowMock) Create(ctx context.Context, params service.CreateRequestParams) (*models.WorkRequest, error) {
	m.lastCreate = params
	return m.createResp, m.createErr
}

func (m *requestWorkflowMock) ListByDocument(ctx context.Context, documentNumber string) ([]models.WorkRequest, error) {
	return m.listResp, nil
}

func (m *requestWorkflowMock) Inbox(ctx context.Context, receiver string) ([]models.WorkRequest, error) {
	m.lastActor = receiver
	return m.inboxResp, nil
}

func (m *requestWorkflowMock) Resolve(ctx context.Context, id int64, status models.RequestStatus, actor string) (*models.WorkRequest, error) {
	m.lastStatus = status
	m.lastActor = actor
	return m.resolveResp, m.resolveErr
}

func (m *requestWorkflowMock) Update(ctx context.Context, id int64, params service.UpdateRequestParams, actor string) (*models.WorkRequest, error) {
	m.lastActor = actor
	return m.resolveResp, m.resolveErr
}

func (m *requestWorkflowMock) Delete(ctx context.Context, id int64, actor string) error {
	m.lastActor = actor
	return m.deleteErr
}

type divisionSourceMock struct {
	divisions []models.Division
	allowed   map[string][]int
}

func (m *divisionSourceMock) List(ctx context.Context) ([]models.Division, error) {
	return m.divisions, nil
}

func (m *divisionSourceMock) AllowedForUser(ctx context.Context, userID string) ([]int, error) {
	return m.allowed[userID], nil
}

func executorClaims() *models.JWTClaims {
	return &models.JWTClaims{UserID: "u-1", Role: models.RoleExecutor, FullName: "Alice"}
}

func testContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestRequestHandlerCreateUsesClaimsAsSender(t *testing.T) {
	mockSvc := &requestWorkflowMock{createResp: &models.WorkRequest{ID: 7, Status: models.RequestStatusPending}}
	divisions := &divisionSourceMock{allowed: map[string][]int{"u-1": {5, 9}}}
	handler := NewRequestHandler(mockSvc, divisions, nil)

	payload, _ := json.Marshal(dto.CreateWorkRequestRequest{
		DocumentNumber: "10/77",
		Type:           models.RequestTypeCorrection1,
		Receiver:       "Carl",
	})
	c, w := testContext(t, http.MethodPost, "/requests", payload)
	c.Set(middleware.ContextUserKey, executorClaims())

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Alice", mockSvc.lastCreate.Sender)
	assert.Equal(t, []int{5, 9}, mockSvc.lastCreate.DivisionIDs)
	assert.Equal(t, "10/77", mockSvc.lastCreate.DocumentNumber)
}

func TestRequestHandlerCreateWithoutClaims(t *testing.T) {
	handler := NewRequestHandler(&requestWorkflowMock{}, &divisionSourceMock{}, nil)

	c, w := testContext(t, http.MethodPost, "/requests", []byte(`{}`))
	handler.Create(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestHandlerCreateInvalidBody(t *testing.T) {
	handler := NewRequestHandler(&requestWorkflowMock{}, &divisionSourceMock{}, nil)

	c, w := testContext(t, http.MethodPost, "/requests", []byte(`{"documentNumber":`))
	c.Set(middleware.ContextUserKey, executorClaims())

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestHandlerResolve(t *testing.T) {
	mockSvc := &requestWorkflowMock{resolveResp: &models.WorkRequest{ID: 7, Status: models.RequestStatusAccepted, IsDone: true}}
	handler := NewRequestHandler(mockSvc, &divisionSourceMock{}, nil)

	payload, _ := json.Marshal(dto.ResolveWorkRequestRequest{Status: models.RequestStatusAccepted})
	c, w := testContext(t, http.MethodPost, "/requests/7/resolve", payload)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-2", Role: models.RoleController, FullName: "Carl"})

	handler.Resolve(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RequestStatusAccepted, mockSvc.lastStatus)
	assert.Equal(t, "Carl", mockSvc.lastActor)
}

func TestRequestHandlerResolveAlreadyResolved(t *testing.T) {
	mockSvc := &requestWorkflowMock{resolveErr: appErrors.ErrPreconditionFailed}
	handler := NewRequestHandler(mockSvc, &divisionSourceMock{}, nil)

	payload, _ := json.Marshal(dto.ResolveWorkRequestRequest{Status: models.RequestStatusDeclined})
	c, w := testContext(t, http.MethodPost, "/requests/7/resolve", payload)
	c.Params = gin.Params{{Key: "id", Value: "7"}}
	c.Set(middleware.ContextUserKey, executorClaims())

	handler.Resolve(c)
	require.Equal(t, http.StatusPreconditionFailed, w.Code)
}

func TestRequestHandlerResolveBadID(t *testing.T) {
	handler := NewRequestHandler(&requestWorkflowMock{}, &divisionSourceMock{}, nil)

	c, w := testContext(t, http.MethodPost, "/requests/abc/resolve", []byte(`{}`))
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Set(middleware.ContextUserKey, executorClaims())

	handler.Resolve(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestHandlerInboxUsesCallerName(t *testing.T) {
	mockSvc := &requestWorkflowMock{inboxResp: []models.WorkRequest{{ID: 1, Receiver: "Carl"}}}
	handler := NewRequestHandler(mockSvc, &divisionSourceMock{}, nil)

	c, w := testContext(t, http.MethodGet, "/requests/inbox", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u-2", Role: models.RoleController, FullName: "Carl"})

	handler.Inbox(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Carl", mockSvc.lastActor)
}

func TestRequestHandlerListRequiresDocument(t *testing.T) {
	handler := NewRequestHandler(&requestWorkflowMock{}, &divisionSourceMock{}, nil)

	c, w := testContext(t, http.MethodGet, "/requests", nil)
	handler.ListByDocument(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestHandlerDelete(t *testing.T) {
	mockSvc := &requestWorkflowMock{}
	handler := NewRequestHandler(mockSvc, &divisionSourceMock{}, nil)

	c, w := testContext(t, http.MethodDelete, "/requests/4", nil)
	c.Params = gin.Params{{Key: "id", Value: "4"}}
	c.Set(middleware.ContextUserKey, executorClaims())

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "Alice", mockSvc.lastActor)
}
