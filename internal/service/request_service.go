package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/workdesk/work-control-api/internal/aggregate"
	"github.com/workdesk/work-control-api/internal/models"
	appErrors "github.com/workdesk/work-control-api/pkg/errors"
)

type requestStore interface {
	Create(ctx context.Context, req *models.WorkRequest) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.WorkRequest, error)
	ListByDocument(ctx context.Context, documentNumber string) ([]models.WorkRequest, error)
	ListPendingForReceiver(ctx context.Context, receiver string) ([]models.WorkRequest, error)
	SetStatus(ctx context.Context, id int64, status models.RequestStatus) error
	Update(ctx context.Context, req *models.WorkRequest) error
	Delete(ctx context.Context, id int64) error
}

type recordFinder interface {
	FindRecord(ctx context.Context, divisionIDs []int, documentNumber string) (*models.WorkRecord, error)
}

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// CreateRequestParams carries everything needed to open a change request on
// behalf of an executor.
type CreateRequestParams struct {
	DivisionIDs    []int
	DocumentNumber string
	Type           models.RequestType
	Sender         string
	Receiver       string
	ProposedDate   *time.Time
	Note           *string
}

// UpdateRequestParams carries the editable fields of a pending request.
type UpdateRequestParams struct {
	Type         models.RequestType
	Receiver     string
	ProposedDate *time.Time
	Note         *string
}

// RequestService is the workflow engine for change/closure requests: it
// creates, lists, and terminates them, enforcing the sender/receiver rules,
// and projects pending requests back onto work records as highlights.
type RequestService struct {
	repo   requestStore
	works  recordFinder
	audit  auditLogger
	logger *zap.Logger
	now    func() time.Time
}

// NewRequestService constructs the service.
func NewRequestService(repo requestStore, works recordFinder, audit auditLogger, logger *zap.Logger) *RequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestService{repo: repo, works: works, audit: audit, logger: logger, now: time.Now}
}

// Create opens a new request. The sender must be an executor of the target
// record and the receiver one of its controllers or the approver; violations
// surface as rejected actions before anything reaches storage. Status and
// is_done are forced to Pending/false regardless of caller input, and the
// record's name/date fields are copied in as a snapshot.
func (s *RequestService) Create(ctx context.Context, params CreateRequestParams) (*models.WorkRequest, error) {
	if !params.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown request type: %s", params.Type))
	}
	if params.Receiver == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "receiver is required")
	}

	record, err := s.works.FindRecord(ctx, params.DivisionIDs, params.DocumentNumber)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("work %s not found", params.DocumentNumber))
	}

	request := &models.WorkRequest{
		WorkDocumentNumber: record.DocumentNumber,
		Type:               params.Type,
		Sender:             params.Sender,
		Receiver:           params.Receiver,
		RequestDate:        s.now().UTC(),
		ProposedDate:       params.ProposedDate,
		Status:             models.RequestStatusPending,
		IsDone:             false,
		Note:               params.Note,
		DocumentName:       record.DocumentName,
		WorkName:           record.WorkName,
		Executor:           aggregate.JoinNames(record.Executors),
		Controller:         aggregate.JoinNames(record.Controllers),
		PlanDate:           record.PlanDate,
		Correction1:        record.Correction1,
		Correction2:        record.Correction2,
		Correction3:        record.Correction3,
	}

	if err := Authorize(params.Sender, ActionCreate, record, request); err != nil {
		return nil, err
	}

	if _, err := s.repo.Create(ctx, request); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to create request")
	}
	s.emitAudit(ctx, params.Sender, models.AuditActionRequestCreate, request)
	return request, nil
}

// ListByDocument returns every request for a document, any status.
func (s *RequestService) ListByDocument(ctx context.Context, documentNumber string) ([]models.WorkRequest, error) {
	requests, err := s.repo.ListByDocument(ctx, documentNumber)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list requests")
	}
	return requests, nil
}

// Inbox returns the receiver's pending requests.
func (s *RequestService) Inbox(ctx context.Context, receiver string) ([]models.WorkRequest, error) {
	requests, err := s.repo.ListPendingForReceiver(ctx, receiver)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to list inbox")
	}
	return requests, nil
}

// Resolve terminates a pending request. Only Accepted and Declined are legal
// targets; anything else is rejected without a write. A request already
// terminal matches zero rows, reported as a precondition failure so callers
// can tell the user "already resolved" instead of silently succeeding.
// Accepting does NOT write the proposed date back onto the work record; that
// authoritative update is a separate integration.
func (s *RequestService) Resolve(ctx context.Context, id int64, status models.RequestStatus, actor string) (*models.WorkRequest, error) {
	if status != models.RequestStatusAccepted && status != models.RequestStatusDeclined {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be Accepted or Declined")
	}

	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load request")
	}

	if err := Authorize(actor, ActionResolve, nil, request); err != nil {
		return nil, err
	}

	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "request already resolved")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to resolve request")
	}

	request.Status = status
	request.IsDone = true
	s.emitAudit(ctx, actor, models.AuditActionRequestResolve, request)
	return request, nil
}

// Update rewrites the editable fields of a pending request. The sender is the
// only allowed editor; a terminal request matches zero rows and reports a
// precondition failure.
func (s *RequestService) Update(ctx context.Context, id int64, params UpdateRequestParams, actor string) (*models.WorkRequest, error) {
	if !params.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown request type: %s", params.Type))
	}

	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load request")
	}

	if err := Authorize(actor, ActionEdit, nil, request); err != nil {
		return nil, err
	}

	request.Type = params.Type
	request.Receiver = params.Receiver
	request.ProposedDate = params.ProposedDate
	request.Note = params.Note

	if err := s.repo.Update(ctx, request); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "request already resolved")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to update request")
	}
	s.emitAudit(ctx, actor, models.AuditActionRequestUpdate, request)
	return request, nil
}

// Delete removes a pending request; terminal requests are undeletable here.
func (s *RequestService) Delete(ctx context.Context, id int64, actor string) error {
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load request")
	}

	if err := Authorize(actor, ActionDelete, nil, request); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrPreconditionFailed, "request already resolved")
		}
		return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to delete request")
	}
	s.emitAudit(ctx, actor, models.AuditActionRequestDelete, request)
	return nil
}

// ProjectHighlights marks each record according to its outstanding pending
// requests: a pending closure request wins over a pending correction, and a
// record with neither stays at none. Dates on the record are never touched.
func (s *RequestService) ProjectHighlights(ctx context.Context, records []models.WorkRecord) ([]models.WorkRecord, error) {
	out := make([]models.WorkRecord, len(records))
	copy(out, records)

	for i := range out {
		requests, err := s.repo.ListByDocument(ctx, out[i].DocumentNumber)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, "failed to load requests for highlighting")
		}

		state := models.HighlightNone
		for _, req := range requests {
			if req.Status != models.RequestStatusPending || req.IsDone {
				continue
			}
			if req.Type == models.RequestTypeFact {
				state = models.HighlightPendingClosure
				break
			}
			if req.Type.IsCorrection() {
				state = models.HighlightPendingCorrection
			}
		}
		out[i].Highlight = state
	}

	return out, nil
}

func (s *RequestService) emitAudit(ctx context.Context, actor, action string, request *models.WorkRequest) {
	if s.audit == nil {
		return
	}
	resourceID := fmt.Sprintf("%d", request.ID)
	payload := []byte(fmt.Sprintf(`{"document":%q,"type":%q,"status":%q}`, request.WorkDocumentNumber, request.Type, request.Status))
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		UserID:     nil,
		Action:     action,
		Resource:   "work_request",
		ResourceID: &resourceID,
		NewValues:  payload,
		IPAddress:  "system",
		UserAgent:  "request-service",
	}); err != nil {
		s.logger.Warn("failed to persist audit log", zap.String("actor", actor), zap.Error(err))
	}
}
