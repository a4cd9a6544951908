package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/workdesk/work-control-api/internal/models"
)

const requestColumns = `id, work_document_number, request_type, sender, receiver, request_date,
       proposed_date, status, is_done, note, document_name, work_name, executor, controller,
       plan_date, correction1, correction2, correction3`

// RequestRepository persists work change requests.
type RequestRepository struct {
	db *sqlx.DB
}

// NewRequestRepository constructs the repository.
func NewRequestRepository(db *sqlx.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts a new request row and returns the storage-assigned id.
// Status and is_done are written as given; the service layer forces them to
// Pending/false before calling.
func (r *RequestRepository) Create(ctx context.Context, req *models.WorkRequest) (int64, error) {
	if req.RequestDate.IsZero() {
		req.RequestDate = time.Now().UTC()
	}
	const query = `INSERT INTO work_requests
	(work_document_number, request_type, sender, receiver, request_date, proposed_date, status, is_done,
	 note, document_name, work_name, executor, controller, plan_date, correction1, correction2, correction3)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	RETURNING id`
	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		req.WorkDocumentNumber, req.Type, req.Sender, req.Receiver, req.RequestDate, req.ProposedDate,
		req.Status, req.IsDone, req.Note, req.DocumentName, req.WorkName, req.Executor, req.Controller,
		req.PlanDate, req.Correction1, req.Correction2, req.Correction3,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create work request: %w", err)
	}
	req.ID = id
	return id, nil
}

// GetByID fetches a request by identifier.
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*models.WorkRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM work_requests WHERE id = $1`, requestColumns)
	var req models.WorkRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		return nil, err
	}
	return &req, nil
}

// ListByDocument returns every request for a document regardless of status,
// newest first.
func (r *RequestRepository) ListByDocument(ctx context.Context, documentNumber string) ([]models.WorkRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM work_requests WHERE work_document_number = $1 ORDER BY request_date DESC, id DESC`, requestColumns)
	var requests []models.WorkRequest
	if err := r.db.SelectContext(ctx, &requests, query, documentNumber); err != nil {
		return nil, fmt.Errorf("list requests for document %s: %w", documentNumber, err)
	}
	return requests, nil
}

// ListPendingForReceiver returns the receiver's inbox: pending, not done.
func (r *RequestRepository) ListPendingForReceiver(ctx context.Context, receiver string) ([]models.WorkRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM work_requests WHERE status = $1 AND is_done = false AND receiver = $2 ORDER BY request_date DESC, id DESC`, requestColumns)
	var requests []models.WorkRequest
	if err := r.db.SelectContext(ctx, &requests, query, models.RequestStatusPending, receiver); err != nil {
		return nil, fmt.Errorf("list pending requests for %s: %w", receiver, err)
	}
	return requests, nil
}

// SetStatus terminates a pending request in a single atomic update. A request
// already terminal matches zero rows, reported as sql.ErrNoRows; the caller
// treats that as "already resolved", not as a crash.
func (r *RequestRepository) SetStatus(ctx context.Context, id int64, status models.RequestStatus) error {
	const query = `UPDATE work_requests SET status = $2, is_done = true WHERE id = $1 AND status = $3`
	result, err := r.db.ExecContext(ctx, query, id, status, models.RequestStatusPending)
	if err != nil {
		return fmt.Errorf("set request %d status: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check request status rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Update rewrites the editable fields of a still-pending request. Terminal
// requests match zero rows and surface sql.ErrNoRows.
func (r *RequestRepository) Update(ctx context.Context, req *models.WorkRequest) error {
	const query = `UPDATE work_requests
	SET request_type = $2, receiver = $3, proposed_date = $4, note = $5
	WHERE id = $1 AND status = $6`
	result, err := r.db.ExecContext(ctx, query, req.ID, req.Type, req.Receiver, req.ProposedDate, req.Note, models.RequestStatusPending)
	if err != nil {
		return fmt.Errorf("update work request %d: %w", req.ID, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check request update rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a still-pending request; same zero-rows semantics as Update.
func (r *RequestRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM work_requests WHERE id = $1 AND status = $2`
	result, err := r.db.ExecContext(ctx, query, id, models.RequestStatusPending)
	if err != nil {
		return fmt.Errorf("delete work request %d: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check request delete rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
