package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/workdesk/work-control-api/internal/models"
)

// AssignmentRepository reads the raw work assignment feed.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// OpenByDivision returns the not-yet-completed assignment rows for a division,
// one row per executor/controller observation. Absence of rows is not an
// error; it yields an empty slice.
func (r *AssignmentRepository) OpenByDivision(ctx context.Context, divisionID int) ([]models.AssignmentRow, error) {
	const query = `SELECT division_id, document_number, document_name, work_name, executor, controller, approver,
       plan_date, correction1, correction2, correction3, fact_date
	FROM work_assignments
	WHERE division_id = $1 AND fact_date IS NULL
	ORDER BY id`
	var rows []models.AssignmentRow
	if err := r.db.SelectContext(ctx, &rows, query, divisionID); err != nil {
		return nil, fmt.Errorf("list open assignments for division %d: %w", divisionID, err)
	}
	return rows, nil
}
