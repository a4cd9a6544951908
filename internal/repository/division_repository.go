package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/workdesk/work-control-api/internal/models"
)

// DivisionRepository reads the division directory and manages per-user
// allowed-division sets.
type DivisionRepository struct {
	db *sqlx.DB
}

// NewDivisionRepository constructs the repository.
func NewDivisionRepository(db *sqlx.DB) *DivisionRepository {
	return &DivisionRepository{db: db}
}

// List returns every division.
func (r *DivisionRepository) List(ctx context.Context) ([]models.Division, error) {
	const query = `SELECT id, name FROM divisions ORDER BY name`
	var divisions []models.Division
	if err := r.db.SelectContext(ctx, &divisions, query); err != nil {
		return nil, fmt.Errorf("list divisions: %w", err)
	}
	return divisions, nil
}

// AllowedForUser returns the division ids a user may view.
func (r *DivisionRepository) AllowedForUser(ctx context.Context, userID string) ([]int, error) {
	const query = `SELECT division_id FROM user_divisions WHERE user_id = $1 ORDER BY division_id`
	var ids []int
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("list allowed divisions for user %s: %w", userID, err)
	}
	return ids, nil
}

// ReplaceAllowedForUser swaps a user's allowed-division set in one
// transaction. Any failure after the delete rolls the whole replace back.
func (r *DivisionRepository) ReplaceAllowedForUser(ctx context.Context, userID string, divisionIDs []int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin allowed divisions replace: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_divisions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear allowed divisions for user %s: %w", userID, err)
	}
	for _, divisionID := range divisionIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_divisions (user_id, division_id) VALUES ($1, $2)`, userID, divisionID); err != nil {
			return fmt.Errorf("insert allowed division %d for user %s: %w", divisionID, userID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit allowed divisions replace: %w", err)
	}
	return nil
}
