package dto

import (
	"time"

	"github.com/workdesk/work-control-api/internal/models"
)

// CreateWorkRequestRequest payload for opening a correction or closure request
// against a work record.
type CreateWorkRequestRequest struct {
	DocumentNumber string             `json:"documentNumber" validate:"required"`
	Type           models.RequestType `json:"type" validate:"required"`
	Receiver       string             `json:"receiver" validate:"required"`
	ProposedDate   *time.Time         `json:"proposedDate"`
	Note           *string            `json:"note"`
}

// UpdateWorkRequestRequest rewrites the editable fields of a pending request.
type UpdateWorkRequestRequest struct {
	Type         models.RequestType `json:"type" validate:"required"`
	Receiver     string             `json:"receiver" validate:"required"`
	ProposedDate *time.Time         `json:"proposedDate"`
	Note         *string            `json:"note"`
}

// ResolveWorkRequestRequest carries the reviewer decision.
type ResolveWorkRequestRequest struct {
	Status models.RequestStatus `json:"status" validate:"required"`
}
