package models

import (
	"strings"
	"time"
)

// RequestType identifies which date slot a change request targets.
type RequestType string

const (
	RequestTypeCorrection1 RequestType = "correction1"
	RequestTypeCorrection2 RequestType = "correction2"
	RequestTypeCorrection3 RequestType = "correction3"
	RequestTypeFact        RequestType = "fact"
)

// IsCorrection reports whether the type targets one of the correction slots.
func (t RequestType) IsCorrection() bool {
	return strings.HasPrefix(string(t), "correction")
}

// Valid reports whether the type is one of the known values.
func (t RequestType) Valid() bool {
	switch t {
	case RequestTypeCorrection1, RequestTypeCorrection2, RequestTypeCorrection3, RequestTypeFact:
		return true
	}
	return false
}

// RequestStatus captures the workflow state of a change request.
// Accepted and Declined are terminal.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusAccepted RequestStatus = "Accepted"
	RequestStatusDeclined RequestStatus = "Declined"
)

// WorkRequest is a proposed change to a WorkRecord's dates. The document
// name/work name/executor/controller/date columns are a denormalized snapshot
// taken at creation time so the request stays self-describing.
type WorkRequest struct {
	ID                 int64         `db:"id" json:"id"`
	WorkDocumentNumber string        `db:"work_document_number" json:"work_document_number"`
	Type               RequestType   `db:"request_type" json:"request_type"`
	Sender             string        `db:"sender" json:"sender"`
	Receiver           string        `db:"receiver" json:"receiver"`
	RequestDate        time.Time     `db:"request_date" json:"request_date"`
	ProposedDate       *time.Time    `db:"proposed_date" json:"proposed_date,omitempty"`
	Status             RequestStatus `db:"status" json:"status"`
	IsDone             bool          `db:"is_done" json:"is_done"`
	Note               *string       `db:"note" json:"note,omitempty"`

	DocumentName string     `db:"document_name" json:"document_name"`
	WorkName     string     `db:"work_name" json:"work_name"`
	Executor     string     `db:"executor" json:"executor"`
	Controller   string     `db:"controller" json:"controller"`
	PlanDate     *time.Time `db:"plan_date" json:"plan_date,omitempty"`
	Correction1  *time.Time `db:"correction1" json:"correction1,omitempty"`
	Correction2  *time.Time `db:"correction2" json:"correction2,omitempty"`
	Correction3  *time.Time `db:"correction3" json:"correction3,omitempty"`
}
