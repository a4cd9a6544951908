package models

import "time"

// HighlightState is a transient UI-facing annotation derived from outstanding
// pending requests. It is never persisted.
type HighlightState string

const (
	HighlightNone              HighlightState = "none"
	HighlightPendingCorrection HighlightState = "pendingCorrection"
	HighlightPendingClosure    HighlightState = "pendingClosure"
)

// AssignmentRow is a raw per-executor observation of a work item as stored in
// the work_assignments table. Several rows may describe the same unit of work,
// one per executor/controller pair.
type AssignmentRow struct {
	DivisionID     int        `db:"division_id" json:"division_id"`
	DocumentNumber string     `db:"document_number" json:"document_number"`
	DocumentName   string     `db:"document_name" json:"document_name"`
	WorkName       string     `db:"work_name" json:"work_name"`
	Executor       string     `db:"executor" json:"executor"`
	Controller     string     `db:"controller" json:"controller"`
	Approver       string     `db:"approver" json:"approver"`
	PlanDate       *time.Time `db:"plan_date" json:"plan_date,omitempty"`
	Correction1    *time.Time `db:"correction1" json:"correction1,omitempty"`
	Correction2    *time.Time `db:"correction2" json:"correction2,omitempty"`
	Correction3    *time.Time `db:"correction3" json:"correction3,omitempty"`
	FactDate       *time.Time `db:"fact_date" json:"fact_date,omitempty"`
}

// WorkRecord is the deduplicated, executor-merged view of a work assignment.
// Executors and Controllers hold distinct names in first-appearance order and
// are flattened to joined strings only at the presentation boundary.
type WorkRecord struct {
	DocumentNumber string         `json:"document_number"`
	DocumentName   string         `json:"document_name"`
	WorkName       string         `json:"work_name"`
	Executors      []string       `json:"executors"`
	Controllers    []string       `json:"controllers"`
	Approver       string         `json:"approver"`
	PlanDate       *time.Time     `json:"plan_date,omitempty"`
	Correction1    *time.Time     `json:"correction1,omitempty"`
	Correction2    *time.Time     `json:"correction2,omitempty"`
	Correction3    *time.Time     `json:"correction3,omitempty"`
	FactDate       *time.Time     `json:"fact_date,omitempty"`
	Highlight      HighlightState `json:"highlight"`
}

// HasExecutor reports whether name is among the record's executors.
func (w *WorkRecord) HasExecutor(name string) bool {
	for _, e := range w.Executors {
		if e == name {
			return true
		}
	}
	return false
}

// HasController reports whether name is among the record's controllers.
func (w *WorkRecord) HasController(name string) bool {
	for _, c := range w.Controllers {
		if c == name {
			return true
		}
	}
	return false
}
