package dto

import (
	"time"

	"github.com/workdesk/work-control-api/internal/aggregate"
	"github.com/workdesk/work-control-api/internal/models"
)

// WorkRecordResponse is the flattened, display-ready shape of an aggregated
// work record. Executor and controller name lists are joined with ", " the
// way planning sheets print them.
type WorkRecordResponse struct {
	DocumentNumber string                `json:"documentNumber"`
	DocumentName   string                `json:"documentName"`
	WorkName       string                `json:"workName"`
	Executor       string                `json:"executor"`
	Controller     string                `json:"controller"`
	Approver       string                `json:"approver"`
	PlanDate       *time.Time            `json:"planDate"`
	Correction1    *time.Time            `json:"correction1"`
	Correction2    *time.Time            `json:"correction2"`
	Correction3    *time.Time            `json:"correction3"`
	FactDate       *time.Time            `json:"factDate"`
	Highlight      models.HighlightState `json:"highlight"`
}

// NewWorkRecordResponse flattens one aggregated record.
func NewWorkRecordResponse(record models.WorkRecord) WorkRecordResponse {
	return WorkRecordResponse{
		DocumentNumber: record.DocumentNumber,
		DocumentName:   record.DocumentName,
		WorkName:       record.WorkName,
		Executor:       aggregate.JoinNames(record.Executors),
		Controller:     aggregate.JoinNames(record.Controllers),
		Approver:       record.Approver,
		PlanDate:       record.PlanDate,
		Correction1:    record.Correction1,
		Correction2:    record.Correction2,
		Correction3:    record.Correction3,
		FactDate:       record.FactDate,
		Highlight:      record.Highlight,
	}
}

// NewWorkRecordResponses flattens a slice preserving order.
func NewWorkRecordResponses(records []models.WorkRecord) []WorkRecordResponse {
	out := make([]WorkRecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, NewWorkRecordResponse(record))
	}
	return out
}
