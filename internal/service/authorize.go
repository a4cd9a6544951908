package service

import (
	"github.com/workdesk/work-control-api/internal/models"
	appErrors "github.com/workdesk/work-control-api/pkg/errors"
)

// RequestAction names the workflow operations subject to permission rules.
type RequestAction string

const (
	ActionCreate  RequestAction = "create"
	ActionResolve RequestAction = "resolve"
	ActionEdit    RequestAction = "edit"
	ActionDelete  RequestAction = "delete"
)

// Authorize is the single place the request permission rules live. The actor
// is matched by full name against the record's role lists:
//
//	create        actor is an executor of the record; the request's receiver,
//	              when given, is one of the record's controllers or its approver
//	resolve       actor is the request's receiver
//	edit, delete  actor is the request's sender
//
// A nil record or request where the rule needs one is a forbidden action, not
// a panic.
func Authorize(actor string, action RequestAction, record *models.WorkRecord, request *models.WorkRequest) error {
	switch action {
	case ActionCreate:
		if record == nil || !record.HasExecutor(actor) {
			return appErrors.Clone(appErrors.ErrForbidden, "sender is not an executor of this work")
		}
		if request != nil && request.Receiver != "" {
			if !record.HasController(request.Receiver) && record.Approver != request.Receiver {
				return appErrors.Clone(appErrors.ErrForbidden, "receiver must be a controller or the approver of this work")
			}
		}
		return nil
	case ActionResolve:
		if request == nil || request.Receiver != actor {
			return appErrors.Clone(appErrors.ErrForbidden, "only the request receiver may resolve it")
		}
		return nil
	case ActionEdit, ActionDelete:
		if request == nil || request.Sender != actor {
			return appErrors.Clone(appErrors.ErrForbidden, "only the request sender may change it")
		}
		return nil
	}
	return appErrors.Clone(appErrors.ErrForbidden, "unknown action")
}
