package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/workdesk/work-control-api/internal/dto"
	"github.com/workdesk/work-control-api/internal/models"
	"github.com/workdesk/work-control-api/internal/service"
	appErrors "github.com/workdesk/work-control-api/pkg/errors"
	"github.com/workdesk/work-control-api/pkg/response"
)

type requestWorkflow interface {
	Create(ctx context.Context, params service.CreateRequestParams) (*models.WorkRequest, error)
	ListByDocument(ctx context.Context, documentNumber string) ([]models.WorkRequest, error)
	Inbox(ctx context.Context, receiver string) ([]models.WorkRequest, error)
	Resolve(ctx context.Context, id int64, status models.RequestStatus, actor string) (*models.WorkRequest, error)
	Update(ctx context.Context, id int64, params service.UpdateRequestParams, actor string) (*models.WorkRequest, error)
	Delete(ctx context.Context, id int64, actor string) error
}

// RequestHandler exposes the correction/closure request workflow.
type RequestHandler struct {
	service   requestWorkflow
	divisions divisionSource
	respCache *service.CacheService
}

// NewRequestHandler constructs the handler.
func NewRequestHandler(svc requestWorkflow, divisions divisionSource, respCache *service.CacheService) *RequestHandler {
	return &RequestHandler{service: svc, divisions: divisions, respCache: respCache}
}

func requestIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid request id")
	}
	return id, nil
}

// invalidate drops cached work listings after a workflow mutation so the next
// read reflects the new highlight state.
func (h *RequestHandler) invalidate(ctx context.Context) {
	if h.respCache.Enabled() {
		_ = h.respCache.Invalidate(ctx, "works:*")
	}
}

// Create godoc
// @Summary Submit a correction or closure request
// @Tags Requests
// @Accept json
// @Produce json
// @Param payload body dto.CreateWorkRequestRequest true "Request payload"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.CreateWorkRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request payload"))
		return
	}

	divisionIDs, err := h.divisions.AllowedForUser(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	request, err := h.service.Create(c.Request.Context(), service.CreateRequestParams{
		DivisionIDs:    divisionIDs,
		DocumentNumber: strings.TrimSpace(req.DocumentNumber),
		Type:           req.Type,
		Sender:         claims.FullName,
		Receiver:       strings.TrimSpace(req.Receiver),
		ProposedDate:   req.ProposedDate,
		Note:           req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidate(c.Request.Context())
	response.JSON(c, http.StatusCreated, request, nil)
}

// ListByDocument godoc
// @Summary List requests raised against a work record
// @Tags Requests
// @Produce json
// @Param document query string true "Document number"
// @Success 200 {object} response.Envelope
// @Router /requests [get]
func (h *RequestHandler) ListByDocument(c *gin.Context) {
	document := strings.TrimSpace(c.Query("document"))
	if document == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "document query parameter is required"))
		return
	}
	requests, err := h.service.ListByDocument(c.Request.Context(), document)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, nil)
}

// Inbox godoc
// @Summary List pending requests addressed to the caller
// @Tags Requests
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /requests/inbox [get]
func (h *RequestHandler) Inbox(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	requests, err := h.service.Inbox(c.Request.Context(), claims.FullName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, nil)
}

// Resolve godoc
// @Summary Accept or decline a pending request
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param payload body dto.ResolveWorkRequestRequest true "Decision"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /requests/{id}/resolve [post]
func (h *RequestHandler) Resolve(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	id, err := requestIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.ResolveWorkRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid decision payload"))
		return
	}
	request, err := h.service.Resolve(c.Request.Context(), id, req.Status, claims.FullName)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidate(c.Request.Context())
	response.JSON(c, http.StatusOK, request, nil)
}

// Update godoc
// @Summary Edit a pending request
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path int true "Request ID"
// @Param payload body dto.UpdateWorkRequestRequest true "New field values"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /requests/{id} [patch]
func (h *RequestHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	id, err := requestIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateWorkRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request payload"))
		return
	}
	request, err := h.service.Update(c.Request.Context(), id, service.UpdateRequestParams{
		Type:         req.Type,
		Receiver:     strings.TrimSpace(req.Receiver),
		ProposedDate: req.ProposedDate,
		Note:         req.Note,
	}, claims.FullName)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.invalidate(c.Request.Context())
	response.JSON(c, http.StatusOK, request, nil)
}

// Delete godoc
// @Summary Withdraw a pending request
// @Tags Requests
// @Produce json
// @Param id path int true "Request ID"
// @Success 204 "request deleted"
// @Failure 412 {object} response.Envelope
// @Router /requests/{id} [delete]
func (h *RequestHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	id, err := requestIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, claims.FullName); err != nil {
		response.Error(c, err)
		return
	}
	h.invalidate(c.Request.Context())
	c.Status(http.StatusNoContent)
}
