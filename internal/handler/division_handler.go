package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/workdesk/work-control-api/internal/dto"
	appErrors "github.com/workdesk/work-control-api/pkg/errors"
	"github.com/workdesk/work-control-api/pkg/response"
)

type divisionManager interface {
	divisionSource
	ReplaceAllowed(ctx context.Context, userID string, divisionIDs []int) error
}

// DivisionHandler serves the division list and per-user allowed sets.
type DivisionHandler struct {
	service divisionManager
}

// NewDivisionHandler constructs the handler.
func NewDivisionHandler(svc divisionManager) *DivisionHandler {
	return &DivisionHandler{service: svc}
}

// List godoc
// @Summary List all divisions
// @Tags Divisions
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /divisions [get]
func (h *DivisionHandler) List(c *gin.Context) {
	divisions, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]dto.DivisionResponse, 0, len(divisions))
	for _, d := range divisions {
		out = append(out, dto.DivisionResponse{ID: d.ID, Name: d.Name})
	}
	response.JSON(c, http.StatusOK, out, nil)
}

// Allowed godoc
// @Summary List the divisions a user may access
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /users/{id}/divisions [get]
func (h *DivisionHandler) Allowed(c *gin.Context) {
	userID := c.Param("id")
	ids, err := h.service.AllowedForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ids, nil)
}

// ReplaceAllowed godoc
// @Summary Replace the divisions a user may access
// @Description Replaces the whole allowed set in one transaction
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param payload body dto.SaveAllowedDivisionsRequest true "New division set"
// @Success 200 {object} response.Envelope
// @Router /users/{id}/divisions [put]
func (h *DivisionHandler) ReplaceAllowed(c *gin.Context) {
	userID := c.Param("id")
	var req dto.SaveAllowedDivisionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid division payload"))
		return
	}
	if err := h.service.ReplaceAllowed(c.Request.Context(), userID, req.DivisionIDs); err != nil {
		response.Error(c, err)
		return
	}
	ids, err := h.service.AllowedForUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ids, nil)
}
