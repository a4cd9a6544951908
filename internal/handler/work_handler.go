package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/workdesk/work-control-api/internal/dto"
	"github.com/workdesk/work-control-api/internal/middleware"
	"github.com/workdesk/work-control-api/internal/models"
	"github.com/workdesk/work-control-api/internal/service"
	appErrors "github.com/workdesk/work-control-api/pkg/errors"
	"github.com/workdesk/work-control-api/pkg/response"
)

type workReader interface {
	GetWorkRecords(ctx context.Context, divisionIDs []int) ([]models.WorkRecord, error)
	Executors(ctx context.Context, divisionID int) ([]string, error)
	Approvers(ctx context.Context, divisionID int) ([]string, error)
	ClearCache(ctx context.Context, divisionID int)
}

type highlightProjector interface {
	ProjectHighlights(ctx context.Context, records []models.WorkRecord) ([]models.WorkRecord, error)
}

type divisionSource interface {
	List(ctx context.Context) ([]models.Division, error)
	AllowedForUser(ctx context.Context, userID string) ([]int, error)
}

// WorkHandler serves the aggregated work record views.
type WorkHandler struct {
	works     workReader
	requests  highlightProjector
	divisions divisionSource
	respCache *service.CacheService
}

// NewWorkHandler constructs the handler.
func NewWorkHandler(works workReader, requests highlightProjector, divisions divisionSource, respCache *service.CacheService) *WorkHandler {
	return &WorkHandler{works: works, requests: requests, divisions: divisions, respCache: respCache}
}

// visibleDivisions resolves the division set the caller may read. Admins see
// every division; everyone else is limited to their allowed set.
func (h *WorkHandler) visibleDivisions(ctx context.Context, claims *models.JWTClaims) ([]int, error) {
	if claims.Role == models.RoleAdmin {
		divisions, err := h.divisions.List(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]int, 0, len(divisions))
		for _, d := range divisions {
			ids = append(ids, d.ID)
		}
		return ids, nil
	}
	return h.divisions.AllowedForUser(ctx, claims.UserID)
}

func parseDivisionsParam(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "divisions must be a comma separated list of ids")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func worksCacheKey(divisionIDs []int) string {
	parts := make([]string, len(divisionIDs))
	for i, id := range divisionIDs {
		parts[i] = strconv.Itoa(id)
	}
	return "works:" + strings.Join(parts, ",")
}

// GetWorks godoc
// @Summary List aggregated work records
// @Description Merged open work records across the requested divisions, with pending-request highlighting
// @Tags Works
// @Produce json
// @Param divisions query string false "Comma separated division ids (defaults to the caller's allowed set)"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /works [get]
func (h *WorkHandler) GetWorks(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	visible, err := h.visibleDivisions(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	requested, err := parseDivisionsParam(c.Query("divisions"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if requested == nil {
		requested = visible
	} else if claims.Role != models.RoleAdmin {
		allowed := make(map[int]struct{}, len(visible))
		for _, id := range visible {
			allowed[id] = struct{}{}
		}
		for _, id := range requested {
			if _, ok := allowed[id]; !ok {
				response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "division not in your allowed set"))
				return
			}
		}
	}

	cacheKey := worksCacheKey(requested)
	if h.respCache.Enabled() {
		var cached []dto.WorkRecordResponse
		if hit, _ := h.respCache.Get(c.Request.Context(), cacheKey, &cached); hit {
			middleware.SetCacheHit(c, true)
			response.JSON(c, http.StatusOK, cached, nil)
			return
		}
		middleware.SetCacheHit(c, false)
	}

	records, err := h.works.GetWorkRecords(c.Request.Context(), requested)
	if err != nil {
		response.Error(c, err)
		return
	}
	records, err = h.requests.ProjectHighlights(c.Request.Context(), records)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := dto.NewWorkRecordResponses(records)
	if h.respCache.Enabled() {
		_ = h.respCache.Set(c.Request.Context(), cacheKey, result, 0)
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Executors godoc
// @Summary List distinct executor names of a division
// @Tags Divisions
// @Produce json
// @Param id path int true "Division ID"
// @Success 200 {object} response.Envelope
// @Router /divisions/{id}/executors [get]
func (h *WorkHandler) Executors(c *gin.Context) {
	divisionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid division id"))
		return
	}
	names, err := h.works.Executors(c.Request.Context(), divisionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, names, nil)
}

// Approvers godoc
// @Summary List distinct approver names of a division
// @Tags Divisions
// @Produce json
// @Param id path int true "Division ID"
// @Success 200 {object} response.Envelope
// @Router /divisions/{id}/approvers [get]
func (h *WorkHandler) Approvers(c *gin.Context) {
	divisionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid division id"))
		return
	}
	names, err := h.works.Approvers(c.Request.Context(), divisionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, names, nil)
}

// ClearCache godoc
// @Summary Drop the cached aggregation artifacts of a division
// @Tags Divisions
// @Produce json
// @Param id path int true "Division ID"
// @Success 204 "cache cleared"
// @Router /divisions/{id}/cache [delete]
func (h *WorkHandler) ClearCache(c *gin.Context) {
	divisionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid division id"))
		return
	}
	h.works.ClearCache(c.Request.Context(), divisionID)
	c.Status(http.StatusNoContent)
}
