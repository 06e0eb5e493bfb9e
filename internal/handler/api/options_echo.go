package api

import (
	"fmt"
	"net/http"
	"time"

	models "WorthWise/internal/domain/models"
	domrepo "WorthWise/internal/domain/repository"
	"WorthWise/internal/service/cache"
	xhttp "WorthWise/pkg/http"
	xlogger "WorthWise/pkg/logger"

	"github.com/labstack/echo/v4"
)

// OptionsEchoHandler serves the dropdown/reference endpoints plus the
// health probe. Option lists change only on dataset reloads, so they
// are served from a read-through cache.
type OptionsEchoHandler struct {
	logger    *xlogger.Logger
	ref       domrepo.ReferenceStore
	analytics domrepo.AnalyticsStore
	c         cache.BytesCache
	ttl       time.Duration
}

func NewOptionsEchoHandler(logger *xlogger.Logger, ref domrepo.ReferenceStore, analytics domrepo.AnalyticsStore, c cache.BytesCache, ttl time.Duration) *OptionsEchoHandler {
	return &OptionsEchoHandler{logger: logger, ref: ref, analytics: analytics, c: c, ttl: ttl}
}

func (h *OptionsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1/options")
	g.GET("/schools", h.Schools)
	g.GET("/majors", h.Majors)
	g.GET("/regions", h.Regions)
	g.GET("/versions", h.Versions)
	e.GET("/health", h.Health)
}

func (h *OptionsEchoHandler) Schools(c echo.Context) error {
	req := &models.SchoolsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	key := fmt.Sprintf("options:schools:%s:%s:%d", req.State, req.Search, req.Limit)
	var cached []models.InstitutionOption
	if cache.GetJSON(h.c, key, &cached) {
		return xhttp.SuccessResponse(c, cached)
	}

	opts, err := h.ref.SearchInstitutions(c.Request().Context(), req.State, req.Search, req.Limit)
	if err != nil {
		h.logger.Error("schools lookup error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	_ = cache.SetJSON(h.c, key, opts, h.ttl)
	return xhttp.SuccessResponse(c, opts)
}

func (h *OptionsEchoHandler) Majors(c echo.Context) error {
	req := &models.MajorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	key := fmt.Sprintf("options:majors:%s:%d", req.Search, req.Limit)
	var cached []models.MajorRecord
	if cache.GetJSON(h.c, key, &cached) {
		return xhttp.SuccessResponse(c, cached)
	}

	majors, err := h.ref.SearchMajors(c.Request().Context(), req.Search, req.Limit)
	if err != nil {
		h.logger.Error("majors lookup error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	_ = cache.SetJSON(h.c, key, majors, h.ttl)
	return xhttp.SuccessResponse(c, majors)
}

func (h *OptionsEchoHandler) Regions(c echo.Context) error {
	const key = "options:regions"
	var cached []models.RegionRecord
	if cache.GetJSON(h.c, key, &cached) {
		return xhttp.SuccessResponse(c, cached)
	}

	regions, err := h.ref.ListRegions(c.Request().Context())
	if err != nil {
		h.logger.Error("regions lookup error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	_ = cache.SetJSON(h.c, key, regions, h.ttl)
	return xhttp.SuccessResponse(c, regions)
}

func (h *OptionsEchoHandler) Versions(c echo.Context) error {
	versions, err := h.ref.DataVersions(c.Request().Context())
	if err != nil {
		h.logger.Error("versions lookup error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, versions)
}

func (h *OptionsEchoHandler) Health(c echo.Context) error {
	ctx := c.Request().Context()
	status := map[string]string{"reference": "ok", "analytics": "ok"}
	healthy := true

	if err := h.ref.Health(ctx); err != nil {
		status["reference"] = err.Error()
		healthy = false
	}
	if err := h.analytics.Health(ctx); err != nil {
		status["analytics"] = err.Error()
		healthy = false
	}

	// Probes need the real status code, not the envelope.
	if !healthy {
		return c.JSON(http.StatusServiceUnavailable, status)
	}
	return c.JSON(http.StatusOK, status)
}
