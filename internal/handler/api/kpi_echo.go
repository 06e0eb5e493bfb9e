package api

import (
	"context"
	"errors"

	models "WorthWise/internal/domain/models"
	domrepo "WorthWise/internal/domain/repository"
	"WorthWise/internal/service/ratelimit"
	"WorthWise/internal/usecase"
	xhttp "WorthWise/pkg/http"
	xlogger "WorthWise/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Per-client budget for the computation endpoints.
const (
	computeBurst     = 20.0
	computePerSecond = 10.0
)

// KPIEchoHandler exposes the scenario computation endpoints.
type KPIEchoHandler struct {
	logger  *xlogger.Logger
	engine  *usecase.KPIEngine
	ref     domrepo.ReferenceStore
	limiter *ratelimit.Limiter
}

func NewKPIEchoHandler(logger *xlogger.Logger, engine *usecase.KPIEngine, ref domrepo.ReferenceStore) *KPIEchoHandler {
	return &KPIEchoHandler{logger: logger, engine: engine, ref: ref, limiter: ratelimit.New()}
}

func (h *KPIEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/compute", h.Compute)
	g.POST("/compare", h.Compare)
	g.POST("/export/scenario", h.ExportScenario)
	g.POST("/export/comparison", h.ExportComparison)
}

func (h *KPIEchoHandler) Compute(c echo.Context) error {
	if !h.limiter.Allow(c.RealIP(), computeBurst, computePerSecond) {
		return xhttp.TooManyRequestsResponse(c)
	}

	req := &models.ScenarioRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	resp, err := h.computeResponse(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, domrepo.ErrNotFound) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("%v", err))
		}
		h.logger.Error("compute usecase error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, resp)
}

func (h *KPIEchoHandler) Compare(c echo.Context) error {
	if !h.limiter.Allow(c.RealIP(), computeBurst, computePerSecond) {
		return xhttp.TooManyRequestsResponse(c)
	}

	req := &models.CompareRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	resp := h.compareResponse(c.Request().Context(), req)
	return xhttp.SuccessResponse(c, resp)
}

func (h *KPIEchoHandler) ExportScenario(c echo.Context) error {
	req := &models.ScenarioRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	resp, err := h.computeResponse(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, domrepo.ErrNotFound) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("%v", err))
		}
		h.logger.Error("export compute error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}

	b, err := usecase.ScenarioCSV(resp)
	if err != nil {
		h.logger.Error("scenario csv error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.CSVResponse(c, "scenario_export.csv", b)
}

func (h *KPIEchoHandler) ExportComparison(c echo.Context) error {
	req := &models.CompareRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	resp := h.compareResponse(c.Request().Context(), req)
	b, err := usecase.ComparisonCSV(resp)
	if err != nil {
		h.logger.Error("comparison csv error", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.CSVResponse(c, "comparison_export.csv", b)
}

func (h *KPIEchoHandler) computeResponse(ctx context.Context, req *models.ScenarioRequest) (*models.ComputeResponse, error) {
	kpis, assumptions, warnings, err := h.engine.ComputeKPIs(ctx, req)
	if err != nil {
		return nil, err
	}
	return &models.ComputeResponse{
		Scenario:     req,
		KPIs:         kpis,
		Assumptions:  assumptions,
		DataVersions: h.dataVersions(ctx),
		Warnings:     warnings,
	}, nil
}

func (h *KPIEchoHandler) compareResponse(ctx context.Context, req *models.CompareRequest) *models.CompareResponse {
	return &models.CompareResponse{
		Comparisons:  h.engine.CompareScenarios(ctx, req.Scenarios),
		DataVersions: h.dataVersions(ctx),
	}
}

// dataVersions is advisory provenance; failures degrade to empty.
func (h *KPIEchoHandler) dataVersions(ctx context.Context) map[string]string {
	versions, err := h.ref.DataVersions(ctx)
	if err != nil {
		h.logger.Warn("data versions lookup failed", xlogger.Error(err))
		return map[string]string{}
	}
	return versions
}
