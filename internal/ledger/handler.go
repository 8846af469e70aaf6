package ledger

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/frontdesk/internal/platform/auth"
	"github.com/hms/frontdesk/internal/platform/metrics"
)

// DegradedHeader flags responses whose receipt numbers include values
// minted from the local fallback counter.
const DegradedHeader = "X-Receipts-Degraded"

type Handler struct {
	svc     *Service
	metrics *metrics.Metrics
}

func NewHandler(svc *Service, m *metrics.Metrics) *Handler {
	return &Handler{svc: svc, metrics: m}
}

func (h *Handler) observe(status string) {
	if h.metrics != nil {
		h.metrics.LedgerRequests.WithLabelValues(status).Inc()
	}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "frontdesk", "billing"))
	g.GET("/patients/:id/ledger", h.GetTimeline)
	g.GET("/patients/:id/ledger/summary", h.GetSummary)
}

// GetTimeline returns the full ordered timeline including the registration
// anchor, plus the reconciled summary.
func (h *Handler) GetTimeline(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.observe("bad_request")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	st, err := h.svc.Timeline(c.Request().Context(), id)
	if err != nil {
		h.observe("not_found")
		return echo.NewHTTPError(http.StatusNotFound, "patient ledger not found")
	}
	if st.Degraded {
		c.Response().Header().Set(DegradedHeader, "true")
	}
	h.observe("ok")
	return c.JSON(http.StatusOK, st)
}

// GetSummary returns only the financial roll-up.
func (h *Handler) GetSummary(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.observe("bad_request")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	st, err := h.svc.Timeline(c.Request().Context(), id)
	if err != nil {
		h.observe("not_found")
		return echo.NewHTTPError(http.StatusNotFound, "patient ledger not found")
	}
	if st.Degraded {
		c.Response().Header().Set(DegradedHeader, "true")
	}
	h.observe("ok")
	return c.JSON(http.StatusOK, st.Summary)
}
