package document

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/frontdesk/internal/ledger"
	"github.com/hms/frontdesk/internal/platform/auth"
	"github.com/hms/frontdesk/internal/platform/metrics"
)

// Handler serves the printable documents. It composes payloads from the
// ledger service and hands them to the pure renderer; opening the print
// surface is the browser's job.
type Handler struct {
	svc      *ledger.Service
	receipts *ledger.ReceiptResolver
	renderer *Renderer
	hospital Hospital
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewHandler(svc *ledger.Service, receipts *ledger.ReceiptResolver, hospital Hospital, m *metrics.Metrics) *Handler {
	return &Handler{
		svc:      svc,
		receipts: receipts,
		renderer: NewRenderer(),
		hospital: hospital,
		metrics:  m,
		now:      time.Now,
	}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "frontdesk", "billing"))
	g.GET("/patients/:id/documents/bill", h.GetBill)
	g.GET("/patients/:id/documents/bill.pdf", h.GetBillPDF)
	g.GET("/patients/:id/documents/bill.xlsx", h.GetBillXLSX)
	g.GET("/patients/:id/events/:eventID/receipt", h.GetReceipt)
	g.POST("/documents/adhoc-bill", h.PostAdhocBill)
}

func (h *Handler) billData(c echo.Context) (*BillData, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	st, err := h.svc.Timeline(c.Request().Context(), id)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "patient ledger not found")
	}
	if st.Degraded {
		c.Response().Header().Set(ledger.DegradedHeader, "true")
	}
	return &BillData{
		Hospital:    h.hospital,
		Patient:     st.Patient,
		GeneratedAt: h.now().Format("02 Jan 2006, 3:04 PM"),
		Events:      ledger.Printable(st.Events),
		Summary:     st.Summary,
		Degraded:    st.Degraded,
	}, nil
}

// GetBill renders the comprehensive HTML statement.
func (h *Handler) GetBill(c echo.Context) error {
	data, err := h.billData(c)
	if err != nil {
		return err
	}
	out, err := h.renderer.Bill(*data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.count("bill")
	return c.HTML(http.StatusOK, out)
}

// GetBillPDF renders the statement as a PDF attachment.
func (h *Handler) GetBillPDF(c echo.Context) error {
	data, err := h.billData(c)
	if err != nil {
		return err
	}
	out, err := BuildBillPDF(*data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.count("bill_pdf")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="statement.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", out)
}

// GetBillXLSX renders the statement as a workbook attachment.
func (h *Handler) GetBillXLSX(c echo.Context) error {
	data, err := h.billData(c)
	if err != nil {
		return err
	}
	out, err := BuildBillXLSX(*data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.count("bill_xlsx")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="statement.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", out)
}

// GetReceipt renders a single-item receipt for one timeline event.
func (h *Handler) GetReceipt(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	ev, patient, err := h.svc.Event(c.Request().Context(), id, c.Param("eventID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "event not found")
	}
	out, err := h.renderer.Receipt(ReceiptData{Hospital: h.hospital, Patient: *patient, Event: *ev})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.count("receipt")
	return c.HTML(http.StatusOK, out)
}

type adhocBillRequest struct {
	PatientName string                 `json:"patientName"`
	Date        string                 `json:"date"`
	Items       []*ledger.BillLineItem `json:"items"`
	Payments    float64                `json:"payments"`
	Discounts   float64                `json:"discounts"`
}

// PostAdhocBill renders a manually composed bill. Line amounts are
// recomputed server side as rate x quantity; whatever the client sent for
// "amount" is ignored.
func (h *Handler) PostAdhocBill(c echo.Context) error {
	var req adhocBillRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Items) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one line item is required")
	}

	billNumber := ledger.ReceiptNotGenerated
	if h.receipts != nil {
		billNumber = h.receipts.Mint(c.Request().Context(), ledger.TypeCodeBill, h.now())
	}

	data := AdhocBillData{
		Hospital:    h.hospital,
		BillNumber:  billNumber,
		PatientName: req.PatientName,
		Date:        req.Date,
		Items:       req.Items,
		Summary:     ledger.SummarizeLineItems(req.Items, req.Payments, req.Discounts),
	}
	out, err := h.renderer.AdhocBill(data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	h.count("adhoc_bill")
	return c.HTML(http.StatusOK, out)
}

func (h *Handler) count(kind string) {
	if h.metrics != nil {
		h.metrics.DocumentsRendered.WithLabelValues(kind).Inc()
	}
}
