package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invoicegen/internal/domain"
	"invoicegen/internal/service"
)

// invoiceDateInputFormat is the dd-mm-yyyy form operators already use on
// the billing workbook.
const invoiceDateInputFormat = "02-01-2006"

// GenerateRunInput is the DTO for triggering a billing run.
type GenerateRunInput struct {
	Period      string `json:"period" binding:"required"`
	InvoiceDate string `json:"invoice_date" binding:"required"`
}

// RunHandler handles invoice run endpoints.
type RunHandler struct {
	svc service.InvoiceService
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(svc service.InvoiceService) *RunHandler {
	return &RunHandler{svc: svc}
}

// Generate handles POST /api/v1/runs
func (h *RunHandler) Generate(c *gin.Context) {
	var input GenerateRunInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	invoiceDate, err := time.Parse(invoiceDateInputFormat, input.InvoiceDate)
	if err != nil {
		HandleError(c, domain.ErrInvalidInvoiceDate)
		return
	}

	run, err := h.svc.GenerateMonth(c.Request.Context(), input.Period, invoiceDate)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, run)
}

// GetByID handles GET /api/v1/runs/:id
func (h *RunHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "run id must be a UUID")
		return
	}

	run, err := h.svc.GetRun(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, run)
}

// List handles GET /api/v1/runs
func (h *RunHandler) List(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "limit must be a positive integer")
			return
		}
		limit = v
	}

	runs, err := h.svc.ListRuns(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, runs)
}
