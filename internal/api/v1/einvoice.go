package v1

import (
	"net/http"
	"strconv"

	"github.com/emretit/paftamobile-sub005/internal/api/dto"
	"github.com/emretit/paftamobile-sub005/internal/logger"
	"github.com/emretit/paftamobile-sub005/internal/service"
	"github.com/gin-gonic/gin"
)

type EInvoiceHandler struct {
	service service.EInvoiceService
	log     *logger.Logger
}

func NewEInvoiceHandler(service service.EInvoiceService, log *logger.Logger) *EInvoiceHandler {
	return &EInvoiceHandler{
		service: service,
		log:     log,
	}
}

// @Summary Send an invoice as an e-invoice
// @Description Send an invoice as an e-invoice
// @Tags EInvoices
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.SendEInvoiceResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Router /einvoices/{id}/send [post]
func (h *EInvoiceHandler) SendInvoice(c *gin.Context) {
	id := c.Param("id")

	ok := h.service.SendInvoice(c.Request.Context(), id)

	resp := dto.SendEInvoiceResponse{Success: ok}
	if !ok {
		resp.Message = "E-fatura gönderimi başarısız oldu, detaylar takip kaydında"
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Resend an invoice as an e-invoice
// @Description Resend an invoice as an e-invoice
// @Tags EInvoices
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.SendEInvoiceResponse
// @Failure 401 {object} ierr.ErrorResponse
// @Router /einvoices/{id}/resend [post]
func (h *EInvoiceHandler) ResendInvoice(c *gin.Context) {
	id := c.Param("id")

	ok := h.service.ResendInvoice(c.Request.Context(), id)

	resp := dto.SendEInvoiceResponse{Success: ok}
	if !ok {
		resp.Message = "E-fatura gönderimi başarısız oldu, detaylar takip kaydında"
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Poll the provider for the current e-invoice status
// @Description Poll the provider for the current e-invoice status
// @Tags EInvoices
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.EInvoiceTrackingResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /einvoices/{id}/status [post]
func (h *EInvoiceHandler) CheckInvoiceStatus(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.CheckInvoiceStatus(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get the e-invoice tracking record
// @Description Get the e-invoice tracking record
// @Tags EInvoices
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.EInvoiceTrackingResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /einvoices/{id} [get]
func (h *EInvoiceHandler) GetTracking(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetTracking(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get the provider call logs of an invoice
// @Description Get the provider call logs of an invoice
// @Tags EInvoices
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.ListEInvoiceLogsResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /einvoices/{id}/logs [get]
func (h *EInvoiceHandler) GetLogs(c *gin.Context) {
	id := c.Param("id")

	resp, err := h.service.GetLogs(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Download the rendered e-invoice PDF
// @Description Download the rendered e-invoice PDF
// @Tags EInvoices
// @Produce application/pdf
// @Security ApiKeyAuth
// @Param id path string true "Invoice ID"
// @Success 200 {file} binary
// @Failure 404 {object} ierr.ErrorResponse
// @Router /einvoices/{id}/pdf [get]
func (h *EInvoiceHandler) DownloadPDF(c *gin.Context) {
	id := c.Param("id")

	data, err := h.service.DownloadInvoicePDF(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+id+".pdf")
	c.Data(http.StatusOK, "application/pdf", data)
}

// @Summary List outgoing documents as the provider sees them
// @Description List outgoing documents as the provider sees them
// @Tags EInvoices
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} dto.ListProviderInvoicesResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /einvoices [get]
func (h *EInvoiceHandler) ListProviderInvoices(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	resp, err := h.service.ListProviderInvoices(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Refresh all pending e-invoice statuses
// @Description Refresh all pending e-invoice statuses
// @Tags EInvoices
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.RefreshPendingResponse
// @Failure 500 {object} ierr.ErrorResponse
// @Router /einvoices/refresh [post]
func (h *EInvoiceHandler) RefreshPendingStatuses(c *gin.Context) {
	resp, err := h.service.RefreshPendingStatuses(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
