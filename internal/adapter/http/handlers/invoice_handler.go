package handlers

import (
	"errors"
	"net/http"

	request "garage_admin/internal/adapter/http/dto/request"
	response "garage_admin/internal/adapter/http/dto/response"
	"garage_admin/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// InvoiceHandler handles invoice CRUD and settlement.
type InvoiceHandler struct {
	invoices   usecase.IInvoiceUseCase
	settlement usecase.ISettlementUseCase
}

func NewInvoiceHandler(invoices usecase.IInvoiceUseCase, settlement usecase.ISettlementUseCase) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, settlement: settlement}
}

func (h *InvoiceHandler) List(c *gin.Context) {
	items, err := h.invoices.List(c.Request.Context())
	if err != nil {
		writeError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	inv, err := h.invoices.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var payload request.InvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	inv, err := h.invoices.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		writeError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	var payload request.InvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidRequest)
		return
	}

	inv, err := h.invoices.Update(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		writeError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	if err := h.invoices.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, mapInvoiceError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// Settle records payment for a pending invoice and completes it. Repeating
// the call with the same idempotency key returns the same settlement.
func (h *InvoiceHandler) Settle(c *gin.Context) {
	invoiceID := c.Param("id")
	var payload request.SettleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		logrus.WithError(err).WithField("invoice_id", invoiceID).Info("[settlement][handler] invalid payload")
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			writeError(c, mapInvoiceError(usecase.ErrInvalidPaymentMethod))
			return
		}
		writeError(c, errInvalidRequest)
		return
	}

	res, err := h.settlement.Settle(c.Request.Context(), payload.ToCommand(invoiceID, c.GetHeader("Idempotency-Key")))
	if err != nil {
		writeError(c, mapInvoiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromSettlement(res))
}
