package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"paypal-order-api/internal/constant"
	"paypal-order-api/internal/dto"
	"paypal-order-api/internal/money"
	"paypal-order-api/internal/paypal"
	"paypal-order-api/internal/service"
)

const maxPageSize = 50

type OrderHandler struct{ svc *service.OrderService }

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.OrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(constant.CodeBadRequest, err.Error()))
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Success(resp))
}

func (h *OrderHandler) CreateWithVaultToken(c *gin.Context) {
	var req dto.VaultOrderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(constant.CodeBadRequest, err.Error()))
		return
	}
	resp, err := h.svc.CreateWithVaultToken(c.Request.Context(), &req)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Success(resp))
}

func (h *OrderHandler) Get(c *gin.Context) {
	sync, _ := strconv.ParseBool(c.DefaultQuery("sync_with_paypal", "false"))
	resp, _, err := h.svc.Get(c.Request.Context(), c.Param("id"), sync)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, dto.Fail(constant.CodeOrderNotFound, constant.ErrorMessages[constant.CodeOrderNotFound]))
		return
	}
	c.JSON(http.StatusOK, dto.Success(resp))
}

func (h *OrderHandler) Capture(c *gin.Context) {
	var req dto.OrderCaptureRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail(constant.CodeBadRequest, err.Error()))
			return
		}
	}
	resp, err := h.svc.Capture(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, dto.Fail(constant.CodeOrderNotFound, constant.ErrorMessages[constant.CodeOrderNotFound]))
		return
	}
	c.JSON(http.StatusOK, dto.Success(resp))
}

func (h *OrderHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)

	var customerID *uint64
	if raw := c.Query("customer_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail(constant.CodeBadRequest, "customer_id must be numeric"))
			return
		}
		customerID = &id
	}
	var status *string
	if raw := c.Query("status"); raw != "" {
		status = &raw
	}

	resp, err := h.svc.List(page, pageSize, customerID, status)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Success(resp))
}

// ListByCustomer serves the /orders/customer/:customer_id and
// /customers/:id/orders conveniences.
func (h *OrderHandler) ListByCustomer(idParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param(idParam), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail(constant.CodeBadRequest, "customer id must be numeric"))
			return
		}
		page, pageSize := pagination(c)
		var status *string
		if raw := c.Query("status"); raw != "" {
			status = &raw
		}
		resp, lerr := h.svc.List(page, pageSize, &id, status)
		if lerr != nil {
			respondOrderError(c, lerr)
			return
		}
		c.JSON(http.StatusOK, dto.Success(resp))
	}
}

func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// respondOrderError maps service errors onto the envelope. Amount and
// provider-reported problems are the caller's to fix (400); a response we
// could not interpret is a gateway fault (502); anything else stays a
// generic 500.
func respondOrderError(c *gin.Context, err error) {
	var amountErr *money.ErrInvalidAmount
	if errors.As(err, &amountErr) {
		c.JSON(http.StatusBadRequest, dto.Fail(constant.CodeOrderAmountInvalid, amountErr.Error()))
		return
	}
	var provErr *paypal.ProviderError
	if errors.As(err, &provErr) {
		c.JSON(http.StatusBadRequest, dto.Fail(constant.CodeProviderCommunication, constant.ErrorMessages[constant.CodeProviderCommunication]))
		return
	}
	var malErr *paypal.MalformedResponseError
	if errors.As(err, &malErr) {
		c.JSON(http.StatusBadGateway, dto.Fail(constant.CodeProviderMalformed, constant.ErrorMessages[constant.CodeProviderMalformed]))
		return
	}
	c.JSON(http.StatusInternalServerError, dto.Fail(constant.CodeInternalError, constant.ErrorMessages[constant.CodeInternalError]))
}
