package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"paypal-order-api/internal/constant"
	"paypal-order-api/internal/dto"
	"paypal-order-api/internal/service"
)

type VaultHandler struct{ svc *service.VaultService }

func NewVaultHandler(svc *service.VaultService) *VaultHandler {
	return &VaultHandler{svc: svc}
}

func (h *VaultHandler) Record(c *gin.Context) {
	var req dto.VaultPaymentMethodCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(constant.CodeBadRequest, err.Error()))
		return
	}
	resp, err := h.svc.Record(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Fail(constant.CodeInternalError, constant.ErrorMessages[constant.CodeInternalError]))
		return
	}
	c.JSON(http.StatusCreated, dto.Success(resp))
}

func (h *VaultHandler) ListByCustomer(c *gin.Context) {
	customerID, err := strconv.ParseUint(c.Query("customer_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(constant.CodeBadRequest, "customer_id is required and must be numeric"))
		return
	}
	resp, err := h.svc.ListByCustomer(customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Fail(constant.CodeInternalError, constant.ErrorMessages[constant.CodeInternalError]))
		return
	}
	c.JSON(http.StatusOK, dto.Success(resp))
}

func (h *VaultHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(constant.CodeBadRequest, "payment method id must be numeric"))
		return
	}
	ok, err := h.svc.Deactivate(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Fail(constant.CodeInternalError, constant.ErrorMessages[constant.CodeInternalError]))
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, dto.Fail(constant.CodeVaultTokenNotFound, constant.ErrorMessages[constant.CodeVaultTokenNotFound]))
		return
	}
	c.JSON(http.StatusOK, dto.Success(gin.H{"deleted": true}))
}
