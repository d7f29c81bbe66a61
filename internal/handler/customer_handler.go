package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"paypal-order-api/internal/constant"
	"paypal-order-api/internal/dto"
	"paypal-order-api/internal/service"
)

type CustomerHandler struct{ svc *service.CustomerService }

func NewCustomerHandler(svc *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CustomerCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(constant.CodeBadRequest, err.Error()))
		return
	}
	resp, err := h.svc.Create(&req)
	if err != nil {
		var ce constant.Error
		if errors.As(err, &ce) && ce.Code() == constant.CodeCustomerAlreadyExists {
			c.JSON(http.StatusConflict, dto.Fail(ce.Code(), ce.Message()))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Fail(constant.CodeInternalError, constant.ErrorMessages[constant.CodeInternalError]))
		return
	}
	c.JSON(http.StatusCreated, dto.Success(resp))
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(constant.CodeBadRequest, "customer id must be numeric"))
		return
	}
	resp, err := h.svc.Get(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Fail(constant.CodeInternalError, constant.ErrorMessages[constant.CodeInternalError]))
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, dto.Fail(constant.CodeCustomerNotFound, constant.ErrorMessages[constant.CodeCustomerNotFound]))
		return
	}
	c.JSON(http.StatusOK, dto.Success(resp))
}

// List also answers point lookups by email via ?email=; a static /email
// sub-route would collide with the :id wildcard.
func (h *CustomerHandler) List(c *gin.Context) {
	if email := c.Query("email"); email != "" {
		resp, err := h.svc.GetByEmail(email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.Fail(constant.CodeInternalError, constant.ErrorMessages[constant.CodeInternalError]))
			return
		}
		if resp == nil {
			c.JSON(http.StatusNotFound, dto.Fail(constant.CodeCustomerNotFound, constant.ErrorMessages[constant.CodeCustomerNotFound]))
			return
		}
		c.JSON(http.StatusOK, dto.Success(resp))
		return
	}

	page, pageSize := pagination(c)
	var isActive *bool
	if raw := c.Query("is_active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Fail(constant.CodeBadRequest, "is_active must be a boolean"))
			return
		}
		isActive = &v
	}
	resp, err := h.svc.List(page, pageSize, isActive)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Fail(constant.CodeInternalError, constant.ErrorMessages[constant.CodeInternalError]))
		return
	}
	c.JSON(http.StatusOK, dto.Success(resp))
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(constant.CodeBadRequest, "customer id must be numeric"))
		return
	}
	var req dto.CustomerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(constant.CodeBadRequest, err.Error()))
		return
	}
	resp, err := h.svc.Update(id, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Fail(constant.CodeInternalError, constant.ErrorMessages[constant.CodeInternalError]))
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, dto.Fail(constant.CodeCustomerNotFound, constant.ErrorMessages[constant.CodeCustomerNotFound]))
		return
	}
	c.JSON(http.StatusOK, dto.Success(resp))
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(constant.CodeBadRequest, "customer id must be numeric"))
		return
	}
	ok, err := h.svc.Deactivate(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Fail(constant.CodeInternalError, constant.ErrorMessages[constant.CodeInternalError]))
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, dto.Fail(constant.CodeCustomerNotFound, constant.ErrorMessages[constant.CodeCustomerNotFound]))
		return
	}
	c.JSON(http.StatusOK, dto.Success(gin.H{"deleted": true}))
}
