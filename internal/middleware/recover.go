package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paypal-order-api/internal/constant"
	"paypal-order-api/internal/dto"
)

func Recover() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				c.JSON(http.StatusInternalServerError, dto.Fail(constant.CodeInternalError, "internal server error"))
				c.Abort()
			}
		}()
		c.Next()
	}
}
