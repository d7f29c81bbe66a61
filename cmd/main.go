package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"paypal-order-api/internal/config"
	"paypal-order-api/internal/dal"
	"paypal-order-api/internal/dao"
	"paypal-order-api/internal/handler"
	"paypal-order-api/internal/idgen"
	"paypal-order-api/internal/middleware"
	"paypal-order-api/internal/paypal"
	"paypal-order-api/internal/service"
)

func main() {
	config.Init()

	dal.InitDB()
	dal.InitRedis()
	dal.InitRabbitMQ()

	idgen.Init(1)

	client := paypal.NewClient(paypal.Config{
		Mode:         config.C.PayPal.Mode,
		ClientID:     config.C.PayPal.ClientID,
		ClientSecret: config.C.PayPal.ClientSecret,
		Timeout:      config.C.PayPal.Timeout,
	})

	orderDao := dao.NewOrderDao()
	customerDao := dao.NewCustomerDao()
	vaultDao := dao.NewVaultDao()

	orderSvc := service.NewOrderService(client, orderDao, customerDao, vaultDao)
	customerSvc := service.NewCustomerService(customerDao)
	vaultSvc := service.NewVaultService(vaultDao)

	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.SetTrustedProxies([]string{"127.0.0.1", "192.168.0.0/16"})
	r.Use(middleware.Recover(), middleware.RequestLogger())
	handler.RegisterValidations()

	v1 := r.Group("/api/v1")
	{
		oh := handler.NewOrderHandler(orderSvc)
		v1.POST("/orders", oh.Create)
		v1.GET("/orders", oh.List)
		v1.GET("/orders/:id", oh.Get)
		v1.POST("/orders/:id/capture", oh.Capture)

		ch := handler.NewCustomerHandler(customerSvc)
		v1.POST("/customers", ch.Create)
		v1.GET("/customers", ch.List)
		v1.GET("/customers/:id", ch.Get)
		v1.PUT("/customers/:id", ch.Update)
		v1.DELETE("/customers/:id", ch.Delete)
		v1.GET("/customers/:id/orders", oh.ListByCustomer("id"))

		v1.POST("/vault/orders", oh.CreateWithVaultToken)

		vh := handler.NewVaultHandler(vaultSvc)
		v1.POST("/vault/payment-methods", vh.Record)
		v1.GET("/vault/payment-methods", vh.ListByCustomer)
		v1.DELETE("/vault/payment-methods/:id", vh.Delete)

		wh := handler.NewWebhookHandler()
		v1.POST("/webhooks/paypal", wh.Receive)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
