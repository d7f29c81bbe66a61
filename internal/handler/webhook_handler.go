package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"paypal-order-api/internal/dto"
)

// WebhookHandler acknowledges provider webhook deliveries. Signature
// verification and event-driven state changes are handled by sync for
// now, so events are logged and accepted.
type WebhookHandler struct{}

func NewWebhookHandler() *WebhookHandler { return &WebhookHandler{} }

func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusOK, dto.Success(gin.H{"received": true}))
		return
	}

	var evt struct {
		ID           string `json:"id"`
		EventType    string `json:"event_type"`
		ResourceType string `json:"resource_type"`
	}
	_ = json.Unmarshal(body, &evt)

	logrus.WithFields(logrus.Fields{
		"webhook_id":    evt.ID,
		"event_type":    evt.EventType,
		"resource_type": evt.ResourceType,
	}).Info("paypal webhook received")

	c.JSON(http.StatusOK, dto.Success(gin.H{"received": true}))
}
