package mq

import (
	"encoding/json"
	"errors"

	"github.com/streadway/amqp"

	"paypal-order-api/internal/dal"
)

const exchange = "order_events"

// OrderCreatedEvent is published after a local order row is written for a
// freshly created provider order.
type OrderCreatedEvent struct {
	OrderID       uint64 `json:"order_id"`
	PayPalOrderID string `json:"paypal_order_id"`
	Intent        string `json:"intent"`
	Status        string `json:"status"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	CustomerID    uint64 `json:"customer_id,omitempty"`
	CreatedAt     int64  `json:"created_at"`
}

// OrderCapturedEvent is published after a capture is recorded locally.
type OrderCapturedEvent struct {
	OrderID       uint64 `json:"order_id"`
	PayPalOrderID string `json:"paypal_order_id"`
	CaptureID     string `json:"capture_id"`
	CaptureStatus string `json:"capture_status"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	CapturedAt    int64  `json:"captured_at"`
}

func PublishOrderCreated(evt OrderCreatedEvent) error {
	return publish("order.created", evt)
}

func PublishOrderCaptured(evt OrderCapturedEvent) error {
	return publish("order.captured", evt)
}

func publish(routingKey string, payload any) error {
	if dal.RabbitCh == nil {
		return errors.New("rabbitmq channel not initialized")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return dal.RabbitCh.Publish(exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}
