package dto

import "time"

// VaultPaymentMethodCreateRequest records a token the provider already
// vaulted. This service mirrors tokens; it does not run setup-token flows.
type VaultPaymentMethodCreateRequest struct {
	CustomerID           uint64         `json:"customer_id" binding:"required"`
	PayPalPaymentTokenID string         `json:"paypal_payment_token_id" binding:"required,max=64"`
	PaymentSourceType    string         `json:"payment_source_type" binding:"required,oneof=paypal card"`
	UsageType            string         `json:"usage_type" binding:"omitempty,max=32"`
	CustomerType         string         `json:"customer_type" binding:"omitempty,max=32"`
	PayerID              string         `json:"payer_id" binding:"omitempty,max=64"`
	PayPalStatus         string         `json:"paypal_status" binding:"omitempty,max=32"`
	Links                map[string]any `json:"links"`
}

type VaultPaymentMethodResponse struct {
	ID                   uint64     `json:"id"`
	CustomerID           uint64     `json:"customer_id"`
	PayPalPaymentTokenID string     `json:"paypal_payment_token_id"`
	PaymentSourceType    string     `json:"payment_source_type"`
	UsageType            string     `json:"usage_type"`
	CustomerType         string     `json:"customer_type"`
	PayerID              string     `json:"payer_id,omitempty"`
	PayPalStatus         string     `json:"paypal_status,omitempty"`
	IsActive             bool       `json:"is_active"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty"`
}

type VaultPaymentMethodListResponse struct {
	PaymentMethods []VaultPaymentMethodResponse `json:"payment_methods"`
	TotalItems     int64                        `json:"total_items"`
}
