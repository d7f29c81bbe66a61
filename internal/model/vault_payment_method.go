package model

import "time"

// VaultPaymentMethod mirrors a payment token stored in the provider's
// vault. The token id is the provider's; the surrogate id is ours.
type VaultPaymentMethod struct {
	ID         uint64 `gorm:"column:id;primaryKey" json:"id"`
	CustomerID uint64 `gorm:"column:customer_id;not null;index" json:"customerId"`

	PayPalPaymentTokenID string `gorm:"column:paypal_payment_token_id;type:varchar(64);uniqueIndex;not null" json:"paypalPaymentTokenId"`

	PaymentSourceType string  `gorm:"column:payment_source_type;type:varchar(32);not null" json:"paymentSourceType"`
	UsageType         string  `gorm:"column:usage_type;type:varchar(32);default:MERCHANT" json:"usageType"`
	CustomerType      string  `gorm:"column:customer_type;type:varchar(32);default:CONSUMER" json:"customerType"`
	PayerID           *string `gorm:"column:payer_id;type:varchar(64);index" json:"payerId"`

	PayPalStatus *string `gorm:"column:paypal_status;type:varchar(32)" json:"paypalStatus"`
	PayPalLinks  JSON    `gorm:"column:paypal_links;type:json" json:"paypalLinks"`

	IsActive  bool       `gorm:"column:is_active;not null;default:true" json:"isActive"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	DeletedAt *time.Time `gorm:"column:deleted_at" json:"deletedAt"`
}

func (VaultPaymentMethod) TableName() string { return "vault_payment_methods" }
