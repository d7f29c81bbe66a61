package model

import "time"

// Customer is a locally known payer. Email is indexed but not unique:
// the same address can exist under more than one provider customer id.
type Customer struct {
	ID               uint64  `gorm:"column:id;primaryKey" json:"id"`
	PayPalCustomerID string  `gorm:"column:paypal_customer_id;type:varchar(64);uniqueIndex;not null" json:"paypalCustomerId"`
	EmailAddress     string  `gorm:"column:email_address;type:varchar(254);not null;index" json:"emailAddress"`
	GivenName        *string `gorm:"column:given_name;type:varchar(140)" json:"givenName"`
	Surname          *string `gorm:"column:surname;type:varchar(140)" json:"surname"`
	PhoneNumber      *string `gorm:"column:phone_number;type:varchar(32)" json:"phoneNumber"`

	DefaultShippingAddress JSON `gorm:"column:default_shipping_address;type:json" json:"defaultShippingAddress"`

	IsActive  bool       `gorm:"column:is_active;not null;default:true" json:"isActive"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Customer) TableName() string { return "customers" }
