package dto

import "time"

type CustomerCreateRequest struct {
	PayPalCustomerID string         `json:"paypal_customer_id" binding:"required,max=64"`
	EmailAddress     string         `json:"email_address" binding:"required,email"`
	GivenName        string         `json:"given_name" binding:"omitempty,max=140"`
	Surname          string         `json:"surname" binding:"omitempty,max=140"`
	PhoneNumber      string         `json:"phone_number" binding:"omitempty,max=32"`
	ShippingAddress  map[string]any `json:"default_shipping_address"`
}

type CustomerUpdateRequest struct {
	EmailAddress    string         `json:"email_address" binding:"omitempty,email"`
	GivenName       string         `json:"given_name" binding:"omitempty,max=140"`
	Surname         string         `json:"surname" binding:"omitempty,max=140"`
	PhoneNumber     string         `json:"phone_number" binding:"omitempty,max=32"`
	ShippingAddress map[string]any `json:"default_shipping_address"`
}

type CustomerResponse struct {
	ID               uint64     `json:"id"`
	PayPalCustomerID string     `json:"paypal_customer_id"`
	EmailAddress     string     `json:"email_address"`
	GivenName        string     `json:"given_name,omitempty"`
	Surname          string     `json:"surname,omitempty"`
	PhoneNumber      string     `json:"phone_number,omitempty"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

type CustomerListResponse struct {
	Customers   []CustomerResponse `json:"customers"`
	TotalItems  int64              `json:"total_items"`
	TotalPages  int64              `json:"total_pages"`
	CurrentPage int                `json:"current_page"`
	PageSize    int                `json:"page_size"`
}
