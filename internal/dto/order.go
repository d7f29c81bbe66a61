package dto

import "time"

// AmountRequest carries a monetary value as a fixed-point decimal string.
// Floats never appear on the wire.
type AmountRequest struct {
	CurrencyCode string `json:"currency_code" binding:"required,len=3,currency"`
	Value        string `json:"value" binding:"required"`
}

type ItemRequest struct {
	Name        string        `json:"name" binding:"required,max=127"`
	Quantity    string        `json:"quantity" binding:"required"`
	UnitAmount  AmountRequest `json:"unit_amount" binding:"required"`
	Description string        `json:"description" binding:"omitempty,max=127"`
	Category    string        `json:"category" binding:"omitempty,oneof=PHYSICAL_GOODS DIGITAL_GOODS DONATION"`
}

type ShippingAddressRequest struct {
	AddressLine1 string `json:"address_line_1" binding:"required"`
	AddressLine2 string `json:"address_line_2"`
	AdminArea1   string `json:"admin_area_1"`
	AdminArea2   string `json:"admin_area_2" binding:"required"`
	PostalCode   string `json:"postal_code" binding:"required"`
	CountryCode  string `json:"country_code" binding:"required,len=2"`
}

type ShippingRequest struct {
	Name    string                 `json:"name"`
	Address ShippingAddressRequest `json:"address" binding:"required"`
}

type OrderCreateRequest struct {
	Intent      string        `json:"intent" binding:"omitempty,oneof=CAPTURE AUTHORIZE"`
	ReferenceID string        `json:"reference_id" binding:"omitempty,max=128"`
	Description string        `json:"description" binding:"omitempty,max=2048"`
	Amount      AmountRequest `json:"amount" binding:"required"`
	Items       []ItemRequest `json:"items" binding:"omitempty,dive"`

	Shipping *ShippingRequest `json:"shipping"`

	ReturnURL string `json:"return_url" binding:"required,url"`
	CancelURL string `json:"cancel_url" binding:"required,url"`

	PayerEmail string `json:"payer_email" binding:"omitempty,email"`
}

// VaultOrderCreateRequest charges a previously vaulted payment method.
type VaultOrderCreateRequest struct {
	VaultID     string        `json:"vault_id" binding:"required"`
	Amount      AmountRequest `json:"amount" binding:"required"`
	Intent      string        `json:"intent" binding:"omitempty,oneof=CAPTURE AUTHORIZE"`
	ReferenceID string        `json:"reference_id" binding:"omitempty,max=128"`
	Description string        `json:"description" binding:"omitempty,max=2048"`
	ReturnURL   string        `json:"return_url" binding:"omitempty,url"`
	CancelURL   string        `json:"cancel_url" binding:"omitempty,url"`
}

type OrderCaptureRequest struct {
	NoteToPayer  string `json:"note_to_payer" binding:"omitempty,max=255"`
	FinalCapture *bool  `json:"final_capture"`
}

type PayerInfo struct {
	PayerID      string `json:"payer_id,omitempty"`
	EmailAddress string `json:"email_address,omitempty"`
	GivenName    string `json:"given_name,omitempty"`
	Surname      string `json:"surname,omitempty"`
}

type LinkResponse struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

// SyncState values reported on reads that requested provider sync.
const (
	SyncStateFresh = "fresh"
	SyncStateStale = "stale"
)

type OrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Intent string `json:"intent"`

	Amount   string `json:"amount"`
	Currency string `json:"currency"`

	ReferenceID string `json:"reference_id,omitempty"`
	Description string `json:"description,omitempty"`

	ApprovalURL string         `json:"approval_url,omitempty"`
	Links       []LinkResponse `json:"links,omitempty"`

	Payer *PayerInfo `json:"payer,omitempty"`

	CaptureID     string `json:"capture_id,omitempty"`
	CaptureStatus string `json:"capture_status,omitempty"`
	GrossAmount   string `json:"gross_amount,omitempty"`
	PayPalFee     string `json:"paypal_fee,omitempty"`
	NetAmount     string `json:"net_amount,omitempty"`

	// SyncState is set only when the read requested provider sync:
	// "fresh" when the provider answered, "stale" when the call fell back
	// to the last known local state.
	SyncState string `json:"sync_state,omitempty"`

	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

type OrderListResponse struct {
	Orders      []OrderResponse `json:"orders"`
	TotalItems  int64           `json:"total_items"`
	TotalPages  int64           `json:"total_pages"`
	CurrentPage int             `json:"current_page"`
	PageSize    int             `json:"page_size"`
}

type CaptureResponse struct {
	CaptureID    string     `json:"capture_id"`
	Status       string     `json:"status"`
	Amount       string     `json:"amount"`
	Currency     string     `json:"currency"`
	FinalCapture bool       `json:"final_capture"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}
