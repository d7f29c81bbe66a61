package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order intents.
const (
	IntentCapture   = "CAPTURE"
	IntentAuthorize = "AUTHORIZE"
)

// Order statuses as reported by PayPal. Only CREATED -> COMPLETED is
// driven by this system (via capture); the rest are observed through sync.
const (
	OrderStatusCreated             = "CREATED"
	OrderStatusSaved               = "SAVED"
	OrderStatusApproved            = "APPROVED"
	OrderStatusVoided              = "VOIDED"
	OrderStatusCompleted           = "COMPLETED"
	OrderStatusPayerActionRequired = "PAYER_ACTION_REQUIRED"
)

// Order mirrors one PayPal order locally, 1:1 with the remote resource.
// PayPalOrderID is set exactly once at creation and never overwritten;
// amount and currency are immutable after creation. Capture columns stay
// null until a successful capture call fills them.
type Order struct {
	ID            uint64 `gorm:"column:id;primaryKey" json:"id"`
	PayPalOrderID string `gorm:"column:paypal_order_id;type:varchar(64);uniqueIndex;not null" json:"paypalOrderId"`

	CustomerID           *uint64 `gorm:"column:customer_id;index" json:"customerId"`
	VaultPaymentMethodID *uint64 `gorm:"column:vault_payment_method_id;index" json:"vaultPaymentMethodId"`

	PayerID          *string `gorm:"column:payer_id;type:varchar(64);index" json:"payerId"`
	PayerEmail       *string `gorm:"column:payer_email;type:varchar(254);index" json:"payerEmail"`
	PayerNameGiven   *string `gorm:"column:payer_name_given;type:varchar(140)" json:"payerNameGiven"`
	PayerNameSurname *string `gorm:"column:payer_name_surname;type:varchar(140)" json:"payerNameSurname"`
	PayerCountry     *string `gorm:"column:payer_country;type:char(2)" json:"payerCountry"`

	Intent string `gorm:"column:intent;type:varchar(16);not null;default:CAPTURE" json:"intent"`
	Status string `gorm:"column:status;type:varchar(32);not null;index" json:"status"`

	Amount   decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	Currency string          `gorm:"column:currency;type:char(3);not null;default:USD" json:"currency"`

	CaptureID     *string    `gorm:"column:capture_id;type:varchar(64);index" json:"captureId"`
	CaptureStatus *string    `gorm:"column:capture_status;type:varchar(32)" json:"captureStatus"`
	FinalCapture  *bool      `gorm:"column:final_capture" json:"finalCapture"`
	CaptureTime   *time.Time `gorm:"column:capture_time" json:"captureTime"`

	GrossAmount *decimal.Decimal `gorm:"column:gross_amount;type:decimal(10,2)" json:"grossAmount"`
	PayPalFee   *decimal.Decimal `gorm:"column:paypal_fee;type:decimal(10,2)" json:"paypalFee"`
	NetAmount   *decimal.Decimal `gorm:"column:net_amount;type:decimal(10,2)" json:"netAmount"`

	Description *string `gorm:"column:description;type:text" json:"description"`
	ReferenceID *string `gorm:"column:reference_id;type:varchar(128);index" json:"referenceId"`

	ReturnURL *string `gorm:"column:return_url;type:varchar(512)" json:"returnUrl"`
	CancelURL *string `gorm:"column:cancel_url;type:varchar(512)" json:"cancelUrl"`

	ApprovalURL *string    `gorm:"column:approval_url;type:varchar(512)" json:"approvalUrl"`
	ApprovedAt  *time.Time `gorm:"column:approved_at" json:"approvedAt"`

	PaymentSource    JSON `gorm:"column:payment_source;type:json" json:"paymentSource"`
	Captures         JSON `gorm:"column:captures;type:json" json:"captures"`
	SellerProtection JSON `gorm:"column:seller_protection;type:json" json:"sellerProtection"`
	PayPalLinks      JSON `gorm:"column:paypal_links;type:json" json:"paypalLinks"`

	// Verbatim provider response, kept for audit/debug.
	PayPalResponse JSON `gorm:"column:paypal_response;type:json" json:"paypalResponse"`

	IsActive  bool       `gorm:"column:is_active;not null;default:true" json:"isActive"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Order) TableName() string { return "orders" }
