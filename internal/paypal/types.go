package paypal

// Wire shapes for the PayPal Orders v2 API. Every nested field is a
// pointer or slice: the provider omits whole sub-objects depending on the
// order's lifecycle stage, and absence is not an error. Nothing outside
// this package depends on these shapes; the translator flattens them into
// ProcessedOrder at the boundary.

type MoneyPayload struct {
	CurrencyCode string `json:"currency_code,omitempty"`
	Value        string `json:"value,omitempty"`
}

type LinkPayload struct {
	Href   string `json:"href,omitempty"`
	Rel    string `json:"rel,omitempty"`
	Method string `json:"method,omitempty"`
}

type NamePayload struct {
	GivenName string `json:"given_name,omitempty"`
	Surname   string `json:"surname,omitempty"`
	FullName  string `json:"full_name,omitempty"`
}

type PayerPayload struct {
	PayerID      string       `json:"payer_id,omitempty"`
	EmailAddress string       `json:"email_address,omitempty"`
	Name         *NamePayload `json:"name,omitempty"`
	Address      *struct {
		CountryCode string `json:"country_code,omitempty"`
	} `json:"address,omitempty"`
}

type StoredCredentialPayload struct {
	PaymentInitiator string `json:"payment_initiator,omitempty"`
	Usage            string `json:"usage,omitempty"`
	UsagePattern     string `json:"usage_pattern,omitempty"`
}

type PayPalSourcePayload struct {
	VaultID          string                   `json:"vault_id,omitempty"`
	EmailAddress     string                   `json:"email_address,omitempty"`
	AccountID        string                   `json:"account_id,omitempty"`
	StoredCredential *StoredCredentialPayload `json:"stored_credential,omitempty"`
}

type CardSourcePayload struct {
	LastDigits string `json:"last_digits,omitempty"`
	Brand      string `json:"brand,omitempty"`
}

type PaymentSourcePayload struct {
	PayPal *PayPalSourcePayload `json:"paypal,omitempty"`
	Card   *CardSourcePayload   `json:"card,omitempty"`
}

type SellerProtectionPayload struct {
	Status            string   `json:"status,omitempty"`
	DisputeCategories []string `json:"dispute_categories,omitempty"`
}

type SellerReceivableBreakdownPayload struct {
	GrossAmount *MoneyPayload `json:"gross_amount,omitempty"`
	PayPalFee   *MoneyPayload `json:"paypal_fee,omitempty"`
	NetAmount   *MoneyPayload `json:"net_amount,omitempty"`
}

type CapturePayload struct {
	ID                        string                            `json:"id,omitempty"`
	Status                    string                            `json:"status,omitempty"`
	Amount                    *MoneyPayload                     `json:"amount,omitempty"`
	FinalCapture              *bool                             `json:"final_capture,omitempty"`
	SellerProtection          *SellerProtectionPayload          `json:"seller_protection,omitempty"`
	SellerReceivableBreakdown *SellerReceivableBreakdownPayload `json:"seller_receivable_breakdown,omitempty"`
	InvoiceID                 string                            `json:"invoice_id,omitempty"`
	CustomID                  string                            `json:"custom_id,omitempty"`
	Links                     []LinkPayload                     `json:"links,omitempty"`
	CreateTime                string                            `json:"create_time,omitempty"`
	UpdateTime                string                            `json:"update_time,omitempty"`
}

type PaymentsPayload struct {
	Captures []CapturePayload `json:"captures,omitempty"`
}

type PurchaseUnitPayload struct {
	ReferenceID string           `json:"reference_id,omitempty"`
	Description string           `json:"description,omitempty"`
	Amount      *MoneyPayload    `json:"amount,omitempty"`
	Payments    *PaymentsPayload `json:"payments,omitempty"`
}

// OrderPayload is one order as returned by create, get, or capture.
// ID and Status are the only fields this system treats as mandatory.
type OrderPayload struct {
	ID            string                `json:"id,omitempty"`
	Intent        string                `json:"intent,omitempty"`
	Status        string                `json:"status,omitempty"`
	Payer         *PayerPayload         `json:"payer,omitempty"`
	PaymentSource *PaymentSourcePayload `json:"payment_source,omitempty"`
	PurchaseUnits []PurchaseUnitPayload `json:"purchase_units,omitempty"`
	Links         []LinkPayload         `json:"links,omitempty"`
	CreateTime    string                `json:"create_time,omitempty"`
	UpdateTime    string                `json:"update_time,omitempty"`
}

// Request-side shapes. Optionals are omitted entirely when empty because
// the Orders API rejects explicit nulls in several positions.

type ItemBody struct {
	Name        string       `json:"name"`
	Quantity    string       `json:"quantity"`
	UnitAmount  MoneyPayload `json:"unit_amount"`
	Description string       `json:"description,omitempty"`
	Category    string       `json:"category,omitempty"`
}

type ShippingAddressBody struct {
	AddressLine1 string `json:"address_line_1,omitempty"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	AdminArea1   string `json:"admin_area_1,omitempty"`
	AdminArea2   string `json:"admin_area_2,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
}

type ShippingBody struct {
	Name    *NamePayload         `json:"name,omitempty"`
	Address *ShippingAddressBody `json:"address,omitempty"`
}

type PurchaseUnitBody struct {
	ReferenceID string        `json:"reference_id,omitempty"`
	Description string        `json:"description,omitempty"`
	Amount      MoneyPayload  `json:"amount"`
	Items       []ItemBody    `json:"items,omitempty"`
	Shipping    *ShippingBody `json:"shipping,omitempty"`
}

type ApplicationContextBody struct {
	BrandName   string `json:"brand_name,omitempty"`
	LandingPage string `json:"landing_page,omitempty"`
	UserAction  string `json:"user_action,omitempty"`
	ReturnURL   string `json:"return_url,omitempty"`
	CancelURL   string `json:"cancel_url,omitempty"`
}

type orderCreateBody struct {
	Intent             string                  `json:"intent"`
	PurchaseUnits      []PurchaseUnitBody      `json:"purchase_units"`
	PaymentSource      *PaymentSourcePayload   `json:"payment_source,omitempty"`
	ApplicationContext *ApplicationContextBody `json:"application_context,omitempty"`
}

type captureBody struct {
	NoteToPayer string `json:"note_to_payer,omitempty"`
}
