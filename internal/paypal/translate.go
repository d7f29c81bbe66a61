package paypal

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// RelApprove is the link relation carrying the payer approval URL.
const RelApprove = "approve"

type Amount struct {
	Value    decimal.Decimal
	Currency string
}

type Link struct {
	Href   string
	Rel    string
	Method string
}

type Breakdown struct {
	Gross Amount
	Fee   Amount
	Net   Amount
}

type Capture struct {
	ID                     string
	Status                 string
	Amount                 Amount
	FinalCapture           *bool
	SellerProtectionStatus string
	DisputeCategories      []string
	Breakdown              *Breakdown
	Links                  []Link
	CreateTime             string
	UpdateTime             string
}

// ProcessedOrder is the flattened local view of a provider order payload.
// Provider types never cross this boundary.
type ProcessedOrder struct {
	OrderID       string
	Status        string
	Intent        string
	PayerID       string
	PayerEmail    string
	PayerGiven    string
	PayerSurname  string
	PayerCountry  string
	PaymentSource string
	ApprovalURL   string
	Captures      []Capture
	Links         []Link
	CreateTime    string

	// Partial marks a degraded translation: a sub-structure had an
	// unexpected shape, so only OrderID and Status are trustworthy. The
	// breakdown data is reporting-only, so this is non-fatal.
	Partial bool
}

// PrimaryCapture returns the first capture, the one whose figures fill the
// order's breakdown columns. Nil when no capture exists yet.
func (p *ProcessedOrder) PrimaryCapture() *Capture {
	if len(p.Captures) == 0 {
		return nil
	}
	return &p.Captures[0]
}

// TranslateOrder maps an arbitrarily-partial provider payload into the
// local schema. Missing optional sub-objects leave fields unset; a missing
// order id or status fails outright with *MalformedResponseError; an
// unexpected shape deeper in the payload degrades to a Partial result
// instead of raising.
func TranslateOrder(p *OrderPayload) (*ProcessedOrder, error) {
	if p == nil || p.ID == "" {
		return nil, &MalformedResponseError{Missing: "order id"}
	}
	if p.Status == "" {
		return nil, &MalformedResponseError{Missing: "order status"}
	}

	out := &ProcessedOrder{
		OrderID:    p.ID,
		Status:     p.Status,
		Intent:     p.Intent,
		CreateTime: p.CreateTime,
	}

	if p.Payer != nil {
		out.PayerID = p.Payer.PayerID
		out.PayerEmail = p.Payer.EmailAddress
		if p.Payer.Name != nil {
			out.PayerGiven = p.Payer.Name.GivenName
			out.PayerSurname = p.Payer.Name.Surname
		}
		if p.Payer.Address != nil {
			out.PayerCountry = p.Payer.Address.CountryCode
		}
	}

	if p.PaymentSource != nil {
		switch {
		case p.PaymentSource.PayPal != nil:
			out.PaymentSource = "paypal"
		case p.PaymentSource.Card != nil:
			out.PaymentSource = "card"
		default:
			out.PaymentSource = "unknown"
		}
	}

	for _, unit := range p.PurchaseUnits {
		if unit.Payments == nil {
			continue
		}
		for i := range unit.Payments.Captures {
			cpt, ok := translateCapture(&unit.Payments.Captures[i])
			if !ok {
				logrus.WithField("order_id", p.ID).Warn("partial order translation: capture has unexpected shape")
				return &ProcessedOrder{OrderID: p.ID, Status: p.Status, Partial: true}, nil
			}
			out.Captures = append(out.Captures, cpt)
		}
	}

	out.Links = translateLinks(p.Links)
	for _, l := range out.Links {
		if l.Rel == RelApprove {
			out.ApprovalURL = l.Href
			break
		}
	}

	return out, nil
}

func translateCapture(c *CapturePayload) (Capture, bool) {
	out := Capture{
		ID:           c.ID,
		Status:       c.Status,
		FinalCapture: c.FinalCapture,
		Links:        translateLinks(c.Links),
		CreateTime:   c.CreateTime,
		UpdateTime:   c.UpdateTime,
	}

	if c.Amount != nil {
		amt, ok := translateMoney(c.Amount)
		if !ok {
			return Capture{}, false
		}
		out.Amount = amt
	}

	if c.SellerProtection != nil {
		out.SellerProtectionStatus = c.SellerProtection.Status
		out.DisputeCategories = c.SellerProtection.DisputeCategories
	}

	if b := c.SellerReceivableBreakdown; b != nil {
		gross, okG := translateMoney(b.GrossAmount)
		fee, okF := translateMoney(b.PayPalFee)
		net, okN := translateMoney(b.NetAmount)
		if !okG || !okF || !okN {
			return Capture{}, false
		}
		out.Breakdown = &Breakdown{Gross: gross, Fee: fee, Net: net}
	}

	return out, true
}

// translateMoney rejects a money field missing its currency code or with a
// non-decimal value; the caller degrades to a partial translation.
func translateMoney(m *MoneyPayload) (Amount, bool) {
	if m == nil || m.CurrencyCode == "" {
		return Amount{}, false
	}
	d, err := decimal.NewFromString(m.Value)
	if err != nil {
		return Amount{}, false
	}
	return Amount{Value: d, Currency: m.CurrencyCode}, true
}

func translateLinks(in []LinkPayload) []Link {
	if len(in) == 0 {
		return nil
	}
	out := make([]Link, 0, len(in))
	for _, l := range in {
		out = append(out, Link{Href: l.Href, Rel: l.Rel, Method: l.Method})
	}
	return out
}
