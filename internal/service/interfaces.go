package service

import (
	"context"
	"encoding/json"

	"paypal-order-api/internal/dao"
	"paypal-order-api/internal/model"
	"paypal-order-api/internal/paypal"
)

// ProviderClient is the remote-order surface the reconciliation service
// needs. *paypal.Client satisfies it; tests substitute fakes.
type ProviderClient interface {
	CreateOrder(ctx context.Context, intent string, purchaseUnits []paypal.PurchaseUnitBody, paymentSource *paypal.PaymentSourcePayload, appContext *paypal.ApplicationContextBody, requestID string) (*paypal.ProcessedOrder, json.RawMessage, error)
	CreateOrderWithVaultToken(ctx context.Context, vaultID, amountValue, currency string, p paypal.VaultOrderParams) (*paypal.ProcessedOrder, json.RawMessage, error)
	CaptureOrder(ctx context.Context, orderID, noteToPayer string) (*paypal.ProcessedOrder, json.RawMessage, error)
	GetOrder(ctx context.Context, orderID string) (*paypal.ProcessedOrder, json.RawMessage, error)
}

// OrderStore is the persistence surface over Order rows.
type OrderStore interface {
	Insert(o *model.Order) error
	GetByID(id uint64) (*model.Order, error)
	GetByPayPalOrderID(paypalOrderID string) (*model.Order, error)
	GetByReferenceID(referenceID string) (*model.Order, error)
	List(f dao.OrderFilter, skip, limit int) ([]model.Order, int64, error)
	UpdateByPayPalID(paypalOrderID string, fields map[string]any) (*model.Order, error)
	SoftDelete(id uint64) (bool, error)
}

// CustomerStore is the lookup surface the order core consumes; no side
// effects expected from here.
type CustomerStore interface {
	GetByID(id uint64) (*model.Customer, error)
	GetByEmail(email string) (*model.Customer, error)
}

// VaultStore resolves stored payment tokens for vault-funded orders.
type VaultStore interface {
	GetByTokenID(paypalPaymentTokenID string) (*model.VaultPaymentMethod, error)
}

var (
	_ ProviderClient = (*paypal.Client)(nil)
	_ OrderStore     = (*dao.OrderDao)(nil)
	_ CustomerStore  = (*dao.CustomerDao)(nil)
	_ VaultStore     = (*dao.VaultDao)(nil)
)

// SyncState distinguishes how a read that requested provider sync was
// answered. The stale fallback is a deliberate, named path: a transient
// provider outage must not prevent reading already-known local state.
type SyncState int

const (
	SyncNone SyncState = iota
	SyncFresh
	SyncStale
)

func (s SyncState) String() string {
	switch s {
	case SyncFresh:
		return "fresh"
	case SyncStale:
		return "stale"
	default:
		return ""
	}
}
