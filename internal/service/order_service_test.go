package service

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paypal-order-api/internal/dao"
	"paypal-order-api/internal/dto"
	"paypal-order-api/internal/idgen"
	"paypal-order-api/internal/model"
	"paypal-order-api/internal/money"
	"paypal-order-api/internal/paypal"
)

func TestMain(m *testing.M) {
	idgen.Init(1)
	logrus.SetLevel(logrus.ErrorLevel)
	os.Exit(m.Run())
}

type createCall struct {
	intent    string
	units     []paypal.PurchaseUnitBody
	appCtx    *paypal.ApplicationContextBody
	requestID string
}

type stubProvider struct {
	createFn  func() (*paypal.ProcessedOrder, json.RawMessage, error)
	captureFn func() (*paypal.ProcessedOrder, json.RawMessage, error)
	getFn     func() (*paypal.ProcessedOrder, json.RawMessage, error)

	createCalls  []createCall
	captureCalls int
	getCalls     int
	vaultIDs     []string
}

func (s *stubProvider) CreateOrder(_ context.Context, intent string, units []paypal.PurchaseUnitBody, _ *paypal.PaymentSourcePayload, appCtx *paypal.ApplicationContextBody, requestID string) (*paypal.ProcessedOrder, json.RawMessage, error) {
	s.createCalls = append(s.createCalls, createCall{intent: intent, units: units, appCtx: appCtx, requestID: requestID})
	return s.createFn()
}

func (s *stubProvider) CreateOrderWithVaultToken(ctx context.Context, vaultID, amountValue, currency string, p paypal.VaultOrderParams) (*paypal.ProcessedOrder, json.RawMessage, error) {
	s.vaultIDs = append(s.vaultIDs, vaultID)
	intent := p.Intent
	if intent == "" {
		intent = paypal.IntentCapture
	}
	unit := paypal.PurchaseUnitBody{Amount: paypal.MoneyPayload{CurrencyCode: currency, Value: amountValue}}
	return s.CreateOrder(ctx, intent, []paypal.PurchaseUnitBody{unit}, nil, nil, p.RequestID)
}

func (s *stubProvider) CaptureOrder(context.Context, string, string) (*paypal.ProcessedOrder, json.RawMessage, error) {
	s.captureCalls++
	return s.captureFn()
}

func (s *stubProvider) GetOrder(context.Context, string) (*paypal.ProcessedOrder, json.RawMessage, error) {
	s.getCalls++
	return s.getFn()
}

type memOrderStore struct {
	rows      map[string]*model.Order
	inserts   int
	insertErr error

	updates []map[string]any

	listRows   []model.Order
	listTotal  int64
	lastFilter dao.OrderFilter
	lastSkip   int
	lastLimit  int
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{rows: map[string]*model.Order{}}
}

func (m *memOrderStore) Insert(o *model.Order) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserts++
	cp := *o
	m.rows[o.PayPalOrderID] = &cp
	return nil
}

func (m *memOrderStore) GetByID(id uint64) (*model.Order, error) {
	for _, o := range m.rows {
		if o.ID == id {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memOrderStore) GetByPayPalOrderID(paypalOrderID string) (*model.Order, error) {
	o, ok := m.rows[paypalOrderID]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memOrderStore) GetByReferenceID(referenceID string) (*model.Order, error) {
	for _, o := range m.rows {
		if o.ReferenceID != nil && *o.ReferenceID == referenceID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memOrderStore) List(f dao.OrderFilter, skip, limit int) ([]model.Order, int64, error) {
	m.lastFilter, m.lastSkip, m.lastLimit = f, skip, limit
	return m.listRows, m.listTotal, nil
}

func (m *memOrderStore) UpdateByPayPalID(paypalOrderID string, fields map[string]any) (*model.Order, error) {
	o, ok := m.rows[paypalOrderID]
	if !ok {
		return nil, nil
	}
	recorded := make(map[string]any, len(fields))
	for k, v := range fields {
		recorded[k] = v
	}
	m.updates = append(m.updates, recorded)

	for k, v := range fields {
		switch k {
		case "status":
			o.Status = v.(string)
		case "capture_id":
			s := v.(string)
			o.CaptureID = &s
		case "capture_status":
			s := v.(string)
			o.CaptureStatus = &s
		case "final_capture":
			b := v.(bool)
			o.FinalCapture = &b
		case "capture_time":
			t := v.(time.Time)
			o.CaptureTime = &t
		case "approved_at":
			t := v.(time.Time)
			o.ApprovedAt = &t
		case "gross_amount":
			d := v.(decimal.Decimal)
			o.GrossAmount = &d
		case "paypal_fee":
			d := v.(decimal.Decimal)
			o.PayPalFee = &d
		case "net_amount":
			d := v.(decimal.Decimal)
			o.NetAmount = &d
		case "payer_id":
			s := v.(string)
			o.PayerID = &s
		case "payer_email":
			s := v.(string)
			o.PayerEmail = &s
		}
	}
	cp := *o
	return &cp, nil
}

func (m *memOrderStore) SoftDelete(id uint64) (bool, error) {
	for _, o := range m.rows {
		if o.ID == id {
			o.IsActive = false
			return true, nil
		}
	}
	return false, nil
}

type stubCustomers struct {
	byEmail map[string]*model.Customer
}

func (s *stubCustomers) GetByID(id uint64) (*model.Customer, error) {
	for _, c := range s.byEmail {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (s *stubCustomers) GetByEmail(email string) (*model.Customer, error) {
	return s.byEmail[email], nil
}

type stubVault struct {
	byToken map[string]*model.VaultPaymentMethod
}

func (s *stubVault) GetByTokenID(token string) (*model.VaultPaymentMethod, error) {
	return s.byToken[token], nil
}

func newFixture() (*OrderService, *stubProvider, *memOrderStore, *stubCustomers, *stubVault) {
	provider := &stubProvider{}
	store := newMemOrderStore()
	customers := &stubCustomers{byEmail: map[string]*model.Customer{}}
	vault := &stubVault{byToken: map[string]*model.VaultPaymentMethod{}}
	return NewOrderService(provider, store, customers, vault), provider, store, customers, vault
}

func createdOrder(id string) (*paypal.ProcessedOrder, json.RawMessage, error) {
	return &paypal.ProcessedOrder{
			OrderID:     id,
			Status:      model.OrderStatusCreated,
			ApprovalURL: "https://paypal.test/approve/" + id,
			Links:       []paypal.Link{{Href: "https://paypal.test/approve/" + id, Rel: "approve", Method: "GET"}},
		},
		json.RawMessage(`{"id":"` + id + `","status":"CREATED"}`),
		nil
}

func validCreateReq() *dto.OrderCreateRequest {
	return &dto.OrderCreateRequest{
		Amount:    dto.AmountRequest{CurrencyCode: "USD", Value: "25.00"},
		ReturnURL: "https://merchant.test/return",
		CancelURL: "https://merchant.test/cancel",
	}
}

func TestCreateHappyPath(t *testing.T) {
	svc, provider, store, customers, _ := newFixture()
	provider.createFn = func() (*paypal.ProcessedOrder, json.RawMessage, error) { return createdOrder("ORD-100") }
	customers.byEmail["buyer@example.com"] = &model.Customer{ID: 42, EmailAddress: "buyer@example.com"}

	req := validCreateReq()
	req.PayerEmail = "buyer@example.com"
	req.Description = "test order"

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, provider.createCalls, 1)
	call := provider.createCalls[0]
	assert.Equal(t, paypal.IntentCapture, call.intent)
	require.Len(t, call.units, 1)
	assert.Equal(t, "25.00", call.units[0].Amount.Value)
	assert.Equal(t, "default", call.units[0].ReferenceID)
	require.NotNil(t, call.appCtx)
	assert.Equal(t, "https://merchant.test/return", call.appCtx.ReturnURL)
	assert.True(t, strings.HasPrefix(call.requestID, "order-"))

	assert.Equal(t, 1, store.inserts)
	row := store.rows["ORD-100"]
	require.NotNil(t, row)
	assert.Equal(t, "25.00", row.Amount.StringFixed(2))
	assert.Equal(t, "USD", row.Currency)
	require.NotNil(t, row.CustomerID)
	assert.Equal(t, uint64(42), *row.CustomerID)
	assert.True(t, row.IsActive)

	assert.Equal(t, "ORD-100", resp.ID)
	assert.Equal(t, model.OrderStatusCreated, resp.Status)
	assert.Equal(t, "https://paypal.test/approve/ORD-100", resp.ApprovalURL)
	assert.Empty(t, resp.SyncState)
}

func TestCreateInvalidAmountNeverReachesProvider(t *testing.T) {
	svc, provider, store, _, _ := newFixture()

	for _, value := range []string{"0", "-5.00", "abc"} {
		req := validCreateReq()
		req.Amount.Value = value
		_, err := svc.Create(context.Background(), req)
		var invalid *money.ErrInvalidAmount
		require.ErrorAs(t, err, &invalid, "value %s", value)
	}
	assert.Empty(t, provider.createCalls)
	assert.Zero(t, store.inserts)
}

func TestCreateProviderFailureWritesNothing(t *testing.T) {
	svc, provider, store, _, _ := newFixture()
	provider.createFn = func() (*paypal.ProcessedOrder, json.RawMessage, error) {
		return nil, nil, &paypal.ProviderError{StatusCode: 500, Body: "INTERNAL_SERVER_ERROR"}
	}

	_, err := svc.Create(context.Background(), validCreateReq())
	var provErr *paypal.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Zero(t, store.inserts)
	assert.Empty(t, store.rows)
}

func TestGetUnknownOrder(t *testing.T) {
	svc, provider, _, _, _ := newFixture()
	resp, state, err := svc.Get(context.Background(), "ORD-missing", true)
	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, SyncNone, state)
	assert.Zero(t, provider.getCalls)
}

func seedOrder(store *memOrderStore, paypalOrderID string) *model.Order {
	o := &model.Order{
		ID:            idgen.New(),
		PayPalOrderID: paypalOrderID,
		Intent:        paypal.IntentCapture,
		Status:        model.OrderStatusCreated,
		Amount:        decimal.RequireFromString("25.00"),
		Currency:      "USD",
		IsActive:      true,
		CreatedAt:     time.Now(),
	}
	store.rows[paypalOrderID] = o
	return o
}

func TestGetWithoutSyncStaysLocal(t *testing.T) {
	svc, provider, store, _, _ := newFixture()
	seedOrder(store, "ORD-200")

	resp, state, err := svc.Get(context.Background(), "ORD-200", false)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, SyncNone, state)
	assert.Empty(t, resp.SyncState)
	assert.Zero(t, provider.getCalls)
	assert.Empty(t, store.updates)
}

func TestGetSyncFreshUpdatesAndMarks(t *testing.T) {
	svc, provider, store, _, _ := newFixture()
	seedOrder(store, "ORD-201")
	provider.getFn = func() (*paypal.ProcessedOrder, json.RawMessage, error) {
		return &paypal.ProcessedOrder{
				OrderID:    "ORD-201",
				Status:     model.OrderStatusApproved,
				PayerID:    "PAYER9",
				PayerEmail: "buyer@example.com",
			},
			json.RawMessage(`{"id":"ORD-201","status":"APPROVED"}`),
			nil
	}

	resp, state, err := svc.Get(context.Background(), "ORD-201", true)
	require.NoError(t, err)
	assert.Equal(t, SyncFresh, state)
	assert.Equal(t, dto.SyncStateFresh, resp.SyncState)
	assert.Equal(t, model.OrderStatusApproved, resp.Status)
	require.NotNil(t, resp.ApprovedAt)

	require.Len(t, store.updates, 1)
	fields := store.updates[0]
	assert.Equal(t, model.OrderStatusApproved, fields["status"])
	assert.Contains(t, fields, "approved_at")
	assert.Equal(t, "PAYER9", fields["payer_id"])
	// identity never travels in an update
	assert.NotContains(t, fields, "id")
	assert.NotContains(t, fields, "paypal_order_id")
}

func TestGetSyncFallsBackToStale(t *testing.T) {
	svc, provider, store, _, _ := newFixture()
	seedOrder(store, "ORD-202")
	provider.getFn = func() (*paypal.ProcessedOrder, json.RawMessage, error) {
		return nil, nil, &paypal.ProviderError{Body: "connection refused"}
	}

	resp, state, err := svc.Get(context.Background(), "ORD-202", true)
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, SyncStale, state)
	assert.Equal(t, dto.SyncStateStale, resp.SyncState)
	assert.Equal(t, model.OrderStatusCreated, resp.Status)
	assert.Empty(t, store.updates)
}

func TestCaptureUnknownOrderSkipsProvider(t *testing.T) {
	svc, provider, _, _, _ := newFixture()
	resp, err := svc.Capture(context.Background(), "ORD-missing", nil)
	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Zero(t, provider.captureCalls)
}

func completedCapture(orderID string) *paypal.ProcessedOrder {
	final := true
	return &paypal.ProcessedOrder{
		OrderID: orderID,
		Status:  model.OrderStatusCompleted,
		PayerID: "PAYER1",
		Captures: []paypal.Capture{{
			ID:           "CAP-1",
			Status:       "COMPLETED",
			Amount:       paypal.Amount{Value: decimal.RequireFromString("25.00"), Currency: "USD"},
			FinalCapture: &final,
			Breakdown: &paypal.Breakdown{
				Gross: paypal.Amount{Value: decimal.RequireFromString("25.00"), Currency: "USD"},
				Fee:   paypal.Amount{Value: decimal.RequireFromString("1.18"), Currency: "USD"},
				Net:   paypal.Amount{Value: decimal.RequireFromString("23.82"), Currency: "USD"},
			},
			CreateTime: "2026-08-20T10:00:00Z",
		}},
	}
}

func TestCaptureRecordsBreakdown(t *testing.T) {
	svc, provider, store, _, _ := newFixture()
	seedOrder(store, "ORD-300")
	provider.captureFn = func() (*paypal.ProcessedOrder, json.RawMessage, error) {
		return completedCapture("ORD-300"), json.RawMessage(`{"id":"ORD-300","status":"COMPLETED"}`), nil
	}

	resp, err := svc.Capture(context.Background(), "ORD-300", &dto.OrderCaptureRequest{NoteToPayer: "thanks"})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "CAP-1", resp.CaptureID)
	assert.Equal(t, "COMPLETED", resp.Status)
	assert.Equal(t, "25.00", resp.Amount)
	assert.Equal(t, "USD", resp.Currency)
	assert.True(t, resp.FinalCapture)
	require.NotNil(t, resp.CreatedAt)

	require.Len(t, store.updates, 1)
	fields := store.updates[0]
	assert.Equal(t, model.OrderStatusCompleted, fields["status"])
	assert.Equal(t, "CAP-1", fields["capture_id"])
	assert.Equal(t, decimal.RequireFromString("1.18"), fields["paypal_fee"])
	assert.Equal(t, decimal.RequireFromString("23.82"), fields["net_amount"])
	assert.NotContains(t, fields, "id")
	assert.NotContains(t, fields, "paypal_order_id")

	row := store.rows["ORD-300"]
	assert.Equal(t, model.OrderStatusCompleted, row.Status)
	require.NotNil(t, row.PayPalFee)
	assert.Equal(t, "1.18", row.PayPalFee.StringFixed(2))
	// amount and currency never change after creation
	assert.Equal(t, "25.00", row.Amount.StringFixed(2))
	assert.Equal(t, "USD", row.Currency)
}

func TestCaptureProviderFailureWritesNothing(t *testing.T) {
	svc, provider, store, _, _ := newFixture()
	seedOrder(store, "ORD-301")
	provider.captureFn = func() (*paypal.ProcessedOrder, json.RawMessage, error) {
		return nil, nil, &paypal.ProviderError{StatusCode: 422, Body: "ORDER_NOT_APPROVED"}
	}

	_, err := svc.Capture(context.Background(), "ORD-301", nil)
	var provErr *paypal.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Empty(t, store.updates)
	assert.Equal(t, model.OrderStatusCreated, store.rows["ORD-301"].Status)
}

func TestListPaginationMath(t *testing.T) {
	svc, _, store, _, _ := newFixture()
	store.listTotal = 101
	store.listRows = []model.Order{*seedOrder(newMemOrderStore(), "ORD-400")}

	resp, err := svc.List(3, 10, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 20, store.lastSkip)
	assert.Equal(t, 10, store.lastLimit)
	require.NotNil(t, store.lastFilter.IsActive)
	assert.True(t, *store.lastFilter.IsActive)

	assert.Equal(t, int64(101), resp.TotalItems)
	assert.Equal(t, int64(11), resp.TotalPages)
	assert.Equal(t, 3, resp.CurrentPage)
	assert.Equal(t, 10, resp.PageSize)
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "ORD-400", resp.Orders[0].ID)
}

func TestListExactPageBoundary(t *testing.T) {
	svc, _, store, _, _ := newFixture()
	store.listTotal = 100

	resp, err := svc.List(1, 10, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.TotalPages)
}

func TestCreateWithVaultTokenLinksAndCaptures(t *testing.T) {
	svc, provider, store, _, vault := newFixture()
	vault.byToken["8kk8451t"] = &model.VaultPaymentMethod{ID: 7, CustomerID: 42, PayPalPaymentTokenID: "8kk8451t"}
	provider.createFn = func() (*paypal.ProcessedOrder, json.RawMessage, error) {
		return completedCapture("ORD-500"), json.RawMessage(`{"id":"ORD-500","status":"COMPLETED"}`), nil
	}

	resp, err := svc.CreateWithVaultToken(context.Background(), &dto.VaultOrderCreateRequest{
		VaultID: "8kk8451t",
		Amount:  dto.AmountRequest{CurrencyCode: "USD", Value: "25.00"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"8kk8451t"}, provider.vaultIDs)
	row := store.rows["ORD-500"]
	require.NotNil(t, row)
	require.NotNil(t, row.VaultPaymentMethodID)
	assert.Equal(t, uint64(7), *row.VaultPaymentMethodID)
	require.NotNil(t, row.CustomerID)
	assert.Equal(t, uint64(42), *row.CustomerID)
	require.NotNil(t, row.CaptureID)
	assert.Equal(t, "CAP-1", *row.CaptureID)
	require.NotNil(t, row.NetAmount)
	assert.Equal(t, "23.82", row.NetAmount.StringFixed(2))

	assert.Equal(t, "ORD-500", resp.ID)
	assert.Equal(t, model.OrderStatusCompleted, resp.Status)
	assert.Equal(t, "CAP-1", resp.CaptureID)
}

func TestDeactivate(t *testing.T) {
	svc, _, store, _, _ := newFixture()
	o := seedOrder(store, "ORD-600")

	ok, err := svc.Deactivate(o.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, store.rows["ORD-600"].IsActive)

	ok, err = svc.Deactivate(999)
	require.NoError(t, err)
	assert.False(t, ok)
}
