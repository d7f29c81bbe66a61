package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"paypal-order-api/internal/config"
	"paypal-order-api/internal/dal"
	"paypal-order-api/internal/dao"
	"paypal-order-api/internal/dto"
	"paypal-order-api/internal/idgen"
	"paypal-order-api/internal/model"
	"paypal-order-api/internal/money"
	"paypal-order-api/internal/mq"
	"paypal-order-api/internal/notify"
	"paypal-order-api/internal/paypal"
)

const defaultReferenceID = "default"

// OrderService owns the order lifecycle: it talks to the provider first,
// then records the outcome locally. The local row never gets ahead of the
// remote order, so a provider failure leaves no local trace.
type OrderService struct {
	provider  ProviderClient
	orders    OrderStore
	customers CustomerStore
	vault     VaultStore
	log       *logrus.Logger
}

func NewOrderService(provider ProviderClient, orders OrderStore, customers CustomerStore, vault VaultStore) *OrderService {
	return &OrderService{
		provider:  provider,
		orders:    orders,
		customers: customers,
		vault:     vault,
		log:       logrus.StandardLogger(),
	}
}

// Create validates the amount, creates the remote order, then persists the
// mirror row. The provider call carries a fresh idempotency key. On any
// provider error nothing is written locally.
func (s *OrderService) Create(ctx context.Context, req *dto.OrderCreateRequest) (*dto.OrderResponse, error) {
	m, err := money.Parse(req.Amount.Value, req.Amount.CurrencyCode)
	if err != nil {
		return nil, err
	}

	items := make([]paypal.ItemBody, 0, len(req.Items))
	for _, it := range req.Items {
		unitAmount, err := money.Parse(it.UnitAmount.Value, it.UnitAmount.CurrencyCode)
		if err != nil {
			return nil, err
		}
		items = append(items, paypal.ItemBody{
			Name:        it.Name,
			Quantity:    it.Quantity,
			UnitAmount:  paypal.MoneyPayload{CurrencyCode: unitAmount.Currency, Value: unitAmount.String()},
			Description: it.Description,
			Category:    it.Category,
		})
	}

	intent := req.Intent
	if intent == "" {
		intent = paypal.IntentCapture
	}
	referenceID := req.ReferenceID
	if referenceID == "" {
		referenceID = defaultReferenceID
	}

	unit := paypal.PurchaseUnitBody{
		ReferenceID: referenceID,
		Description: req.Description,
		Amount:      paypal.MoneyPayload{CurrencyCode: m.Currency, Value: m.String()},
		Items:       items,
	}
	if req.Shipping != nil {
		unit.Shipping = &paypal.ShippingBody{
			Address: &paypal.ShippingAddressBody{
				AddressLine1: req.Shipping.Address.AddressLine1,
				AddressLine2: req.Shipping.Address.AddressLine2,
				AdminArea1:   req.Shipping.Address.AdminArea1,
				AdminArea2:   req.Shipping.Address.AdminArea2,
				PostalCode:   req.Shipping.Address.PostalCode,
				CountryCode:  req.Shipping.Address.CountryCode,
			},
		}
		if req.Shipping.Name != "" {
			unit.Shipping.Name = &paypal.NamePayload{FullName: req.Shipping.Name}
		}
	}

	appCtx := &paypal.ApplicationContextBody{
		BrandName:   config.C.PayPal.BrandName,
		LandingPage: "BILLING",
		UserAction:  "PAY_NOW",
		ReturnURL:   req.ReturnURL,
		CancelURL:   req.CancelURL,
	}

	processed, raw, err := s.provider.CreateOrder(ctx, intent, []paypal.PurchaseUnitBody{unit}, nil, appCtx, paypal.NewRequestID())
	if err != nil {
		s.log.WithError(err).Error("order create failed at provider")
		notify.NotifyProviderAlert("order create", "", err)
		return nil, err
	}

	o := s.newOrderRow(processed, raw, m, intent)
	o.Description = strOrNil(req.Description)
	o.ReferenceID = strOrNil(req.ReferenceID)
	o.ReturnURL = strOrNil(req.ReturnURL)
	o.CancelURL = strOrNil(req.CancelURL)
	if o.PayerEmail == nil {
		o.PayerEmail = strOrNil(req.PayerEmail)
	}
	s.attachCustomer(o, req.PayerEmail, processed.PayerEmail)

	if err := s.orders.Insert(o); err != nil {
		return nil, fmt.Errorf("persist order %s: %w", processed.OrderID, err)
	}

	s.publishCreated(o)
	resp := s.shapeOrder(o)
	s.cacheSet(resp)
	return resp, nil
}

// CreateWithVaultToken charges a vaulted payment method. Vault orders are
// often captured by the provider in the same call, so capture columns are
// filled from the create response when present.
func (s *OrderService) CreateWithVaultToken(ctx context.Context, req *dto.VaultOrderCreateRequest) (*dto.OrderResponse, error) {
	m, err := money.Parse(req.Amount.Value, req.Amount.CurrencyCode)
	if err != nil {
		return nil, err
	}

	intent := req.Intent
	if intent == "" {
		intent = paypal.IntentCapture
	}

	processed, raw, err := s.provider.CreateOrderWithVaultToken(ctx, req.VaultID, m.String(), m.Currency, paypal.VaultOrderParams{
		Intent:      intent,
		Description: req.Description,
		ReferenceID: req.ReferenceID,
		ReturnURL:   req.ReturnURL,
		CancelURL:   req.CancelURL,
		RequestID:   paypal.NewRequestID(),
	})
	if err != nil {
		s.log.WithError(err).Error("vault order create failed at provider")
		notify.NotifyProviderAlert("vault order create", "", err)
		return nil, err
	}

	o := s.newOrderRow(processed, raw, m, intent)
	o.Description = strOrNil(req.Description)
	o.ReferenceID = strOrNil(req.ReferenceID)
	o.ReturnURL = strOrNil(req.ReturnURL)
	o.CancelURL = strOrNil(req.CancelURL)

	if vpm, verr := s.vault.GetByTokenID(req.VaultID); verr != nil {
		s.log.WithError(verr).Warn("vault token lookup failed, order not linked")
	} else if vpm != nil {
		o.VaultPaymentMethodID = &vpm.ID
		if o.CustomerID == nil && vpm.CustomerID != 0 {
			cid := vpm.CustomerID
			o.CustomerID = &cid
		}
	}

	applyCaptureColumns(o, processed, nil)

	if err := s.orders.Insert(o); err != nil {
		return nil, fmt.Errorf("persist vault order %s: %w", processed.OrderID, err)
	}

	s.publishCreated(o)
	if o.CaptureID != nil {
		s.publishCaptured(o)
	}
	resp := s.shapeOrder(o)
	s.cacheSet(resp)
	return resp, nil
}

// Get reads one order by its provider id. Unknown orders return (nil,
// SyncNone, nil). With sync=false the local mirror (or its cached shape)
// answers directly. With sync=true the remote state is fetched and merged
// first; if the provider is unreachable the last known local state is
// returned, marked stale, instead of failing the read.
func (s *OrderService) Get(ctx context.Context, paypalOrderID string, sync bool) (*dto.OrderResponse, SyncState, error) {
	if !sync {
		if cached := s.cacheGet(paypalOrderID); cached != nil {
			return cached, SyncNone, nil
		}
	}

	local, err := s.orders.GetByPayPalOrderID(paypalOrderID)
	if err != nil {
		return nil, SyncNone, err
	}
	if local == nil {
		return nil, SyncNone, nil
	}

	if !sync {
		resp := s.shapeOrder(local)
		s.cacheSet(resp)
		return resp, SyncNone, nil
	}

	processed, raw, err := s.provider.GetOrder(ctx, paypalOrderID)
	if err != nil {
		s.log.WithError(err).WithField("paypal_order_id", paypalOrderID).
			Warn("provider sync failed, serving local state")
		notify.NotifyProviderAlert("order sync", paypalOrderID, err)
		resp := s.shapeOrder(local)
		resp.SyncState = SyncStale.String()
		return resp, SyncStale, nil
	}

	fields := map[string]any{
		"status":          processed.Status,
		"paypal_response": model.JSON(raw),
	}
	if !processed.Partial {
		mergePayerFields(fields, processed)
		if processed.ApprovalURL != "" {
			fields["approval_url"] = processed.ApprovalURL
		}
		if len(processed.Links) > 0 {
			fields["paypal_links"] = mustJSON(processed.Links)
		}
		if processed.Status == model.OrderStatusApproved && local.ApprovedAt == nil {
			fields["approved_at"] = time.Now()
		}
		mergeCaptureFields(fields, processed, nil)
	}

	updated, err := s.orders.UpdateByPayPalID(paypalOrderID, fields)
	if err != nil {
		return nil, SyncNone, fmt.Errorf("record synced state for %s: %w", paypalOrderID, err)
	}
	if updated == nil {
		return nil, SyncNone, nil
	}

	resp := s.shapeOrder(updated)
	resp.SyncState = SyncFresh.String()
	s.cacheSet(resp)
	return resp, SyncFresh, nil
}

// Capture settles an approved order. The remote capture runs first; only
// a successful one is recorded. Unknown orders return (nil, nil) without
// touching the provider.
func (s *OrderService) Capture(ctx context.Context, paypalOrderID string, req *dto.OrderCaptureRequest) (*dto.CaptureResponse, error) {
	local, err := s.orders.GetByPayPalOrderID(paypalOrderID)
	if err != nil {
		return nil, err
	}
	if local == nil {
		return nil, nil
	}

	note := ""
	if req != nil {
		note = req.NoteToPayer
	}
	processed, raw, err := s.provider.CaptureOrder(ctx, paypalOrderID, note)
	if err != nil {
		s.log.WithError(err).WithField("paypal_order_id", paypalOrderID).Error("capture failed at provider")
		notify.NotifyProviderAlert("order capture", paypalOrderID, err)
		return nil, err
	}

	fields := map[string]any{
		"status":          processed.Status,
		"paypal_response": model.JSON(raw),
	}
	if !processed.Partial {
		mergePayerFields(fields, processed)
		mergeCaptureFields(fields, processed, req)
	}

	updated, err := s.orders.UpdateByPayPalID(paypalOrderID, fields)
	if err != nil {
		// The remote capture already happened; surface loudly so the row
		// can be repaired via sync.
		s.log.WithError(err).WithField("paypal_order_id", paypalOrderID).
			Error("capture recorded remotely but local update failed")
		return nil, fmt.Errorf("record capture for %s: %w", paypalOrderID, err)
	}
	if updated != nil {
		s.publishCaptured(updated)
		s.cacheSet(s.shapeOrder(updated))
	}

	resp := &dto.CaptureResponse{Status: processed.Status, FinalCapture: true}
	if req != nil && req.FinalCapture != nil {
		resp.FinalCapture = *req.FinalCapture
	}
	if primary := processed.PrimaryCapture(); primary != nil {
		resp.CaptureID = primary.ID
		if primary.Status != "" {
			resp.Status = primary.Status
		}
		if primary.Amount.Currency != "" {
			resp.Amount = primary.Amount.Value.StringFixed(2)
			resp.Currency = primary.Amount.Currency
		}
		if primary.FinalCapture != nil {
			resp.FinalCapture = *primary.FinalCapture
		}
		if t, perr := time.Parse(time.RFC3339, primary.CreateTime); perr == nil {
			resp.CreatedAt = &t
		}
	} else {
		s.log.WithField("paypal_order_id", paypalOrderID).Warn("capture response carried no capture record")
	}
	return resp, nil
}

// List pages through the active local mirror, newest first. Pages are
// 1-based.
func (s *OrderService) List(page, pageSize int, customerID *uint64, status *string) (*dto.OrderListResponse, error) {
	active := true
	skip := (page - 1) * pageSize
	rows, total, err := s.orders.List(dao.OrderFilter{
		CustomerID: customerID,
		Status:     status,
		IsActive:   &active,
	}, skip, pageSize)
	if err != nil {
		return nil, err
	}

	out := &dto.OrderListResponse{
		Orders:      make([]dto.OrderResponse, 0, len(rows)),
		TotalItems:  total,
		TotalPages:  (total + int64(pageSize) - 1) / int64(pageSize),
		CurrentPage: page,
		PageSize:    pageSize,
	}
	for i := range rows {
		out.Orders = append(out.Orders, *s.shapeOrder(&rows[i]))
	}
	return out, nil
}

// Deactivate hides an order from listings. The row and its audit blob
// stay.
func (s *OrderService) Deactivate(id uint64) (bool, error) {
	o, err := s.orders.GetByID(id)
	if err != nil {
		return false, err
	}
	if o == nil {
		return false, nil
	}
	ok, err := s.orders.SoftDelete(id)
	if err != nil {
		return false, err
	}
	s.cacheDel(o.PayPalOrderID)
	return ok, nil
}

func (s *OrderService) newOrderRow(processed *paypal.ProcessedOrder, raw json.RawMessage, m money.Money, intent string) *model.Order {
	o := &model.Order{
		ID:             idgen.New(),
		PayPalOrderID:  processed.OrderID,
		Intent:         intent,
		Status:         processed.Status,
		Amount:         m.Value,
		Currency:       m.Currency,
		PayPalResponse: model.JSON(raw),
		IsActive:       true,
	}
	if !processed.Partial {
		o.PayerID = strOrNil(processed.PayerID)
		o.PayerEmail = strOrNil(processed.PayerEmail)
		o.PayerNameGiven = strOrNil(processed.PayerGiven)
		o.PayerNameSurname = strOrNil(processed.PayerSurname)
		o.PayerCountry = strOrNil(processed.PayerCountry)
		o.ApprovalURL = strOrNil(processed.ApprovalURL)
		if len(processed.Links) > 0 {
			o.PayPalLinks = mustJSON(processed.Links)
		}
	}
	if ps := rawSection(raw, "payment_source"); ps != nil {
		o.PaymentSource = ps
	}
	return o
}

// attachCustomer links the order to a known customer by payer email.
// Best effort: a lookup failure is logged, never fatal to the order.
func (s *OrderService) attachCustomer(o *model.Order, requestEmail, payerEmail string) {
	email := payerEmail
	if email == "" {
		email = requestEmail
	}
	if email == "" {
		return
	}
	c, err := s.customers.GetByEmail(email)
	if err != nil {
		s.log.WithError(err).Warn("customer lookup failed, order not linked")
		return
	}
	if c != nil {
		o.CustomerID = &c.ID
	}
}

// mergePayerFields adds payer identity columns learned from a provider
// response. Absent fields are left alone; sync never erases known data.
func mergePayerFields(fields map[string]any, p *paypal.ProcessedOrder) {
	if p.PayerID != "" {
		fields["payer_id"] = p.PayerID
	}
	if p.PayerEmail != "" {
		fields["payer_email"] = p.PayerEmail
	}
	if p.PayerGiven != "" {
		fields["payer_name_given"] = p.PayerGiven
	}
	if p.PayerSurname != "" {
		fields["payer_name_surname"] = p.PayerSurname
	}
	if p.PayerCountry != "" {
		fields["payer_country"] = p.PayerCountry
	}
}

// mergeCaptureFields adds the capture columns derived from the primary
// capture, including the financial breakdown when the provider reported
// one.
func mergeCaptureFields(fields map[string]any, p *paypal.ProcessedOrder, req *dto.OrderCaptureRequest) {
	primary := p.PrimaryCapture()
	if primary == nil {
		return
	}

	if primary.ID != "" {
		fields["capture_id"] = primary.ID
	}
	if primary.Status != "" {
		fields["capture_status"] = primary.Status
	}

	final := true
	if req != nil && req.FinalCapture != nil {
		final = *req.FinalCapture
	}
	if primary.FinalCapture != nil {
		final = *primary.FinalCapture
	}
	fields["final_capture"] = final

	if t, err := time.Parse(time.RFC3339, primary.CreateTime); err == nil {
		fields["capture_time"] = t
	}
	if b := primary.Breakdown; b != nil {
		fields["gross_amount"] = b.Gross.Value
		fields["paypal_fee"] = b.Fee.Value
		fields["net_amount"] = b.Net.Value
	}
	fields["captures"] = mustJSON(p.Captures)
	if primary.SellerProtectionStatus != "" {
		fields["seller_protection"] = mustJSON(map[string]any{
			"status":             primary.SellerProtectionStatus,
			"dispute_categories": primary.DisputeCategories,
		})
	}
}

// applyCaptureColumns is mergeCaptureFields for a row that has not been
// inserted yet.
func applyCaptureColumns(o *model.Order, p *paypal.ProcessedOrder, req *dto.OrderCaptureRequest) {
	fields := map[string]any{}
	mergeCaptureFields(fields, p, req)
	if id, ok := fields["capture_id"].(string); ok {
		o.CaptureID = &id
	}
	if st, ok := fields["capture_status"].(string); ok {
		o.CaptureStatus = &st
	}
	if f, ok := fields["final_capture"].(bool); ok {
		o.FinalCapture = &f
	}
	if t, ok := fields["capture_time"].(time.Time); ok {
		o.CaptureTime = &t
	}
	if primary := p.PrimaryCapture(); primary != nil && primary.Breakdown != nil {
		gross, fee, net := primary.Breakdown.Gross.Value, primary.Breakdown.Fee.Value, primary.Breakdown.Net.Value
		o.GrossAmount, o.PayPalFee, o.NetAmount = &gross, &fee, &net
	}
	if c, ok := fields["captures"].(model.JSON); ok {
		o.Captures = c
	}
	if sp, ok := fields["seller_protection"].(model.JSON); ok {
		o.SellerProtection = sp
	}
}

func (s *OrderService) shapeOrder(o *model.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:          o.PayPalOrderID,
		Status:      o.Status,
		Intent:      o.Intent,
		Amount:      o.Amount.StringFixed(2),
		Currency:    o.Currency,
		ReferenceID: strDeref(o.ReferenceID),
		Description: strDeref(o.Description),
		ApprovalURL: strDeref(o.ApprovalURL),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		ApprovedAt:  o.ApprovedAt,
	}

	if len(o.PayPalLinks) > 0 {
		var links []dto.LinkResponse
		if err := json.Unmarshal(o.PayPalLinks, &links); err == nil {
			resp.Links = links
		}
	}

	if o.PayerID != nil || o.PayerEmail != nil || o.PayerNameGiven != nil || o.PayerNameSurname != nil {
		resp.Payer = &dto.PayerInfo{
			PayerID:      strDeref(o.PayerID),
			EmailAddress: strDeref(o.PayerEmail),
			GivenName:    strDeref(o.PayerNameGiven),
			Surname:      strDeref(o.PayerNameSurname),
		}
	}

	resp.CaptureID = strDeref(o.CaptureID)
	resp.CaptureStatus = strDeref(o.CaptureStatus)
	if o.GrossAmount != nil {
		resp.GrossAmount = o.GrossAmount.StringFixed(2)
	}
	if o.PayPalFee != nil {
		resp.PayPalFee = o.PayPalFee.StringFixed(2)
	}
	if o.NetAmount != nil {
		resp.NetAmount = o.NetAmount.StringFixed(2)
	}
	return resp
}

func (s *OrderService) publishCreated(o *model.Order) {
	evt := mq.OrderCreatedEvent{
		OrderID:       o.ID,
		PayPalOrderID: o.PayPalOrderID,
		Intent:        o.Intent,
		Status:        o.Status,
		Amount:        o.Amount.StringFixed(2),
		Currency:      o.Currency,
		CreatedAt:     time.Now().Unix(),
	}
	if o.CustomerID != nil {
		evt.CustomerID = *o.CustomerID
	}
	if err := mq.PublishOrderCreated(evt); err != nil {
		s.log.WithError(err).Warn("order.created publish failed")
	}
}

func (s *OrderService) publishCaptured(o *model.Order) {
	evt := mq.OrderCapturedEvent{
		OrderID:       o.ID,
		PayPalOrderID: o.PayPalOrderID,
		CaptureID:     strDeref(o.CaptureID),
		CaptureStatus: strDeref(o.CaptureStatus),
		Amount:        o.Amount.StringFixed(2),
		Currency:      o.Currency,
		CapturedAt:    time.Now().Unix(),
	}
	if err := mq.PublishOrderCaptured(evt); err != nil {
		s.log.WithError(err).Warn("order.captured publish failed")
	}
}

func orderCacheKey(paypalOrderID string) string { return "order:" + paypalOrderID }

func (s *OrderService) cacheGet(paypalOrderID string) *dto.OrderResponse {
	if dal.RedisClient == nil {
		return nil
	}
	val, err := dal.RedisClient.Get(dal.RedisCtx, orderCacheKey(paypalOrderID)).Result()
	if err != nil {
		return nil
	}
	var resp dto.OrderResponse
	if json.Unmarshal([]byte(val), &resp) != nil {
		return nil
	}
	return &resp
}

// cacheSet stores the shaped response without its sync marker; freshness
// labels are per request, not per row.
func (s *OrderService) cacheSet(resp *dto.OrderResponse) {
	if dal.RedisClient == nil {
		return
	}
	cp := *resp
	cp.SyncState = ""
	body, err := json.Marshal(&cp)
	if err != nil {
		return
	}
	ttl := time.Duration(config.C.Redis.OrderCacheTTLSec) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	if err := dal.RedisClient.Set(dal.RedisCtx, orderCacheKey(cp.ID), body, ttl).Err(); err != nil {
		s.log.WithError(err).Warn("order cache write failed")
	}
}

func (s *OrderService) cacheDel(paypalOrderID string) {
	if dal.RedisClient == nil {
		return
	}
	dal.RedisClient.Del(dal.RedisCtx, orderCacheKey(paypalOrderID))
}

func rawSection(raw json.RawMessage, key string) model.JSON {
	var sections map[string]json.RawMessage
	if json.Unmarshal(raw, &sections) != nil {
		return nil
	}
	if v, ok := sections[key]; ok {
		return model.JSON(v)
	}
	return nil
}

func mustJSON(v any) model.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return model.JSON(b)
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
