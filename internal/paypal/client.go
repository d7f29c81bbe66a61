package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	sandboxBaseURL = "https://api-m.sandbox.paypal.com"
	liveBaseURL    = "https://api-m.paypal.com"

	IntentCapture   = "CAPTURE"
	IntentAuthorize = "AUTHORIZE"
)

// Config is the explicit construction input for a Client. No ambient
// globals: whoever composes the order service owns the client, and tests
// substitute a fake per test.
type Config struct {
	Mode         string // sandbox | live
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	BaseURL      string // override, used by tests
}

// Client performs the order operations against PayPal. It holds a cached
// OAuth token and applies the configured timeout to every round-trip.
type Client struct {
	baseURL string
	id      string
	secret  string
	http    *http.Client
	log     *logrus.Logger

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		if cfg.Mode == "live" {
			base = liveBaseURL
		} else {
			base = sandboxBaseURL
		}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		id:      cfg.ClientID,
		secret:  cfg.ClientSecret,
		http:    &http.Client{Timeout: timeout},
		log:     logrus.StandardLogger(),
	}
}

// NewRequestID generates an idempotency key for order creation, so a retry
// after a transient network failure does not double-create a remote order.
func NewRequestID() string {
	return "order-" + uuid.NewString()
}

// CreateOrder issues POST /v2/checkout/orders. When requestID is empty a
// fresh one is generated. paymentSource and appContext are omitted from the
// body entirely when nil. Returns the translated order plus the verbatim
// payload for the audit blob.
func (c *Client) CreateOrder(ctx context.Context, intent string, purchaseUnits []PurchaseUnitBody, paymentSource *PaymentSourcePayload, appContext *ApplicationContextBody, requestID string) (*ProcessedOrder, json.RawMessage, error) {
	if requestID == "" {
		requestID = NewRequestID()
	}
	body := orderCreateBody{
		Intent:             intent,
		PurchaseUnits:      purchaseUnits,
		PaymentSource:      paymentSource,
		ApplicationContext: appContext,
	}

	raw, err := c.do(ctx, http.MethodPost, "/v2/checkout/orders", body, requestID)
	if err != nil {
		return nil, nil, err
	}
	return c.translateRaw(raw)
}

// VaultOrderParams carries the optional fields of a vault-token order.
type VaultOrderParams struct {
	Intent      string
	Description string
	ReferenceID string
	ReturnURL   string
	CancelURL   string
	RequestID   string
}

// CreateOrderWithVaultToken charges a previously vaulted payment method:
// payment_source.paypal.vault_id plus a stored-credential block marking a
// merchant-initiated subsequent use. No item list is sent.
func (c *Client) CreateOrderWithVaultToken(ctx context.Context, vaultID, amountValue, currency string, p VaultOrderParams) (*ProcessedOrder, json.RawMessage, error) {
	intent := p.Intent
	if intent == "" {
		intent = IntentCapture
	}

	unit := PurchaseUnitBody{
		Amount:      MoneyPayload{CurrencyCode: currency, Value: amountValue},
		Description: p.Description,
		ReferenceID: p.ReferenceID,
	}

	source := &PaymentSourcePayload{
		PayPal: &PayPalSourcePayload{
			VaultID: vaultID,
			StoredCredential: &StoredCredentialPayload{
				PaymentInitiator: "MERCHANT",
				Usage:            "SUBSEQUENT",
				UsagePattern:     "SUBSCRIPTION_PREPAID",
			},
		},
	}

	var appCtx *ApplicationContextBody
	if p.ReturnURL != "" || p.CancelURL != "" {
		appCtx = &ApplicationContextBody{ReturnURL: p.ReturnURL, CancelURL: p.CancelURL}
	}

	return c.CreateOrder(ctx, intent, []PurchaseUnitBody{unit}, source, appCtx, p.RequestID)
}

// CaptureOrder invokes the remote capture on an approved order. Capturable
// state is not pre-validated locally: PayPal is the source of truth, and a
// premature capture comes back as a provider-reported error, surfaced
// unmodified. No retries; blindly retrying a capture could double-charge.
func (c *Client) CaptureOrder(ctx context.Context, orderID, noteToPayer string) (*ProcessedOrder, json.RawMessage, error) {
	var body any
	if noteToPayer != "" {
		body = captureBody{NoteToPayer: noteToPayer}
	}
	raw, err := c.do(ctx, http.MethodPost, "/v2/checkout/orders/"+url.PathEscape(orderID)+"/capture", body, "")
	if err != nil {
		return nil, nil, err
	}
	return c.translateRaw(raw)
}

// GetOrder fetches the current remote state, used by sync.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*ProcessedOrder, json.RawMessage, error) {
	raw, err := c.do(ctx, http.MethodGet, "/v2/checkout/orders/"+url.PathEscape(orderID), nil, "")
	if err != nil {
		return nil, nil, err
	}
	return c.translateRaw(raw)
}

func (c *Client) translateRaw(raw json.RawMessage) (*ProcessedOrder, json.RawMessage, error) {
	var payload OrderPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, nil, &MalformedResponseError{Missing: "parseable order body"}
	}
	processed, err := TranslateOrder(&payload)
	if err != nil {
		return nil, nil, err
	}
	return processed, raw, nil
}

// do runs one JSON round-trip. Any transport failure, timeout, auth
// failure, or non-2xx response becomes a *ProviderError carrying the
// provider status code and raw body.
func (c *Client) do(ctx context.Context, method, path string, body any, requestID string) (json.RawMessage, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	if requestID != "" {
		req.Header.Set("PayPal-Request-Id", requestID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ProviderError{Body: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.WithFields(logrus.Fields{
			"method": method, "path": path, "status": resp.StatusCode,
		}).Warn("paypal request failed")
		return nil, &ProviderError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}

// accessToken returns the cached OAuth2 client-credentials token,
// refreshing it when within a minute of expiry.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" && time.Now().Before(c.tokenExpiry.Add(-time.Minute)) {
		return c.token, nil
	}

	form := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/oauth2/token", form)
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(c.id, c.secret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &ProviderError{Body: err.Error()}
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(respBody, &tok); err != nil || tok.AccessToken == "" {
		return "", &ProviderError{StatusCode: resp.StatusCode, Body: "token response missing access_token"}
	}

	c.token = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return c.token, nil
}
