package paypal

import "fmt"

// ProviderError is the uniform wrapper for every failed exchange with
// PayPal: transport errors, timeouts, auth failures, and provider-reported
// business errors. The raw body is kept verbatim for diagnostics.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("paypal communication error: %s", e.Body)
	}
	return fmt.Sprintf("paypal communication error: status=%d body=%s", e.StatusCode, e.Body)
}

// MalformedResponseError means the provider payload was missing a field
// this system treats as mandatory (order id or status). That is a contract
// change on the provider side, not a caller mistake.
type MalformedResponseError struct {
	Missing string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed provider response: missing %s", e.Missing)
}
