package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paypal-order-api/internal/constant"
	"paypal-order-api/internal/dto"
	"paypal-order-api/internal/money"
	"paypal-order-api/internal/paypal"
)

func testContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestPaginationDefaults(t *testing.T) {
	c, _ := testContext(t, "/orders")
	page, size := pagination(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)
}

func TestPaginationClampsPageSize(t *testing.T) {
	c, _ := testContext(t, "/orders?page=0&page_size=500")
	page, size := pagination(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, maxPageSize, size)

	c, _ = testContext(t, "/orders?page=3&page_size=-2")
	page, size = pagination(c)
	assert.Equal(t, 3, page)
	assert.Equal(t, 10, size)
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.ApiResponse {
	t.Helper()
	var resp dto.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRespondOrderErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"invalid amount", &money.ErrInvalidAmount{Reason: "value 0 must be greater than zero"}, http.StatusBadRequest, constant.CodeOrderAmountInvalid},
		{"provider failure", &paypal.ProviderError{StatusCode: 422, Body: "ORDER_NOT_APPROVED"}, http.StatusBadRequest, constant.CodeProviderCommunication},
		{"malformed response", &paypal.MalformedResponseError{Missing: "order id"}, http.StatusBadGateway, constant.CodeProviderMalformed},
		{"internal", errors.New("db gone"), http.StatusInternalServerError, constant.CodeInternalError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := testContext(t, "/orders")
			respondOrderError(c, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
			resp := decodeEnvelope(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.wantCode, resp.Error.Code)
		})
	}
}

// Provider detail must not leak through the envelope; only the registered
// message crosses the boundary.
func TestProviderErrorBodyNotLeaked(t *testing.T) {
	c, w := testContext(t, "/orders")
	respondOrderError(c, &paypal.ProviderError{StatusCode: 500, Body: `{"debug_id":"abc123","internal":"secret"}`})

	resp := decodeEnvelope(t, w)
	require.NotNil(t, resp.Error)
	assert.NotContains(t, resp.Error.Message, "abc123")
	assert.Equal(t, constant.ErrorMessages[constant.CodeProviderCommunication], resp.Error.Message)
}
