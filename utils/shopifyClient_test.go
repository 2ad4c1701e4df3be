package utils

import (
	"cboost/config"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatOrderNumber(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"1042", "#1042"},
		{"#1042", "#1042"},
		{"  1042  ", "#1042"},
		{"CB-1042", "CB-1042"},
		{"", ""},
	}

	for _, tc := range cases {
		require.Equal(t, tc.expected, FormatOrderNumber(tc.input), "input %q", tc.input)
	}
}

func TestFormatOrderNumberIdempotent(t *testing.T) {
	for _, input := range []string{"1042", "#1042", "CB-1042", "  77  "} {
		once := FormatOrderNumber(input)
		require.Equal(t, once, FormatOrderNumber(once), "normalizing twice must equal normalizing once for %q", input)
	}
}

// newOrdersServer serves a fixed orders.json response and configures the
// Shopify client against it
func newOrdersServer(t *testing.T, orders []map[string]interface{}) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-token", r.Header.Get("X-Shopify-Access-Token"))
		require.Equal(t, "paid", r.URL.Query().Get("financial_status"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"orders": orders})
	}))
	t.Cleanup(server.Close)

	config.AppConfig = &config.Config{
		ShopifyStoreURL:       server.URL,
		ShopifyAccessToken:    "test-token",
		ShopifyProductKeyword: "confiance",
		ShopifyApiVersion:     "2023-10",
	}

	return server
}

func paidOrder() map[string]interface{} {
	return map[string]interface{}{
		"id":               450789469,
		"name":             "#1042",
		"email":            "a@b.com",
		"total_price":      "197.00",
		"created_at":       "2024-03-15T10:30:00Z",
		"financial_status": "paid",
		"billing_address":  map[string]string{"first_name": "Marie", "last_name": "Dupont"},
		"line_items":       []map[string]string{{"name": "ConfianceBoost Premium"}},
	}
}

func TestVerifyShopifyOrderMatch(t *testing.T) {
	newOrdersServer(t, []map[string]interface{}{paidOrder()})

	order, err := VerifyShopifyOrder("1042", "a@b.com")
	require.NoError(t, err)
	require.Equal(t, int64(450789469), order.OrderID)
	require.Equal(t, "#1042", order.OrderNumber)
	require.Equal(t, "a@b.com", order.Email)
	require.Equal(t, "Marie Dupont", order.CustomerName)
	require.Equal(t, "197.00", order.TotalPrice)
	require.Equal(t, "paid", order.FinancialStatus)
	require.NotNil(t, order.PurchaseTime())
}

func TestVerifyShopifyOrderEmailCaseInsensitive(t *testing.T) {
	newOrdersServer(t, []map[string]interface{}{paidOrder()})

	order, err := VerifyShopifyOrder("#1042", "A@B.COM")
	require.NoError(t, err)
	require.Equal(t, "#1042", order.OrderNumber)
}

func TestVerifyShopifyOrderEmailMismatch(t *testing.T) {
	newOrdersServer(t, []map[string]interface{}{paidOrder()})

	_, err := VerifyShopifyOrder("1042", "wrong@b.com")
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestVerifyShopifyOrderWrongProduct(t *testing.T) {
	order := paidOrder()
	order["line_items"] = []map[string]string{{"name": "Gift Card"}}
	newOrdersServer(t, []map[string]interface{}{order})

	_, err := VerifyShopifyOrder("1042", "a@b.com")
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestVerifyShopifyOrderNoResults(t *testing.T) {
	newOrdersServer(t, nil)

	_, err := VerifyShopifyOrder("9999", "a@b.com")
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestVerifyShopifyOrderProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	config.AppConfig = &config.Config{
		ShopifyStoreURL:       server.URL,
		ShopifyAccessToken:    "test-token",
		ShopifyProductKeyword: "confiance",
		ShopifyApiVersion:     "2023-10",
	}

	_, err := VerifyShopifyOrder("1042", "a@b.com")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrOrderNotFound), "provider failure must not masquerade as not-found")
}

func TestVerifyShopifyOrderMissingCredentials(t *testing.T) {
	config.AppConfig = &config.Config{}

	_, err := VerifyShopifyOrder("1042", "a@b.com")
	require.Error(t, err)
}
