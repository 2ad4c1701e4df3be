package utils

import (
	"cboost/config"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrOrderNotFound is returned when no paid order matches the supplied
// reference and email for this platform's product.
var ErrOrderNotFound = errors.New("order not found or not paid")

// ShopifyOrder is the normalized order descriptor used for access provisioning
type ShopifyOrder struct {
	OrderID         int64  `json:"order_id"`
	OrderNumber     string `json:"order_number"`
	Email           string `json:"email"`
	CustomerName    string `json:"customer_name"`
	TotalPrice      string `json:"total_price"`
	CreatedAt       string `json:"created_at"`
	FinancialStatus string `json:"financial_status"`
}

// PurchaseTime parses the order creation timestamp. Returns nil when the
// provider value is absent or unparseable.
func (o *ShopifyOrder) PurchaseTime() *time.Time {
	if o.CreatedAt == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, o.CreatedAt)
	if err != nil {
		return nil
	}
	return &t
}

// shopifyOrdersResponse mirrors the Admin API orders.json payload
type shopifyOrdersResponse struct {
	Orders []struct {
		ID              int64  `json:"id"`
		Name            string `json:"name"`
		Email           string `json:"email"`
		TotalPrice      string `json:"total_price"`
		CreatedAt       string `json:"created_at"`
		FinancialStatus string `json:"financial_status"`
		BillingAddress  struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		} `json:"billing_address"`
		LineItems []struct {
			Name string `json:"name"`
		} `json:"line_items"`
	} `json:"orders"`
}

// FormatOrderNumber normalizes a human-entered order reference to the Shopify
// order name format. Idempotent: normalizing an already-normalized reference
// returns it unchanged.
func FormatOrderNumber(orderInput string) string {
	orderInput = strings.TrimSpace(orderInput)

	if strings.HasPrefix(orderInput, "#") {
		return orderInput
	}

	if orderInput != "" && isDigits(orderInput) {
		return "#" + orderInput
	}

	return orderInput
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// LineItemMatchesProduct reports whether a purchased item name references this
// platform's product (case-insensitive keyword match).
func LineItemMatchesProduct(name string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(config.AppConfig.ShopifyProductKeyword))
}

// VerifyShopifyOrder queries the Shopify Admin API for a paid order matching
// the normalized reference and the supplied email. Read-only; any provider
// communication problem is returned as an error and logged by the caller, the
// client never sees provider detail.
func VerifyShopifyOrder(orderNumber, email string) (*ShopifyOrder, error) {
	if config.AppConfig.ShopifyStoreURL == "" || config.AppConfig.ShopifyAccessToken == "" {
		return nil, errors.New("shopify credentials not configured")
	}

	url := fmt.Sprintf("%s/admin/api/%s/orders.json",
		strings.TrimSuffix(config.AppConfig.ShopifyStoreURL, "/"),
		config.AppConfig.ShopifyApiVersion,
	)

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("X-Shopify-Access-Token", config.AppConfig.ShopifyAccessToken).
		SetHeader("Content-Type", "application/json").
		SetQueryParams(map[string]string{
			"name":             FormatOrderNumber(orderNumber),
			"status":           "any",
			"financial_status": "paid",
		}).
		Get(url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("shopify orders lookup returned status %d", resp.StatusCode())
	}

	var data shopifyOrdersResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, err
	}

	for _, order := range data.Orders {
		if !strings.EqualFold(order.Email, email) {
			continue
		}

		// The order must contain the platform's product
		for _, item := range order.LineItems {
			if LineItemMatchesProduct(item.Name) {
				customerName := strings.TrimSpace(order.BillingAddress.FirstName + " " + order.BillingAddress.LastName)
				return &ShopifyOrder{
					OrderID:         order.ID,
					OrderNumber:     order.Name,
					Email:           order.Email,
					CustomerName:    customerName,
					TotalPrice:      order.TotalPrice,
					CreatedAt:       order.CreatedAt,
					FinancialStatus: order.FinancialStatus,
				}, nil
			}
		}
	}

	log.Printf("No paid order %s for %s", FormatOrderNumber(orderNumber), email)
	return nil, ErrOrderNotFound
}
