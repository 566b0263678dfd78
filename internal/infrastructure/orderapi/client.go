// internal/infrastructure/orderapi/client.go
package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/your-org/storefront-cart/internal/config"
	"github.com/your-org/storefront-cart/internal/domain/order"
)

// Client talks GraphQL over HTTP to the upstream commerce API and
// implements order.Service. Timeouts and retries belong to the
// transport; the cart engine retries implicitly on the next mutation.
type Client struct {
	url        string
	token      string
	httpClient *http.Client
}

// NewClient creates an order API client from configuration
func NewClient(cfg *config.Config) *Client {
	return &Client{
		url:   cfg.OrderAPI.URL,
		token: cfg.OrderAPI.Token,
		httpClient: &http.Client{
			Timeout: cfg.OrderAPI.Timeout,
		},
	}
}

const currentDraftOrderQuery = `
query currentDraftOrder($customerId: String!, $statuses: [String]) {
  fullOrders(customerId: $customerId, statuses: $statuses, perPage: 1) {
    _id
    customerId
    totalAmount
    deliveryInfo
    items {
      _id
      productId
      productName
      unitPrice
      count
      description
      imageUrl
    }
  }
}`

const createOrderMutation = `
mutation ordersAdd($customerId: String!, $branchId: String, $items: [OrderItemInput], $totalAmount: Float!, $type: String!, $status: String!, $origin: String!) {
  ordersAdd(customerId: $customerId, branchId: $branchId, items: $items, totalAmount: $totalAmount, type: $type, status: $status, origin: $origin) {
    _id
  }
}`

const editOrderMutation = `
mutation ordersEdit($_id: String!, $customerId: String!, $branchId: String, $items: [OrderItemInput], $totalAmount: Float!) {
  ordersEdit(_id: $_id, customerId: $customerId, branchId: $branchId, items: $items, totalAmount: $totalAmount) {
    _id
    status
  }
}`

const cancelOrderMutation = `
mutation ordersCancel($_id: String!) {
  ordersCancel(_id: $_id)
}`

// CurrentDraftOrder fetches the customer's single order in "cart"
// status, or nil when none exists
func (c *Client) CurrentDraftOrder(ctx context.Context, customerID string) (*order.DraftOrder, error) {
	var resp struct {
		FullOrders []order.DraftOrder `json:"fullOrders"`
	}

	vars := map[string]interface{}{
		"customerId": customerID,
		"statuses":   []string{string(order.StatusCart)},
	}
	if err := c.execute(ctx, currentDraftOrderQuery, vars, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch current draft order: %w", err)
	}

	if len(resp.FullOrders) == 0 {
		return nil, nil
	}
	current := resp.FullOrders[0]
	return &current, nil
}

// CreateOrder creates a new draft order and returns its id
func (c *Client) CreateOrder(ctx context.Context, input order.CreateInput) (string, error) {
	var resp struct {
		OrdersAdd struct {
			ID string `json:"_id"`
		} `json:"ordersAdd"`
	}

	vars := map[string]interface{}{
		"customerId":  input.CustomerID,
		"items":       linesToInputs(input.Lines),
		"totalAmount": input.TotalAmount,
		"type":        string(order.TypeDelivery),
		"status":      string(order.StatusCart),
		"origin":      order.OriginStorefront,
	}
	if input.BranchID != "" {
		vars["branchId"] = input.BranchID
	}

	if err := c.execute(ctx, createOrderMutation, vars, &resp); err != nil {
		return "", fmt.Errorf("failed to create draft order: %w", err)
	}
	if resp.OrdersAdd.ID == "" {
		return "", fmt.Errorf("order API returned no order id")
	}
	return resp.OrdersAdd.ID, nil
}

// EditOrder replaces an existing draft order's lines and total
func (c *Client) EditOrder(ctx context.Context, input order.EditInput) error {
	var resp struct {
		OrdersEdit struct {
			ID     string `json:"_id"`
			Status string `json:"status"`
		} `json:"ordersEdit"`
	}

	vars := map[string]interface{}{
		"_id":         input.OrderID,
		"customerId":  input.CustomerID,
		"items":       linesToInputs(input.Lines),
		"totalAmount": input.TotalAmount,
	}
	if input.BranchID != "" {
		vars["branchId"] = input.BranchID
	}

	if err := c.execute(ctx, editOrderMutation, vars, &resp); err != nil {
		return fmt.Errorf("failed to edit draft order: %w", err)
	}
	return nil
}

// CancelOrder voids a draft order whose cart emptied
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	var resp struct {
		OrdersCancel interface{} `json:"ordersCancel"`
	}

	vars := map[string]interface{}{"_id": orderID}
	if err := c.execute(ctx, cancelOrderMutation, vars, &resp); err != nil {
		return fmt.Errorf("failed to cancel draft order: %w", err)
	}
	return nil
}

// graphqlRequest is the wire shape of one GraphQL call
type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// graphqlError is one error entry from a GraphQL response
type graphqlError struct {
	Message string `json:"message"`
}

// execute posts a GraphQL document and decodes the data payload into dest
func (c *Client) execute(ctx context.Context, query string, variables map[string]interface{}, dest interface{}) error {
	body, err := json.Marshal(graphqlRequest{
		Query:     query,
		Variables: variables,
	})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("order API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("order API returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		return fmt.Errorf("order API error: %s", envelope.Errors[0].Message)
	}

	if dest != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, dest); err != nil {
			return fmt.Errorf("failed to decode data payload: %w", err)
		}
	}
	return nil
}

// linesToInputs converts contract lines into GraphQL item inputs
func linesToInputs(lines []order.Line) []map[string]interface{} {
	inputs := make([]map[string]interface{}, 0, len(lines))
	for _, line := range lines {
		input := map[string]interface{}{
			"_id":         line.ID,
			"productId":   line.ProductID,
			"productName": line.ProductName,
			"unitPrice":   line.UnitPrice,
			"count":       line.Count,
		}
		if line.Description != "" {
			input["description"] = line.Description
		}
		if line.ImageURL != "" {
			input["imageUrl"] = line.ImageURL
		}
		inputs = append(inputs, input)
	}
	return inputs
}
