// internal/infrastructure/orderapi/client_test.go
package orderapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-cart/internal/domain/order"
)

// capturedRequest records what the fake upstream received
type capturedRequest struct {
	authorization string
	contentType   string
	body          graphqlRequest
}

func newTestClient(t *testing.T, response string, captured *capturedRequest) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			captured.authorization = r.Header.Get("Authorization")
			captured.contentType = r.Header.Get("Content-Type")
			if err := json.NewDecoder(r.Body).Decode(&captured.body); err != nil {
				t.Errorf("failed to decode request body: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)

	client := &Client{
		url:        server.URL,
		token:      "test-token",
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
	return client, server
}

func TestCurrentDraftOrder_ReturnsOrder(t *testing.T) {
	response := `{"data":{"fullOrders":[{
		"_id":"order-1",
		"customerId":"cust-1",
		"totalAmount":42.5,
		"items":[{"_id":"l1","productId":"p1","productName":"City Tour","unitPrice":42.5,"count":1}]
	}]}}`

	captured := &capturedRequest{}
	client, _ := newTestClient(t, response, captured)

	got, err := client.CurrentDraftOrder(context.Background(), "cust-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "order-1", got.ID)
	assert.Equal(t, 42.5, got.TotalAmount)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "p1", got.Lines[0].ProductID)
	assert.Equal(t, "City Tour", got.Lines[0].ProductName)

	assert.Equal(t, "Bearer test-token", captured.authorization)
	assert.Equal(t, "application/json", captured.contentType)
	assert.Contains(t, captured.body.Query, "fullOrders")
	assert.Equal(t, "cust-1", captured.body.Variables["customerId"])
	assert.Equal(t, []interface{}{"cart"}, captured.body.Variables["statuses"])
}

func TestCurrentDraftOrder_NilWhenNone(t *testing.T) {
	client, _ := newTestClient(t, `{"data":{"fullOrders":[]}}`, nil)

	got, err := client.CurrentDraftOrder(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateOrder_SendsVariablesAndReturnsID(t *testing.T) {
	captured := &capturedRequest{}
	client, _ := newTestClient(t, `{"data":{"ordersAdd":{"_id":"order-7"}}}`, captured)

	id, err := client.CreateOrder(context.Background(), order.CreateInput{
		CustomerID: "cust-1",
		BranchID:   "branch-1",
		Lines: []order.Line{
			{ID: "l1", ProductID: "p1", ProductName: "City Tour", UnitPrice: 10, Count: 2},
		},
		TotalAmount: 20,
	})
	require.NoError(t, err)
	assert.Equal(t, "order-7", id)

	assert.Contains(t, captured.body.Query, "ordersAdd")
	assert.Equal(t, "cust-1", captured.body.Variables["customerId"])
	assert.Equal(t, "branch-1", captured.body.Variables["branchId"])
	assert.Equal(t, "cart", captured.body.Variables["status"])
	assert.Equal(t, "delivery", captured.body.Variables["type"])
	assert.Equal(t, "storefront", captured.body.Variables["origin"])
	assert.Equal(t, 20.0, captured.body.Variables["totalAmount"])

	items, ok := captured.body.Variables["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	line, ok := items[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "p1", line["productId"])
	assert.Equal(t, 2.0, line["count"])
}

func TestCreateOrder_EmptyIDIsError(t *testing.T) {
	client, _ := newTestClient(t, `{"data":{"ordersAdd":{"_id":""}}}`, nil)

	_, err := client.CreateOrder(context.Background(), order.CreateInput{CustomerID: "cust-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no order id")
}

func TestEditOrder_SendsOrderID(t *testing.T) {
	captured := &capturedRequest{}
	client, _ := newTestClient(t, `{"data":{"ordersEdit":{"_id":"order-1","status":"cart"}}}`, captured)

	err := client.EditOrder(context.Background(), order.EditInput{
		OrderID:     "order-1",
		CustomerID:  "cust-1",
		Lines:       []order.Line{{ID: "l1", ProductID: "p1", UnitPrice: 5, Count: 1}},
		TotalAmount: 5,
	})
	require.NoError(t, err)

	assert.Contains(t, captured.body.Query, "ordersEdit")
	assert.Equal(t, "order-1", captured.body.Variables["_id"])
	_, hasBranch := captured.body.Variables["branchId"]
	assert.False(t, hasBranch, "empty branch id must be omitted")
}

func TestCancelOrder_SendsOrderID(t *testing.T) {
	captured := &capturedRequest{}
	client, _ := newTestClient(t, `{"data":{"ordersCancel":"ok"}}`, captured)

	err := client.CancelOrder(context.Background(), "order-1")
	require.NoError(t, err)

	assert.Contains(t, captured.body.Query, "ordersCancel")
	assert.Equal(t, "order-1", captured.body.Variables["_id"])
}

func TestExecute_SurfacesGraphQLErrors(t *testing.T) {
	client, _ := newTestClient(t, `{"errors":[{"message":"order not found"}]}`, nil)

	err := client.CancelOrder(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order not found")
}

func TestExecute_NonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client := &Client{url: server.URL, httpClient: &http.Client{Timeout: 5 * time.Second}}
	_, err := client.CurrentDraftOrder(context.Background(), "cust-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestExecute_NoTokenOmitsAuthorization(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":{"fullOrders":[]}}`))
	}))
	t.Cleanup(server.Close)

	client := &Client{url: server.URL, httpClient: &http.Client{Timeout: 5 * time.Second}}
	_, err := client.CurrentDraftOrder(context.Background(), "cust-1")
	require.NoError(t, err)
	assert.Empty(t, auth)
}

func TestLinesToInputs_OmitsEmptyOptionals(t *testing.T) {
	inputs := linesToInputs([]order.Line{
		{ID: "l1", ProductID: "p1", ProductName: "Tour", UnitPrice: 3, Count: 1, Description: "half day"},
		{ID: "l2", ProductID: "p2", ProductName: "Hike", UnitPrice: 4, Count: 2},
	})

	require.Len(t, inputs, 2)
	assert.Equal(t, "half day", inputs[0]["description"])
	_, hasDesc := inputs[1]["description"]
	assert.False(t, hasDesc)
	_, hasImage := inputs[1]["imageUrl"]
	assert.False(t, hasImage)
}
