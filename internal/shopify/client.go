// Package shopify is a thin GraphQL Admin API client. It knows the query
// shapes the relay needs and converts responses into domain types; it does
// not interpret order state.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"orderdesk/internal/domain"
	"orderdesk/internal/metrics"
)

const invalidShapeMessage = "Invalid response structure"

// UpstreamError describes a failed GraphQL call: transport status, the first
// GraphQL error message, or a response shape mismatch.
type UpstreamError struct {
	Operation  string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string { return e.Message }

// Endpoint builds the Admin API GraphQL URL for a store.
func Endpoint(storeDomain, apiVersion string) string {
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", storeDomain, apiVersion)
}

type Client struct {
	endpoint    string
	accessToken string
	http        *http.Client
}

func NewClient(endpoint, accessToken string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{endpoint: endpoint, accessToken: accessToken, http: httpClient}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// do posts one GraphQL operation and decodes its data field into out.
func (c *Client) do(ctx context.Context, op, query string, vars map[string]any, out any) error {
	start := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues(op, "transport").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues(op, "transport").Inc()
		return fmt.Errorf("%s: read response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamErrorsTotal.WithLabelValues(op, "status").Inc()
		return &UpstreamError{
			Operation:  op,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("Request failed with status code %d", resp.StatusCode),
		}
	}

	var gql graphQLResponse
	if err := json.Unmarshal(raw, &gql); err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues(op, "decode").Inc()
		return &UpstreamError{Operation: op, StatusCode: resp.StatusCode, Message: invalidShapeMessage}
	}
	if len(gql.Errors) > 0 {
		metrics.UpstreamErrorsTotal.WithLabelValues(op, "graphql").Inc()
		return &UpstreamError{Operation: op, StatusCode: resp.StatusCode, Message: gql.Errors[0].Message}
	}
	if len(gql.Data) == 0 || string(gql.Data) == "null" {
		metrics.UpstreamErrorsTotal.WithLabelValues(op, "shape").Inc()
		return &UpstreamError{Operation: op, StatusCode: resp.StatusCode, Message: invalidShapeMessage}
	}
	if err := json.Unmarshal(gql.Data, out); err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues(op, "shape").Inc()
		return &UpstreamError{Operation: op, StatusCode: resp.StatusCode, Message: invalidShapeMessage}
	}
	return nil
}

type ordersData struct {
	Orders *struct {
		PageInfo domain.PageInfo `json:"pageInfo"`
		Edges    *[]struct {
			Node orderNode `json:"node"`
		} `json:"edges"`
	} `json:"orders"`
}

type orderNode struct {
	ID                       string          `json:"id"`
	Name                     string          `json:"name"`
	DisplayFulfillmentStatus string          `json:"displayFulfillmentStatus"`
	DisplayFinancialStatus   string          `json:"displayFinancialStatus"`
	TotalPriceSet            domain.MoneyBag `json:"totalPriceSet"`
	CreatedAt                *time.Time      `json:"createdAt"`
	UpdatedAt                *time.Time      `json:"updatedAt"`
	LineItems                struct {
		Edges []struct {
			Node domain.LineItem `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
	Fulfillments []fulfillmentNode `json:"fulfillments"`
}

type fulfillmentNode struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	DisplayStatus string `json:"displayStatus"`
	Events        struct {
		Edges []struct {
			Node domain.FulfillmentEvent `json:"node"`
		} `json:"edges"`
	} `json:"events"`
}

func (n fulfillmentNode) toDomain() domain.Fulfillment {
	f := domain.Fulfillment{ID: n.ID, Status: n.Status, DisplayStatus: n.DisplayStatus}
	for _, e := range n.Events.Edges {
		f.Events = append(f.Events, e.Node)
	}
	return f
}

func (n orderNode) toDomain() domain.Order {
	o := domain.Order{
		ID:                       n.ID,
		Name:                     n.Name,
		DisplayFulfillmentStatus: n.DisplayFulfillmentStatus,
		DisplayFinancialStatus:   n.DisplayFinancialStatus,
		TotalPriceSet:            n.TotalPriceSet,
		CreatedAt:                n.CreatedAt,
		UpdatedAt:                n.UpdatedAt,
		LineItems:                make([]domain.LineItem, 0, len(n.LineItems.Edges)),
		Fulfillments:             make([]domain.Fulfillment, 0, len(n.Fulfillments)),
	}
	for _, e := range n.LineItems.Edges {
		o.LineItems = append(o.LineItems, e.Node)
	}
	for _, f := range n.Fulfillments {
		o.Fulfillments = append(o.Fulfillments, f.toDomain())
	}
	return o
}

// FetchOrders returns one page of orders with their declared statuses.
// A non-empty cursor is passed through as the "after" argument untouched.
func (c *Client) FetchOrders(ctx context.Context, cursor string) (*domain.OrderPage, error) {
	vars := map[string]any{
		"first": ordersPageSize,
		"query": pendingOrdersFilter,
	}
	if cursor != "" {
		vars["after"] = cursor
	}
	var data ordersData
	if err := c.do(ctx, "orders", pendingOrdersQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Orders == nil || data.Orders.Edges == nil {
		return nil, &UpstreamError{Operation: "orders", Message: invalidShapeMessage}
	}
	page := &domain.OrderPage{
		Orders:   make([]domain.Order, 0, len(*data.Orders.Edges)),
		PageInfo: data.Orders.PageInfo,
	}
	for _, e := range *data.Orders.Edges {
		page.Orders = append(page.Orders, e.Node.toDomain())
	}
	return page, nil
}

type deliveryStateData struct {
	Order *struct {
		DisplayFinancialStatus string            `json:"displayFinancialStatus"`
		Fulfillments           []fulfillmentNode `json:"fulfillments"`
		FulfillmentOrders      struct {
			Edges []struct {
				Node struct {
					ID        string `json:"id"`
					Status    string `json:"status"`
					LineItems struct {
						Edges []struct {
							Node domain.FulfillmentOrderLineItem `json:"node"`
						} `json:"edges"`
					} `json:"lineItems"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"fulfillmentOrders"`
	} `json:"order"`
}

// FetchDeliveryState loads the financial status, fulfillments and fulfillment
// orders of one order.
func (c *Client) FetchDeliveryState(ctx context.Context, orderGID string) (*domain.DeliveryState, error) {
	var data deliveryStateData
	if err := c.do(ctx, "order", deliveryStateQuery, map[string]any{"id": orderGID}, &data); err != nil {
		return nil, err
	}
	if data.Order == nil {
		return nil, domain.ErrOrderNotFound
	}
	st := &domain.DeliveryState{DisplayFinancialStatus: data.Order.DisplayFinancialStatus}
	for _, f := range data.Order.Fulfillments {
		st.Fulfillments = append(st.Fulfillments, f.toDomain())
	}
	for _, e := range data.Order.FulfillmentOrders.Edges {
		fo := domain.FulfillmentOrder{ID: e.Node.ID, Status: e.Node.Status}
		for _, li := range e.Node.LineItems.Edges {
			fo.LineItems = append(fo.LineItems, li.Node)
		}
		st.FulfillmentOrders = append(st.FulfillmentOrders, fo)
	}
	return st, nil
}

type mutationPayload struct {
	UserErrors []domain.UserError `json:"userErrors"`
}

// MarkAsPaid runs orderMarkAsPaid and returns the user errors, if any.
func (c *Client) MarkAsPaid(ctx context.Context, orderGID string) ([]domain.UserError, error) {
	var data struct {
		OrderMarkAsPaid *mutationPayload `json:"orderMarkAsPaid"`
	}
	vars := map[string]any{"input": map[string]any{"id": orderGID}}
	if err := c.do(ctx, "orderMarkAsPaid", orderMarkAsPaidMutation, vars, &data); err != nil {
		return nil, err
	}
	if data.OrderMarkAsPaid == nil {
		return nil, &UpstreamError{Operation: "orderMarkAsPaid", Message: invalidShapeMessage}
	}
	return data.OrderMarkAsPaid.UserErrors, nil
}

type fulfillmentOrderLineItemsInput struct {
	FulfillmentOrderID        string                       `json:"fulfillmentOrderId"`
	FulfillmentOrderLineItems []domain.FulfillmentLineItem `json:"fulfillmentOrderLineItems"`
}

type trackingInfoInput struct {
	Company string `json:"company"`
	Number  string `json:"number"`
}

type fulfillmentInput struct {
	LineItemsByFulfillmentOrder []fulfillmentOrderLineItemsInput `json:"lineItemsByFulfillmentOrder"`
	TrackingInfo                trackingInfoInput                `json:"trackingInfo"`
	NotifyCustomer              bool                             `json:"notifyCustomer"`
}

// CreateFulfillment runs fulfillmentCreate. The returned id is empty when
// user errors are reported.
func (c *Client) CreateFulfillment(ctx context.Context, req domain.FulfillmentRequest) (string, []domain.UserError, error) {
	input := fulfillmentInput{
		LineItemsByFulfillmentOrder: []fulfillmentOrderLineItemsInput{{
			FulfillmentOrderID:        req.FulfillmentOrderID,
			FulfillmentOrderLineItems: req.LineItems,
		}},
		TrackingInfo:   trackingInfoInput{Company: req.TrackingCompany, Number: req.TrackingNumber},
		NotifyCustomer: req.NotifyCustomer,
	}
	var data struct {
		FulfillmentCreate *struct {
			Fulfillment *struct {
				ID string `json:"id"`
			} `json:"fulfillment"`
			UserErrors []domain.UserError `json:"userErrors"`
		} `json:"fulfillmentCreate"`
	}
	if err := c.do(ctx, "fulfillmentCreate", fulfillmentCreateMutation, map[string]any{"fulfillment": input}, &data); err != nil {
		return "", nil, err
	}
	p := data.FulfillmentCreate
	if p == nil {
		return "", nil, &UpstreamError{Operation: "fulfillmentCreate", Message: invalidShapeMessage}
	}
	if len(p.UserErrors) > 0 {
		return "", p.UserErrors, nil
	}
	if p.Fulfillment == nil || p.Fulfillment.ID == "" {
		return "", nil, &UpstreamError{Operation: "fulfillmentCreate", Message: invalidShapeMessage}
	}
	return p.Fulfillment.ID, nil, nil
}

// CreateFulfillmentEvent appends a status event to a fulfillment.
func (c *Client) CreateFulfillmentEvent(ctx context.Context, fulfillmentID, status string, happenedAt time.Time) ([]domain.UserError, error) {
	vars := map[string]any{
		"fulfillmentEvent": map[string]any{
			"fulfillmentId": fulfillmentID,
			"status":        status,
			"happenedAt":    happenedAt.UTC().Format(time.RFC3339),
		},
	}
	var data struct {
		FulfillmentEventCreate *mutationPayload `json:"fulfillmentEventCreate"`
	}
	if err := c.do(ctx, "fulfillmentEventCreate", fulfillmentEventCreateMutation, vars, &data); err != nil {
		return nil, err
	}
	if data.FulfillmentEventCreate == nil {
		return nil, &UpstreamError{Operation: "fulfillmentEventCreate", Message: invalidShapeMessage}
	}
	return data.FulfillmentEventCreate.UserErrors, nil
}
