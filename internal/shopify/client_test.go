package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"orderdesk/internal/domain"
)

type capturedRequest struct {
	Token     string
	Query     string
	Variables map[string]any
}

type recorder struct {
	mu   sync.Mutex
	reqs []capturedRequest
}

func (r *recorder) all() []capturedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]capturedRequest(nil), r.reqs...)
}

// newUpstream answers every request with body and records what it received.
func newUpstream(t *testing.T, status int, body string) (*Client, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode upstream request: %v", err)
		}
		rec.mu.Lock()
		rec.reqs = append(rec.reqs, capturedRequest{
			Token:     r.Header.Get("X-Shopify-Access-Token"),
			Query:     req.Query,
			Variables: req.Variables,
		})
		rec.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "shpat_test", srv.Client()), rec
}

func fulfillmentRequestFixture() domain.FulfillmentRequest {
	return domain.FulfillmentRequest{
		FulfillmentOrderID: "gid://shopify/FulfillmentOrder/2",
		LineItems:          []domain.FulfillmentLineItem{{ID: "A", Quantity: 2}},
		TrackingCompany:    "Manual",
		TrackingNumber:     "DELIVERED-5",
		NotifyCustomer:     true,
	}
}

const ordersBody = `{"data":{"orders":{
  "pageInfo":{"hasNextPage":true,"endCursor":"eyJsYXN0X2lkIjo5OX0="},
  "edges":[{"cursor":"c1","node":{
    "id":"gid://shopify/Order/1001","name":"#1001",
    "displayFulfillmentStatus":"FULFILLED","displayFinancialStatus":"PAID",
    "totalPriceSet":{"shopMoney":{"amount":"19.90","currencyCode":"EUR"}},
    "createdAt":"2026-01-02T10:00:00Z","updatedAt":"2026-01-03T10:00:00Z",
    "lineItems":{"edges":[{"node":{"name":"Mug","quantity":2}}]},
    "fulfillments":[{"id":"gid://shopify/Fulfillment/7","status":"SUCCESS","displayStatus":"FULFILLED",
      "events":{"edges":[{"node":{"status":"IN_TRANSIT","happenedAt":"2026-01-03T09:00:00Z"}}]}}]
  }}]
}}}`

func TestFetchOrders_ForwardsCursorAndDecodes(t *testing.T) {
	c, reqs := newUpstream(t, http.StatusOK, ordersBody)

	page, err := c.FetchOrders(context.Background(), "opaque==cursor")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(reqs.all()) != 1 {
		t.Fatalf("expected one upstream call, got %d", len(reqs.all()))
	}
	r := reqs.all()[0]
	if r.Token != "shpat_test" {
		t.Fatalf("access token header not sent: %q", r.Token)
	}
	if r.Variables["after"] != "opaque==cursor" {
		t.Fatalf("cursor not forwarded verbatim: %v", r.Variables["after"])
	}
	if r.Variables["query"] != "fulfillment_status:fulfilled" {
		t.Fatalf("unexpected filter %v", r.Variables["query"])
	}
	if r.Variables["first"] != float64(250) {
		t.Fatalf("unexpected page size %v", r.Variables["first"])
	}

	if page.PageInfo.EndCursor == nil || *page.PageInfo.EndCursor != "eyJsYXN0X2lkIjo5OX0=" || !page.PageInfo.HasNextPage {
		t.Fatalf("page info altered: %+v", page.PageInfo)
	}
	if len(page.Orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(page.Orders))
	}
	o := page.Orders[0]
	if o.Name != "#1001" || o.DisplayFulfillmentStatus != "FULFILLED" {
		t.Fatalf("unexpected order %+v", o)
	}
	if o.TotalPriceSet.ShopMoney.Amount.String() != "19.9" || o.TotalPriceSet.ShopMoney.CurrencyCode != "EUR" {
		t.Fatalf("unexpected money %+v", o.TotalPriceSet)
	}
	raw, err := json.Marshal(o.TotalPriceSet)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"shopMoney":{"amount":"19.90","currencyCode":"EUR"}}` {
		t.Fatalf("amount not passed through as sent: %s", raw)
	}
	if o.CreatedAt == nil || !o.CreatedAt.Equal(time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)) || o.UpdatedAt == nil {
		t.Fatalf("unexpected timestamps %v %v", o.CreatedAt, o.UpdatedAt)
	}
	if len(o.LineItems) != 1 || o.LineItems[0].Quantity != 2 {
		t.Fatalf("unexpected line items %+v", o.LineItems)
	}
	if len(o.Fulfillments) != 1 || len(o.Fulfillments[0].Events) != 1 || o.Fulfillments[0].Events[0].Status != "IN_TRANSIT" {
		t.Fatalf("unexpected fulfillments %+v", o.Fulfillments)
	}
}

func TestFetchOrders_NoCursor(t *testing.T) {
	c, reqs := newUpstream(t, http.StatusOK, `{"data":{"orders":{"pageInfo":{"hasNextPage":false,"endCursor":null},"edges":[]}}}`)
	page, err := c.FetchOrders(context.Background(), "")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if _, ok := reqs.all()[0].Variables["after"]; ok {
		t.Fatalf("after must be omitted without a cursor")
	}
	if page.PageInfo.EndCursor != nil || page.PageInfo.HasNextPage {
		t.Fatalf("unexpected page info %+v", page.PageInfo)
	}
}

func TestFetchOrders_Errors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"graphql error", http.StatusOK, `{"errors":[{"message":"Throttled"},{"message":"other"}]}`, "Throttled"},
		{"missing edges", http.StatusOK, `{"data":{"orders":{"pageInfo":{"hasNextPage":false}}}}`, "Invalid response structure"},
		{"missing orders", http.StatusOK, `{"data":{}}`, "Invalid response structure"},
		{"null data", http.StatusOK, `{"data":null}`, "Invalid response structure"},
		{"not json", http.StatusOK, `<html>`, "Invalid response structure"},
		{"http status", http.StatusUnauthorized, `{"errors":"[API] Invalid API key"}`, "Request failed with status code 401"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newUpstream(t, tc.status, tc.body)
			_, err := c.FetchOrders(context.Background(), "")
			var upErr *UpstreamError
			if !errors.As(err, &upErr) {
				t.Fatalf("expected UpstreamError, got %v", err)
			}
			if upErr.Message != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, upErr.Message)
			}
		})
	}
}

func TestFetchDeliveryState(t *testing.T) {
	c, reqs := newUpstream(t, http.StatusOK, `{"data":{"order":{
	  "displayFinancialStatus":"PAID",
	  "fulfillments":[],
	  "fulfillmentOrders":{"edges":[
	    {"node":{"id":"gid://shopify/FulfillmentOrder/1","status":"CLOSED","lineItems":{"edges":[]}}},
	    {"node":{"id":"gid://shopify/FulfillmentOrder/2","status":"OPEN","lineItems":{"edges":[
	      {"node":{"id":"A","remainingQuantity":2}},{"node":{"id":"B","remainingQuantity":0}}]}}}
	  ]}
	}}}`)

	st, err := c.FetchDeliveryState(context.Background(), "gid://shopify/Order/5")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if reqs.all()[0].Variables["id"] != "gid://shopify/Order/5" {
		t.Fatalf("unexpected id variable %v", reqs.all()[0].Variables["id"])
	}
	if st.DisplayFinancialStatus != "PAID" || len(st.Fulfillments) != 0 || len(st.FulfillmentOrders) != 2 {
		t.Fatalf("unexpected state %+v", st)
	}
	open := st.FulfillmentOrders[1]
	if open.Status != "OPEN" || len(open.LineItems) != 2 || open.LineItems[0].RemainingQuantity != 2 {
		t.Fatalf("unexpected fulfillment order %+v", open)
	}
}

func TestFetchDeliveryState_NotFound(t *testing.T) {
	c, _ := newUpstream(t, http.StatusOK, `{"data":{"order":null}}`)
	if _, err := c.FetchDeliveryState(context.Background(), "gid://shopify/Order/404"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestMarkAsPaid_UserErrors(t *testing.T) {
	c, reqs := newUpstream(t, http.StatusOK, `{"data":{"orderMarkAsPaid":{"order":null,"userErrors":[{"field":["id"],"message":"Order cannot be marked as paid."}]}}}`)
	ue, err := c.MarkAsPaid(context.Background(), "gid://shopify/Order/9")
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if len(ue) != 1 || ue[0].Message != "Order cannot be marked as paid." {
		t.Fatalf("unexpected user errors %+v", ue)
	}
	input, _ := reqs.all()[0].Variables["input"].(map[string]any)
	if input["id"] != "gid://shopify/Order/9" {
		t.Fatalf("unexpected input %v", reqs.all()[0].Variables)
	}
}

func TestCreateFulfillment(t *testing.T) {
	c, reqs := newUpstream(t, http.StatusOK, `{"data":{"fulfillmentCreate":{"fulfillment":{"id":"gid://shopify/Fulfillment/77"},"userErrors":[]}}}`)
	id, ue, err := c.CreateFulfillment(context.Background(), fulfillmentRequestFixture())
	if err != nil || len(ue) != 0 {
		t.Fatalf("create: %v %v", err, ue)
	}
	if id != "gid://shopify/Fulfillment/77" {
		t.Fatalf("unexpected id %q", id)
	}

	f, _ := reqs.all()[0].Variables["fulfillment"].(map[string]any)
	if f["notifyCustomer"] != true {
		t.Fatalf("notifyCustomer not set: %v", f)
	}
	tracking, _ := f["trackingInfo"].(map[string]any)
	if tracking["company"] != "Manual" || tracking["number"] != "DELIVERED-5" {
		t.Fatalf("unexpected tracking %v", tracking)
	}
	groups, _ := f["lineItemsByFulfillmentOrder"].([]any)
	if len(groups) != 1 {
		t.Fatalf("unexpected groups %v", groups)
	}
	g, _ := groups[0].(map[string]any)
	items, _ := g["fulfillmentOrderLineItems"].([]any)
	if g["fulfillmentOrderId"] != "gid://shopify/FulfillmentOrder/2" || len(items) != 1 {
		t.Fatalf("unexpected group %v", g)
	}
}

func TestCreateFulfillment_UserErrors(t *testing.T) {
	c, _ := newUpstream(t, http.StatusOK, `{"data":{"fulfillmentCreate":{"fulfillment":null,"userErrors":[{"field":["fulfillment"],"message":"Invalid fulfillment order line item quantity requested."}]}}}`)
	id, ue, err := c.CreateFulfillment(context.Background(), fulfillmentRequestFixture())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if id != "" || len(ue) != 1 {
		t.Fatalf("expected user errors only, got id=%q ue=%v", id, ue)
	}
}

func TestCreateFulfillmentEvent(t *testing.T) {
	c, reqs := newUpstream(t, http.StatusOK, `{"data":{"fulfillmentEventCreate":{"fulfillmentEvent":{"id":"e1","status":"DELIVERED"},"userErrors":[]}}}`)
	at := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	ue, err := c.CreateFulfillmentEvent(context.Background(), "gid://shopify/Fulfillment/77", "DELIVERED", at)
	if err != nil || len(ue) != 0 {
		t.Fatalf("event: %v %v", err, ue)
	}
	ev, _ := reqs.all()[0].Variables["fulfillmentEvent"].(map[string]any)
	if ev["fulfillmentId"] != "gid://shopify/Fulfillment/77" || ev["status"] != "DELIVERED" || ev["happenedAt"] != "2026-05-06T07:08:09Z" {
		t.Fatalf("unexpected event input %v", ev)
	}
	if !strings.Contains(reqs.all()[0].Query, "fulfillmentEventCreate") {
		t.Fatalf("wrong mutation sent")
	}
}

func TestEndpoint(t *testing.T) {
	if got := Endpoint("demo.myshopify.com", "2024-10"); got != "https://demo.myshopify.com/admin/api/2024-10/graphql.json" {
		t.Fatalf("unexpected endpoint %q", got)
	}
}
