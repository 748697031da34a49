package service

import (
	"errors"
	"testing"

	"orderdesk/internal/domain"
)

func TestPlanDelivery_FirstFulfillmentOnly(t *testing.T) {
	st := &domain.DeliveryState{
		DisplayFinancialStatus: domain.StatusPaid,
		Fulfillments:           []domain.Fulfillment{{ID: "f1"}, {ID: "f2"}},
	}
	plan, err := PlanDelivery("7", st)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	p, ok := plan.(UpdateExisting)
	if !ok {
		t.Fatalf("expected UpdateExisting, got %T", plan)
	}
	if p.FulfillmentID != "f1" {
		t.Fatalf("expected first fulfillment, got %q", p.FulfillmentID)
	}
}

func TestPlanDelivery_CreateRequest(t *testing.T) {
	st := &domain.DeliveryState{
		DisplayFinancialStatus: domain.StatusPaid,
		FulfillmentOrders: []domain.FulfillmentOrder{
			{ID: "fo-closed", Status: "CLOSED", LineItems: []domain.FulfillmentOrderLineItem{{ID: "Z", RemainingQuantity: 4}}},
			{ID: "fo-open", Status: "OPEN", LineItems: []domain.FulfillmentOrderLineItem{
				{ID: "A", RemainingQuantity: 2},
				{ID: "B", RemainingQuantity: 0},
				{ID: "C", RemainingQuantity: 1},
			}},
			{ID: "fo-open-2", Status: "OPEN"},
		},
	}
	plan, err := PlanDelivery("1234", st)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	p, ok := plan.(CreateAndDeliver)
	if !ok {
		t.Fatalf("expected CreateAndDeliver, got %T", plan)
	}
	want := domain.FulfillmentRequest{
		FulfillmentOrderID: "fo-open",
		LineItems:          []domain.FulfillmentLineItem{{ID: "A", Quantity: 2}, {ID: "C", Quantity: 1}},
		TrackingCompany:    "Manual",
		TrackingNumber:     "DELIVERED-1234",
		NotifyCustomer:     true,
	}
	got := p.Request
	if got.FulfillmentOrderID != want.FulfillmentOrderID || got.TrackingCompany != want.TrackingCompany ||
		got.TrackingNumber != want.TrackingNumber || got.NotifyCustomer != want.NotifyCustomer {
		t.Fatalf("unexpected request %+v", got)
	}
	if len(got.LineItems) != len(want.LineItems) {
		t.Fatalf("unexpected line items %+v", got.LineItems)
	}
	for i := range want.LineItems {
		if got.LineItems[i] != want.LineItems[i] {
			t.Fatalf("line item %d: expected %+v, got %+v", i, want.LineItems[i], got.LineItems[i])
		}
	}
}

func TestPlanDelivery_Errors(t *testing.T) {
	if _, err := PlanDelivery("1", &domain.DeliveryState{DisplayFinancialStatus: "PENDING"}); !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("expected precondition failed, got %v", err)
	}
	if _, err := PlanDelivery("1", &domain.DeliveryState{DisplayFinancialStatus: "PAID"}); !errors.Is(err, ErrNoOpenFulfillmentOrder) {
		t.Fatalf("expected no open fulfillment order, got %v", err)
	}
}
