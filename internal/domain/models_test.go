package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestEffectiveDeliveryStatus(t *testing.T) {
	delivered := Fulfillment{Status: "SUCCESS", Events: []FulfillmentEvent{{Status: "IN_TRANSIT"}, {Status: StatusDelivered}}}
	inTransit := Fulfillment{Status: "SUCCESS", Events: []FulfillmentEvent{{Status: "IN_TRANSIT"}}}

	cases := []struct {
		name         string
		declared     string
		fulfillments []Fulfillment
		want         string
	}{
		{"no fulfillments no status", "", nil, StatusUnfulfilled},
		{"declared kept", "FULFILLED", nil, "FULFILLED"},
		{"event overrides declared", "FULFILLED", []Fulfillment{delivered}, StatusDelivered},
		{"event overrides empty", "", []Fulfillment{delivered}, StatusDelivered},
		{"any fulfillment counts", "PARTIALLY_FULFILLED", []Fulfillment{inTransit, delivered}, StatusDelivered},
		{"no delivered event", "FULFILLED", []Fulfillment{inTransit}, "FULFILLED"},
		{"fulfillment without events", "", []Fulfillment{{Status: "SUCCESS"}}, StatusUnfulfilled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EffectiveDeliveryStatus(tc.declared, tc.fulfillments); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNumericID(t *testing.T) {
	if got := NumericID("gid://shopify/Order/5512345"); got != "5512345" {
		t.Fatalf("unexpected id %q", got)
	}
	if got := NumericID("42"); got != "42" {
		t.Fatalf("unexpected id %q", got)
	}
	if got := OrderGID("42"); got != "gid://shopify/Order/42" {
		t.Fatalf("unexpected gid %q", got)
	}
}

func TestMoneyKeepsScale(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"amount":"10.00","currencyCode":"USD"}`, `{"amount":"10.00","currencyCode":"USD"}`},
		{`{"amount":"0.10","currencyCode":"EUR"}`, `{"amount":"0.10","currencyCode":"EUR"}`},
		{`{"amount":"7","currencyCode":"JPY"}`, `{"amount":"7","currencyCode":"JPY"}`},
	}
	for _, tc := range cases {
		var m Money
		if err := json.Unmarshal([]byte(tc.in), &m); err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		out, err := json.Marshal(m)
		if err != nil {
			t.Fatal(err)
		}
		if string(out) != tc.want {
			t.Fatalf("got %s, want %s", out, tc.want)
		}
	}

	out, _ := json.Marshal(Money{Amount: decimal.New(5, 2), CurrencyCode: "USD"})
	if string(out) != `{"amount":"500","currencyCode":"USD"}` {
		t.Fatalf("positive exponent: %s", out)
	}
}
