package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderGIDPrefix префикс глобального идентификатора заказа в Admin API
const OrderGIDPrefix = "gid://shopify/Order/"

// Статусы доставки и оплаты, которые используются в логике
const (
	StatusDelivered   = "DELIVERED"
	StatusUnfulfilled = "UNFULFILLED"
	StatusPaid        = "PAID"

	FulfillmentOrderOpen = "OPEN"
)

// Money сумма в валюте магазина
type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// MarshalJSON сохраняет масштаб суммы: "10.00" уходит клиенту как "10.00"
func (m Money) MarshalJSON() ([]byte, error) {
	places := -m.Amount.Exponent()
	if places < 0 {
		places = 0
	}
	return json.Marshal(struct {
		Amount       string `json:"amount"`
		CurrencyCode string `json:"currencyCode"`
	}{m.Amount.StringFixed(places), m.CurrencyCode})
}

// MoneyBag обёртка над суммой, повторяет форму totalPriceSet
type MoneyBag struct {
	ShopMoney Money `json:"shopMoney"`
}

// LineItem позиция заказа
type LineItem struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// FulfillmentEvent изменение статуса отгрузки
type FulfillmentEvent struct {
	Status     string    `json:"status"`
	HappenedAt time.Time `json:"happenedAt"`
}

// Fulfillment отгрузка по заказу
type Fulfillment struct {
	ID            string             `json:"id,omitempty"`
	Status        string             `json:"status"`
	DisplayStatus string             `json:"displayStatus,omitempty"`
	Events        []FulfillmentEvent `json:"events"`
}

// HasDeliveredEvent true, если в истории событий есть DELIVERED
func (f Fulfillment) HasDeliveredEvent() bool {
	for _, ev := range f.Events {
		if ev.Status == StatusDelivered {
			return true
		}
	}
	return false
}

// Order заказ в том виде, в каком он уходит в панель оператора.
// DisplayFulfillmentStatus содержит уже вычисленный эффективный статус.
type Order struct {
	ID                       string        `json:"id"`
	OrderID                  string        `json:"orderId"`
	Name                     string        `json:"name"`
	DisplayFulfillmentStatus string        `json:"displayFulfillmentStatus"`
	DisplayFinancialStatus   string        `json:"displayFinancialStatus"`
	TotalPriceSet            MoneyBag      `json:"totalPriceSet"`
	CreatedAt                *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt                *time.Time    `json:"updatedAt,omitempty"`
	LineItems                []LineItem    `json:"lineItems"`
	Fulfillments             []Fulfillment `json:"fulfillments"`
}

// PageInfo курсор пагинации, возвращается клиенту без изменений
type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

// OrderPage страница заказов
type OrderPage struct {
	Orders   []Order  `json:"orders"`
	PageInfo PageInfo `json:"pageInfo"`
}

// FulfillmentOrderLineItem остаток позиции, который ещё нужно отгрузить
type FulfillmentOrderLineItem struct {
	ID                string `json:"id"`
	RemainingQuantity int64  `json:"remainingQuantity"`
}

// FulfillmentOrder набор неотгруженных позиций заказа
type FulfillmentOrder struct {
	ID        string                     `json:"id"`
	Status    string                     `json:"status"`
	LineItems []FulfillmentOrderLineItem `json:"lineItems"`
}

// DeliveryState срез заказа, нужный для отметки о доставке
type DeliveryState struct {
	DisplayFinancialStatus string
	Fulfillments           []Fulfillment
	FulfillmentOrders      []FulfillmentOrder
}

// FulfillmentLineItem позиция fulfillment order и количество к отгрузке
type FulfillmentLineItem struct {
	ID       string `json:"id"`
	Quantity int64  `json:"quantity"`
}

// FulfillmentRequest новая отгрузка по одному fulfillment order
type FulfillmentRequest struct {
	FulfillmentOrderID string
	LineItems          []FulfillmentLineItem
	TrackingCompany    string
	TrackingNumber     string
	NotifyCustomer     bool
}

// UserError ошибка бизнес-валидации, которую вернул Admin API
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// User учётная запись оператора
type User struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// EffectiveDeliveryStatus вычисляет статус доставки заказа:
// DELIVERED, если хотя бы у одной отгрузки есть событие DELIVERED,
// иначе заявленный статус, а при его отсутствии UNFULFILLED.
func EffectiveDeliveryStatus(declared string, fulfillments []Fulfillment) string {
	for _, f := range fulfillments {
		if f.HasDeliveredEvent() {
			return StatusDelivered
		}
	}
	if declared == "" {
		return StatusUnfulfilled
	}
	return declared
}

// OrderGID строит глобальный id заказа из числового
func OrderGID(orderID string) string {
	return OrderGIDPrefix + orderID
}

// NumericID возвращает часть глобального id после последнего "/"
func NumericID(gid string) string {
	if i := strings.LastIndex(gid, "/"); i >= 0 {
		return gid[i+1:]
	}
	return gid
}
