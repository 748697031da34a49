package service

import "orderdesk/internal/domain"

const (
	manualTrackingCompany = "Manual"
	trackingNumberPrefix  = "DELIVERED-"
)

// DeliveryPlan решение, как отметить заказ доставленным: UpdateExisting или CreateAndDeliver
type DeliveryPlan interface {
	deliveryPlan()
}

// UpdateExisting событие DELIVERED добавляется к первой существующей отгрузке.
// Остальные отгрузки и неотгруженные остатки не трогаются.
type UpdateExisting struct {
	FulfillmentID string
}

// CreateAndDeliver отгрузок ещё нет: создаём отгрузку по открытому
// fulfillment order и затем добавляем к ней DELIVERED.
type CreateAndDeliver struct {
	Request domain.FulfillmentRequest
}

func (UpdateExisting) deliveryPlan()   {}
func (CreateAndDeliver) deliveryPlan() {}

// DeliveryOutcome итог MarkDelivered
type DeliveryOutcome struct {
	FulfillmentID string
	Created       bool
}

func (o DeliveryOutcome) Message() string {
	if o.Created {
		return "Order fulfilled and marked as delivered"
	}
	return "Order marked as delivered"
}

func (o DeliveryOutcome) path() string {
	if o.Created {
		return "created"
	}
	return "existing"
}

// PlanDelivery выбирает ветку по состоянию заказа. Ничего не вызывает,
// поэтому отказ здесь означает, что мутаций не было.
func PlanDelivery(orderID string, st *domain.DeliveryState) (DeliveryPlan, error) {
	if st.DisplayFinancialStatus != domain.StatusPaid {
		return nil, ErrPreconditionFailed
	}
	// an already-delivered fulfillment gets a second DELIVERED event here
	if len(st.Fulfillments) > 0 {
		return UpdateExisting{FulfillmentID: st.Fulfillments[0].ID}, nil
	}

	for _, fo := range st.FulfillmentOrders {
		if fo.Status != domain.FulfillmentOrderOpen {
			continue
		}
		items := make([]domain.FulfillmentLineItem, 0, len(fo.LineItems))
		for _, li := range fo.LineItems {
			if li.RemainingQuantity > 0 {
				items = append(items, domain.FulfillmentLineItem{ID: li.ID, Quantity: li.RemainingQuantity})
			}
		}
		return CreateAndDeliver{Request: domain.FulfillmentRequest{
			FulfillmentOrderID: fo.ID,
			LineItems:          items,
			TrackingCompany:    manualTrackingCompany,
			TrackingNumber:     trackingNumberPrefix + orderID,
			NotifyCustomer:     true,
		}}, nil
	}
	return nil, ErrNoOpenFulfillmentOrder
}
