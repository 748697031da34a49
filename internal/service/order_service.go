package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"orderdesk/internal/domain"
	"orderdesk/internal/logger"
	"orderdesk/internal/metrics"
)

// Upstream операции Admin API, которые нужны сервису заказов
type Upstream interface {
	FetchOrders(ctx context.Context, cursor string) (*domain.OrderPage, error)
	FetchDeliveryState(ctx context.Context, orderGID string) (*domain.DeliveryState, error)
	MarkAsPaid(ctx context.Context, orderGID string) ([]domain.UserError, error)
	CreateFulfillment(ctx context.Context, req domain.FulfillmentRequest) (string, []domain.UserError, error)
	CreateFulfillmentEvent(ctx context.Context, fulfillmentID, status string, happenedAt time.Time) ([]domain.UserError, error)
}

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrPreconditionFailed     = errors.New("order must be paid before delivery")
	ErrNoOpenFulfillmentOrder = errors.New("no open fulfillment orders found")
)

// ValidationError бизнес-ошибки, которые вернул магазин в userErrors
type ValidationError struct {
	Operation  string
	UserErrors []domain.UserError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.UserErrors))
	for _, ue := range e.UserErrors {
		msgs = append(msgs, ue.Message)
	}
	return fmt.Sprintf("%s rejected: %s", e.Operation, strings.Join(msgs, "; "))
}

// OrderService сверяет статусы доставки и выполняет команды оплаты/доставки.
// Состояния между запросами нет: каждый вызов заново читает магазин.
type OrderService struct {
	upstream Upstream
	now      func() time.Time
}

func NewOrderService(upstream Upstream) *OrderService {
	return &OrderService{upstream: upstream, now: time.Now}
}

// ListPendingOrders возвращает страницу заказов без уже доставленных.
// Заказов может быть меньше размера страницы, pageInfo не меняется.
func (s *OrderService) ListPendingOrders(ctx context.Context, cursor string) (*domain.OrderPage, error) {
	page, err := s.upstream.FetchOrders(ctx, cursor)
	if err != nil {
		return nil, err
	}
	out := &domain.OrderPage{
		Orders:   make([]domain.Order, 0, len(page.Orders)),
		PageInfo: page.PageInfo,
	}
	for _, o := range page.Orders {
		o.DisplayFulfillmentStatus = domain.EffectiveDeliveryStatus(o.DisplayFulfillmentStatus, o.Fulfillments)
		if o.DisplayFulfillmentStatus == domain.StatusDelivered {
			continue
		}
		o.OrderID = domain.NumericID(o.ID)
		out.Orders = append(out.Orders, o)
	}
	logger.FromContext(ctx).Debug("pending orders listed",
		"action", "list_orders",
		"fetched", len(page.Orders),
		"returned", len(out.Orders),
		"has_next_page", page.PageInfo.HasNextPage,
	)
	return out, nil
}

// MarkPaid отмечает заказ оплаченным
func (s *OrderService) MarkPaid(ctx context.Context, orderID string) error {
	if !validOrderID(orderID) {
		return ErrInvalidInput
	}
	userErrors, err := s.upstream.MarkAsPaid(ctx, domain.OrderGID(orderID))
	if err != nil {
		return err
	}
	if len(userErrors) > 0 {
		return &ValidationError{Operation: "orderMarkAsPaid", UserErrors: userErrors}
	}
	logger.FromContext(ctx).Info("order marked as paid", "action", "mark_paid", "order_id", orderID)
	return nil
}

// MarkDelivered проверяет оплату, при необходимости создаёт отгрузку
// и добавляет к ней событие DELIVERED.
func (s *OrderService) MarkDelivered(ctx context.Context, orderID string) (*DeliveryOutcome, error) {
	if !validOrderID(orderID) {
		return nil, ErrInvalidInput
	}
	log := logger.FromContext(ctx).With("action", "mark_delivered", "order_id", orderID)

	state, err := s.upstream.FetchDeliveryState(ctx, domain.OrderGID(orderID))
	if err != nil {
		return nil, err
	}
	plan, err := PlanDelivery(orderID, state)
	if err != nil {
		return nil, err
	}

	outcome := &DeliveryOutcome{}
	switch p := plan.(type) {
	case UpdateExisting:
		outcome.FulfillmentID = p.FulfillmentID
	case CreateAndDeliver:
		id, userErrors, err := s.upstream.CreateFulfillment(ctx, p.Request)
		if err != nil {
			return nil, err
		}
		if len(userErrors) > 0 {
			return nil, &ValidationError{Operation: "fulfillmentCreate", UserErrors: userErrors}
		}
		outcome.FulfillmentID = id
		outcome.Created = true
		log.Info("fulfillment created", "fulfillment_id", id)
	default:
		return nil, fmt.Errorf("unknown delivery plan %T", plan)
	}

	userErrors, err := s.upstream.CreateFulfillmentEvent(ctx, outcome.FulfillmentID, domain.StatusDelivered, s.now())
	if err == nil && len(userErrors) > 0 {
		err = &ValidationError{Operation: "fulfillmentEventCreate", UserErrors: userErrors}
	}
	if err != nil {
		if outcome.Created {
			// no rollback: the new fulfillment stays without a delivered event
			log.Warn("fulfillment created but delivery event failed", "fulfillment_id", outcome.FulfillmentID, "error", err.Error())
		}
		return nil, err
	}

	metrics.DeliveriesTotal.WithLabelValues(outcome.path()).Inc()
	log.Info("order marked as delivered", "fulfillment_id", outcome.FulfillmentID, "created", outcome.Created)
	return outcome, nil
}

// validOrderID числовой хвост глобального id
func validOrderID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
