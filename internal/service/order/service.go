package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// Service реализует workflow оформления заказа поверх трёх коллабораторов:
// справочника покупателей, каталога товаров и хранилища заказов.
type Service struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	outbox    domain.OutboxRepository
	logger    *log.Entry
	metrics   *metrics.OrderMetrics
}

// NewService конструирует сервис с зависимостями. outbox опционален:
// при nil события заказов не публикуются.
func NewService(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	outbox domain.OutboxRepository,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &Service{
		customers: customers,
		products:  products,
		orders:    orders,
		outbox:    outbox,
		logger:    logger,
		metrics:   metrics.NewOrderMetrics(),
	}
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	outbox domain.OutboxRepository,
	logger *log.Entry,
) *Service {
	svc := NewService(customers, products, orders, outbox, logger)
	svc.metrics = nil
	return svc
}

// CreateOrder проверяет покупателя, товары и остатки, атомарно сохраняет
// заказ со всеми позициями и перезаписывает остатки затронутых товаров.
//
// Последовательность строгая: каждый шаг зависит от результата предыдущего.
// Новые остатки вычисляются от снапшота каталога, прочитанного до
// сохранения заказа; конкурирующие инвокации на один товар не
// сериализуются. Если обновление остатков падает после успешного
// сохранения заказа, заказ остаётся сохранённым, а ошибка возвращается
// вызывающему — компенсация на этой границе не выполняется.
func (s *Service) CreateOrder(ctx context.Context, customerID string, requested []domain.RequestedProduct) (domain.Order, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordCreateDuration(time.Since(start))
		}
	}()

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		s.recordFailure(metrics.ReasonCustomerNotFound)
		if errors.Is(err, domain.ErrCustomerNotFound) {
			return domain.Order{}, domain.ErrCustomerNotFound
		}
		return domain.Order{}, fmt.Errorf("find customer %s: %w", customerID, err)
	}

	// Пустой (но переданный) список допустим; ошибкой считается только
	// отсутствие списка как такового.
	if requested == nil {
		s.recordFailure(metrics.ReasonProductsMissing)
		return domain.Order{}, domain.ErrProductsRequired
	}

	for _, req := range requested {
		if req.Quantity <= 0 {
			s.recordFailure(metrics.ReasonQuantityInvalid)
			return domain.Order{}, fmt.Errorf("product (%s): %w", req.ProductID, domain.ErrQuantityInvalid)
		}
	}

	ids := make([]string, 0, len(requested))
	for _, req := range requested {
		ids = append(ids, req.ProductID)
	}

	// Один батч-запрос к каталогу; снапшот остатков и цен переиспользуется
	// ниже и после сохранения заказа.
	existing, err := s.products.FindAllByID(ctx, ids)
	if err != nil {
		s.recordFailure(metrics.ReasonProductNotFound)
		return domain.Order{}, fmt.Errorf("find products: %w", err)
	}

	// Короткий список означает, что какой-то из запрошенных товаров не
	// существует. На этом шаге неизвестно, какой именно.
	if len(existing) != len(requested) {
		s.recordFailure(metrics.ReasonProductNotFound)
		return domain.Order{}, domain.ErrProductNotFound
	}

	requestedByID := make(map[string]domain.RequestedProduct, len(requested))
	for _, req := range requested {
		requestedByID[req.ProductID] = req
	}

	now := time.Now().UTC()
	items := make([]domain.OrderItem, 0, len(existing))
	var amountSum int64
	for _, product := range existing {
		req, ok := requestedByID[product.ID]
		if !ok {
			s.recordFailure(metrics.ReasonProductNotFound)
			return domain.Order{}, domain.ProductNotFound(product.ID)
		}
		if product.Quantity < req.Quantity {
			s.recordFailure(metrics.ReasonInsufficientStock)
			return domain.Order{}, &domain.InsufficientStockError{ProductID: product.ID}
		}
		items = append(items, domain.OrderItem{
			ProductID:  product.ID,
			Quantity:   req.Quantity,
			PriceMinor: product.PriceMinor,
			CreatedAt:  now,
		})
		amountSum += int64(req.Quantity) * product.PriceMinor
	}

	order := domain.Order{
		CustomerID:  customer.ID,
		AmountMinor: amountSum,
		Items:       items,
		CreatedAt:   now,
	}
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		s.recordFailure(metrics.ReasonInvariantViolated)
		return domain.Order{}, errors.New(joinErrors(errs))
	}

	persisted, err := s.orders.Create(ctx, order)
	if err != nil {
		s.recordFailure(metrics.ReasonPersistFailed)
		s.logger.WithError(err).WithField("customer_id", customer.ID).Error("failed to persist order")
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	// Новые остатки вычисляются по сохранённым позициям (источник истины —
	// хранилище заказов), сопоставленным со снапшотом каталога.
	snapshotByID := make(map[string]domain.Product, len(existing))
	for _, product := range existing {
		snapshotByID[product.ID] = product
	}

	updates := make([]domain.StockUpdate, 0, len(persisted.Items))
	for _, item := range persisted.Items {
		product, ok := snapshotByID[item.ProductID]
		if !ok {
			s.recordFailure(metrics.ReasonStockUpdateFailed)
			return domain.Order{}, domain.ProductNotFound(item.ProductID)
		}
		updates = append(updates, domain.StockUpdate{
			ProductID: item.ProductID,
			Quantity:  product.Quantity - item.Quantity,
		})
	}

	if err := s.products.UpdateQuantities(ctx, updates); err != nil {
		// Заказ уже сохранён; остатки могли остаться не списанными.
		s.recordFailure(metrics.ReasonStockUpdateFailed)
		s.logger.WithError(err).WithField("order_id", persisted.ID).Error("failed to update stock after order was persisted")
		return domain.Order{}, fmt.Errorf("update stock for order %s: %w", persisted.ID, err)
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
	}
	s.logger.WithFields(log.Fields{
		"order_id":     persisted.ID,
		"customer_id":  persisted.CustomerID,
		"items":        len(persisted.Items),
		"amount_minor": persisted.AmountMinor,
	}).Info("order created")

	s.emitOrderCreated(persisted)

	return persisted, nil
}

// GetOrder возвращает заказ по идентификатору.
func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	return s.orders.Get(ctx, id)
}

// ListOrders возвращает заказы покупателя, ограничивая выборку limit (если >0).
func (s *Service) ListOrders(ctx context.Context, customerID string, limit int) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, customerID, limit)
}

// emitOrderCreated ставит событие order.created в outbox. Ошибка постановки
// логируется и не влияет на результат оформления заказа.
func (s *Service) emitOrderCreated(order domain.Order) {
	if s.outbox == nil {
		return
	}

	payload, err := json.Marshal(kafka.NewOrderEvent(kafka.EventTypeOrderCreated, order.ID, order.CustomerID, map[string]interface{}{
		"items":        len(order.Items),
		"amount_minor": order.AmountMinor,
	}))
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Error("marshal order created event failed")
		return
	}

	msg := domain.OutboxMessage{
		AggregateType: "order",
		AggregateID:   order.ID,
		EventType:     string(kafka.EventTypeOrderCreated),
		Payload:       payload,
	}
	if _, err := s.outbox.Enqueue(msg); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Error("enqueue order created event failed")
		return
	}
	if s.metrics != nil {
		s.metrics.RecordOutboxEvent()
	}
}

func (s *Service) recordFailure(reason string) {
	if s.metrics != nil {
		s.metrics.RecordOrderFailed(reason)
	}
}

func joinErrors(errs []error) string {
	builder := strings.Builder{}
	for i, err := range errs {
		builder.WriteString(err.Error())
		if i < len(errs)-1 {
			builder.WriteString("; ")
		}
	}
	return builder.String()
}
