package domain

import (
	"context"
	"time"
)

// CustomerRepository описывает доступ к справочнику покупателей.
type CustomerRepository interface {
	// FindByID возвращает покупателя или ErrCustomerNotFound, если его нет.
	FindByID(ctx context.Context, id string) (Customer, error)
}

// ProductRepository описывает доступ к каталогу товаров и обновление остатков.
type ProductRepository interface {
	// FindAllByID возвращает только существующее подмножество запрошенных
	// товаров; отсутствующие идентификаторы и дубликаты молча схлопываются,
	// обнаруживать короткий список — обязанность вызывающего.
	FindAllByID(ctx context.Context, ids []string) ([]Product, error)
	// UpdateQuantities перезаписывает остатки переданных товаров
	// абсолютными значениями одним батчем.
	UpdateQuantities(ctx context.Context, updates []StockUpdate) error
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет заказ вместе со всеми позициями атомарно и
	// возвращает сохранённый заказ, включая сгенерированные идентификаторы.
	Create(ctx context.Context, order Order) (Order, error)
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(ctx context.Context, id string) (Order, error)
	// ListByCustomer возвращает заказы покупателя с опциональным ограничением на количество.
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]Order, error)
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(event OutboxMessage) error
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(msg OutboxMessage) (OutboxMessage, error)
	PullPending(limit int) ([]OutboxMessage, error)
	Stats() (OutboxStats, error)
	MarkSent(id string) error
	MarkFailed(id string) error
}

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}
