package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		CustomerID:  "customer-1",
		AmountMinor: 1500,
		Items: []domain.OrderItem{
			{ProductID: "product-1", Quantity: 3, PriceMinor: 500, CreatedAt: now},
		},
		CreatedAt: now,
	}
}

func TestOrderRepository_CreateAssignsIdentifiers(t *testing.T) {
	repo := memory.NewOrderRepository()

	persisted, err := repo.Create(context.Background(), newOrder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if persisted.ID == "" {
		t.Fatal("expected generated order id")
	}
	if len(persisted.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(persisted.Items))
	}
	if persisted.Items[0].ID == "" {
		t.Fatal("expected generated item id")
	}
}

func TestOrderRepository_CreateGet(t *testing.T) {
	repo := memory.NewOrderRepository()

	persisted, err := repo.Create(context.Background(), newOrder())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stored, err := repo.Get(context.Background(), persisted.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.CustomerID != "customer-1" {
		t.Fatalf("expected customer-1, got %s", stored.CustomerID)
	}
	if stored.Items[0].PriceMinor != 500 {
		t.Fatalf("expected price 500, got %d", stored.Items[0].PriceMinor)
	}
}

func TestOrderRepository_Get_NotFound(t *testing.T) {
	repo := memory.NewOrderRepository()

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_CreateDuplicateID(t *testing.T) {
	repo := memory.NewOrderRepository()

	order := newOrder()
	order.ID = "order-fixed"
	if _, err := repo.Create(context.Background(), order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := repo.Create(context.Background(), order)
	if !errors.Is(err, domain.ErrOrderAlreadyExists) {
		t.Fatalf("expected ErrOrderAlreadyExists, got %v", err)
	}
}

func TestOrderRepository_ListByCustomer(t *testing.T) {
	repo := memory.NewOrderRepository()

	for i := 0; i < 3; i++ {
		if _, err := repo.Create(context.Background(), newOrder()); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	orders, err := repo.ListByCustomer(context.Background(), "customer-1", 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected limit 2 orders, got %d", len(orders))
	}

	orders, err = repo.ListByCustomer(context.Background(), "other-customer", 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected 0 orders for other customer, got %d", len(orders))
	}
}
