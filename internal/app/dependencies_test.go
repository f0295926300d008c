package app

import (
	"context"
	"strings"
	"testing"
)

func TestInitRuntimeDependencies_Memory(t *testing.T) {
	cfg := DefaultConfig()

	deps, err := initRuntimeDependencies(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("init memory dependencies: %v", err)
	}
	defer deps.Close()

	if deps.Customers == nil || deps.Products == nil || deps.Orders == nil || deps.Outbox == nil {
		t.Fatal("expected all repositories to be initialized")
	}
	if deps.Store != nil {
		t.Fatal("memory driver must not open postgres store")
	}

	// Демо-данные должны позволять оформить заказ сразу после запуска.
	customer, err := deps.Customers.FindByID(context.Background(), "demo-customer")
	if err != nil {
		t.Fatalf("find demo customer: %v", err)
	}
	if customer.Email == "" {
		t.Fatal("expected seeded demo customer email")
	}

	products, err := deps.Products.FindAllByID(context.Background(), []string{"demo-mug", "demo-shirt"})
	if err != nil {
		t.Fatalf("find demo products: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 demo products, got %d", len(products))
	}
	for _, product := range products {
		if product.Quantity <= 0 {
			t.Fatalf("expected positive demo stock for %s", product.ID)
		}
	}
}

func TestInitRuntimeDependencies_PostgresRequiresDSN(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriverPostgres
	cfg.PostgresDSN = ""

	_, err := initRuntimeDependencies(context.Background(), cfg, nil)
	if err == nil {
		t.Fatal("expected error for postgres driver without DSN")
	}
	if !strings.Contains(err.Error(), "STOREFRONT_POSTGRES_DSN") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInitRuntimeDependencies_UnsupportedDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StorageDriver = StorageDriver("cassandra")

	_, err := initRuntimeDependencies(context.Background(), cfg, nil)
	if err == nil {
		t.Fatal("expected error for unsupported storage driver")
	}
}
