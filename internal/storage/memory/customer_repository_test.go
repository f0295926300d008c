package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func TestCustomerRepository_FindByID(t *testing.T) {
	repo := memory.NewCustomerRepository(domain.Customer{ID: "customer-1", Name: "Test Customer"})

	customer, err := repo.FindByID(context.Background(), "customer-1")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if customer.Name != "Test Customer" {
		t.Fatalf("expected name Test Customer, got %s", customer.Name)
	}
}

func TestCustomerRepository_FindByID_NotFound(t *testing.T) {
	repo := memory.NewCustomerRepository()

	_, err := repo.FindByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}
