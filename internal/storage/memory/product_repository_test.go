package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

func newProducts() []domain.Product {
	return []domain.Product{
		{ID: "product-1", Name: "Keyboard", Quantity: 10, PriceMinor: 500},
		{ID: "product-2", Name: "Mouse", Quantity: 4, PriceMinor: 250},
	}
}

func TestProductRepository_FindAllByID(t *testing.T) {
	repo := memory.NewProductRepository(newProducts()...)

	products, err := repo.FindAllByID(context.Background(), []string{"product-1", "product-2"})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
}

func TestProductRepository_FindAllByID_SkipsMissing(t *testing.T) {
	repo := memory.NewProductRepository(newProducts()...)

	products, err := repo.FindAllByID(context.Background(), []string{"product-1", "missing"})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	if products[0].ID != "product-1" {
		t.Fatalf("expected product-1, got %s", products[0].ID)
	}
}

func TestProductRepository_FindAllByID_CollapsesDuplicates(t *testing.T) {
	repo := memory.NewProductRepository(newProducts()...)

	products, err := repo.FindAllByID(context.Background(), []string{"product-1", "product-1"})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected duplicates collapsed to 1 product, got %d", len(products))
	}
}

func TestProductRepository_UpdateQuantities(t *testing.T) {
	repo := memory.NewProductRepository(newProducts()...)

	err := repo.UpdateQuantities(context.Background(), []domain.StockUpdate{
		{ProductID: "product-1", Quantity: 7},
		{ProductID: "product-2", Quantity: 0},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	products, err := repo.FindAllByID(context.Background(), []string{"product-1", "product-2"})
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	for _, product := range products {
		switch product.ID {
		case "product-1":
			if product.Quantity != 7 {
				t.Fatalf("expected quantity 7, got %d", product.Quantity)
			}
		case "product-2":
			if product.Quantity != 0 {
				t.Fatalf("expected quantity 0, got %d", product.Quantity)
			}
		}
	}
}

func TestProductRepository_UpdateQuantities_UnknownProduct(t *testing.T) {
	repo := memory.NewProductRepository(newProducts()...)

	err := repo.UpdateQuantities(context.Background(), []domain.StockUpdate{
		{ProductID: "product-1", Quantity: 7},
		{ProductID: "missing", Quantity: 1},
	})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	// Батч не должен быть применён частично.
	products, findErr := repo.FindAllByID(context.Background(), []string{"product-1"})
	if findErr != nil {
		t.Fatalf("find failed: %v", findErr)
	}
	if products[0].Quantity != 10 {
		t.Fatalf("expected quantity 10 untouched, got %d", products[0].Quantity)
	}
}
