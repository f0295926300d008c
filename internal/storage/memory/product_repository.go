package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory каталог товаров,
// заполненный переданными записями. Для локальной разработки и тестов.
func NewProductRepository(seed ...domain.Product) domain.ProductRepository {
	items := make(map[string]domain.Product, len(seed))
	for _, product := range seed {
		items[product.ID] = product
	}
	return &productRepositoryInMemory{items: items}
}

// FindAllByID возвращает существующее подмножество запрошенных товаров.
// Повторяющиеся идентификаторы схлопываются в одну запись.
func (r *productRepositoryInMemory) FindAllByID(_ context.Context, ids []string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{}, len(ids))
	result := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		product, ok := r.items[id]
		if !ok {
			continue
		}
		result = append(result, product)
	}

	return result, nil
}

// UpdateQuantities перезаписывает остатки абсолютными значениями.
func (r *productRepositoryInMemory) UpdateQuantities(_ context.Context, updates []domain.StockUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Сначала проверяем весь батч, чтобы не оставить его применённым частично.
	for _, update := range updates {
		if _, ok := r.items[update.ProductID]; !ok {
			return domain.ProductNotFound(update.ProductID)
		}
	}

	now := time.Now().UTC()
	for _, update := range updates {
		product := r.items[update.ProductID]
		product.Quantity = update.Quantity
		product.UpdatedAt = now
		r.items[update.ProductID] = product
	}

	return nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
