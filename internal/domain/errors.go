package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrCustomerNotFound возвращается, если покупатель не найден по идентификатору.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProductsRequired — ошибка отсутствующего (не переданного) списка товаров.
	ErrProductsRequired = errors.New("the products list is required")
	// ErrProductNotFound возвращается, если хотя бы один запрошенный товар не существует.
	ErrProductNotFound = errors.New("product not found")
	// ErrQuantityInvalid — ошибка нулевого или отрицательного запрошенного количества.
	ErrQuantityInvalid = errors.New("requested quantity must be greater than zero")
	// Ошибка отсутствующего идентификатора покупателя.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка отрицательной суммы заказа.
	ErrAmountNegative = errors.New("amount_minor must be non-negative")
	// Ошибка отсутствующего товара в позиции заказа.
	ErrItemProductRequired = errors.New("item product_id is required")
	// Ошибка при некорректном количестве в позиции (<= 0).
	ErrItemQuantityInvalid = errors.New("item quantity must be greater than zero")
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// Ошибка несоответствия суммы заказа и сумм позиций.
	ErrAmountMismatch = errors.New("order amount does not match items sum")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderAlreadyExists сигнализирует о повторном создании заказа с тем же ID.
	ErrOrderAlreadyExists = errors.New("order already exists")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// InsufficientStockError возвращается, когда запрошенное количество
// превышает доступный остаток товара.
type InsufficientStockError struct {
	ProductID string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("product (%s) amount insufficient to provide the amount requested", e.ProductID)
}

// IsInsufficientStock проверяет, является ли ошибка нехваткой остатка.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}

// ProductNotFound оборачивает ErrProductNotFound идентификатором товара,
// когда он известен (item-level проверки workflow).
func ProductNotFound(productID string) error {
	return fmt.Errorf("product (%s): %w", productID, ErrProductNotFound)
}
