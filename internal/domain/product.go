package domain

import "time"

// Product представляет товар каталога.
type Product struct {
	ID string
	// Name — человекочитаемое название товара.
	Name string
	// Quantity — доступный остаток на складе, не может быть отрицательным.
	Quantity int32
	// PriceMinor — цена за единицу в минимальных денежных единицах (например, копейки).
	PriceMinor int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StockUpdate задаёт новое абсолютное значение остатка для товара.
// Значение вычисляется от снапшота, прочитанного в рамках той же
// инвокации workflow, а не от текущего состояния склада.
type StockUpdate struct {
	ProductID string
	Quantity  int32
}
