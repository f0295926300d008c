package domain

import "time"

// Customer представляет покупателя магазина. Покупатели создаются
// внешней подсистемой; workflow оформления заказа только проверяет
// факт существования по идентификатору.
type Customer struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}
