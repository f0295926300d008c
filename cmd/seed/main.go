package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
)

const defaultTimeout = 30 * time.Second

type seedCustomer struct {
	id    string
	name  string
	email string
}

type seedProduct struct {
	id         string
	name       string
	quantity   int32
	priceMinor int64
}

var seedCustomers = []seedCustomer{
	{"demo-customer", "Demo Customer", "demo@example.com"},
	{"demo-customer-2", "Second Customer", "second@example.com"},
}

var seedProducts = []seedProduct{
	{"demo-mug", "Ceramic mug", 100, 900},
	{"demo-shirt", "T-shirt", 50, 1900},
	{"demo-poster", "Poster", 25, 1200},
}

// seed наполняет базу демо-покупателями и товарами. Повторный запуск
// безопасен: существующие строки не перезаписываются.
func main() {
	var dsn string
	flag.StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: STOREFRONT_POSTGRES_DSN)")
	flag.Parse()

	if strings.TrimSpace(dsn) == "" {
		dsn = strings.TrimSpace(os.Getenv("STOREFRONT_POSTGRES_DSN"))
	}
	if dsn == "" {
		fail("STOREFRONT_POSTGRES_DSN (or -dsn) is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		fail("open postgres store: %v", err)
	}
	defer store.Close()

	if err := store.MigrateUp(ctx, 0); err != nil {
		fail("apply migrations: %v", err)
	}

	db := store.DB()
	now := time.Now().UTC()

	for _, customer := range seedCustomers {
		if _, err := db.ExecContext(ctx, `
			INSERT INTO customers (id, name, email, created_at)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (id) DO NOTHING
		`, customer.id, customer.name, customer.email, now); err != nil {
			fail("seed customer %s: %v", customer.id, err)
		}
	}

	for _, product := range seedProducts {
		if _, err := db.ExecContext(ctx, `
			INSERT INTO products (id, name, quantity, price_minor, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6)
			ON CONFLICT (id) DO NOTHING
		`, product.id, product.name, product.quantity, product.priceMinor, now, now); err != nil {
			fail("seed product %s: %v", product.id, err)
		}
	}

	fmt.Printf("seed ok: customers=%d products=%d\n", len(seedCustomers), len(seedProducts))
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
