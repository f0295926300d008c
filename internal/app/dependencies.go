package app

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
)

// Dependencies содержит репозитории приложения и, при postgres-драйвере,
// подключение к базе.
type Dependencies struct {
	Customers domain.CustomerRepository
	Products  domain.ProductRepository
	Orders    domain.OrderRepository
	Outbox    domain.OutboxRepository

	Store  *postgres.Store
	Logger *log.Entry
}

// Close освобождает ресурсы хранилища.
func (d *Dependencies) Close() {
	if d == nil || d.Store == nil {
		return
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.WithError(err).Warn("failed to close postgres store")
	}
}

// initRuntimeDependencies собирает репозитории под выбранный драйвер.
// Memory-драйвер наполняется демо-данными для локальной разработки.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	switch cfg.StorageDriver {
	case StorageDriverMemory, "":
		now := time.Now().UTC()
		return &Dependencies{
			Customers: memory.NewCustomerRepository(demoCustomers(now)...),
			Products:  memory.NewProductRepository(demoProducts(now)...),
			Orders:    memory.NewOrderRepository(),
			Outbox:    memory.NewOutboxRepository(),
			Logger:    logger,
		}, nil
	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres driver requires STOREFRONT_POSTGRES_DSN")
		}

		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}

		if cfg.PostgresAutoMigrate {
			if err := store.MigrateUp(ctx, 0); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
			logger.Info("postgres migrations applied")
		}

		return &Dependencies{
			Customers: postgres.NewCustomerRepository(store),
			Products:  postgres.NewProductRepository(store),
			Orders:    postgres.NewOrderRepository(store),
			Outbox:    postgres.NewOutboxRepository(store),
			Store:     store,
			Logger:    logger,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}
}

func demoCustomers(now time.Time) []domain.Customer {
	return []domain.Customer{
		{ID: "demo-customer", Name: "Demo Customer", Email: "demo@example.com", CreatedAt: now},
	}
}

func demoProducts(now time.Time) []domain.Product {
	return []domain.Product{
		{ID: "demo-mug", Name: "Ceramic mug", Quantity: 100, PriceMinor: 900, CreatedAt: now},
		{ID: "demo-shirt", Name: "T-shirt", Quantity: 50, PriceMinor: 1900, CreatedAt: now},
		{ID: "demo-poster", Name: "Poster", Quantity: 25, PriceMinor: 1200, CreatedAt: now},
	}
}
