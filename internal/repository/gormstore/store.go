// Package gormstore implements the repository contracts on PostgreSQL via
// gorm. Every database call runs behind a bulkhead and a circuit breaker so
// a saturated or failing store rejects fast instead of piling up requests.
package gormstore

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dvillela/ecommerce-api/internal/patterns"
	"github.com/dvillela/ecommerce-api/internal/repository"
)

// Store owns the gorm connection and the guard wrapping every call.
type Store struct {
	db       *gorm.DB
	circuit  *patterns.CircuitBreakerWrapper
	bulkhead *patterns.Bulkhead
}

// Open connects to PostgreSQL, migrates the schema, and builds the store.
func Open(dsn string, bulkheadSize int) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&ProductModel{}, &OrderModel{}, &OrderItemModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("Database connected and migrated")
	return newStore(db, bulkheadSize), nil
}

// NewWithDB builds a store on an existing gorm connection. Used by tests.
func NewWithDB(db *gorm.DB, bulkheadSize int) *Store {
	return newStore(db, bulkheadSize)
}

func newStore(db *gorm.DB, bulkheadSize int) *Store {
	return &Store{
		db:       db,
		circuit:  patterns.NewCircuitBreaker("Database", "ecommerce-api"),
		bulkhead: patterns.NewBulkhead(bulkheadSize, "database", "ecommerce-api"),
	}
}

// Repositories returns the repository set bound to the store's connection.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Products:   &productRepository{store: s},
		Orders:     &orderRepository{store: s},
		OrderItems: &orderItemRepository{store: s},
	}
}

// Circuit exposes the database circuit breaker for diagnostics.
func (s *Store) Circuit() *patterns.CircuitBreakerWrapper {
	return s.circuit
}

// Bulkhead exposes the database bulkhead for diagnostics.
func (s *Store) Bulkhead() *patterns.Bulkhead {
	return s.bulkhead
}

// WithinTx runs fn with repositories bound to a single transaction. An error
// from fn rolls back every write made through those repositories.
func (s *Store) WithinTx(ctx context.Context, fn func(r repository.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txStore := &Store{db: tx, circuit: s.circuit, bulkhead: s.bulkhead}
		return fn(txStore.Repositories())
	})
}

// guard runs fn behind the bulkhead and circuit breaker. Not-found results
// must be translated before fn returns so they do not count as failures.
func (s *Store) guard(fn func() error) error {
	return s.bulkhead.Execute(func() error {
		_, err := s.circuit.Execute(func() (interface{}, error) {
			return nil, fn()
		})
		return patterns.FormatError("Database", err)
	})
}
