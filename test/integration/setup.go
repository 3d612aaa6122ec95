package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cardaloom/internal/database"
	"cardaloom/internal/model"
	"cardaloom/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool, and
// applies the application schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Apply schema
	if err := database.Migrate(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedTenant inserts an account plus a tenant keyed by taxID and returns the
// account id.
func SeedTenant(t *testing.T, pool *pgxpool.Pool, taxID string) uuid.UUID {
	t.Helper()

	ctx := context.Background()
	logger := zerolog.Nop()

	accountRepo := repository.NewAccountRepository(pool, logger)
	tenantRepo := repository.NewTenantRepository(pool, logger)

	tx, err := accountRepo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	account := &model.Account{
		ID:           uuid.New(),
		Email:        fmt.Sprintf("owner-%s@example.com", taxID),
		PasswordHash: "$2a$10$not.a.real.hash.but.long.enough.for.tests",
		DisplayName:  "Maria Souza",
		CreatedAt:    now,
	}
	if err := accountRepo.Create(ctx, tx, account); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	tenant := &model.Tenant{
		TaxID:     taxID,
		Name:      "Cantina da Maria",
		OwnerName: "Maria Souza",
		Email:     account.Email,
		Address:   "Rua das Flores, 123",
		WhatsApp:  "+55 11 98765-4321",
		AccountID: account.ID,
		Hours: model.Schedule{
			"monday": {Open: true, OpenTime: "18:00", CloseTime: "02:00"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tenantRepo.Create(ctx, tx, tenant); err != nil {
		t.Fatalf("failed to seed tenant: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit seed transaction: %v", err)
	}

	return account.ID
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"products", "images", "addons", "categories", "tenants", "accounts"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
