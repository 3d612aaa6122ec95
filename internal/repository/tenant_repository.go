package repository

import (
	"context"
	"errors"
	"fmt"

	"cardaloom/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// tenantColumns is the select list shared by every tenant lookup.
const tenantColumns = `
	tax_id, name, owner_name, email, address, whatsapp, account_id,
	billing_customer_id, hours, subscription_id, price_id, current_period_end,
	subscription_status, cancel_at_period_end, event_created,
	created_at, updated_at
`

// tenantRepository implements the TenantRepository interface using PostgreSQL.
type tenantRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewTenantRepository creates a new PostgreSQL-backed tenant repository.
func NewTenantRepository(pool *pgxpool.Pool, logger zerolog.Logger) TenantRepository {
	return &tenantRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "tenant").Logger(),
	}
}

// Create inserts a new tenant within the provided transaction.
func (r *tenantRepository) Create(ctx context.Context, tx pgx.Tx, tenant *model.Tenant) error {
	query := `
		INSERT INTO tenants (tax_id, name, owner_name, email, address, whatsapp, account_id, hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := tx.Exec(ctx, query,
		tenant.TaxID,
		tenant.Name,
		tenant.OwnerName,
		tenant.Email,
		tenant.Address,
		tenant.WhatsApp,
		tenant.AccountID,
		tenant.Hours,
		tenant.CreatedAt,
		tenant.UpdatedAt,
	)
	if err != nil {
		// Concurrent signups can both pass the existence check; the loser's
		// primary-key violation is still a conflict, not a server error.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Warn().Str("tax_id", tenant.TaxID).Msg("tax id already registered")
			return model.ErrTaxIDTaken
		}
		r.logger.Error().Err(err).Str("tax_id", tenant.TaxID).Msg("failed to insert tenant")
		return fmt.Errorf("failed to insert tenant: %w", err)
	}

	return nil
}

// GetByTaxID retrieves a tenant by its normalized tax identifier.
func (r *tenantRepository) GetByTaxID(ctx context.Context, taxID string) (*model.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE tax_id = $1`
	return r.getOne(ctx, query, taxID)
}

// GetByAccountID retrieves the tenant owned by the given account.
func (r *tenantRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) (*model.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE account_id = $1`
	return r.getOne(ctx, query, accountID)
}

// GetByBillingCustomerID retrieves the tenant bound to a billing customer.
func (r *tenantRepository) GetByBillingCustomerID(ctx context.Context, customerID string) (*model.Tenant, error) {
	if customerID == "" {
		return nil, nil
	}
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE billing_customer_id = $1`
	return r.getOne(ctx, query, customerID)
}

// Update persists the tenant's profile fields and operating hours.
func (r *tenantRepository) Update(ctx context.Context, tenant *model.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $2, owner_name = $3, address = $4, whatsapp = $5, hours = $6,
		    updated_at = CURRENT_TIMESTAMP
		WHERE tax_id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		tenant.TaxID,
		tenant.Name,
		tenant.OwnerName,
		tenant.Address,
		tenant.WhatsApp,
		tenant.Hours,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("tax_id", tenant.TaxID).Msg("failed to update tenant")
		return fmt.Errorf("failed to update tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTenantNotFound
	}

	return nil
}

// SetBillingCustomer records the billing provider customer reference.
func (r *tenantRepository) SetBillingCustomer(ctx context.Context, taxID, customerID string) error {
	query := `
		UPDATE tenants
		SET billing_customer_id = $2, updated_at = CURRENT_TIMESTAMP
		WHERE tax_id = $1
	`

	tag, err := r.pool.Exec(ctx, query, taxID, customerID)
	if err != nil {
		r.logger.Error().Err(err).Str("tax_id", taxID).Msg("failed to set billing customer")
		return fmt.Errorf("failed to set billing customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTenantNotFound
	}

	return nil
}

// UpdateSubscription overwrites the tenant's subscription snapshot. A nil
// subscription clears every subscription column.
func (r *tenantRepository) UpdateSubscription(ctx context.Context, taxID string, sub *model.Subscription) error {
	query := `
		UPDATE tenants
		SET subscription_id = $2, price_id = $3, current_period_end = $4,
		    subscription_status = $5, cancel_at_period_end = $6, event_created = $7,
		    billing_customer_id = CASE WHEN $8 = '' THEN billing_customer_id ELSE $8 END,
		    updated_at = CURRENT_TIMESTAMP
		WHERE tax_id = $1
	`

	var (
		subscriptionID, priceID, status *string
		periodEnd, eventCreated         *int64
		cancelAtPeriodEnd               *bool
		customerID                      string
	)
	if sub != nil {
		subscriptionID = &sub.SubscriptionID
		priceID = &sub.PriceID
		status = &sub.Status
		periodEnd = &sub.CurrentPeriodEnd
		eventCreated = &sub.EventCreated
		cancelAtPeriodEnd = &sub.CancelAtPeriodEnd
		customerID = sub.CustomerID
	}

	tag, err := r.pool.Exec(ctx, query, taxID,
		subscriptionID, priceID, periodEnd, status, cancelAtPeriodEnd, eventCreated, customerID)
	if err != nil {
		r.logger.Error().Err(err).Str("tax_id", taxID).Msg("failed to update subscription")
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTenantNotFound
	}

	return nil
}

// getOne runs a single-row tenant query, mapping no-rows to nil.
func (r *tenantRepository) getOne(ctx context.Context, query string, arg any) (*model.Tenant, error) {
	var (
		t                               model.Tenant
		subscriptionID, priceID, status *string
		periodEnd, eventCreated         *int64
		cancelAtPeriodEnd               *bool
	)

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&t.TaxID, &t.Name, &t.OwnerName, &t.Email, &t.Address, &t.WhatsApp,
		&t.AccountID, &t.BillingCustomerID, &t.Hours,
		&subscriptionID, &priceID, &periodEnd, &status, &cancelAtPeriodEnd, &eventCreated,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Msg("tenant not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query tenant")
		return nil, fmt.Errorf("failed to query tenant: %w", err)
	}

	if subscriptionID != nil {
		t.Subscription = &model.Subscription{
			SubscriptionID: *subscriptionID,
			CustomerID:     t.BillingCustomerID,
		}
		if priceID != nil {
			t.Subscription.PriceID = *priceID
		}
		if periodEnd != nil {
			t.Subscription.CurrentPeriodEnd = *periodEnd
		}
		if status != nil {
			t.Subscription.Status = *status
		}
		if cancelAtPeriodEnd != nil {
			t.Subscription.CancelAtPeriodEnd = *cancelAtPeriodEnd
		}
		if eventCreated != nil {
			t.Subscription.EventCreated = *eventCreated
		}
	}

	return &t, nil
}
