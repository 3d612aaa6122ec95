package service

import (
	"context"
	"fmt"

	"cardaloom/internal/billing"
	"cardaloom/internal/model"
	"cardaloom/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// billingService implements BillingService.
type billingService struct {
	tenantRepo repository.TenantRepository
	gateway    billing.Gateway
	logger     zerolog.Logger
}

// NewBillingService creates a new billing service.
func NewBillingService(
	tenantRepo repository.TenantRepository,
	gateway billing.Gateway,
	logger zerolog.Logger,
) BillingService {
	return &billingService{
		tenantRepo: tenantRepo,
		gateway:    gateway,
		logger:     logger.With().Str("service", "billing").Logger(),
	}
}

// StartSession ensures a provider customer exists, then opens a portal
// session for active subscribers or a checkout session otherwise. The
// customer reference is persisted before any session is created so a crash
// between the two steps never orphans a provider customer.
func (s *billingService) StartSession(ctx context.Context, accountID uuid.UUID, priceID string) (*billing.Session, error) {
	tenant, err := s.getTenant(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if tenant.BillingCustomerID == "" {
		customerID, err := s.gateway.CreateCustomer(ctx, tenant.Email, tenant.Name, tenant.TaxID)
		if err != nil {
			return nil, err
		}
		if err := s.tenantRepo.SetBillingCustomer(ctx, tenant.TaxID, customerID); err != nil {
			return nil, fmt.Errorf("failed to persist billing customer: %w", err)
		}
		tenant.BillingCustomerID = customerID
	}

	if tenant.Subscription.Active() {
		s.logger.Info().Str("tax_id", tenant.TaxID).Msg("opening billing portal session")
		return s.gateway.CreatePortalSession(ctx, tenant.BillingCustomerID)
	}

	if priceID == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "price id is required to start a checkout")
	}

	s.logger.Info().Str("tax_id", tenant.TaxID).Str("price_id", priceID).Msg("opening checkout session")
	return s.gateway.CreateCheckoutSession(ctx, tenant.BillingCustomerID, priceID, tenant.TaxID)
}

// HandleWebhook verifies and applies one webhook delivery.
func (s *billingService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := s.gateway.VerifyEvent(payload, signatureHeader)
	if err != nil {
		return err
	}

	switch event.Type {
	case billing.EventCheckoutCompleted:
		return s.applyCheckoutCompleted(ctx, event)
	case billing.EventSubscriptionCreated, billing.EventSubscriptionUpdated, billing.EventSubscriptionDeleted:
		return s.applySubscriptionEvent(ctx, event)
	default:
		s.logger.Debug().Str("event_type", event.Type).Msg("ignoring webhook event")
		return nil
	}
}

// applyCheckoutCompleted binds the customer reference and pulls the fresh
// subscription created by the checkout. Non-subscription checkouts are
// ignored.
func (s *billingService) applyCheckoutCompleted(ctx context.Context, event *billing.Event) error {
	if !event.SubscriptionCheckout {
		s.logger.Debug().Str("event_id", event.ID).Msg("ignoring non-subscription checkout")
		return nil
	}

	tenant, err := s.resolveTenant(ctx, event)
	if err != nil || tenant == nil {
		return err
	}

	if event.CustomerID != "" && tenant.BillingCustomerID != event.CustomerID {
		if err := s.tenantRepo.SetBillingCustomer(ctx, tenant.TaxID, event.CustomerID); err != nil {
			return fmt.Errorf("failed to persist billing customer: %w", err)
		}
	}

	if event.SubscriptionID == "" {
		return nil
	}

	sub, err := s.gateway.GetSubscription(ctx, event.SubscriptionID)
	if err != nil {
		return err
	}

	return s.overwriteSubscription(ctx, tenant, sub, event.Created)
}

// applySubscriptionEvent overwrites the stored snapshot wholesale, unless
// the delivery is older than the one already applied.
func (s *billingService) applySubscriptionEvent(ctx context.Context, event *billing.Event) error {
	tenant, err := s.resolveTenant(ctx, event)
	if err != nil || tenant == nil {
		return err
	}

	if tenant.Subscription != nil && event.Created < tenant.Subscription.EventCreated {
		s.logger.Info().
			Str("event_id", event.ID).
			Int64("event_created", event.Created).
			Int64("applied_created", tenant.Subscription.EventCreated).
			Msg("dropping stale webhook delivery")
		return nil
	}

	return s.overwriteSubscription(ctx, tenant, event.Subscription, event.Created)
}

// resolveTenant matches an event to a tenant: first by the tax id tagged in
// metadata, then by the stored customer reference. Unmatched events are
// logged and dropped; returning an error would only make the provider retry
// a delivery that can never succeed.
func (s *billingService) resolveTenant(ctx context.Context, event *billing.Event) (*model.Tenant, error) {
	if event.TenantTaxID != "" {
		tenant, err := s.tenantRepo.GetByTaxID(ctx, model.NormalizeTaxID(event.TenantTaxID))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tenant: %w", err)
		}
		if tenant != nil {
			return tenant, nil
		}
	}

	if event.CustomerID != "" {
		tenant, err := s.tenantRepo.GetByBillingCustomerID(ctx, event.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tenant: %w", err)
		}
		if tenant != nil {
			return tenant, nil
		}
	}

	s.logger.Warn().
		Str("event_id", event.ID).
		Str("event_type", event.Type).
		Str("customer_id", event.CustomerID).
		Msg("webhook event matches no tenant, dropping")
	return nil, nil
}

// Resync pulls the provider's current subscription state. The newest
// subscription wins; active or trialing ones take precedence over everything
// else. With no subscriptions at all, the local inactive sentinel is written.
func (s *billingService) Resync(ctx context.Context, accountID uuid.UUID) (*model.Tenant, error) {
	tenant, err := s.getTenant(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if tenant.BillingCustomerID == "" {
		return nil, model.ErrNoSubscription
	}

	subs, err := s.gateway.ListSubscriptions(ctx, tenant.BillingCustomerID)
	if err != nil {
		return nil, err
	}

	if len(subs) == 0 {
		sentinel := &model.Subscription{
			CustomerID: tenant.BillingCustomerID,
			Status:     model.StatusInactive,
		}
		if err := s.tenantRepo.UpdateSubscription(ctx, tenant.TaxID, sentinel); err != nil {
			return nil, fmt.Errorf("failed to store subscription: %w", err)
		}
		tenant.Subscription = sentinel
		s.logger.Info().Str("tax_id", tenant.TaxID).Msg("resync found no subscriptions")
		return tenant, nil
	}

	chosen := subs[0]
	for _, sub := range subs {
		if sub.Status == model.StatusActive || sub.Status == model.StatusTrialing {
			chosen = sub
			break
		}
	}

	var eventCreated int64
	if tenant.Subscription != nil {
		eventCreated = tenant.Subscription.EventCreated
	}
	if err := s.overwriteSubscription(ctx, tenant, &chosen, eventCreated); err != nil {
		return nil, err
	}
	return tenant, nil
}

// SetCancelAtPeriodEnd toggles end-of-period cancellation.
func (s *billingService) SetCancelAtPeriodEnd(ctx context.Context, accountID uuid.UUID, cancel bool) (*model.Tenant, error) {
	tenant, err := s.getTenant(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if tenant.Subscription == nil || tenant.Subscription.SubscriptionID == "" {
		return nil, model.ErrNoSubscription
	}

	sub, err := s.gateway.SetCancelAtPeriodEnd(ctx, tenant.Subscription.SubscriptionID, cancel)
	if err != nil {
		return nil, err
	}

	if err := s.overwriteSubscription(ctx, tenant, sub, tenant.Subscription.EventCreated); err != nil {
		return nil, err
	}

	s.logger.Info().Str("tax_id", tenant.TaxID).Bool("cancel", cancel).Msg("cancel-at-period-end updated")
	return tenant, nil
}

// ListInvoices lists the tenant's provider invoices.
func (s *billingService) ListInvoices(ctx context.Context, accountID uuid.UUID) ([]billing.Invoice, error) {
	tenant, err := s.getTenant(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if tenant.BillingCustomerID == "" {
		return nil, model.ErrNoSubscription
	}

	invoices, err := s.gateway.ListInvoices(ctx, tenant.BillingCustomerID)
	if err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = []billing.Invoice{}
	}
	return invoices, nil
}

// overwriteSubscription replaces the stored snapshot and mirrors it on the
// in-memory tenant.
func (s *billingService) overwriteSubscription(ctx context.Context, tenant *model.Tenant, sub *billing.Subscription, eventCreated int64) error {
	snapshot := &model.Subscription{
		SubscriptionID:    sub.ID,
		CustomerID:        sub.CustomerID,
		PriceID:           sub.PriceID,
		CurrentPeriodEnd:  sub.CurrentPeriodEnd,
		Status:            sub.Status,
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
		EventCreated:      eventCreated,
	}
	if snapshot.CustomerID == "" {
		snapshot.CustomerID = tenant.BillingCustomerID
	}

	if err := s.tenantRepo.UpdateSubscription(ctx, tenant.TaxID, snapshot); err != nil {
		return fmt.Errorf("failed to store subscription: %w", err)
	}

	tenant.Subscription = snapshot
	s.logger.Info().
		Str("tax_id", tenant.TaxID).
		Str("subscription_id", snapshot.SubscriptionID).
		Str("status", snapshot.Status).
		Msg("subscription snapshot updated")
	return nil
}

// getTenant loads the tenant owned by the account.
func (s *billingService) getTenant(ctx context.Context, accountID uuid.UUID) (*model.Tenant, error) {
	tenant, err := s.tenantRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	if tenant == nil {
		return nil, model.ErrTenantNotFound
	}
	return tenant, nil
}
