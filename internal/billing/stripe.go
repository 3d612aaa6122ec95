package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cardaloom/internal/config"
	"cardaloom/internal/model"

	"github.com/rs/zerolog"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"
)

// metadataTaxID is the metadata key carrying the tenant tax id on provider
// customers, checkout sessions, and subscriptions. The webhook reconciler
// reads it back to resolve events to tenants.
const metadataTaxID = "tax_id"

// StripeGateway implements Gateway against the Stripe API.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
	successURL    string
	cancelURL     string
	portalReturn  string
	logger        zerolog.Logger
}

// NewStripeGateway creates a Stripe-backed billing gateway.
func NewStripeGateway(cfg config.BillingConfig, logger zerolog.Logger) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)

	return &StripeGateway{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
		portalReturn:  cfg.PortalReturn,
		logger:        logger.With().Str("gateway", "stripe").Logger(),
	}
}

// VerifyEvent verifies the webhook signature and decodes the event payload.
// The signature is checked before anything is parsed; on mismatch no event
// content is inspected at all.
func (g *StripeGateway) VerifyEvent(payload []byte, signatureHeader string) (*Event, error) {
	stripeEvent, err := webhook.ConstructEvent(payload, signatureHeader, g.webhookSecret)
	if err != nil {
		g.logger.Warn().Err(err).Msg("webhook signature verification failed")
		return nil, model.ErrInvalidSignature
	}

	event := &Event{
		ID:      stripeEvent.ID,
		Type:    string(stripeEvent.Type),
		Created: stripeEvent.Created,
	}

	switch event.Type {
	case EventCheckoutCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(stripeEvent.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("failed to decode checkout session: %w", err)
		}
		event.TenantTaxID = session.Metadata[metadataTaxID]
		event.SubscriptionCheckout = session.Mode == stripe.CheckoutSessionModeSubscription
		if session.Customer != nil {
			event.CustomerID = session.Customer.ID
		}
		if session.Subscription != nil {
			event.SubscriptionID = session.Subscription.ID
		}

	case EventSubscriptionCreated, EventSubscriptionUpdated, EventSubscriptionDeleted:
		var sub stripe.Subscription
		if err := json.Unmarshal(stripeEvent.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("failed to decode subscription: %w", err)
		}
		event.TenantTaxID = sub.Metadata[metadataTaxID]
		event.Subscription = normalizeSubscription(&sub)
		event.SubscriptionID = event.Subscription.ID
		event.CustomerID = event.Subscription.CustomerID
	}

	return event, nil
}

// CreateCustomer creates a provider customer tagged with the tenant tax id.
func (g *StripeGateway) CreateCustomer(ctx context.Context, email, name, taxID string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx
	params.AddMetadata(metadataTaxID, taxID)

	customer, err := g.api.Customers.New(params)
	if err != nil {
		return "", providerError(err)
	}

	g.logger.Info().Str("customer_id", customer.ID).Str("tax_id", taxID).Msg("billing customer created")
	return customer.ID, nil
}

// CreateCheckoutSession starts a subscription-mode checkout bound to the
// customer. The tax id is tagged on both the session and the subscription it
// creates so later webhook events resolve without a customer scan.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, customerID, priceID, taxID string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer: stripe.String(customerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{metadataTaxID: taxID},
		},
	}
	params.Context = ctx
	params.AddMetadata(metadataTaxID, taxID)

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, providerError(err)
	}

	return &Session{URL: session.URL, Kind: SessionKindCheckout}, nil
}

// CreatePortalSession starts a self-service billing portal session.
func (g *StripeGateway) CreatePortalSession(ctx context.Context, customerID string) (*Session, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(g.portalReturn),
	}
	params.Context = ctx

	session, err := g.api.BillingPortalSessions.New(params)
	if err != nil {
		return nil, providerError(err)
	}

	return &Session{URL: session.URL, Kind: SessionKindPortal}, nil
}

// GetSubscription fetches one subscription by reference.
func (g *StripeGateway) GetSubscription(ctx context.Context, id string) (*Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx

	sub, err := g.api.Subscriptions.Get(id, params)
	if err != nil {
		return nil, providerError(err)
	}
	return normalizeSubscription(sub), nil
}

// ListSubscriptions lists all subscriptions of a customer, any status.
func (g *StripeGateway) ListSubscriptions(ctx context.Context, customerID string) ([]Subscription, error) {
	params := &stripe.SubscriptionListParams{
		Customer: stripe.String(customerID),
		Status:   stripe.String("all"),
	}
	params.Context = ctx

	var subs []Subscription
	iter := g.api.Subscriptions.List(params)
	for iter.Next() {
		subs = append(subs, *normalizeSubscription(iter.Subscription()))
	}
	if err := iter.Err(); err != nil {
		return nil, providerError(err)
	}
	return subs, nil
}

// SetCancelAtPeriodEnd flips the cancel-at-period-end flag.
func (g *StripeGateway) SetCancelAtPeriodEnd(ctx context.Context, subscriptionID string, cancel bool) (*Subscription, error) {
	params := &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(cancel),
	}
	params.Context = ctx

	sub, err := g.api.Subscriptions.Update(subscriptionID, params)
	if err != nil {
		return nil, providerError(err)
	}
	return normalizeSubscription(sub), nil
}

// ListInvoices lists the customer's invoices, newest first.
func (g *StripeGateway) ListInvoices(ctx context.Context, customerID string) ([]Invoice, error) {
	params := &stripe.InvoiceListParams{
		Customer: stripe.String(customerID),
	}
	params.Context = ctx

	var invoices []Invoice
	iter := g.api.Invoices.List(params)
	for iter.Next() {
		inv := iter.Invoice()
		invoices = append(invoices, Invoice{
			ID:              inv.ID,
			Number:          inv.Number,
			Status:          string(inv.Status),
			AmountDueCents:  inv.AmountDue,
			AmountPaidCents: inv.AmountPaid,
			Currency:        string(inv.Currency),
			Created:         inv.Created,
			HostedURL:       inv.HostedInvoiceURL,
			PDFURL:          inv.InvoicePDF,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, providerError(err)
	}
	return invoices, nil
}

// normalizeSubscription reduces a provider subscription to the persisted
// fields. The price reference and period end come from the first line item.
func normalizeSubscription(sub *stripe.Subscription) *Subscription {
	out := &Subscription{
		ID:                sub.ID,
		Status:            string(sub.Status),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd,
	}
	if sub.Customer != nil {
		out.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 {
		item := sub.Items.Data[0]
		if item.Price != nil {
			out.PriceID = item.Price.ID
		}
		out.CurrentPeriodEnd = item.CurrentPeriodEnd
	}
	return out
}

// providerError maps a provider API failure to an upstream domain error so
// handlers answer 502 with the provider's own message when there is one.
func providerError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return model.NewDomainError(model.ErrCodeUpstream, stripeErr.Msg)
	}
	return model.NewDomainError(model.ErrCodeUpstream, fmt.Sprintf("billing provider request failed: %v", err))
}
