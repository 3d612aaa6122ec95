// Package billing bridges tenants to the hosted billing provider: customer
// records, checkout and self-service portal sessions, subscription lookups,
// and webhook event verification.
package billing

import "context"

// Event kinds the reconciler acts on. Everything else is acknowledged and
// ignored.
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionCreated = "customer.subscription.created"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

// Session kinds returned by the initiator.
const (
	SessionKindCheckout = "checkout"
	SessionKindPortal   = "portal"
)

// Subscription is the provider subscription normalized to the fields this
// system persists.
type Subscription struct {
	ID                string `json:"id"`
	CustomerID        string `json:"customerId"`
	PriceID           string `json:"priceId"`
	CurrentPeriodEnd  int64  `json:"currentPeriodEnd"`
	Status            string `json:"status"`
	CancelAtPeriodEnd bool   `json:"cancelAtPeriodEnd"`
}

// Event is a verified webhook event reduced to what tenant resolution and
// reconciliation need. Subscription is populated for subscription.* events;
// checkout events carry only the subscription reference, which must be
// fetched separately.
type Event struct {
	ID                   string
	Type                 string
	Created              int64
	TenantTaxID          string // metadata tag set at checkout, may be empty
	CustomerID           string
	SubscriptionID       string
	Subscription         *Subscription
	SubscriptionCheckout bool // for checkout events: session was subscription-mode
}

// Session is a hosted provider page the tenant is redirected to.
type Session struct {
	URL  string `json:"url"`
	Kind string `json:"kind"`
}

// Invoice is a provider invoice as listed on the tenant billing page.
type Invoice struct {
	ID              string `json:"id"`
	Number          string `json:"number"`
	Status          string `json:"status"`
	AmountDueCents  int64  `json:"amountDueCents"`
	AmountPaidCents int64  `json:"amountPaidCents"`
	Currency        string `json:"currency"`
	Created         int64  `json:"created"`
	HostedURL       string `json:"hostedUrl"`
	PDFURL          string `json:"pdfUrl"`
}

// Gateway abstracts the billing provider API.
type Gateway interface {
	// VerifyEvent checks the webhook signature before any parsing and
	// returns the decoded event. Signature failures return
	// model.ErrInvalidSignature.
	VerifyEvent(payload []byte, signatureHeader string) (*Event, error)

	// CreateCustomer creates a provider customer tagged with the tenant tax
	// id and returns its reference.
	CreateCustomer(ctx context.Context, email, name, taxID string) (string, error)

	// CreateCheckoutSession starts a subscription checkout for the customer.
	CreateCheckoutSession(ctx context.Context, customerID, priceID, taxID string) (*Session, error)

	// CreatePortalSession starts a self-service management session.
	CreatePortalSession(ctx context.Context, customerID string) (*Session, error)

	// GetSubscription fetches one subscription by reference.
	GetSubscription(ctx context.Context, id string) (*Subscription, error)

	// ListSubscriptions lists all subscriptions of a customer, newest first.
	ListSubscriptions(ctx context.Context, customerID string) ([]Subscription, error)

	// SetCancelAtPeriodEnd flips the cancel-at-period-end flag and returns
	// the updated subscription.
	SetCancelAtPeriodEnd(ctx context.Context, subscriptionID string, cancel bool) (*Subscription, error)

	// ListInvoices lists the customer's invoices, newest first.
	ListInvoices(ctx context.Context, customerID string) ([]Invoice, error)
}
