package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Well-known subscription statuses as reported by the billing provider.
// The status column stores the provider string verbatim; StatusInactive is a
// local sentinel written when a manual resync finds no subscription at all.
const (
	StatusActive     = "active"
	StatusTrialing   = "trialing"
	StatusPastDue    = "past_due"
	StatusCanceled   = "canceled"
	StatusIncomplete = "incomplete"
	StatusInactive   = "inactive"
)

// Subscription holds the billing provider's view of a tenant's plan.
// It is overwritten wholesale on every relevant webhook event.
type Subscription struct {
	SubscriptionID    string `json:"subscriptionId" db:"subscription_id"`
	CustomerID        string `json:"customerId" db:"billing_customer_id"`
	PriceID           string `json:"priceId" db:"price_id"`
	CurrentPeriodEnd  int64  `json:"currentPeriodEnd" db:"current_period_end"`
	Status            string `json:"status" db:"subscription_status"`
	CancelAtPeriodEnd bool   `json:"cancelAtPeriodEnd" db:"cancel_at_period_end"`
	// EventCreated is the provider timestamp of the last event applied,
	// used to drop late-arriving stale deliveries.
	EventCreated int64 `json:"-" db:"event_created"`
}

// Active reports whether the subscription grants access to paid features.
func (s *Subscription) Active() bool {
	return s != nil && (s.Status == StatusActive || s.Status == StatusTrialing)
}

// DayHours describes one weekday's opening window. Times are "HH:MM".
// A close time earlier than the open time means the window crosses midnight.
type DayHours struct {
	Open      bool   `json:"open"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// Schedule maps lowercase English weekday names to opening windows.
type Schedule map[string]DayHours

// Tenant is one restaurant, keyed by its normalized tax identifier.
type Tenant struct {
	TaxID             string        `json:"taxId" db:"tax_id"`
	Name              string        `json:"name" db:"name"`
	OwnerName         string        `json:"ownerName" db:"owner_name"`
	Email             string        `json:"email" db:"email"`
	Address           string        `json:"address" db:"address"`
	WhatsApp          string        `json:"whatsapp" db:"whatsapp"`
	AccountID         uuid.UUID     `json:"-" db:"account_id"`
	BillingCustomerID string        `json:"-" db:"billing_customer_id"`
	Subscription      *Subscription `json:"subscription,omitempty"`
	Hours             Schedule      `json:"hours" db:"hours"`
	CreatedAt         time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time     `json:"updatedAt" db:"updated_at"`
}

// Account is an owner login backed by a bcrypt password hash.
type Account struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	DisplayName  string    `json:"displayName" db:"display_name"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// NormalizeTaxID strips everything but digits from a user-supplied tax
// identifier, so "12.345.678/0001-99" and "12345678000199" key the same
// tenant.
func NormalizeTaxID(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SignupRequest is the payload for tenant registration.
type SignupRequest struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	OwnerName      string `json:"ownerName"`
	RestaurantName string `json:"restaurantName"`
	TaxID          string `json:"taxId"`
	Address        string `json:"address"`
	WhatsApp       string `json:"whatsapp"`
}

// LoginRequest is the payload for owner login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	Token  string  `json:"token"`
	Tenant *Tenant `json:"tenant,omitempty"`
}

// TenantUpdateRequest is the payload for profile updates. Nil fields are
// left untouched.
type TenantUpdateRequest struct {
	Name      *string   `json:"name,omitempty"`
	OwnerName *string   `json:"ownerName,omitempty"`
	Address   *string   `json:"address,omitempty"`
	WhatsApp  *string   `json:"whatsapp,omitempty"`
	Hours     *Schedule `json:"hours,omitempty"`
}
