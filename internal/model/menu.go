package model

import "github.com/google/uuid"

// PublicAddon is an add-on as exposed on the public menu.
type PublicAddon struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"priceCents"`
}

// PublicProduct is a visible product with its references resolved.
type PublicProduct struct {
	ID          uuid.UUID     `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	PriceCents  int64         `json:"priceCents"`
	ImagePath   string        `json:"imagePath,omitempty"`
	Addons      []PublicAddon `json:"addons"`
}

// PublicCategory groups the visible products of one category.
type PublicCategory struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Products []PublicProduct `json:"products"`
}

// PublicMenu is the full public view of a restaurant: profile, computed
// open/closed state, and the catalog with hidden products filtered out.
type PublicMenu struct {
	Name       string           `json:"name"`
	Address    string           `json:"address"`
	WhatsApp   string           `json:"whatsapp"`
	Hours      Schedule         `json:"hours"`
	Open       bool             `json:"open"`
	Categories []PublicCategory `json:"categories"`
}

// OrderLineRequest is one cart line in an order-message request.
type OrderLineRequest struct {
	ProductID uuid.UUID   `json:"productId"`
	Quantity  int         `json:"quantity"`
	AddonIDs  []uuid.UUID `json:"addonIds"`
}

// OrderMessageRequest is the payload for composing a WhatsApp order message.
type OrderMessageRequest struct {
	TaxID          string             `json:"taxId"`
	CustomerName   string             `json:"customerName"`
	Address        string             `json:"address"`
	PaymentMethod  string             `json:"paymentMethod"`
	ChangeForCents int64              `json:"changeForCents"`
	Items          []OrderLineRequest `json:"items"`
}

// OrderMessageResponse carries the rendered message and the link that opens
// the restaurant's WhatsApp chat with it pre-filled.
type OrderMessageResponse struct {
	Message     string `json:"message"`
	WhatsAppURL string `json:"whatsappUrl"`
	TotalCents  int64  `json:"totalCents"`
}
