package menu

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Payment methods accepted in the public ordering flow.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
	PaymentPix  = "pix"
)

// Order is everything needed to render the outbound order message.
type Order struct {
	RestaurantName string
	CustomerName   string
	Address        string // empty means pickup
	PaymentMethod  string
	ChangeForCents int64 // cash only: note which banknote change is needed for
	Lines          []CartLine
}

// ComposeMessage renders the human-readable order summary sent to the
// restaurant's WhatsApp number.
func ComposeMessage(o Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Novo pedido - %s*\n\n", o.RestaurantName)

	for _, line := range o.Lines {
		fmt.Fprintf(&b, "%dx %s - %s\n", line.Quantity, line.ProductName, FormatBRL(line.TotalCents()))
		for _, addon := range line.Addons {
			fmt.Fprintf(&b, "  + %s\n", addon.Name)
		}
	}

	fmt.Fprintf(&b, "\n*Total: %s*\n\n", FormatBRL(CartTotalCents(o.Lines)))
	fmt.Fprintf(&b, "Cliente: %s\n", o.CustomerName)

	if o.Address != "" {
		fmt.Fprintf(&b, "Entrega: %s\n", o.Address)
	} else {
		b.WriteString("Retirada no balcão\n")
	}

	switch o.PaymentMethod {
	case PaymentCash:
		if o.ChangeForCents > 0 {
			fmt.Fprintf(&b, "Pagamento: Dinheiro (troco para %s)\n", FormatBRL(o.ChangeForCents))
		} else {
			b.WriteString("Pagamento: Dinheiro\n")
		}
	case PaymentCard:
		b.WriteString("Pagamento: Cartão\n")
	case PaymentPix:
		b.WriteString("Pagamento: Pix\n")
	}

	return b.String()
}

// WhatsAppLink builds a wa.me link that opens a chat with the message
// pre-filled. Phone formatting characters are stripped.
func WhatsAppLink(phone, message string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return "https://wa.me/" + digits.String() + "?text=" + url.QueryEscape(message)
}

// FormatBRL renders integer cents as Brazilian currency, e.g. 123456 ->
// "R$ 1.234,56".
func FormatBRL(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	reais := strconv.FormatInt(cents/100, 10)

	var grouped strings.Builder
	lead := len(reais) % 3
	if lead == 0 {
		lead = 3
	}
	grouped.WriteString(reais[:lead])
	for i := lead; i < len(reais); i += 3 {
		grouped.WriteByte('.')
		grouped.WriteString(reais[i : i+3])
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("R$ %s%s,%02d", sign, grouped.String(), cents%100)
}
