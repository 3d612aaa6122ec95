package menu

// CartAddon is a selected extra on a cart line.
type CartAddon struct {
	Name       string
	PriceCents int64
}

// CartLine is one product in a cart with its chosen add-ons. Prices are
// integer cents; totals cannot drift the way floating-point currency does.
type CartLine struct {
	ProductName    string
	UnitPriceCents int64
	Quantity       int
	Addons         []CartAddon
}

// TotalCents is (base price + selected add-ons) x quantity.
func (l CartLine) TotalCents() int64 {
	unit := l.UnitPriceCents
	for _, addon := range l.Addons {
		unit += addon.PriceCents
	}
	return unit * int64(l.Quantity)
}

// CartTotalCents sums all line totals. An empty cart totals zero.
func CartTotalCents(lines []CartLine) int64 {
	var total int64
	for _, line := range lines {
		total += line.TotalCents()
	}
	return total
}
