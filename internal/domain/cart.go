package domain

// CartLine is one product's entry within a session cart. PriceCents is
// a snapshot of the catalog price captured when the line was first added.
type CartLine struct {
	ProductID  int64 `json:"productId"`
	Quantity   int   `json:"quantity"`
	PriceCents int64 `json:"price"`
}

// Cart maps product id to its line. It lives in the session store for
// the lifetime of the owning session; an absent cart reads as empty.
type Cart map[int64]CartLine

// TotalCents sums the stored snapshot prices. Live sale prices are
// deliberately not consulted here; display totals are resolved per line
// by the cart service instead.
func (c Cart) TotalCents() int64 {
	var total int64
	for _, line := range c {
		total += line.PriceCents * int64(line.Quantity)
	}
	return total
}
