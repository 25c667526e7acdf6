package entity

// PriceLine is one named component of a breakdown. Discount amounts are stored
// positive; they subtract from the total when summed.
type PriceLine struct {
	Name   string `json:"name"`
	Amount Money  `json:"amount"`
}

// BookingPricing is the immutable price snapshot frozen onto a booking at
// submission. Recomputing with identical inputs and an unchanged config yields a
// bit-identical value. The security deposit is a refundable hold tracked next to,
// never inside, the chargeable total.
type BookingPricing struct {
	BaseAmount      Money       `json:"base_amount"` // nightly base before seasonal scaling
	Nights          int         `json:"nights"`
	Subtotal        Money       `json:"subtotal"`
	Fees            []PriceLine `json:"fees"`
	Discounts       []PriceLine `json:"discounts"`
	Taxes           []PriceLine `json:"taxes"`
	SecurityDeposit Money       `json:"security_deposit"`
	Total           Money       `json:"total"`
	Currency        Currency    `json:"currency"`
}

func (p BookingPricing) TotalFees() int64 {
	var sum int64
	for _, line := range p.Fees {
		sum += line.Amount.Amount
	}
	return sum
}

func (p BookingPricing) TotalDiscounts() int64 {
	var sum int64
	for _, line := range p.Discounts {
		sum += line.Amount.Amount
	}
	return sum
}

func (p BookingPricing) TotalTaxes() int64 {
	var sum int64
	for _, line := range p.Taxes {
		sum += line.Amount.Amount
	}
	return sum
}

// Clone deep-copies the line slices so a held snapshot cannot be aliased.
func (p BookingPricing) Clone() BookingPricing {
	clone := p
	clone.Fees = append([]PriceLine(nil), p.Fees...)
	clone.Discounts = append([]PriceLine(nil), p.Discounts...)
	clone.Taxes = append([]PriceLine(nil), p.Taxes...)
	return clone
}
