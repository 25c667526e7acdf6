package entity

import "testing"

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoney(10050, CurrencyDOP)
	b := NewMoney(2550, CurrencyDOP)

	sum, err := a.Add(b)
	if err != nil || sum.Amount != 12600 {
		t.Fatalf("Add = %v, %v; want 12600", sum.Amount, err)
	}

	diff, err := a.Sub(b)
	if err != nil || diff.Amount != 7500 {
		t.Fatalf("Sub = %v, %v; want 7500", diff.Amount, err)
	}

	if _, err := a.Add(NewMoney(100, CurrencyUSD)); err == nil {
		t.Fatal("expected currency mismatch error")
	}
}

func TestMoney_RoundHalfUp(t *testing.T) {
	cases := []struct {
		amount int64
		rate   float64
		want   int64
	}{
		{1000, 18, 180},
		{1001, 18, 180},  // 180.18 rounds down
		{1003, 18, 181},  // 180.54 rounds up
		{25, 50, 13},     // 12.5 rounds up
		{10000, 0, 0},
	}
	for _, tc := range cases {
		got := NewMoney(tc.amount, CurrencyDOP).Percent(tc.rate)
		if got.Amount != tc.want {
			t.Fatalf("Percent(%d, %v) = %d, want %d", tc.amount, tc.rate, got.Amount, tc.want)
		}
	}
}

func TestMoneyFromFloat(t *testing.T) {
	cases := []struct {
		value float64
		want  int64
	}{
		{100, 100},
		{100.4, 100},
		{100.5, 101},
		{0.2, 0},
	}
	for _, tc := range cases {
		got := MoneyFromFloat(tc.value, CurrencyDOP)
		if got.Amount != tc.want {
			t.Fatalf("MoneyFromFloat(%v) = %d, want %d", tc.value, got.Amount, tc.want)
		}
	}
}

func TestMoney_Scale(t *testing.T) {
	weekly := NewMoney(70000, CurrencyDOP)
	nightly := weekly.Scale(1.0 / 7)
	if nightly.Amount != 10000 {
		t.Fatalf("Scale(1/7) = %d, want 10000", nightly.Amount)
	}

	// 10001 * 1.5 = 15001.5 rounds up
	scaled := NewMoney(10001, CurrencyDOP).Scale(1.5)
	if scaled.Amount != 15002 {
		t.Fatalf("Scale(1.5) = %d, want 15002", scaled.Amount)
	}
}

func TestBookingPricing_CloneDoesNotAlias(t *testing.T) {
	p := BookingPricing{
		Fees:      []PriceLine{{Name: "cleaning fee", Amount: NewMoney(5000, CurrencyDOP)}},
		Discounts: []PriceLine{{Name: "weekly", Amount: NewMoney(1000, CurrencyDOP)}},
	}

	c := p.Clone()
	c.Fees[0].Amount = NewMoney(1, CurrencyDOP)
	c.Discounts[0].Name = "changed"

	if p.Fees[0].Amount.Amount != 5000 || p.Discounts[0].Name != "weekly" {
		t.Fatal("Clone shares line slices with the original")
	}
}

func TestNightlyBase_Proration(t *testing.T) {
	cases := []struct {
		pricingType PricingType
		base        int64
		want        int64
	}{
		{PricingPerNight, 10000, 10000},
		{PricingPerWeek, 70000, 10000},
		{PricingPerMonth, 90000, 3000},
		{PricingPerYear, 365000, 1000},
	}
	for _, tc := range cases {
		config := RentalPricingConfig{
			BasePrice:   NewMoney(tc.base, CurrencyDOP),
			PricingType: tc.pricingType,
		}
		if got := config.NightlyBase().Amount; got != tc.want {
			t.Fatalf("NightlyBase(%s) = %d, want %d", tc.pricingType, got, tc.want)
		}
	}
}
