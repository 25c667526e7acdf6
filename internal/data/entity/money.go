package entity

import (
	"fmt"
	"math"
)

type Currency string

const (
	CurrencyDOP Currency = "DOP"
	CurrencyUSD Currency = "USD"
)

// Money is an amount in the currency's minor unit (centavos for DOP, cents for USD).
// All monetary arithmetic stays in integers so recomputing a breakdown from the same
// inputs is bit-identical.
type Money struct {
	Amount   int64    `db:"amount" json:"amount"`
	Currency Currency `db:"currency" json:"currency"`
}

func NewMoney(amount int64, currency Currency) Money {
	return Money{Amount: amount, Currency: currency}
}

// MoneyFromFloat converts a configured minor-unit value to Money, rounding
// half-up like every other float conversion here.
func MoneyFromFloat(v float64, currency Currency) Money {
	return Money{Amount: roundHalfUp(v), Currency: currency}
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}

func (m Money) Neg() Money {
	return Money{Amount: -m.Amount, Currency: m.Currency}
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

func (m Money) Sub(other Money) (Money, error) {
	return m.Add(other.Neg())
}

// Multiply scales the amount by a whole count.
func (m Money) Multiply(n int64) Money {
	return Money{Amount: m.Amount * n, Currency: m.Currency}
}

// Scale multiplies by an arbitrary factor (seasonal multiplier, proration),
// rounding half-up to the minor unit.
func (m Money) Scale(factor float64) Money {
	return Money{Amount: roundHalfUp(float64(m.Amount) * factor), Currency: m.Currency}
}

// Percent returns rate% of the amount, rounded half-up to the minor unit.
func (m Money) Percent(rate float64) Money {
	return Money{Amount: roundHalfUp(float64(m.Amount) * rate / 100), Currency: m.Currency}
}

// roundHalfUp rounds to the nearest integer with .5 going up.
// Amounts here are non-negative in practice; negative inputs round half toward zero,
// which keeps refund math symmetric with charge math.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
