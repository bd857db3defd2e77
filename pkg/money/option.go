package money

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Kind is the family an option belongs to
// It only determines how the option is synthesized and displayed
type Kind int

// Kind constants
const (
	KindDollars Kind = iota
	KindFraction
	KindCents
)

func (k Kind) String() string {
	switch k {
	case KindDollars:
		return "dollars"
	case KindFraction:
		return "fraction"
	case KindCents:
		return "cents"
	}

	panic(fmt.Sprintf("invalid kind: %d", k))
}

// MarshalJSON encodes the kind as its name
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Option is a single money option a player can pick
// Value is the only field used for comparison, Display is derived from it
type Option struct {
	Kind    Kind            `json:"kind"`
	Display string          `json:"display"`
	Value   decimal.Decimal `json:"value"`
}

// Pair is the two options presented in a round
type Pair struct {
	First  Option `json:"first"`
	Second Option `json:"second"`
}

// Gap returns the absolute difference in value between the two options
func (p Pair) Gap() decimal.Decimal {
	return p.First.Value.Sub(p.Second.Value).Abs()
}

// NewDollars returns a plain dollar amount, e.g., +$20
func NewDollars(amount int) Option {
	value := decimal.NewFromInt(int64(amount))
	return Option{
		Kind:    KindDollars,
		Display: FormatSigned(value),
		Value:   value,
	}
}

// NewDollarsSum returns a dollar amount expressed as a sum, e.g., +$20 - $5
func NewDollarsSum(a, b int) Option {
	display := FormatSigned(decimal.NewFromInt(int64(a)))
	if b < 0 {
		display += fmt.Sprintf(" - $%d", -b)
	} else {
		display += fmt.Sprintf(" + $%d", b)
	}

	return Option{
		Kind:    KindDollars,
		Display: display,
		Value:   decimal.NewFromInt(int64(a + b)),
	}
}

// NewFraction returns numerator/denominator of base, e.g., 3/4 of $100
func NewFraction(numerator, denominator, base int) Option {
	if denominator <= 0 {
		panic(fmt.Sprintf("invalid denominator: %d", denominator))
	}

	value := decimal.NewFromInt(int64(numerator * base)).Div(decimal.NewFromInt(int64(denominator)))
	return Option{
		Kind:    KindFraction,
		Display: fmt.Sprintf("%d/%d of $%d", numerator, denominator, base),
		Value:   value,
	}
}

// NewCents returns an amount of cents, e.g., 150¢
func NewCents(cents int) Option {
	return Option{
		Kind:    KindCents,
		Display: fmt.Sprintf("%d¢", cents),
		Value:   decimal.New(int64(cents), -2),
	}
}

// FormatSigned formats a dollar amount with an explicit sign
func FormatSigned(value decimal.Decimal) string {
	if value.IsNegative() {
		return "-$" + value.Abs().String()
	}

	return "+$" + value.String()
}

// FormatAmount formats a dollar amount to the cent, e.g., $12.50
func FormatAmount(value decimal.Decimal) string {
	if value.IsNegative() {
		return "-$" + value.Abs().StringFixed(2)
	}

	return "$" + value.StringFixed(2)
}
