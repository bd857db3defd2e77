package money

import (
	"moneymaster-server/internal/rng"

	"github.com/shopspring/decimal"
)

// MaxAttempts is how many second options are drawn before falling back
const MaxAttempts = 1000

// rounds at which new kinds become available
const (
	fractionRound = 3
	centsRound    = 6
)

var fractionNumerators = []int{1, 2, 3, 4}
var fractionDenominators = []int{2, 3, 4, 5}

// Difficulty returns 1 + 0.5 * round
// It is both the minimum gap between two options and the scale of their ranges
func Difficulty(round int) decimal.Decimal {
	return decimal.NewFromInt(1).Add(decimal.NewFromInt(int64(round)).Div(decimal.NewFromInt(2)))
}

// KindsForRound returns the kinds an option may have in the round
func KindsForRound(round int) []Kind {
	switch {
	case round < fractionRound:
		return []Kind{KindDollars}
	case round < centsRound:
		return []Kind{KindDollars, KindFraction}
	}

	return []Kind{KindDollars, KindFraction, KindCents}
}

// Generate returns a pair of options for the round
// The options are always at least Difficulty(round) apart in value
func Generate(g rng.Generator, round int) Pair {
	if round < 1 {
		round = 1
	}

	difficulty := Difficulty(round)
	first := generateOption(g, round, difficulty)
	for i := 0; i < MaxAttempts; i++ {
		second := generateOption(g, round, difficulty)
		if first.Value.Sub(second.Value).Abs().GreaterThanOrEqual(difficulty) {
			return Pair{First: first, Second: second}
		}
	}

	return Pair{First: first, Second: fallbackOption(first, difficulty)}
}

// fallbackOption is a dollar amount guaranteed to clear the difficulty gap
func fallbackOption(first Option, difficulty decimal.Decimal) Option {
	amount := first.Value.Ceil().Add(difficulty.Ceil())
	return NewDollars(int(amount.IntPart()))
}

func generateOption(g rng.Generator, round int, difficulty decimal.Decimal) Option {
	kinds := KindsForRound(round)
	switch kinds[rng.Pick(g, len(kinds))] {
	case KindFraction:
		return generateFraction(g, difficulty)
	case KindCents:
		return generateCents(g, difficulty)
	}

	return generateDollars(g, round, difficulty)
}

func generateDollars(g rng.Generator, round int, difficulty decimal.Decimal) Option {
	if round < fractionRound {
		max := int(difficulty.Mul(decimal.NewFromInt(20)).Round(0).IntPart())
		return NewDollars(rng.Between(g, 5, max))
	}

	aMin, aMax := scaledRange(difficulty, -20, 50)
	bMin, bMax := scaledRange(difficulty, -10, 30)
	return NewDollarsSum(rng.Between(g, aMin, aMax), rng.Between(g, bMin, bMax))
}

func generateFraction(g rng.Generator, difficulty decimal.Decimal) Option {
	numerator := fractionNumerators[rng.Pick(g, len(fractionNumerators))]

	denominators := make([]int, 0, len(fractionDenominators))
	for _, d := range fractionDenominators {
		if d > numerator {
			denominators = append(denominators, d)
		}
	}
	denominator := denominators[rng.Pick(g, len(denominators))]

	min, max := scaledRange(difficulty, 50, 200)
	return NewFraction(numerator, denominator, rng.Between(g, min, max))
}

func generateCents(g rng.Generator, difficulty decimal.Decimal) Option {
	min, max := scaledRange(difficulty, 50, 999)
	return NewCents(rng.Between(g, min, max))
}

// scaledRange multiplies both bounds by difficulty and rounds them inward
func scaledRange(difficulty decimal.Decimal, low, high int64) (int, int) {
	min := difficulty.Mul(decimal.NewFromInt(low)).Ceil().IntPart()
	max := difficulty.Mul(decimal.NewFromInt(high)).Floor().IntPart()
	return int(min), int(max)
}
