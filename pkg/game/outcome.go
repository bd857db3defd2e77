package game

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// OutcomeKind is the result of submitting a choice
type OutcomeKind int

// OutcomeKind constants
const (
	// OutcomeNone means no choice has been submitted yet
	OutcomeNone OutcomeKind = iota
	// OutcomeIgnored means the game was already over
	OutcomeIgnored
	OutcomeCorrect
	OutcomeIncorrect
)

func (o OutcomeKind) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeCorrect:
		return "correct"
	case OutcomeIncorrect:
		return "incorrect"
	}

	panic(fmt.Sprintf("invalid outcome: %d", o))
}

// MarshalJSON encodes the outcome by name
func (o OutcomeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// Outcome is what happened after the last choice
// Value is only set for a correct choice
type Outcome struct {
	Kind  OutcomeKind     `json:"kind"`
	Value decimal.Decimal `json:"value"`
}
