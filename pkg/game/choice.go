package game

import (
	"encoding/json"
	"fmt"
	"moneymaster-server/pkg/money"
	"strings"
)

// Choice is the option a player picked
type Choice int

// Choice constants
// The zero value is not a valid choice
const (
	ChoiceFirst Choice = iota + 1
	ChoiceSecond
)

func (c Choice) String() string {
	switch c {
	case ChoiceFirst:
		return "first"
	case ChoiceSecond:
		return "second"
	}

	panic(fmt.Sprintf("invalid choice: %d", c))
}

// MarshalJSON encodes the choice by name
func (c Choice) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// ChoiceFromString parses a choice sent by a client
func ChoiceFromString(choice string) (Choice, error) {
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "first", "option1", "1":
		return ChoiceFirst, nil
	case "second", "option2", "2":
		return ChoiceSecond, nil
	}

	return 0, fmt.Errorf("invalid choice: %s", choice)
}

// pick returns the selected option followed by the other one
// An invalid choice is a programming error and panics
func (c Choice) pick(pair money.Pair) (selected, other money.Option) {
	switch c {
	case ChoiceFirst:
		return pair.First, pair.Second
	case ChoiceSecond:
		return pair.Second, pair.First
	}

	panic(fmt.Sprintf("invalid choice: %d", c))
}
