package game

import (
	"fmt"
	"moneymaster-server/pkg/money"

	"github.com/shopspring/decimal"
)

// State is a single user's game
// It is only changed through the Controller, which always returns a new State
type State struct {
	UserID         string          `json:"-"`
	Round          int             `json:"round"`
	Rounds         int             `json:"rounds"`
	Earnings       decimal.Decimal `json:"earnings"`
	CorrectChoices int             `json:"correctChoices"`
	GameOver       bool            `json:"gameOver"`
	Pair           money.Pair      `json:"pair"`
	HighScore      decimal.Decimal `json:"highScore"`
}

// FinalScore returns the number of correct choices out of the number of rounds, e.g., 7/10
func (s *State) FinalScore() string {
	return fmt.Sprintf("%d/%d", s.CorrectChoices, s.Rounds)
}

// IsActive returns true until the last round has been played
func (s *State) IsActive() bool {
	return !s.GameOver
}
