package game

import (
	"context"
	"errors"
	"fmt"
	"moneymaster-server/internal/rng"
	"moneymaster-server/pkg/kv"
	"moneymaster-server/pkg/money"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Toast messages sent to the player
const (
	messageWrong        = "Wrong choice! The other option was better 😅"
	messageNewHighScore = "🏆 New High Score! 🏆"
)

// Options contains options for the round controller
type Options struct {
	// Rounds is how many choices make up a game
	Rounds int
	// SeedEarningsFromHistory starts a session with the user's persisted earnings instead of zero
	SeedEarningsFromHistory bool
	// PersistTimeout bounds every read and write against the store
	PersistTimeout time.Duration
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		Rounds:                  10,
		SeedEarningsFromHistory: true,
		PersistTimeout:          time.Second * 5,
	}
}

// Controller applies choices to game states and persists scores when a game ends
type Controller struct {
	options  Options
	store    kv.Store
	notifier Notifier
	rng      rng.Generator
	logger   logrus.FieldLogger
}

// NewController returns a new controller
// If notifier is nil, messages are discarded. If g is nil, crypto/rand is used
func NewController(logger logrus.FieldLogger, store kv.Store, notifier Notifier, g rng.Generator, options Options) (*Controller, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}

	if options.Rounds <= 0 {
		return nil, errors.New("rounds must be > 0")
	}

	if options.PersistTimeout <= 0 {
		options.PersistTimeout = DefaultOptions().PersistTimeout
	}

	if notifier == nil {
		notifier = NopNotifier{}
	}

	if g == nil {
		g = rng.Crypto{}
	}

	return &Controller{
		options:  options,
		store:    store,
		notifier: notifier,
		rng:      g,
		logger:   logger,
	}, nil
}

// Start begins a session for the user
// Persisted values that cannot be read default to zero
func (c *Controller) Start(ctx context.Context, userID string) *State {
	ctx, cancel := context.WithTimeout(ctx, c.options.PersistTimeout)
	defer cancel()

	s := &State{
		UserID:    userID,
		Round:     1,
		Rounds:    c.options.Rounds,
		Earnings:  decimal.Zero,
		HighScore: c.loadDecimal(ctx, kv.HighScoreKey),
		Pair:      money.Generate(c.rng, 1),
	}

	if c.options.SeedEarningsFromHistory && userID != "" {
		s.Earnings = c.loadDecimal(ctx, kv.EarningsKey(userID))
	}

	return s
}

// SubmitChoice applies the choice to the state and returns the resulting state
// The given state is never modified. Once the game is over, the same state is returned with OutcomeIgnored
func (c *Controller) SubmitChoice(ctx context.Context, s *State, choice Choice) (*State, Outcome) {
	if s.GameOver {
		return s, Outcome{Kind: OutcomeIgnored}
	}

	selected, other := choice.pick(s.Pair)
	next := *s

	var outcome Outcome
	if selected.Value.GreaterThan(other.Value) {
		next.Earnings = next.Earnings.Add(selected.Value)
		next.CorrectChoices++
		outcome = Outcome{Kind: OutcomeCorrect, Value: selected.Value}
		c.notifier.Notify(s.UserID, correctMessage(selected.Value))
	} else {
		outcome = Outcome{Kind: OutcomeIncorrect}
		c.notifier.Notify(s.UserID, messageWrong)
	}

	c.logger.WithFields(logrus.Fields{
		"user":    s.UserID,
		"round":   s.Round,
		"choice":  choice.String(),
		"outcome": outcome.Kind.String(),
	}).Debug("choice submitted")

	if next.Round >= next.Rounds {
		next.GameOver = true
		c.finish(ctx, &next)
	} else {
		next.Round++
		next.Pair = money.Generate(c.rng, next.Round)
	}

	return &next, outcome
}

// Reset starts a new game, keeping the high score
func (c *Controller) Reset(s *State) *State {
	return &State{
		UserID:    s.UserID,
		Round:     1,
		Rounds:    c.options.Rounds,
		Earnings:  decimal.Zero,
		HighScore: s.HighScore,
		Pair:      money.Generate(c.rng, 1),
	}
}

// finish persists the scores of a game that just ended
// Failures are logged and otherwise ignored
func (c *Controller) finish(ctx context.Context, s *State) {
	ctx, cancel := context.WithTimeout(ctx, c.options.PersistTimeout)
	defer cancel()

	log := c.logger.WithField("user", s.UserID)

	previous := s.HighScore
	persisted, err := c.readDecimal(ctx, kv.HighScoreKey)
	if err != nil {
		log.WithError(err).Warn("could not load high score")
	} else if persisted.GreaterThan(previous) {
		previous = persisted
	}

	best := decimal.Max(s.Earnings, previous)
	if err := c.store.Set(ctx, kv.HighScoreKey, best.String()); err != nil {
		log.WithError(err).Error("could not update high score")
	}

	if s.UserID != "" {
		if err := c.store.Set(ctx, kv.EarningsKey(s.UserID), s.Earnings.String()); err != nil {
			log.WithError(err).Error("could not update earnings")
		}
	}

	if s.Earnings.GreaterThan(previous) {
		c.notifier.Notify(s.UserID, messageNewHighScore)
	}

	s.HighScore = best
	log.WithFields(logrus.Fields{
		"earnings":  s.Earnings.String(),
		"highScore": best.String(),
		"score":     s.FinalScore(),
	}).Info("game over")
}

// readDecimal returns the stored number, or zero if the key was never set
func (c *Controller) readDecimal(ctx context.Context, key string) (decimal.Decimal, error) {
	val, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return decimal.Zero, nil
		}

		return decimal.Zero, err
	}

	d, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid value for %s: %w", key, err)
	}

	return d, nil
}

func (c *Controller) loadDecimal(ctx context.Context, key string) decimal.Decimal {
	d, err := c.readDecimal(ctx, key)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("could not load persisted value")
		return decimal.Zero
	}

	return d
}

func correctMessage(value decimal.Decimal) string {
	amount := money.FormatAmount(value)
	if value.IsPositive() {
		amount = "+" + amount
	}

	return fmt.Sprintf("Correct! %s 🎯", amount)
}
