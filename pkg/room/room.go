package room

import (
	"context"
	"moneymaster-server/internal/rng"
	"moneymaster-server/pkg/game"
	"moneymaster-server/pkg/kv"
	"moneymaster-server/pkg/money"
	"moneymaster-server/pkg/post"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Room hosts the games played on a single post
// Every user has their own session. lock only guards the sessions map, each
// session serializes its own operations so a slow store write never blocks other users
type Room struct {
	post       *post.Post
	controller *game.Controller
	logger     logrus.FieldLogger

	sessions map[string]*session
	lock     sync.Mutex

	clients    map[*Client]bool
	clientLock sync.RWMutex
}

type session struct {
	userID     string
	state      *game.State
	outcome    game.Outcome
	lastActive time.Time
	lock       sync.Mutex
}

// View is everything the presentation layer needs to render a game
type View struct {
	State       *game.State  `json:"state"`
	LastOutcome game.Outcome `json:"lastOutcome"`
	Earnings    string       `json:"earningsDisplay"`
	HighScore   string       `json:"highScoreDisplay"`
	FinalScore  string       `json:"finalScore"`
}

// NewRoom returns a new room for the post
func NewRoom(logger logrus.FieldLogger, p *post.Post, store kv.Store, g rng.Generator, options game.Options) (*Room, error) {
	r := &Room{
		post:     p,
		logger:   logger.WithField("post", p.UUID),
		sessions: make(map[string]*session),
		clients:  make(map[*Client]bool),
	}

	controller, err := game.NewController(r.logger, store, r, g, options)
	if err != nil {
		return nil, err
	}

	r.controller = controller
	return r, nil
}

// Post returns the post the room belongs to
func (r *Room) Post() *post.Post {
	return r.post
}

// View returns the user's game, starting a session if they don't have one yet
func (r *Room) View(_ context.Context, userID string) *View {
	return r.withSession(userID, func(*session) {})
}

// SubmitChoice applies the user's choice to their game
// The scores of a finished game are persisted even if ctx is cancelled
func (r *Room) SubmitChoice(ctx context.Context, userID string, choice game.Choice) *View {
	ctx = context.WithoutCancel(ctx)
	v := r.withSession(userID, func(s *session) {
		s.state, s.outcome = r.controller.SubmitChoice(ctx, s.state, choice)
	})

	r.sendToUser(userID, &Response{Key: keyGame, Data: v})
	return v
}

// Reset starts a new game for the user
func (r *Room) Reset(_ context.Context, userID string) *View {
	v := r.withSession(userID, func(s *session) {
		s.state = r.controller.Reset(s.state)
		s.outcome = game.Outcome{}
	})

	r.sendToUser(userID, &Response{Key: keyGame, Data: v})
	return v
}

// Notify sends a toast to every client the user has connected
func (r *Room) Notify(userID string, message string) {
	r.sendToUser(userID, &Response{Key: keyToast, Value: message})
}

// ReceivedMessage handles a message from a websocket client
func (r *Room) ReceivedMessage(c *Client, msg *PayloadIn) {
	ctx := context.Background()

	switch msg.Action {
	case ActionChoice:
		choice, err := game.ChoiceFromString(msg.Subject)
		if err != nil {
			c.Send(&Response{Key: keyError, Value: err.Error(), Context: msg.Context})
			return
		}

		r.SubmitChoice(ctx, c.userID, choice)
	case ActionReset:
		r.Reset(ctx, c.userID)
	case ActionState:
		c.Send(&Response{Key: keyGame, Data: r.View(ctx, c.userID), Context: msg.Context})
	default:
		c.Send(&Response{Key: keyError, Value: "unknown action: " + msg.Action, Context: msg.Context})
	}
}

// AddClient adds a client and sends it the current game
// This method must return quickly, the game is loaded in the background
func (r *Room) AddClient(c *Client) {
	r.clientLock.Lock()
	r.clients[c] = true
	r.clientLock.Unlock()

	go func() {
		c.Send(&Response{Key: keyGame, Data: r.View(context.Background(), c.userID)})
	}()
}

// RemoveClient removes a client
// Returns true if it was the last connected client
func (r *Room) RemoveClient(c *Client) (lastClient bool) {
	r.clientLock.Lock()
	defer r.clientLock.Unlock()

	delete(r.clients, c)
	return len(r.clients) == 0
}

// Clients will return a slice of connected (at the time) clients
func (r *Room) Clients() []*Client {
	r.clientLock.RLock()
	defer r.clientLock.RUnlock()

	clients := make([]*Client, 0, len(r.clients))
	for client := range r.clients {
		clients = append(clients, client)
	}

	return clients
}

func (r *Room) sendToUser(userID string, msg *Response) {
	for _, c := range r.Clients() {
		if c.userID != userID {
			continue
		}

		if !c.Send(msg) {
			r.logger.WithField("client", c.String()).Warn("client buffer full, dropping message")
		}
	}
}

// withSession runs fn while holding the user's session lock and returns the resulting view
// A new session is started with its own context, never with the caller's
func (r *Room) withSession(userID string, fn func(s *session)) *View {
	s := r.getSession(userID)

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.state == nil {
		s.state = r.controller.Start(context.Background(), userID)
	}

	fn(s)
	s.lastActive = time.Now()
	return s.view()
}

func (r *Room) getSession(userID string) *session {
	r.lock.Lock()
	defer r.lock.Unlock()

	s, found := r.sessions[userID]
	if !found {
		s = &session{userID: userID, lastActive: time.Now()}
		r.sessions[userID] = s
	}

	return s
}

// evictIdle drops the sessions that were last used before cutoff
// Sessions that are busy or whose user still has a client connected are kept
// Returns how many sessions remain
func (r *Room) evictIdle(cutoff time.Time) int {
	connected := make(map[string]bool)
	for _, c := range r.Clients() {
		connected[c.userID] = true
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	for userID, s := range r.sessions {
		if connected[userID] || !s.lock.TryLock() {
			continue
		}

		if s.lastActive.Before(cutoff) {
			delete(r.sessions, userID)
		}
		s.lock.Unlock()
	}

	return len(r.sessions)
}

func (s *session) view() *View {
	return &View{
		State:       s.state,
		LastOutcome: s.outcome,
		Earnings:    money.FormatAmount(s.state.Earnings),
		HighScore:   money.FormatAmount(s.state.HighScore),
		FinalScore:  s.state.FinalScore(),
	}
}
