package room

import (
	"moneymaster-server/internal/rng"
	"moneymaster-server/pkg/game"
	"moneymaster-server/pkg/kv"
	"moneymaster-server/pkg/post"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// PitBoss is responsible for dispatching users to rooms
type PitBoss struct {
	store   kv.Store
	rng     rng.Generator
	options game.Options
	logger  logrus.FieldLogger

	// sessionTTL is how long an unused session is kept, zero keeps them forever
	sessionTTL time.Duration

	rooms map[string]*Room
	lock  sync.Mutex

	connect    chan *Client
	disconnect chan *Client
	close      chan bool
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(logger logrus.FieldLogger, store kv.Store, g rng.Generator, options game.Options, sessionTTL time.Duration) *PitBoss {
	return &PitBoss{
		store:      store,
		rng:        g,
		options:    options,
		logger:     logger,
		sessionTTL: sessionTTL,
		rooms:      make(map[string]*Room),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		close:      make(chan bool),
	}
}

// Room returns the room for the post, opening it if needed
func (p *PitBoss) Room(pst *post.Post) (*Room, error) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if r, found := p.rooms[pst.UUID]; found {
		return r, nil
	}

	r, err := NewRoom(p.logger, pst, p.store, p.rng, p.options)
	if err != nil {
		return nil, err
	}

	p.logger.WithField("post", pst.UUID).Debug("opened room")
	p.rooms[pst.UUID] = r
	return r, nil
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

// EndShift stops the run loop
func (p *PitBoss) EndShift() {
	close(p.close)
}

func (p *PitBoss) runLoop() {
	var sweep <-chan time.Time
	if p.sessionTTL > 0 {
		ticker := time.NewTicker(sweepInterval(p.sessionTTL))
		defer ticker.Stop()
		sweep = ticker.C
	}

	for {
		select {
		case now := <-sweep:
			p.sweep(now)
		case client := <-p.connect:
			p.logger.WithField("client", client.String()).Debug("client connected")
			client.room.AddClient(client)
		case client := <-p.disconnect:
			p.logger.WithField("client", client.String()).Debug("client disconnected")
			client.room.RemoveClient(client)
		case <-p.close:
			return
		}
	}
}

// sweep evicts idle sessions, then closes the rooms left without sessions or clients
func (p *PitBoss) sweep(now time.Time) {
	cutoff := now.Add(-p.sessionTTL)

	p.lock.Lock()
	defer p.lock.Unlock()

	for id, r := range p.rooms {
		if r.evictIdle(cutoff) == 0 && len(r.Clients()) == 0 {
			delete(p.rooms, id)
			p.logger.WithField("post", id).Debug("closed idle room")
		}
	}
}

func sweepInterval(ttl time.Duration) time.Duration {
	if interval := ttl / 2; interval > time.Second {
		return interval
	}

	return time.Second
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
