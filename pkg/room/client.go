package room

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	room   *Room
	userID string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, room *Room, userID string) *Client {
	return &Client{
		send:   make(chan interface{}, 256),
		Close:  make(chan string),
		Conn:   conn,
		room:   room,
		userID: userID,
	}
}

// Send send a message to the web client
// It never blocks, if the buffer is full the message is dropped
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// UserID returns the ID of the connected user
func (c *Client) UserID() string {
	return c.userID
}

// String returns a traceable identifier for the user and post
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.userID, c.room.post.UUID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *PayloadIn) {
	if c.room == nil {
		logrus.WithField("msg", msg).Warn("received message, but room not found")
		return
	}

	c.room.ReceivedMessage(c, msg)
}
