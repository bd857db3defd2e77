// Package post creates the interactive posts that host money games
package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"moneymaster-server/pkg/kv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreatingMessage is shown to the moderator while the post is created
const CreatingMessage = "Creating your money game post..."

// ErrNotFound is returned when a post does not exist
var ErrNotFound = errors.New("post not found")

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// Post is a game post in a subreddit
type Post struct {
	UUID      string    `json:"uuid"`
	Title     string    `json:"title"`
	Subreddit string    `json:"subreddit"`
	// Preview is the static content shown until the game loads
	Preview   string    `json:"preview"`
	CreatedBy string    `json:"createdBy"`
	Created   time.Time `json:"created"`
}

// Options contains the static content of new posts
type Options struct {
	Title   string
	Preview string
}

// Create creates a new post and stores it
func Create(ctx context.Context, store kv.Store, opts Options, subreddit, createdBy string) (*Post, error) {
	subreddit = strings.TrimPrefix(strings.TrimSpace(subreddit), "r/")
	if subreddit == "" {
		return nil, UserError("subreddit is required")
	}

	p := &Post{
		UUID:      uuid.New().String(),
		Title:     opts.Title,
		Subreddit: subreddit,
		Preview:   opts.Preview,
		CreatedBy: createdBy,
		Created:   time.Now().UTC(),
	}

	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	if err := store.Set(ctx, kv.PostKey(p.UUID), string(b)); err != nil {
		return nil, fmt.Errorf("store post: %w", err)
	}

	return p, nil
}

// GetByUUID returns a post by its UUID
func GetByUUID(ctx context.Context, store kv.Store, id string) (*Post, error) {
	val, err := store.Get(ctx, kv.PostKey(strings.ToLower(id)))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	var p Post
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// URL returns where to navigate to see the post
func (p *Post) URL(baseURL string) string {
	return fmt.Sprintf("%s/post/%s", strings.TrimRight(baseURL, "/"), p.UUID)
}
