package mux

import (
	"context"
	"moneymaster-server/internal/config"
	"moneymaster-server/internal/jwt"
	"moneymaster-server/pkg/game"
	"moneymaster-server/pkg/kv"
	"moneymaster-server/pkg/post"
	"moneymaster-server/pkg/room"
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type ctxKey int

const (
	ctxUserKey ctxKey = iota
	ctxRoomKey
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	baseURL string
	store   kv.Store
	posts   post.Options
	pitBoss *room.PitBoss

	// store for testing purposes
	authRouter *gmux.Router
	modRouter  *gmux.Router
}

// NewMux returns a new HTTP mux
func NewMux(version string, store kv.Store) *Mux {
	cfg := config.Instance()

	pitBoss := room.NewPitBoss(logrus.StandardLogger(), store, nil, game.Options{
		Rounds:                  cfg.Game.Rounds,
		SeedEarningsFromHistory: cfg.Game.SeedEarningsFromHistory,
		PersistTimeout:          cfg.Game.PersistTimeout,
	}, cfg.Game.SessionTTL)
	pitBoss.StartShift()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		baseURL: cfg.Post.BaseURL,
		store:   store,
		posts: post.Options{
			Title:   cfg.Post.Title,
			Preview: cfg.Post.Preview,
		},
		pitBoss: pitBoss,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	this.modRouter = this.authRouter.NewRoute().Subrouter()
	this.modRouter.Use(this.moderatorMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	}

	// requires bearer authorization
	{
		r := this.authRouter

		pr := r.PathPrefix("/post/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		pr.Use(this.postMiddleware)

		pr.Methods(http.MethodGet).Path("").Handler(this.getPostUUID())
		pr.Methods(http.MethodGet).Path("/game").Handler(this.getPostUUIDGame())
		pr.Methods(http.MethodPost).Path("/game/choice").Handler(this.postPostUUIDGameChoice())
		pr.Methods(http.MethodPost).Path("/game/reset").Handler(this.postPostUUIDGameReset())
		pr.Methods(http.MethodGet).Path("/ws").Handler(this.getPostUUIDWS())
	}

	// requires moderator access
	// depends on authMiddleware
	{
		r := this.modRouter
		r.Methods(http.MethodPost).Path("/post").Handler(this.postPost())
	}

	return this
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		user, err := jwt.ValidUser(token)
		if err != nil {
			logrus.WithError(err).Debug("invalid token")
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxUserKey, user)
		w.Header().Set("MoneyMaster-UserID", user.ID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// moderatorMiddleware requires authMiddleware to execute first
func (m *Mux) moderatorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !userFromRequest(r).Moderator {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func userFromRequest(r *http.Request) *jwt.User {
	return r.Context().Value(ctxUserKey).(*jwt.User)
}
