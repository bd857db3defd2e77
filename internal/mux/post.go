package mux

import (
	"context"
	"errors"
	"moneymaster-server/pkg/game"
	"moneymaster-server/pkg/post"
	"moneymaster-server/pkg/room"
	"net/http"

	gmux "github.com/gorilla/mux"
)

func (m *Mux) postMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := post.GetByUUID(r.Context(), m.store, gmux.Vars(r)["uuid"])
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		rm, err := m.pitBoss.Room(p)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withRoom(r.Context(), rm)))
	})
}

type postPostPayload struct {
	Subreddit string `json:"subreddit"`
}

type postPostResponse struct {
	Post    *post.Post `json:"post"`
	URL     string     `json:"url"`
	Message string     `json:"message"`
}

func (m *Mux) postPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postPostPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		user := userFromRequest(r)
		p, err := post.Create(r.Context(), m.store, m.posts, payload.Subreddit, user.ID)
		if err != nil {
			var userErr post.UserError
			if errors.As(err, &userErr) {
				writeJSONError(w, http.StatusBadRequest, err)
				return
			}

			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		url := p.URL(m.baseURL)
		w.Header().Set("Location", url)
		writeJSON(w, http.StatusCreated, postPostResponse{
			Post:    p,
			URL:     url,
			Message: post.CreatingMessage,
		})
	}
}

func (m *Mux) getPostUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, roomFromRequest(r).Post())
	}
}

func (m *Mux) getPostUUIDGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := roomFromRequest(r).View(r.Context(), userFromRequest(r).ID)
		writeJSON(w, http.StatusOK, v)
	}
}

type postChoicePayload struct {
	Choice string `json:"choice"`
}

func (m *Mux) postPostUUIDGameChoice() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postChoicePayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		choice, err := game.ChoiceFromString(payload.Choice)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		v := roomFromRequest(r).SubmitChoice(r.Context(), userFromRequest(r).ID, choice)
		writeJSON(w, http.StatusOK, v)
	}
}

func (m *Mux) postPostUUIDGameReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v := roomFromRequest(r).Reset(r.Context(), userFromRequest(r).ID)
		writeJSON(w, http.StatusOK, v)
	}
}

func withRoom(ctx context.Context, rm *room.Room) context.Context {
	return context.WithValue(ctx, ctxRoomKey, rm)
}

// roomFromRequest returns the room of the post loaded by postMiddleware
func roomFromRequest(r *http.Request) *room.Room {
	return r.Context().Value(ctxRoomKey).(*room.Room)
}
