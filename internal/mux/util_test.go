package mux

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"moneymaster-server/internal/jwt"
	"moneymaster-server/pkg/post"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var cbg = context.Background()

func Test_writeMaybeNotFoundError(t *testing.T) {
	a := assert.New(t)

	w := httptest.NewRecorder()
	writeMaybeNotFoundError(w, fmt.Errorf("lookup: %w", post.ErrNotFound))
	a.Equal(http.StatusNotFound, w.Code)
	a.JSONEq(`{"message":"Not Found","statusCode":404}`, w.Body.String())

	w = httptest.NewRecorder()
	writeMaybeNotFoundError(w, errors.New("connection refused"))
	a.Equal(http.StatusInternalServerError, w.Code)
	a.JSONEq(`{"message":"Internal Server Error","statusCode":500}`, w.Body.String())
}

func Test_writeJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSONError(w, http.StatusBadRequest, errors.New("bad input"))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"bad input","statusCode":400}`, w.Body.String())
}

func Test_decodeRequest(t *testing.T) {
	a := assert.New(t)

	var payload postChoicePayload
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"choice":"first"}`))
	w := httptest.NewRecorder()
	a.False(decodeRequest(w, r, &payload))
	a.Equal(http.StatusUnsupportedMediaType, w.Code)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"choice":`))
	r.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	a.False(decodeRequest(w, r, &payload))
	a.Equal(http.StatusBadRequest, w.Code)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"choice":"first"}`))
	r.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	a.True(decodeRequest(w, r, &payload))
	a.Equal("first", payload.Choice)
}

func setupJWT() {
	if err := jwt.LoadKeysFromFiles("testdata/public.pem", "testdata/private.key"); err != nil {
		panic(err)
	}
}

func userToken(t *testing.T, userID string, moderator bool) string {
	t.Helper()
	token, err := jwt.Sign(userID, moderator)
	if err != nil {
		t.Fatal(err)
	}

	return token
}

func assertDo(t *testing.T, req *http.Request, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	if len(signedJWT) > 0 {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", signedJWT[0]))
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Error(err)
		return nil
	}
	defer resp.Body.Close()

	if statusCode != resp.StatusCode {
		b, _ := io.ReadAll(resp.Body)
		t.Log(string(b))
		assert.Equal(t, statusCode, resp.StatusCode)
		return nil
	}

	if respObj != nil {
		if err := json.NewDecoder(resp.Body).Decode(respObj); err != nil {
			t.Error(err)
			return nil
		}
	}

	return resp
}

func assertGetWithResp(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	if err != nil {
		t.Error(err)
		return nil
	}

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertGet(t *testing.T, ts *httptest.Server, path string, respObj interface{}, statusCode int, signedJWT ...string) {
	t.Helper()
	_ = assertGetWithResp(t, ts, path, respObj, statusCode, signedJWT...)
}

func assertPostWithResp(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, signedJWT ...string) *http.Response {
	t.Helper()

	var body io.Reader
	switch val := payload.(type) {
	case string:
		body = strings.NewReader(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			t.Error(err)
			return nil
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+path, body)
	if err != nil {
		t.Error(err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	return assertDo(t, req, respObj, statusCode, signedJWT...)
}

func assertPost(t *testing.T, ts *httptest.Server, path string, payload interface{}, respObj interface{}, statusCode int, signedJWT ...string) {
	t.Helper()
	_ = assertPostWithResp(t, ts, path, payload, respObj, statusCode, signedJWT...)
}
