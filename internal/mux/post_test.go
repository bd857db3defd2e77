package mux

import (
	"fmt"
	"moneymaster-server/internal/util"
	"moneymaster-server/pkg/kv"
	"moneymaster-server/pkg/post"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// viewResponse mirrors room.View on the wire
type viewResponse struct {
	State struct {
		Round          int             `json:"round"`
		Rounds         int             `json:"rounds"`
		Earnings       decimal.Decimal `json:"earnings"`
		CorrectChoices int             `json:"correctChoices"`
		GameOver       bool            `json:"gameOver"`
		HighScore      decimal.Decimal `json:"highScore"`
		Pair           struct {
			First  optionResponse `json:"first"`
			Second optionResponse `json:"second"`
		} `json:"pair"`
	} `json:"state"`
	LastOutcome struct {
		Kind  string          `json:"kind"`
		Value decimal.Decimal `json:"value"`
	} `json:"lastOutcome"`
	Earnings   string `json:"earningsDisplay"`
	HighScore  string `json:"highScoreDisplay"`
	FinalScore string `json:"finalScore"`
}

type optionResponse struct {
	Kind    string          `json:"kind"`
	Display string          `json:"display"`
	Value   decimal.Decimal `json:"value"`
}

// better returns the choice that earns money this round
func (v viewResponse) better() string {
	if v.State.Pair.Second.Value.GreaterThan(v.State.Pair.First.Value) {
		return "second"
	}

	return "first"
}

func (v viewResponse) worse() string {
	if v.better() == "first" {
		return "second"
	}

	return "first"
}

func newTestPost(t *testing.T, store kv.Store) *post.Post {
	t.Helper()
	p, err := post.Create(cbg, store, post.Options{Title: "Money Master Challenge 💰"}, "r/testing", "t2_mod")
	if err != nil {
		t.Fatal(err)
	}

	return p
}

func Test_postPost(t *testing.T) {
	setupJWT()
	store := kv.NewMemory()
	ts := httptest.NewServer(NewMux("", store))
	defer ts.Close()

	// verify it requires moderator access
	assertPost(t, ts, "/post", postPostPayload{Subreddit: "testing"}, nil, 403, userToken(t, "t2_player", false))

	mod := userToken(t, "t2_mod", true)
	var respObj postPostResponse
	resp := assertPostWithResp(t, ts, "/post", postPostPayload{Subreddit: "r/testing"}, &respObj, 201, mod)
	if !assert.NotNil(t, resp) {
		return
	}

	assert.Equal(t, post.CreatingMessage, respObj.Message)
	assert.Equal(t, "testing", respObj.Post.Subreddit)
	assert.Equal(t, "Money Master Challenge 💰", respObj.Post.Title)
	assert.Equal(t, "t2_mod", respObj.Post.CreatedBy)
	assert.True(t, strings.HasSuffix(respObj.URL, "/post/"+respObj.Post.UUID))
	assert.Equal(t, respObj.URL, resp.Header.Get("Location"))

	p, err := post.GetByUUID(cbg, store, respObj.Post.UUID)
	assert.NoError(t, err)
	assert.Equal(t, "testing", p.Subreddit)

	// require a subreddit
	var errObj errorResponse
	assertPost(t, ts, "/post", postPostPayload{Subreddit: " "}, &errObj, 400, mod)
	assert.Equal(t, "subreddit is required", errObj.Message)
}

func Test_getPostUUID(t *testing.T) {
	setupJWT()
	store := kv.NewMemory()
	ts := httptest.NewServer(NewMux("", store))
	defer ts.Close()

	p := newTestPost(t, store)
	j := userToken(t, "t2_player", false)

	var respObj post.Post
	assertGet(t, ts, "/post/"+p.UUID, &respObj, 200, j)
	assert.Equal(t, p.UUID, respObj.UUID)
	assert.Equal(t, "testing", respObj.Subreddit)

	var errObj errorResponse
	assertGet(t, ts, "/post/00000000-0000-0000-0000-000000000000", &errObj, 404, j)
	assert.Equal(t, "Not Found", errObj.Message)

	// unauthorized
	assertGet(t, ts, "/post/"+p.UUID, nil, 401)
}

func Test_playGame(t *testing.T) {
	setupJWT()
	a := assert.New(t)
	store := kv.NewMemory()
	ts := httptest.NewServer(NewMux("", store))
	defer ts.Close()

	p := newTestPost(t, store)
	j := userToken(t, "t2_player", false)
	base := fmt.Sprintf("/post/%s/game", p.UUID)

	var v viewResponse
	assertGet(t, ts, base, &v, 200, j)
	a.Equal(1, v.State.Round)
	a.Equal(10, v.State.Rounds)
	a.Equal("none", v.LastOutcome.Kind)
	a.Equal("$0.00", v.Earnings)
	a.Equal("0/10", v.FinalScore)
	a.NotEmpty(v.State.Pair.First.Display)

	// bad choices never reach the game
	var errObj errorResponse
	assertPost(t, ts, base+"/choice", postChoicePayload{Choice: "third"}, &errObj, 400, j)
	a.Equal("invalid choice: third", errObj.Message)

	earnings := decimal.Zero
	for round := 1; round <= 10; round++ {
		choice := v.better()
		if round%2 == 0 {
			choice = v.worse()
		} else {
			earnings = earnings.Add(decimal.Max(v.State.Pair.First.Value, v.State.Pair.Second.Value))
		}

		var next viewResponse
		assertPost(t, ts, base+"/choice", postChoicePayload{Choice: choice}, &next, 200, j)
		if round%2 == 0 {
			a.Equal("incorrect", next.LastOutcome.Kind)
		} else {
			a.Equal("correct", next.LastOutcome.Kind)
		}

		v = next
	}

	a.True(v.State.GameOver)
	a.Equal(10, v.State.Round)
	a.Equal(5, v.State.CorrectChoices)
	a.Equal("5/10", v.FinalScore)
	a.True(earnings.Equal(v.State.Earnings), "%s != %s", earnings, v.State.Earnings)

	highScore, err := store.Get(cbg, kv.HighScoreKey)
	a.NoError(err)
	a.True(decimal.RequireFromString(highScore).Equal(decimal.Max(earnings, decimal.Zero)))

	userEarnings, err := store.Get(cbg, kv.EarningsKey("t2_player"))
	a.NoError(err)
	a.True(decimal.RequireFromString(userEarnings).Equal(earnings))

	// choices are ignored once the game is over
	var ignored viewResponse
	assertPost(t, ts, base+"/choice", postChoicePayload{Choice: "first"}, &ignored, 200, j)
	a.Equal("ignored", ignored.LastOutcome.Kind)
	a.Equal(5, ignored.State.CorrectChoices)

	var reset viewResponse
	assertPost(t, ts, base+"/reset", nil, &reset, 200, j)
	a.False(reset.State.GameOver)
	a.Equal(1, reset.State.Round)
	a.True(reset.State.Earnings.IsZero())
	a.Equal("none", reset.LastOutcome.Kind)

	// another player has their own game
	var other viewResponse
	assertGet(t, ts, base, &other, 200, userToken(t, util.RandomUserID(), false))
	a.Equal(1, other.State.Round)
	a.True(other.State.HighScore.Equal(decimal.RequireFromString(highScore)))
}
