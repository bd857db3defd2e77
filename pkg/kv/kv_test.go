package kv

import (
	"context"
	"moneymaster-server/internal/util"
	"moneymaster-server/pkg/db"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var cbg = context.Background()

func TestKeys(t *testing.T) {
	a := assert.New(t)
	a.Equal("highScore", HighScoreKey)
	a.Equal("earnings:t2_abc", EarningsKey("t2_abc"))
	a.Equal("post:1234", PostKey("1234"))
}

func TestMemory(t *testing.T) {
	testStore(t, NewMemory())
}

func TestMemory_concurrent(t *testing.T) {
	m := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.Set(cbg, HighScoreKey, "1")
			_, _ = m.Get(cbg, HighScoreKey)
		}()
	}
	wg.Wait()

	val, err := m.Get(cbg, HighScoreKey)
	assert.NoError(t, err)
	assert.Equal(t, "1", val)
}

func TestSQLite(t *testing.T) {
	s, err := NewSQLite(filepath.Join(t.TempDir(), "kv.db"))
	if !assert.NoError(t, err) {
		return
	}
	defer s.Close()

	testStore(t, s)
}

func TestSQLite_reopen(t *testing.T) {
	a := assert.New(t)
	path := filepath.Join(t.TempDir(), "kv.db")

	s, err := NewSQLite(path)
	a.NoError(err)
	a.NoError(s.Set(cbg, HighScoreKey, "42.5"))
	a.NoError(s.Close())

	s, err = NewSQLite(path)
	a.NoError(err)
	defer s.Close()

	val, err := s.Get(cbg, HighScoreKey)
	a.NoError(err)
	a.Equal("42.5", val)
}

func TestPostgres(t *testing.T) {
	dsn := os.Getenv("MM_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("MM_TEST_PG_DSN not set")
	}

	dbh, err := db.Open(dsn)
	if !assert.NoError(t, err) {
		return
	}
	defer dbh.Close()

	if !assert.NoError(t, db.MigrateInstance(dbh, "../../sql")) {
		return
	}

	testStore(t, NewPostgres(dbh))
}

func TestOpen(t *testing.T) {
	a := assert.New(t)

	unset := util.SetEnv("MM_STORE_DRIVER", "bogus")
	defer unset()
	unsetFile := util.SetEnv("MM_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer unsetFile()

	s, err := openWithReload()
	a.Nil(s)
	a.EqualError(err, "unknown store driver: bogus")

	_ = os.Setenv("MM_STORE_DRIVER", "memory")
	s, err = openWithReload()
	a.NoError(err)
	a.IsType(&Memory{}, s)

	_ = os.Setenv("MM_STORE_DRIVER", "sqlite")
	unsetPath := util.SetEnv("MM_STORE_SQLITE_PATH", filepath.Join(t.TempDir(), "open.db"))
	defer unsetPath()
	s, err = openWithReload()
	a.NoError(err)
	a.IsType(&SQL{}, s)
	a.NoError(s.Close())
}

func testStore(t *testing.T, s Store) {
	t.Helper()
	a := assert.New(t)

	key := EarningsKey(util.RandomUserID())
	val, err := s.Get(cbg, key)
	a.Equal(ErrNotFound, err)
	a.Equal("", val)

	a.NoError(s.Set(cbg, key, "12.5"))
	val, err = s.Get(cbg, key)
	a.NoError(err)
	a.Equal("12.5", val)

	// overwrite
	a.NoError(s.Set(cbg, key, "-3"))
	val, err = s.Get(cbg, key)
	a.NoError(err)
	a.Equal("-3", val)

	// keys are independent
	other := EarningsKey(util.RandomUserID())
	_, err = s.Get(cbg, other)
	a.Equal(ErrNotFound, err)
}
