package setup

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itchan-dev/kvboard/backend/internal/storage/kv"
	"github.com/itchan-dev/kvboard/shared/config"
)

func testConfig(redisURL string) *config.Config {
	return &config.Config{
		Public:  config.Defaults(),
		Private: config.Private{RedisURL: redisURL},
	}
}

func TestSetupDependencies(t *testing.T) {
	mr := miniredis.RunT(t)

	deps, err := SetupDependencies(testConfig("redis://" + mr.Addr()))
	require.NoError(t, err)
	defer deps.Close()

	assert.NotNil(t, deps.Handler)
	assert.NotNil(t, deps.CreateLimiter)
	assert.NoError(t, deps.Storage.Ping(context.Background()))
}

func TestSetupDependencies_UnreachableStore(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := SetupDependencies(testConfig("redis://" + addr))
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	mr := miniredis.RunT(t)
	newStorage := func(cfg *config.Config) *kv.Storage {
		return kv.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), cfg.Public.Store)
	}

	t.Run("unknown id strategy", func(t *testing.T) {
		cfg := testConfig("")
		cfg.Public.Board.IdStrategy = "sequence"

		_, err := Build(newStorage(cfg), cfg)
		assert.Error(t, err)
	})

	t.Run("rate limit disabled", func(t *testing.T) {
		cfg := testConfig("")
		cfg.Public.RateLimit.CreateRPS = 0

		deps, err := Build(newStorage(cfg), cfg)
		require.NoError(t, err)
		defer deps.Close()
		assert.Nil(t, deps.CreateLimiter)
	})

	t.Run("serialized writes and uuid ids", func(t *testing.T) {
		cfg := testConfig("")
		cfg.Public.Store.SerializeWrites = true
		cfg.Public.Board.IdStrategy = "uuid"
		cfg.Public.Board.SanitizeHTML = true

		deps, err := Build(newStorage(cfg), cfg)
		require.NoError(t, err)
		defer deps.Close()
		assert.NotNil(t, deps.Handler)
	})
}
