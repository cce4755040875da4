package database_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/allerfree/backend/config"
	"github.com/pageza/allerfree/backend/internal/database"
)

func TestNewRedisClient(t *testing.T) {
	srv := miniredis.RunT(t)

	client, err := database.NewRedisClient(&config.Config{RedisURL: "redis://" + srv.Addr() + "/0"}, zap.NewNop())
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, srv.Addr(), client.Options().Addr)
}

func TestNewRedisClientBadURL(t *testing.T) {
	_, err := database.NewRedisClient(&config.Config{RedisURL: "http://nope"}, zap.NewNop())
	assert.Error(t, err)
}
