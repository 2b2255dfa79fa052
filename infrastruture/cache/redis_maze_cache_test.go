package cache

import (
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	c := NewRedisMazeCache(client, 60)
	id := uuid.MustParse("6f1c6b1e-4f7a-4c55-9d8e-0a1b2c3d4e5f")

	assert.Equal(t, "maze:record:6f1c6b1e-4f7a-4c55-9d8e-0a1b2c3d4e5f", c.mazeKey(id))
	assert.Equal(t, "maze:lock:materialize:abc", c.lockKey("materialize:abc"))
	assert.Equal(t, float64(60), c.ttl.Seconds())
}
