package windowstore

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// DefaultKey is the Redis key of the flag.
const DefaultKey = "procurement:ordering-window"

const (
	valueOpen   = "1"
	valueClosed = "0"
)

// toggleScript flips the flag atomically; a missing key counts as ARGV[1].
var toggleScript = redis.NewScript(`
local current = redis.call('GET', KEYS[1])
if not current then
	current = ARGV[1]
end
local flipped = '1'
if current == '1' then
	flipped = '0'
end
redis.call('SET', KEYS[1], flipped)
return flipped
`)

// RedisStore implements ports.WindowStore on a Redis string key. Until the
// first write the flag reads as the configured initial value.
type RedisStore struct {
	rdb     *redis.Client
	key     string
	initial bool
}

// NewRedisStore stores the flag under key, or DefaultKey when key is empty.
// initial is what readers see before anything was written; the key itself is
// not created until the first SetOpen or Toggle.
func NewRedisStore(rdb *redis.Client, key string, initial bool) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	return &RedisStore{rdb: rdb, key: key, initial: initial}
}

// IsOpen reads the key. A missing key reads as the initial value.
func (s *RedisStore) IsOpen(ctx context.Context) (bool, error) {
	val, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return s.initial, nil
	}
	if err != nil {
		return false, err
	}
	return val == valueOpen, nil
}

func (s *RedisStore) SetOpen(ctx context.Context, open bool) error {
	return s.rdb.Set(ctx, s.key, encode(open), 0).Err()
}

// Toggle flips the flag atomically in a Lua script.
func (s *RedisStore) Toggle(ctx context.Context) (bool, error) {
	val, err := toggleScript.Run(ctx, s.rdb, []string{s.key}, encode(s.initial)).Text()
	if err != nil {
		return false, err
	}
	return val == valueOpen, nil
}

func encode(open bool) string {
	if open {
		return valueOpen
	}
	return valueClosed
}
