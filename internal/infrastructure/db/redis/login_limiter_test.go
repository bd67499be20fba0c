package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNewLoginLimiter_Defaults(t *testing.T) {
	l := NewLoginLimiter(redis.NewClient(&redis.Options{Addr: "localhost:0"}), 0, 0)
	assert.Equal(t, defaultMaxAttempts, l.maxAttempts)
	assert.Equal(t, defaultWindow, l.window)

	l = NewLoginLimiter(nil, 3, time.Minute)
	assert.Equal(t, 3, l.maxAttempts)
	assert.Equal(t, time.Minute, l.window)
}

func TestLoginLimiter_KeyIsCaseInsensitive(t *testing.T) {
	l := NewLoginLimiter(nil, 5, time.Minute)
	assert.Equal(t, "login:fail:alice@example.com", l.key("  Alice@Example.COM "))
	assert.Equal(t, l.key("bob@example.com"), l.key("BOB@example.com"))
}

func TestConfig_Options(t *testing.T) {
	opts := Config{Addr: "cache:6379", Password: "pw", DB: 2}.options()
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, 3*time.Second, opts.DialTimeout)
	assert.Equal(t, 3*time.Second, opts.ReadTimeout)

	opts = Config{Addr: "cache:6379", Timeout: time.Second}.options()
	assert.Equal(t, time.Second, opts.WriteTimeout)
}

func TestConnect_UnreachableServer(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}
