package rendercache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Drolfothesgnir/bbcode/bbcode"
	"github.com/Drolfothesgnir/bbcode/util"
	"github.com/redis/go-redis/v9"
)

// RenderPrefix is the key prefix of rendered fragments.
const RenderPrefix = "render:"

// ErrCacheMiss is returned when no fragment is stored under the key or it has expired.
var ErrCacheMiss = errors.New("rendered post not found or expired")

// RenderedPost is a rendered HTML fragment together with the parse warnings
// collected while rendering it.
type RenderedPost struct {
	HTML      string           `json:"html"`
	Warnings  []bbcode.Warning `json:"warnings"`
	CreatedAt time.Time        `json:"created_at"`
}

type Store interface {
	SaveRendered(ctx context.Context, key string, post RenderedPost, ttl time.Duration) error
	GetRendered(ctx context.Context, key string) (*RenderedPost, error)
	DeleteRendered(ctx context.Context, key string) error
	Close() error
}

type RedisStore struct {
	client *redis.Client
}

func NewStore(config *util.Config) Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddress, //  default "localhost:6379"
		Password: "",
		DB:       0,
	})

	return &RedisStore{client: rdb}
}

// Key returns the cache key of input rendered by the tag table with the given fingerprint.
func Key(fingerprint, input string) string {
	h := sha256.New()
	h.Write([]byte(fingerprint))
	h.Write([]byte{0})
	h.Write([]byte(input))

	return RenderPrefix + hex.EncodeToString(h.Sum(nil))
}

func (store *RedisStore) SaveRendered(
	ctx context.Context,
	key string,
	post RenderedPost,
	ttl time.Duration,
) error {
	jsonData, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("failed to serialize rendered post: %w", err)
	}

	return store.client.Set(ctx, key, jsonData, ttl).Err()
}

// GetRendered returns ErrCacheMiss if the key is not found or expired.
func (store *RedisStore) GetRendered(ctx context.Context, key string) (*RenderedPost, error) {
	jsonData, err := store.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get rendered post: %w", err)
	}

	var post RenderedPost
	if err := json.Unmarshal([]byte(jsonData), &post); err != nil {
		return nil, fmt.Errorf("failed to parse rendered post json: %w", err)
	}

	return &post, nil
}

func (store *RedisStore) DeleteRendered(ctx context.Context, key string) error {
	return store.client.Del(ctx, key).Err()
}

func (store *RedisStore) Close() error {
	return store.client.Close()
}
