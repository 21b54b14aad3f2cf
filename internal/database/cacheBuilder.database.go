package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// CacheBuilder is a small fluent wrapper over valkey get/set/delete with JSON
// struct encoding and a per-operation timeout.
type CacheBuilder struct {
	cache      CacheClient
	key        string
	value      string
	ttl        time.Duration
	ctx        context.Context
	ctxTimeout time.Duration
	err        error
}

func NewCacheBuilder(cache CacheClient, key string) *CacheBuilder {
	return &CacheBuilder{
		cache:      cache,
		key:        key,
		ttl:        time.Hour,
		ctxTimeout: 5 * time.Second,
		ctx:        context.Background(),
	}
}

func (cb *CacheBuilder) WithHash(hash string) *CacheBuilder {
	if hash != "" {
		cb.key = fmt.Sprintf("%s:%s", hash, cb.key)
	}
	return cb
}

func (cb *CacheBuilder) WithStruct(value any) *CacheBuilder {
	bytes, err := json.Marshal(value)
	if err != nil {
		cb.err = fmt.Errorf("failed to marshal value to json: %w", err)
		return cb
	}
	cb.value = string(bytes)
	return cb
}

func (cb *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	cb.ttl = ttl
	return cb
}

func (cb *CacheBuilder) WithContext(ctx context.Context) *CacheBuilder {
	cb.ctx = ctx
	return cb
}

func (cb *CacheBuilder) Set() error {
	if cb.err != nil {
		return cb.err
	}
	if cb.cache == nil {
		return fmt.Errorf("cache client is nil")
	}

	ctx, cancel := cb.timeoutContext()
	defer cancel()

	cmd := cb.cache.B().Set().Key(cb.key).Value(cb.value).Ex(cb.ttl).Build()
	if err := cb.cache.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("failed to set cache key %q: %w", cb.key, err)
	}
	return nil
}

// Get unmarshals the cached value into result. Returns false without error
// when the key is absent.
func (cb *CacheBuilder) Get(result any) (bool, error) {
	if cb.err != nil {
		return false, cb.err
	}
	if cb.cache == nil {
		return false, fmt.Errorf("cache client is nil")
	}

	ctx, cancel := cb.timeoutContext()
	defer cancel()

	resp := cb.cache.Do(ctx, cb.cache.B().Get().Key(cb.key).Build())
	if err := resp.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache key %q: %w", cb.key, err)
	}

	raw, err := resp.AsBytes()
	if err != nil {
		return false, fmt.Errorf("failed to read cache key %q: %w", cb.key, err)
	}

	if err := json.Unmarshal(raw, result); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache key %q: %w", cb.key, err)
	}
	return true, nil
}

func (cb *CacheBuilder) Delete() error {
	if cb.err != nil {
		return cb.err
	}
	if cb.cache == nil {
		return fmt.Errorf("cache client is nil")
	}

	ctx, cancel := cb.timeoutContext()
	defer cancel()

	if err := cb.cache.Do(ctx, cb.cache.B().Del().Key(cb.key).Build()).Error(); err != nil {
		return fmt.Errorf("failed to delete cache key %q: %w", cb.key, err)
	}
	return nil
}

func (cb *CacheBuilder) timeoutContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(cb.ctx, cb.ctxTimeout)
}
