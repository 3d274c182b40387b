package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound means the unlock session is missing or expired.
var ErrNotFound = errors.New("unlock session not found")

// Session is one authentication window opened by a successful unlock.
type Session struct {
	IssuedAt  int64 `json:"iat"`
	ExpiresAt int64 `json:"exp"`
}

func (s *Session) Remaining() time.Duration {
	return time.Until(time.Unix(s.ExpiresAt, 0))
}

// Store keeps unlock sessions for the duration of the window.
type Store interface {
	Create(ctx context.Context, id string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

func key(id string) string { return fmt.Sprintf("auth:unlock:%s", id) }

// RedisStore keeps sessions in redis with the window as TTL, so expiry
// needs no sweeper.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, id string) (*Session, error) {
	now := time.Now()
	sess := &Session{IssuedAt: now.Unix(), ExpiresAt: now.Add(s.ttl).Unix()}
	b, _ := json.Marshal(sess)
	if err := s.rdb.Set(ctx, key(id), b, s.ttl).Err(); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	b, err := s.rdb.Get(ctx, key(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, key(id)).Err()
}

// MemoryStore is the fallback when no redis is configured (and what tests
// use). Expired entries are dropped on read.
type MemoryStore struct {
	ttl time.Duration

	mu sync.Mutex
	m  map[string]Session
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, m: make(map[string]Session)}
}

func (s *MemoryStore) Create(ctx context.Context, id string) (*Session, error) {
	now := time.Now()
	sess := Session{IssuedAt: now.Unix(), ExpiresAt: now.Add(s.ttl).Unix()}
	s.mu.Lock()
	s.m[id] = sess
	s.mu.Unlock()
	return &sess, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().Unix() >= sess.ExpiresAt {
		delete(s.m, id)
		return nil, ErrNotFound
	}
	return &sess, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()
	return nil
}
