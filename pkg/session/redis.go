package session

import (
	"context"
	"errors"
	"time"

	"github.com/jordanlanch/leadmanager/pkg/cache"
	"github.com/jordanlanch/leadmanager/pkg/domain"
)

// RedisStore keeps the session in Redis under a single key
type RedisStore struct {
	cache *cache.Client
	key   string
	now   func() time.Time
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(c *cache.Client, key string) *RedisStore {
	return &RedisStore{cache: c, key: key, now: time.Now}
}

// Save stores the session. It expires with the token when the token carries an exp claim.
func (s *RedisStore) Save(ctx context.Context, sess Session) error {
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = s.now()
	}
	var ttl time.Duration
	if exp, ok := ExpiresAt(sess.Token); ok {
		ttl = exp.Sub(s.now())
		if ttl <= 0 {
			return domain.NewSessionExpiredError()
		}
	}
	return s.cache.SetJSON(ctx, s.key, sess, ttl)
}

// Load returns the stored session, or UNAUTHORIZED when there is none
func (s *RedisStore) Load(ctx context.Context) (*Session, error) {
	var sess Session
	if err := s.cache.GetJSON(ctx, s.key, &sess); err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return nil, domain.NewUnauthorizedError()
		}
		return nil, err
	}
	return &sess, nil
}

// Clear removes the stored session
func (s *RedisStore) Clear(ctx context.Context) error {
	return s.cache.Delete(ctx, s.key)
}

// Token returns the stored bearer token
func (s *RedisStore) Token(ctx context.Context) (string, error) {
	sess, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	return tokenFor(sess, s.now())
}
