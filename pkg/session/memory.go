package session

import (
	"context"
	"sync"
	"time"

	"github.com/jordanlanch/leadmanager/pkg/domain"
)

// MemoryStore keeps the session in process memory. The terminal client falls
// back to it when Redis is unreachable, so a login lasts for one run only.
type MemoryStore struct {
	mu      sync.RWMutex
	session *Session
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore creates an in-memory store. A zero ttl keeps the session
// until its token expires.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now}
}

// Save stores the session
func (m *MemoryStore) Save(_ context.Context, sess Session) error {
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = m.now()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &sess
	return nil
}

// Load returns the stored session if it has not outlived the ttl
func (m *MemoryStore) Load(context.Context) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session == nil {
		return nil, domain.NewUnauthorizedError()
	}
	if m.ttl > 0 && m.now().Sub(m.session.CreatedAt) >= m.ttl {
		return nil, domain.NewSessionExpiredError()
	}
	sess := *m.session
	return &sess, nil
}

// Clear removes the session
func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

// Token returns the stored bearer token
func (m *MemoryStore) Token(ctx context.Context) (string, error) {
	sess, err := m.Load(ctx)
	if err != nil {
		return "", err
	}
	return tokenFor(sess, m.now())
}
