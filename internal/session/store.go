// Package session keeps operator sessions and their sealed Flo API tokens.
package session

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"

	"github.com/flo-mobility/admin-console/internal/domain"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Backend persists opaque session records with a TTL.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const redisKeyPrefix = "flo-admin:session:"

// RedisBackend stores sessions in Redis.
type RedisBackend struct {
	client *redis.Client
}

// NewRedisBackend wraps a connected client.
func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := b.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.client.Set(ctx, redisKeyPrefix+key, value, ttl).Err()
}

func (b *RedisBackend) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, redisKeyPrefix+k)
	}
	if len(full) == 0 {
		return nil
	}
	return b.client.Del(ctx, full...).Err()
}

type record struct {
	ID          string    `json:"id"`
	OperatorID  string    `json:"operator_id"`
	Email       string    `json:"email"`
	SealedToken []byte    `json:"sealed_token"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Manager creates, loads and revokes sessions.
type Manager struct {
	backend Backend
	sealer  *Sealer
	ttl     time.Duration
	now     func() time.Time
}

// NewManager wires a session manager.
func NewManager(backend Backend, sealer *Sealer, ttl time.Duration) *Manager {
	return &Manager{backend: backend, sealer: sealer, ttl: ttl, now: time.Now}
}

// TTL reports how long new sessions live.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Create starts a session for an operator who completed OTP login.
func (m *Manager) Create(ctx context.Context, operatorID, email, upstreamToken string) (*domain.Session, error) {
	now := m.now().UTC()
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}
	sess := &domain.Session{
		ID:            id.String(),
		OperatorID:    operatorID,
		Email:         email,
		UpstreamToken: upstreamToken,
		CreatedAt:     now,
		ExpiresAt:     now.Add(m.ttl),
	}

	sealed, err := m.sealer.Seal(sess.ID, []byte(upstreamToken))
	if err != nil {
		return nil, fmt.Errorf("seal upstream token: %w", err)
	}
	data, err := json.Marshal(record{
		ID:          sess.ID,
		OperatorID:  operatorID,
		Email:       email,
		SealedToken: sealed,
		CreatedAt:   sess.CreatedAt,
		ExpiresAt:   sess.ExpiresAt,
	})
	if err != nil {
		return nil, err
	}
	if err := m.backend.Set(ctx, sess.ID, data, m.ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Get loads a live session.
func (m *Manager) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, ok, err := m.backend.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, ErrNotFound
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if !m.now().Before(rec.ExpiresAt) {
		_ = m.backend.Delete(ctx, id)
		return nil, ErrNotFound
	}
	token, err := m.sealer.Open(rec.ID, rec.SealedToken)
	if err != nil {
		// Sealed under a rotated key or tampered with; the session is unusable.
		_ = m.backend.Delete(ctx, id)
		return nil, ErrNotFound
	}
	return &domain.Session{
		ID:            rec.ID,
		OperatorID:    rec.OperatorID,
		Email:         rec.Email,
		UpstreamToken: string(token),
		CreatedAt:     rec.CreatedAt,
		ExpiresAt:     rec.ExpiresAt,
	}, nil
}

// Revoke ends a session.
func (m *Manager) Revoke(ctx context.Context, id string) error {
	return m.backend.Delete(ctx, id)
}
