package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"speakup/models"
)

// ErrNoSession is returned when a session token has no live session behind
// it (never stored, expired, or destroyed).
var ErrNoSession = errors.New("session not found")

// SessionTTL is how long a session lives without being destroyed.
const SessionTTL = 24 * time.Hour

// OpenRedisPool initializes a Redis connection pool.
func OpenRedisPool(dsn string) *redis.Client {
	opt, err := redis.ParseURL(dsn)
	if err != nil {
		log.Fatalf("Failed to parse Redis DSN: %v", err)
	}

	opt.PoolSize = 100
	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err = client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to ping redis db 0: %v", err)
	}

	return client
}

// SessionManager stores sessions in Redis, one hash per session token plus
// a per-user index set so an account deletion can destroy every session at
// once.
type SessionManager struct {
	client *redis.Client
}

func NewSessionManager(client *redis.Client) *SessionManager {
	return &SessionManager{client: client}
}

func sessionKey(token string) string {
	return "session:" + token
}

func userSessionsKey(username string) string {
	return "user_sessions:" + username
}

// Store saves a session in Redis with the standard TTL.
func (m *SessionManager) Store(ctx context.Context, session models.Session) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sessionMap := map[string]any{
		"username":      session.Username,
		"created_at":    session.CreatedAt,
		"expires_at":    session.ExpiresAt,
		"last_activity": session.LastActivity,
		"user_agent":    session.UserAgent,
		"ip_address":    session.IPAddress,
	}

	key := sessionKey(session.SessionToken)
	if err := m.client.HSet(ctx, key, sessionMap).Err(); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	if err := m.client.Expire(ctx, key, SessionTTL).Err(); err != nil {
		return fmt.Errorf("setting session TTL: %w", err)
	}

	return m.client.SAdd(ctx, userSessionsKey(session.Username), key).Err()
}

// Username resolves a session token to the logged-in username. Expired or
// unknown tokens yield ErrNoSession.
func (m *SessionManager) Username(ctx context.Context, token string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := m.client.HGetAll(ctx, sessionKey(token)).Result()
	if err != nil {
		return "", fmt.Errorf("fetching session: %w", err)
	}
	if len(data) == 0 {
		return "", ErrNoSession
	}

	expiresAt, err := time.Parse(time.RFC3339, data["expires_at"])
	if err != nil || !time.Now().Before(expiresAt) {
		return "", ErrNoSession
	}

	return data["username"], nil
}

// Destroy removes a single session and its reference in the user index.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	key := sessionKey(token)

	username, err := m.client.HGet(ctx, key, "username").Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNoSession
		}
		return fmt.Errorf("fetching session owner: %w", err)
	}

	if err := m.client.SRem(ctx, userSessionsKey(username), key).Err(); err != nil {
		return fmt.Errorf("removing session from index: %w", err)
	}

	return m.client.Del(ctx, key).Err()
}

// DestroyAll removes every session associated with a user. Used when the
// account itself is deleted.
func (m *SessionManager) DestroyAll(ctx context.Context, username string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	indexKey := userSessionsKey(username)

	sessionKeys, err := m.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return fmt.Errorf("listing user sessions: %w", err)
	}

	if len(sessionKeys) > 0 {
		if err := m.client.Del(ctx, sessionKeys...).Err(); err != nil {
			return fmt.Errorf("deleting user sessions: %w", err)
		}
	}

	return m.client.Del(ctx, indexKey).Err()
}

// Touch updates the last activity timestamp of a session.
func (m *SessionManager) Touch(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return m.client.HSet(ctx, sessionKey(token), "last_activity", time.Now().Format(time.RFC3339)).Err()
}
