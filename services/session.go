package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side record behind a login cookie.
type Session struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// SessionStore keeps sessions in Redis under opaque generated tokens so that
// identity survives across requests without any in-process state.
type SessionStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{redis: rdb, ttl: ttl}
}

func sessionKey(token string) string {
	return "session:" + token
}

func (s *SessionStore) Create(ctx context.Context, userID uint, username string) (string, error) {
	token, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(Session{UserID: userID, Username: username})
	if err != nil {
		return "", err
	}

	if err := s.redis.Set(ctx, sessionKey(token), data, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *SessionStore) Get(ctx context.Context, token string) (*Session, error) {
	val, err := s.redis.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	} else if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// SetUsername rewrites the username held in an active session, keeping the
// remaining TTL intact.
func (s *SessionStore) SetUsername(ctx context.Context, token, username string) error {
	session, err := s.Get(ctx, token)
	if err != nil {
		return err
	}

	session.Username = username
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, sessionKey(token), data, redis.KeepTTL).Err()
}

func (s *SessionStore) Delete(ctx context.Context, token string) error {
	return s.redis.Del(ctx, sessionKey(token)).Err()
}
