package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gfdmit/kanban/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionCookie = "session_token"

var ErrNoSession = errors.New("auth: no resolvable session")

// Identity resolves the caller behind a request. The services only ever see
// the resolved user id.
type Identity interface {
	CurrentUserID(ctx context.Context, r *http.Request) (string, error)
}

// RedisSessions keeps one hash per session token plus a per-user index of
// live sessions.
type RedisSessions struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessions(conf config.Redis) (*RedisSessions, error) {
	opt, err := redis.ParseURL(conf.DSN)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %v", err)
	}

	opt.MinIdleConns = 2
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %v", err)
	}

	return &RedisSessions{client: client, ttl: conf.SessionTTL}, nil
}

func (s *RedisSessions) CurrentUserID(ctx context.Context, r *http.Request) (string, error) {
	st, err := r.Cookie(sessionCookie)
	if err != nil || st.Value == "" {
		return "", ErrNoSession
	}

	key := "session:" + st.Value
	userID, err := s.client.HGet(ctx, key, "user_id").Result()
	if errors.Is(err, redis.Nil) || userID == "" {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("session lookup: %v", err)
	}

	// Sliding expiration.
	_ = s.client.Expire(ctx, key, s.ttl).Err()

	return userID, nil
}

// Issue creates a session for userID and returns the token to be set as the
// session cookie. Login flows live outside this service; Issue backs seeding,
// operational tooling and tests.
func (s *RedisSessions) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	key := "session:" + token

	fields := map[string]any{
		"user_id":    userID,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.client.HSet(ctx, key, fields).Err(); err != nil {
		return "", err
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return "", err
	}
	if err := s.client.SAdd(ctx, "user_sessions:"+userID, key).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Revoke drops a single session.
func (s *RedisSessions) Revoke(ctx context.Context, token string) error {
	key := "session:" + token
	userID, err := s.client.HGet(ctx, key, "user_id").Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if userID != "" {
		if err := s.client.SRem(ctx, "user_sessions:"+userID, key).Err(); err != nil {
			return err
		}
	}
	return s.client.Del(ctx, key).Err()
}
