package challenge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenReplayed means a token was presented more than once.
var ErrTokenReplayed = errors.New("challenge token already consumed")

// TokenConsumer burns a token on first use and rejects it afterwards.
type TokenConsumer interface {
	Consume(ctx context.Context, token string) error
}

// ReplayGuard enforces the single-use property of attestation tokens. Each
// consumed token is remembered in redis for the token's lifetime; a second
// consume of the same token fails. Disabled guards accept everything.
type ReplayGuard struct {
	enabled     bool
	redis       *redis.Client
	keyTemplate string
	ttl         time.Duration
}

func NewReplayGuard(enabled bool, redisURL, keyTemplate string, ttl time.Duration) (*ReplayGuard, error) {
	if !enabled {
		return &ReplayGuard{enabled: false}, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &ReplayGuard{
		enabled:     true,
		redis:       client,
		keyTemplate: keyTemplate,
		ttl:         ttl,
	}, nil
}

// Consume marks token as used. Returns ErrTokenReplayed if it was consumed
// before and is still within its lifetime.
func (g *ReplayGuard) Consume(ctx context.Context, token string) error {
	if !g.enabled {
		return nil
	}

	key := replayKey(g.keyTemplate, token)
	set, err := g.redis.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), g.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	if !set {
		return ErrTokenReplayed
	}
	return nil
}

func replayKey(template, token string) string {
	return strings.NewReplacer("{token}", token).Replace(template)
}

func (g *ReplayGuard) Close() error {
	if g.redis != nil {
		return g.redis.Close()
	}
	return nil
}

// GuardedSource pairs a token client with a replay guard so every token handed
// to the submission flow is burned on acquisition.
type GuardedSource struct {
	Client *Client
	Guard  TokenConsumer
}

func (s *GuardedSource) Ready() bool {
	return s.Client.Ready()
}

func (s *GuardedSource) AcquireToken(ctx context.Context, action string) (string, error) {
	token, err := s.Client.AcquireToken(ctx, action)
	if err != nil {
		return "", err
	}
	if err := s.Guard.Consume(ctx, token); err != nil {
		return "", err
	}
	return token, nil
}
