package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/bitesys/registrar/internal/challenge"
	"github.com/bitesys/registrar/internal/registration"
	"github.com/bitesys/registrar/internal/store"
)

// Service wires config, store, challenge client and replay guard into the
// submission controller. Everything is constructed explicitly here so the
// controller stays testable without network access.
type Service struct {
	Config     *Config
	Store      store.RegistrationStore
	Challenge  *challenge.Client
	Guard      *challenge.ReplayGuard
	Controller *registration.Controller
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	regStore, err := NewStore(config.Store.DSN, config.Store.CollectionPath, config.Store.AuthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	client := challenge.NewClient(
		config.Challenge.Endpoint,
		config.Challenge.SiteKey,
		config.ChallengeTimeout(),
	)

	guard, err := challenge.NewReplayGuard(
		config.Replay.Enabled,
		config.Replay.RedisURL,
		config.Replay.KeyTemplate,
		config.ReplayTTL(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init replay guard: %w", err)
	}

	tokens := &challenge.GuardedSource{Client: client, Guard: guard}
	controller := registration.NewController(tokens, regStore, config.Challenge.Action)

	return &Service{
		Config:     config,
		Store:      regStore,
		Challenge:  client,
		Guard:      guard,
		Controller: controller,
	}, nil
}

// WarmChallenge retries the provider handshake until it succeeds or ctx ends.
// Submissions fail with a not-ready message until then.
func (s *Service) WarmChallenge(ctx context.Context) {
	for {
		err := s.Challenge.Init(ctx)
		if err == nil {
			logger.Info.Println("Challenge provider handshake complete")
			return
		}
		logger.Error.Printf("Challenge provider handshake failed, retrying: %v", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
}

// ValidateHeaders gates organizer endpoints behind the configured header set.
func (s *Service) ValidateHeaders(headers map[string][]string) bool {
	for _, required := range s.Config.Server.RequiredHeaders {
		value := headers[http.CanonicalHeaderKey(required.Name)]
		if len(value) == 0 || !strings.EqualFold(value[0], required.Value) {
			return false
		}
	}
	return true
}

func (s *Service) Close() error {
	var errs []error

	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	if err := s.Guard.Close(); err != nil {
		errs = append(errs, fmt.Errorf("replay guard: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}
