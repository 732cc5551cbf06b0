// Package gatekeeper runs one authentication attempt: fingerprint the host,
// fetch the allow-list, test membership.
package gatekeeper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/qudata/gatekeeper/internal/allowlist"
	"github.com/qudata/gatekeeper/internal/config"
	"github.com/qudata/gatekeeper/internal/domain"
	"github.com/qudata/gatekeeper/internal/system"
)

// Gatekeeper composes the fingerprint generator and the allow-list source.
type Gatekeeper struct {
	tokens domain.TokenGenerator
	list   domain.AllowListSource
	logger *slog.Logger
}

// New wires the host probe and the HTTP allow-list client from cfg.
func New(cfg *config.Config, logger *slog.Logger) *Gatekeeper {
	gen := system.NewGenerator(system.NewProbe(), cfg.Scheme, logger)
	client := allowlist.NewClient(allowlist.Config{
		URL:        cfg.AllowListURL,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Strict:     cfg.StrictTokens,
	}, logger)
	return NewWith(gen, client, logger)
}

// NewWith builds a Gatekeeper from explicit collaborators.
func NewWith(tokens domain.TokenGenerator, list domain.AllowListSource, logger *slog.Logger) *Gatekeeper {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gatekeeper{tokens: tokens, list: list, logger: logger}
}

// Token returns the fingerprint for username without contacting the network.
func (g *Gatekeeper) Token(ctx context.Context, username string) (domain.Token, error) {
	return g.tokens.Generate(ctx, username)
}

// Authenticate decides whether username on this host may proceed.
//
// Invalid input returns the *domain.InvalidInputError and no decision. A
// failed fetch returns a NetworkFailed decision together with the
// *domain.NetworkUnavailableError. Otherwise the decision is Granted or
// Denied and the error is nil.
func (g *Gatekeeper) Authenticate(ctx context.Context, username string) (*domain.Decision, error) {
	decision := &domain.Decision{
		SessionID: uuid.NewString(),
		Username:  username,
	}
	log := g.logger.With("session", decision.SessionID)

	token, err := g.tokens.Generate(ctx, username)
	if err != nil {
		return nil, err
	}
	decision.Token = token
	log.Info("fingerprint generated", "token_prefix", token.Short())

	list, err := g.list.Fetch(ctx)
	if err != nil {
		decision.State = domain.StateNetworkFailed
		log.Error("allow-list fetch failed", "err", err)

		var unavailable *domain.NetworkUnavailableError
		if !errors.As(err, &unavailable) {
			err = &domain.NetworkUnavailableError{Err: err}
		}
		return decision, fmt.Errorf("authenticate: %w", err)
	}
	decision.ListSize = len(list)

	if allowlist.IsAuthorized(token, list) {
		decision.State = domain.StateGranted
	} else {
		decision.State = domain.StateDenied
	}
	log.Info("authentication decided", "state", decision.State, "tokens", decision.ListSize)
	return decision, nil
}
