// Package cli implements the gatekeeper commands.
package cli

import (
	"log/slog"
	"strings"

	"github.com/qudata/gatekeeper/internal/config"
	"github.com/qudata/gatekeeper/internal/gatekeeper"
)

// maxUsernameTries bounds how often an empty codename is re-prompted.
const maxUsernameTries = 3

// App holds what every command needs.
type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	Gatekeeper *gatekeeper.Gatekeeper
}

// NewApp wires the production gatekeeper from cfg.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		Config:     cfg,
		Logger:     logger,
		Gatekeeper: gatekeeper.New(cfg, logger),
	}
}

// normalizeUsername applies the login prompt's policy: codenames are
// case-insensitive, so they are trimmed and lower-cased before fingerprinting.
func normalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
