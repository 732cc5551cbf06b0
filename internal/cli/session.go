package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/qudata/gatekeeper/internal/clierror"
	"github.com/qudata/gatekeeper/internal/domain"
	"github.com/qudata/gatekeeper/internal/ui"
)

var banner = []string{
	"┌─────────────────────────────┐",
	"│         GATEKEEPER          │",
	"└─────────────────────────────┘",
}

// runSession is the login state machine: read a codename, authenticate,
// then either open the menu, show the denial, or fail on the network.
func runSession(ctx context.Context, console *ui.Console, app *App) error {
	console.Banner(banner)
	console.Println()
	console.Progress("Initializing secure interface...")
	console.Notice("Verifying system integrity...")

	username, err := readUsername(console)
	if err != nil {
		return err
	}

	console.Notice("Generating device fingerprint for %s...", console.Highlight(username))
	console.Notice("Authenticating with central server...")

	decision, err := app.Gatekeeper.Authenticate(ctx, username)
	if err != nil {
		cliErr := clierror.From(err)
		if cliErr.Code == clierror.CodeNetworkUnavailable {
			console.Failure("Network error. Access cannot be verified.")
		}
		return cliErr
	}

	switch decision.State {
	case domain.StateGranted:
		console.Success("Token database loaded (%d tokens)", decision.ListSize)
		console.Success("ACCESS GRANTED")
		console.Success("Welcome back, %s", strings.ToUpper(username))
		console.Success("Secure session established")
		return runMenu(ctx, console, decision)
	default:
		return showDenied(console, decision)
	}
}

func readUsername(console *ui.Console) (string, error) {
	for range maxUsernameTries {
		line, err := console.Prompt("Enter your codename: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return "", clierror.InternalError(err)
		}
		if name := normalizeUsername(line); name != "" {
			return name, nil
		}
		console.Failure("Username cannot be empty!")
	}
	return "", clierror.InvalidInput(&domain.InvalidInputError{Field: "username", Reason: "no codename entered"})
}

// showDenied prints the token, and nothing else about the host, so the
// operator can forward it for approval.
func showDenied(console *ui.Console, decision *domain.Decision) error {
	console.Println()
	console.Headline("ACCESS DENIED - YOU ARE NOT AUTHORIZED")
	console.Denied("Token not authorized. Contact the author for approval.")
	console.Println()
	console.Notice("Token: %s", console.Highlight(decision.Token.String()))
	console.Println()

	if _, err := console.Prompt("Press Enter to acknowledge: "); err != nil && !errors.Is(err, io.EOF) {
		return clierror.InternalError(err)
	}
	return nil
}
