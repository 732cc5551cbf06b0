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

type menuItem struct {
	key   string
	label string
}

var menuItems = []menuItem{
	{"1", "Start Security Assessment"},
	{"2", "System Scanner"},
	{"3", "Network Tools"},
	{"4", "Token Manager"},
	{"5", "Exit"},
}

// runMenu loops until the operator exits or input ends.
func runMenu(ctx context.Context, console *ui.Console, decision *domain.Decision) error {
	for {
		if ctx.Err() != nil {
			return clierror.Interrupted()
		}

		printMenu(console)
		line, err := console.Prompt("Select option (1-5): ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return clierror.InternalError(err)
		}

		switch strings.TrimSpace(line) {
		case "1":
			console.Progress("Launching Security Assessment...")
		case "2":
			console.Progress("System Scanner activated...")
		case "3":
			console.Progress("Network Tools loading...")
		case "4":
			console.Notice("Token: %s", console.Highlight(decision.Token.String()))
		case "5":
			console.Notice("Secure shutdown initiated...")
			return nil
		default:
			console.Failure("Invalid option!")
		}
	}
}

func printMenu(console *ui.Console) {
	rule := strings.Repeat("─", 20)
	console.Println()
	console.Println(console.Highlight(rule + " MAIN MENU " + rule))
	for _, item := range menuItems {
		console.Println(item.key + ". " + item.label)
	}
	console.Println()
}
