package domain

import "context"

// AllowList is the ordered set of tokens permitted past authentication,
// exactly as published by the remote source.
type AllowList []Token

// Contains is an exact, case-sensitive membership test.
func (l AllowList) Contains(t Token) bool {
	for _, candidate := range l {
		if candidate == t {
			return true
		}
	}
	return false
}

// AllowListSource fetches the current allow-list.
type AllowListSource interface {
	Fetch(ctx context.Context) (AllowList, error)
}

// TokenGenerator derives a token for a user on this host.
type TokenGenerator interface {
	Generate(ctx context.Context, username string) (Token, error)
}

// State is the terminal state of one authentication attempt.
type State string

const (
	StateGranted       State = "granted"
	StateDenied        State = "denied"
	StateNetworkFailed State = "network_failed"
)

// Decision is the outcome of one authentication attempt.
type Decision struct {
	SessionID string
	Username  string
	Token     Token
	State     State
	ListSize  int
}

func (d *Decision) Granted() bool {
	return d != nil && d.State == StateGranted
}
