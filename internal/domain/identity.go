package domain

import (
	"context"
	"regexp"
)

// Unknown replaces any host attribute that could not be determined.
const Unknown = "unknown"

// TokenLength is the hex length of a SHA-256 digest.
const TokenLength = 64

var tokenPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// MachineIdentity is the tuple of local attributes hashed into a Token.
type MachineIdentity struct {
	User         string
	Architecture string
	OSRelease    string
	OSFamily     string
	Hostname     string
	HomeDir      string
}

// Fields returns the attributes in their fixed serialization order.
func (m MachineIdentity) Fields() []string {
	return []string{m.User, m.Architecture, m.OSRelease, m.OSFamily, m.Hostname, m.HomeDir}
}

// Token is a lowercase hex fingerprint of a MachineIdentity.
type Token string

func (t Token) String() string {
	return string(t)
}

// Valid reports whether t has the shape of a SHA-256 hex digest.
func (t Token) Valid() bool {
	return tokenPattern.MatchString(string(t))
}

// Short returns a log-safe prefix of the token.
func (t Token) Short() string {
	if len(t) <= 12 {
		return string(t)
	}
	return string(t[:12])
}

// HostSource answers one question per host attribute. Each method may fail
// independently of the others.
type HostSource interface {
	Architecture(ctx context.Context) (string, error)
	OSRelease(ctx context.Context) (string, error)
	OSFamily(ctx context.Context) (string, error)
	Hostname(ctx context.Context) (string, error)
	HomeDir(ctx context.Context) (string, error)
}
