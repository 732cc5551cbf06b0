package system

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/qudata/gatekeeper/internal/config"
	"github.com/qudata/gatekeeper/internal/domain"
)

// Attribute names used in logs and HostQueryError.
const (
	AttrArchitecture = "architecture"
	AttrOSRelease    = "os_release"
	AttrOSFamily     = "os_family"
	AttrHostname     = "hostname"
	AttrHomeDir      = "home_dir"
)

var errEmptyAttribute = errors.New("empty value")

// Generator derives tokens from a username and the attributes of a HostSource.
type Generator struct {
	source domain.HostSource
	scheme string
	logger *slog.Logger
}

// NewGenerator creates a generator. An empty scheme means config.SchemeV2.
func NewGenerator(source domain.HostSource, scheme string, logger *slog.Logger) *Generator {
	if scheme == "" {
		scheme = config.SchemeV2
	}
	return &Generator{source: source, scheme: scheme, logger: logger}
}

// Generate returns the token for username on this host. The only error it
// returns is *domain.InvalidInputError; attribute failures are absorbed.
func (g *Generator) Generate(ctx context.Context, username string) (domain.Token, error) {
	id, err := g.Identity(ctx, username)
	if err != nil {
		return "", err
	}
	return g.Token(id), nil
}

// Identity collects the MachineIdentity for username. The username is used
// verbatim: no trimming or case folding happens here.
func (g *Generator) Identity(ctx context.Context, username string) (domain.MachineIdentity, error) {
	if strings.TrimSpace(username) == "" {
		return domain.MachineIdentity{}, &domain.InvalidInputError{Field: "username", Reason: "must not be empty"}
	}

	return domain.MachineIdentity{
		User:         username,
		Architecture: g.query(ctx, AttrArchitecture, g.source.Architecture),
		OSRelease:    g.query(ctx, AttrOSRelease, g.source.OSRelease),
		OSFamily:     g.query(ctx, AttrOSFamily, g.source.OSFamily),
		Hostname:     g.query(ctx, AttrHostname, g.source.Hostname),
		HomeDir:      g.query(ctx, AttrHomeDir, g.source.HomeDir),
	}, nil
}

// Token hashes id with the generator's serialization scheme.
func (g *Generator) Token(id domain.MachineIdentity) domain.Token {
	sum := sha256.Sum256([]byte(Serialize(id, g.scheme)))
	return domain.Token(hex.EncodeToString(sum[:]))
}

// Serialize renders id as the string that gets hashed.
//
// SchemeV2 length-prefixes every field so no two identities share an
// encoding. SchemeLegacy joins fields with a bare hyphen; it is ambiguous
// ("a-b","c" vs "a","b-c") and exists only to match previously issued tokens.
func Serialize(id domain.MachineIdentity, scheme string) string {
	fields := id.Fields()
	if scheme == config.SchemeLegacy {
		return strings.Join(fields, "-")
	}

	var b strings.Builder
	for i, f := range fields {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(strconv.Itoa(len(f)))
		b.WriteByte(':')
		b.WriteString(f)
	}
	return b.String()
}

func (g *Generator) query(ctx context.Context, attr string, fn func(context.Context) (string, error)) string {
	value, err := fn(ctx)
	if err == nil && strings.TrimSpace(value) != "" {
		return value
	}

	qerr := &domain.HostQueryError{Attribute: attr, Err: err}
	if err == nil {
		qerr.Err = errEmptyAttribute
	}
	if g.logger != nil {
		g.logger.Debug("host attribute unavailable, using sentinel", "attribute", attr, "err", qerr)
	}
	return domain.Unknown
}
