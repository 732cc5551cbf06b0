package gatekeeper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qudata/gatekeeper/internal/allowlist"
	"github.com/qudata/gatekeeper/internal/config"
	"github.com/qudata/gatekeeper/internal/domain"
	"github.com/qudata/gatekeeper/internal/system"
)

type staticList struct {
	list  domain.AllowList
	err   error
	calls int
}

func (s *staticList) Fetch(context.Context) (domain.AllowList, error) {
	s.calls++
	return s.list, s.err
}

func testGenerator() *system.Generator {
	return system.NewGenerator(&system.StaticSource{
		Arch:    "x86_64",
		Release: "6.8.0",
		Family:  "Linux",
		Host:    "workstation",
		Home:    "/home/alice",
	}, config.SchemeV2, nil)
}

func TestAuthenticate_Granted(t *testing.T) {
	t.Parallel()
	gen := testGenerator()
	token, err := gen.Generate(context.Background(), "alice")
	require.NoError(t, err)

	gk := NewWith(gen, &staticList{list: domain.AllowList{token}}, nil)
	decision, err := gk.Authenticate(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, domain.StateGranted, decision.State)
	assert.True(t, decision.Granted())
	assert.Equal(t, token, decision.Token)
	assert.Equal(t, 1, decision.ListSize)
	_, err = uuid.Parse(decision.SessionID)
	assert.NoError(t, err)
}

func TestAuthenticate_Denied(t *testing.T) {
	t.Parallel()
	gk := NewWith(testGenerator(), &staticList{list: domain.AllowList{"someone-else"}}, nil)

	decision, err := gk.Authenticate(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.StateDenied, decision.State)
	assert.False(t, decision.Granted())
	assert.True(t, decision.Token.Valid())
}

func TestAuthenticate_EmptyListDenies(t *testing.T) {
	t.Parallel()
	gk := NewWith(testGenerator(), &staticList{}, nil)

	decision, err := gk.Authenticate(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.StateDenied, decision.State)
}

func TestAuthenticate_NetworkFailureNeverGrants(t *testing.T) {
	t.Parallel()
	src := &staticList{
		list: domain.AllowList{"would-allow-anything"},
		err:  &domain.NetworkUnavailableError{URL: "http://x", Attempts: 3, Err: errors.New("boom")},
	}
	gk := NewWith(testGenerator(), src, nil)

	decision, err := gk.Authenticate(context.Background(), "alice")
	require.Error(t, err)
	var unavailable *domain.NetworkUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 3, unavailable.Attempts)

	require.NotNil(t, decision)
	assert.Equal(t, domain.StateNetworkFailed, decision.State)
	assert.False(t, decision.Granted())
	assert.True(t, decision.Token.Valid(), "token is still shown for manual approval")
}

func TestAuthenticate_UntypedFetchErrorIsWrapped(t *testing.T) {
	t.Parallel()
	gk := NewWith(testGenerator(), &staticList{err: errors.New("raw transport failure")}, nil)

	_, err := gk.Authenticate(context.Background(), "alice")
	var unavailable *domain.NetworkUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestAuthenticate_InvalidUsernameSkipsFetch(t *testing.T) {
	t.Parallel()
	src := &staticList{}
	gk := NewWith(testGenerator(), src, nil)

	decision, err := gk.Authenticate(context.Background(), "  ")
	assert.Nil(t, decision)
	var invalid *domain.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Zero(t, src.calls)
}

func TestAuthenticate_SessionIDsAreFresh(t *testing.T) {
	t.Parallel()
	gk := NewWith(testGenerator(), &staticList{}, nil)

	first, err := gk.Authenticate(context.Background(), "alice")
	require.NoError(t, err)
	second, err := gk.Authenticate(context.Background(), "alice")
	require.NoError(t, err)

	assert.NotEqual(t, first.SessionID, second.SessionID)
	assert.Equal(t, first.Token, second.Token)
}

func TestAuthenticate_RoundTripOverHTTP(t *testing.T) {
	t.Parallel()
	gen := testGenerator()
	token, err := gen.Generate(context.Background(), "alice")
	require.NoError(t, err)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("# not a token\n" + token.String() + "\n"))
	}))
	t.Cleanup(srv.Close)

	client := allowlist.NewClient(allowlist.Config{
		URL:        srv.URL,
		Timeout:    time.Second,
		MaxRetries: 3,
		Strict:     true,
	}, nil)

	decision, err := NewWith(gen, client, nil).Authenticate(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.StateGranted, decision.State)
	assert.Equal(t, 1, decision.ListSize)
	assert.EqualValues(t, 1, hits.Load())
}

func TestNew_WiresFromConfig(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.AllowListURL = srv.URL
	cfg.RetryDelay = 0
	cfg.MaxRetries = 2

	decision, err := New(cfg, nil).Authenticate(context.Background(), "alice")
	var unavailable *domain.NetworkUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 2, unavailable.Attempts)
	assert.Equal(t, domain.StateNetworkFailed, decision.State)
}
