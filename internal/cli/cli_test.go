package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/qudata/gatekeeper/internal/clierror"
	"github.com/qudata/gatekeeper/internal/config"
	"github.com/qudata/gatekeeper/internal/domain"
	"github.com/qudata/gatekeeper/internal/gatekeeper"
	"github.com/qudata/gatekeeper/internal/system"
)

type fakeList struct {
	list domain.AllowList
	err  error
}

func (f *fakeList) Fetch(context.Context) (domain.AllowList, error) {
	return f.list, f.err
}

func testGenerator() *system.Generator {
	return system.NewGenerator(&system.StaticSource{
		Arch:    "aarch64",
		Release: "5.4.0",
		Family:  "Linux",
		Host:    "localhost",
		Home:    "/home/test",
	}, config.SchemeV2, nil)
}

func tokenFor(t *testing.T, username string) domain.Token {
	t.Helper()
	token, err := testGenerator().Generate(context.Background(), username)
	require.NoError(t, err)
	return token
}

func testApp(list domain.AllowListSource) *App {
	cfg := config.DefaultConfig()
	cfg.NoColor = true
	return &App{
		Config:     cfg,
		Gatekeeper: gatekeeper.NewWith(testGenerator(), list, nil),
	}
}

type result struct {
	out string
	err error
}

func run(app *App, stdin string, args ...string) result {
	cmd := NewRootCmd(app)
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return result{out: out.String(), err: err}
}

func exitCode(err error) int {
	if err == nil {
		return clierror.ExitSuccess
	}
	return clierror.From(err).ExitCode
}

func TestSession_GrantedOpensMenu(t *testing.T) {
	token := tokenFor(t, "alice")
	app := testApp(&fakeList{list: domain.AllowList{token}})

	res := run(app, "  Alice \n9\n1\n4\n5\n")
	require.NoError(t, res.err)

	assert.Contains(t, res.out, "ACCESS GRANTED")
	assert.Contains(t, res.out, "Welcome back, ALICE")
	assert.Contains(t, res.out, "MAIN MENU")
	assert.Contains(t, res.out, "Invalid option!")
	assert.Contains(t, res.out, "Launching Security Assessment...")
	assert.Contains(t, res.out, "[*] Token: "+token.String())
	assert.Contains(t, res.out, "Secure shutdown initiated...")
}

func TestSession_MenuEndsOnEOF(t *testing.T) {
	token := tokenFor(t, "alice")
	app := testApp(&fakeList{list: domain.AllowList{token}})

	res := run(app, "alice\n2\n")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "System Scanner activated...")
}

func TestSession_DeniedShowsOnlyToken(t *testing.T) {
	app := testApp(&fakeList{list: domain.AllowList{tokenFor(t, "someone")}})

	res := run(app, "alice\n\n")
	require.NoError(t, res.err)
	assert.Equal(t, clierror.ExitSuccess, exitCode(res.err))

	assert.Contains(t, res.out, "ACCESS DENIED - YOU ARE NOT AUTHORIZED")
	assert.Contains(t, res.out, "Token: "+tokenFor(t, "alice").String())
	assert.NotContains(t, res.out, "MAIN MENU")
	for _, leaked := range []string{"aarch64", "5.4.0", "localhost", "/home/test"} {
		assert.NotContains(t, res.out, leaked)
	}
}

func TestSession_EmptyUsernameReprompts(t *testing.T) {
	token := tokenFor(t, "alice")
	app := testApp(&fakeList{list: domain.AllowList{token}})

	res := run(app, "\n   \nalice\n5\n")
	require.NoError(t, res.err)
	assert.Equal(t, 2, strings.Count(res.out, "Username cannot be empty!"))
	assert.Contains(t, res.out, "ACCESS GRANTED")
}

func TestSession_UsernameRetriesExhausted(t *testing.T) {
	app := testApp(&fakeList{})

	res := run(app, "\n\n\nalice\n")
	require.Error(t, res.err)
	assert.Equal(t, clierror.ExitInvalidInput, exitCode(res.err))
	assert.NotContains(t, res.out, "ACCESS")
}

func TestSession_NetworkFailureExitsNonZero(t *testing.T) {
	app := testApp(&fakeList{
		list: domain.AllowList{tokenFor(t, "alice")},
		err:  &domain.NetworkUnavailableError{URL: "http://x", Attempts: 3, Err: errors.New("refused")},
	})

	res := run(app, "alice\n")
	require.Error(t, res.err)
	assert.Equal(t, clierror.ExitNetwork, exitCode(res.err))
	assert.Contains(t, res.out, "Network error")
	assert.NotContains(t, res.out, "ACCESS GRANTED")
}

func TestSession_InterruptedFetch(t *testing.T) {
	app := testApp(&fakeList{err: &domain.NetworkUnavailableError{Err: context.Canceled}})

	res := run(app, "alice\n")
	assert.Equal(t, clierror.ExitInterrupted, exitCode(res.err))
}

func TestTokenCmd_Formats(t *testing.T) {
	want := tokenFor(t, "alice")

	res := run(testApp(&fakeList{}), "", "token", "ALICE")
	require.NoError(t, res.err)
	assert.Equal(t, want.String()+"\n", res.out)

	res = run(testApp(&fakeList{}), "", "token", "alice", "-o", "json")
	require.NoError(t, res.err)
	var asJSON tokenOutput
	require.NoError(t, json.Unmarshal([]byte(res.out), &asJSON))
	assert.Equal(t, tokenOutput{Username: "alice", Token: want.String(), Scheme: config.SchemeV2}, asJSON)

	res = run(testApp(&fakeList{}), "", "token", "alice", "-o", "yaml")
	require.NoError(t, res.err)
	var asYAML tokenOutput
	require.NoError(t, yaml.Unmarshal([]byte(res.out), &asYAML))
	assert.Equal(t, want.String(), asYAML.Token)

	res = run(testApp(&fakeList{}), "", "token", "alice", "-o", "xml")
	assert.Error(t, res.err)
}

func TestTokenCmd_PromptsWithoutArgument(t *testing.T) {
	res := run(testApp(&fakeList{}), "alice\n", "token")
	require.NoError(t, res.err)
	assert.Contains(t, res.out, tokenFor(t, "alice").String())
}

func TestTokenCmd_EmptyInput(t *testing.T) {
	res := run(testApp(&fakeList{}), "", "token")
	assert.Equal(t, clierror.ExitInvalidInput, exitCode(res.err))
}

func TestServeCmd_RequiresFile(t *testing.T) {
	res := run(testApp(&fakeList{}), "", "serve")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "file")
}

func TestVersionCmd(t *testing.T) {
	res := run(testApp(&fakeList{}), "", "version")
	require.NoError(t, res.err)
	assert.Equal(t, "gatekeeper "+config.Version+" (built "+config.BuildTime+")\n", res.out)
}

func TestRootCmd_HelpShowsSubcommands(t *testing.T) {
	res := run(testApp(&fakeList{}), "", "--help")
	require.NoError(t, res.err)
	for _, sub := range []string{"token", "serve", "version"} {
		assert.Contains(t, res.out, sub)
	}
}
