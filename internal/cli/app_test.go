package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/config"
	"github.com/dmitrijs2005/gophvault/internal/keys"
	"github.com/dmitrijs2005/gophvault/internal/logging"
	"github.com/dmitrijs2005/gophvault/internal/password"
	"github.com/dmitrijs2005/gophvault/internal/storage"
	"github.com/dmitrijs2005/gophvault/internal/unlock"
	"github.com/dmitrijs2005/gophvault/internal/vault"
)

type testApp struct {
	*App
	out *bytes.Buffer
}

// newTestApp builds an unlocked App over in-memory storage that reads the
// given input lines.
func newTestApp(t *testing.T, input ...string) *testApp {
	t.Helper()
	withTerminal(t, false, nil)
	origNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = origNoColor })

	db, err := storage.Open(context.Background(), storage.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	out := &bytes.Buffer{}
	a := newApp(cfg, db, keys.NewMemoryStore(), unlock.AllowAll(),
		strings.NewReader(strings.Join(input, "\n")+"\n"), out, logging.Discard())
	require.NoError(t, a.Unlock(context.Background()))
	return &testApp{App: a, out: out}
}

func (ta *testApp) onlyID(t *testing.T) string {
	t.Helper()
	items := ta.vault.Credentials()
	require.Len(t, items, 1)
	return items[0].ID
}

func TestUnlock_DeniedLeavesVaultUnbuilt(t *testing.T) {
	db, err := storage.Open(context.Background(), storage.DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	a := newApp(cfg, db, keys.NewMemoryStore(), unlock.Static{Reason: "nope"},
		strings.NewReader(""), &bytes.Buffer{}, logging.Discard())

	err = a.Unlock(context.Background())
	require.ErrorIs(t, err, common.ErrAccessDenied)
	assert.Nil(t, a.vault)
}

func TestAdd_ThenShowRevealList(t *testing.T) {
	a := newTestApp(t, "GitHub", "me@example.com", "P@ssw0rd123!")
	ctx := context.Background()

	require.NoError(t, a.Add(ctx))
	assert.Contains(t, a.out.String(), "Strength: Strong")
	id := a.onlyID(t)

	a.out.Reset()
	require.NoError(t, a.Show(ctx, id))
	assert.Contains(t, a.out.String(), "Account:  GitHub")
	assert.Contains(t, a.out.String(), "Username: me@example.com")
	assert.Contains(t, a.out.String(), "Password: ••••••••")
	assert.NotContains(t, a.out.String(), "P@ssw0rd123!")

	a.out.Reset()
	require.NoError(t, a.Reveal(ctx, id))
	assert.Equal(t, "P@ssw0rd123!\n", a.out.String())

	a.out.Reset()
	require.NoError(t, a.List(ctx))
	assert.Contains(t, a.out.String(), "GitHub")
	assert.Contains(t, a.out.String(), "Strong")
	assert.NotContains(t, a.out.String(), "P@ssw0rd123!")
}

func TestAdd_EmptyPasswordIsGenerated(t *testing.T) {
	a := newTestApp(t, "Mail", "me", "")

	require.NoError(t, a.Add(context.Background()))
	c := a.vault.Credentials()[0]
	assert.Len(t, c.Secret, a.config.PasswordLength)
	assert.Contains(t, a.out.String(), "Generated password")
}

func TestAdd_ValidationError(t *testing.T) {
	a := newTestApp(t, "", "me", "pw")

	err := a.Add(context.Background())
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Empty(t, a.vault.Credentials())
}

func TestEdit_EmptyAnswersKeepValues(t *testing.T) {
	a := newTestApp(t, "GitHub", "me", "old-pass", "", "other@example.com", "")
	ctx := context.Background()

	require.NoError(t, a.Add(ctx))
	id := a.onlyID(t)
	require.NoError(t, a.Edit(ctx, id))

	c, ok := a.vault.Get(id)
	require.True(t, ok)
	assert.Equal(t, "GitHub", c.AccountLabel)
	assert.Equal(t, "other@example.com", c.Identifier)
	assert.Equal(t, "old-pass", c.Secret)
}

func TestEdit_NewPassword(t *testing.T) {
	a := newTestApp(t, "GitHub", "me", "old-pass", "", "", "new-pass")
	ctx := context.Background()

	require.NoError(t, a.Add(ctx))
	id := a.onlyID(t)
	require.NoError(t, a.Edit(ctx, id))

	c, _ := a.vault.Get(id)
	assert.Equal(t, "new-pass", c.Secret)
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	a := newTestApp(t, "GitHub", "me", "pw", "n", "y")
	ctx := context.Background()

	require.NoError(t, a.Add(ctx))
	id := a.onlyID(t)

	require.NoError(t, a.Delete(ctx, id))
	assert.Len(t, a.vault.Credentials(), 1)

	require.NoError(t, a.Delete(ctx, id))
	assert.Empty(t, a.vault.Credentials())
}

func TestUnknownID(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	for _, fn := range []func(context.Context, string) error{a.Show, a.Reveal, a.Edit, a.Delete, a.Copy} {
		require.ErrorIs(t, fn(ctx, "missing"), errUnknownID)
	}
}

func TestCopy(t *testing.T) {
	a := newTestApp(t, "GitHub", "me", "pw-to-copy")
	ctx := context.Background()
	require.NoError(t, a.Add(ctx))

	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { writeClipboard = orig })

	require.NoError(t, a.Copy(ctx, a.onlyID(t)))
	assert.Equal(t, "pw-to-copy", copied)

	writeClipboard = func(string) error { return errors.New("no clipboard") }
	require.ErrorContains(t, a.Copy(ctx, a.onlyID(t)), "no clipboard")
}

func TestGenerate(t *testing.T) {
	a := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.Generate(ctx, []string{"12", "digit"}))
	first := strings.SplitN(a.out.String(), "\n", 2)[0]
	assert.Len(t, first, 12)
	assert.Empty(t, strings.Trim(first, password.Digits))

	a.out.Reset()
	require.NoError(t, a.Generate(ctx, nil))
	first = strings.SplitN(a.out.String(), "\n", 2)[0]
	assert.Len(t, first, a.config.PasswordLength)

	a.out.Reset()
	require.NoError(t, a.Generate(ctx, []string{"10", "none"}))
	assert.Contains(t, a.out.String(), "No character classes selected")

	require.ErrorIs(t, a.Generate(ctx, []string{"4"}), common.ErrorValidation)
	require.ErrorIs(t, a.Generate(ctx, []string{"abc"}), common.ErrorValidation)
	require.ErrorIs(t, a.Generate(ctx, []string{"10", "emoji"}), common.ErrorValidation)
}

func TestStrength(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a", "Weak"},
		{"Password1", "Medium"},
		{"P@ssw0rd123!", "Strong"},
	}
	for _, tt := range tests {
		a := newTestApp(t, tt.in)
		require.NoError(t, a.Strength(context.Background()))
		assert.Contains(t, a.out.String(), "Strength: "+tt.want, tt.in)
	}
}

func TestRun_ServesREPLOverUnlockedVault(t *testing.T) {
	a := newTestApp(t, "add", "GitHub", "me", "pw", "list", "exit")

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, a.out.String(), "Welcome to GophVault")
	assert.Contains(t, a.out.String(), "GitHub")
	assert.Contains(t, a.out.String(), "gv> ", "prompts share the app writer")
	assert.True(t, strings.HasSuffix(a.out.String(), "Bye!\n"))
}

func TestAdd_PipedSecretKeepsSurroundingSpaces(t *testing.T) {
	a := newTestApp(t, "Bank", "me", "  pass word  ")

	require.NoError(t, a.Add(context.Background()))
	assert.Equal(t, "  pass word  ", a.vault.Credentials()[0].Secret)
}

func TestWritten_StaleViewCountsAsDone(t *testing.T) {
	a := newTestApp(t)

	stale := fmt.Errorf("%w: %w", vault.ErrStaleView, errors.New("disk gone"))
	require.NoError(t, a.written(stale, "Saved"))
	assert.Equal(t, "Saved (change saved but view not refreshed: disk gone)\n", a.out.String())

	a.out.Reset()
	boom := errors.New("boom")
	assert.ErrorIs(t, a.written(boom, "Saved"), boom)
	assert.Empty(t, a.out.String())

	require.NoError(t, a.written(nil, "Deleted"))
	assert.Equal(t, "Deleted\n", a.out.String())
}
