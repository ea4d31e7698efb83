package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mark3labs/onboardr/internal/config"
	"github.com/mark3labs/onboardr/internal/store"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.Writer.Profile = colorprofile.Ascii
}

func TestRedirectURL(t *testing.T) {
	t.Parallel()

	require.Equal(t, "http://localhost:3000/", redirectURL("http://localhost:3000"))
	require.Equal(t, "https://cal.example.com/", redirectURL("https://cal.example.com/"))
	require.Equal(t, "/", redirectURL(""))
}

func TestInitConfig_NewFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "onboardr.yml")
	var out bytes.Buffer

	require.NoError(t, initConfig(&out, path, false))
	require.Contains(t, out.String(), "Config written to: "+path)

	want, err := config.Marshal(config.Default())
	require.NoError(t, err)
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, string(want), string(got))
}

func TestInitConfig_ExistingNeedsForce(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "onboardr.yml")
	require.NoError(t, os.WriteFile(path, []byte("app_name: Acme\n"), 0644))

	var out bytes.Buffer
	err := initConfig(&out, path, false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "--force")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "app_name: Acme\n", string(got), "file untouched without --force")
}

func TestInitConfig_ForceShowsDiff(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "onboardr.yml")
	require.NoError(t, os.WriteFile(path, []byte("app_name: Acme\n"), 0644))

	var out bytes.Buffer
	require.NoError(t, initConfig(&out, path, true))

	diff := out.String()
	require.Contains(t, diff, "-app_name: Acme")
	require.Contains(t, diff, "+app_name: Cal")
	require.Contains(t, diff, "Config written to")
}

func TestInitConfig_ForceUnchanged(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "onboardr.yml")
	require.NoError(t, config.WriteFile(path, config.Default()))

	var out bytes.Buffer
	require.NoError(t, initConfig(&out, path, true))
	require.Contains(t, out.String(), "already matches the defaults")
}

func TestPrintStatus(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	printStatus(&out, &store.State{
		Accounts: map[string]*store.Account{"1": {Role: store.RoleAdmin}},
		Apps:     map[string]bool{"zapier": true, "google-calendar": true},
		Complete: true,
	})

	s := out.String()
	require.Contains(t, s, "complete")
	require.Contains(t, s, "Administrators: 1")
	require.Contains(t, s, "Google Calendar, Zapier")

	out.Reset()
	printStatus(&out, &store.State{Accounts: map[string]*store.Account{}, Apps: map[string]bool{}})
	require.Contains(t, out.String(), "pending")
	require.Contains(t, out.String(), "none")
}

func TestPrintCatalog(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	printCatalog(&out)

	s := out.String()
	require.Contains(t, s, "Calendar")
	require.Contains(t, s, "google-calendar")
	require.Contains(t, s, "Payment")
	require.Contains(t, s, "stripe")
}
