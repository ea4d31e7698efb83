package testfixtures

import (
	"context"
	"regexp"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mark3labs/onboardr/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// Initialize test environment
func init() {
	// Set Ascii profile to disable color output for stable string assertions
	lipgloss.Writer.Profile = colorprofile.Ascii
}

// Canonical terminal size for all tests
const (
	TestTermWidth  = 120
	TestTermHeight = 40
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

// StripANSI removes escape sequences so assertions can match plain text.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// Contains checks if rendered output contains a substring, ignoring styling.
func Contains(s, substr string) bool {
	return strings.Contains(StripANSI(s), substr)
}

// Key builds a key press whose String() is name.
func Key(name string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: name}
}

// Type builds one key press per rune of s.
func Type(s string) []tea.KeyPressMsg {
	msgs := make([]tea.KeyPressMsg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return msgs
}

// NewStore opens a real event store in a temp directory, closed on cleanup.
func NewStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(context.Background(), t.TempDir(), store.WithHashCost(bcrypt.MinCost))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}
