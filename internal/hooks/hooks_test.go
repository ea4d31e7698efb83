package hooks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	ctx := context.Background()
	workDir := t.TempDir()
	vars := Variables{AppName: "Cal", BaseURL: "http://localhost:3000", Apps: []string{"stripe", "zapier"}}

	tests := []struct {
		name     string
		hook     *HookConfig
		expected string
		contains string
	}{
		{
			name:     "nil hook",
			hook:     nil,
			expected: "",
		},
		{
			name:     "empty command",
			hook:     &HookConfig{Command: ""},
			expected: "",
		},
		{
			name:     "variables expanded",
			hook:     &HookConfig{Command: "echo '{{app_name}} at {{base_url}}/ with {{apps}}'", Timeout: 5},
			expected: "Cal at http://localhost:3000/ with stripe,zapier\n",
		},
		{
			name:     "stderr included",
			hook:     &HookConfig{Command: "echo out; echo err >&2", Timeout: 5},
			expected: "out\n\n[stderr]\nerr\n",
		},
		{
			name:     "failure reported in output",
			hook:     &HookConfig{Command: "exit 3", Timeout: 5},
			contains: "[Hook command failed:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := Execute(ctx, tt.hook, workDir, vars)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if tt.contains != "" {
				if !strings.Contains(output, tt.contains) {
					t.Errorf("Execute() output = %q, expected to contain %q", output, tt.contains)
				}
				return
			}
			if output != tt.expected {
				t.Errorf("Execute() output = %q, expected %q", output, tt.expected)
			}
		})
	}
}

func TestExecute_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	hook := &HookConfig{Command: "echo 'test'", Timeout: 5}
	_, err := Execute(ctx, hook, t.TempDir(), Variables{})
	if err == nil {
		t.Error("Execute() expected error for cancelled context, got nil")
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg != nil {
		t.Errorf("LoadConfig() = %+v, expected nil", cfg)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("hooks: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(dir); err == nil {
		t.Error("LoadConfig() expected parse error, got nil")
	}
}

func TestRunPostSetup(t *testing.T) {
	dir := t.TempDir()
	content := `version: 1
hooks:
  post_setup:
    command: "echo ready {{app_name}}"
    timeout: 5
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	output, err := RunPostSetup(context.Background(), dir, Variables{AppName: "Cal"})
	if err != nil {
		t.Fatalf("RunPostSetup() error = %v", err)
	}
	if output != "ready Cal\n" {
		t.Errorf("RunPostSetup() output = %q, expected %q", output, "ready Cal\n")
	}

	output, err = RunPostSetup(context.Background(), t.TempDir(), Variables{})
	if err != nil || output != "" {
		t.Errorf("RunPostSetup() without config = %q, %v", output, err)
	}
}
