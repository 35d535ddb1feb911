//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/music",
			expected: filepath.Join(home, "music"),
		},
		{
			name:     "tilde with nested path",
			input:    "~/music/crates/festival",
			expected: filepath.Join(home, "music", "crates", "festival"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/usr/local/music",
			expected: "/usr/local/music",
		},
		{
			name:     "relative path unchanged",
			input:    "music/albums",
			expected: "music/albums",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDefaultDatabasePath(t *testing.T) {
	path := defaultDatabasePath()
	if path == "" {
		t.Fatal("defaultDatabasePath returned empty string")
	}
	if !strings.Contains(path, "cratedig") {
		t.Errorf("defaultDatabasePath = %q, want a cratedig-scoped path", path)
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()
	if len(paths) == 0 {
		t.Fatal("getConfigPaths returned nothing")
	}
	// The working-directory config comes last so it wins.
	if paths[len(paths)-1] != "config.toml" {
		t.Errorf("last config path = %q, want config.toml", paths[len(paths)-1])
	}
}
