package finder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("MkdirAll: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}
}

func TestIsEnvFilename(t *testing.T) {
	for _, tt := range []struct {
		name string
		want bool
	}{
		{".env", true},
		{".env.local", true},
		{".env.production", true},
		{".env.example", false},
		{".env.sample", false},
		{".env.", false},
		{"env", false},
		{"config.env", false},
	} {
		if got := IsEnvFilename(tt.name); got != tt.want {
			t.Errorf("IsEnvFilename(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestList(t *testing.T) {
	t.Run("finds env files, skips dependency dirs", func(t *testing.T) {
		tmp := t.TempDir()
		writeTree(t, tmp, map[string]string{
			".env":                  "",
			".env.local":            "",
			".env.example":          "",
			"api/.env":              "",
			"node_modules/pkg/.env": "",
			"readme.md":             "",
		})

		got, err := List(tmp)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		want := []string{".env", ".env.local", "api/.env"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("List() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("honors gitignore", func(t *testing.T) {
		tmp := t.TempDir()
		writeTree(t, tmp, map[string]string{
			".gitignore":          "dist/\n/secrets/.env.ci\n",
			".env":                "",
			"dist/.env":           "",
			"secrets/.env.ci":     "",
			"sub/secrets/.env.ci": "",
		})

		got, err := List(tmp)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		want := []string{".env", "sub/secrets/.env.ci"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("List() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing root errors", func(t *testing.T) {
		if _, err := List(filepath.Join(t.TempDir(), "absent")); err == nil {
			t.Error("List(absent) should error")
		}
	})
}

func TestIgnoreMatch(t *testing.T) {
	m := &Ignore{rules: []ignoreRule{
		{pattern: "build", dirOnly: true},
		{pattern: ".env.bak"},
		{pattern: "ci/*.env", anchor: true},
	}}

	for _, tt := range []struct {
		rel   string
		isDir bool
		want  bool
	}{
		{"build", true, true},
		{"build", false, false},
		{"deep/build", true, true},
		{".env.bak", false, true},
		{"sub/.env.bak", false, true},
		{"ci/test.env", false, true},
		{"sub/ci/test.env", false, false},
		{".env", false, false},
	} {
		if got := m.Match(tt.rel, tt.isDir); got != tt.want {
			t.Errorf("Match(%q, %v) = %v, want %v", tt.rel, tt.isDir, got, tt.want)
		}
	}

	var nilMatcher *Ignore
	if nilMatcher.Match("anything", false) {
		t.Error("nil matcher should match nothing")
	}
}
