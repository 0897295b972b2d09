package envfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/charmap"

	"github.com/xmazu/dotenvx/internal/parser"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
}

func TestRead(t *testing.T) {
	t.Run("parses file content", func(t *testing.T) {
		tmp := t.TempDir()
		path := filepath.Join(tmp, ".env")
		writeFile(t, path, "# config\nFOO=bar\nEMPTY=\n")

		got, err := Read(path, nil)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		want := []parser.Entry{{Key: "FOO", Value: "bar"}, {Key: "EMPTY", Value: ""}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Read() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing file is an UnreadableError", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nope.env")
		_, err := Read(path, nil)
		var ue *UnreadableError
		if !errors.As(err, &ue) {
			t.Fatalf("Read() error = %v, want *UnreadableError", err)
		}
		if ue.Path != path || ue.Encoding != "utf-8" {
			t.Errorf("UnreadableError = {%s %s}, want {%s utf-8}", ue.Path, ue.Encoding, path)
		}
	})

	t.Run("malformed tail is not an error", func(t *testing.T) {
		tmp := t.TempDir()
		path := filepath.Join(tmp, ".env")
		writeFile(t, path, "FOO=bar\nDANGLING")

		got, err := Read(path, nil)
		if err != nil {
			t.Fatalf("Read() error = %v, want nil", err)
		}
		if len(got) != 1 {
			t.Errorf("Read() returned %d entries, want 1", len(got))
		}
	})

	t.Run("reads latin-1 with explicit encoding", func(t *testing.T) {
		tmp := t.TempDir()
		path := filepath.Join(tmp, ".env")
		writeFile(t, path, "NAME=caf\xe9\n")

		got, err := Read(path, charmap.ISO8859_1)
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		want := []parser.Entry{{Key: "NAME", Value: "café"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Read() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestResolve(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, ".env")
	local := base + ".local"
	writeFile(t, base, "A=1\n")
	writeFile(t, local, "A=2\n")

	t.Run("base plus suffix", func(t *testing.T) {
		got := Resolve(base, "local")
		want := []string{base, local}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing suffix file drops out", func(t *testing.T) {
		got := Resolve(base, "production")
		if diff := cmp.Diff([]string{base}, got); diff != "" {
			t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("no suffix", func(t *testing.T) {
		got := Resolve(base, "")
		if diff := cmp.Diff([]string{base}, got); diff != "" {
			t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nothing exists", func(t *testing.T) {
		if got := Resolve(filepath.Join(tmp, "absent"), "local"); got != nil {
			t.Errorf("Resolve() = %v, want nil", got)
		}
	})
}

func TestReadAll(t *testing.T) {
	tmp := t.TempDir()
	first := filepath.Join(tmp, "first.env")
	second := filepath.Join(tmp, "second.env")
	writeFile(t, first, "A=1\nB=2\n")
	writeFile(t, second, "B=override\nC=3\n")

	t.Run("keeps argument order", func(t *testing.T) {
		got, err := ReadAll([]string{first, second}, nil, true)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		want := []parser.Entry{
			{Key: "A", Value: "1"},
			{Key: "B", Value: "2"},
			{Key: "B", Value: "override"},
			{Key: "C", Value: "3"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ReadAll() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("strict fails on missing file", func(t *testing.T) {
		_, err := ReadAll([]string{first, filepath.Join(tmp, "absent")}, nil, true)
		var ue *UnreadableError
		if !errors.As(err, &ue) {
			t.Fatalf("ReadAll() error = %v, want *UnreadableError", err)
		}
	})

	t.Run("lenient skips missing file", func(t *testing.T) {
		got, err := ReadAll([]string{filepath.Join(tmp, "absent"), second}, nil, false)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if len(got) != 2 {
			t.Errorf("ReadAll() returned %d entries, want 2", len(got))
		}
	})
}

func TestEncodingByName(t *testing.T) {
	t.Run("empty and utf-8 mean default", func(t *testing.T) {
		for _, name := range []string{"", "utf-8", "UTF-8"} {
			enc, err := EncodingByName(name)
			if err != nil || enc != nil {
				t.Errorf("EncodingByName(%q) = %v, %v; want nil, nil", name, enc, err)
			}
		}
	})

	t.Run("latin-1 resolves", func(t *testing.T) {
		enc, err := EncodingByName("latin1")
		if err != nil || enc == nil {
			t.Fatalf("EncodingByName(latin1) = %v, %v", enc, err)
		}
	})

	t.Run("garbage errors", func(t *testing.T) {
		if _, err := EncodingByName("no-such-charset"); err == nil {
			t.Error("EncodingByName(no-such-charset) should error")
		}
	})
}
