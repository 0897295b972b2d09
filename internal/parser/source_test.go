package parser

import (
	"bytes"
	"testing"
)

func TestBytesSourceCursor(t *testing.T) {
	src := NewBytesSource([]byte("abc=def"), nil)

	if c, ok := src.PeekByte(); !ok || c != 'a' {
		t.Fatalf("PeekByte() = %q, %v; want 'a', true", c, ok)
	}
	if d, ok := src.DistanceTo('='); !ok || d != 3 {
		t.Fatalf("DistanceTo('=') = %d, %v; want 3, true", d, ok)
	}
	// Peek and DistanceTo must not move the cursor.
	if c, _ := src.PeekByte(); c != 'a' {
		t.Fatalf("PeekByte() after DistanceTo = %q, want 'a'", c)
	}

	got, err := src.ReadText(3)
	if err != nil || got != "abc" {
		t.Fatalf("ReadText(3) = %q, %v; want \"abc\", nil", got, err)
	}
	src.Advance(1)
	if src.Remaining() != 3 {
		t.Fatalf("Remaining() = %d, want 3", src.Remaining())
	}

	if _, ok := src.DistanceTo('='); ok {
		t.Fatal("DistanceTo('=') past the '=' should report false")
	}

	// Advance past the end clamps.
	src.Advance(100)
	if src.Remaining() != 0 {
		t.Fatalf("Remaining() after over-advance = %d, want 0", src.Remaining())
	}
	if _, ok := src.PeekByte(); ok {
		t.Fatal("PeekByte() at end-of-input should report false")
	}
}

func TestBufferSourceConsumesWindow(t *testing.T) {
	buf := bytes.NewBufferString("key=value\n")
	src := NewBufferSource(buf, nil)

	if d, ok := src.DistanceTo('='); !ok || d != 3 {
		t.Fatalf("DistanceTo('=') = %d, %v; want 3, true", d, ok)
	}
	if buf.Len() != 10 {
		t.Fatalf("DistanceTo consumed buffer bytes: len = %d, want 10", buf.Len())
	}

	got, err := src.ReadText(3)
	if err != nil || got != "key" {
		t.Fatalf("ReadText(3) = %q, %v; want \"key\", nil", got, err)
	}
	if buf.Len() != 7 {
		t.Fatalf("buffer window = %d bytes, want 7", buf.Len())
	}

	src.Advance(1)
	if d, ok := src.DistanceTo('\n'); !ok || d != 5 {
		t.Fatalf("DistanceTo('\\n') = %d, %v; want 5, true", d, ok)
	}
	if src.Remaining() != 6 {
		t.Fatalf("Remaining() = %d, want 6", src.Remaining())
	}
}

func TestReadTextInvalidBytes(t *testing.T) {
	for name, src := range map[string]Source{
		"bytes":  NewBytesSource([]byte("\xff\xfe"), nil),
		"buffer": NewBufferSource(bytes.NewBuffer([]byte("\xff\xfe")), nil),
	} {
		if _, err := src.ReadText(2); err == nil {
			t.Errorf("%s: ReadText() on invalid UTF-8 should error", name)
		}
		if src.Remaining() != 2 {
			t.Errorf("%s: failed ReadText consumed bytes: Remaining() = %d, want 2", name, src.Remaining())
		}
	}
}
