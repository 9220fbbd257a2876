package binser

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFixedAppendConsume(t *testing.T) {
	f := NewFixed(8, FixedOptions{})
	if f.Cap() != 8 || f.Len() != 0 {
		t.Fatalf("fresh fixed: cap=%d len=%d", f.Cap(), f.Len())
	}
	if err := f.Append([]byte("abc")); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := f.Append([]byte("defgh")); err != nil {
		t.Fatalf("append to exact capacity: %v", err)
	}

	got := make([]byte, 8)
	if err := f.Consume(got[:2]); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if err := f.Consume(got[2:]); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if string(got) != "abcdefgh" {
		t.Fatalf("got %q", got)
	}
	if f.Remaining() != 0 {
		t.Fatalf("remaining: %d", f.Remaining())
	}
}

func TestFixedOverflowLeavesPayload(t *testing.T) {
	f := NewFixed(4, FixedOptions{})
	if err := f.Append([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}

	err := f.Append([]byte{4, 5})
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	var re *RangeError
	if !errors.As(err, &re) || re.Available != 1 || re.Requested != 2 || re.Op != "append" {
		t.Fatalf("range error: %+v", re)
	}
	if !bytes.Equal(f.Bytes(), []byte{1, 2, 3}) {
		t.Fatalf("payload changed: %v", f.Bytes())
	}
}

func TestFixedZeroCapacity(t *testing.T) {
	f := NewFixed(0, FixedOptions{})
	if err := f.Append(nil); err != nil {
		t.Fatalf("empty append: %v", err)
	}
	if err := f.Append([]byte{1}); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}

func TestReadPastWrittenData(t *testing.T) {
	for name, st := range map[string]Storage{
		"fixed":    NewFixed(16, FixedOptions{}),
		"growable": NewGrowable(GrowableOptions{}),
	} {
		t.Run(name, func(t *testing.T) {
			if err := st.Append([]byte{1, 2}); err != nil {
				t.Fatal(err)
			}
			p := make([]byte, 3)
			err := st.Consume(p)
			if !errors.Is(err, ErrOutOfData) {
				t.Fatalf("expected ErrOutOfData, got %v", err)
			}
			// nothing consumed on failure
			if st.Remaining() != 2 {
				t.Fatalf("remaining: got %d want 2", st.Remaining())
			}
		})
	}
}

func TestFixedReadsDoNotDisturbWrites(t *testing.T) {
	f := NewFixed(8, FixedOptions{})
	_ = f.Append([]byte{1, 2})
	b := make([]byte, 2)
	if err := f.Consume(b); err != nil {
		t.Fatal(err)
	}
	_ = f.Append([]byte{3})
	if err := f.Consume(b[:1]); err != nil || b[0] != 3 {
		t.Fatalf("b=%v err=%v", b, err)
	}
}

func TestGrowableDoubling(t *testing.T) {
	cases := []struct {
		n       int
		wantCap int
	}{
		{0, 4},
		{3, 4},
		{4, 8}, // reaching capacity doubles
		{7, 8},
		{8, 16},
		{100, 128},
		{1024, 2048},
	}
	for _, tc := range cases {
		g := NewGrowable(GrowableOptions{})
		if err := g.Append(make([]byte, tc.n)); err != nil {
			t.Fatalf("n=%d: %v", tc.n, err)
		}
		if g.Cap() != tc.wantCap {
			t.Fatalf("n=%d: cap got %d want %d", tc.n, g.Cap(), tc.wantCap)
		}
	}
}

func TestGrowablePreservesBytesAcrossGrowth(t *testing.T) {
	g := NewGrowable(GrowableOptions{})
	var want []byte
	for i := 0; i < 300; i++ {
		b := []byte{byte(i), byte(i >> 8)}
		want = append(want, b...)
		if err := g.Append(b); err != nil {
			t.Fatal(err)
		}
	}
	if !bytes.Equal(g.Bytes(), want) {
		t.Fatalf("payload mismatch after growth")
	}
	got := make([]byte, len(want))
	if err := g.Consume(got); err != nil || !bytes.Equal(got, want) {
		t.Fatalf("consume after growth: err=%v", err)
	}
}

func TestGrowableInitialCapacity(t *testing.T) {
	g := NewGrowable(GrowableOptions{InitialCapacity: 1024})
	if g.Cap() != 1024 {
		t.Fatalf("cap: %d", g.Cap())
	}
	_ = g.Append(make([]byte, 1023))
	if g.Cap() != 1024 {
		t.Fatalf("grew early: %d", g.Cap())
	}
	_ = g.Append([]byte{0})
	if g.Cap() != 2048 {
		t.Fatalf("cap after filling: %d", g.Cap())
	}
}

func TestGrowableWraparound(t *testing.T) {
	g := NewGrowable(GrowableOptions{Wraparound: true})
	_ = g.Append([]byte{1, 2, 3})

	got := make([]byte, 7)
	if err := g.Consume(got); err != nil {
		t.Fatalf("ring consume: %v", err)
	}
	if !bytes.Equal(got, []byte{1, 2, 3, 1, 2, 3, 1}) {
		t.Fatalf("ring read: %v", got)
	}

	empty := NewGrowable(GrowableOptions{Wraparound: true})
	if err := empty.Consume(got[:1]); !errors.Is(err, ErrOutOfData) {
		t.Fatalf("empty ring: expected ErrOutOfData, got %v", err)
	}
}

func TestCloneIsDeepAndRewound(t *testing.T) {
	for name, st := range map[string]Storage{
		"fixed":    NewFixed(16, FixedOptions{}),
		"growable": NewGrowable(GrowableOptions{}),
	} {
		t.Run(name, func(t *testing.T) {
			_ = st.Append([]byte("hello"))
			_ = st.Consume(make([]byte, 3))

			c := st.Clone()
			if c.Remaining() != 5 || c.Cap() != st.Cap() {
				t.Fatalf("clone: remaining=%d cap=%d", c.Remaining(), c.Cap())
			}
			_ = st.Append([]byte("!"))
			if c.Len() != 5 {
				t.Fatalf("clone shares the region")
			}
			c.Bytes()[0] = 'J'
			if st.Bytes()[0] != 'h' {
				t.Fatalf("clone aliases source bytes")
			}
		})
	}
}

func TestMoveEmptiesSource(t *testing.T) {
	g := NewGrowable(GrowableOptions{})
	_ = g.Append([]byte("abc"))
	_ = g.Consume(make([]byte, 1))

	m := g.Move()
	if g.Len() != 0 || g.Cap() != 0 || g.Remaining() != 0 {
		t.Fatalf("source not empty: len=%d cap=%d", g.Len(), g.Cap())
	}
	if string(m.Bytes()) != "abc" || m.Remaining() != 2 {
		t.Fatalf("moved state: %q remaining=%d", m.Bytes(), m.Remaining())
	}
	// an emptied source can still be reused
	if err := g.Append([]byte("xy")); err != nil || string(g.Bytes()) != "xy" {
		t.Fatalf("reuse after move: %v", err)
	}

	f := NewFixed(4, FixedOptions{})
	_ = f.Append([]byte{9})
	mf := f.Move()
	if f.Cap() != 0 || mf.Cap() != 4 || mf.Len() != 1 {
		t.Fatalf("fixed move: src cap=%d dst cap=%d len=%d", f.Cap(), mf.Cap(), mf.Len())
	}
}

func TestResetAndRewind(t *testing.T) {
	g := NewGrowable(GrowableOptions{})
	_ = g.Append([]byte{1, 2, 3, 4, 5})
	_ = g.Consume(make([]byte, 5))
	g.Rewind()
	if g.Remaining() != 5 {
		t.Fatalf("rewind: %d", g.Remaining())
	}
	c := g.Cap()
	g.Reset()
	if g.Len() != 0 || g.Remaining() != 0 || g.Cap() != c {
		t.Fatalf("reset: len=%d cap=%d", g.Len(), g.Cap())
	}
}

func TestSaveLoadStream(t *testing.T) {
	src := NewGrowable(GrowableOptions{})
	_ = src.Append([]byte("persist me"))

	var buf bytes.Buffer
	n, err := src.SaveTo(&buf)
	if err != nil || n != int64(8+10) {
		t.Fatalf("save: n=%d err=%v", n, err)
	}

	dst := NewGrowable(GrowableOptions{})
	if _, err := dst.LoadFrom(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(dst.Bytes()) != "persist me" {
		t.Fatalf("payload: %q", dst.Bytes())
	}
	if dst.Cap() != 20 {
		t.Fatalf("loaded capacity: got %d want 20", dst.Cap())
	}

	fx := NewFixed(32, FixedOptions{})
	if _, err := fx.LoadFrom(bytes.NewReader(buf.Bytes())); err != nil {
		t.Fatalf("fixed load: %v", err)
	}
	if string(fx.Bytes()) != "persist me" || fx.Cap() != 32 {
		t.Fatalf("fixed payload: %q cap=%d", fx.Bytes(), fx.Cap())
	}

	small := NewFixed(4, FixedOptions{})
	if _, err := small.LoadFrom(bytes.NewReader(buf.Bytes())); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}

func TestLoadTruncatedFrame(t *testing.T) {
	src := NewGrowable(GrowableOptions{})
	_ = src.Append([]byte("0123456789"))
	var buf bytes.Buffer
	_, _ = src.SaveTo(&buf)

	dst := NewGrowable(GrowableOptions{})
	_ = dst.Append([]byte("keep"))
	_, err := dst.LoadFrom(bytes.NewReader(buf.Bytes()[:12]))
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if string(dst.Bytes()) != "keep" {
		t.Fatalf("failed load replaced payload: %q", dst.Bytes())
	}
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buffer.bin")

	src := NewFixed(64, FixedOptions{})
	_ = src.Append([]byte{0, 1, 2, 0xFF})
	if err := SaveFile(path, src); err != nil {
		t.Fatalf("save file: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 8+4 {
		t.Fatalf("file size: %d", len(raw))
	}

	dst := NewGrowable(GrowableOptions{})
	if err := LoadFile(path, dst); err != nil {
		t.Fatalf("load file: %v", err)
	}
	if !bytes.Equal(dst.Bytes(), src.Bytes()) {
		t.Fatalf("payload: %v", dst.Bytes())
	}

	if err := LoadFile(filepath.Join(t.TempDir(), "missing"), dst); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}
