package binser

import (
	"io"

	"github.com/unkn0wn-root/binser/internal/wire"
)

// FixedOptions tune a Fixed backend. The zero value is ready to use.
type FixedOptions struct {
	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

// Fixed is a constant-capacity backend. The region is allocated once and
// never grows: an append that does not fit fails with ErrOverflow and
// leaves the payload unchanged.
//
// Write and read cursors are independent, so reads never disturb writes.
type Fixed struct {
	buf   []byte // len(buf) is the capacity
	w     int
	r     int
	log   Logger
	hooks Hooks
}

// NewFixed allocates a region of exactly capacity bytes.
func NewFixed(capacity int, opts FixedOptions) *Fixed {
	if capacity < 0 {
		panic("binser: fixed capacity can't be < 0")
	}
	return &Fixed{
		buf:   make([]byte, capacity),
		log:   component(opts.Logger, "fixed"),
		hooks: coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
}

func (f *Fixed) Append(p []byte) error {
	if free := len(f.buf) - f.w; len(p) > free {
		f.hooks.OverflowRejected(len(f.buf), len(p))
		f.log.Warn("append rejected", Fields{"capacity": len(f.buf), "used": f.w, "requested": len(p)})
		return &RangeError{Op: "append", Available: free, Requested: len(p), Err: ErrOverflow}
	}
	f.w += copy(f.buf[f.w:], p)
	return nil
}

func (f *Fixed) Consume(p []byte) error {
	if avail := f.w - f.r; len(p) > avail {
		f.hooks.OutOfData(avail, len(p))
		return &RangeError{Op: "consume", Available: avail, Requested: len(p), Err: ErrOutOfData}
	}
	f.r += copy(p, f.buf[f.r:f.w])
	return nil
}

func (f *Fixed) Len() int       { return f.w }
func (f *Fixed) Cap() int       { return len(f.buf) }
func (f *Fixed) Remaining() int { return f.w - f.r }
func (f *Fixed) Bytes() []byte  { return f.buf[:f.w:f.w] }
func (f *Fixed) Rewind()        { f.r = 0 }

func (f *Fixed) Reset() {
	f.w, f.r = 0, 0
}

// Clone returns a Fixed with the same capacity and payload, rewound for reading.
func (f *Fixed) Clone() Storage {
	c := &Fixed{buf: make([]byte, len(f.buf)), w: f.w, log: f.log, hooks: f.hooks}
	copy(c.buf, f.buf[:f.w])
	return c
}

// Move transfers the region and both cursors to a new Fixed.
// f is left empty with zero capacity.
func (f *Fixed) Move() *Fixed {
	m := *f
	f.buf, f.w, f.r = nil, 0, 0
	return &m
}

func (f *Fixed) SaveTo(w io.Writer) (int64, error) {
	return wire.WriteFrame(w, f.buf[:f.w])
}

// LoadFrom reads one frame into the existing region. A frame larger than
// the capacity fails with ErrOverflow before any payload is read.
func (f *Fixed) LoadFrom(r io.Reader) (int64, error) {
	n, err := wire.ReadHeader(r)
	if err != nil {
		return 0, err
	}
	if n > len(f.buf) {
		f.hooks.OverflowRejected(len(f.buf), n)
		return wire.HeaderSize, &RangeError{Op: "load", Available: len(f.buf), Requested: n, Err: ErrOverflow}
	}
	if err := wire.ReadPayload(r, f.buf[:n]); err != nil {
		f.Reset()
		return wire.HeaderSize, err
	}
	f.w, f.r = n, 0
	return int64(wire.HeaderSize + n), nil
}
