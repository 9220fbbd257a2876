package binser

import (
	"io"
	"math"

	"github.com/unkn0wn-root/binser/internal/wire"
)

// DefaultInitialCapacity is the region size of a fresh Growable.
const DefaultInitialCapacity = 4

// GrowableOptions tune a Growable backend. The zero value is ready to use.
type GrowableOptions struct {
	InitialCapacity int // 0 => DefaultInitialCapacity

	// Wraparound makes the read cursor cycle over the payload instead of
	// failing with ErrOutOfData at its end. Reads then return correct data
	// only if they mirror the writes exactly, in order and size.
	Wraparound bool

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

// Growable starts with a small region and doubles it whenever an append
// would reach or pass the current capacity. Writes are purely sequential.
//
// Running out of address space while growing is fatal: the backend panics
// with ErrAllocation rather than continuing with a partial region.
type Growable struct {
	buf     []byte // len(buf) is the capacity
	size    int
	r       int
	initial int
	wrap    bool
	log     Logger
	hooks   Hooks
}

func NewGrowable(opts GrowableOptions) *Growable {
	if opts.InitialCapacity < 0 {
		panic("binser: initial capacity can't be < 0")
	}
	initial := coalesce(opts.InitialCapacity, DefaultInitialCapacity)
	return &Growable{
		buf:     make([]byte, initial),
		initial: initial,
		wrap:    opts.Wraparound,
		log:     component(opts.Logger, "growable"),
		hooks:   coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
}

func (g *Growable) Append(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	g.reserve(len(p))
	g.size += copy(g.buf[g.size:], p)
	return nil
}

// reserve doubles the capacity until size+n stays strictly below it.
func (g *Growable) reserve(n int) {
	if n > math.MaxInt-g.size {
		panic(ErrAllocation)
	}
	need := g.size + n
	c := len(g.buf)
	if need < c {
		return
	}
	if c == 0 {
		c = 1
	}
	for need >= c {
		if c > math.MaxInt/2 {
			panic(ErrAllocation)
		}
		c *= 2
	}

	from := len(g.buf)
	buf := make([]byte, c)
	copy(buf, g.buf[:g.size])
	g.buf = buf

	g.hooks.Grown(from, c)
	g.log.Debug("region grown", Fields{"from": from, "to": c, "size": g.size, "append": n})
}

func (g *Growable) Consume(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if g.wrap {
		return g.consumeRing(p)
	}
	if avail := g.size - g.r; len(p) > avail {
		g.hooks.OutOfData(avail, len(p))
		return &RangeError{Op: "consume", Available: avail, Requested: len(p), Err: ErrOutOfData}
	}
	g.r += copy(p, g.buf[g.r:g.size])
	return nil
}

// consumeRing treats the payload as a ring: reaching its end restarts at zero.
func (g *Growable) consumeRing(p []byte) error {
	if g.size == 0 {
		g.hooks.OutOfData(0, len(p))
		return &RangeError{Op: "consume", Available: 0, Requested: len(p), Err: ErrOutOfData}
	}
	for off := 0; off < len(p); {
		k := copy(p[off:], g.buf[g.r:g.size])
		off += k
		g.r = (g.r + k) % g.size
	}
	return nil
}

func (g *Growable) Len() int       { return g.size }
func (g *Growable) Cap() int       { return len(g.buf) }
func (g *Growable) Remaining() int { return g.size - g.r }
func (g *Growable) Bytes() []byte  { return g.buf[:g.size:g.size] }
func (g *Growable) Rewind()        { g.r = 0 }

// Wraparound reports whether reads cycle over the payload.
func (g *Growable) Wraparound() bool { return g.wrap }

func (g *Growable) Reset() {
	g.size, g.r = 0, 0
}

// Clone returns a Growable with the same capacity and payload, rewound for reading.
func (g *Growable) Clone() Storage {
	c := *g
	c.buf = make([]byte, len(g.buf))
	copy(c.buf, g.buf[:g.size])
	c.r = 0
	return &c
}

// Move transfers the region and cursor state to a new Growable.
// g is left empty with zero capacity; a later append regrows it from one byte.
func (g *Growable) Move() *Growable {
	m := *g
	g.buf, g.size, g.r = nil, 0, 0
	return &m
}

func (g *Growable) SaveTo(w io.Writer) (int64, error) {
	return wire.WriteFrame(w, g.buf[:g.size])
}

// LoadFrom reads one frame into a fresh region twice the payload size, so
// later appends have room before the next doubling.
func (g *Growable) LoadFrom(r io.Reader) (int64, error) {
	n, err := wire.ReadHeader(r)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt/2 {
		return wire.HeaderSize, ErrCorrupt
	}
	buf := make([]byte, max(2*n, g.initial))
	if err := wire.ReadPayload(r, buf[:n]); err != nil {
		return wire.HeaderSize, err
	}
	g.buf, g.size, g.r = buf, n, 0
	g.log.Debug("payload loaded", Fields{"size": n, "capacity": len(buf)})
	return int64(wire.HeaderSize + n), nil
}
