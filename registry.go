package binser

import (
	"fmt"
	"reflect"
	"sync"
)

// WriteFunc encodes v, whose dynamic type is the one it was registered for.
type WriteFunc func(s *Serializer, v any) error

// ReadFunc decodes into ptr, a non-nil pointer to the registered type.
type ReadFunc func(s *Serializer, ptr any) error

// RegistryOptions tune a Registry. The zero value is ready to use.
type RegistryOptions struct {
	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

// Registry routes values to caller-supplied write/read callbacks keyed by
// their concrete type. The first registration for a type wins; later ones
// are ignored and reported. A Registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	writes map[reflect.Type]WriteFunc
	reads  map[reflect.Type]ReadFunc
	log    Logger
	hooks  Hooks
}

func NewRegistry(opts RegistryOptions) *Registry {
	return &Registry{
		writes: make(map[reflect.Type]WriteFunc),
		reads:  make(map[reflect.Type]ReadFunc),
		log:    component(opts.Logger, "registry"),
		hooks:  coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
}

// DefineWrite registers fn for values of type t and reports whether it was
// stored. A type that already has a write callback keeps it.
func (r *Registry) DefineWrite(t reflect.Type, fn WriteFunc) bool {
	if t == nil || fn == nil {
		panic("binser: type and write func can't be nil")
	}
	r.mu.Lock()
	_, dup := r.writes[t]
	if !dup {
		r.writes[t] = fn
	}
	r.mu.Unlock()

	if dup {
		r.duplicate(t, "write")
	}
	return !dup
}

// DefineRead registers fn for pointers to type t. First registration wins.
func (r *Registry) DefineRead(t reflect.Type, fn ReadFunc) bool {
	if t == nil || fn == nil {
		panic("binser: type and read func can't be nil")
	}
	r.mu.Lock()
	_, dup := r.reads[t]
	if !dup {
		r.reads[t] = fn
	}
	r.mu.Unlock()

	if dup {
		r.duplicate(t, "read")
	}
	return !dup
}

func (r *Registry) duplicate(t reflect.Type, kind string) {
	r.hooks.DuplicateRegistration(t.String(), kind)
	r.log.Warn("duplicate registration ignored", Fields{"type": t.String(), "kind": kind})
}

// DispatchWrite encodes v with the callback registered for its dynamic type.
func (r *Registry) DispatchWrite(s *Serializer, v any) error {
	t := reflect.TypeOf(v)
	r.mu.RLock()
	fn, ok := r.writes[t]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: write %v", ErrNotRegistered, t)
	}
	return fn(s, v)
}

// DispatchRead decodes into ptr with the callback registered for the type
// ptr points to.
func (r *Registry) DispatchRead(s *Serializer, ptr any) error {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: read needs a non-nil pointer, got %T", ErrNilDestination, ptr)
	}
	t := rv.Type().Elem()
	r.mu.RLock()
	fn, ok := r.reads[t]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: read %v", ErrNotRegistered, t)
	}
	return fn(s, ptr)
}

// RegisterWrite is DefineWrite with the type taken from T.
func RegisterWrite[T any](r *Registry, fn func(*Serializer, T) error) bool {
	return r.DefineWrite(reflect.TypeFor[T](), func(s *Serializer, v any) error {
		return fn(s, v.(T))
	})
}

// RegisterRead is DefineRead with the type taken from T.
func RegisterRead[T any](r *Registry, fn func(*Serializer, *T) error) bool {
	return r.DefineRead(reflect.TypeFor[T](), func(s *Serializer, ptr any) error {
		return fn(s, ptr.(*T))
	})
}

// Register defines both directions for T from a Coder.
func Register[T any](r *Registry, c Coder[T]) bool {
	w := RegisterWrite(r, c.Encode)
	rd := RegisterRead(r, c.Decode)
	return w && rd
}

// Registered is a Coder that dispatches through r, so registered types can
// sit inside containers: binser.Slice(binser.Registered[Order](reg)).
// T must be a concrete type: writes are keyed by the value's dynamic type.
func Registered[T any](r *Registry) Coder[T] {
	return CoderFunc(
		func(s *Serializer, v T) error { return r.DispatchWrite(s, v) },
		func(s *Serializer, out *T) error { return r.DispatchRead(s, out) },
	)
}
