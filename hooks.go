package binser

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking; backends call them on hot paths.
// Wrap with hooks/async to move the work off the caller's goroutine.
type Hooks interface {
	// A Growable backend reallocated its region.
	Grown(from, to int)

	// A Fixed backend refused an append that did not fit.
	OverflowRejected(capacity, requested int)

	// A read asked for more bytes than the payload still holds.
	OutOfData(available, requested int)

	// A second callback was registered for a type; the first one is kept.
	// kind ∈ {"write", "read"}
	DuplicateRegistration(typeName, kind string)

	// A stored snapshot failed validation on load and was deleted.
	SnapshotCorrupt(storageKey string, err error)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(storageKey string)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) Grown(int, int)                       {}
func (NopHooks) OverflowRejected(int, int)            {}
func (NopHooks) OutOfData(int, int)                   {}
func (NopHooks) DuplicateRegistration(string, string) {}
func (NopHooks) SnapshotCorrupt(string, error)        {}
func (NopHooks) ProviderSetRejected(string)           {}
