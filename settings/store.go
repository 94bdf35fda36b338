package settings

// Store is a live, mutable set of settings, the in-memory equivalent of the
// tuning panel. It implements the settings source consumed by the frame driver.
type Store struct {
	initial Settings
	current Settings
}

// NewStore creates a store holding the clamped initial values.
func NewStore(initial Settings) *Store {
	initial = Clamp(initial)
	return &Store{initial: initial, current: initial}
}

// Settings returns the current snapshot.
func (st *Store) Settings() Settings {
	return st.current
}

// Set updates one parameter, clamping it to its declared range.
func (st *Store) Set(name string, v float64) error {
	return st.current.Set(name, v)
}

// Reset restores the values the store was created with.
func (st *Store) Reset() {
	st.current = st.initial
}
