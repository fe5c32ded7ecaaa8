package division

// Note: DividerFactory is not mockable with mockgen because Register() uses
// the unexported coreDivider type. Use DefaultFactory or TestFactory instead.

import (
	"fmt"
	"sort"
	"sync"
)

// DividerFactory creates and caches Divider instances by strategy name.
type DividerFactory interface {
	// Create returns a fresh Divider for name.
	Create(name string) (Divider, error)

	// Get returns the cached Divider for name, creating it on first use.
	Get(name string) (Divider, error)

	// List returns the sorted registered strategy names.
	List() []string

	// Register adds or replaces a strategy.
	Register(name string, creator func() coreDivider) error

	// GetAll returns every registered Divider keyed by name.
	GetAll() map[string]Divider
}

// DefaultFactory is the thread-safe registry of division strategies.
type DefaultFactory struct {
	mu       sync.RWMutex
	creators map[string]func() coreDivider
	dividers map[string]Divider
}

// NewDefaultFactory returns a factory with the built-in strategies:
//   - "long": LongDivision, O(len(x)*len(y))
//   - "subtract": RepeatedSubtraction, O(quotient*len(x))
//   - "big": MathBigDivider, math/big oracle
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators: make(map[string]func() coreDivider),
		dividers: make(map[string]Divider),
	}

	_ = f.Register("long", func() coreDivider { return LongDivision{} })
	_ = f.Register("subtract", func() coreDivider { return RepeatedSubtraction{} })
	_ = f.Register("big", func() coreDivider { return MathBigDivider{} })

	return f
}

// Register adds a strategy. The creator runs lazily on first lookup; an
// existing strategy with the same name is replaced.
func (f *DefaultFactory) Register(name string, creator func() coreDivider) error {
	if creator == nil {
		return fmt.Errorf("division: nil creator for %q", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creators[name] = creator
	delete(f.dividers, name)
	return nil
}

// Create always builds a new, uncached Divider.
func (f *DefaultFactory) Create(name string) (Divider, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()

	if !ok {
		return nil, &UnknownDividerError{Name: name}
	}
	return NewDivider(creator()), nil
}

// Get returns the cached Divider for name.
func (f *DefaultFactory) Get(name string) (Divider, error) {
	f.mu.RLock()
	if d, exists := f.dividers[name]; exists {
		f.mu.RUnlock()
		return d, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check after acquiring write lock
	if d, exists := f.dividers[name]; exists {
		return d, nil
	}

	creator, ok := f.creators[name]
	if !ok {
		return nil, &UnknownDividerError{Name: name}
	}

	d := NewDivider(creator())
	f.dividers[name] = d
	return d, nil
}

// List returns the registered names sorted alphabetically.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a copy of the registry with every strategy instantiated.
func (f *DefaultFactory) GetAll() map[string]Divider {
	f.mu.Lock()
	defer f.mu.Unlock()

	for name, creator := range f.creators {
		if _, exists := f.dividers[name]; !exists {
			f.dividers[name] = NewDivider(creator())
		}
	}

	result := make(map[string]Divider, len(f.dividers))
	for name, d := range f.dividers {
		result[name] = d
	}
	return result
}

// MustGet is like Get but panics if name is not registered.
func (f *DefaultFactory) MustGet(name string) Divider {
	d, err := f.Get(name)
	if err != nil {
		panic(fmt.Sprintf("division: required divider not found: %s", name))
	}
	return d
}

// Has reports whether name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.creators[name]
	return exists
}

// UnknownDividerError is returned when a strategy name is not registered.
type UnknownDividerError struct {
	Name string
}

func (e *UnknownDividerError) Error() string {
	return "unknown division algorithm: " + e.Name
}

var globalFactory = NewDefaultFactory()

// GlobalFactory returns the process-wide factory.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}

// RegisterDivider registers a strategy in the global factory.
func RegisterDivider(name string, creator func() coreDivider) error {
	return globalFactory.Register(name, creator)
}
