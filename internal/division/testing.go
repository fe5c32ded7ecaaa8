package division

import (
	"context"
	"sort"

	"github.com/agbru/bigcalc/internal/bigint"
)

// MockDivider is a Divider with a canned answer. It is exported so tests in
// other packages (orchestration, service, cli) can use it.
type MockDivider struct {
	Label  string
	Result bigint.BigInt
	Err    error
	Fn     func(ctx context.Context, x, y bigint.BigInt) (bigint.BigInt, error)
}

// Name returns Label, or "mock" when Label is empty.
func (m *MockDivider) Name() string {
	if m.Label == "" {
		return "mock"
	}
	return m.Label
}

// Divide returns the pre-configured Result and Err, or calls Fn if provided.
func (m *MockDivider) Divide(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, x, y bigint.BigInt) (bigint.BigInt, error) {
	if m.Fn != nil {
		return m.Fn(ctx, x, y)
	}
	if progressChan != nil {
		progressChan <- ProgressUpdate{CalculatorIndex: calcIndex, Value: 1.0}
	}
	return m.Result, m.Err
}

// TestFactory is a DividerFactory backed by a fixed map, for tests.
type TestFactory struct {
	dividers map[string]Divider
}

// NewTestFactory creates a factory pre-populated with dividers.
func NewTestFactory(dividers map[string]Divider) *TestFactory {
	if dividers == nil {
		dividers = make(map[string]Divider)
	}
	return &TestFactory{dividers: dividers}
}

// Create returns the divider by name.
func (f *TestFactory) Create(name string) (Divider, error) {
	return f.Get(name)
}

// Get returns the divider by name.
func (f *TestFactory) Get(name string) (Divider, error) {
	d, ok := f.dividers[name]
	if !ok {
		return nil, &UnknownDividerError{Name: name}
	}
	return d, nil
}

// List returns all registered names.
func (f *TestFactory) List() []string {
	names := make([]string, 0, len(f.dividers))
	for name := range f.dividers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register is a no-op; dividers are provided at construction.
func (f *TestFactory) Register(name string, creator func() coreDivider) error {
	return nil
}

// GetAll returns all dividers.
func (f *TestFactory) GetAll() map[string]Divider {
	result := make(map[string]Divider, len(f.dividers))
	for k, v := range f.dividers {
		result[k] = v
	}
	return result
}
