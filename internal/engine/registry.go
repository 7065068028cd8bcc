package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownEngine is returned by Load for an unregistered id.
var ErrUnknownEngine = errors.New("engine: unknown engine")

// Module describes a registered engine.
// Prepare, if set, runs once before the first construction; it is the
// equivalent of awaiting a module load.
type Module struct {
	ID      string
	Title   string
	Prepare func(ctx context.Context) error
	New     Constructor
}

// Info contains metadata about a registered engine.
type Info struct {
	ID    string
	Title string
}

type entry struct {
	module   Module
	once     sync.Once
	prepared error
}

var (
	modules = make(map[string]*entry)
	mu      sync.RWMutex
)

// Register adds an engine module to the registry.
// Typically called from an engine package's init() function.
// Panics on a duplicate id or a missing constructor.
func Register(m Module) {
	mu.Lock()
	defer mu.Unlock()

	if m.New == nil {
		panic(fmt.Sprintf("engine: module %q has no constructor", m.ID))
	}
	if _, exists := modules[m.ID]; exists {
		panic(fmt.Sprintf("engine: module %q already registered", m.ID))
	}
	modules[m.ID] = &entry{module: m}
}

// List returns information about all registered engines, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(modules))
	for id, e := range modules {
		result = append(result, Info{ID: id, Title: e.module.Title})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Exists checks if an engine with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modules[id]
	return ok
}

// Load prepares the module registered under id and returns its constructor.
// Preparation runs at most once per process; a failed preparation is
// remembered and returned on every later call, there is no retry.
func Load(ctx context.Context, id string) (Constructor, error) {
	mu.RLock()
	e, ok := modules[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEngine, id)
	}

	e.once.Do(func() {
		if e.module.Prepare != nil {
			e.prepared = e.module.Prepare(ctx)
		}
	})
	if e.prepared != nil {
		return nil, fmt.Errorf("engine: load %q: %w", id, e.prepared)
	}
	return e.module.New, nil
}

