package dialect

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// UnsupportedDialectError reports a lookup for a dialect name nobody has
// registered.
type UnsupportedDialectError struct {
	Name string
}

func (e *UnsupportedDialectError) Error() string {
	return fmt.Sprintf("unsupported dialect %q", e.Name)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Dialect{}
)

func init() {
	for _, d := range []*Dialect{ANSI, Postgres, MySQL, SQLite, SQLServer} {
		Register(d)
	}
}

// Register adds a dialect under its name and aliases, case-insensitively.
// Registering a name twice replaces the earlier descriptor. The descriptor
// itself must not be mutated after registration.
func Register(d *Dialect) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(d.Name)] = d
	for _, alias := range d.Aliases {
		registry[strings.ToLower(alias)] = d
	}
}

// Get looks up a dialect by name or alias. Unknown names fail with
// UnsupportedDialectError; callers are expected to fail at the point the
// dialect is chosen, not at first render.
func Get(name string) (*Dialect, error) {
	registryMu.RLock()
	d, ok := registry[strings.ToLower(name)]
	registryMu.RUnlock()
	if !ok {
		return nil, &UnsupportedDialectError{Name: name}
	}
	return d, nil
}

// Names returns the registered primary dialect names, one per descriptor.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	seen := map[*Dialect]bool{}
	var names []string
	for _, d := range registry {
		if !seen[d] {
			seen[d] = true
			names = append(names, d.Name)
		}
	}
	sort.Strings(names)
	return names
}
