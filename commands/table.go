package commands

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
)

// Source is one registered command builder.
type Source struct {
	Domain string
	Name   string
	build  Builder
}

// load runs the builder, turning a panic into an error.
func (s Source) load() (cmd *Command, err error) {
	defer func() {
		if r := recover(); r != nil {
			cmd = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.build()
}

// Table collects command sources per domain. Domain packages fill it from init().
type Table struct {
	mu      sync.Mutex
	domains map[string][]Source
}

// DefaultTable is the table used by Register and LoadCommands.
var DefaultTable = NewTable()

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{domains: make(map[string][]Source)}
}

// Register adds build to domain in DefaultTable. The source is named after the calling file.
func Register(domain string, build Builder) {
	DefaultTable.RegisterSource(domain, callerFile(2), build)
}

// Register adds build to domain, named after the calling file.
func (t *Table) Register(domain string, build Builder) {
	t.RegisterSource(domain, callerFile(2), build)
}

// RegisterSource adds build to domain under an explicit source name.
func (t *Table) RegisterSource(domain, source string, build Builder) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.domains[domain] = append(t.domains[domain], Source{
		Domain: domain,
		Name:   source,
		build:  build,
	})
}

// Sources returns the sources of domain ordered by source name,
// keeping registration order between equal names.
func (t *Table) Sources(domain string) []Source {
	t.mu.Lock()
	defer t.mu.Unlock()

	sources := append([]Source(nil), t.domains[domain]...)
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Name < sources[j].Name
	})
	return sources
}

// Domains returns every domain with at least one source, sorted.
func (t *Table) Domains() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	names := make([]string, 0, len(t.domains))
	for name := range t.domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func callerFile(skip int) string {
	_, file, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	return filepath.Base(file)
}
