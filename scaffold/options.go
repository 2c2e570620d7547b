// Package scaffold generates new bot projects and adds commands to existing ones.
package scaffold

import (
	"errors"
	"fmt"
	"go/token"
	"regexp"
	"strings"
)

var (
	// ErrProjectExists is returned when the target directory already exists.
	ErrProjectExists = errors.New("project directory already exists")
	// ErrInvalidName is returned for project names that are not usable as a directory and module name.
	ErrInvalidName = errors.New("invalid project name")
	// ErrInvalidDomain is returned for domain names that are not valid Go package names.
	ErrInvalidDomain = errors.New("invalid domain name")
	// ErrInvalidCommand is returned for names Discord would reject.
	ErrInvalidCommand = errors.New("invalid command name")
	// ErrCommandExists is returned when a command name is already taken in the project.
	ErrCommandExists = errors.New("command already exists")
	// ErrNotProject is returned when no manifest is found.
	ErrNotProject = errors.New("not a bot project: " + ManifestFile + " not found")
)

// DefaultDomain is used when no domain is given.
const DefaultDomain = "general"

var (
	projectNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
	domainPattern      = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// Options configures project generation.
type Options struct {
	Name    string
	Module  string   // Go module path, defaults to Name
	Domains []string // first domain gets the ping command

	WithPostgres bool
	WithMongo    bool
	WithSQLite   bool

	Minimal     bool // skip middlewares, Makefile and README
	SkipInstall bool // do not run go mod tidy
	KitVersion  string
}

// Validate checks o and fills in defaults.
func (o *Options) Validate() error {
	o.Name = strings.TrimSpace(o.Name)
	if !projectNamePattern.MatchString(o.Name) {
		return fmt.Errorf("%w %q: use letters, digits, '-' and '_'", ErrInvalidName, o.Name)
	}
	if o.Module == "" {
		o.Module = o.Name
	}

	var domains []string
	seen := make(map[string]bool)
	for _, d := range o.Domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" || seen[d] {
			continue
		}
		if err := ValidateDomain(d); err != nil {
			return err
		}
		seen[d] = true
		domains = append(domains, d)
	}
	if len(domains) == 0 {
		domains = []string{DefaultDomain}
	}
	o.Domains = domains
	return nil
}

// WithSQL reports whether a SQL add-on was selected.
func (o Options) WithSQL() bool { return o.WithPostgres || o.WithSQLite }

// WithStore reports whether any storage add-on was selected.
func (o Options) WithStore() bool { return o.WithSQL() || o.WithMongo }

// Storage names the selected add-ons.
func (o Options) Storage() []string {
	var out []string
	if o.WithPostgres {
		out = append(out, "postgres")
	}
	if o.WithSQLite {
		out = append(out, "sqlite")
	}
	if o.WithMongo {
		out = append(out, "mongo")
	}
	return out
}

// ValidateDomain reports whether name can be used as a domain package.
func ValidateDomain(name string) error {
	if !domainPattern.MatchString(name) || token.IsKeyword(name) || name == "main" {
		return fmt.Errorf("%w %q: use a lowercase Go package name", ErrInvalidDomain, name)
	}
	return nil
}
