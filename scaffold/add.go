package scaffold

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/a04k/discordkit/commands"
)

// AddCommand creates the command name in domain of the project in dir and
// returns the new file's path relative to dir. A new domain is added to the
// manifest and to domains/domains.go.
func AddCommand(fs afero.Fs, dir, domain, name string) (string, error) {
	if err := ValidateDomain(domain); err != nil {
		return "", err
	}
	if err := commands.ValidateName(name); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}

	m, err := LoadManifest(fs, dir)
	if err != nil {
		return "", err
	}
	if owner, ok := m.DomainOf(name); ok {
		return "", fmt.Errorf("%w: /%s is in domain %s", ErrCommandExists, name, owner)
	}

	rel := path.Join("domains", domain, commandFile(name))
	target := filepath.Join(dir, filepath.FromSlash(rel))
	exists, err := afero.Exists(fs, target)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", rel, err)
	}
	if exists {
		return "", fmt.Errorf("%w: %s", ErrCommandExists, rel)
	}

	newDomain := true
	for _, d := range m.Domains {
		if d == domain {
			newDomain = false
			break
		}
	}

	g := &Generator{Fs: fs, Log: zerolog.Nop()}
	if err := fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", rel, err)
	}
	if newDomain {
		m.Domains = append(m.Domains, domain)
		if err := g.writeFile(dir, "domains/domains.go", "domains.go.tmpl", data{Options: m.options()}); err != nil {
			return "", err
		}
	}
	if err := g.writeFile(dir, rel, "command.go.tmpl", data{Options: m.options(), Domain: domain, Command: name}); err != nil {
		return "", err
	}

	m.Commands[domain] = append(m.Commands[domain], name)
	if err := SaveManifest(fs, dir, m); err != nil {
		return "", err
	}
	return rel, nil
}
