package scaffold

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// ManifestFile is the project manifest written at the project root.
const ManifestFile = "bot.config.json"

// Manifest records how a project was generated and which commands it has.
type Manifest struct {
	Name       string              `json:"name" mapstructure:"name"`
	Module     string              `json:"module" mapstructure:"module"`
	Domains    []string            `json:"domains" mapstructure:"domains"`
	Commands   map[string][]string `json:"commands" mapstructure:"commands"`
	Storage    []string            `json:"storage,omitempty" mapstructure:"storage"`
	Minimal    bool                `json:"minimal" mapstructure:"minimal"`
	KitVersion string              `json:"kit_version,omitempty" mapstructure:"kit_version"`
}

func newManifest(opts Options) *Manifest {
	m := &Manifest{
		Name:       opts.Name,
		Module:     opts.Module,
		Domains:    opts.Domains,
		Commands:   make(map[string][]string),
		Storage:    opts.Storage(),
		Minimal:    opts.Minimal,
		KitVersion: opts.KitVersion,
	}
	m.Commands[opts.Domains[0]] = []string{"ping"}
	return m
}

// options rebuilds the generation options recorded in m.
func (m *Manifest) options() Options {
	opts := Options{
		Name:       m.Name,
		Module:     m.Module,
		Domains:    m.Domains,
		Minimal:    m.Minimal,
		KitVersion: m.KitVersion,
	}
	for _, s := range m.Storage {
		switch s {
		case "postgres":
			opts.WithPostgres = true
		case "sqlite":
			opts.WithSQLite = true
		case "mongo":
			opts.WithMongo = true
		}
	}
	return opts
}

// DomainOf returns the domain holding the command name.
func (m *Manifest) DomainOf(name string) (string, bool) {
	for domain, cmds := range m.Commands {
		for _, c := range cmds {
			if c == name {
				return domain, true
			}
		}
	}
	return "", false
}

// LoadManifest reads the manifest of the project in dir.
func LoadManifest(fs afero.Fs, dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !exists {
		return nil, ErrNotProject
	}

	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ManifestFile, err)
	}

	var m Manifest
	if err := v.Unmarshal(&m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ManifestFile, err)
	}
	if m.Commands == nil {
		m.Commands = make(map[string][]string)
	}
	return &m, nil
}

// SaveManifest writes m to the project in dir.
func SaveManifest(fs afero.Fs, dir string, m *Manifest) error {
	for _, cmds := range m.Commands {
		sort.Strings(cmds)
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	b = append(b, '\n')
	if err := afero.WriteFile(fs, filepath.Join(dir, ManifestFile), b, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ManifestFile, err)
	}
	return nil
}
