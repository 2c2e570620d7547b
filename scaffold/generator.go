package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Generator writes projects to Fs and installs their dependencies with Runner.
type Generator struct {
	Fs     afero.Fs
	Runner Runner
	Log    zerolog.Logger
}

// NewGenerator returns a generator writing to the real file system.
func NewGenerator(log zerolog.Logger) *Generator {
	return &Generator{
		Fs:     afero.NewOsFs(),
		Runner: ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr},
		Log:    log,
	}
}

// Result describes a generated project.
type Result struct {
	Dir       string
	Files     []string
	Installed bool
}

// Generate creates the project opts.Name inside root.
//
// When only the dependency install fails, the project is left in place and
// the returned Result is valid alongside the error.
func (g *Generator) Generate(ctx context.Context, root string, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	dir := filepath.Join(root, opts.Name)
	exists, err := afero.Exists(g.Fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrProjectExists, dir)
	}

	g.Log.Info().Str("dir", dir).Msg("creating project")

	dirs, files := Plan(opts)
	if err := g.Fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", dir, err)
	}
	for _, d := range dirs {
		if err := g.Fs.MkdirAll(filepath.Join(dir, filepath.FromSlash(d)), 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	res := &Result{Dir: dir}
	for _, f := range files {
		if err := g.writeFile(dir, f.Path, f.Template, data{Options: opts, Domain: f.Domain}); err != nil {
			return nil, err
		}
		res.Files = append(res.Files, f.Path)
	}

	if err := SaveManifest(g.Fs, dir, newManifest(opts)); err != nil {
		return nil, err
	}
	res.Files = append(res.Files, ManifestFile)

	if opts.SkipInstall {
		return res, nil
	}

	g.Log.Info().Msg("installing dependencies")
	if err := g.Runner.Run(ctx, dir, "go", "mod", "tidy"); err != nil {
		return res, fmt.Errorf("install dependencies: %w", err)
	}
	res.Installed = true
	return res, nil
}

func (g *Generator) writeFile(dir, rel, tmpl string, d data) error {
	content, err := render(tmpl, d)
	if err != nil {
		return fmt.Errorf("generating %s: %w", rel, err)
	}
	if err := afero.WriteFile(g.Fs, filepath.Join(dir, filepath.FromSlash(rel)), content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	g.Log.Debug().Str("file", rel).Msg("created")
	return nil
}
