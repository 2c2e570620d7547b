package scaffold_test

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/a04k/discordkit/scaffold"
)

// TestGeneratedProjectsTypeCheck builds real projects against this module
// and runs go vet over them. It needs the go tool and a module cache or
// network access, so it is skipped with -short.
func TestGeneratedProjectsTypeCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("generates projects on disk and runs the go tool")
	}
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go tool not in PATH")
	}

	root, err := filepath.Abs("..")
	require.NoError(t, err)

	tests := []struct {
		name string
		opts scaffold.Options
	}{
		{"full", scaffold.Options{Domains: []string{"general", "fun"}, WithPostgres: true, WithSQLite: true, WithMongo: true}},
		{"minimal", scaffold.Options{Minimal: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			fs := afero.NewOsFs()
			g := &scaffold.Generator{Fs: fs, Log: zerolog.Nop()}
			opts := tt.opts
			opts.Name = "checkbot"
			opts.SkipInstall = true

			res, err := g.Generate(ctx, t.TempDir(), opts)
			require.NoError(t, err)
			_, err = scaffold.AddCommand(fs, res.Dir, "general", "remind-me")
			require.NoError(t, err)

			gomod := filepath.Join(res.Dir, "go.mod")
			f, err := os.OpenFile(gomod, os.O_APPEND|os.O_WRONLY, 0)
			require.NoError(t, err)
			_, err = f.WriteString("\nreplace github.com/a04k/discordkit => " + root + "\n")
			require.NoError(t, err)
			require.NoError(t, f.Close())

			var out bytes.Buffer
			run := scaffold.ExecRunner{Stdout: &out, Stderr: &out, Env: []string{"GOFLAGS=-mod=mod", "GOWORK=off"}}
			if err := run.Run(ctx, res.Dir, "go", "mod", "tidy"); err != nil {
				t.Skipf("cannot resolve dependencies: %v\n%s", err, out.String())
			}
			out.Reset()

			err = run.Run(ctx, res.Dir, "go", "vet", "./...")
			require.NoError(t, err, out.String())
		})
	}
}
