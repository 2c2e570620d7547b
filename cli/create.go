package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/a04k/discordkit/scaffold"
)

type createFlags struct {
	opts    scaffold.Options
	domains string
	prisma  bool
	yes     bool
}

func newCreateCmd(a *app) *cobra.Command {
	var f createFlags

	cmd := &cobra.Command{
		Use:   "create [bot-name]",
		Short: "Create a new Discord bot project",
		Long: `Create a new Discord bot project with the selected command domains and storage.
Missing answers are asked interactively unless --yes is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				f.opts.Name = args[0]
			}
			return a.runCreate(cmd.Context(), &f, cmd.Flags().Changed)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.domains, "domains", "", "Comma separated command domains (default \"general\")")
	flags.StringVar(&f.opts.Module, "module", "", "Go module path (default: bot name)")
	flags.BoolVar(&f.opts.WithPostgres, "with-postgres", false, "Add PostgreSQL storage")
	flags.BoolVar(&f.prisma, "with-prisma", false, "Alias for --with-postgres")
	flags.BoolVar(&f.opts.WithSQLite, "with-sqlite", false, "Add SQLite storage")
	flags.BoolVar(&f.opts.WithMongo, "with-mongo", false, "Add MongoDB storage")
	flags.BoolVar(&f.opts.Minimal, "minimal", false, "Skip middlewares, Makefile and README")
	flags.BoolVar(&f.opts.SkipInstall, "skip-install", false, "Do not run go mod tidy")
	flags.StringVar(&f.opts.KitVersion, "kit-version", "", "Pin the discordkit version in go.mod")
	flags.BoolVarP(&f.yes, "yes", "y", false, "Accept defaults without prompting")
	_ = flags.MarkHidden("with-prisma")

	return cmd
}

func (a *app) runCreate(ctx context.Context, f *createFlags, changed func(string) bool) error {
	if err := a.collectCreateOptions(f, changed); err != nil {
		return err
	}

	cwd, err := a.getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	fmt.Fprintf(a.out, "%s\n\n", titleStyle.Render("Creating Discord bot: "+f.opts.Name))

	g := &scaffold.Generator{Fs: a.fs, Runner: a.runner(nil), Log: a.log}
	res, err := g.Generate(ctx, cwd, f.opts)
	if res == nil {
		return err
	}

	for _, file := range res.Files {
		fmt.Fprintf(a.out, "  %s %s\n", successStyle.Render("+"), file)
	}

	fmt.Fprintf(a.out, "\n%s\n", successStyle.Render(fmt.Sprintf("✅ Successfully created bot '%s'", f.opts.Name)))
	fmt.Fprintf(a.out, "📁 Location: %s\n", res.Dir)

	fmt.Fprintln(a.out, "\nNext steps:")
	fmt.Fprintf(a.out, "  cd %s\n", f.opts.Name)
	if !res.Installed {
		fmt.Fprintln(a.out, "  go mod tidy")
	}
	fmt.Fprintln(a.out, "  # Edit .env with your Discord token, client ID and guild ID")
	fmt.Fprintln(a.out, "  go run ./deploy")
	fmt.Fprintln(a.out, "  go run .")

	if err != nil {
		fmt.Fprintln(a.out, warningStyle.Render("\nDependencies were not installed, run go mod tidy inside the project."))
		return err
	}
	return nil
}

// collectCreateOptions fills f from prompts for every value not given as an argument or flag.
func (a *app) collectCreateOptions(f *createFlags, changed func(string) bool) error {
	p := newPrompter(a.in, a.out)

	if f.opts.Name == "" && !f.yes {
		name, err := p.input("Bot name", "")
		if err != nil {
			return err
		}
		f.opts.Name = name
	}
	if strings.TrimSpace(f.opts.Name) == "" {
		return errors.New("bot name is required")
	}

	if f.prisma {
		f.opts.WithPostgres = true
	}

	if f.domains == "" && !f.yes {
		answer, err := p.input("Command domains (comma separated)", scaffold.DefaultDomain)
		if err != nil {
			return err
		}
		f.domains = answer
	}
	f.opts.Domains = strings.Split(f.domains, ",")

	if f.yes {
		return nil
	}

	storageChosen := changed("with-postgres") || changed("with-prisma") || changed("with-sqlite") || changed("with-mongo")
	if !storageChosen {
		questions := []struct {
			label string
			dst   *bool
		}{
			{"Add PostgreSQL storage?", &f.opts.WithPostgres},
			{"Add SQLite storage?", &f.opts.WithSQLite},
			{"Add MongoDB storage?", &f.opts.WithMongo},
		}
		for _, q := range questions {
			ok, err := p.yesNo(q.label, false)
			if err != nil {
				return err
			}
			*q.dst = ok
		}
	}

	if !changed("minimal") {
		ok, err := p.yesNo("Minimal project (no middlewares, Makefile or README)?", false)
		if err != nil {
			return err
		}
		f.opts.Minimal = ok
	}
	return nil
}
