package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a04k/discordkit/scaffold"
)

type buildFlags struct {
	output string
	goos   string
	goarch string
}

func newBuildCmd(a *app) *cobra.Command {
	var f buildFlags

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the bot binary",
		Long:  `Build the bot in the current directory into an executable binary.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBuild(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output binary name (default: bot name)")
	cmd.Flags().StringVar(&f.goos, "os", "", "Target OS (linux, windows, darwin)")
	cmd.Flags().StringVar(&f.goarch, "arch", "", "Target architecture (amd64, arm64)")
	return cmd
}

func (a *app) runBuild(ctx context.Context, f buildFlags) error {
	cwd, err := a.getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	m, err := scaffold.LoadManifest(a.fs, cwd)
	if errors.Is(err, scaffold.ErrNotProject) {
		return fmt.Errorf("%w, run 'botcli create <name>' to create a new bot project", err)
	}
	if err != nil {
		return err
	}

	output := f.output
	if output == "" {
		output = m.Name
		if f.goos == "windows" {
			output += ".exe"
		}
	}

	var env []string
	if f.goos != "" {
		env = append(env, "GOOS="+f.goos)
	}
	if f.goarch != "" {
		env = append(env, "GOARCH="+f.goarch)
	}

	fmt.Fprintf(a.out, "Building bot: %s\n", m.Name)
	if err := a.runner(env).Run(ctx, cwd, "go", "build", "-o", output, "."); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	fmt.Fprintln(a.out, successStyle.Render("✅ Successfully built: "+output))
	if f.goos == "" && f.goarch == "" {
		fmt.Fprintln(a.out, "\nTo run your bot:")
		fmt.Fprintf(a.out, "  ./%s\n", output)
	}
	return nil
}
