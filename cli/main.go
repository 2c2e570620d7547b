package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/a04k/discordkit/logger"
	"github.com/a04k/discordkit/scaffold"
)

// app holds the collaborators every subcommand works through.
type app struct {
	fs     afero.Fs
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	getwd  func() (string, error)
	log    zerolog.Logger

	// runner returns the program runner, with env added to the environment.
	runner func(env []string) scaffold.Runner
}

func newApp() *app {
	a := &app{
		fs:     afero.NewOsFs(),
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
		getwd:  os.Getwd,
		log:    logger.Open(os.Stderr, os.Getenv("LOG_FORMAT"), "warn"),
	}
	a.runner = func(env []string) scaffold.Runner {
		return scaffold.ExecRunner{Stdout: a.out, Stderr: a.errOut, Env: env}
	}
	return a
}

func newRootCmd(a *app) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "botcli",
		Short: "Discord Bot CLI - Create and manage your modular Discord bot",
		Long: `A CLI tool for creating modular Discord bots, similar to create-next-app.
Pick your command domains and storage, then add commands as the bot grows.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if verbose {
				a.log = a.log.Level(zerolog.DebugLevel)
			}
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every generated file")

	root.AddCommand(
		newCreateCmd(a),
		newAddCmd(a),
		newListCmd(a),
		newBuildCmd(a),
	)
	return root
}

func main() {
	a := newApp()
	if err := newRootCmd(a).Execute(); err != nil {
		fmt.Fprintln(a.errOut, errorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
