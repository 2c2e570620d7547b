// Command deploy replaces the registered slash commands with the ones the bot loads.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/a04k/discordkit/bot"
	"github.com/a04k/discordkit/commands"
	"github.com/a04k/discordkit/config"
	"github.com/a04k/discordkit/domains"
	"github.com/a04k/discordkit/logger"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		dryRun bool
		global bool
	)

	cmd := &cobra.Command{
		Use:           "deploy",
		Short:         "Deploy slash commands to Discord",
		Long:          "Deploy replaces every registered slash command in the guild (or globally) with the commands of the configured domains.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if cmd.Flags().Changed("global") {
				cfg.UseGlobalCommands = global
			}

			log := logger.Open(os.Stderr, cfg.LogFormat, cfg.LogLevel)
			session, err := discordgo.New("Bot " + cfg.BotToken)
			if err != nil {
				log.Error().Err(err).Msg("failed to create session")
				return err
			}

			reg := commands.LoadCommands(domains.Names, log)
			return run(cmd.Context(), out, session, reg, bot.DeployOptions(cfg), dryRun, log)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would change without deploying")
	cmd.Flags().BoolVar(&global, "global", false, "deploy globally instead of to GUILD_ID")
	return cmd
}

func run(ctx context.Context, out io.Writer, catalog commands.Catalog, reg *commands.Registry, opts commands.DeployOptions, dryRun bool, log zerolog.Logger) error {
	d := commands.NewDeployer(catalog, log)
	if !dryRun {
		return d.Deploy(ctx, reg, opts)
	}

	plan, err := d.Plan(ctx, reg, opts)
	if err != nil {
		log.Error().Err(err).Msg("failed to plan deploy")
		return err
	}
	printPlan(out, plan)
	return nil
}

func printPlan(out io.Writer, plan *commands.Plan) {
	if plan.Empty() {
		fmt.Fprintln(out, "No changes, remote commands are up to date.")
		return
	}
	for _, name := range plan.Create {
		fmt.Fprintf(out, "  + /%s\n", name)
	}
	for _, name := range plan.Update {
		fmt.Fprintf(out, "  ~ /%s\n", name)
	}
	for _, name := range plan.Delete {
		fmt.Fprintf(out, "  - /%s\n", name)
	}
	fmt.Fprintf(out, "%d to create, %d to update, %d to delete\n", len(plan.Create), len(plan.Update), len(plan.Delete))
}
