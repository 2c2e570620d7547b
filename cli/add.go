package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/a04k/discordkit/scaffold"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <domain> <command>",
		Short: "Add a slash command to the bot in the current directory",
		Long: `Add a slash command file to a domain of the current bot project.
The domain is created when it does not exist yet.`,
		Example: "  botcli add fun roll\n  botcli add general remind-me",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := a.getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}

			domain := strings.ToLower(strings.TrimSpace(args[0]))
			name := strings.TrimSpace(args[1])
			rel, err := scaffold.AddCommand(a.fs, cwd, domain, name)
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, successStyle.Render(fmt.Sprintf("✅ Added /%s to domain %s", name, domain)))
			fmt.Fprintf(a.out, "  %s %s\n", successStyle.Render("+"), rel)
			fmt.Fprintln(a.out, "\nRun "+commandStyle.Render("go run ./deploy")+" to publish it.")
			return nil
		},
	}
}
