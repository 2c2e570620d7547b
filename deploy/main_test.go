package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a04k/discordkit/commands"
	"github.com/a04k/discordkit/commands/commandstest"
	"github.com/a04k/discordkit/domains"
)

func TestDryRunPrintsPlanWithoutDeploying(t *testing.T) {
	catalog := &commandstest.Catalog{
		Existing: []*discordgo.ApplicationCommand{{Name: "legacy", Description: "old"}},
	}
	reg := commands.NewRegistry(commandstest.Command("ping", func(context.Context, commands.Interaction) error { return nil }))

	var out bytes.Buffer
	err := run(context.Background(), &out, catalog, reg, commands.DeployOptions{ApplicationID: "app", Global: true}, true, zerolog.Nop())
	require.NoError(t, err)

	assert.Empty(t, catalog.Overwrites)
	assert.Contains(t, out.String(), "  + /ping")
	assert.Contains(t, out.String(), "  - /legacy")
	assert.Contains(t, out.String(), "1 to create, 0 to update, 1 to delete")
}

func TestDeployReferenceDomains(t *testing.T) {
	catalog := &commandstest.Catalog{}
	reg := commands.LoadCommands(domains.Names, zerolog.Nop())

	err := run(context.Background(), &bytes.Buffer{}, catalog, reg, commands.DeployOptions{ApplicationID: "app", GuildID: "guild"}, false, zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, catalog.Overwrites, 1)
	var names []string
	for _, cmd := range catalog.Overwrites[0].Commands {
		names = append(names, cmd.Name)
	}
	assert.ElementsMatch(t, []string{"ping", "echo", "help", "usd", "btc"}, names)
}

func TestDeployMissingGuild(t *testing.T) {
	catalog := &commandstest.Catalog{}
	reg := commands.LoadCommands(domains.Names, zerolog.Nop())

	err := run(context.Background(), &bytes.Buffer{}, catalog, reg, commands.DeployOptions{ApplicationID: "app"}, false, zerolog.Nop())
	assert.ErrorIs(t, err, commands.ErrGuildIDRequired)
	assert.Zero(t, catalog.Calls())
}

func TestPrintPlanNoChanges(t *testing.T) {
	var out bytes.Buffer
	printPlan(&out, &commands.Plan{Unchanged: []string{"ping"}})
	assert.Equal(t, "No changes, remote commands are up to date.\n", out.String())
}
