package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a04k/discordkit/commands"
	"github.com/a04k/discordkit/commands/commandstest"
)

func counting(n *int) commands.ExecuteFunc {
	return func(ctx context.Context, in commands.Interaction) error {
		*n++
		return in.Reply(ctx, commands.Response{Content: "ok"})
	}
}

func TestGuildOnlyRejectsDirectMessages(t *testing.T) {
	var runs int
	cmd := commandstest.Command("server", counting(&runs))
	cmd.Meta.GuildOnly = true
	d := commands.NewDispatcher(commands.NewRegistry(cmd), zerolog.Nop(), commands.GuildOnly())

	dm := commandstest.NewInteraction("server")
	dm.Guild = ""
	d.Dispatch(context.Background(), dm)

	require.Len(t, dm.Replies(), 1)
	assert.Equal(t, "This command can only be used in a server.", dm.Replies()[0].Response.Content)
	assert.Zero(t, runs)

	d.Dispatch(context.Background(), commandstest.NewInteraction("server"))
	assert.Equal(t, 1, runs)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		roles    []string
		roleErr  error
		wantRuns int
		wantMsg  string
	}{
		{name: "missing role", wantMsg: "You don't have permission to use this command."},
		{name: "holds role", roles: []string{"Moderator"}, wantRuns: 1, wantMsg: "ok"},
		{name: "lookup fails", roleErr: errors.New("rest down"), wantMsg: "❌ Something went wrong."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var runs int
			cmd := commandstest.Command("ban", counting(&runs))
			cmd.Meta.RequiredRole = "Moderator"
			d := commands.NewDispatcher(commands.NewRegistry(cmd), zerolog.Nop(), commands.RequireRole())

			in := commandstest.NewInteraction("ban")
			in.Roles = tt.roles
			in.RoleErr = tt.roleErr
			d.Dispatch(context.Background(), in)

			assert.Equal(t, tt.wantRuns, runs)
			require.Len(t, in.Replies(), 1)
			assert.Equal(t, tt.wantMsg, in.Replies()[0].Response.Content)
		})
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	var runs int
	cmd := commandstest.Command("spam", counting(&runs))
	limiter := commands.NewRateLimiter(2, time.Hour)
	d := commands.NewDispatcher(commands.NewRegistry(cmd), zerolog.Nop(), commands.RateLimit(limiter))

	for i := 0; i < 2; i++ {
		d.Dispatch(context.Background(), commandstest.NewInteraction("spam"))
	}
	blocked := commandstest.NewInteraction("spam")
	d.Dispatch(context.Background(), blocked)

	assert.Equal(t, 2, runs)
	require.Len(t, blocked.Replies(), 1)
	assert.Contains(t, blocked.Replies()[0].Response.Content, "You're doing that too often.")
	assert.True(t, blocked.Replies()[0].Response.Ephemeral)

	other := commandstest.NewInteraction("spam")
	other.Invoker.ID = "other"
	d.Dispatch(context.Background(), other)
	assert.Equal(t, 3, runs)
}

func TestMiddlewareRunsInOrder(t *testing.T) {
	var trace []string
	tag := func(name string) commands.Middleware {
		return func(_ *commands.Command, next commands.ExecuteFunc) commands.ExecuteFunc {
			return func(ctx context.Context, in commands.Interaction) error {
				trace = append(trace, name)
				return next(ctx, in)
			}
		}
	}
	cmd := commandstest.Command("ping", func(context.Context, commands.Interaction) error {
		trace = append(trace, "command")
		return nil
	})
	d := commands.NewDispatcher(commands.NewRegistry(cmd), zerolog.Nop(), tag("outer"), tag("inner"))

	d.Dispatch(context.Background(), commandstest.NewInteraction("ping"))
	assert.Equal(t, []string{"outer", "inner", "command"}, trace)
}
