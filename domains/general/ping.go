// Package general holds the general-purpose commands.
package general

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/a04k/discordkit/commands"
)

func init() {
	commands.Register("general", ping)
}

func ping() (*commands.Command, error) {
	return &commands.Command{
		Data: &discordgo.ApplicationCommand{
			Name:        "ping",
			Description: "Replies with Pong!",
		},
		Execute: func(ctx context.Context, in commands.Interaction) error {
			return in.Reply(ctx, commands.Response{Content: "Pong!"})
		},
	}, nil
}
