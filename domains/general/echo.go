package general

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/a04k/discordkit/commands"
)

func init() {
	commands.Register("general", echo)
}

func echo() (*commands.Command, error) {
	return &commands.Command{
		Data: &discordgo.ApplicationCommand{
			Name:        "echo",
			Description: "Repeats your message",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "text",
					Description: "What to say",
					Required:    true,
					MaxLength:   2000,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "ephemeral",
					Description: "Only show the reply to you",
				},
			},
		},
		Execute: func(ctx context.Context, in commands.Interaction) error {
			opts := commands.OptionMap(in)

			var resp commands.Response
			if opt, ok := opts["text"]; ok {
				resp.Content = opt.StringValue()
			}
			if opt, ok := opts["ephemeral"]; ok {
				resp.Ephemeral = opt.BoolValue()
			}
			return in.Reply(ctx, resp)
		},
	}, nil
}
