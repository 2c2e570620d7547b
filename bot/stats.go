package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/a04k/discordkit/commands"
	"github.com/a04k/discordkit/storage"
)

const statsLimit = 10

// TopCommander reports the most used commands.
type TopCommander interface {
	TopCommands(ctx context.Context, limit int) ([]storage.CommandCount, error)
}

// withStats adds /stats to reg unless a domain already defines it.
func withStats(reg *commands.Registry, usage TopCommander, log zerolog.Logger) *commands.Registry {
	if _, taken := reg.Get("stats"); taken {
		log.Debug().Msg("stats command defined by a domain, keeping it")
		return reg
	}
	cmd := statsCommand(usage)
	cmd.Domain = "bot"
	cmd.Source = "stats.go"
	return commands.NewRegistry(append(reg.Commands(), cmd)...)
}

func statsCommand(usage TopCommander) *commands.Command {
	return &commands.Command{
		Data: &discordgo.ApplicationCommand{
			Name:        "stats",
			Description: "Shows the most used commands",
		},
		Execute: func(ctx context.Context, in commands.Interaction) error {
			top, err := usage.TopCommands(ctx, statsLimit)
			if err != nil {
				return err
			}
			if len(top) == 0 {
				return in.Reply(ctx, commands.Response{Content: "No commands used yet.", Ephemeral: true})
			}

			lines := make([]string, 0, len(top))
			for i, c := range top {
				lines = append(lines, fmt.Sprintf("%d. `/%s` - %d uses", i+1, c.Command, c.Count))
			}
			return in.Reply(ctx, commands.Response{
				Embeds: []*discordgo.MessageEmbed{{
					Title:       "Most used commands",
					Description: strings.Join(lines, "\n"),
					Color:       0x00ff00,
				}},
				Ephemeral: true,
			})
		},
	}
}
