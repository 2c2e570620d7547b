package finance

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/a04k/discordkit/commands"
)

func init() {
	commands.Register("finance", func() (*commands.Command, error) {
		return btc(defaultQuotes), nil
	})
}

func btc(q *Quotes) *commands.Command {
	return &commands.Command{
		Data: &discordgo.ApplicationCommand{
			Name:        "btc",
			Description: "Shows the current bitcoin price",
		},
		Execute: func(ctx context.Context, in commands.Interaction) error {
			if err := in.Defer(ctx, false); err != nil {
				return err
			}

			price, err := q.BTCUSD(ctx)
			if err != nil {
				return err
			}
			return in.EditReply(ctx, commands.Response{Content: fmt.Sprintf("BTC Price: $%.2f", price)})
		},
	}
}
