package finance

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/a04k/discordkit/commands"
)

func init() {
	commands.Register("finance", func() (*commands.Command, error) {
		return usd(defaultQuotes), nil
	})
}

func usd(q *Quotes) *commands.Command {
	minAmount := 0.01
	return &commands.Command{
		Data: &discordgo.ApplicationCommand{
			Name:        "usd",
			Description: "Converts US dollars to Egyptian pounds",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionNumber,
					Name:        "amount",
					Description: "Amount in USD (default 1)",
					MinValue:    &minAmount,
				},
			},
		},
		Execute: func(ctx context.Context, in commands.Interaction) error {
			amount := 1.0
			if opt, ok := commands.OptionMap(in)["amount"]; ok {
				amount = opt.FloatValue()
			}
			if amount <= 0 {
				return in.Reply(ctx, commands.Response{
					Content:   "Invalid amount. Usage: /usd [amount]",
					Ephemeral: true,
				})
			}

			if err := in.Defer(ctx, false); err != nil {
				return err
			}

			rate, err := q.USDEGP(ctx)
			if err != nil {
				return err
			}

			content := fmt.Sprintf("1 USD = %.2f EGP", rate)
			if amount != 1 {
				content = fmt.Sprintf("%.2f USD = %.2f EGP", amount, amount*rate)
			}
			return in.EditReply(ctx, commands.Response{Content: content})
		},
	}
}
