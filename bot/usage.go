package bot

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/a04k/discordkit/commands"
	"github.com/a04k/discordkit/storage"
)

// UsageRecorder stores command invocations.
type UsageRecorder interface {
	Record(ctx context.Context, u storage.Usage) error
}

// RecordUsage records every successful invocation in each recorder.
// A recorder error is logged and does not fail the command.
func RecordUsage(log zerolog.Logger, recorders ...UsageRecorder) commands.Middleware {
	return func(cmd *commands.Command, next commands.ExecuteFunc) commands.ExecuteFunc {
		return func(ctx context.Context, in commands.Interaction) error {
			if err := next(ctx, in); err != nil {
				return err
			}

			u := storage.Usage{
				GuildID: in.GuildID(),
				Command: cmd.Name(),
				UsedAt:  time.Now(),
			}
			if user := in.User(); user != nil {
				u.UserID = user.ID
			}
			for _, rec := range recorders {
				if err := rec.Record(ctx, u); err != nil {
					log.Warn().Err(err).Str("command", u.Command).Msg("failed to record command usage")
				}
			}
			return nil
		}
	}
}
