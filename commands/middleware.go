package commands

import (
	"context"
	"fmt"
	"math"
)

// Middleware wraps the handler of cmd. A middleware that rejects an invocation
// replies itself and returns nil; returning an error counts as a command failure.
type Middleware func(cmd *Command, next ExecuteFunc) ExecuteFunc

func chain(cmd *Command, middleware []Middleware) ExecuteFunc {
	exec := cmd.Execute
	for i := len(middleware) - 1; i >= 0; i-- {
		exec = middleware[i](cmd, exec)
	}
	return exec
}

// GuildOnly rejects commands with Meta.GuildOnly when invoked outside a server.
func GuildOnly() Middleware {
	return func(cmd *Command, next ExecuteFunc) ExecuteFunc {
		if !cmd.Meta.GuildOnly {
			return next
		}
		return func(ctx context.Context, in Interaction) error {
			if in.GuildID() == "" {
				return in.Reply(ctx, Response{
					Content:   "This command can only be used in a server.",
					Ephemeral: true,
				})
			}
			return next(ctx, in)
		}
	}
}

// RequireRole enforces Meta.RequiredRole.
func RequireRole() Middleware {
	return func(cmd *Command, next ExecuteFunc) ExecuteFunc {
		role := cmd.Meta.RequiredRole
		if role == "" {
			return next
		}
		return func(ctx context.Context, in Interaction) error {
			ok, err := in.HasRole(ctx, role)
			if err != nil {
				return fmt.Errorf("check role %q: %w", role, err)
			}
			if !ok {
				return in.Reply(ctx, Response{
					Content:   "You don't have permission to use this command.",
					Ephemeral: true,
				})
			}
			return next(ctx, in)
		}
	}
}

// RateLimit rejects invocations once limiter runs out for the user and command.
func RateLimit(limiter *RateLimiter) Middleware {
	return func(cmd *Command, next ExecuteFunc) ExecuteFunc {
		return func(ctx context.Context, in Interaction) error {
			userID := ""
			if u := in.User(); u != nil {
				userID = u.ID
			}
			if !limiter.Allow(userID, cmd.Name()) {
				wait := int(math.Ceil(limiter.RetryAfter(userID, cmd.Name()).Seconds()))
				return in.Reply(ctx, Response{
					Content:   fmt.Sprintf("You're doing that too often. Try again in %d seconds.", wait),
					Ephemeral: true,
				})
			}
			return next(ctx, in)
		}
	}
}
