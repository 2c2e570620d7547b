package commands

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

const (
	notFoundMessage = "Command not found."
	failureMessage  = "❌ Something went wrong."
)

// EventSource is where the dispatcher subscribes. *discordgo.Session implements it.
type EventSource interface {
	AddHandler(handler interface{}) func()
}

// Dispatcher routes slash command interactions to registry commands.
type Dispatcher struct {
	registry   *Registry
	log        zerolog.Logger
	middleware []Middleware
}

// NewDispatcher returns a dispatcher over registry. Middleware runs in the given order.
func NewDispatcher(registry *Registry, log zerolog.Logger, middleware ...Middleware) *Dispatcher {
	return &Dispatcher{
		registry:   registry,
		log:        log,
		middleware: middleware,
	}
}

// Register subscribes the dispatcher to interaction events on src and
// returns a function that removes the subscription.
func (d *Dispatcher) Register(src EventSource) func() {
	remove := src.AddHandler(d.handleInteraction)
	d.log.Info().Int("commands", d.registry.Len()).Msg("slash command handler initialized")
	return remove
}

func (d *Dispatcher) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	d.Dispatch(context.Background(), NewSessionInteraction(s, i))
}

// Dispatch handles one interaction. It never panics and never returns an error:
// command failures are logged and reported to the invoker.
func (d *Dispatcher) Dispatch(ctx context.Context, in Interaction) {
	if !in.IsChatInputCommand() {
		return
	}

	name := in.CommandName()
	log := d.log.With().Str("command", name).Logger()

	cmd, ok := d.registry.Get(name)
	if !ok {
		log.Warn().Msg("unknown command")
		if err := in.Reply(ctx, Response{Content: notFoundMessage, Ephemeral: true}); err != nil {
			log.Error().Err(err).Msg("error replying to unknown command")
		}
		return
	}

	if u := in.User(); u != nil {
		log = log.With().Str("user", u.String()).Str("user_id", u.ID).Logger()
	}
	log.Info().Msg("command triggered")

	ctx = WithRegistry(ctx, d.registry)
	if err := run(ctx, chain(cmd, d.middleware), in); err != nil {
		log.Error().Err(err).Msg("command failed")
		d.replyFailure(ctx, in, log)
		return
	}

	log.Info().Msg("command executed")
}

func run(ctx context.Context, exec ExecuteFunc, in Interaction) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return exec(ctx, in)
}

func (d *Dispatcher) replyFailure(ctx context.Context, in Interaction, log zerolog.Logger) {
	var err error
	if in.Replied() || in.Deferred() {
		err = in.EditReply(ctx, Response{Content: failureMessage})
	} else {
		err = in.Reply(ctx, Response{Content: failureMessage, Ephemeral: true})
	}
	if err != nil {
		log.Error().Err(err).Msg("error sending failure reply")
	}
}

type registryKey struct{}

// WithRegistry returns a context carrying reg.
func WithRegistry(ctx context.Context, reg *Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, reg)
}

// RegistryFromContext returns the registry of the dispatcher running the current command.
func RegistryFromContext(ctx context.Context) (*Registry, bool) {
	reg, ok := ctx.Value(registryKey{}).(*Registry)
	return reg, ok
}
