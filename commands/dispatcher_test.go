package commands_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/a04k/discordkit/commands"
	"github.com/a04k/discordkit/commands/commandstest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func pong(ctx context.Context, in commands.Interaction) error {
	return in.Reply(ctx, commands.Response{Content: "Pong!"})
}

func TestDispatchUnknownCommandRepliesOnce(t *testing.T) {
	var calls atomic.Int32
	reg := commands.NewRegistry(commandstest.Command("ping", func(context.Context, commands.Interaction) error {
		calls.Add(1)
		return nil
	}))
	var buf bytes.Buffer
	d := commands.NewDispatcher(reg, zerolog.New(&buf))

	in := commandstest.NewInteraction("nope")
	d.Dispatch(context.Background(), in)

	replies := in.Replies()
	require.Len(t, replies, 1)
	assert.Equal(t, "Command not found.", replies[0].Response.Content)
	assert.True(t, replies[0].Response.Ephemeral)
	assert.Zero(t, calls.Load())
	assert.Contains(t, buf.String(), "unknown command")
}

func TestDispatchIgnoresNonChatInteractions(t *testing.T) {
	reg := commands.NewRegistry(commandstest.Command("ping", pong))
	d := commands.NewDispatcher(reg, zerolog.Nop())

	in := commandstest.NewInteraction("ping")
	in.NotChat = true
	d.Dispatch(context.Background(), in)

	assert.Empty(t, in.Replies())
}

func TestDispatchRunsCommand(t *testing.T) {
	reg := commands.NewRegistry(commandstest.Command("ping", pong))
	var buf bytes.Buffer
	d := commands.NewDispatcher(reg, zerolog.New(&buf))

	in := commandstest.NewInteraction("ping")
	d.Dispatch(context.Background(), in)

	replies := in.Replies()
	require.Len(t, replies, 1)
	assert.Equal(t, "Pong!", replies[0].Response.Content)
	assert.Contains(t, buf.String(), "command executed")
	assert.Contains(t, buf.String(), `"user_id":"1001"`)
}

func TestDispatchFailureIsContained(t *testing.T) {
	reg := commands.NewRegistry(
		commandstest.Command("fail", func(context.Context, commands.Interaction) error {
			return errors.New("database down")
		}),
		commandstest.Command("ping", pong),
	)
	var buf bytes.Buffer
	d := commands.NewDispatcher(reg, zerolog.New(&buf))

	failing := commandstest.NewInteraction("fail")
	d.Dispatch(context.Background(), failing)

	replies := failing.Replies()
	require.Len(t, replies, 1)
	assert.Equal(t, "❌ Something went wrong.", replies[0].Response.Content)
	assert.True(t, replies[0].Response.Ephemeral)
	assert.False(t, replies[0].Edit)
	assert.Contains(t, buf.String(), "database down")
	assert.Contains(t, buf.String(), `"command":"fail"`)

	next := commandstest.NewInteraction("ping")
	d.Dispatch(context.Background(), next)
	require.Len(t, next.Replies(), 1)
	assert.Equal(t, "Pong!", next.Replies()[0].Response.Content)
}

func TestDispatchFailureAfterDeferEditsReply(t *testing.T) {
	reg := commands.NewRegistry(commandstest.Command("slow", func(ctx context.Context, in commands.Interaction) error {
		if err := in.Defer(ctx, false); err != nil {
			return err
		}
		return errors.New("upstream timeout")
	}))
	d := commands.NewDispatcher(reg, zerolog.Nop())

	in := commandstest.NewInteraction("slow")
	d.Dispatch(context.Background(), in)

	replies := in.Replies()
	require.Len(t, replies, 1)
	assert.True(t, replies[0].Edit)
	assert.Equal(t, "❌ Something went wrong.", replies[0].Response.Content)
}

func TestDispatchFailureAfterReplyEditsReply(t *testing.T) {
	reg := commands.NewRegistry(commandstest.Command("half", func(ctx context.Context, in commands.Interaction) error {
		_ = in.Reply(ctx, commands.Response{Content: "working"})
		return errors.New("second step failed")
	}))
	d := commands.NewDispatcher(reg, zerolog.Nop())

	in := commandstest.NewInteraction("half")
	d.Dispatch(context.Background(), in)

	replies := in.Replies()
	require.Len(t, replies, 2)
	assert.True(t, replies[1].Edit)
}

func TestDispatchRecoversPanics(t *testing.T) {
	reg := commands.NewRegistry(commandstest.Command("crash", func(context.Context, commands.Interaction) error {
		var m map[string]int
		m["x"] = 1
		return nil
	}))
	var buf bytes.Buffer
	d := commands.NewDispatcher(reg, zerolog.New(&buf))

	in := commandstest.NewInteraction("crash")
	assert.NotPanics(t, func() { d.Dispatch(context.Background(), in) })
	require.Len(t, in.Replies(), 1)
	assert.Contains(t, buf.String(), "panic")
}

func TestDispatchLogsFailedFailureReply(t *testing.T) {
	reg := commands.NewRegistry(commandstest.Command("fail", func(context.Context, commands.Interaction) error {
		return errors.New("nope")
	}))
	var buf bytes.Buffer
	d := commands.NewDispatcher(reg, zerolog.New(&buf))

	in := commandstest.NewInteraction("fail")
	in.ReplyErr = errors.New("interaction expired")
	d.Dispatch(context.Background(), in)

	assert.Contains(t, buf.String(), "error sending failure reply")
}

func TestDispatchPutsRegistryInContext(t *testing.T) {
	var got *commands.Registry
	reg := commands.NewRegistry(commandstest.Command("help", func(ctx context.Context, _ commands.Interaction) error {
		got, _ = commands.RegistryFromContext(ctx)
		return nil
	}))
	d := commands.NewDispatcher(reg, zerolog.Nop())

	d.Dispatch(context.Background(), commandstest.NewInteraction("help"))
	assert.Same(t, reg, got)

	_, ok := commands.RegistryFromContext(context.Background())
	assert.False(t, ok)
}

func TestDispatchConcurrentEvents(t *testing.T) {
	var calls atomic.Int32
	reg := commands.NewRegistry(commandstest.Command("ping", func(ctx context.Context, in commands.Interaction) error {
		calls.Add(1)
		return pong(ctx, in)
	}))
	d := commands.NewDispatcher(reg, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Dispatch(context.Background(), commandstest.NewInteraction("ping"))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(20), calls.Load())
}

func TestRegisterSubscribesToEventSource(t *testing.T) {
	d := commands.NewDispatcher(commands.NewRegistry(), zerolog.Nop())
	src := &commandstest.EventSource{}

	remove := d.Register(src)
	require.Len(t, src.Handlers, 1)

	remove()
	assert.Equal(t, 1, src.Removed)
}
