// Package commandstest provides in-memory fakes for the interaction, event
// source and remote catalog used by the commands package.
package commandstest

import (
	"context"
	"sync"

	"github.com/a04k/discordkit/commands"
	"github.com/bwmarrin/discordgo"
)

// Reply records one Reply or EditReply call.
type Reply struct {
	Response commands.Response
	Edit     bool
}

// Interaction is a scripted commands.Interaction that records replies.
type Interaction struct {
	Name     string
	NotChat  bool
	Invoker  *discordgo.User
	Guild    string
	Opts     []*discordgo.ApplicationCommandInteractionDataOption
	Roles    []string
	RoleErr  error
	ReplyErr error
	DeferErr error
	EditErr  error

	mu       sync.Mutex
	replies  []Reply
	replied  bool
	deferred bool
}

// NewInteraction returns a chat-input interaction for the named command
// invoked by a default user inside a guild.
func NewInteraction(name string) *Interaction {
	return &Interaction{
		Name:    name,
		Invoker: &discordgo.User{ID: "1001", Username: "tester"},
		Guild:   "2002",
	}
}

func (f *Interaction) IsChatInputCommand() bool { return !f.NotChat }

func (f *Interaction) CommandName() string { return f.Name }

func (f *Interaction) User() *discordgo.User { return f.Invoker }

func (f *Interaction) GuildID() string { return f.Guild }

func (f *Interaction) Options() []*discordgo.ApplicationCommandInteractionDataOption {
	return f.Opts
}

func (f *Interaction) Reply(_ context.Context, r commands.Response) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReplyErr != nil {
		return f.ReplyErr
	}
	f.replies = append(f.replies, Reply{Response: r})
	f.replied = true
	return nil
}

func (f *Interaction) Defer(_ context.Context, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeferErr != nil {
		return f.DeferErr
	}
	f.deferred = true
	return nil
}

func (f *Interaction) EditReply(_ context.Context, r commands.Response) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.EditErr != nil {
		return f.EditErr
	}
	f.replies = append(f.replies, Reply{Response: r, Edit: true})
	return nil
}

func (f *Interaction) Replied() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.replied
}

func (f *Interaction) Deferred() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deferred
}

func (f *Interaction) HasRole(_ context.Context, role string) (bool, error) {
	if f.RoleErr != nil {
		return false, f.RoleErr
	}
	for _, r := range f.Roles {
		if r == role {
			return true, nil
		}
	}
	return false, nil
}

// Replies returns every recorded reply in order.
func (f *Interaction) Replies() []Reply {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Reply(nil), f.replies...)
}

// StringOption builds a string option value as Discord sends it.
func StringOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

// NumberOption builds a number option value as Discord sends it.
func NumberOption(name string, value float64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionNumber,
		Value: value,
	}
}

// BoolOption builds a boolean option value as Discord sends it.
func BoolOption(name string, value bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionBoolean,
		Value: value,
	}
}

// EventSource records handlers added by a dispatcher.
type EventSource struct {
	mu       sync.Mutex
	Handlers []interface{}
	Removed  int
}

func (e *EventSource) AddHandler(handler interface{}) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Handlers = append(e.Handlers, handler)
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.Removed++
	}
}

// Overwrite records one bulk overwrite call.
type Overwrite struct {
	AppID    string
	GuildID  string
	Commands []*discordgo.ApplicationCommand
}

// Catalog is an in-memory remote command catalog.
type Catalog struct {
	mu         sync.Mutex
	Existing   []*discordgo.ApplicationCommand
	Err        error
	Overwrites []Overwrite
	Lists      int
}

func (c *Catalog) ApplicationCommandBulkOverwrite(appID string, guildID string, cmds []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Overwrites = append(c.Overwrites, Overwrite{AppID: appID, GuildID: guildID, Commands: cmds})
	if c.Err != nil {
		return nil, c.Err
	}
	c.Existing = cmds
	return cmds, nil
}

func (c *Catalog) ApplicationCommands(_, _ string, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Lists++
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Existing, nil
}

// Calls returns the number of network calls made against the catalog.
func (c *Catalog) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.Overwrites) + c.Lists
}

// Command returns a valid command whose handler calls exec.
func Command(name string, exec commands.ExecuteFunc) *commands.Command {
	return &commands.Command{
		Data: &discordgo.ApplicationCommand{
			Name:        name,
			Description: "test command " + name,
		},
		Execute: exec,
	}
}
