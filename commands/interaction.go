package commands

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// Response is a reply to an interaction.
type Response struct {
	Content   string
	Embeds    []*discordgo.MessageEmbed
	Ephemeral bool
}

// Interaction is the part of an inbound interaction event that commands and the dispatcher use.
type Interaction interface {
	IsChatInputCommand() bool
	CommandName() string
	User() *discordgo.User
	GuildID() string
	Options() []*discordgo.ApplicationCommandInteractionDataOption

	// Reply sends the initial response.
	Reply(ctx context.Context, r Response) error
	// Defer acknowledges the interaction; the response is sent later with EditReply.
	Defer(ctx context.Context, ephemeral bool) error
	// EditReply replaces the initial or deferred response.
	EditReply(ctx context.Context, r Response) error
	Replied() bool
	Deferred() bool

	// HasRole reports whether the invoker holds role (ID, mention or name).
	HasRole(ctx context.Context, role string) (bool, error)
}

// SessionInteraction adapts a discordgo interaction event.
type SessionInteraction struct {
	s *discordgo.Session
	i *discordgo.InteractionCreate

	mu       sync.Mutex
	replied  bool
	deferred bool
}

// NewSessionInteraction wraps one interaction event received on s.
func NewSessionInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) *SessionInteraction {
	return &SessionInteraction{s: s, i: i}
}

func (si *SessionInteraction) IsChatInputCommand() bool {
	if si.i == nil || si.i.Interaction == nil || si.i.Type != discordgo.InteractionApplicationCommand {
		return false
	}
	return si.i.ApplicationCommandData().CommandType == discordgo.ChatApplicationCommand
}

func (si *SessionInteraction) CommandName() string {
	if si.i.Type != discordgo.InteractionApplicationCommand {
		return ""
	}
	return si.i.ApplicationCommandData().Name
}

func (si *SessionInteraction) User() *discordgo.User {
	if si.i.Member != nil && si.i.Member.User != nil {
		return si.i.Member.User
	}
	return si.i.User
}

func (si *SessionInteraction) GuildID() string {
	return si.i.GuildID
}

func (si *SessionInteraction) Options() []*discordgo.ApplicationCommandInteractionDataOption {
	if si.i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}
	return si.i.ApplicationCommandData().Options
}

func (si *SessionInteraction) Reply(ctx context.Context, r Response) error {
	data := &discordgo.InteractionResponseData{
		Content: r.Content,
		Embeds:  r.Embeds,
	}
	if r.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	err := si.s.InteractionRespond(si.i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return err
	}

	si.mu.Lock()
	si.replied = true
	si.mu.Unlock()
	return nil
}

func (si *SessionInteraction) Defer(ctx context.Context, ephemeral bool) error {
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}
	if ephemeral {
		resp.Data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}

	if err := si.s.InteractionRespond(si.i.Interaction, resp, discordgo.WithContext(ctx)); err != nil {
		return err
	}

	si.mu.Lock()
	si.deferred = true
	si.mu.Unlock()
	return nil
}

func (si *SessionInteraction) EditReply(ctx context.Context, r Response) error {
	edit := &discordgo.WebhookEdit{Content: &r.Content}
	if r.Embeds != nil {
		edit.Embeds = &r.Embeds
	}

	_, err := si.s.InteractionResponseEdit(si.i.Interaction, edit, discordgo.WithContext(ctx))
	return err
}

func (si *SessionInteraction) Replied() bool {
	si.mu.Lock()
	defer si.mu.Unlock()
	return si.replied
}

func (si *SessionInteraction) Deferred() bool {
	si.mu.Lock()
	defer si.mu.Unlock()
	return si.deferred
}

func (si *SessionInteraction) HasRole(ctx context.Context, role string) (bool, error) {
	member := si.i.Member
	if member == nil || si.i.GuildID == "" {
		return false, nil
	}

	id := ExtractRoleID(role)
	for _, held := range member.Roles {
		if held == id {
			return true, nil
		}
	}

	roles, err := si.guildRoles(ctx)
	if err != nil {
		return false, err
	}
	target, err := FindRole(roles, role)
	if err != nil {
		return false, nil
	}
	return MemberHasRole(member, target.ID), nil
}

func (si *SessionInteraction) guildRoles(ctx context.Context) ([]*discordgo.Role, error) {
	if si.s.State != nil {
		if guild, err := si.s.State.Guild(si.i.GuildID); err == nil && len(guild.Roles) > 0 {
			return guild.Roles, nil
		}
	}
	return si.s.GuildRoles(si.i.GuildID, discordgo.WithContext(ctx))
}

// OptionMap indexes the options of in by name.
func OptionMap(in Interaction) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := in.Options()
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		m[opt.Name] = opt
	}
	return m
}
