package commands

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// ExecuteFunc runs a slash command for one interaction.
type ExecuteFunc func(ctx context.Context, in Interaction) error

// Builder constructs a command. It is called once while the registry loads.
type Builder func() (*Command, error)

// Meta holds the optional per-command settings enforced by middleware.
type Meta struct {
	// RequiredRole is a role ID, role mention or role name the invoker must hold.
	RequiredRole string
	// GuildOnly rejects invocations from direct messages.
	GuildOnly bool
}

// Command is one slash command: its descriptor, its handler and its settings.
type Command struct {
	Data    *discordgo.ApplicationCommand
	Execute ExecuteFunc
	Meta    Meta

	// Set by the loader.
	Domain string
	Source string
}

// Name returns the command name, or "" when the descriptor is missing.
func (c *Command) Name() string {
	if c == nil || c.Data == nil {
		return ""
	}
	return c.Data.Name
}

var (
	errMissingData    = errors.New("missing data")
	errMissingExecute = errors.New("missing execute")
)

// Discord slash command names: 1-32 chars, lowercase where the script has case.
var commandNamePattern = regexp.MustCompile(`^[-_\p{L}\p{N}\p{Devanagari}\p{Thai}]{1,32}$`)

// Validate checks the shape the platform requires before a command can be registered.
func (c *Command) Validate() error {
	if c == nil || c.Data == nil {
		return errMissingData
	}
	if c.Execute == nil {
		return errMissingExecute
	}
	if err := ValidateName(c.Data.Name); err != nil {
		return err
	}

	n := utf8.RuneCountInString(c.Data.Description)
	if n < 1 || n > 100 {
		return fmt.Errorf("description of /%s must be 1-100 characters, got %d", c.Data.Name, n)
	}
	return nil
}

// ValidateName reports whether name is a legal slash command name.
func ValidateName(name string) error {
	if !commandNamePattern.MatchString(name) {
		return fmt.Errorf("invalid command name %q", name)
	}
	if strings.ToLower(name) != name {
		return fmt.Errorf("command name %q must be lowercase", name)
	}
	return nil
}
