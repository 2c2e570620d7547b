package commands

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Registry maps command names to loaded commands. It is read-only once built.
type Registry struct {
	order    []string
	commands map[string]*Command
}

// NewRegistry builds a registry from cmds in order. When two commands share a
// name the later one replaces the earlier one, keeping the earlier position.
func NewRegistry(cmds ...*Command) *Registry {
	r := &Registry{commands: make(map[string]*Command, len(cmds))}
	for _, cmd := range cmds {
		name := cmd.Name()
		if _, exists := r.commands[name]; !exists {
			r.order = append(r.order, name)
		}
		r.commands[name] = cmd
	}
	return r
}

// Get returns the command registered under name.
func (r *Registry) Get(name string) (*Command, bool) {
	if r == nil {
		return nil, false
	}
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Len returns the number of distinct command names.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// Commands returns the commands in discovery order.
func (r *Registry) Commands() []*Command {
	if r == nil {
		return nil
	}
	cmds := make([]*Command, 0, len(r.order))
	for _, name := range r.order {
		cmds = append(cmds, r.commands[name])
	}
	return cmds
}

// Names returns the command names in discovery order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// ApplicationCommands returns the descriptors to send to Discord.
func (r *Registry) ApplicationCommands() []*discordgo.ApplicationCommand {
	cmds := r.Commands()
	out := make([]*discordgo.ApplicationCommand, 0, len(cmds))
	for _, cmd := range cmds {
		out = append(out, cmd.Data)
	}
	return out
}

// LoadCommands builds a registry from DefaultTable for the given domains.
func LoadCommands(domains []string, log zerolog.Logger) *Registry {
	return DefaultTable.Load(domains, log)
}

// Load builds a registry from the sources registered under domains, in the order given.
// It never fails: a broken source is logged and skipped.
func (t *Table) Load(domains []string, log zerolog.Logger) *Registry {
	log.Info().Strs("domains", domains).Msg("loading slash commands")

	var loaded []*Command
	seen := make(map[string]*Command)

	for _, domain := range domains {
		sources := t.Sources(domain)
		if len(sources) == 0 {
			log.Debug().Str("domain", domain).Msg("no commands registered for domain")
			continue
		}

		for _, src := range sources {
			cmd, err := src.load()
			if err != nil {
				log.Error().Err(err).
					Str("domain", domain).
					Str("source", src.Name).
					Msg("error loading command")
				continue
			}

			if err := cmd.Validate(); err != nil {
				log.Warn().Err(err).
					Str("domain", domain).
					Str("source", src.Name).
					Msg("skipping invalid command")
				continue
			}

			cmd.Domain = domain
			cmd.Source = src.Name

			if prev, dup := seen[cmd.Name()]; dup {
				log.Warn().
					Str("command", cmd.Name()).
					Str("previous", prev.Domain+"/"+prev.Source).
					Str("replacement", domain+"/"+src.Name).
					Msg("duplicate command name, later definition wins")
			}
			seen[cmd.Name()] = cmd

			loaded = append(loaded, cmd)
			log.Info().
				Str("command", cmd.Name()).
				Str("domain", domain).
				Str("source", src.Name).
				Msg("loaded command")
		}
	}

	reg := NewRegistry(loaded...)
	log.Info().
		Int("commands", reg.Len()).
		Int("domains", len(domains)).
		Msg("slash commands loaded")
	return reg
}
