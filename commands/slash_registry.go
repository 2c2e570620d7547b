package commands

import (
	"sort"

	"github.com/bwmarrin/discordgo"
)

// Plan describes what a full-replace deploy would change remotely.
type Plan struct {
	Create    []string
	Update    []string
	Delete    []string
	Unchanged []string
}

// Empty reports whether the deploy would change nothing.
func (p *Plan) Empty() bool {
	return len(p.Create) == 0 && len(p.Update) == 0 && len(p.Delete) == 0
}

// commandNeedsUpdate checks if an existing command needs to be updated
func commandNeedsUpdate(existing, desired *discordgo.ApplicationCommand) bool {
	if existing.Name != desired.Name {
		return true
	}
	if existing.Description != desired.Description {
		return true
	}
	return optionsDiffer(existing.Options, desired.Options)
}

func optionsDiffer(existing, desired []*discordgo.ApplicationCommandOption) bool {
	if len(existing) != len(desired) {
		return true
	}
	for i, option := range existing {
		desiredOption := desired[i]
		if option.Name != desiredOption.Name ||
			option.Description != desiredOption.Description ||
			option.Type != desiredOption.Type ||
			option.Required != desiredOption.Required {
			return true
		}
		if optionsDiffer(option.Options, desiredOption.Options) {
			return true
		}
	}
	return false
}

func diffCommands(existing, desired []*discordgo.ApplicationCommand) *Plan {
	plan := &Plan{}

	existingMap := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		existingMap[cmd.Name] = cmd
	}

	for _, want := range desired {
		have, ok := existingMap[want.Name]
		switch {
		case !ok:
			plan.Create = append(plan.Create, want.Name)
		case commandNeedsUpdate(have, want):
			plan.Update = append(plan.Update, want.Name)
		default:
			plan.Unchanged = append(plan.Unchanged, want.Name)
		}
		// Remove from existing map so we know it's still wanted
		delete(existingMap, want.Name)
	}

	for name := range existingMap {
		plan.Delete = append(plan.Delete, name)
	}
	sort.Strings(plan.Delete)

	return plan
}
