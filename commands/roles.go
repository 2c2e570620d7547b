package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// ExtractRoleID strips the <@&...> wrapper from a role mention.
func ExtractRoleID(input string) string {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "<@&") && strings.HasSuffix(input, ">") {
		return input[3 : len(input)-1]
	}
	return input // Return as is for ID/name validation
}

// FindRole looks a role up by ID or mention first, then by name (case-insensitive).
func FindRole(roles []*discordgo.Role, roleInput string) (*discordgo.Role, error) {
	cleanedInput := ExtractRoleID(roleInput)

	for _, role := range roles {
		if role.ID == cleanedInput {
			return role, nil
		}
	}

	cleanedInput = strings.ToLower(cleanedInput)
	for _, role := range roles {
		if strings.ToLower(role.Name) == cleanedInput {
			return role, nil
		}
	}

	return nil, fmt.Errorf("role %q not found", roleInput)
}

// MemberHasRole reports whether member holds the role with roleID.
func MemberHasRole(member *discordgo.Member, roleID string) bool {
	if member == nil {
		return false
	}
	for _, id := range member.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}
