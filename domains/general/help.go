package general

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/a04k/discordkit/commands"
)

func init() {
	commands.Register("general", help)
}

func help() (*commands.Command, error) {
	return &commands.Command{
		Data: &discordgo.ApplicationCommand{
			Name:        "help",
			Description: "Lists the available commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "command",
					Description: "Show details for one command",
				},
			},
		},
		Execute: runHelp,
	}, nil
}

func runHelp(ctx context.Context, in commands.Interaction) error {
	reg, ok := commands.RegistryFromContext(ctx)
	if !ok || reg.Len() == 0 {
		return in.Reply(ctx, commands.Response{Content: "No commands available.", Ephemeral: true})
	}

	if opt, ok := commands.OptionMap(in)["command"]; ok {
		name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(opt.StringValue())), "/")
		cmd, found := reg.Get(name)
		if !found {
			return in.Reply(ctx, commands.Response{
				Content:   fmt.Sprintf("Command `%s` not found.", name),
				Ephemeral: true,
			})
		}
		return in.Reply(ctx, commands.Response{Embeds: []*discordgo.MessageEmbed{commandEmbed(cmd)}, Ephemeral: true})
	}

	return in.Reply(ctx, commands.Response{Embeds: []*discordgo.MessageEmbed{listEmbed(reg)}, Ephemeral: true})
}

// Discord embed limits.
const (
	maxFieldValue = 1024
	maxFields     = 25
	maxEmbedChars = 6000
	footerReserve = 100
)

func listEmbed(reg *commands.Registry) *discordgo.MessageEmbed {
	byDomain := make(map[string][]string)
	var domains []string
	for _, cmd := range reg.Commands() {
		if _, seen := byDomain[cmd.Domain]; !seen {
			domains = append(domains, cmd.Domain)
		}
		byDomain[cmd.Domain] = append(byDomain[cmd.Domain],
			fmt.Sprintf("`/%s` - %s", cmd.Name(), cmd.Data.Description))
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Bot Commands",
		Description: "Use `/help command:<name>` for details on a command.",
		Color:       0x00ff00,
	}
	total := utf8.RuneCountInString(embed.Title) + utf8.RuneCountInString(embed.Description)
	hidden := 0
	for _, domain := range domains {
		name := domainTitle(domain)
		for i, value := range chunkLines(byDomain[domain], maxFieldValue) {
			fieldName := name
			if i > 0 {
				fieldName += " (cont.)"
			}
			size := utf8.RuneCountInString(fieldName) + utf8.RuneCountInString(value)
			if len(embed.Fields) == maxFields || total+size > maxEmbedChars-footerReserve {
				hidden += strings.Count(value, "\n") + 1
				continue
			}
			total += size
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: fieldName, Value: value})
		}
	}
	if hidden > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d more commands not shown, use /help command:<name>.", hidden),
		}
	}
	return embed
}

func domainTitle(domain string) string {
	if domain == "" {
		return "Other"
	}
	r, size := utf8.DecodeRuneInString(domain)
	return string(unicode.ToUpper(r)) + domain[size:]
}

// chunkLines joins lines with newlines into values of at most limit runes.
// A single longer line is cut short.
func chunkLines(lines []string, limit int) []string {
	var (
		chunks []string
		cur    strings.Builder
		n      int
	)
	for _, line := range lines {
		if r := []rune(line); len(r) > limit {
			line = string(r[:limit-1]) + "…"
		}
		ln := utf8.RuneCountInString(line)
		if n > 0 && n+1+ln > limit {
			chunks = append(chunks, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte('\n')
			n++
		}
		cur.WriteString(line)
		n += ln
	}
	if n > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

func commandEmbed(cmd *commands.Command) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Help: /" + cmd.Name(),
		Description: cmd.Data.Description,
		Color:       0x00ff00,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Usage", Value: "`" + usage(cmd.Data) + "`"},
		},
	}
	if cmd.Meta.RequiredRole != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Requires role",
			Value: cmd.Meta.RequiredRole,
		})
	}
	return embed
}

// usage renders "/name <required> [optional]", required options first.
func usage(data *discordgo.ApplicationCommand) string {
	opts := append([]*discordgo.ApplicationCommandOption(nil), data.Options...)
	sort.SliceStable(opts, func(i, j int) bool { return opts[i].Required && !opts[j].Required })

	parts := []string{"/" + data.Name}
	for _, opt := range opts {
		if opt.Required {
			parts = append(parts, "<"+opt.Name+">")
		} else {
			parts = append(parts, "["+opt.Name+"]")
		}
	}
	return strings.Join(parts, " ")
}
