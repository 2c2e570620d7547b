package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/a04k/discordkit/scaffold"
)

// listedCommand joins a manifest entry with the file it was found in.
type listedCommand struct {
	Name    string
	File    string // empty when no file declares the command
	Tracked bool   // recorded in the manifest
}

func newListCmd(a *app) *cobra.Command {
	var domain string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the domains and commands of the bot in the current directory",
		Long: `Display every command domain of the current bot project with its commands.
Commands found in domain files but missing from the manifest are shown too.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(strings.ToLower(domain))
		},
	}
	cmd.Flags().StringVarP(&domain, "domain", "d", "", "Only list this domain")
	return cmd
}

func (a *app) runList(filter string) error {
	cwd, err := a.getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	m, err := scaffold.LoadManifest(a.fs, cwd)
	if err != nil {
		return err
	}
	found, err := discoverCommands(a.fs, cwd, a.log)
	if err != nil {
		return fmt.Errorf("failed to scan domains: %w", err)
	}

	domains, byDomain := mergeCommands(m, found)
	if filter != "" {
		if _, ok := byDomain[filter]; !ok {
			return fmt.Errorf("domain '%s' not found", filter)
		}
		domains = []string{filter}
	}

	fmt.Fprintf(a.out, "%s %s\n", titleStyle.Render("🤖 "+m.Name), mutedStyle.Render("("+m.Module+")"))
	storage := "none"
	if len(m.Storage) > 0 {
		storage = strings.Join(m.Storage, ", ")
	}
	fmt.Fprintf(a.out, "Storage: %s\n", storage)

	total := 0
	for _, d := range domains {
		fmt.Fprintf(a.out, "\n%s\n", commandStyle.Render(d))
		cmds := byDomain[d]
		if len(cmds) == 0 {
			fmt.Fprintln(a.out, mutedStyle.Render("  (no commands)"))
			continue
		}
		for _, c := range cmds {
			total++
			line := fmt.Sprintf("  /%-20s", c.Name)
			switch {
			case c.File == "":
				line += warningStyle.Render("missing from domains/" + d)
			case !c.Tracked:
				line += c.File + " " + warningStyle.Render("(not in "+scaffold.ManifestFile+")")
			default:
				line += mutedStyle.Render(c.File)
			}
			fmt.Fprintln(a.out, line)
		}
	}

	fmt.Fprintf(a.out, "\n%d domains, %d commands\n", len(domains), total)
	return nil
}

// mergeCommands combines the manifest with the scanned files. Manifest domains
// keep their order; domains only found on disk follow in name order.
func mergeCommands(m *scaffold.Manifest, found []discoveredCommand) ([]string, map[string][]listedCommand) {
	domains := append([]string(nil), m.Domains...)
	known := make(map[string]bool, len(domains))
	for _, d := range domains {
		known[d] = true
	}

	files := make(map[string]map[string]string)
	var extra []string
	for _, c := range found {
		if files[c.Domain] == nil {
			files[c.Domain] = make(map[string]string)
		}
		files[c.Domain][c.Name] = c.File
		if !known[c.Domain] {
			known[c.Domain] = true
			extra = append(extra, c.Domain)
		}
	}
	for d := range m.Commands {
		if !known[d] {
			known[d] = true
			extra = append(extra, d)
		}
	}
	sort.Strings(extra)
	domains = append(domains, extra...)

	byDomain := make(map[string][]listedCommand, len(domains))
	for _, d := range domains {
		cmds := []listedCommand{}
		tracked := make(map[string]bool)
		for _, name := range m.Commands[d] {
			tracked[name] = true
			cmds = append(cmds, listedCommand{Name: name, File: files[d][name], Tracked: true})
		}
		for name, file := range files[d] {
			if !tracked[name] {
				cmds = append(cmds, listedCommand{Name: name, File: file})
			}
		}
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
		byDomain[d] = cmds
	}
	return domains, byDomain
}
