package scaffold_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a04k/discordkit/scaffold"
)

func newProject(t *testing.T) afero.Fs {
	t.Helper()
	g, _ := newGenerator()
	_, err := g.Generate(context.Background(), "/work", scaffold.Options{Name: "mybot", SkipInstall: true})
	require.NoError(t, err)
	return g.Fs
}

func TestAddCommandToExistingDomain(t *testing.T) {
	fs := newProject(t)

	rel, err := scaffold.AddCommand(fs, "/work/mybot", "general", "remind-me")
	require.NoError(t, err)
	assert.Equal(t, "domains/general/remind-me.go", rel)

	src := readFile(t, fs, "/work/mybot/domains/general/remind-me.go")
	assert.Contains(t, src, "package general")
	assert.Contains(t, src, `commands.Register("general", remindMeCommand)`)
	assert.Contains(t, src, `Name:        "remind-me"`)

	m, err := scaffold.LoadManifest(fs, "/work/mybot")
	require.NoError(t, err)
	assert.Equal(t, []string{"ping", "remind-me"}, m.Commands["general"])
	assert.Equal(t, []string{"general"}, m.Domains)

	requireValidGo(t, fs, "/work/mybot")
}

func TestAddCommandCreatesDomain(t *testing.T) {
	fs := newProject(t)

	rel, err := scaffold.AddCommand(fs, "/work/mybot", "moderation", "kick")
	require.NoError(t, err)
	assert.Equal(t, "domains/moderation/kick.go", rel)

	domains := readFile(t, fs, "/work/mybot/domains/domains.go")
	assert.Contains(t, domains, `_ "mybot/domains/moderation"`)
	assert.Contains(t, domains, `var Names = []string{"general", "moderation"}`)

	m, err := scaffold.LoadManifest(fs, "/work/mybot")
	require.NoError(t, err)
	assert.Equal(t, []string{"general", "moderation"}, m.Domains)
	domain, ok := m.DomainOf("kick")
	assert.True(t, ok)
	assert.Equal(t, "moderation", domain)

	requireValidGo(t, fs, "/work/mybot")
}

func TestAddCommandWithCombiningMarks(t *testing.T) {
	fs := newProject(t)

	for _, name := range []string{"नमस्ते", "สวัสดี"} {
		rel, err := scaffold.AddCommand(fs, "/work/mybot", "general", name)
		require.NoError(t, err)
		assert.Equal(t, "domains/general/"+name+".go", rel)
	}

	src := readFile(t, fs, "/work/mybot/domains/general/नमस्ते.go")
	assert.Contains(t, src, `commands.Register("general", नमस_94d_त_947_Command)`)

	requireValidGo(t, fs, "/work/mybot")
}

func TestAddCommandRejections(t *testing.T) {
	fs := newProject(t)

	tests := []struct {
		name    string
		dir     string
		domain  string
		command string
		want    error
	}{
		{"duplicate across domains", "/work/mybot", "other", "ping", scaffold.ErrCommandExists},
		{"uppercase name", "/work/mybot", "general", "Kick", scaffold.ErrInvalidCommand},
		{"spaces in name", "/work/mybot", "general", "two words", scaffold.ErrInvalidCommand},
		{"bad domain", "/work/mybot", "my-domain", "kick", scaffold.ErrInvalidDomain},
		{"not a project", "/work", "general", "kick", scaffold.ErrNotProject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scaffold.AddCommand(fs, tt.dir, tt.domain, tt.command)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAddCommandTwice(t *testing.T) {
	fs := newProject(t)

	_, err := scaffold.AddCommand(fs, "/work/mybot", "general", "kick")
	require.NoError(t, err)
	_, err = scaffold.AddCommand(fs, "/work/mybot", "general", "kick")
	assert.ErrorIs(t, err, scaffold.ErrCommandExists)
}
