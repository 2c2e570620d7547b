package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

var (
	// ErrApplicationIDRequired is returned when no application (client) ID is configured.
	ErrApplicationIDRequired = errors.New("CLIENT_ID must be set in .env or config to deploy commands")
	// ErrGuildIDRequired is returned for guild deploys without a guild ID.
	ErrGuildIDRequired = errors.New("GUILD_ID must be set in .env or config to deploy guild commands")
)

// Catalog is the remote command catalog. *discordgo.Session implements it.
type Catalog interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// DeployOptions selects the catalog to replace.
type DeployOptions struct {
	ApplicationID string
	GuildID       string
	Global        bool
}

func (o DeployOptions) validate() error {
	if o.ApplicationID == "" {
		return ErrApplicationIDRequired
	}
	if !o.Global && o.GuildID == "" {
		return ErrGuildIDRequired
	}
	return nil
}

// guild returns the guild ID to address, "" for the global catalog.
func (o DeployOptions) guild() string {
	if o.Global {
		return ""
	}
	return o.GuildID
}

func (o DeployOptions) scope() string {
	if o.Global {
		return "global"
	}
	return "guild (" + o.GuildID + ")"
}

// Deployer pushes registry descriptors to the remote catalog.
type Deployer struct {
	catalog Catalog
	log     zerolog.Logger
}

// NewDeployer returns a deployer writing to catalog.
func NewDeployer(catalog Catalog, log zerolog.Logger) *Deployer {
	return &Deployer{catalog: catalog, log: log}
}

// Deploy replaces the remote catalog with the registry's commands.
//
// This is a full replace: remote commands missing from reg are deleted.
// Configuration errors are returned before any network call; an empty registry
// is a no-op. Remote errors are logged and returned, never panicked.
func (d *Deployer) Deploy(ctx context.Context, reg *Registry, opts DeployOptions) error {
	if err := opts.validate(); err != nil {
		d.log.Error().Err(err).Msg("failed to deploy commands")
		return err
	}

	d.log.Info().Str("scope", opts.scope()).Msg("deploying commands")

	body := reg.ApplicationCommands()
	if len(body) == 0 {
		d.log.Warn().Msg("no commands to deploy, did you add any commands?")
		return nil
	}
	d.log.Info().Strs("commands", reg.Names()).Msg("commands to be deployed")

	deployed, err := d.catalog.ApplicationCommandBulkOverwrite(opts.ApplicationID, opts.guild(), body, discordgo.WithContext(ctx))
	if err != nil {
		d.log.Error().Err(err).Str("scope", opts.scope()).Msg("failed to deploy commands")
		return fmt.Errorf("deploy %s commands: %w", opts.scope(), err)
	}

	d.log.Info().Int("commands", len(deployed)).Msg("commands deployed successfully")
	return nil
}

// Plan compares the registry with the remote catalog without changing it.
func (d *Deployer) Plan(ctx context.Context, reg *Registry, opts DeployOptions) (*Plan, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	existing, err := d.catalog.ApplicationCommands(opts.ApplicationID, opts.guild(), discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch %s commands: %w", opts.scope(), err)
	}

	return diffCommands(existing, reg.ApplicationCommands()), nil
}
