package bot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/a04k/discordkit/commands"
	"github.com/a04k/discordkit/config"
	"github.com/a04k/discordkit/storage"
)

// Intents requested from the gateway.
const Intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsMessageContent |
	discordgo.IntentsGuildMembers

// Bot is a running Discord client with its commands and storage add-ons.
type Bot struct {
	Session    *discordgo.Session
	Registry   *commands.Registry
	Dispatcher *commands.Dispatcher

	DB      *sql.DB
	Mongo   *mongo.Client
	MongoDB *mongo.Database // the database named in MONGO_URI, "bot" when it names none

	cfg      *config.Config
	log      zerolog.Logger
	deployer *commands.Deployer
	open     func() error
}

type options struct {
	table      *commands.Table
	middleware []commands.Middleware
	limiter    *commands.RateLimiter
	catalog    commands.Catalog
}

// Option customises New.
type Option func(*options)

// WithTable loads commands from table instead of commands.DefaultTable.
func WithTable(table *commands.Table) Option {
	return func(o *options) { o.table = table }
}

// WithMiddleware replaces the default middleware chain.
func WithMiddleware(mw ...commands.Middleware) Option {
	return func(o *options) { o.middleware = mw }
}

// WithRateLimiter sets the limiter used by the default RateLimit middleware.
func WithRateLimiter(limiter *commands.RateLimiter) Option {
	return func(o *options) { o.limiter = limiter }
}

// WithCatalog deploys to catalog instead of the session.
func WithCatalog(catalog commands.Catalog) Option {
	return func(o *options) { o.catalog = catalog }
}

// New creates the session, loads the commands of domains and opens the
// storage add-ons named in cfg. It does not connect to the gateway.
func New(ctx context.Context, cfg *config.Config, domains []string, log zerolog.Logger, opts ...Option) (*Bot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{table: commands.DefaultTable}
	for _, opt := range opts {
		opt(&o)
	}
	if o.middleware == nil {
		limiter := o.limiter
		if limiter == nil {
			limiter = commands.NewRateLimiter(15, time.Minute)
		}
		o.middleware = []commands.Middleware{
			commands.GuildOnly(),
			commands.RequireRole(),
			commands.RateLimit(limiter),
		}
	}

	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.Identify.Intents = Intents

	b := &Bot{
		Session: session,
		cfg:     cfg,
		log:     log,
		open:    session.Open,
	}

	if err := b.openStores(ctx); err != nil {
		_ = b.Close()
		return nil, err
	}
	if recorders := b.recorders(); len(recorders) > 0 {
		o.middleware = append(o.middleware, RecordUsage(log, recorders...))
	}

	catalog := o.catalog
	if catalog == nil {
		catalog = session
	}

	warnDisabledDomains(o.table, domains, log)
	b.Registry = o.table.Load(domains, log)
	if b.DB != nil {
		b.Registry = withStats(b.Registry, storage.NewUsageStore(b.DB, b.dialect()), log)
	}
	b.Dispatcher = commands.NewDispatcher(b.Registry, log, o.middleware...)
	b.deployer = commands.NewDeployer(catalog, log)
	return b, nil
}

func (b *Bot) openStores(ctx context.Context) error {
	var err error
	switch {
	case b.cfg.DatabaseURL != "":
		b.DB, err = storage.OpenPostgres(ctx, b.cfg.DatabaseURL)
	case b.cfg.SQLitePath != "":
		b.DB, err = storage.OpenSQLite(ctx, b.cfg.SQLitePath)
	}
	if err != nil {
		return err
	}
	if b.DB != nil {
		if err := storage.Migrate(ctx, b.DB, storage.Schema...); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		b.log.Info().Msg("database ready")
	}

	if b.cfg.MongoURI != "" {
		client, err := storage.OpenMongo(ctx, b.cfg.MongoURI)
		if err != nil {
			return err
		}
		b.setMongo(client)
		b.log.Info().Str("database", b.MongoDB.Name()).Msg("mongodb ready")
	}
	return nil
}

func (b *Bot) setMongo(client *mongo.Client) {
	b.Mongo = client
	b.MongoDB = client.Database(mongoDatabase(b.cfg.MongoURI))
}

func (b *Bot) dialect() storage.Dialect {
	if b.cfg.DatabaseURL != "" {
		return storage.Postgres
	}
	return storage.SQLite
}

func (b *Bot) recorders() []UsageRecorder {
	var out []UsageRecorder
	if b.DB != nil {
		out = append(out, storage.NewUsageStore(b.DB, b.dialect()))
	}
	if b.MongoDB != nil {
		out = append(out, storage.NewMongoUsage(b.MongoDB))
	}
	return out
}

// warnDisabledDomains logs the registered domains that enabled leaves out.
func warnDisabledDomains(table *commands.Table, enabled []string, log zerolog.Logger) {
	on := make(map[string]bool, len(enabled))
	for _, d := range enabled {
		on[d] = true
	}
	for _, d := range table.Domains() {
		if !on[d] {
			log.Warn().Str("domain", d).Msg("domain has commands but is not enabled")
		}
	}
}

func mongoDatabase(uri string) string {
	cs, err := connstring.Parse(uri)
	if err != nil || cs.Database == "" {
		return "bot"
	}
	return cs.Database
}

// DeployOptions maps the configured IDs onto a deploy target.
func DeployOptions(cfg *config.Config) commands.DeployOptions {
	return commands.DeployOptions{
		ApplicationID: cfg.ClientID,
		GuildID:       cfg.GuildID,
		Global:        cfg.UseGlobalCommands,
	}
}

// Deploy replaces the remote command catalog with the loaded commands.
func (b *Bot) Deploy(ctx context.Context) error {
	return b.deployer.Deploy(ctx, b.Registry, b.deployOptions())
}

func (b *Bot) deployOptions() commands.DeployOptions {
	opts := DeployOptions(b.cfg)
	// The bot user shares its ID with the application.
	if opts.ApplicationID == "" && b.Session.State != nil && b.Session.State.User != nil {
		opts.ApplicationID = b.Session.State.User.ID
	}
	return opts
}

func (b *Bot) onReady(ctx context.Context, user *discordgo.User) {
	log := b.log.Info().Str("version", b.cfg.Version)
	if user != nil {
		log = log.Str("user", user.String())
	}
	log.Msg("bot is ready")

	if !b.cfg.DeployOnReady {
		return
	}
	if err := b.Deploy(ctx); err != nil {
		b.log.Error().Err(err).Msg("deploy on ready failed, continuing without it")
	}
}

// Run connects to the gateway and blocks until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	removeCommands := b.Dispatcher.Register(b.Session)
	defer removeCommands()

	removeReady := b.Session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		b.onReady(ctx, r.User)
	})
	defer removeReady()

	if err := b.open(); err != nil {
		return errors.Join(fmt.Errorf("open gateway: %w", err), b.Close())
	}
	b.log.Info().Msg("bot is running, press ctrl-c to exit")

	<-ctx.Done()
	b.log.Info().Msg("shutting down")
	return b.Close()
}

// Close disconnects the session and closes the storage add-ons.
func (b *Bot) Close() error {
	var errs []error
	if b.Session != nil {
		errs = append(errs, b.Session.Close())
	}
	if b.DB != nil {
		errs = append(errs, b.DB.Close())
	}
	if b.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errs = append(errs, b.Mongo.Disconnect(ctx))
	}
	return errors.Join(errs...)
}
