package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Usage is one successful command invocation.
type Usage struct {
	UserID  string
	GuildID string
	Command string
	UsedAt  time.Time
}

// CommandCount is how often a command was used.
type CommandCount struct {
	Command string
	Count   int
}

// Dialect selects the placeholder style of a SQL database.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

// UsageStore records command usage in the command_usage table.
type UsageStore struct {
	db      *sql.DB
	dialect Dialect
}

// NewUsageStore returns a store over db. The schema must already be migrated.
func NewUsageStore(db *sql.DB, dialect Dialect) *UsageStore {
	return &UsageStore{db: db, dialect: dialect}
}

func (s *UsageStore) bind(query string) string {
	if s.dialect == Postgres {
		return query
	}
	// SQLite takes plain positional parameters.
	out := make([]byte, 0, len(query))
	for i := 0; i < len(query); i++ {
		if query[i] == '$' {
			out = append(out, '?')
			for i+1 < len(query) && query[i+1] >= '0' && query[i+1] <= '9' {
				i++
			}
			continue
		}
		out = append(out, query[i])
	}
	return string(out)
}

// Record stores one invocation.
func (s *UsageStore) Record(ctx context.Context, u Usage) error {
	if u.UsedAt.IsZero() {
		u.UsedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		s.bind(`INSERT INTO command_usage (user_id, guild_id, command, used_at) VALUES ($1, $2, $3, $4)`),
		u.UserID, u.GuildID, u.Command, u.UsedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("record usage of %s: %w", u.Command, err)
	}
	return nil
}

// TopCommands returns the most used commands, most used first.
func (s *UsageStore) TopCommands(ctx context.Context, limit int) ([]CommandCount, error) {
	rows, err := s.db.QueryContext(ctx,
		s.bind(`SELECT command, COUNT(*) AS uses FROM command_usage GROUP BY command ORDER BY uses DESC, command ASC LIMIT $1`),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query usage: %w", err)
	}
	defer rows.Close()

	var counts []CommandCount
	for rows.Next() {
		var c CommandCount
		if err := rows.Scan(&c.Command, &c.Count); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
