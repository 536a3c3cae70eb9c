package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // register the "sqlite" driver

	"github.com/thiccmc/renskin/internal/profile"
	"github.com/thiccmc/renskin/internal/profile/sqlite/migrations"
)

// Store provides SQLite-backed profile lookups.
type Store struct {
	sqlDB *sql.DB
}

var _ profile.Lookup = (*Store)(nil)

// Open opens and migrates a profile store at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Lookup resolves identity through its player row to the skin's textures
// property. Nick comparison is case-insensitive.
func (s *Store) Lookup(ctx context.Context, identity string) (profile.Profile, error) {
	if s == nil || s.sqlDB == nil {
		return profile.Profile{}, fmt.Errorf("storage is not configured")
	}

	var value string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT sk.value
		 FROM players AS pl
		 INNER JOIN skins AS sk ON pl.skin = sk.nick
		 WHERE pl.nick = ?
		 LIMIT 1`,
		identity,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.Profile{}, fmt.Errorf("%w: %s", profile.ErrNotFound, identity)
	}
	if err != nil {
		return profile.Profile{}, fmt.Errorf("lookup %s: %w", identity, err)
	}

	p, err := profile.ParseTextureValue(value)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("lookup %s: %w", identity, err)
	}
	return p, nil
}

// PutSkin upserts a named skin with its base64 textures property.
func (s *Store) PutSkin(ctx context.Context, nick, value string) error {
	if strings.TrimSpace(nick) == "" {
		return fmt.Errorf("skin nick is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO skins (nick, value) VALUES (?, ?)
		 ON CONFLICT(nick) DO UPDATE SET value = excluded.value`,
		nick, value,
	)
	if err != nil {
		return fmt.Errorf("put skin %s: %w", nick, err)
	}
	return nil
}

// PutPlayer upserts a player and points it at a skin.
func (s *Store) PutPlayer(ctx context.Context, nick, skin string) error {
	if strings.TrimSpace(nick) == "" {
		return fmt.Errorf("player nick is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO players (nick, skin) VALUES (?, ?)
		 ON CONFLICT(nick) DO UPDATE SET skin = excluded.skin`,
		nick, skin,
	)
	if err != nil {
		return fmt.Errorf("put player %s: %w", nick, err)
	}
	return nil
}

// PutProfile stores p as the skin of player nick, using nick as the skin name.
func (s *Store) PutProfile(ctx context.Context, nick string, p profile.Profile) error {
	if err := s.PutSkin(ctx, nick, profile.EncodeTextureValue(p)); err != nil {
		return err
	}
	return s.PutPlayer(ctx, nick, nick)
}
