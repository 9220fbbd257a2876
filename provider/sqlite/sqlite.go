// Package sqlite is a durable provider storing snapshot frames as blobs in a
// single SQLite table.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	pr "github.com/unkn0wn-root/binser/provider"
)

var (
	// ErrClosed is returned by Provider methods after Close.
	ErrClosed = errors.New("sqlite provider: closed")
)

const memory = ":memory:"

type Config struct {
	// File is the database path. Empty => in-memory database.
	File string
	// Table holding the blobs. Empty => "snapshot".
	Table string
}

type Provider struct {
	db    *sql.DB
	table string
	now   func() time.Time
}

var _ pr.Provider = (*Provider)(nil)

func New(cfg Config) (*Provider, error) {
	file := strings.TrimSpace(cfg.File)
	if strings.Contains(file, "?") {
		return nil, fmt.Errorf("sqlite provider: file can't contain ?")
	}
	if file == "" {
		file = memory
	}
	table := cfg.Table
	if table == "" {
		table = "snapshot"
	}
	if !validIdent(table) {
		return nil, fmt.Errorf("sqlite provider: invalid table name %q", table)
	}

	db, err := sql.Open("sqlite3", "file:"+file+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	// a second connection to ":memory:" would see a different database
	db.SetMaxOpenConns(1)

	p := &Provider{db: db, table: table, now: time.Now}
	if err := p.setup(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("setup: %w", err)
	}
	return p, nil
}

func (p *Provider) setup() error {
	_, err := p.db.Exec(`
		create table if not exists ` + p.table + ` (
			key        text primary key,
			data       blob not null,
			expires_at integer not null
		) strict
	`)
	return err
}

func (p *Provider) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		data []byte
		exp  int64
	)
	err := p.db.QueryRowContext(ctx,
		`select data, expires_at from `+p.table+` where key = :key`,
		sql.Named("key", key),
	).Scan(&data, &exp)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, p.wrap(err)
	}
	if exp != 0 && p.now().UnixMilli() >= exp {
		_ = p.Del(ctx, key)
		return nil, false, nil
	}
	if data == nil {
		data = []byte{}
	}
	return data, true, nil
}

// Set upserts the blob. Cost is ignored; ttl <= 0 means no expiry.
func (p *Provider) Set(ctx context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	var exp int64
	if ttl > 0 {
		exp = p.now().Add(ttl).UnixMilli()
	}
	if value == nil {
		value = []byte{}
	}
	_, err := p.db.ExecContext(ctx,
		`
		insert into `+p.table+` (key, data, expires_at)
		values (:key, :data, :expires_at)
		on conflict (key) do update set
			data = excluded.data,
			expires_at = excluded.expires_at
		`,
		sql.Named("key", key),
		sql.Named("data", value),
		sql.Named("expires_at", exp),
	)
	if err != nil {
		return false, p.wrap(err)
	}
	return true, nil
}

func (p *Provider) Del(ctx context.Context, key string) error {
	_, err := p.db.ExecContext(ctx,
		`delete from `+p.table+` where key = :key`,
		sql.Named("key", key),
	)
	return p.wrap(err)
}

// Purge deletes expired rows and returns how many were removed.
func (p *Provider) Purge(ctx context.Context) (int64, error) {
	res, err := p.db.ExecContext(ctx,
		`delete from `+p.table+` where expires_at != 0 and expires_at <= :now`,
		sql.Named("now", p.now().UnixMilli()),
	)
	if err != nil {
		return 0, p.wrap(err)
	}
	return res.RowsAffected()
}

func (p *Provider) Close(_ context.Context) error {
	return p.db.Close()
}

func (p *Provider) wrap(err error) error {
	if err != nil && err.Error() == "sql: database is closed" {
		return ErrClosed
	}
	return err
}

func validIdent(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != ""
}
