package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	host     string
	user     string
	password string
	port     string
	dbname   string
	sslmode  string
}

func (c Config) ConnStr() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.user, c.password, c.host, c.port, c.dbname, c.sslmode)
}

func NewConfig(host, user, password, port, dbname, sslmode string) Config {
	return Config{
		host:     host,
		user:     user,
		password: password,
		port:     port,
		dbname:   dbname,
		sslmode:  sslmode,
	}
}

func NewPool(ctx context.Context, config Config) (*pgxpool.Pool, error) {
	p, err := pgxpool.New(ctx, config.ConnStr())
	if err != nil {
		return nil, err
	}

	err = p.Ping(ctx)
	if err != nil {
		return nil, err
	}

	return p, nil
}

var (
	ErrNoRows       = errors.New("no rows in result set")
	ErrTooManyRows  = errors.New("too many rows in result set")
	ErrStoreFailed  = errors.New("could not store data")
	ErrNoID         = errors.New("data contains no id")
	ErrAlreadyExist = errors.New("device already exists")
)

type Storage struct {
	pool *pgxpool.Pool
}

func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func New(ctx context.Context, config Config) (*Storage, error) {
	pool, err := NewPool(ctx, config)
	if err != nil {
		return nil, err
	}

	return &Storage{pool: pool}, nil
}

func (s *Storage) Initialize(ctx context.Context) error {
	return s.createTables(ctx)
}

func (s *Storage) createTables(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS devices (
			device_id	TEXT 	NOT NULL,
			owner_id	TEXT 	NOT NULL,
			name		TEXT 	NULL,
			location	TEXT 	NULL,
			active		BOOLEAN	NOT NULL DEFAULT FALSE,
			config 		JSONB	NOT NULL DEFAULT '{}',
			status 		JSONB	NOT NULL DEFAULT '{}',
			statistics	JSONB	NOT NULL DEFAULT '{}',
			created_on  timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deleted     BOOLEAN DEFAULT FALSE,
			deleted_on  timestamp with time zone NULL,
			CONSTRAINT pkey_devices_unique PRIMARY KEY (device_id)
		);

		CREATE INDEX IF NOT EXISTS devices_owner_deleted_idx ON devices (owner_id) WHERE NOT deleted;
		CREATE INDEX IF NOT EXISTS devices_online_idx ON devices (((status ->> 'online')::boolean)) WHERE NOT deleted;
	`)
	if err != nil {
		return err
	}

	return nil
}

func (s *Storage) Close() {
	s.pool.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
