package pgload

import (
	"context"
	"time"

	"github.com/BearBump/LoadBox/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when an import does not exist.
var ErrNotFound = errors.New("not found")

type Storage struct {
	db   *pgxpool.Pool
	caps models.SchemaCapabilities
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func New(connString string) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, errors.Wrap(err, "parse pg config")
	}

	db, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "connect pg")
	}

	// пул подключается лениво, поэтому проверяем соединение сразу
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "ping pg")
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// Capabilities returns what the last ProbeCapabilities call found.
func (s *Storage) Capabilities() models.SchemaCapabilities {
	return s.caps
}
