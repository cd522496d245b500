// Package inbound exposes the two engine operations: building the reconciliation queue
// for review and committing one import as a production load.
package inbound

import (
	"context"
	"time"

	"github.com/BearBump/LoadBox/internal/cache"
	"github.com/BearBump/LoadBox/internal/matching"
	"github.com/BearBump/LoadBox/internal/models"
	"github.com/BearBump/LoadBox/internal/platform/logger"
)

type Repository interface {
	ListImports(ctx context.Context, limit int) ([]*models.ImportRecord, error)
	GetImport(ctx context.Context, id int64) (*models.ImportRecord, error)
	ProcessedImports(ctx context.Context, importIDs []int64) (map[int64]models.ProcessedRef, error)
	FindProcessed(ctx context.Context, importID int64) (*models.ProcessedRef, error)
	CommitLoad(ctx context.Context, load models.NewLoad, detail models.NewLoadDetail) (models.ProcessedRef, bool, error)
}

// Matcher is implemented by *matching.Resolver.
type Matcher interface {
	ResolveDriver(ctx context.Context, driverName, truckNumber *string) (matching.DriverMatch, error)
	ResolveLocations(ctx context.Context, terminal, jobname *string) (matching.PullPointMatch, matching.PadLocationMatch, matching.Journey, error)
}

type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte) error
}

type Config struct {
	// QueueConcurrency bounds how many imports are resolved at once.
	QueueConcurrency int
	// MatchCacheTTL of 0 disables the queue match cache.
	MatchCacheTTL time.Duration
	// CommittedTopic of "" disables commit notifications.
	CommittedTopic string
}

type Service struct {
	repo    Repository
	matcher Matcher
	cache   cache.BytesCache
	pub     Publisher
	cfg     Config
	log     *logger.Logger

	now func() time.Time
}

// New wires the service. c and pub may be nil.
func New(repo Repository, matcher Matcher, c cache.BytesCache, pub Publisher, cfg Config, log *logger.Logger) *Service {
	if cfg.QueueConcurrency <= 0 {
		cfg.QueueConcurrency = 1
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		matcher: matcher,
		cache:   c,
		pub:     pub,
		cfg:     cfg,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) cacheEnabled() bool {
	return s.cache != nil && s.cfg.MatchCacheTTL > 0
}
