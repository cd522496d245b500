package inbound

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/BearBump/LoadBox/internal/matching"
	"github.com/BearBump/LoadBox/internal/models"
	"github.com/BearBump/LoadBox/internal/payload"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	MinQueueLimit     = 1
	MaxQueueLimit     = 500
	DefaultQueueLimit = 200

	OnlyUnprocessed = "unprocessed"
	OnlyAll         = "all"
)

type QueueParams struct {
	Limit int
	// Only is "unprocessed" to hide committed imports; any other value shows all.
	Only  string
	Query string
	// Match keeps only rows with this confidence (GREEN/YELLOW/RED); empty keeps all.
	Match string
}

// ReviewRecord is one queue row.
type ReviewRecord struct {
	ImportID  int64      `json:"import_id"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`

	models.ParsedFields

	IsProcessed           bool   `json:"is_processed"`
	ProcessedLoadID       *int64 `json:"processed_load_id"`
	ProcessedLoadDetailID *int64 `json:"processed_load_detail_id"`

	Match matching.Match `json:"match"`
}

// ClampLimit keeps a queue limit within [1, 500].
func ClampLimit(limit int) int {
	switch {
	case limit < MinQueueLimit:
		return MinQueueLimit
	case limit > MaxQueueLimit:
		return MaxQueueLimit
	}
	return limit
}

func matchKey(importID int64) string {
	return fmt.Sprintf("inbound:import:%d:match", importID)
}

// BuildQueue resolves the most recent imports for review, most recent first. Nothing is written.
func (s *Service) BuildQueue(ctx context.Context, p QueueParams) ([]ReviewRecord, error) {
	limit := ClampLimit(p.Limit)
	query := strings.ToLower(strings.TrimSpace(p.Query))
	want := strings.ToUpper(strings.TrimSpace(p.Match))

	imports, err := s.repo.ListImports(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(imports) == 0 {
		return []ReviewRecord{}, nil
	}

	ids := make([]int64, 0, len(imports))
	for _, r := range imports {
		ids = append(ids, r.ID)
	}
	processed, err := s.repo.ProcessedImports(ctx, ids)
	if err != nil {
		return nil, err
	}

	// порядок строк сохраняем по индексу, независимо от порядка завершения горутин
	rows := make([]*ReviewRecord, len(imports))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.QueueConcurrency)
	for i, rec := range imports {
		ref, isProcessed := processed[rec.ID]
		if p.Only == OnlyUnprocessed && isProcessed {
			continue
		}
		g.Go(func() error {
			row, err := s.reviewRow(gctx, rec, query, want)
			if err != nil {
				s.log.Error("queue row failed", "import_id", rec.ID, "error", err)
				return errors.Wrapf(err, "import %d", rec.ID)
			}
			if row != nil && isProcessed {
				row.IsProcessed = true
				row.ProcessedLoadID = &ref.LoadID
				row.ProcessedLoadDetailID = &ref.LoadDetailID
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]ReviewRecord, 0, len(rows))
	for _, r := range rows {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}

// reviewRow returns nil when the import is filtered out by the search text or the confidence filter.
func (s *Service) reviewRow(ctx context.Context, rec *models.ImportRecord, query, want string) (*ReviewRecord, error) {
	parsed := payload.Parse(rec)
	if query != "" && !strings.Contains(haystack(parsed), query) {
		return nil, nil
	}

	m, ok := s.cachedMatch(ctx, rec.ID)
	if !ok {
		d, err := s.matcher.ResolveDriver(ctx, parsed.DriverName, parsed.TruckNumber)
		if err != nil {
			return nil, err
		}
		confidence := matching.ScoreDriver(d.Status)
		if want != "" && string(confidence) != want {
			return nil, nil
		}

		pp, pl, j, err := s.matcher.ResolveLocations(ctx, parsed.Terminal, parsed.JobName)
		if err != nil {
			return nil, err
		}
		m = matching.Match{Confidence: confidence, Driver: d, PullPoint: pp, PadLocation: pl, Journey: j}
		s.storeMatch(ctx, rec.ID, m)
	} else if want != "" && string(m.Confidence) != want {
		return nil, nil
	}

	return &ReviewRecord{
		ImportID:     rec.ID,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
		ParsedFields: parsed,
		Match:        m,
	}, nil
}

// haystack is the lower-cased text searched by the queue query.
func haystack(p models.ParsedFields) string {
	parts := []*string{
		p.DriverName, p.TruckNumber, p.JobName, p.Terminal, p.LoadNumber, p.TicketNumber,
		p.RawCarrier, p.RawTruck, p.RawOriginal,
	}
	vals := make([]string, len(parts))
	for i, v := range parts {
		if v != nil {
			vals[i] = *v
		}
	}
	return strings.ToLower(strings.Join(vals, " "))
}

// Кэш "лучшее усилие": ошибки и битые записи считаются промахом.
func (s *Service) cachedMatch(ctx context.Context, importID int64) (matching.Match, bool) {
	if !s.cacheEnabled() {
		return matching.Match{}, false
	}
	b, ok, err := s.cache.Get(ctx, matchKey(importID))
	if err != nil || !ok {
		return matching.Match{}, false
	}
	var m matching.Match
	if json.Unmarshal(b, &m) != nil {
		return matching.Match{}, false
	}
	return m, true
}

func (s *Service) storeMatch(ctx context.Context, importID int64, m matching.Match) {
	if !s.cacheEnabled() {
		return
	}
	b, _ := json.Marshal(m)
	_ = s.cache.Set(ctx, matchKey(importID), b, s.cfg.MatchCacheTTL)
}
