package matching

import (
	"context"
	"strings"

	"github.com/BearBump/LoadBox/internal/models"
)

type LocationStatus string

const (
	LocationOne   LocationStatus = "ONE"
	LocationMulti LocationStatus = "MULTI"
	LocationNone  LocationStatus = "NONE"
)

const (
	MethodNormalizedExact = "NORMALIZED_EXACT"
	MethodExact           = "EXACT"
	MethodLikeUnique      = "LIKE_UNIQUE"
)

const DefaultPullPointTable = "pull_point"

type ResolvedPullPoint struct {
	models.PullPoint
	Method string `json:"method"`
}

type PullPointMatch struct {
	Status     LocationStatus     `json:"status"`
	Resolved   *ResolvedPullPoint `json:"resolved"`
	Candidates []models.PullPoint `json:"candidates"`
	Notes      string             `json:"notes"`
}

type ResolvedPadLocation struct {
	models.PadLocation
	Method string `json:"method"`
}

type PadLocationMatch struct {
	Status     LocationStatus       `json:"status"`
	Resolved   *ResolvedPadLocation `json:"resolved"`
	Candidates []models.PadLocation `json:"candidates"`
	Notes      string               `json:"notes"`
}

// PullPointResolver maps an import terminal to a pull point by its job label.
type PullPointResolver struct {
	dir   LocationDirectory
	table string
	limit int
}

func NewPullPointResolver(dir LocationDirectory, table string) *PullPointResolver {
	if table == "" {
		table = DefaultPullPointTable
	}
	return &PullPointResolver{dir: dir, table: table, limit: LocationLikeLimit}
}

func (r *PullPointResolver) Resolve(ctx context.Context, terminal *string) (PullPointMatch, error) {
	out := PullPointMatch{Status: LocationNone, Candidates: []models.PullPoint{}}
	if terminal == nil || strings.TrimSpace(*terminal) == "" {
		out.Notes = "No terminal in import."
		return out, nil
	}
	t := NormalizeTerminal(*terminal)

	row, err := r.dir.PullPointByTerminal(ctx, r.table, t)
	if err != nil {
		return PullPointMatch{}, err
	}
	if row != nil {
		out.Status, out.Resolved = LocationOne, &ResolvedPullPoint{PullPoint: *row, Method: MethodNormalizedExact}
		return out, nil
	}

	cands, err := r.dir.PullPointsLike(ctx, r.table, t, r.limit)
	if err != nil {
		return PullPointMatch{}, err
	}
	switch len(cands) {
	case 0:
		out.Notes = "No pull point match found."
	case 1:
		out.Status, out.Resolved = LocationOne, &ResolvedPullPoint{PullPoint: cands[0], Method: MethodLikeUnique}
	default:
		out.Status, out.Candidates = LocationMulti, cands
		out.Notes = "Multiple pull points match."
	}
	return out, nil
}

// PadLocationResolver maps an import job name to a pad location.
type PadLocationResolver struct {
	dir   LocationDirectory
	limit int
}

func NewPadLocationResolver(dir LocationDirectory) *PadLocationResolver {
	return &PadLocationResolver{dir: dir, limit: LocationLikeLimit}
}

func (r *PadLocationResolver) Resolve(ctx context.Context, jobname *string) (PadLocationMatch, error) {
	out := PadLocationMatch{Status: LocationNone, Candidates: []models.PadLocation{}}
	if jobname == nil || strings.TrimSpace(*jobname) == "" {
		out.Notes = "No jobname in import."
		return out, nil
	}
	n := NormalizeJob(*jobname)

	row, err := r.dir.PadLocationByJob(ctx, n)
	if err != nil {
		return PadLocationMatch{}, err
	}
	if row != nil {
		out.Status, out.Resolved = LocationOne, &ResolvedPadLocation{PadLocation: *row, Method: MethodExact}
		return out, nil
	}

	cands, err := r.dir.PadLocationsLike(ctx, n, LooseJob(n), r.limit)
	if err != nil {
		return PadLocationMatch{}, err
	}
	switch len(cands) {
	case 0:
		out.Notes = "No pad_location match found."
	case 1:
		out.Status, out.Resolved = LocationOne, &ResolvedPadLocation{PadLocation: cands[0], Method: MethodLikeUnique}
	default:
		out.Status, out.Candidates = LocationMulti, cands
		out.Notes = "Jobname ambiguous: multiple pad_location matches."
	}
	return out, nil
}
