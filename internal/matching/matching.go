// Package matching resolves parsed import fields to production entities: driver (by name and
// by truck), pull point (by terminal) and pad location (by job name), and combines the two
// locations into a journey verdict.
//
// Resolvers never fail on bad input. Ambiguity and misses are reported as a status plus
// human-readable notes; only directory (storage) errors are returned as errors.
package matching

import (
	"context"

	"github.com/BearBump/LoadBox/internal/models"
)

// Candidate pool sizes.
const (
	NameLikeLimit     = 20
	NameFuzzyLimit    = 80
	LocationLikeLimit = 10
)

// NameColumn selects the contact column used for phonetic lookups.
type NameColumn string

const (
	FirstNameColumn NameColumn = "first_name"
	LastNameColumn  NameColumn = "last_name"
)

// ContactDirectory looks contacts up by normalised full name ("first last", lower-cased, trimmed).
// Single-row lookups return nil when nothing matches.
type ContactDirectory interface {
	ContactByFullName(ctx context.Context, normalized string) (*models.Contact, error)
	ContactsByFullNameLike(ctx context.Context, normalized string, limit int) ([]models.Contact, error)
	ContactsBySoundex(ctx context.Context, column NameColumn, value string, limit int) ([]models.Contact, error)
	ContactsByFirstNamePrefix(ctx context.Context, prefix string, limit int) ([]models.Contact, error)
}

type DriverDirectory interface {
	DriverByContact(ctx context.Context, contactID int64) (*models.Driver, error)
	DriverByVehicle(ctx context.Context, vehicleID int64) (*models.Driver, error)
	// VehicleByTruck matches the alphanumeric-only lower-cased truck token against vehicle number or name.
	VehicleByTruck(ctx context.Context, truck string) (*models.Vehicle, error)
}

// LocationDirectory only ever sees non-deleted pull points and pad locations.
type LocationDirectory interface {
	PullPointByTerminal(ctx context.Context, table, normalized string) (*models.PullPoint, error)
	PullPointsLike(ctx context.Context, table, normalized string, limit int) ([]models.PullPoint, error)
	PadLocationByJob(ctx context.Context, normalized string) (*models.PadLocation, error)
	// PadLocationsLike matches in both directions: label contains the query, or the query contains the label.
	PadLocationsLike(ctx context.Context, normalized, loose string, limit int) ([]models.PadLocation, error)
	FindJoin(ctx context.Context, pullPointID, padLocationID int64, softDelete bool) (*models.Join, error)
}

type Directory interface {
	ContactDirectory
	DriverDirectory
	LocationDirectory
}

// Match is the full match detail shown to a reviewer.
type Match struct {
	Confidence  Confidence       `json:"confidence"`
	Driver      DriverMatch      `json:"driver"`
	PullPoint   PullPointMatch   `json:"pull_point"`
	PadLocation PadLocationMatch `json:"pad_location"`
	Journey     Journey          `json:"journey"`
}

// Resolver bundles the resolvers over one directory and one set of schema capabilities.
type Resolver struct {
	Drivers      *DriverResolver
	PullPoints   *PullPointResolver
	PadLocations *PadLocationResolver
	Journeys     *JourneyBuilder
}

func NewResolver(dir Directory, caps models.SchemaCapabilities) *Resolver {
	return &Resolver{
		Drivers:      NewDriverResolver(DefaultNameMatcher(dir, caps.PhoneticMatch), dir),
		PullPoints:   NewPullPointResolver(dir, caps.PullPointTable),
		PadLocations: NewPadLocationResolver(dir),
		Journeys:     NewJourneyBuilder(dir, caps),
	}
}

// ResolveDriver runs the driver resolver.
func (r *Resolver) ResolveDriver(ctx context.Context, driverName, truckNumber *string) (DriverMatch, error) {
	return r.Drivers.Resolve(ctx, driverName, truckNumber)
}

// ResolveLocations resolves terminal and job name and builds the journey from the two results.
func (r *Resolver) ResolveLocations(ctx context.Context, terminal, jobname *string) (PullPointMatch, PadLocationMatch, Journey, error) {
	pp, err := r.PullPoints.Resolve(ctx, terminal)
	if err != nil {
		return PullPointMatch{}, PadLocationMatch{}, Journey{}, err
	}
	pl, err := r.PadLocations.Resolve(ctx, jobname)
	if err != nil {
		return PullPointMatch{}, PadLocationMatch{}, Journey{}, err
	}
	j, err := r.Journeys.Build(ctx, pp, pl)
	if err != nil {
		return PullPointMatch{}, PadLocationMatch{}, Journey{}, err
	}
	return pp, pl, j, nil
}

// Match runs every resolver for one parsed import.
func (r *Resolver) Match(ctx context.Context, p models.ParsedFields) (Match, error) {
	d, err := r.ResolveDriver(ctx, p.DriverName, p.TruckNumber)
	if err != nil {
		return Match{}, err
	}
	pp, pl, j, err := r.ResolveLocations(ctx, p.Terminal, p.JobName)
	if err != nil {
		return Match{}, err
	}
	return Match{
		Confidence:  ScoreDriver(d.Status),
		Driver:      d,
		PullPoint:   pp,
		PadLocation: pl,
		Journey:     j,
	}, nil
}
