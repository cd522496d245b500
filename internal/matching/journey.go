package matching

import (
	"context"

	"github.com/BearBump/LoadBox/internal/models"
)

type JourneyStatus string

const (
	JourneyReady       JourneyStatus = "READY"
	JourneyPartial     JourneyStatus = "PARTIAL"
	JourneyNone        JourneyStatus = "NONE"
	JourneyMissingJoin JourneyStatus = "MISSING_JOIN"
)

const (
	methodJourneyWithJoin = "TERMINAL->PULL_POINT + JOBNAME->PAD_LOCATION + JOIN_LOOKUP"
	methodJourneyNoJoin   = "TERMINAL->PULL_POINT + JOBNAME->PAD_LOCATION"
	methodJoinNotFound    = "JOIN_NOT_FOUND"
)

type Journey struct {
	Status        JourneyStatus `json:"status"`
	PullPointID   *int64        `json:"pull_point_id"`
	PadLocationID *int64        `json:"pad_location_id"`
	JoinID        *int64        `json:"join_id"`
	Method        string        `json:"method"`
}

// Ready reports whether the journey allows a commit.
func (j Journey) Ready() bool {
	return j.Status == JourneyReady
}

// JourneyBuilder pairs a resolved pull point with a resolved pad location. When the schema
// has a join table the pair must exist there; without one the pair alone is enough.
type JourneyBuilder struct {
	dir  LocationDirectory
	caps models.SchemaCapabilities
}

func NewJourneyBuilder(dir LocationDirectory, caps models.SchemaCapabilities) *JourneyBuilder {
	return &JourneyBuilder{dir: dir, caps: caps}
}

func (b *JourneyBuilder) Build(ctx context.Context, pp PullPointMatch, pl PadLocationMatch) (Journey, error) {
	var j Journey
	if pp.Resolved != nil {
		id := pp.Resolved.ID
		j.PullPointID = &id
	}
	if pl.Resolved != nil {
		id := pl.Resolved.ID
		j.PadLocationID = &id
	}

	switch {
	case j.PullPointID == nil && j.PadLocationID == nil:
		j.Status, j.Method = JourneyNone, string(JourneyNone)
		return j, nil
	case j.PullPointID == nil || j.PadLocationID == nil:
		j.Status, j.Method = JourneyPartial, string(JourneyPartial)
		return j, nil
	}

	if !b.caps.JoinTable {
		j.Status, j.Method = JourneyReady, methodJourneyNoJoin
		return j, nil
	}

	join, err := b.dir.FindJoin(ctx, *j.PullPointID, *j.PadLocationID, b.caps.JoinSoftDelete)
	if err != nil {
		return Journey{}, err
	}
	if join == nil {
		j.Status, j.Method = JourneyMissingJoin, methodJoinNotFound
		return j, nil
	}

	id := join.ID
	j.Status, j.Method, j.JoinID = JourneyReady, methodJourneyWithJoin, &id
	return j, nil
}
