package matching

import (
	"context"
	"testing"

	"github.com/BearBump/LoadBox/internal/models"
	"github.com/stretchr/testify/require"
)

func onePullPoint(id int64) PullPointMatch {
	return PullPointMatch{Status: LocationOne, Resolved: &ResolvedPullPoint{PullPoint: models.PullPoint{ID: id}}}
}

func onePadLocation(id int64) PadLocationMatch {
	return PadLocationMatch{Status: LocationOne, Resolved: &ResolvedPadLocation{PadLocation: models.PadLocation{ID: id}}}
}

func TestJourneyBuilder(t *testing.T) {
	dir := &fakeDirectory{
		joins:        []models.Join{{ID: 500, PullPointID: 1, PadLocationID: 10}, {ID: 501, PullPointID: 2, PadLocationID: 10}},
		deletedJoins: map[int64]bool{501: true},
	}
	withJoin := NewJourneyBuilder(dir, models.SchemaCapabilities{JoinTable: true, JoinSoftDelete: true})
	ctx := context.Background()

	j, err := withJoin.Build(ctx, PullPointMatch{Status: LocationNone}, PadLocationMatch{Status: LocationMulti})
	require.NoError(t, err)
	require.Equal(t, JourneyNone, j.Status)
	require.Equal(t, "NONE", j.Method)

	j, err = withJoin.Build(ctx, onePullPoint(1), PadLocationMatch{Status: LocationNone})
	require.NoError(t, err)
	require.Equal(t, JourneyPartial, j.Status)
	require.Equal(t, int64(1), *j.PullPointID)
	require.Nil(t, j.PadLocationID)
	require.False(t, j.Ready())

	j, err = withJoin.Build(ctx, PullPointMatch{Status: LocationMulti}, onePadLocation(10))
	require.NoError(t, err)
	require.Equal(t, JourneyPartial, j.Status)

	j, err = withJoin.Build(ctx, onePullPoint(1), onePadLocation(10))
	require.NoError(t, err)
	require.Equal(t, JourneyReady, j.Status)
	require.Equal(t, int64(500), *j.JoinID)
	require.Equal(t, "TERMINAL->PULL_POINT + JOBNAME->PAD_LOCATION + JOIN_LOOKUP", j.Method)
	require.True(t, j.Ready())

	// soft-deleted join row does not count
	j, err = withJoin.Build(ctx, onePullPoint(2), onePadLocation(10))
	require.NoError(t, err)
	require.Equal(t, JourneyMissingJoin, j.Status)
	require.Equal(t, "JOIN_NOT_FOUND", j.Method)
	require.Nil(t, j.JoinID)
}

func TestJourneyBuilder_WithoutJoinTable(t *testing.T) {
	dir := &fakeDirectory{}
	b := NewJourneyBuilder(dir, models.SchemaCapabilities{})

	j, err := b.Build(context.Background(), onePullPoint(1), onePadLocation(10))
	require.NoError(t, err)
	require.Equal(t, JourneyReady, j.Status)
	require.Nil(t, j.JoinID)
	require.Equal(t, "TERMINAL->PULL_POINT + JOBNAME->PAD_LOCATION", j.Method)
	require.False(t, dir.wasCalled("FindJoin"))
}
