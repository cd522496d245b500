package matching

import (
	"context"
	"testing"

	"github.com/BearBump/LoadBox/internal/models"
	"github.com/stretchr/testify/require"
)

func TestPullPointResolver(t *testing.T) {
	dir := &fakeDirectory{
		pullPoints: []models.PullPoint{
			{ID: 1, Job: "Kermit - North"},
			{ID: 2, Job: "Kermit - South"},
			{ID: 3, Job: "Pecos Yard"},
			{ID: 4, Job: "Monahans Sand"},
		},
		deleted: map[int64]bool{4: true},
	}
	r := NewPullPointResolver(dir, "pull_points")
	ctx := context.Background()

	t.Run("normalized exact", func(t *testing.T) {
		m, err := r.Resolve(ctx, str("  kermit  -north "))
		require.NoError(t, err)
		require.Equal(t, LocationOne, m.Status)
		require.Equal(t, int64(1), m.Resolved.ID)
		require.Equal(t, MethodNormalizedExact, m.Resolved.Method)
		require.Empty(t, m.Candidates)
	})

	t.Run("unique substring", func(t *testing.T) {
		m, err := r.Resolve(ctx, str("PECOS"))
		require.NoError(t, err)
		require.Equal(t, LocationOne, m.Status)
		require.Equal(t, int64(3), m.Resolved.ID)
		require.Equal(t, MethodLikeUnique, m.Resolved.Method)
	})

	t.Run("ambiguous", func(t *testing.T) {
		m, err := r.Resolve(ctx, str("Kermit"))
		require.NoError(t, err)
		require.Equal(t, LocationMulti, m.Status)
		require.Nil(t, m.Resolved)
		require.Len(t, m.Candidates, 2)
		require.Equal(t, "Multiple pull points match.", m.Notes)
	})

	t.Run("deleted rows do not match", func(t *testing.T) {
		m, err := r.Resolve(ctx, str("Monahans Sand"))
		require.NoError(t, err)
		require.Equal(t, LocationNone, m.Status)
		require.Equal(t, "No pull point match found.", m.Notes)
	})

	t.Run("no terminal", func(t *testing.T) {
		m, err := r.Resolve(ctx, str("   "))
		require.NoError(t, err)
		require.Equal(t, LocationNone, m.Status)
		require.Equal(t, "No terminal in import.", m.Notes)
	})

	require.True(t, dir.wasCalled("PullPointByTerminal:pull_points"))
	require.False(t, dir.wasCalled("PullPointByTerminal:pull_point"))
}

func TestPullPointResolver_DefaultTable(t *testing.T) {
	dir := &fakeDirectory{}
	_, err := NewPullPointResolver(dir, "").Resolve(context.Background(), str("x"))
	require.NoError(t, err)
	require.True(t, dir.wasCalled("PullPointByTerminal:pull_point"))
}

func TestPadLocationResolver(t *testing.T) {
	dir := &fakeDirectory{
		padLocations: []models.PadLocation{
			{ID: 10, Job: "Smith 4H"},
			{ID: 11, Job: "Jones 2H/3H"},
			{ID: 12, Job: "Brown Unit A"},
			{ID: 13, Job: "Brown Unit B"},
		},
	}
	r := NewPadLocationResolver(dir)
	ctx := context.Background()

	t.Run("exact", func(t *testing.T) {
		m, err := r.Resolve(ctx, str(" smith   4h "))
		require.NoError(t, err)
		require.Equal(t, LocationOne, m.Status)
		require.Equal(t, int64(10), m.Resolved.ID)
		require.Equal(t, MethodExact, m.Resolved.Method)
	})

	t.Run("query contains label", func(t *testing.T) {
		m, err := r.Resolve(ctx, str("Smith 4H - rig 22"))
		require.NoError(t, err)
		require.Equal(t, LocationOne, m.Status)
		require.Equal(t, int64(10), m.Resolved.ID)
		require.Equal(t, MethodLikeUnique, m.Resolved.Method)
	})

	t.Run("slash variant", func(t *testing.T) {
		m, err := r.Resolve(ctx, str("Jones 2H / 3H"))
		require.NoError(t, err)
		require.Equal(t, LocationOne, m.Status)
		require.Equal(t, int64(11), m.Resolved.ID)
	})

	t.Run("ambiguous", func(t *testing.T) {
		m, err := r.Resolve(ctx, str("brown unit"))
		require.NoError(t, err)
		require.Equal(t, LocationMulti, m.Status)
		require.Equal(t, []models.PadLocation{{ID: 12, Job: "Brown Unit A"}, {ID: 13, Job: "Brown Unit B"}}, m.Candidates)
		require.Equal(t, "Jobname ambiguous: multiple pad_location matches.", m.Notes)
	})

	t.Run("no match", func(t *testing.T) {
		m, err := r.Resolve(ctx, str("Nowhere"))
		require.NoError(t, err)
		require.Equal(t, LocationNone, m.Status)
		require.Equal(t, "No pad_location match found.", m.Notes)
	})

	t.Run("no jobname", func(t *testing.T) {
		m, err := r.Resolve(ctx, nil)
		require.NoError(t, err)
		require.Equal(t, "No jobname in import.", m.Notes)
	})
}
