package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/BearBump/LoadBox/internal/models"
	"github.com/stretchr/testify/require"
)

func TestTieredNameMatcher_Exact(t *testing.T) {
	dir := &fakeDirectory{contacts: []models.Contact{{ID: 1, FirstName: "John", LastName: "Smith"}}}

	r, err := DefaultNameMatcher(dir, true).MatchName(context.Background(), "JOHN  SMITH.")
	require.NoError(t, err)
	require.NotNil(t, r.Contact)
	require.Equal(t, int64(1), r.Contact.ID)
	require.Equal(t, MethodNameExact, r.Method)
	require.Empty(t, r.Note)
	require.False(t, dir.wasCalled("ContactsByFullNameLike"))
}

func TestTieredNameMatcher_UniqueSubstring(t *testing.T) {
	dir := &fakeDirectory{contacts: []models.Contact{
		{ID: 1, FirstName: "Johnny", LastName: "Appleseed"},
		{ID: 2, FirstName: "Maria", LastName: "Lopez"},
	}}

	r, err := DefaultNameMatcher(dir, true).MatchName(context.Background(), "appleseed")
	require.NoError(t, err)
	require.NotNil(t, r.Contact)
	require.Equal(t, int64(1), r.Contact.ID)
	require.Equal(t, MethodNameLikeUnique, r.Method)
}

func TestTieredNameMatcher_AmbiguousSubstring(t *testing.T) {
	dir := &fakeDirectory{contacts: []models.Contact{
		{ID: 1, FirstName: "John", LastName: "Smith"},
		{ID: 2, FirstName: "Jane", LastName: "Smith"},
	}}

	r, err := DefaultNameMatcher(dir, true).MatchName(context.Background(), "Smith")
	require.NoError(t, err)
	require.Nil(t, r.Contact)
	require.True(t, r.Ambiguous)
	require.Equal(t, "Driver name ambiguous (multiple contacts match).", r.Note)
}

func TestTieredNameMatcher_FuzzyVariant(t *testing.T) {
	dir := &fakeDirectory{contacts: []models.Contact{
		{ID: 7, FirstName: "Jonathann", LastName: "Smyth"},
		{ID: 8, FirstName: "Maria", LastName: "Lopez"},
	}}

	r, err := DefaultNameMatcher(dir, true).MatchName(context.Background(), "Jonathan Smith")
	require.NoError(t, err)
	require.NotNil(t, r.Contact)
	require.Equal(t, int64(7), r.Contact.ID)
	require.Equal(t, MethodNameFuzzy, r.Method)
	require.Equal(t, "Fuzzy name match used (distance=1).", r.Note)
}

func TestTieredNameMatcher_FuzzyTieIsAmbiguous(t *testing.T) {
	dir := &fakeDirectory{contacts: []models.Contact{
		{ID: 1, FirstName: "Jonathan", LastName: "Smyth"},
		{ID: 2, FirstName: "Jonathan", LastName: "Smitt"},
	}}

	r, err := DefaultNameMatcher(dir, true).MatchName(context.Background(), "Jonathan Smith")
	require.NoError(t, err)
	require.Nil(t, r.Contact)
	require.True(t, r.Ambiguous)
	require.Equal(t, "Driver name ambiguous (multiple contacts match).", r.Note)

	fr, err := NewFuzzyNameMatcher(dir, true).MatchName(context.Background(), "Jonathan Smith")
	require.NoError(t, err)
	require.Nil(t, fr.Contact)
	require.True(t, fr.Ambiguous)
}

func TestFuzzyNameMatcher_TrailingCommaUsesLastName(t *testing.T) {
	dir := &fakeDirectory{contacts: []models.Contact{{ID: 4, FirstName: "John", LastName: "Smith"}}}

	// "Smith," -> first="", last="smith": пул по фонетике фамилии, без префиксного поиска
	r, err := NewFuzzyNameMatcher(dir, true).MatchName(context.Background(), "Smith,")
	require.NoError(t, err)
	require.Nil(t, r.Contact)
	require.NotEqual(t, "Driver name is empty after normalization.", r.Note)
	require.True(t, dir.wasCalled("ContactsBySoundex"))
	require.False(t, dir.wasCalled("ContactsByFirstNamePrefix"))

	plain := &fakeDirectory{contacts: dir.contacts}
	r, err = NewFuzzyNameMatcher(plain, false).MatchName(context.Background(), "Smith,")
	require.NoError(t, err)
	require.Equal(t, NameResult{}, r)
	require.Empty(t, plain.calls)
}

func TestTieredNameMatcher_PhoneticMissFallsBackToPrefix(t *testing.T) {
	dir := &fakeDirectory{contacts: []models.Contact{{ID: 3, FirstName: "Jonathan", LastName: "Smith"}}}

	r, err := DefaultNameMatcher(dir, true).MatchName(context.Background(), "Jonathan Xmith")
	require.NoError(t, err)
	require.NotNil(t, r.Contact)
	require.Equal(t, int64(3), r.Contact.ID)
	require.Equal(t, MethodNameFuzzy, r.Method)
	require.True(t, dir.wasCalled("ContactsBySoundex"))
	require.True(t, dir.wasCalled("ContactsByFirstNamePrefix"))
}

func TestFuzzyNameMatcher_WithoutPhoneticUsesPrefixOnly(t *testing.T) {
	dir := &fakeDirectory{contacts: []models.Contact{{ID: 3, FirstName: "Jonathan", LastName: "Smith"}}}

	r, err := NewFuzzyNameMatcher(dir, false).MatchName(context.Background(), "Jonathan Smiht")
	require.NoError(t, err)
	require.NotNil(t, r.Contact)
	require.False(t, dir.wasCalled("ContactsBySoundex"))
}

// Short names: a distance-2 winner over a distance-3 runner-up is still accepted.
func TestFuzzyNameMatcher_ShortNameEdgeCases(t *testing.T) {
	dir := &fakeDirectory{contacts: []models.Contact{
		{ID: 1, FirstName: "Ed", LastName: "Loa"},
		{ID: 2, FirstName: "Ed", LastName: "Lyon"},
	}}
	m := NewFuzzyNameMatcher(dir, false)

	r, err := m.MatchName(context.Background(), "Ed Li")
	require.NoError(t, err)
	require.NotNil(t, r.Contact)
	require.Equal(t, int64(1), r.Contact.ID)
	require.Equal(t, "Fuzzy name match used (distance=2).", r.Note)

	// a lone distance-3 candidate is rejected
	dir.contacts = dir.contacts[1:]
	r, err = m.MatchName(context.Background(), "Ed Li")
	require.NoError(t, err)
	require.Nil(t, r.Contact)
}

func TestTieredNameMatcher_EmptyName(t *testing.T) {
	dir := &fakeDirectory{contacts: []models.Contact{{ID: 1, FirstName: "", LastName: ""}}}

	r, err := DefaultNameMatcher(dir, true).MatchName(context.Background(), " ?! ")
	require.NoError(t, err)
	require.Nil(t, r.Contact)
	require.Equal(t, "Driver name is empty after normalization.", r.Note)
	require.Empty(t, dir.calls) // в БД не ходили
}

func TestTieredNameMatcher_DirectoryError(t *testing.T) {
	dir := &fakeDirectory{err: errors.New("db down")}

	_, err := DefaultNameMatcher(dir, true).MatchName(context.Background(), "John Smith")
	require.EqualError(t, err, "db down")
}
