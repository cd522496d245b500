package matching

import (
	"context"
	"fmt"
	"math"

	"github.com/BearBump/LoadBox/internal/models"
)

// Name match methods.
const (
	MethodNameExact      = "NAME_EXACT"
	MethodNameLikeUnique = "NAME_LIKE_UNIQUE"
	MethodNameFuzzy      = "NAME_FUZZY"
)

const (
	noteNameEmpty     = "Driver name is empty after normalization."
	noteNameAmbiguous = "Driver name ambiguous (multiple contacts match)."
	noteNameNoMatch   = "No contact match found by exact/like/fuzzy."
)

// Fuzzy acceptance: the best candidate must be within maxFuzzyDistance and beat the runner-up by minFuzzyMargin.
const (
	maxFuzzyDistance = 2
	minFuzzyMargin   = 1
)

// NameResult is the outcome of one name matching strategy. Contact is nil on a miss;
// Ambiguous tells that several contacts qualified and none was picked.
type NameResult struct {
	Contact   *models.Contact
	Method    string
	Note      string
	Ambiguous bool
}

// NameMatcher finds the contact for a raw driver name.
type NameMatcher interface {
	MatchName(ctx context.Context, name string) (NameResult, error)
}

// ExactNameMatcher matches the normalised full name exactly.
type ExactNameMatcher struct {
	dir ContactDirectory
}

func NewExactNameMatcher(dir ContactDirectory) *ExactNameMatcher {
	return &ExactNameMatcher{dir: dir}
}

func (m *ExactNameMatcher) MatchName(ctx context.Context, name string) (NameResult, error) {
	c, err := m.dir.ContactByFullName(ctx, NormalizeName(name))
	if err != nil || c == nil {
		return NameResult{}, err
	}
	return NameResult{Contact: c, Method: MethodNameExact}, nil
}

// SubstringNameMatcher accepts a contact whose full name contains the query, only when it is the only one.
type SubstringNameMatcher struct {
	dir   ContactDirectory
	limit int
}

func NewSubstringNameMatcher(dir ContactDirectory) *SubstringNameMatcher {
	return &SubstringNameMatcher{dir: dir, limit: NameLikeLimit}
}

func (m *SubstringNameMatcher) MatchName(ctx context.Context, name string) (NameResult, error) {
	cands, err := m.dir.ContactsByFullNameLike(ctx, NormalizeName(name), m.limit)
	if err != nil {
		return NameResult{}, err
	}
	switch len(cands) {
	case 0:
		return NameResult{}, nil
	case 1:
		return NameResult{Contact: &cands[0], Method: MethodNameLikeUnique}, nil
	}
	return NameResult{Ambiguous: true}, nil
}

// FuzzyNameMatcher gathers a pool by phonetic code of the last name (first name when there is
// no last name), falling back to a four-letter first-name prefix, and picks the unambiguous
// nearest candidate by NameDistance.
type FuzzyNameMatcher struct {
	dir      ContactDirectory
	phonetic bool
	limit    int
}

// NewFuzzyNameMatcher builds the fuzzy tier. With phonetic=false only the prefix pool is used.
func NewFuzzyNameMatcher(dir ContactDirectory, phonetic bool) *FuzzyNameMatcher {
	return &FuzzyNameMatcher{dir: dir, phonetic: phonetic, limit: NameFuzzyLimit}
}

func (m *FuzzyNameMatcher) MatchName(ctx context.Context, name string) (NameResult, error) {
	first, last := SplitName(name)
	first, last = NormalizeName(first), NormalizeName(last)
	if first == "" && last == "" {
		return NameResult{Note: noteNameEmpty}, nil
	}

	pool, err := m.pool(ctx, first, last)
	if err != nil || len(pool) == 0 {
		return NameResult{}, err
	}

	best, bestScore, secondScore := -1, math.MaxInt, math.MaxInt
	for i, c := range pool {
		score := NameDistance(name, c.FullName())
		if score < bestScore {
			secondScore = bestScore
			bestScore = score
			best = i
		} else if score < secondScore {
			secondScore = score
		}
	}

	if best >= 0 && bestScore <= maxFuzzyDistance && secondScore-bestScore >= minFuzzyMargin {
		return NameResult{
			Contact: &pool[best],
			Method:  MethodNameFuzzy,
			Note:    fmt.Sprintf("Fuzzy name match used (distance=%d).", bestScore),
		}, nil
	}
	if best >= 0 && bestScore <= maxFuzzyDistance && secondScore == bestScore {
		return NameResult{Ambiguous: true}, nil
	}
	return NameResult{}, nil
}

func (m *FuzzyNameMatcher) pool(ctx context.Context, first, last string) ([]models.Contact, error) {
	if m.phonetic {
		column, value := LastNameColumn, last
		if last == "" {
			column, value = FirstNameColumn, first
		}
		pool, err := m.dir.ContactsBySoundex(ctx, column, value, m.limit)
		if err != nil || len(pool) > 0 {
			return pool, err
		}
	}

	if first == "" {
		return nil, nil
	}
	return m.dir.ContactsByFirstNamePrefix(ctx, prefix(first, 4), m.limit)
}

// TieredNameMatcher tries each strategy in order and returns the first hit.
// On a miss the note explains why: the first strategy note, else ambiguity, else no match.
type TieredNameMatcher struct {
	tiers []NameMatcher
}

func NewTieredNameMatcher(tiers ...NameMatcher) *TieredNameMatcher {
	return &TieredNameMatcher{tiers: tiers}
}

// DefaultNameMatcher is exact, then unique substring, then fuzzy.
func DefaultNameMatcher(dir ContactDirectory, phonetic bool) *TieredNameMatcher {
	return NewTieredNameMatcher(
		NewExactNameMatcher(dir),
		NewSubstringNameMatcher(dir),
		NewFuzzyNameMatcher(dir, phonetic),
	)
}

func (m *TieredNameMatcher) MatchName(ctx context.Context, name string) (NameResult, error) {
	if NormalizeName(name) == "" {
		return NameResult{Note: noteNameEmpty}, nil
	}

	ambiguous := false
	note := ""
	for _, tier := range m.tiers {
		r, err := tier.MatchName(ctx, name)
		if err != nil {
			return NameResult{}, err
		}
		if r.Contact != nil {
			return r, nil
		}
		ambiguous = ambiguous || r.Ambiguous
		if note == "" {
			note = r.Note
		}
	}

	switch {
	case note != "":
	case ambiguous:
		note = noteNameAmbiguous
	default:
		note = noteNameNoMatch
	}
	return NameResult{Note: note, Ambiguous: ambiguous}, nil
}
