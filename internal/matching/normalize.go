package matching

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/unicode/norm"
)

var (
	spaces     = regexp.MustCompile(`\s+`)
	dashSpaces = regexp.MustCompile(`\s*-\s*`)
	slashSpace = regexp.MustCompile(`\s*/\s*`)
)

// NormalizeName lower-cases s, turns every run of characters that are neither letters,
// digits nor whitespace into a single space and collapses whitespace.
func NormalizeName(s string) string {
	s = strings.ToLower(norm.NFC.String(strings.TrimSpace(s)))

	var b strings.Builder
	b.Grow(len(s))
	inPunct := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
			inPunct = false
			continue
		}
		if !inPunct {
			b.WriteByte(' ')
			inPunct = true
		}
	}
	return collapse(b.String())
}

// NormalizeTruck keeps ASCII letters and digits only, lower-cased.
func NormalizeTruck(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// NormalizeTerminal lower-cases, collapses whitespace and glues dashes: "Kermit  - North" -> "kermit-north".
func NormalizeTerminal(s string) string {
	return dashSpaces.ReplaceAllString(collapse(strings.ToLower(s)), "-")
}

// NormalizeJob lower-cases and collapses whitespace.
func NormalizeJob(s string) string {
	return collapse(strings.ToLower(s))
}

// LooseJob additionally glues slashes: "smith 4h / 5h" -> "smith 4h/5h".
func LooseJob(normalized string) string {
	return slashSpace.ReplaceAllString(normalized, "/")
}

// SquashDoubles collapses runs of the same character: "jonathann" -> "jonathan".
func SquashDoubles(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	first := true
	for _, r := range s {
		if !first && r == prev {
			continue
		}
		b.WriteRune(r)
		prev, first = r, false
	}
	return b.String()
}

// NameDistance is the edit distance between two names after normalisation and squashing doubles.
func NameDistance(a, b string) int {
	return levenshtein.ComputeDistance(SquashDoubles(NormalizeName(a)), SquashDoubles(NormalizeName(b)))
}

// SplitName returns (first, last). "Last, First" is recognised; otherwise the first and
// last whitespace-separated tokens are used and a single token is taken as the first name.
func SplitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}

	if before, after, ok := strings.Cut(name, ","); ok {
		return strings.TrimSpace(after), strings.TrimSpace(before)
	}

	parts := strings.Fields(name)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[len(parts)-1]
}

func collapse(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
