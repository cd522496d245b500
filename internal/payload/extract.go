package payload

import (
	"regexp"
	"strings"
)

var (
	lineBreak   = regexp.MustCompile(`\r\n|\n|\r`)
	twoWordName = regexp.MustCompile(`\b([A-Z][a-z]+)\s+([A-Z][a-z]+)\b`)
	truckLabel  = regexp.MustCompile(`(?i)\btruck\b\s*#?\s*:?\s*([A-Za-z0-9]+)`)
	singleToken = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// ExtractDriverName picks a driver name out of carrier text: the second line when the
// text spans lines, else the first "Firstname Lastname" pair, else the whole text.
func ExtractDriverName(text *string) *string {
	if text == nil {
		return nil
	}

	lines := lineBreak.Split(*text, -1)
	if len(lines) >= 2 {
		if v := StrOrNil(lines[1]); v != nil {
			return v
		}
	}

	if m := twoWordName.FindStringSubmatch(*text); m != nil {
		return StrOrNil(m[1] + " " + m[2])
	}

	return StrOrNil(*text)
}

// ExtractTruckNumber reads "Truck #: <token>" or accepts a text that is a single alphanumeric token.
func ExtractTruckNumber(text *string) *string {
	if text == nil {
		return nil
	}

	if m := truckLabel.FindStringSubmatch(*text); m != nil {
		return StrOrNil(m[1])
	}

	t := strings.TrimSpace(*text)
	if t != "" && singleToken.MatchString(t) {
		return &t
	}
	return nil
}
