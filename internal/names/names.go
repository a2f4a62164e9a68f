// Package names normalizes raw instructor strings scraped from registration
// pages into canonical name records and search text.
package names

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/emilyynorton/NotreDameRMP/internal/domain"
)

// Format classifies the shape of a raw name string. Detection is an ordered
// closed set; adding a new page layout means adding a new format here.
type Format string

// Recognized raw-name formats.
const (
	FormatCommaSeparated Format = "comma_separated" // "Smith, Jane"
	FormatInitialDot     Format = "initial_dot"     // "J. Smith"
	FormatSpaceSeparated Format = "space_separated" // "Jane Smith"
	FormatSingleToken    Format = "single_token"    // "Smith"
	FormatNone           Format = "none"            // empty or sentinel
)

// Placeholder strings registration pages use when no instructor is assigned.
var sentinels = map[string]struct{}{
	"TBD":   {},
	"Staff": {},
	"TBA":   {},
}

// initialPattern matches single-initial forms like "J. Smith".
var initialPattern = regexp.MustCompile(`^[A-Z]\.\s+[A-Za-z]+`)

// IsSentinel reports whether the trimmed raw string is a "no instructor"
// placeholder or empty.
func IsSentinel(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return true
	}
	_, ok := sentinels[trimmed]
	return ok
}

// DetectFormat classifies a raw name string. Returns FormatNone for empty or
// sentinel input.
func DetectFormat(raw string) Format {
	trimmed := strings.TrimSpace(raw)
	if IsSentinel(trimmed) {
		return FormatNone
	}
	switch {
	case strings.Contains(trimmed, ","):
		return FormatCommaSeparated
	case strings.Contains(trimmed, "."):
		return FormatInitialDot
	case strings.Contains(trimmed, " "):
		return FormatSpaceSeparated
	default:
		return FormatSingleToken
	}
}

// Normalize converts a raw scraped string into a canonical name record.
// Returns nil for empty or sentinel input. The transform is lossy and
// one-way; FullName always equals trim(FirstName + " " + LastName).
func Normalize(raw string) *domain.CanonicalName {
	trimmed := strings.TrimSpace(raw)

	var firstName, lastName string

	switch DetectFormat(trimmed) {
	case FormatNone:
		return nil
	case FormatCommaSeparated:
		// "Lastname, Firstname" - split on the first comma.
		parts := strings.SplitN(trimmed, ",", 2)
		lastName = strings.TrimSpace(parts[0])
		firstName = strings.TrimSpace(parts[1])
	case FormatInitialDot:
		// "J. Smith" - the leading segment is a bare initial.
		parts := strings.SplitN(trimmed, ".", 2)
		firstName = strings.TrimSpace(parts[0])
		lastName = strings.TrimSpace(parts[1])
	case FormatSpaceSeparated:
		fields := strings.Fields(trimmed)
		firstName = fields[0]
		lastName = strings.Join(fields[1:], " ")
	case FormatSingleToken:
		lastName = trimmed
	}

	name := domain.NewCanonicalName(firstName, lastName)
	return &name
}

// SearchText derives the query string sent to the ratings service. It is a
// distinct transform from Normalize: "Lastname, Firstname" becomes
// "Firstname Lastname", and single-initial forms degrade to the last name
// alone to widen recall against the external index. The matcher's last-name
// and department tiers compensate for the lost precision.
func SearchText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if strings.Contains(trimmed, ",") {
		parts := strings.SplitN(trimmed, ",", 2)
		return strings.TrimSpace(strings.TrimSpace(parts[1]) + " " + strings.TrimSpace(parts[0]))
	}

	if initialPattern.MatchString(trimmed) {
		// Only an initial is available; search the last name alone.
		if idx := strings.LastIndex(trimmed, "."); idx >= 0 {
			return strings.TrimSpace(trimmed[idx+1:])
		}
	}

	return trimmed
}

// foldTransformer strips diacritics: decompose, drop combining marks,
// recompose.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold returns a lowercased, diacritic-free form of s for comparisons, so
// "José García" and "Jose Garcia" compare equal.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// FoldEqual reports whether two strings are equal under Fold.
func FoldEqual(a, b string) bool {
	return Fold(a) == Fold(b)
}
