// Package match selects the best candidate from a ratings search result set.
// Both the institution filter and the matcher are pure functions; the
// coordinator owns all I/O around them.
package match

import (
	"strings"

	"github.com/emilyynorton/NotreDameRMP/internal/domain"
	"github.com/emilyynorton/NotreDameRMP/internal/names"
)

// FilterByInstitution keeps candidates belonging to the target institution:
// an exact school ID match, or a school name containing the fragment
// (case-insensitive). Candidates outside the institution are excluded with
// no fallback; a namesake at another school must never be matched.
func FilterByInstitution(candidates []domain.Candidate, institutionID, nameFragment string) []domain.Candidate {
	filtered := make([]domain.Candidate, 0, len(candidates))
	fragment := strings.ToLower(strings.TrimSpace(nameFragment))

	for _, c := range candidates {
		if institutionID != "" && c.School.ID == institutionID {
			filtered = append(filtered, c)
			continue
		}
		if fragment != "" && strings.Contains(strings.ToLower(c.School.Name), fragment) {
			filtered = append(filtered, c)
		}
	}

	return filtered
}

// Match picks the single best candidate for a query name, or declares
// no-match. Candidates must already be institution-filtered. Tiers are
// evaluated strictly in order and the first hit wins; ties within a tier
// resolve to the first candidate in list order, as returned by the search.
//
//  1. Exact full name (case- and diacritic-insensitive).
//  2. Last name equal and first name/initial compatible.
//  3. Department contains the supplied department string.
//
// When no tier matches, the result is NotFoundAtInstitution - never a blind
// guess at candidates[0].
func Match(candidates []domain.Candidate, query domain.CanonicalName, department string) domain.MatchOutcome {
	if len(candidates) == 0 {
		return domain.NoCandidates()
	}

	// Tier 1: exact full name.
	for _, c := range candidates {
		full := strings.TrimSpace(c.FirstName + " " + c.LastName)
		if names.FoldEqual(full, query.FullName) {
			return domain.Found(c)
		}
	}

	// Tier 2: last name plus first name or initial.
	if query.FirstName != "" {
		for _, c := range candidates {
			if !names.FoldEqual(c.LastName, query.LastName) {
				continue
			}
			if firstNameCompatible(c.FirstName, query.FirstName) {
				return domain.Found(c)
			}
		}
	}

	// Tier 3: department, only when the caller supplied one.
	if dept := strings.TrimSpace(department); dept != "" {
		deptLower := strings.ToLower(dept)
		for _, c := range candidates {
			if c.Department != "" && strings.Contains(strings.ToLower(c.Department), deptLower) {
				return domain.Found(c)
			}
		}
	}

	return domain.NotFoundAtInstitution()
}

// firstNameCompatible reports whether a candidate first name is consistent
// with the query's first token: equal outright, or the query token is a bare
// initial matching the candidate's first letter, or the initials agree.
func firstNameCompatible(candidateFirst, queryFirst string) bool {
	if names.FoldEqual(candidateFirst, queryFirst) {
		return true
	}

	cf := names.Fold(candidateFirst)
	qf := names.Fold(queryFirst)
	if cf == "" || qf == "" {
		return false
	}

	cInitial := []rune(cf)[0]
	qRunes := []rune(qf)
	if len(qRunes) == 1 && qRunes[0] == cInitial {
		return true
	}
	return qRunes[0] == cInitial
}
