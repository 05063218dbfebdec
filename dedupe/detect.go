// ABOUTME: Duplicate suggestion detector over the full connection snapshot
// ABOUTME: Three passes: exact name groups, user-name matches, fuzzy matches
package dedupe

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/umassiv/roster/models"
)

const (
	// A candidate matches when its dissimilarity (1 - Similarity) to the
	// source name is strictly below this cutoff.
	fuzzyDissimilarityCutoff = 0.3

	// Names shorter than this never participate in fuzzy matching.
	minMatchLength = 3
)

// FindDuplicateSuggestions scans all connections for likely duplicate
// entries. Pure function over the snapshot: no I/O, never fails, empty
// input yields no suggestions.
//
// Earlier passes take priority: once a normalized name has produced a
// suggestion it is skipped by later passes, so a name is reported at
// most once.
func FindDuplicateSuggestions(connections []models.Connection, users []models.User) []models.DuplicateSuggestion {
	if len(connections) == 0 {
		return nil
	}

	var suggestions []models.DuplicateSuggestion
	processed := make(map[string]bool)

	usersByName := make(map[string][]models.User)
	for _, u := range users {
		key := NormalizeName(u.Name)
		usersByName[key] = append(usersByName[key], u)
	}

	// Group connections by normalized name. Key order follows first
	// appearance in the input so output is deterministic.
	var groupOrder []string
	groups := make(map[string][]models.Connection)
	for _, c := range connections {
		key := NormalizeName(c.Name)
		if _, ok := groups[key]; !ok {
			groupOrder = append(groupOrder, key)
		}
		groups[key] = append(groups[key], c)
	}

	// Pass 1: multiple records under the same normalized name.
	for _, key := range groupOrder {
		group := groups[key]
		if processed[key] || len(group) < 2 {
			continue
		}

		unique := dedupeByID(group)
		if len(unique) < 2 {
			continue
		}

		matchingUsers := usersByName[key]
		reason := fmt.Sprintf("Multiple connections named %q found.", unique[0].Name)
		if len(matchingUsers) > 0 {
			reason = fmt.Sprintf("Multiple connections named %q and %d user(s) with the same name exist.",
				unique[0].Name, len(matchingUsers))
		}

		suggestions = append(suggestions, models.DuplicateSuggestion{
			Name:          unique[0].Name,
			Matches:       unique,
			MatchingUsers: matchingUsers,
			Confidence:    models.ConfidenceHigh,
			Reason:        reason,
		})
		processed[key] = true
	}

	// Pass 2: connection names that collide with a user's name.
	for _, c := range connections {
		key := NormalizeName(c.Name)
		if processed[key] {
			continue
		}

		matchingUsers := usersByName[key]
		if len(matchingUsers) == 0 {
			continue
		}

		sameName := groups[key]
		if len(sameName) < 2 {
			// A lone connection matching a user name is not actionable.
			continue
		}

		suggestions = append(suggestions, models.DuplicateSuggestion{
			Name:          c.Name,
			Matches:       sameName,
			MatchingUsers: matchingUsers,
			Confidence:    models.ConfidenceHigh,
			Reason: fmt.Sprintf("Multiple connections named %q match %d user name(s). This might be the same person.",
				c.Name, len(matchingUsers)),
		})
		processed[key] = true
	}

	// Pass 3: fuzzy matches on edit distance.
	for _, c := range connections {
		key := NormalizeName(c.Name)
		if processed[key] {
			continue
		}
		if utf8.RuneCountInString(key) < minMatchLength {
			continue
		}

		var fuzzyMatches []models.Connection
		for _, candidate := range connections {
			candKey := NormalizeName(candidate.Name)
			if candKey == key || processed[candKey] {
				continue
			}
			if utf8.RuneCountInString(candKey) < minMatchLength {
				continue
			}
			if 1-Similarity(key, candKey) < fuzzyDissimilarityCutoff {
				fuzzyMatches = append(fuzzyMatches, candidate)
			}
		}

		if len(fuzzyMatches) == 0 {
			continue
		}

		union := dedupeByID(append([]models.Connection{c}, fuzzyMatches...))
		if len(union) < 2 {
			continue
		}

		var matchingUsers []models.User
		seenUsers := make(map[uuid.UUID]bool)
		for _, m := range union {
			for _, u := range usersByName[NormalizeName(m.Name)] {
				if !seenUsers[u.ID] {
					seenUsers[u.ID] = true
					matchingUsers = append(matchingUsers, u)
				}
			}
		}

		confidence := models.ConfidenceLow
		switch {
		case whitespaceVariantsOnly(union, key):
			confidence = models.ConfidenceHigh
		case len(union) == 2:
			confidence = models.ConfidenceMedium
		}

		reason := "Similar names found that might be the same person."
		if len(matchingUsers) > 0 {
			reason = fmt.Sprintf("Similar names found that match %d user(s).", len(matchingUsers))
		}

		suggestions = append(suggestions, models.DuplicateSuggestion{
			Name:          c.Name,
			Matches:       union,
			MatchingUsers: matchingUsers,
			Confidence:    confidence,
			Reason:        reason,
		})
		for _, m := range union {
			processed[NormalizeName(m.Name)] = true
		}
	}

	return suggestions
}

// dedupeByID keeps the first occurrence of each connection ID.
func dedupeByID(conns []models.Connection) []models.Connection {
	seen := make(map[uuid.UUID]bool, len(conns))
	var unique []models.Connection
	for _, c := range conns {
		if !seen[c.ID] {
			seen[c.ID] = true
			unique = append(unique, c)
		}
	}
	return unique
}

// whitespaceVariantsOnly reports whether every member's normalized name
// matches the source name once internal whitespace is ignored.
func whitespaceVariantsOnly(members []models.Connection, sourceKey string) bool {
	stripped := strings.ReplaceAll(sourceKey, " ", "")
	for _, m := range members {
		key := NormalizeName(m.Name)
		if key != sourceKey && strings.ReplaceAll(key, " ", "") != stripped {
			return false
		}
	}
	return true
}
