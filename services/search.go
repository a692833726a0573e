package services

import (
	"strings"

	"resortbook/models"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const nameSimilarityThreshold = 0.7

func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

// calculateSimilarity is 1 - levenshtein distance / longer length.
func calculateSimilarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	distance := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptions)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// matchesName reports whether the normalized query is a substring of the
// name or close enough to the whole name or one of its words.
func matchesName(query, name string) bool {
	if query == "" {
		return true
	}
	name = normalizeInput(name)
	if strings.Contains(name, query) {
		return true
	}
	if calculateSimilarity(query, name) >= nameSimilarityThreshold {
		return true
	}
	for _, word := range strings.Fields(name) {
		if calculateSimilarity(query, word) >= nameSimilarityThreshold {
			return true
		}
	}
	return false
}

// searchByName filters accs by q. When nothing matches, the accommodation
// with the closest name is returned as a suggestion.
func searchByName(accs []models.Accommodation, q string) ([]models.Accommodation, *models.Accommodation) {
	query := normalizeInput(q)
	if query == "" {
		return accs, nil
	}

	matches := make([]models.Accommodation, 0)
	for _, acc := range accs {
		if matchesName(query, acc.Name) {
			matches = append(matches, acc)
		}
	}
	if len(matches) > 0 || len(accs) == 0 {
		return matches, nil
	}

	byName := make(map[string]int, len(accs))
	names := make([]string, 0, len(accs))
	for i, acc := range accs {
		n := normalizeInput(acc.Name)
		if _, seen := byName[n]; !seen {
			byName[n] = i
			names = append(names, n)
		}
	}
	closest := closestmatch.New(names, []int{2, 3}).Closest(query)
	if i, ok := byName[closest]; ok && closest != "" {
		suggestion := accs[i]
		return matches, &suggestion
	}
	return matches, nil
}
