package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Vigneswer/MovieMate/internal/models"
)

const (
	genreWeight   = 0.4
	yearWeight    = 0.3
	keywordWeight = 0.3

	// A candidate further than this many years from the collection average
	// contributes nothing on the year component.
	yearFalloff = 50.0

	similarEraWindow = 5.0
)

// similarityScore computes a weighted similarity between an external candidate
// and a taste profile. The result is the unclamped sum of the contributing
// components, so it can slightly exceed 1 when all of them saturate.
func similarityScore(candidate models.Candidate, profile PreferenceProfile) float64 {
	score := 0.0

	// Genre overlap (40% weight)
	overlap := len(genreOverlap(candidate.Genre, profile.AllGenres))
	if overlap > 0 {
		denom := float64(len(profile.AllGenres))
		if denom < 1 {
			denom = 1
		}
		score += genreWeight * float64(overlap) / denom
	}

	// Year proximity (30% weight); malformed years contribute nothing.
	if year, ok := parseCandidateYear(candidate.ReleaseYear); ok {
		diff := math.Abs(float64(year) - profile.AvgYear)
		score += yearWeight * math.Max(0, 1-diff/yearFalloff)
	}

	// Plot keyword overlap (30% weight)
	if candidate.Plot != "" && len(profile.TopKeywords) > 0 {
		candidateKeywords := make(map[string]struct{})
		for _, kw := range extractKeywords(candidate.Plot) {
			candidateKeywords[kw] = struct{}{}
		}
		matches := 0
		for _, kw := range profile.TopKeywords {
			if _, ok := candidateKeywords[kw]; ok {
				matches++
			}
		}
		if matches > 0 {
			score += keywordWeight * float64(matches) / float64(len(profile.TopKeywords))
		}
	}

	return score
}

// parseCandidateYear extracts the year from a raw provider value, which may be
// a plain year or a range like "2019-2020"; only the first four digits of the
// first segment count.
func parseCandidateYear(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	segment := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '-' || r == '–'
	})
	if len(segment) == 0 {
		return 0, false
	}
	first := segment[0]
	if len(first) > 4 {
		first = first[:4]
	}
	year, err := strconv.Atoi(first)
	if err != nil || len(first) != 4 {
		return 0, false
	}
	return year, true
}

// genreOverlap returns the candidate genres present in the profile's genre
// set, preserving the candidate's order.
func genreOverlap(candidateGenre string, all map[string]struct{}) []string {
	var matched []string
	for _, g := range splitCSV(candidateGenre) {
		if _, ok := all[g]; ok {
			matched = append(matched, g)
		}
	}
	return matched
}

// buildMatchReason explains which factors made a candidate score.
func buildMatchReason(candidate models.Candidate, profile PreferenceProfile) string {
	var reasons []string

	if matched := genreOverlap(candidate.Genre, profile.AllGenres); len(matched) > 0 {
		if len(matched) > 2 {
			matched = matched[:2]
		}
		reasons = append(reasons, "Similar genres: "+strings.Join(matched, ", "))
	}

	if year, ok := parseCandidateYear(candidate.ReleaseYear); ok {
		if math.Abs(float64(year)-profile.AvgYear) <= similarEraWindow {
			reasons = append(reasons, fmt.Sprintf("From similar era (%d)", year))
		}
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Matches your preferences")
	}

	return strings.Join(reasons, "; ")
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
