package service

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Vigneswer/MovieMate/internal/models"
)

// PreferenceProfile is the taste profile derived from the user's collection.
// It is computed fresh for every recommendation request and never persisted.
type PreferenceProfile struct {
	TopGenres    []string
	TopDirectors []string
	TopActors    []string
	TopKeywords  []string
	AvgYear      float64
	YearMin      int
	YearMax      int
	AllGenres    map[string]struct{}
	HighlyRated  []models.Movie
}

const (
	topGenresCount    = 5
	topDirectorsCount = 2
	topActorsCount    = 2
	topKeywordsCount  = 10
	highlyRatedCap    = 3
	keywordsPerText   = 15

	defaultAvgYear = 2020
	defaultYearMin = 2000
	defaultYearMax = 2024
)

// highlyRatedThreshold sits on the 0-10 rating scale but reads like a leftover
// from a 1-5 scale. Kept as-is to preserve existing selection behavior.
const highlyRatedThreshold = 4.0

var keywordPattern = regexp.MustCompile(`[a-z]{4,}`)

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "was": {}, "are": {}, "were": {},
	"been": {}, "be": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "can": {},
	"his": {}, "her": {}, "their": {},
}

// counter is a frequency counter whose Top ordering breaks ties by
// first-encountered key, matching stable-counter semantics.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) Add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

// Top returns up to n keys by descending frequency.
func (c *counter) Top(n int) []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	if len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// analyzePreferences derives a taste profile from the given collection entries.
// Empty input yields the documented defaults.
func analyzePreferences(entries []models.Movie) PreferenceProfile {
	genres := newCounter()
	directors := newCounter()
	actors := newCounter()
	keywords := newCounter()
	allGenres := make(map[string]struct{})

	var years []int
	var highlyRated []models.Movie

	for _, entry := range entries {
		for _, g := range splitCSV(entry.Genre) {
			genres.Add(g)
			allGenres[g] = struct{}{}
		}

		if entry.Director != "" {
			directors.Add(entry.Director)
		}

		// Only the first three billed cast members are significant.
		cast := splitCSV(entry.Cast)
		if len(cast) > 3 {
			cast = cast[:3]
		}
		for _, actor := range cast {
			actors.Add(actor)
		}

		if entry.ReleaseYear != nil {
			years = append(years, *entry.ReleaseYear)
		}

		for _, kw := range extractKeywords(entry.Description) {
			keywords.Add(kw)
		}

		if entry.UserRating != nil && *entry.UserRating >= highlyRatedThreshold {
			highlyRated = append(highlyRated, entry)
		}
	}

	profile := PreferenceProfile{
		TopGenres:    genres.Top(topGenresCount),
		TopDirectors: directors.Top(topDirectorsCount),
		TopActors:    actors.Top(topActorsCount),
		TopKeywords:  keywords.Top(topKeywordsCount),
		AvgYear:      defaultAvgYear,
		YearMin:      defaultYearMin,
		YearMax:      defaultYearMax,
		AllGenres:    allGenres,
	}

	if len(years) > 0 {
		sum := 0
		minYear, maxYear := years[0], years[0]
		for _, y := range years {
			sum += y
			if y < minYear {
				minYear = y
			}
			if y > maxYear {
				maxYear = y
			}
		}
		profile.AvgYear = float64(sum) / float64(len(years))
		profile.YearMin = minYear
		profile.YearMax = maxYear
	}

	if len(highlyRated) > highlyRatedCap {
		highlyRated = highlyRated[:highlyRatedCap]
	}
	profile.HighlyRated = highlyRated

	return profile
}

// extractKeywords pulls meaningful keywords from plot text: lowercase runs of
// four or more letters, minus stop words, capped at 15 per text in
// first-occurrence order.
func extractKeywords(text string) []string {
	if text == "" {
		return nil
	}

	words := keywordPattern.FindAllString(strings.ToLower(text), -1)
	keywords := make([]string, 0, len(words))
	for _, w := range words {
		if _, stop := stopWords[w]; stop {
			continue
		}
		keywords = append(keywords, w)
		if len(keywords) == keywordsPerText {
			break
		}
	}
	return keywords
}

// splitCSV splits a comma-joined string into trimmed, non-empty tokens.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}
