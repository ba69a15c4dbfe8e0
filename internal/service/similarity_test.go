package service

import (
	"math"
	"strings"
	"testing"

	"github.com/Vigneswer/MovieMate/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParseCandidateYear(t *testing.T) {
	cases := []struct {
		raw  string
		year int
		ok   bool
	}{
		{"1999", 1999, true},
		{"2019-2020", 2019, true},
		{"2019–", 2019, true}, // en dash, ongoing series
		{"20199", 2019, true}, // only the first four digits count
		{"abcd", 0, false},
		{"99", 0, false},
		{"", 0, false},
		{"-2020", 2020, true},
	}
	for _, tc := range cases {
		year, ok := parseCandidateYear(tc.raw)
		if year != tc.year || ok != tc.ok {
			t.Errorf("parseCandidateYear(%q) = (%d, %v), want (%d, %v)",
				tc.raw, year, ok, tc.year, tc.ok)
		}
	}
}

func TestSimilarityScoreGenreComponent(t *testing.T) {
	profile := PreferenceProfile{
		AllGenres: map[string]struct{}{"Action": {}, "Sci-Fi": {}, "Drama": {}, "Thriller": {}},
	}
	candidate := models.Candidate{Genre: "Action, Sci-Fi"}

	got := similarityScore(candidate, profile)
	want := 0.4 * 2.0 / 4.0
	if !almostEqual(got, want) {
		t.Fatalf("score = %v, want %v", got, want)
	}
}

func TestSimilarityScoreNoGenreOverlapContributesNothing(t *testing.T) {
	profile := PreferenceProfile{AllGenres: map[string]struct{}{"Romance": {}}}
	candidate := models.Candidate{Genre: "Horror"}

	if got := similarityScore(candidate, profile); got != 0 {
		t.Fatalf("score = %v, want 0", got)
	}
}

func TestSimilarityScoreYearComponent(t *testing.T) {
	profile := PreferenceProfile{AvgYear: 2010}

	got := similarityScore(models.Candidate{ReleaseYear: "2020"}, profile)
	want := 0.3 * (1 - 10.0/50.0)
	if !almostEqual(got, want) {
		t.Fatalf("score = %v, want %v", got, want)
	}

	// Beyond the falloff the component bottoms out at zero.
	if got := similarityScore(models.Candidate{ReleaseYear: "1940"}, profile); got != 0 {
		t.Fatalf("distant year score = %v, want 0", got)
	}
}

func TestSimilarityScoreMalformedYearIgnored(t *testing.T) {
	profile := PreferenceProfile{AvgYear: 2010}
	if got := similarityScore(models.Candidate{ReleaseYear: "N/A?"}, profile); got != 0 {
		t.Fatalf("score = %v, want 0", got)
	}
}

func TestSimilarityScoreKeywordComponent(t *testing.T) {
	profile := PreferenceProfile{TopKeywords: []string{"heist", "robbery", "bank", "crew"}}
	candidate := models.Candidate{Plot: "A crew plans the perfect heist."}

	got := similarityScore(candidate, profile)
	want := 0.3 * 2.0 / 4.0
	if !almostEqual(got, want) {
		t.Fatalf("score = %v, want %v", got, want)
	}
}

func TestSimilarityScoreUnclampedSaturation(t *testing.T) {
	profile := PreferenceProfile{
		AllGenres:   map[string]struct{}{"Action": {}},
		AvgYear:     2020,
		TopKeywords: []string{"heist"},
	}
	candidate := models.Candidate{
		Genre:       "Action",
		ReleaseYear: "2020",
		Plot:        "The heist of the century.",
	}

	got := similarityScore(candidate, profile)
	if !almostEqual(got, 1.0) {
		t.Fatalf("saturated score = %v, want 1.0", got)
	}
}

func TestBuildMatchReasonGenresCappedAtTwo(t *testing.T) {
	profile := PreferenceProfile{
		AllGenres: map[string]struct{}{"Action": {}, "Sci-Fi": {}, "Thriller": {}},
		AvgYear:   1950,
	}
	candidate := models.Candidate{Genre: "Action, Sci-Fi, Thriller", ReleaseYear: "2020"}

	reason := buildMatchReason(candidate, profile)
	if reason != "Similar genres: Action, Sci-Fi" {
		t.Fatalf("reason = %q", reason)
	}
}

func TestBuildMatchReasonEra(t *testing.T) {
	profile := PreferenceProfile{AvgYear: 2018}
	candidate := models.Candidate{ReleaseYear: "2020"}

	reason := buildMatchReason(candidate, profile)
	if reason != "From similar era (2020)" {
		t.Fatalf("reason = %q", reason)
	}
}

func TestBuildMatchReasonCombined(t *testing.T) {
	profile := PreferenceProfile{
		AllGenres: map[string]struct{}{"Drama": {}},
		AvgYear:   2019,
	}
	candidate := models.Candidate{Genre: "Drama", ReleaseYear: "2021"}

	reason := buildMatchReason(candidate, profile)
	if !strings.Contains(reason, "Similar genres: Drama") || !strings.Contains(reason, "From similar era (2021)") {
		t.Fatalf("reason = %q", reason)
	}
	if !strings.Contains(reason, "; ") {
		t.Fatalf("reasons should be joined with '; ': %q", reason)
	}
}

func TestBuildMatchReasonFallback(t *testing.T) {
	reason := buildMatchReason(models.Candidate{}, PreferenceProfile{})
	if reason != "Matches your preferences" {
		t.Fatalf("reason = %q", reason)
	}
}
