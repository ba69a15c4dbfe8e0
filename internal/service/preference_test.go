package service

import (
	"reflect"
	"testing"

	"github.com/Vigneswer/MovieMate/internal/models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestExtractKeywords(t *testing.T) {
	got := extractKeywords("The Quick Brown Fox Jumps")
	want := []string{"quick", "brown", "jumps"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("extractKeywords = %v, want %v", got, want)
	}
}

func TestExtractKeywordsDropsStopWordsAndShortWords(t *testing.T) {
	got := extractKeywords("It could have been the greatest heist of all time")
	want := []string{"greatest", "heist", "time"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("extractKeywords = %v, want %v", got, want)
	}
}

func TestExtractKeywordsDigitAdjacentRuns(t *testing.T) {
	// Digits delimit letter runs rather than suppressing them, so the letter
	// prefix of "area51" still counts when it is long enough on its own.
	got := extractKeywords("area51 sector7 blade2049 runner")
	want := []string{"area", "sector", "blade", "runner"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("extractKeywords = %v, want %v", got, want)
	}
}

func TestExtractKeywordsEmpty(t *testing.T) {
	if got := extractKeywords(""); got != nil {
		t.Fatalf("extractKeywords(\"\") = %v, want nil", got)
	}
}

func TestExtractKeywordsCap(t *testing.T) {
	text := "alpha bravo charlie delta echo foxtrot golf hotel india juliet " +
		"kilo lima mike november oscar papa quebec romeo sierra tango"
	got := extractKeywords(text)
	if len(got) != keywordsPerText {
		t.Fatalf("len = %d, want %d", len(got), keywordsPerText)
	}
	if got[0] != "alpha" || got[len(got)-1] != "oscar" {
		t.Fatalf("unexpected capped list: %v", got)
	}
}

func TestAnalyzePreferencesDefaults(t *testing.T) {
	profile := analyzePreferences(nil)

	if profile.AvgYear != defaultAvgYear {
		t.Fatalf("AvgYear = %v, want %v", profile.AvgYear, float64(defaultAvgYear))
	}
	if profile.YearMin != defaultYearMin || profile.YearMax != defaultYearMax {
		t.Fatalf("year range = (%d, %d), want (%d, %d)",
			profile.YearMin, profile.YearMax, defaultYearMin, defaultYearMax)
	}
	if len(profile.TopGenres) != 0 || len(profile.HighlyRated) != 0 {
		t.Fatalf("expected empty genre and highly-rated lists, got %v / %v",
			profile.TopGenres, profile.HighlyRated)
	}
}

func TestAnalyzePreferencesGenreRanking(t *testing.T) {
	entries := []models.Movie{
		{Genre: "Sci-Fi, Action"},
		{Genre: "Sci-Fi, Thriller"},
		{Genre: "Sci-Fi, Drama"},
		{Genre: "Action"},
	}
	profile := analyzePreferences(entries)

	if profile.TopGenres[0] != "Sci-Fi" {
		t.Fatalf("top genre = %q, want Sci-Fi", profile.TopGenres[0])
	}
	if profile.TopGenres[1] != "Action" {
		t.Fatalf("second genre = %q, want Action", profile.TopGenres[1])
	}
	if _, ok := profile.AllGenres["Thriller"]; !ok {
		t.Fatal("AllGenres should contain every observed genre")
	}
}

func TestAnalyzePreferencesTieBreaksByFirstSeen(t *testing.T) {
	entries := []models.Movie{
		{Genre: "Horror"},
		{Genre: "Comedy"},
	}
	profile := analyzePreferences(entries)

	want := []string{"Horror", "Comedy"}
	if !reflect.DeepEqual(profile.TopGenres, want) {
		t.Fatalf("TopGenres = %v, want %v", profile.TopGenres, want)
	}
}

func TestAnalyzePreferencesYearStats(t *testing.T) {
	entries := []models.Movie{
		{ReleaseYear: intPtr(1999)},
		{ReleaseYear: intPtr(2001)},
		{ReleaseYear: intPtr(2021)},
	}
	profile := analyzePreferences(entries)

	if profile.AvgYear != 2007.0 {
		t.Fatalf("AvgYear = %v, want 2007", profile.AvgYear)
	}
	if profile.YearMin != 1999 || profile.YearMax != 2021 {
		t.Fatalf("year range = (%d, %d), want (1999, 2021)", profile.YearMin, profile.YearMax)
	}
}

func TestAnalyzePreferencesCastLimitedToTopBilling(t *testing.T) {
	entries := []models.Movie{
		{Cast: "Lead One, Lead Two, Lead Three, Bit Part"},
	}
	profile := analyzePreferences(entries)

	for _, actor := range profile.TopActors {
		if actor == "Bit Part" {
			t.Fatal("fourth-billed cast member should not be profiled")
		}
	}
}

// Ratings sit on a 0-10 scale, so a threshold of 4 admits middling scores like
// 4.5. The selection behavior is long-standing and preserved here.
func TestAnalyzePreferencesHighlyRated(t *testing.T) {
	entries := []models.Movie{
		{Title: "Meh", UserRating: floatPtr(4.5)},
		{Title: "Bad", UserRating: floatPtr(3.9)},
		{Title: "Great", UserRating: floatPtr(9.0)},
		{Title: "Unrated"},
	}
	profile := analyzePreferences(entries)

	if len(profile.HighlyRated) != 2 {
		t.Fatalf("highly rated count = %d, want 2", len(profile.HighlyRated))
	}
	if profile.HighlyRated[0].Title != "Meh" || profile.HighlyRated[1].Title != "Great" {
		t.Fatalf("unexpected highly rated set: %+v", profile.HighlyRated)
	}
}

func TestAnalyzePreferencesHighlyRatedCap(t *testing.T) {
	entries := []models.Movie{
		{Title: "A", UserRating: floatPtr(8)},
		{Title: "B", UserRating: floatPtr(8)},
		{Title: "C", UserRating: floatPtr(8)},
		{Title: "D", UserRating: floatPtr(8)},
	}
	profile := analyzePreferences(entries)

	if len(profile.HighlyRated) != highlyRatedCap {
		t.Fatalf("highly rated count = %d, want %d", len(profile.HighlyRated), highlyRatedCap)
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" Action , , Sci-Fi ,Drama")
	want := []string{"Action", "Sci-Fi", "Drama"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("splitCSV = %v, want %v", got, want)
	}
	if splitCSV("") != nil {
		t.Fatal("splitCSV(\"\") should be nil")
	}
}
