package service

import (
	"testing"
	"time"

	"github.com/Vigneswer/MovieMate/internal/models"
	"github.com/Vigneswer/MovieMate/internal/repository"
)

func TestMondayOffset(t *testing.T) {
	cases := []struct {
		day  time.Weekday
		want int
	}{
		{time.Monday, 0},
		{time.Tuesday, 1},
		{time.Saturday, 5},
		{time.Sunday, 6},
	}
	for _, tc := range cases {
		if got := mondayOffset(tc.day); got != tc.want {
			t.Errorf("mondayOffset(%v) = %d, want %d", tc.day, got, tc.want)
		}
	}
}

func TestWatchMinutesMovie(t *testing.T) {
	d := 148
	entry := repository.WatchedEntry{ContentType: models.ContentTypeMovie, Duration: &d}
	if got := watchMinutes(entry); got != 148 {
		t.Fatalf("watchMinutes = %v, want 148", got)
	}

	entry.Duration = nil
	if got := watchMinutes(entry); got != 0 {
		t.Fatalf("movie without duration = %v, want 0", got)
	}
}

func TestWatchMinutesTVShow(t *testing.T) {
	total := 10
	duration := 600
	entry := repository.WatchedEntry{
		ContentType:     models.ContentTypeTVShow,
		Duration:        &duration,
		TotalEpisodes:   &total,
		EpisodesWatched: 4,
	}
	if got := watchMinutes(entry); got != 240 {
		t.Fatalf("watchMinutes = %v, want 240", got)
	}
}

func TestWatchMinutesTVShowFallbackEpisodeLength(t *testing.T) {
	entry := repository.WatchedEntry{
		ContentType:     models.ContentTypeTVShow,
		EpisodesWatched: 3,
	}
	if got := watchMinutes(entry); got != 3*defaultEpisodeMinutes {
		t.Fatalf("watchMinutes = %v, want %v", got, 3*defaultEpisodeMinutes)
	}
}
