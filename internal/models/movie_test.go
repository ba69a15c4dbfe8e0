package models_test

import (
	"errors"
	"testing"

	"github.com/Vigneswer/MovieMate/internal/models"
)

func TestMovieCreateValidate(t *testing.T) {
	mc := models.MovieCreate{Title: "Dune"}
	if err := mc.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if mc.ContentType != models.ContentTypeMovie {
		t.Errorf("default content type = %q", mc.ContentType)
	}
	if mc.Status != models.StatusWishlist {
		t.Errorf("default status = %q", mc.Status)
	}
}

func TestMovieCreateValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		create models.MovieCreate
		want   error
	}{
		{"empty title", models.MovieCreate{}, models.ErrTitleRequired},
		{"bad type", models.MovieCreate{Title: "X", ContentType: "anime"}, models.ErrInvalidContentType},
		{"bad status", models.MovieCreate{Title: "X", Status: "paused"}, models.ErrInvalidStatus},
		{"bad platform", models.MovieCreate{Title: "X", Platform: "VHS"}, models.ErrInvalidPlatform},
	}
	for _, tc := range cases {
		if err := tc.create.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestMovieListParamsValidate(t *testing.T) {
	p := models.MovieListParams{Skip: -5, Limit: 5000, ContentType: "anime", Status: "paused", Platform: "VHS"}
	p.Validate()

	if p.Skip != 0 {
		t.Errorf("Skip = %d, want 0", p.Skip)
	}
	if p.Limit != 100 {
		t.Errorf("Limit = %d, want 100", p.Limit)
	}
	if p.ContentType != "" || p.Status != "" || p.Platform != "" {
		t.Errorf("unknown filters should be dropped: %+v", p)
	}
}

func TestMovieListParamsValidateKeepsValid(t *testing.T) {
	p := models.MovieListParams{Skip: 10, Limit: 50, ContentType: models.ContentTypeTVShow, Status: models.StatusWatching, Platform: "Netflix"}
	p.Validate()

	if p.Skip != 10 || p.Limit != 50 {
		t.Errorf("pagination changed: %+v", p)
	}
	if p.ContentType != models.ContentTypeTVShow || p.Status != models.StatusWatching || p.Platform != "Netflix" {
		t.Errorf("valid filters dropped: %+v", p)
	}
}

func TestIsValidPlatform(t *testing.T) {
	if !models.IsValidPlatform("Netflix") {
		t.Error("Netflix should be valid")
	}
	if models.IsValidPlatform("netflix") {
		t.Error("platform matching is case-sensitive")
	}
}
