package models_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Vigneswer/MovieMate/internal/models"
)

func validPartyCreate() models.WatchPartyCreate {
	return models.WatchPartyCreate{
		MovieID:      1,
		Title:        "Movie Night",
		HostName:     "Sam",
		TimeSlots:    []time.Time{time.Now()},
		Participants: []models.ParticipantCreate{{Name: "Alex"}},
	}
}

func TestWatchPartyCreateValidate(t *testing.T) {
	create := validPartyCreate()
	if err := create.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*models.WatchPartyCreate)
		want   error
	}{
		{"blank title", func(c *models.WatchPartyCreate) { c.Title = "   " }, models.ErrPartyTitleRequired},
		{"blank host", func(c *models.WatchPartyCreate) { c.HostName = "" }, models.ErrHostNameRequired},
		{"no slots", func(c *models.WatchPartyCreate) { c.TimeSlots = nil }, models.ErrTimeSlotsRequired},
		{"no participants", func(c *models.WatchPartyCreate) { c.Participants = nil }, models.ErrParticipantsRequired},
		{"unnamed participant", func(c *models.WatchPartyCreate) {
			c.Participants = append(c.Participants, models.ParticipantCreate{Name: " "})
		}, models.ErrParticipantName},
	}
	for _, tc := range cases {
		create := validPartyCreate()
		tc.mutate(&create)
		if err := create.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestVoteRequestValidate(t *testing.T) {
	yes := true
	ok := models.VoteRequest{ParticipantID: 1, TimeSlotID: 2, IsAvailable: &yes}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	bad := []models.VoteRequest{
		{TimeSlotID: 2, IsAvailable: &yes},
		{ParticipantID: 1, IsAvailable: &yes},
		{ParticipantID: 1, TimeSlotID: 2},
	}
	for i, req := range bad {
		if err := req.Validate(); !errors.Is(err, models.ErrVoteFieldsRequired) {
			t.Errorf("case %d: err = %v, want ErrVoteFieldsRequired", i, err)
		}
	}
}
