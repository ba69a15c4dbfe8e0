package models

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrPartyTitleRequired   = errors.New("party title is required")
	ErrHostNameRequired     = errors.New("host_name is required")
	ErrTimeSlotsRequired    = errors.New("at least one time slot is required")
	ErrParticipantsRequired = errors.New("at least one participant is required")
	ErrParticipantName      = errors.New("participant name is required")
	ErrVoteFieldsRequired   = errors.New("participant_id, time_slot_id and is_available are required")
)

// WatchParty is a planned group viewing session for one collection entry.
type WatchParty struct {
	ID               int        `json:"id"`
	MovieID          int        `json:"movie_id"`
	Title            string     `json:"title"`
	HostName         string     `json:"host_name"`
	SelectedDatetime *time.Time `json:"selected_datetime,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	IsFinalized      bool       `json:"is_finalized"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`

	TimeSlots    []TimeSlot    `json:"time_slots"`
	Participants []Participant `json:"participants"`
}

// TimeSlot is one proposed datetime for a watch party. Votes is a cached count
// of available votes; it is always recomputed from the vote rows after a write,
// never incremented in place.
type TimeSlot struct {
	ID               int       `json:"id"`
	WatchPartyID     int       `json:"watch_party_id"`
	ProposedDatetime time.Time `json:"proposed_datetime"`
	Votes            int       `json:"votes"`
	CreatedAt        time.Time `json:"created_at"`
}

// Participant is a person invited to a watch party.
type Participant struct {
	ID           int       `json:"id"`
	WatchPartyID int       `json:"watch_party_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	JoinedAt     time.Time `json:"joined_at"`
}

// Vote is one participant's availability answer for one time slot. At most one
// vote exists per (participant, time_slot) pair; casting again updates it.
type Vote struct {
	ID            int       `json:"id"`
	TimeSlotID    int       `json:"time_slot_id"`
	ParticipantID int       `json:"participant_id"`
	IsAvailable   bool      `json:"is_available"`
	VotedAt       time.Time `json:"voted_at"`
}

// ParticipantCreate is the payload for adding a participant.
type ParticipantCreate struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// WatchPartyCreate is the payload for creating a party with its initial slots
// and participants in one atomic operation.
type WatchPartyCreate struct {
	MovieID      int                 `json:"movie_id"`
	Title        string              `json:"title"`
	HostName     string              `json:"host_name"`
	Notes        string              `json:"notes"`
	TimeSlots    []time.Time         `json:"time_slots"`
	Participants []ParticipantCreate `json:"participants"`
}

// Validate rejects parties without a title, host, slots or participants.
func (c *WatchPartyCreate) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrPartyTitleRequired
	}
	if strings.TrimSpace(c.HostName) == "" {
		return ErrHostNameRequired
	}
	if len(c.TimeSlots) == 0 {
		return ErrTimeSlotsRequired
	}
	if len(c.Participants) == 0 {
		return ErrParticipantsRequired
	}
	for _, p := range c.Participants {
		if strings.TrimSpace(p.Name) == "" {
			return ErrParticipantName
		}
	}
	return nil
}

// WatchPartyUpdate is a partial-update payload for a party.
type WatchPartyUpdate struct {
	Title            *string    `json:"title"`
	HostName         *string    `json:"host_name"`
	SelectedDatetime *time.Time `json:"selected_datetime"`
	Notes            *string    `json:"notes"`
	IsFinalized      *bool      `json:"is_finalized"`
}

// VoteRequest is the payload for casting or updating an availability vote.
type VoteRequest struct {
	ParticipantID int   `json:"participant_id"`
	TimeSlotID    int   `json:"time_slot_id"`
	IsAvailable   *bool `json:"is_available"`
}

// Validate requires all three vote fields.
func (v *VoteRequest) Validate() error {
	if v.ParticipantID <= 0 || v.TimeSlotID <= 0 || v.IsAvailable == nil {
		return ErrVoteFieldsRequired
	}
	return nil
}

// BestTimeRecommendation summarizes the winning time slot for a party.
type BestTimeRecommendation struct {
	TimeSlotID             int       `json:"time_slot_id"`
	ProposedDatetime       time.Time `json:"proposed_datetime"`
	Votes                  int       `json:"votes"`
	AvailableCount         int       `json:"available_count"`
	TotalParticipants      int       `json:"total_participants"`
	AvailabilityPercentage float64   `json:"availability_percentage"`
}
