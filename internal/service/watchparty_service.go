package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Vigneswer/MovieMate/internal/models"
)

var (
	ErrPartyNotFound       = errors.New("watch party not found")
	ErrSlotNotFound        = errors.New("time slot not found")
	ErrSlotNotInParty      = errors.New("time slot does not belong to this watch party")
	ErrParticipantNotFound = errors.New("participant not found in this watch party")
	ErrNoBestTime          = errors.New("no suitable time found")
	ErrPartyMovieAbsent    = errors.New("movie not found for watch party")
)

// PartyStore is the persistence seam for the voting aggregator. GetParty must
// return time slots in creation order; CreateParty and CastVote must be atomic.
type PartyStore interface {
	CreateParty(create *models.WatchPartyCreate) (*models.WatchParty, error)
	GetParty(id int) (*models.WatchParty, error)
	ListParties(skip, limit int) ([]models.WatchParty, error)
	ListByMovie(movieID int) ([]models.WatchParty, error)
	UpdateParty(id int, upd *models.WatchPartyUpdate) (*models.WatchParty, error)
	DeleteParty(id int) error
	AddParticipant(partyID int, pc *models.ParticipantCreate) (*models.Participant, error)
	GetSlot(slotID int) (*models.TimeSlot, error)
	CastVote(participantID, timeSlotID int, isAvailable bool) (*models.Vote, error)
	CountAvailableVotes(timeSlotID int) (int, error)
}

// MovieFinder checks that the collection entry a party points at exists.
type MovieFinder interface {
	GetByID(id int) (*models.Movie, error)
}

// WatchPartyService manages watch parties and availability voting.
type WatchPartyService struct {
	store  PartyStore
	movies MovieFinder
}

// NewWatchPartyService creates a new WatchPartyService.
func NewWatchPartyService(store PartyStore, movies MovieFinder) *WatchPartyService {
	return &WatchPartyService{store: store, movies: movies}
}

// CreateParty validates and atomically creates a party with its initial time
// slots and participants.
func (s *WatchPartyService) CreateParty(create *models.WatchPartyCreate) (*models.WatchParty, error) {
	if err := create.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.movies.GetByID(create.MovieID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPartyMovieAbsent
		}
		return nil, fmt.Errorf("verify movie: %w", err)
	}

	party, err := s.store.CreateParty(create)
	if err != nil {
		return nil, err
	}
	slog.Info("created watch party", "party_id", party.ID,
		"slots", len(party.TimeSlots), "participants", len(party.Participants))
	return party, nil
}

// GetParty returns one party with its slots and participants.
func (s *WatchPartyService) GetParty(id int) (*models.WatchParty, error) {
	party, err := s.store.GetParty(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPartyNotFound
		}
		return nil, err
	}
	return party, nil
}

// ListParties returns all parties, newest first.
func (s *WatchPartyService) ListParties(skip, limit int) ([]models.WatchParty, error) {
	return s.store.ListParties(skip, limit)
}

// ListByMovie returns all parties planned for one collection entry.
func (s *WatchPartyService) ListByMovie(movieID int) ([]models.WatchParty, error) {
	return s.store.ListByMovie(movieID)
}

// UpdateParty applies a partial update to a party.
func (s *WatchPartyService) UpdateParty(id int, upd *models.WatchPartyUpdate) (*models.WatchParty, error) {
	party, err := s.store.UpdateParty(id, upd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPartyNotFound
		}
		return nil, err
	}
	return party, nil
}

// DeleteParty removes a party and, through the store, its slots, participants
// and votes.
func (s *WatchPartyService) DeleteParty(id int) error {
	if err := s.store.DeleteParty(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPartyNotFound
		}
		return err
	}
	return nil
}

// AddParticipant adds a participant to an existing party.
func (s *WatchPartyService) AddParticipant(partyID int, pc *models.ParticipantCreate) (*models.Participant, error) {
	if pc.Name == "" {
		return nil, models.ErrParticipantName
	}
	if _, err := s.GetParty(partyID); err != nil {
		return nil, err
	}
	return s.store.AddParticipant(partyID, pc)
}

// CastVote records a participant's availability for one of the party's time
// slots. Voting is idempotent per (participant, slot): repeating a vote
// updates the existing row and the slot's cached count reflects only the
// latest value.
func (s *WatchPartyService) CastVote(partyID int, req *models.VoteRequest) (*models.Vote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	party, err := s.GetParty(partyID)
	if err != nil {
		return nil, err
	}

	member := false
	for _, p := range party.Participants {
		if p.ID == req.ParticipantID {
			member = true
			break
		}
	}
	if !member {
		return nil, ErrParticipantNotFound
	}

	slot, err := s.store.GetSlot(req.TimeSlotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	if slot.WatchPartyID != partyID {
		return nil, ErrSlotNotInParty
	}

	vote, err := s.store.CastVote(req.ParticipantID, req.TimeSlotID, *req.IsAvailable)
	if err != nil {
		return nil, err
	}
	slog.Info("vote recorded", "party_id", partyID,
		"time_slot_id", vote.TimeSlotID, "participant_id", vote.ParticipantID,
		"is_available", vote.IsAvailable)
	return vote, nil
}

// BestTime selects the time slot with the most available votes. Ties go to
// the earliest-created slot (strict greater-than over creation order).
// Parties without slots or participants have no best time.
func (s *WatchPartyService) BestTime(partyID int) (*models.BestTimeRecommendation, error) {
	party, err := s.GetParty(partyID)
	if err != nil {
		return nil, err
	}
	if len(party.TimeSlots) == 0 || len(party.Participants) == 0 {
		return nil, ErrNoBestTime
	}

	totalParticipants := len(party.Participants)
	var best *models.BestTimeRecommendation
	bestScore := -1

	for _, slot := range party.TimeSlots {
		availableCount, err := s.store.CountAvailableVotes(slot.ID)
		if err != nil {
			return nil, err
		}

		if availableCount > bestScore {
			bestScore = availableCount
			best = &models.BestTimeRecommendation{
				TimeSlotID:             slot.ID,
				ProposedDatetime:       slot.ProposedDatetime,
				Votes:                  slot.Votes,
				AvailableCount:         availableCount,
				TotalParticipants:      totalParticipants,
				AvailabilityPercentage: round1(100 * float64(availableCount) / float64(totalParticipants)),
			}
		}
	}

	return best, nil
}
