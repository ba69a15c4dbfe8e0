package repository

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Vigneswer/MovieMate/internal/models"
)

// WatchPartyRepository persists the watch-party graph: parties, their time
// slots, participants and votes.
type WatchPartyRepository struct {
	db *sql.DB
}

// NewWatchPartyRepository creates a new WatchPartyRepository.
func NewWatchPartyRepository(db *sql.DB) *WatchPartyRepository {
	return &WatchPartyRepository{db: db}
}

// CreateParty creates the party, its time slots and participants in one
// transaction; if any insert fails nothing persists.
func (r *WatchPartyRepository) CreateParty(create *models.WatchPartyCreate) (*models.WatchParty, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin create party: %w", err)
	}
	defer tx.Rollback()

	var partyID int
	err = tx.QueryRow(`
		INSERT INTO watch_parties (movie_id, title, host_name, notes)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING id
	`, create.MovieID, create.Title, create.HostName, create.Notes).Scan(&partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to create watch party: %w", err)
	}

	for _, slot := range create.TimeSlots {
		if _, err := tx.Exec(`
			INSERT INTO watch_party_time_slots (watch_party_id, proposed_datetime)
			VALUES ($1, $2)
		`, partyID, slot); err != nil {
			return nil, fmt.Errorf("failed to create time slot: %w", err)
		}
	}

	for _, p := range create.Participants {
		if _, err := tx.Exec(`
			INSERT INTO watch_party_participants (watch_party_id, name, email)
			VALUES ($1, $2, NULLIF($3, ''))
		`, partyID, p.Name, p.Email); err != nil {
			return nil, fmt.Errorf("failed to create participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create party: %w", err)
	}

	return r.GetParty(partyID)
}

// GetParty returns a party with its time slots (in creation order) and
// participants loaded.
func (r *WatchPartyRepository) GetParty(id int) (*models.WatchParty, error) {
	var party models.WatchParty
	err := r.db.QueryRow(`
		SELECT id, movie_id, title, host_name, selected_datetime,
			COALESCE(notes, ''), is_finalized, created_at, updated_at
		FROM watch_parties WHERE id = $1
	`, id).Scan(&party.ID, &party.MovieID, &party.Title, &party.HostName,
		&party.SelectedDatetime, &party.Notes, &party.IsFinalized,
		&party.CreatedAt, &party.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := r.loadGraph(&party); err != nil {
		return nil, err
	}
	return &party, nil
}

func (r *WatchPartyRepository) loadGraph(party *models.WatchParty) error {
	// Best-time tie-breaking depends on slots arriving in creation order, so
	// the ordering is explicit rather than left to the store.
	slotRows, err := r.db.Query(`
		SELECT id, watch_party_id, proposed_datetime, votes, created_at
		FROM watch_party_time_slots
		WHERE watch_party_id = $1
		ORDER BY created_at, id
	`, party.ID)
	if err != nil {
		return fmt.Errorf("failed to query time slots: %w", err)
	}
	defer slotRows.Close()

	party.TimeSlots = make([]models.TimeSlot, 0)
	for slotRows.Next() {
		var slot models.TimeSlot
		if err := slotRows.Scan(&slot.ID, &slot.WatchPartyID, &slot.ProposedDatetime,
			&slot.Votes, &slot.CreatedAt); err != nil {
			return fmt.Errorf("failed to scan time slot: %w", err)
		}
		party.TimeSlots = append(party.TimeSlots, slot)
	}
	if err := slotRows.Err(); err != nil {
		return err
	}

	participantRows, err := r.db.Query(`
		SELECT id, watch_party_id, name, COALESCE(email, ''), joined_at
		FROM watch_party_participants
		WHERE watch_party_id = $1
		ORDER BY joined_at, id
	`, party.ID)
	if err != nil {
		return fmt.Errorf("failed to query participants: %w", err)
	}
	defer participantRows.Close()

	party.Participants = make([]models.Participant, 0)
	for participantRows.Next() {
		var p models.Participant
		if err := participantRows.Scan(&p.ID, &p.WatchPartyID, &p.Name,
			&p.Email, &p.JoinedAt); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		party.Participants = append(party.Participants, p)
	}
	return participantRows.Err()
}

// ListParties returns all parties, newest first.
func (r *WatchPartyRepository) ListParties(skip, limit int) ([]models.WatchParty, error) {
	return r.queryParties(`
		SELECT id FROM watch_parties
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, skip)
}

// ListByMovie returns all parties for one collection entry, newest first.
func (r *WatchPartyRepository) ListByMovie(movieID int) ([]models.WatchParty, error) {
	return r.queryParties(`
		SELECT id FROM watch_parties
		WHERE movie_id = $1
		ORDER BY created_at DESC
	`, movieID)
}

func (r *WatchPartyRepository) queryParties(query string, args ...any) ([]models.WatchParty, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("party query failed: %w", err)
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	parties := make([]models.WatchParty, 0, len(ids))
	for _, id := range ids {
		party, err := r.GetParty(id)
		if err != nil {
			slog.Error("failed to load watch party", "party_id", id, "error", err)
			continue
		}
		parties = append(parties, *party)
	}
	return parties, nil
}

// UpdateParty applies a partial update; nil fields are left untouched.
func (r *WatchPartyRepository) UpdateParty(id int, upd *models.WatchPartyUpdate) (*models.WatchParty, error) {
	sets := []string{}
	args := []any{}
	argIdx := 1

	add := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.HostName != nil {
		add("host_name", *upd.HostName)
	}
	if upd.SelectedDatetime != nil {
		add("selected_datetime", *upd.SelectedDatetime)
	}
	if upd.Notes != nil {
		add("notes", *upd.Notes)
	}
	if upd.IsFinalized != nil {
		add("is_finalized", *upd.IsFinalized)
	}

	if len(sets) == 0 {
		return r.GetParty(id)
	}
	add("updated_at", time.Now())

	query := fmt.Sprintf(`UPDATE watch_parties SET %s WHERE id = $%d`,
		strings.Join(sets, ", "), argIdx)
	args = append(args, id)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update watch party: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return nil, sql.ErrNoRows
	}
	return r.GetParty(id)
}

// DeleteParty removes a party; slots, participants and votes cascade.
func (r *WatchPartyRepository) DeleteParty(id int) error {
	result, err := r.db.Exec(`DELETE FROM watch_parties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete watch party: %w", err)
	}
	affected, _ := result.RowsAffected()
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AddParticipant adds a participant to an existing party.
func (r *WatchPartyRepository) AddParticipant(partyID int, pc *models.ParticipantCreate) (*models.Participant, error) {
	var p models.Participant
	err := r.db.QueryRow(`
		INSERT INTO watch_party_participants (watch_party_id, name, email)
		VALUES ($1, $2, NULLIF($3, ''))
		RETURNING id, watch_party_id, name, COALESCE(email, ''), joined_at
	`, partyID, pc.Name, pc.Email).Scan(&p.ID, &p.WatchPartyID, &p.Name, &p.Email, &p.JoinedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}
	return &p, nil
}

// GetSlot returns one time slot.
func (r *WatchPartyRepository) GetSlot(slotID int) (*models.TimeSlot, error) {
	var slot models.TimeSlot
	err := r.db.QueryRow(`
		SELECT id, watch_party_id, proposed_datetime, votes, created_at
		FROM watch_party_time_slots WHERE id = $1
	`, slotID).Scan(&slot.ID, &slot.WatchPartyID, &slot.ProposedDatetime,
		&slot.Votes, &slot.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// CastVote upserts the (participant, time slot) vote and refreshes the slot's
// cached vote count in the same transaction. The count is always recomputed
// from the vote rows, never incremented, so repeated or concurrent casts
// cannot make it drift.
func (r *WatchPartyRepository) CastVote(participantID, timeSlotID int, isAvailable bool) (*models.Vote, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin cast vote: %w", err)
	}
	defer tx.Rollback()

	var vote models.Vote
	err = tx.QueryRow(`
		INSERT INTO watch_party_votes (time_slot_id, participant_id, is_available)
		VALUES ($1, $2, $3)
		ON CONFLICT (time_slot_id, participant_id) DO UPDATE SET
			is_available = EXCLUDED.is_available,
			voted_at = NOW()
		RETURNING id, time_slot_id, participant_id, is_available, voted_at
	`, timeSlotID, participantID, isAvailable).Scan(
		&vote.ID, &vote.TimeSlotID, &vote.ParticipantID, &vote.IsAvailable, &vote.VotedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to cast vote: %w", err)
	}

	if _, err := tx.Exec(`
		UPDATE watch_party_time_slots
		SET votes = (
			SELECT COUNT(*) FROM watch_party_votes
			WHERE time_slot_id = $1 AND is_available = TRUE
		)
		WHERE id = $1
	`, timeSlotID); err != nil {
		return nil, fmt.Errorf("failed to refresh vote count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit cast vote: %w", err)
	}
	return &vote, nil
}

// CountAvailableVotes counts the votes marking a slot as available.
func (r *WatchPartyRepository) CountAvailableVotes(timeSlotID int) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM watch_party_votes
		WHERE time_slot_id = $1 AND is_available = TRUE
	`, timeSlotID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count votes: %w", err)
	}
	return count, nil
}
