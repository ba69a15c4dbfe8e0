package handler

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/Vigneswer/MovieMate/internal/models"
	"github.com/Vigneswer/MovieMate/internal/service"
)

// WatchPartyHandler handles HTTP requests for watch parties and voting.
type WatchPartyHandler struct {
	svc *service.WatchPartyService
}

// NewWatchPartyHandler creates a new WatchPartyHandler.
func NewWatchPartyHandler(svc *service.WatchPartyService) *WatchPartyHandler {
	return &WatchPartyHandler{svc: svc}
}

// CreateParty creates a watch party with its time slots and participants.
// @Summary Create watch party
// @Tags watch-parties
// @Accept json
// @Produce json
// @Param party body models.WatchPartyCreate true "Party to create"
// @Success 201 {object} models.WatchParty
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /watch-parties [post]
func (h *WatchPartyHandler) CreateParty(c fiber.Ctx) error {
	var req models.WatchPartyCreate
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	party, err := h.svc.CreateParty(&req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPartyMovieAbsent):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
		case isPartyValidationError(err):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to create watch party", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to create watch party"})
	}

	return c.Status(fiber.StatusCreated).JSON(party)
}

// ListParties returns all watch parties.
// @Summary List watch parties
// @Tags watch-parties
// @Produce json
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Max results" default(100)
// @Success 200 {array} models.WatchParty
// @Router /watch-parties [get]
func (h *WatchPartyHandler) ListParties(c fiber.Ctx) error {
	skip := fiber.Query(c, "skip", 0)
	limit := fiber.Query(c, "limit", 100)
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	parties, err := h.svc.ListParties(skip, limit)
	if err != nil {
		slog.Error("failed to list watch parties", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to retrieve watch parties"})
	}
	if parties == nil {
		parties = []models.WatchParty{}
	}

	return c.JSON(parties)
}

// PartiesByMovie returns watch parties planned for one collection entry.
// @Summary List parties for a movie
// @Tags watch-parties
// @Produce json
// @Param movie_id path int true "Movie ID"
// @Success 200 {array} models.WatchParty
// @Router /watch-parties/movie/{movie_id} [get]
func (h *WatchPartyHandler) PartiesByMovie(c fiber.Ctx) error {
	movieID, err := strconv.Atoi(c.Params("movie_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid movie ID"})
	}

	parties, err := h.svc.ListByMovie(movieID)
	if err != nil {
		slog.Error("failed to list parties for movie", "movie_id", movieID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to retrieve watch parties"})
	}
	if parties == nil {
		parties = []models.WatchParty{}
	}

	return c.JSON(parties)
}

// GetParty returns one watch party with slots and participants.
// @Summary Get watch party
// @Tags watch-parties
// @Produce json
// @Param id path int true "Party ID"
// @Success 200 {object} models.WatchParty
// @Failure 404 {object} ErrorResponse
// @Router /watch-parties/{id} [get]
func (h *WatchPartyHandler) GetParty(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid party ID"})
	}

	party, err := h.svc.GetParty(id)
	if err != nil {
		if errors.Is(err, service.ErrPartyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "watch party not found"})
		}
		slog.Error("failed to get watch party", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to retrieve watch party"})
	}

	return c.JSON(party)
}

// UpdateParty applies a partial update to a party.
// @Summary Update watch party
// @Tags watch-parties
// @Accept json
// @Produce json
// @Param id path int true "Party ID"
// @Param party body models.WatchPartyUpdate true "Fields to update"
// @Success 200 {object} models.WatchParty
// @Failure 404 {object} ErrorResponse
// @Router /watch-parties/{id} [put]
func (h *WatchPartyHandler) UpdateParty(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid party ID"})
	}

	var req models.WatchPartyUpdate
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	party, err := h.svc.UpdateParty(id, &req)
	if err != nil {
		if errors.Is(err, service.ErrPartyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "watch party not found"})
		}
		slog.Error("failed to update watch party", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to update watch party"})
	}

	return c.JSON(party)
}

// DeleteParty removes a party with its slots, participants and votes.
// @Summary Delete watch party
// @Tags watch-parties
// @Produce json
// @Param id path int true "Party ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /watch-parties/{id} [delete]
func (h *WatchPartyHandler) DeleteParty(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid party ID"})
	}

	if err := h.svc.DeleteParty(id); err != nil {
		if errors.Is(err, service.ErrPartyNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "watch party not found"})
		}
		slog.Error("failed to delete watch party", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to delete watch party"})
	}

	return c.JSON(fiber.Map{"message": "deleted"})
}

// AddParticipant adds a participant to a party.
// @Summary Add participant
// @Tags watch-parties
// @Accept json
// @Produce json
// @Param id path int true "Party ID"
// @Param participant body models.ParticipantCreate true "Participant to add"
// @Success 201 {object} models.Participant
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /watch-parties/{id}/participants [post]
func (h *WatchPartyHandler) AddParticipant(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid party ID"})
	}

	var req models.ParticipantCreate
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	participant, err := h.svc.AddParticipant(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPartyNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "watch party not found"})
		case errors.Is(err, models.ErrParticipantName):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to add participant", "party_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to add participant"})
	}

	return c.Status(fiber.StatusCreated).JSON(participant)
}

// CastVote records a participant's availability for a time slot. Voting twice
// for the same slot updates the earlier vote.
// @Summary Cast availability vote
// @Tags watch-parties
// @Accept json
// @Produce json
// @Param id path int true "Party ID"
// @Param vote body models.VoteRequest true "Vote to cast"
// @Success 200 {object} models.Vote
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /watch-parties/{id}/votes [post]
func (h *WatchPartyHandler) CastVote(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid party ID"})
	}

	var req models.VoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	vote, err := h.svc.CastVote(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPartyNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "watch party not found"})
		case errors.Is(err, service.ErrSlotNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "time slot not found"})
		case errors.Is(err, service.ErrParticipantNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
		case errors.Is(err, service.ErrSlotNotInParty), errors.Is(err, models.ErrVoteFieldsRequired):
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to cast vote", "party_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to cast vote"})
	}

	return c.JSON(vote)
}

// BestTime returns the slot with the most available votes.
// @Summary Best time recommendation
// @Tags watch-parties
// @Produce json
// @Param id path int true "Party ID"
// @Success 200 {object} models.BestTimeRecommendation
// @Failure 404 {object} ErrorResponse
// @Router /watch-parties/{id}/best-time [get]
func (h *WatchPartyHandler) BestTime(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid party ID"})
	}

	best, err := h.svc.BestTime(id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPartyNotFound):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "watch party not found"})
		case errors.Is(err, service.ErrNoBestTime):
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to compute best time", "party_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to compute best time"})
	}

	return c.JSON(best)
}

// isPartyValidationError reports whether the error is one of the party payload
// validation sentinels.
func isPartyValidationError(err error) bool {
	return errors.Is(err, models.ErrPartyTitleRequired) ||
		errors.Is(err, models.ErrHostNameRequired) ||
		errors.Is(err, models.ErrTimeSlotsRequired) ||
		errors.Is(err, models.ErrParticipantsRequired) ||
		errors.Is(err, models.ErrParticipantName)
}
