package handlers

import (
	"net/http"

	"prode-api/packages/core/models"
	"prode-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type TournamentHandler struct {
	tournamentService *services.TournamentService
}

func NewTournamentHandler(tournamentService *services.TournamentService) *TournamentHandler {
	return &TournamentHandler{
		tournamentService: tournamentService,
	}
}

// CreateTournament creates a new tournament
// @Summary Create a new tournament
// @Description Create a tournament for a competition; the caller becomes its creator
// @Tags tournaments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param tournament body models.CreateTournamentRequest true "Tournament data"
// @Success 201 {object} models.Tournament
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /tournaments [post]
func (h *TournamentHandler) CreateTournament(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.CreateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tournament, err := h.tournamentService.CreateTournament(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tournament)
}

// GetTournament gets a tournament by ID
// @Summary Get tournament by ID
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} models.Tournament
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id} [get]
func (h *TournamentHandler) GetTournament(c *gin.Context) {
	id, ok := parseID(c, "id", "tournament")
	if !ok {
		return
	}

	tournament, err := h.tournamentService.GetTournamentByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tournament)
}

// GetAllTournaments lists tournaments
// @Summary Get all tournaments
// @Tags tournaments
// @Produce json
// @Param competition_id query int false "Filter by competition"
// @Param status query string false "Filter by status" Enums(pending, active, completed)
// @Success 200 {array} models.Tournament
// @Failure 500 {object} map[string]string
// @Router /tournaments [get]
func (h *TournamentHandler) GetAllTournaments(c *gin.Context) {
	competitionID, ok := parseOptionalID(c, "competition_id")
	if !ok {
		return
	}

	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	tournaments, err := h.tournamentService.GetAllTournaments(c.Request.Context(), competitionID, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tournaments)
}

// UpdateTournament updates a tournament
// @Summary Update tournament
// @Description Update name, status, rules or password (creator only)
// @Tags tournaments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Tournament ID"
// @Param tournament body models.UpdateTournamentRequest true "Fields to update"
// @Success 200 {object} models.Tournament
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id} [patch]
func (h *TournamentHandler) UpdateTournament(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "tournament")
	if !ok {
		return
	}

	var req models.UpdateTournamentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tournament, err := h.tournamentService.UpdateTournament(c.Request.Context(), id, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tournament)
}

// DeleteTournament deletes a tournament
// @Summary Delete tournament
// @Tags tournaments
// @Security BearerAuth
// @Param id path int true "Tournament ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id} [delete]
func (h *TournamentHandler) DeleteTournament(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "tournament")
	if !ok {
		return
	}

	if err := h.tournamentService.DeleteTournament(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetLeaderboard returns the tournament standings
// @Summary Tournament leaderboard
// @Tags tournaments
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} models.LeaderboardResponse
// @Failure 404 {object} map[string]string
// @Router /tournaments/{id}/leaderboard [get]
func (h *TournamentHandler) GetLeaderboard(c *gin.Context) {
	id, ok := parseID(c, "id", "tournament")
	if !ok {
		return
	}

	leaderboard, err := h.tournamentService.Leaderboard(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, leaderboard)
}
