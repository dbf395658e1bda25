package handlers

import (
	"net/http"

	"prode-api/packages/core/models"
	"prode-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type ParticipantHandler struct {
	participantService *services.ParticipantService
}

func NewParticipantHandler(participantService *services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: participantService,
	}
}

// Enroll joins the caller to a tournament
// @Summary Enroll in a tournament
// @Tags participants
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param enrollment body models.EnrollRequest true "Tournament and optional password"
// @Success 201 {object} models.Participant
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /participants [post]
func (h *ParticipantHandler) Enroll(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := h.participantService.Enroll(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, participant)
}

// @Summary Get participant by ID
// @Tags participants
// @Produce json
// @Param id path int true "Participant ID"
// @Success 200 {object} models.Participant
// @Failure 404 {object} map[string]string
// @Router /participants/{id} [get]
func (h *ParticipantHandler) GetParticipant(c *gin.Context) {
	id, ok := parseID(c, "id", "participant")
	if !ok {
		return
	}

	participant, err := h.participantService.GetParticipant(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, participant)
}

// @Summary List participants
// @Tags participants
// @Produce json
// @Param tournament_id query int false "Filter by tournament"
// @Success 200 {array} models.Participant
// @Router /participants [get]
func (h *ParticipantHandler) GetAllParticipants(c *gin.Context) {
	tournamentID, ok := parseOptionalID(c, "tournament_id")
	if !ok {
		return
	}

	participants, err := h.participantService.GetAllParticipants(c.Request.Context(), tournamentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, participants)
}

// @Summary My enrollments
// @Tags participants
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.Participant
// @Router /participants/me [get]
func (h *ParticipantHandler) GetMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	participants, err := h.participantService.GetByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, participants)
}

// Leave removes the caller's enrollment and predictions
// @Summary Leave a tournament
// @Tags participants
// @Security BearerAuth
// @Param id path int true "Participant ID"
// @Param tournamentId path int true "Tournament ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /participants/{id}/tournaments/{tournamentId} [delete]
func (h *ParticipantHandler) Leave(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id", "participant")
	if !ok {
		return
	}
	tournamentID, ok := parseID(c, "tournamentId", "tournament")
	if !ok {
		return
	}

	if err := h.participantService.Leave(c.Request.Context(), id, tournamentID, userID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
