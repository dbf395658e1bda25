package handlers

import (
	"net/http"

	"prode-api/packages/core/models"
	"prode-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type CompetitionHandler struct {
	competitionService *services.CompetitionService
}

func NewCompetitionHandler(competitionService *services.CompetitionService) *CompetitionHandler {
	return &CompetitionHandler{
		competitionService: competitionService,
	}
}

// CreateCompetition creates a new competition
// @Summary Create a competition
// @Description Create a competition (admin only)
// @Tags competitions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param competition body models.CreateCompetitionRequest true "Competition data"
// @Success 201 {object} models.Competition
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /competitions [post]
func (h *CompetitionHandler) CreateCompetition(c *gin.Context) {
	var req models.CreateCompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	competition, err := h.competitionService.CreateCompetition(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, competition)
}

// @Summary Get competition by ID
// @Tags competitions
// @Produce json
// @Param id path int true "Competition ID"
// @Success 200 {object} models.Competition
// @Failure 404 {object} map[string]string
// @Router /competitions/{id} [get]
func (h *CompetitionHandler) GetCompetition(c *gin.Context) {
	id, ok := parseID(c, "id", "competition")
	if !ok {
		return
	}

	competition, err := h.competitionService.GetCompetition(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, competition)
}

// @Summary List competitions
// @Tags competitions
// @Produce json
// @Success 200 {array} models.Competition
// @Router /competitions [get]
func (h *CompetitionHandler) GetAllCompetitions(c *gin.Context) {
	competitions, err := h.competitionService.GetAllCompetitions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, competitions)
}

// @Summary Update competition
// @Tags competitions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Competition ID"
// @Param competition body models.UpdateCompetitionRequest true "Fields to update"
// @Success 200 {object} models.Competition
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /competitions/{id} [patch]
func (h *CompetitionHandler) UpdateCompetition(c *gin.Context) {
	id, ok := parseID(c, "id", "competition")
	if !ok {
		return
	}

	var req models.UpdateCompetitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	competition, err := h.competitionService.UpdateCompetition(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, competition)
}

// @Summary Delete competition
// @Tags competitions
// @Security BearerAuth
// @Param id path int true "Competition ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /competitions/{id} [delete]
func (h *CompetitionHandler) DeleteCompetition(c *gin.Context) {
	id, ok := parseID(c, "id", "competition")
	if !ok {
		return
	}

	if err := h.competitionService.DeleteCompetition(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
