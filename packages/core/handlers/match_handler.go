package handlers

import (
	"context"
	"net/http"

	"prode-api/packages/core/models"
	"prode-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

// MatchScorer runs the scoring engine for one match.
type MatchScorer interface {
	ScoreMatch(ctx context.Context, matchID uint) (*models.ScoreMatchResponse, error)
}

// FeedSyncer pulls fixtures from the sports feed.
type FeedSyncer interface {
	SyncAll(ctx context.Context) (*services.SyncReport, error)
	SyncRecent(ctx context.Context) (*services.SyncReport, error)
}

type MatchHandler struct {
	matchService *services.MatchService
	scorer       MatchScorer
	syncer       FeedSyncer
}

func NewMatchHandler(matchService *services.MatchService, scorer MatchScorer, syncer FeedSyncer) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		scorer:       scorer,
		syncer:       syncer,
	}
}

// GetMatches lists matches
// @Summary Get matches
// @Description Get matches ordered by kickoff with optional filters
// @Tags matches
// @Produce json
// @Param competition_id query int false "Filter by competition"
// @Param status query string false "Filter by match status" Enums(not_started,pending,finished,cancelled)
// @Success 200 {array} models.Match
// @Failure 400 {object} map[string]string
// @Router /matches [get]
func (h *MatchHandler) GetMatches(c *gin.Context) {
	competitionID, ok := parseOptionalID(c, "competition_id")
	if !ok {
		return
	}

	var status *models.MatchStatus
	if s := c.Query("status"); s != "" {
		ms := models.MatchStatus(s)
		if !ms.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		status = &ms
	}

	matches, err := h.matchService.GetMatches(c.Request.Context(), competitionID, status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, matches)
}

// @Summary Get match by ID
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.Match
// @Failure 404 {object} map[string]string
// @Router /matches/{id} [get]
func (h *MatchHandler) GetMatch(c *gin.Context) {
	id, ok := parseID(c, "id", "match")
	if !ok {
		return
	}

	match, err := h.matchService.GetMatch(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// CreateMatch creates a match by hand
// @Summary Create a match
// @Description Create a match (admin only)
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match body models.CreateMatchRequest true "Match data"
// @Success 201 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches [post]
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var req models.CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.CreateMatch(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, match)
}

// UpdateMatch updates schedule, teams, goals or status
// @Summary Update a match
// @Description Setting status to finished scores the match's predictions (admin only)
// @Tags matches
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param match body models.UpdateMatchRequest true "Fields to update"
// @Success 200 {object} models.Match
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /matches/{id} [patch]
func (h *MatchHandler) UpdateMatch(c *gin.Context) {
	id, ok := parseID(c, "id", "match")
	if !ok {
		return
	}

	var req models.UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, err := h.matchService.UpdateMatch(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// @Summary Delete a match
// @Tags matches
// @Security BearerAuth
// @Param id path int true "Match ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /matches/{id} [delete]
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	id, ok := parseID(c, "id", "match")
	if !ok {
		return
	}

	if err := h.matchService.DeleteMatch(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ScoreMatch runs scoring for a finished match. Repeated calls are no-ops.
// @Summary Score a finished match
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} models.ScoreMatchResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /matches/{id}/score [post]
func (h *MatchHandler) ScoreMatch(c *gin.Context) {
	id, ok := parseID(c, "id", "match")
	if !ok {
		return
	}

	result, err := h.scorer.ScoreMatch(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SyncMatches pulls fixtures from the sports feed now
// @Summary Sync matches from the feed
// @Tags matches
// @Security BearerAuth
// @Produce json
// @Param scope query string false "recent (default) or season" Enums(recent, season)
// @Success 200 {object} services.SyncReport
// @Failure 400 {object} map[string]string
// @Router /matches/sync [post]
func (h *MatchHandler) SyncMatches(c *gin.Context) {
	var (
		report *services.SyncReport
		err    error
	)
	switch c.DefaultQuery("scope", "recent") {
	case "recent":
		report, err = h.syncer.SyncRecent(c.Request.Context())
	case "season":
		report, err = h.syncer.SyncAll(c.Request.Context())
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scope"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
