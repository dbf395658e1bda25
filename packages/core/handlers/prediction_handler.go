package handlers

import (
	"net/http"

	"prode-api/packages/core/apperrors"
	"prode-api/packages/core/models"
	"prode-api/packages/core/services"

	"github.com/gin-gonic/gin"
)

type PredictionHandler struct {
	predictionService  *services.PredictionService
	participantService *services.ParticipantService
}

func NewPredictionHandler(predictionService *services.PredictionService, participantService *services.ParticipantService) *PredictionHandler {
	return &PredictionHandler{
		predictionService:  predictionService,
		participantService: participantService,
	}
}

// CreatePrediction submits a forecast for a match
// @Summary Create a prediction
// @Description Predictions close 10 minutes before kickoff
// @Tags predictions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param prediction body models.CreatePredictionRequest true "Prediction"
// @Success 201 {object} models.Prediction
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /predictions [post]
func (h *PredictionHandler) CreatePrediction(c *gin.Context) {
	var req models.CreatePredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.requireOwner(c, req.ParticipantID) {
		return
	}

	prediction, err := h.predictionService.Submit(c.Request.Context(), req.ParticipantID, req.MatchID, *req.HomeGoals, *req.AwayGoals)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, prediction)
}

// UpdatePrediction changes the predicted goals
// @Summary Update a prediction
// @Tags predictions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Prediction ID"
// @Param prediction body models.UpdatePredictionRequest true "Goals to change"
// @Success 200 {object} models.Prediction
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /predictions/{id} [patch]
func (h *PredictionHandler) UpdatePrediction(c *gin.Context) {
	id, ok := parseID(c, "id", "prediction")
	if !ok {
		return
	}

	var req models.UpdatePredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.predictionService.GetPrediction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !h.requireOwner(c, existing.ParticipantID) {
		return
	}

	prediction, err := h.predictionService.Update(c.Request.Context(), id, req.HomeGoals, req.AwayGoals)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prediction)
}

// SubmitBatch creates or updates several predictions at once
// @Summary Batch predictions
// @Tags predictions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param predictions body models.BatchPredictionRequest true "Predictions"
// @Success 200 {array} models.BatchPredictionResult
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /predictions/batch [post]
func (h *PredictionHandler) SubmitBatch(c *gin.Context) {
	var req models.BatchPredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !h.requireOwner(c, req.ParticipantID) {
		return
	}

	results, err := h.predictionService.SubmitBatch(c.Request.Context(), req.ParticipantID, req.Predictions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// @Summary Get prediction by ID
// @Tags predictions
// @Produce json
// @Param id path int true "Prediction ID"
// @Success 200 {object} models.Prediction
// @Failure 404 {object} map[string]string
// @Router /predictions/{id} [get]
func (h *PredictionHandler) GetPrediction(c *gin.Context) {
	id, ok := parseID(c, "id", "prediction")
	if !ok {
		return
	}

	prediction, err := h.predictionService.GetPrediction(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, prediction)
}

// @Summary Predictions of a participant
// @Tags predictions
// @Produce json
// @Param id path int true "Participant ID"
// @Success 200 {array} models.Prediction
// @Router /predictions/by-participant/{id} [get]
func (h *PredictionHandler) GetByParticipant(c *gin.Context) {
	id, ok := parseID(c, "id", "participant")
	if !ok {
		return
	}

	predictions, err := h.predictionService.GetByParticipant(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, predictions)
}

// @Summary Predictions for a match
// @Tags predictions
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {array} models.Prediction
// @Router /predictions/by-match/{id} [get]
func (h *PredictionHandler) GetByMatch(c *gin.Context) {
	id, ok := parseID(c, "id", "match")
	if !ok {
		return
	}

	predictions, err := h.predictionService.GetByMatch(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, predictions)
}

// requireOwner writes the error response and returns false unless the
// caller owns the participant.
func (h *PredictionHandler) requireOwner(c *gin.Context, participantID uint) bool {
	userID, ok := currentUser(c)
	if !ok {
		return false
	}

	owned, err := h.participantService.OwnedBy(c.Request.Context(), participantID, userID)
	if err != nil {
		respondError(c, err)
		return false
	}
	if !owned {
		respondError(c, apperrors.Forbidden("participant belongs to another user"))
		return false
	}
	return true
}
