package core

import (
	"log"
	"time"

	authMiddleware "prode-api/packages/auth/middleware"
	authModels "prode-api/packages/auth/models"
	"prode-api/packages/core/cron"
	"prode-api/packages/core/handlers"
	"prode-api/packages/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// Options carries the settings the core services need.
type Options struct {
	Clock            clockwork.Clock
	PredictionCutoff time.Duration
	Feed             services.EventSource
	Season           string
	Location         *time.Location
	SyncSchedule     string
}

type Module struct {
	CompetitionHandler *handlers.CompetitionHandler
	CompetitionService *services.CompetitionService
	TournamentHandler  *handlers.TournamentHandler
	TournamentService  *services.TournamentService
	ParticipantHandler *handlers.ParticipantHandler
	ParticipantService *services.ParticipantService
	MatchHandler       *handlers.MatchHandler
	MatchService       *services.MatchService
	PredictionHandler  *handlers.PredictionHandler
	PredictionService  *services.PredictionService
	ScoringService     *services.ScoringService
	SyncService        *services.SyncService
	StatsHandler       *handlers.StatsHandler
	StatsService       *services.StatsService
	Scheduler          *cron.Scheduler
	db                 *gorm.DB
}

func NewModule(db *gorm.DB, opts Options) *Module {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}

	competitionService := services.NewCompetitionService(db)
	tournamentService := services.NewTournamentService(db)
	participantService := services.NewParticipantService(db)
	scoringService := services.NewScoringService(db, opts.Clock)
	matchService := services.NewMatchService(db, scoringService)
	predictionService := services.NewPredictionService(db, opts.Clock, opts.PredictionCutoff)
	syncService := services.NewSyncService(db, opts.Feed, matchService, opts.Season, opts.Location)
	statsService := services.NewStatsService(db, opts.Clock)

	return &Module{
		CompetitionHandler: handlers.NewCompetitionHandler(competitionService),
		CompetitionService: competitionService,
		TournamentHandler:  handlers.NewTournamentHandler(tournamentService),
		TournamentService:  tournamentService,
		ParticipantHandler: handlers.NewParticipantHandler(participantService),
		ParticipantService: participantService,
		MatchHandler:       handlers.NewMatchHandler(matchService, scoringService, syncService),
		MatchService:       matchService,
		PredictionHandler:  handlers.NewPredictionHandler(predictionService, participantService),
		PredictionService:  predictionService,
		ScoringService:     scoringService,
		SyncService:        syncService,
		StatsHandler:       handlers.NewStatsHandler(statsService),
		StatsService:       statsService,
		Scheduler:          cron.NewScheduler(syncService, opts.SyncSchedule),
		db:                 db,
	}
}

// SetupRoutes registers the core API. authenticate must verify the bearer
// token and store the caller in the context.
func (m *Module) SetupRoutes(r *gin.Engine, authenticate gin.HandlerFunc) {
	admin := authMiddleware.RequireRole(m.db, authModels.RoleAdmin)

	competitions := r.Group("/competitions")
	{
		competitions.GET("", m.CompetitionHandler.GetAllCompetitions)
		competitions.GET("/:id", m.CompetitionHandler.GetCompetition)
		competitions.POST("", authenticate, admin, m.CompetitionHandler.CreateCompetition)
		competitions.PATCH("/:id", authenticate, admin, m.CompetitionHandler.UpdateCompetition)
		competitions.DELETE("/:id", authenticate, admin, m.CompetitionHandler.DeleteCompetition)
	}

	tournaments := r.Group("/tournaments")
	{
		tournaments.GET("", m.TournamentHandler.GetAllTournaments)
		tournaments.GET("/:id", m.TournamentHandler.GetTournament)
		tournaments.GET("/:id/leaderboard", m.TournamentHandler.GetLeaderboard)
		tournaments.POST("", authenticate, m.TournamentHandler.CreateTournament)
		tournaments.PATCH("/:id", authenticate, m.TournamentHandler.UpdateTournament)
		tournaments.DELETE("/:id", authenticate, m.TournamentHandler.DeleteTournament)
	}

	participants := r.Group("/participants")
	{
		participants.GET("", m.ParticipantHandler.GetAllParticipants)
		participants.GET("/me", authenticate, m.ParticipantHandler.GetMine)
		participants.GET("/:id", m.ParticipantHandler.GetParticipant)
		participants.POST("", authenticate, m.ParticipantHandler.Enroll)
		participants.DELETE("/:id/tournaments/:tournamentId", authenticate, m.ParticipantHandler.Leave)
	}

	matches := r.Group("/matches")
	{
		matches.GET("", m.MatchHandler.GetMatches)
		matches.GET("/:id", m.MatchHandler.GetMatch)
		matches.POST("", authenticate, admin, m.MatchHandler.CreateMatch)
		matches.POST("/sync", authenticate, admin, m.MatchHandler.SyncMatches)
		matches.PATCH("/:id", authenticate, admin, m.MatchHandler.UpdateMatch)
		matches.POST("/:id/score", authenticate, admin, m.MatchHandler.ScoreMatch)
		matches.DELETE("/:id", authenticate, admin, m.MatchHandler.DeleteMatch)
	}

	predictions := r.Group("/predictions")
	{
		predictions.GET("/:id", m.PredictionHandler.GetPrediction)
		predictions.GET("/by-participant/:id", m.PredictionHandler.GetByParticipant)
		predictions.GET("/by-match/:id", m.PredictionHandler.GetByMatch)
		predictions.POST("", authenticate, m.PredictionHandler.CreatePrediction)
		predictions.POST("/batch", authenticate, m.PredictionHandler.SubmitBatch)
		predictions.PATCH("/:id", authenticate, m.PredictionHandler.UpdatePrediction)
	}

	r.GET("/stats", m.StatsHandler.GetStats)
}

// StartScheduler starts the match sync schedule
func (m *Module) StartScheduler() error {
	log.Println("Starting core module scheduler...")
	return m.Scheduler.Start()
}

// StopScheduler stops the match sync schedule
func (m *Module) StopScheduler() {
	log.Println("Stopping core module scheduler...")
	m.Scheduler.Stop()
}
