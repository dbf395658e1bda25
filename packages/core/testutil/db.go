// Package testutil builds throwaway databases and fixtures for service and
// handler tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	authModels "prode-api/packages/auth/models"
	"prode-api/packages/core/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&authModels.User{},
		&models.Competition{},
		&models.Tournament{},
		&models.Participant{},
		&models.Match{},
		&models.Prediction{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, username string, roles ...string) *authModels.User {
	t.Helper()
	if len(roles) == 0 {
		roles = []string{authModels.RoleUser}
	}
	u := &authModels.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "not-a-real-hash",
		Enabled:  true,
		Roles:    roles,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func CreateCompetition(t *testing.T, db *gorm.DB, name string) *models.Competition {
	t.Helper()
	c := &models.Competition{Name: name, Format: "league"}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("create competition: %v", err)
	}
	return c
}

func CreateTournament(t *testing.T, db *gorm.DB, name string, competitionID, creatorID uint, rules models.Rules) *models.Tournament {
	t.Helper()
	tr := &models.Tournament{
		Name:          name,
		CompetitionID: competitionID,
		CreatorID:     creatorID,
		Status:        models.TournamentActive,
		Rules:         rules,
	}
	if err := db.Create(tr).Error; err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	return tr
}

func CreateParticipant(t *testing.T, db *gorm.DB, user *authModels.User, tournamentID uint) *models.Participant {
	t.Helper()
	p := &models.Participant{Name: user.Username, UserID: user.ID, TournamentID: tournamentID}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create participant: %v", err)
	}
	return p
}

func CreateMatch(t *testing.T, db *gorm.DB, competitionID uint, at time.Time) *models.Match {
	t.Helper()
	m := &models.Match{
		CompetitionID: competitionID,
		ScheduledAt:   at,
		HomeTeam:      "Boca Juniors",
		AwayTeam:      "River Plate",
		Status:        models.MatchNotStarted,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("create match: %v", err)
	}
	return m
}

// FinishMatch stores a final score directly, bypassing the trigger.
func FinishMatch(t *testing.T, db *gorm.DB, m *models.Match, home, away int) {
	t.Helper()
	err := db.Model(m).Updates(map[string]interface{}{
		"home_goals": home,
		"away_goals": away,
		"status":     models.MatchFinished,
	}).Error
	if err != nil {
		t.Fatalf("finish match: %v", err)
	}
}

func CreatePrediction(t *testing.T, db *gorm.DB, participantID, matchID uint, home, away int) *models.Prediction {
	t.Helper()
	p := &models.Prediction{
		ParticipantID: participantID,
		MatchID:       matchID,
		HomeGoals:     home,
		AwayGoals:     away,
		Status:        models.PredictionPending,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create prediction: %v", err)
	}
	return p
}

func ReloadParticipant(t *testing.T, db *gorm.DB, id uint) *models.Participant {
	t.Helper()
	var p models.Participant
	if err := db.First(&p, id).Error; err != nil {
		t.Fatalf("reload participant: %v", err)
	}
	return &p
}

func ReloadPrediction(t *testing.T, db *gorm.DB, id uint) *models.Prediction {
	t.Helper()
	var p models.Prediction
	if err := db.First(&p, id).Error; err != nil {
		t.Fatalf("reload prediction: %v", err)
	}
	return &p
}
