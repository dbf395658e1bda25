package fixtures

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	authModels "prode-api/packages/auth/models"
	authUtils "prode-api/packages/auth/utils"
	"prode-api/packages/core/models"
	"prode-api/packages/core/services"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

const fixturePassword = "password123"

var teams = []string{
	"River Plate", "Boca Juniors", "Racing Club", "Independiente",
	"San Lorenzo", "Huracan", "Velez Sarsfield", "Estudiantes",
	"Gimnasia", "Rosario Central", "Newells Old Boys", "Talleres",
	"Belgrano", "Lanus", "Banfield", "Argentinos Juniors",
}

type Fixtures struct {
	db    *gorm.DB
	clock clockwork.Clock
	rng   *rand.Rand
}

func NewFixtures(db *gorm.DB, clock clockwork.Clock, seed int64) *Fixtures {
	return &Fixtures{
		db:    db,
		clock: clock,
		rng:   rand.New(rand.NewSource(seed)), // #nosec G404
	}
}

// Summary counts what GenerateTestData created.
type Summary struct {
	Users        int
	Matches      int
	Finished     int
	Tournaments  int
	Participants int
	Predictions  int
}

// GenerateTestData creates users, one competition with a mix of played and
// upcoming matches, a tournament per rule set and predictions for every
// participant. Played matches are finished through MatchService so the
// scoring engine fills the leaderboards.
func (f *Fixtures) GenerateTestData(ctx context.Context) (*Summary, error) {
	log.Println("Starting fixtures generation...")
	summary := &Summary{}

	users, err := f.generateUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to generate users: %w", err)
	}
	summary.Users = len(users)

	competition, err := services.NewCompetitionService(f.db).CreateCompetition(ctx, models.CreateCompetitionRequest{
		Name:   "Liga Profesional 2025",
		Format: "league",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}

	played, upcoming, err := f.generateMatches(competition.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate matches: %w", err)
	}
	summary.Matches = len(played) + len(upcoming)

	participants, tournaments, err := f.generateTournaments(ctx, competition.ID, users)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tournaments: %w", err)
	}
	summary.Tournaments = tournaments
	summary.Participants = len(participants)

	results := make(map[uint][2]int, len(played))
	for _, m := range played {
		results[m.ID] = [2]int{f.rng.Intn(4), f.rng.Intn(3)} // #nosec G404
	}

	all := append(append([]models.Match{}, played...), upcoming...)
	created, err := f.generatePredictions(ctx, participants, all, results)
	if err != nil {
		return nil, fmt.Errorf("failed to generate predictions: %w", err)
	}
	summary.Predictions = created

	finished, err := f.finishMatches(ctx, played, results)
	if err != nil {
		return nil, fmt.Errorf("failed to finish matches: %w", err)
	}
	summary.Finished = finished

	log.Printf("Created %d users, %d matches (%d finished), %d tournaments, %d participants, %d predictions",
		summary.Users, summary.Matches, summary.Finished, summary.Tournaments, summary.Participants, summary.Predictions)
	return summary, nil
}

func (f *Fixtures) generateUsers() ([]authModels.User, error) {
	usernames := []string{
		"martina", "santiago", "valentina", "mateo", "camila",
		"benjamin", "lucia", "joaquin", "sofia", "tomas",
	}

	hashed, err := authUtils.HashPassword(fixturePassword)
	if err != nil {
		return nil, err
	}

	admin := authModels.User{
		Email:    "admin@prode.local",
		Username: "admin",
		Password: hashed,
		Enabled:  true,
		Roles:    authModels.Roles{authModels.RoleUser, authModels.RoleAdmin},
	}
	if err := f.db.Create(&admin).Error; err != nil {
		return nil, err
	}

	users := make([]authModels.User, 0, len(usernames))
	for _, username := range usernames {
		user := authModels.User{
			Email:    fmt.Sprintf("%s@prode.local", username),
			Username: username,
			Password: hashed,
			Enabled:  true,
			Roles:    authModels.Roles{authModels.RoleUser},
		}
		if err := f.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	log.Printf("Created %d users and 1 admin (password %q)", len(users), fixturePassword)
	return users, nil
}

// generateMatches pairs the teams into rounds: the first rounds are already
// played, the rest are still ahead.
func (f *Fixtures) generateMatches(competitionID uint) (played, upcoming []models.Match, err error) {
	const rounds = 4
	now := f.clock.Now()

	for round := 1; round <= rounds; round++ {
		order := f.rng.Perm(len(teams)) // #nosec G404
		kickoff := now.AddDate(0, 0, (round-3)*7).Truncate(time.Hour)
		r := round

		for i := 0; i+1 < len(order); i += 2 {
			match := models.Match{
				CompetitionID: competitionID,
				ScheduledAt:   kickoff.Add(time.Duration(i) * time.Hour),
				Round:         &r,
				Venue:         "Estadio " + teams[order[i]],
				HomeTeam:      teams[order[i]],
				AwayTeam:      teams[order[i+1]],
				Status:        models.MatchNotStarted,
			}
			if err := f.db.Create(&match).Error; err != nil {
				return nil, nil, err
			}
			if match.ScheduledAt.Before(now) {
				played = append(played, match)
			} else {
				upcoming = append(upcoming, match)
			}
		}
	}

	return played, upcoming, nil
}

func (f *Fixtures) generateTournaments(ctx context.Context, competitionID uint, users []authModels.User) ([]models.Participant, int, error) {
	tournamentService := services.NewTournamentService(f.db)
	participantService := services.NewParticipantService(f.db)

	secret := "futbol"
	plans := []struct {
		name     string
		rules    models.Rules
		password *string
	}{
		{"Prode de la Oficina", models.RulesDefault, nil},
		{"Amigos del Barrio", models.RulesPartial, nil},
		{"Liga de Expertos", models.RulesDifference, &secret},
	}

	var participants []models.Participant
	active := models.TournamentActive
	for i, plan := range plans {
		rules := plan.rules
		creator := users[i%len(users)]
		tournament, err := tournamentService.CreateTournament(ctx, creator.ID, models.CreateTournamentRequest{
			Name:          plan.name,
			CompetitionID: competitionID,
			Password:      plan.password,
			Status:        &active,
			Rules:         &rules,
		})
		if err != nil {
			return nil, 0, err
		}

		for _, user := range users {
			// Roughly three out of four users join each tournament.
			if user.ID != creator.ID && f.rng.Intn(4) == 0 { // #nosec G404
				continue
			}
			p, err := participantService.Enroll(ctx, user.ID, models.EnrollRequest{
				TournamentID: tournament.ID,
				Password:     plan.password,
			})
			if err != nil {
				return nil, 0, err
			}
			participants = append(participants, *p)
		}
	}

	return participants, len(plans), nil
}

// generatePredictions submits a guess for every match, using a clock set well
// before the first kickoff so the cutoff never rejects them.
func (f *Fixtures) generatePredictions(ctx context.Context, participants []models.Participant, matches []models.Match, results map[uint][2]int) (int, error) {
	earliest := f.clock.Now()
	for _, m := range matches {
		if m.ScheduledAt.Before(earliest) {
			earliest = m.ScheduledAt
		}
	}
	past := clockwork.NewFakeClockAt(earliest.Add(-24 * time.Hour))
	predictionService := services.NewPredictionService(f.db, past, services.DefaultPredictionCutoff)

	created := 0
	for _, p := range participants {
		items := make([]models.BatchPredictionItem, 0, len(matches))
		for _, m := range matches {
			home, away := f.rng.Intn(4), f.rng.Intn(3) // #nosec G404
			if result, ok := results[m.ID]; ok && f.rng.Intn(4) == 0 { // #nosec G404
				home, away = result[0], result[1]
			}
			items = append(items, models.BatchPredictionItem{MatchID: m.ID, HomeGoals: &home, AwayGoals: &away})
		}

		outcome, err := predictionService.SubmitBatch(ctx, p.ID, items)
		if err != nil {
			return created, err
		}
		for _, r := range outcome {
			if r.Action == "failed" {
				return created, fmt.Errorf("prediction for match %d: %s", r.MatchID, r.Error)
			}
			created++
		}
	}

	return created, nil
}

func (f *Fixtures) finishMatches(ctx context.Context, played []models.Match, results map[uint][2]int) (int, error) {
	scoring := services.NewScoringService(f.db, f.clock)
	matchService := services.NewMatchService(f.db, scoring)

	finished := models.MatchFinished
	for _, m := range played {
		result := results[m.ID]
		home, away := result[0], result[1]
		if _, err := matchService.UpdateMatch(ctx, m.ID, models.UpdateMatchRequest{
			HomeGoals: &home,
			AwayGoals: &away,
			Status:    &finished,
		}); err != nil {
			return 0, err
		}
	}

	var unscored int64
	if err := f.db.Model(&models.Match{}).
		Where("status = ? AND scored_at IS NULL", models.MatchFinished).
		Count(&unscored).Error; err != nil {
		return 0, err
	}
	if unscored > 0 {
		return 0, fmt.Errorf("%d finished matches were left unscored", unscored)
	}

	return len(played), nil
}

// ClearAllData removes every fixture row, children first.
func (f *Fixtures) ClearAllData() error {
	log.Println("Clearing all fixture data...")

	tables := []interface{}{
		&models.Prediction{},
		&models.Participant{},
		&models.Tournament{},
		&models.Match{},
		&models.Competition{},
		&authModels.User{},
	}

	for _, table := range tables {
		if err := f.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear table %T: %w", table, err)
		}
	}

	if f.db.Dialector.Name() == "postgres" {
		for _, seq := range []string{
			"users_id_seq", "competitions_id_seq", "tournaments_id_seq",
			"participants_id_seq", "matches_id_seq", "predictions_id_seq",
		} {
			if err := f.db.Exec("ALTER SEQUENCE " + seq + " RESTART WITH 1").Error; err != nil {
				log.Printf("reset %s: %v", seq, err)
			}
		}
	}

	log.Println("All fixture data cleared!")
	return nil
}
