package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"prode-api/packages/core/apperrors"
	"prode-api/packages/core/models"
	"prode-api/packages/core/testutil"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

var kickoff = time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC)

type scoringFixture struct {
	db          *gorm.DB
	svc         *ScoringService
	competition *models.Competition
	match       *models.Match
}

func newScoringFixture(t *testing.T) *scoringFixture {
	t.Helper()
	db := testutil.NewDB(t)
	clock := clockwork.NewFakeClockAt(kickoff.Add(2 * time.Hour))
	comp := testutil.CreateCompetition(t, db, "Liga Profesional")
	return &scoringFixture{
		db:          db,
		svc:         NewScoringService(db, clock),
		competition: comp,
		match:       testutil.CreateMatch(t, db, comp.ID, kickoff),
	}
}

func (f *scoringFixture) participant(t *testing.T, username string, rules models.Rules) *models.Participant {
	t.Helper()
	user := testutil.CreateUser(t, f.db, username)
	tr := testutil.CreateTournament(t, f.db, "t-"+username, f.competition.ID, user.ID, rules)
	return testutil.CreateParticipant(t, f.db, user, tr.ID)
}

func TestScoreMatch_AwardsPointsPerRules(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	exact := f.participant(t, "exacto", models.RulesDefault)
	outcome := f.participant(t, "ganador", models.RulesDefault)
	partial := f.participant(t, "parcial", models.RulesPartial)
	diff := f.participant(t, "diferencia", models.RulesDifference)
	miss := f.participant(t, "errado", models.RulesDifference)

	pExact := testutil.CreatePrediction(t, f.db, exact.ID, f.match.ID, 2, 1)
	pOutcome := testutil.CreatePrediction(t, f.db, outcome.ID, f.match.ID, 1, 0)
	pPartial := testutil.CreatePrediction(t, f.db, partial.ID, f.match.ID, 2, 0)
	pDiff := testutil.CreatePrediction(t, f.db, diff.ID, f.match.ID, 3, 2)
	pMiss := testutil.CreatePrediction(t, f.db, miss.ID, f.match.ID, 0, 2)

	testutil.FinishMatch(t, f.db, f.match, 2, 1)

	res, err := f.svc.ScoreMatch(ctx, f.match.ID)
	if err != nil {
		t.Fatalf("ScoreMatch: %v", err)
	}
	if res.Processed != 5 || res.Skipped != 0 {
		t.Fatalf("expected 5 processed and 0 skipped, got %+v", res)
	}
	if res.PointsAwarded != 3+1+2+2+0 {
		t.Fatalf("unexpected points awarded: %d", res.PointsAwarded)
	}

	cases := []struct {
		participant *models.Participant
		prediction  *models.Prediction
		points      int
		exact       int
		partial     int
		status      models.PredictionStatus
	}{
		{exact, pExact, 3, 1, 0, models.PredictionCorrect},
		{outcome, pOutcome, 1, 0, 1, models.PredictionCorrect},
		{partial, pPartial, 2, 0, 1, models.PredictionCorrect},
		{diff, pDiff, 2, 0, 1, models.PredictionCorrect},
		{miss, pMiss, 0, 0, 0, models.PredictionIncorrect},
	}
	for _, tc := range cases {
		p := testutil.ReloadParticipant(t, f.db, tc.participant.ID)
		if p.Points != tc.points || p.ExactPredictions != tc.exact || p.PartialPredictions != tc.partial {
			t.Errorf("%s: want points=%d exact=%d partial=%d, got %d/%d/%d",
				p.Name, tc.points, tc.exact, tc.partial, p.Points, p.ExactPredictions, p.PartialPredictions)
		}
		pred := testutil.ReloadPrediction(t, f.db, tc.prediction.ID)
		if pred.Status != tc.status || pred.Points != tc.points || pred.ScoredAt == nil {
			t.Errorf("%s: prediction want %s/%d, got %s/%d scored_at=%v",
				p.Name, tc.status, tc.points, pred.Status, pred.Points, pred.ScoredAt)
		}
	}
}

func TestScoreMatch_SecondCallDoesNotDoubleCount(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	p := f.participant(t, "repetido", models.RulesDefault)
	testutil.CreatePrediction(t, f.db, p.ID, f.match.ID, 1, 1)
	testutil.FinishMatch(t, f.db, f.match, 1, 1)

	if _, err := f.svc.ScoreMatch(ctx, f.match.ID); err != nil {
		t.Fatalf("first ScoreMatch: %v", err)
	}
	res, err := f.svc.ScoreMatch(ctx, f.match.ID)
	if err != nil {
		t.Fatalf("second ScoreMatch: %v", err)
	}
	if !res.AlreadyScored || res.Processed != 0 {
		t.Fatalf("second call should be a no-op, got %+v", res)
	}

	got := testutil.ReloadParticipant(t, f.db, p.ID)
	if got.Points != 3 || got.ExactPredictions != 1 {
		t.Fatalf("points counted twice: %+v", got)
	}
}

func TestScoreMatch_NotFinished(t *testing.T) {
	f := newScoringFixture(t)

	p := f.participant(t, "apurado", models.RulesDefault)
	pred := testutil.CreatePrediction(t, f.db, p.ID, f.match.ID, 1, 0)

	_, err := f.svc.ScoreMatch(context.Background(), f.match.ID)
	if !errors.Is(err, apperrors.ErrNotReady) {
		t.Fatalf("expected not ready, got %v", err)
	}

	if got := testutil.ReloadPrediction(t, f.db, pred.ID); got.Status != models.PredictionPending {
		t.Fatalf("prediction must stay pending, got %s", got.Status)
	}
	if got := testutil.ReloadParticipant(t, f.db, p.ID); got.Points != 0 {
		t.Fatalf("participant must not be touched, got %d points", got.Points)
	}
}

func TestScoreMatch_NotFound(t *testing.T) {
	f := newScoringFixture(t)
	_, err := f.svc.ScoreMatch(context.Background(), 9999)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestScoreMatch_UnknownRulesLeavesPredictionPending(t *testing.T) {
	f := newScoringFixture(t)

	p := f.participant(t, "reglaextra", models.Rules("legacy"))
	pred := testutil.CreatePrediction(t, f.db, p.ID, f.match.ID, 1, 0)
	testutil.FinishMatch(t, f.db, f.match, 2, 0)

	res, err := f.svc.ScoreMatch(context.Background(), f.match.ID)
	if err != nil {
		t.Fatalf("ScoreMatch: %v", err)
	}
	if res.Skipped != 1 || res.Processed != 0 {
		t.Fatalf("expected one skipped prediction, got %+v", res)
	}
	if got := testutil.ReloadPrediction(t, f.db, pred.ID); got.Status != models.PredictionPending {
		t.Fatalf("prediction must stay pending, got %s", got.Status)
	}
	if got := testutil.ReloadParticipant(t, f.db, p.ID); got.Points != 0 {
		t.Fatalf("no points expected, got %d", got.Points)
	}
}

func TestScoreMatch_SkipsPredictionFromOtherCompetition(t *testing.T) {
	f := newScoringFixture(t)

	other := testutil.CreateCompetition(t, f.db, "Copa Libertadores")
	user := testutil.CreateUser(t, f.db, "colado")
	tr := testutil.CreateTournament(t, f.db, "t-colado", other.ID, user.ID, models.RulesDefault)
	p := testutil.CreateParticipant(t, f.db, user, tr.ID)
	pred := testutil.CreatePrediction(t, f.db, p.ID, f.match.ID, 2, 1)
	testutil.FinishMatch(t, f.db, f.match, 2, 1)

	res, err := f.svc.ScoreMatch(context.Background(), f.match.ID)
	if err != nil {
		t.Fatalf("ScoreMatch: %v", err)
	}
	if res.Skipped != 1 {
		t.Fatalf("expected mismatch to be skipped, got %+v", res)
	}
	if got := testutil.ReloadPrediction(t, f.db, pred.ID); got.Status != models.PredictionPending {
		t.Fatalf("prediction must stay pending, got %s", got.Status)
	}
}

func TestScoreMatch_FailedWriteIsResumable(t *testing.T) {
	f := newScoringFixture(t)
	ctx := context.Background()

	first := f.participant(t, "primero", models.RulesDefault)
	second := f.participant(t, "segundo", models.RulesDefault)
	testutil.CreatePrediction(t, f.db, first.ID, f.match.ID, 2, 1)
	pSecond := testutil.CreatePrediction(t, f.db, second.ID, f.match.ID, 1, 0)
	testutil.FinishMatch(t, f.db, f.match, 2, 1)

	// Fail the second participant increment of the run.
	armed, updates := true, 0
	err := f.db.Callback().Update().Before("gorm:update").Register("test:fail_participant", func(tx *gorm.DB) {
		if !armed || tx.Statement.Table != "participants" {
			return
		}
		updates++
		if updates == 2 {
			_ = tx.AddError(errors.New("disk full"))
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	if _, err := f.svc.ScoreMatch(ctx, f.match.ID); err == nil {
		t.Fatalf("expected the failed write to surface")
	}

	if got := testutil.ReloadParticipant(t, f.db, first.ID); got.Points != 3 {
		t.Fatalf("first participant should keep its points, got %d", got.Points)
	}
	if got := testutil.ReloadPrediction(t, f.db, pSecond.ID); got.Status != models.PredictionPending {
		t.Fatalf("failed prediction must roll back to pending, got %s", got.Status)
	}
	var match models.Match
	f.db.First(&match, f.match.ID)
	if match.ScoredAt != nil {
		t.Fatalf("match must not be marked scored after a failure")
	}

	armed = false
	res, err := f.svc.ScoreMatch(ctx, f.match.ID)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if res.Processed != 1 {
		t.Fatalf("retry should only score the remaining prediction, got %+v", res)
	}
	if got := testutil.ReloadParticipant(t, f.db, first.ID); got.Points != 3 {
		t.Fatalf("first participant scored twice: %d", got.Points)
	}
	if got := testutil.ReloadParticipant(t, f.db, second.ID); got.Points != 1 {
		t.Fatalf("second participant: want 1 point, got %d", got.Points)
	}
}
