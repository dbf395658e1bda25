package services

import (
	"context"
	"errors"
	"testing"

	"prode-api/packages/core/apperrors"
	"prode-api/packages/core/models"
	"prode-api/packages/core/testutil"
)

func TestUpdateMatchNotifiesOnlyOnFinishTransition(t *testing.T) {
	db := testutil.NewDB(t)
	listener := &countingListener{calls: map[uint]int{}}
	svc := NewMatchService(db, listener)
	ctx := context.Background()

	comp := testutil.CreateCompetition(t, db, "Liga Profesional")
	m := testutil.CreateMatch(t, db, comp.ID, kickoff)

	live := models.MatchPending
	if _, err := svc.UpdateMatch(ctx, m.ID, models.UpdateMatchRequest{Status: &live}); err != nil {
		t.Fatalf("UpdateMatch live: %v", err)
	}
	if listener.calls[m.ID] != 0 {
		t.Fatalf("in-progress match must not trigger scoring")
	}

	finished := models.MatchFinished
	home, away := 2, 1
	got, err := svc.UpdateMatch(ctx, m.ID, models.UpdateMatchRequest{HomeGoals: &home, AwayGoals: &away, Status: &finished})
	if err != nil {
		t.Fatalf("UpdateMatch finish: %v", err)
	}
	if got.HomeGoals != 2 || got.AwayGoals != 1 || !got.IsFinished() {
		t.Fatalf("unexpected match: %+v", got)
	}

	// Correcting the score of a finished match is not a new transition.
	home = 3
	if _, err := svc.UpdateMatch(ctx, m.ID, models.UpdateMatchRequest{HomeGoals: &home, Status: &finished}); err != nil {
		t.Fatalf("UpdateMatch correction: %v", err)
	}
	if listener.calls[m.ID] != 1 {
		t.Fatalf("want exactly one notification, got %d", listener.calls[m.ID])
	}
}

func TestUpdateMatchValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewMatchService(db, nil)
	ctx := context.Background()

	comp := testutil.CreateCompetition(t, db, "Liga Profesional")
	m := testutil.CreateMatch(t, db, comp.ID, kickoff)

	negative := -1
	bogus := models.MatchStatus("halftime")
	cases := []struct {
		name string
		id   uint
		req  models.UpdateMatchRequest
		want error
	}{
		{"no fields", m.ID, models.UpdateMatchRequest{}, apperrors.ErrValidation},
		{"negative goals", m.ID, models.UpdateMatchRequest{HomeGoals: &negative}, apperrors.ErrValidation},
		{"unknown status", m.ID, models.UpdateMatchRequest{Status: &bogus}, apperrors.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.UpdateMatch(ctx, tc.id, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}

	team := "Racing Club"
	if _, err := svc.UpdateMatch(ctx, 999, models.UpdateMatchRequest{HomeTeam: &team}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown match: want not found, got %v", err)
	}
}

func TestCreateMatchRequiresCompetition(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewMatchService(db, nil)

	_, err := svc.CreateMatch(context.Background(), models.CreateMatchRequest{
		CompetitionID: 42,
		ScheduledAt:   kickoff,
		HomeTeam:      "Boca Juniors",
		AwayTeam:      "River Plate",
	})
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}
