package services

import (
	"context"
	"errors"
	"testing"

	"prode-api/packages/core/apperrors"
	"prode-api/packages/core/models"
	"prode-api/packages/core/testutil"
)

func TestCreateTournament(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewTournamentService(db)
	ctx := context.Background()

	creator := testutil.CreateUser(t, db, "creador")
	comp := testutil.CreateCompetition(t, db, "Liga Profesional")
	password := "clave"

	tr, err := svc.CreateTournament(ctx, creator.ID, models.CreateTournamentRequest{
		Name:          "oficina 2025",
		CompetitionID: comp.ID,
		Password:      &password,
	})
	if err != nil {
		t.Fatalf("CreateTournament: %v", err)
	}
	if tr.Rules != models.RulesDefault || tr.Status != models.TournamentPending {
		t.Fatalf("defaults not applied: %+v", tr)
	}
	if !tr.HasPassword() || *tr.Password == password {
		t.Fatalf("password should be stored hashed")
	}

	cases := []struct {
		name string
		req  models.CreateTournamentRequest
		want error
	}{
		{"duplicate name", models.CreateTournamentRequest{Name: "oficina 2025", CompetitionID: comp.ID}, apperrors.ErrConflict},
		{"short name", models.CreateTournamentRequest{Name: "corto", CompetitionID: comp.ID}, apperrors.ErrValidation},
		{"unknown competition", models.CreateTournamentRequest{Name: "sin copa", CompetitionID: 999}, apperrors.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateTournament(ctx, creator.ID, tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}

	bogus := models.Rules("bogus")
	if _, err := svc.CreateTournament(ctx, creator.ID, models.CreateTournamentRequest{Name: "reglas raras", CompetitionID: comp.ID, Rules: &bogus}); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("unknown rules: want validation error, got %v", err)
	}
	if _, err := svc.CreateTournament(ctx, 999, models.CreateTournamentRequest{Name: "fantasma", CompetitionID: comp.ID}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown creator: want not found, got %v", err)
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewTournamentService(db)

	creator := testutil.CreateUser(t, db, "creador")
	comp := testutil.CreateCompetition(t, db, "Liga Profesional")
	tr := testutil.CreateTournament(t, db, "tabla", comp.ID, creator.ID, models.RulesDefault)

	standings := []struct {
		name          string
		points, exact int
	}{
		{"carla", 4, 0},
		{"beto", 4, 1},
		{"dario", 1, 0},
		{"ana", 4, 0},
	}
	for _, s := range standings {
		u := testutil.CreateUser(t, db, s.name)
		p := testutil.CreateParticipant(t, db, u, tr.ID)
		db.Model(p).Updates(map[string]interface{}{"points": s.points, "exact_predictions": s.exact})
	}

	board, err := svc.Leaderboard(context.Background(), tr.ID)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}

	want := []struct {
		name     string
		position int
	}{{"beto", 1}, {"ana", 2}, {"carla", 2}, {"dario", 4}}
	for i, w := range want {
		e := board.Entries[i]
		if e.Name != w.name || e.Position != w.position {
			t.Errorf("row %d: want %s at %d, got %s at %d", i, w.name, w.position, e.Name, e.Position)
		}
	}

	if _, err := svc.Leaderboard(context.Background(), 999); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown tournament: want not found, got %v", err)
	}
}

func TestUpdateTournamentRulesDoesNotRescore(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	svc := NewTournamentService(db)

	creator := testutil.CreateUser(t, db, "creador")
	comp := testutil.CreateCompetition(t, db, "Liga Profesional")
	tr := testutil.CreateTournament(t, db, "reglas", comp.ID, creator.ID, models.RulesDefault)
	p := testutil.CreateParticipant(t, db, creator, tr.ID)
	db.Model(p).Update("points", 5)

	rules := models.RulesDifference
	updated, err := svc.UpdateTournament(ctx, tr.ID, creator.ID, models.UpdateTournamentRequest{Rules: &rules})
	if err != nil {
		t.Fatalf("UpdateTournament: %v", err)
	}
	if updated.Rules != models.RulesDifference {
		t.Fatalf("rules not updated: %s", updated.Rules)
	}
	if got := testutil.ReloadParticipant(t, db, p.ID); got.Points != 5 {
		t.Fatalf("points must not change with rules, got %d", got.Points)
	}
}
