package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authMiddleware "prode-api/packages/auth/middleware"
	authModels "prode-api/packages/auth/models"
	"prode-api/packages/core/models"
	"prode-api/packages/core/testutil"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

var kickoff = time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC)

type apiFixture struct {
	db     *gorm.DB
	router *gin.Engine
	clock  *clockwork.FakeClock
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	clock := clockwork.NewFakeClockAt(kickoff.Add(-time.Hour))
	m := NewModule(db, Options{Clock: clock, PredictionCutoff: 10 * time.Minute, Season: "2025"})

	r := gin.New()
	m.SetupRoutes(r, authMiddleware.JWTMiddleware(testutil.JWTSecret))
	return &apiFixture{db: db, router: r, clock: clock}
}

func (f *apiFixture) do(t *testing.T, method, path string, userID uint, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("Authorization", "Bearer "+testutil.Token(t, userID))
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestPredictionFlow(t *testing.T) {
	f := newAPI(t)

	admin := testutil.CreateUser(t, f.db, "admin", authModels.RoleUser, authModels.RoleAdmin)
	alice := testutil.CreateUser(t, f.db, "alice")
	bruno := testutil.CreateUser(t, f.db, "bruno")
	comp := testutil.CreateCompetition(t, f.db, "Liga Profesional")
	match := testutil.CreateMatch(t, f.db, comp.ID, kickoff)

	w := f.do(t, http.MethodPost, "/tournaments", alice.ID, gin.H{
		"name":           "los pibes",
		"competition_id": comp.ID,
		"rules":          "partial",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create tournament: %d %s", w.Code, w.Body)
	}
	tournament := decode[models.Tournament](t, w)

	participants := map[uint]models.Participant{}
	for _, u := range []*authModels.User{alice, bruno} {
		w = f.do(t, http.MethodPost, "/participants", u.ID, gin.H{"tournament_id": tournament.ID})
		if w.Code != http.StatusCreated {
			t.Fatalf("enroll %s: %d %s", u.Username, w.Code, w.Body)
		}
		participants[u.ID] = decode[models.Participant](t, w)
	}

	predict := func(user *authModels.User, participantID uint, home, away int) *httptest.ResponseRecorder {
		return f.do(t, http.MethodPost, "/predictions", user.ID, gin.H{
			"participant_id": participantID,
			"match_id":       match.ID,
			"home_goals":     home,
			"away_goals":     away,
		})
	}

	if w = predict(alice, participants[alice.ID].ID, 2, 0); w.Code != http.StatusCreated {
		t.Fatalf("alice predicts: %d %s", w.Code, w.Body)
	}
	if w = predict(bruno, participants[alice.ID].ID, 0, 0); w.Code != http.StatusForbidden {
		t.Fatalf("bruno predicting for alice: want 403, got %d", w.Code)
	}
	if w = predict(alice, participants[alice.ID].ID, 1, 0); w.Code != http.StatusConflict {
		t.Fatalf("duplicate: want 409, got %d", w.Code)
	}

	f.clock.Advance(51 * time.Minute)
	w = predict(bruno, participants[bruno.ID].ID, 1, 0)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("inside cutoff: want 422, got %d %s", w.Code, w.Body)
	}
	if body := decode[map[string]string](t, w); body["kind"] != "cutoff_violation" {
		t.Fatalf("unexpected error body: %v", body)
	}

	w = f.do(t, http.MethodPost, fmt.Sprintf("/matches/%d/score", match.ID), admin.ID, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("scoring unfinished match: want 409, got %d", w.Code)
	}

	if w = f.do(t, http.MethodPatch, fmt.Sprintf("/matches/%d", match.ID), alice.ID, gin.H{"status": "finished"}); w.Code != http.StatusForbidden {
		t.Fatalf("non-admin update: want 403, got %d", w.Code)
	}

	f.clock.Advance(2 * time.Hour)
	w = f.do(t, http.MethodPatch, fmt.Sprintf("/matches/%d", match.ID), admin.ID, gin.H{
		"home_goals": 2,
		"away_goals": 1,
		"status":     "finished",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("finish match: %d %s", w.Code, w.Body)
	}

	w = f.do(t, http.MethodGet, fmt.Sprintf("/tournaments/%d/leaderboard", tournament.ID), 0, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("leaderboard: %d %s", w.Code, w.Body)
	}
	board := decode[models.LeaderboardResponse](t, w)
	if len(board.Entries) != 2 || board.Entries[0].UserID != alice.ID || board.Entries[0].Points != 2 {
		t.Fatalf("unexpected leaderboard: %+v", board)
	}
	if board.Entries[1].Points != 0 || board.Entries[1].Position != 2 {
		t.Fatalf("bruno should trail with 0 points: %+v", board.Entries[1])
	}

	w = f.do(t, http.MethodPost, fmt.Sprintf("/matches/%d/score", match.ID), admin.ID, nil)
	if got := decode[models.ScoreMatchResponse](t, w); w.Code != http.StatusOK || !got.AlreadyScored {
		t.Fatalf("rescoring should be a no-op: %d %+v", w.Code, got)
	}
}

func TestRoutesRequireToken(t *testing.T) {
	f := newAPI(t)
	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/tournaments"},
		{http.MethodPost, "/participants"},
		{http.MethodPost, "/predictions"},
		{http.MethodPost, "/predictions/batch"},
		{http.MethodPost, "/matches/1/score"},
		{http.MethodGet, "/participants/me"},
	} {
		if w := f.do(t, route.method, route.path, 0, nil); w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: want 401, got %d", route.method, route.path, w.Code)
		}
	}
}

func TestTournamentCreatorOnly(t *testing.T) {
	f := newAPI(t)

	owner := testutil.CreateUser(t, f.db, "owner")
	other := testutil.CreateUser(t, f.db, "other")
	comp := testutil.CreateCompetition(t, f.db, "Liga Profesional")
	tr := testutil.CreateTournament(t, f.db, "cerrado", comp.ID, owner.ID, models.RulesDefault)

	path := fmt.Sprintf("/tournaments/%d", tr.ID)
	if w := f.do(t, http.MethodPatch, path, other.ID, gin.H{"rules": "difference"}); w.Code != http.StatusForbidden {
		t.Fatalf("other user update: want 403, got %d", w.Code)
	}
	if w := f.do(t, http.MethodPatch, path, owner.ID, gin.H{}); w.Code != http.StatusBadRequest {
		t.Fatalf("empty update: want 400, got %d", w.Code)
	}
	w := f.do(t, http.MethodPatch, path, owner.ID, gin.H{"rules": "difference"})
	if got := decode[models.Tournament](t, w); w.Code != http.StatusOK || got.Rules != models.RulesDifference {
		t.Fatalf("owner update: %d %+v", w.Code, got)
	}
	if w := f.do(t, http.MethodDelete, path, other.ID, nil); w.Code != http.StatusForbidden {
		t.Fatalf("other user delete: want 403, got %d", w.Code)
	}
	if w := f.do(t, http.MethodDelete, path, owner.ID, nil); w.Code != http.StatusNoContent {
		t.Fatalf("owner delete: want 204, got %d", w.Code)
	}
	if w := f.do(t, http.MethodGet, path, 0, nil); w.Code != http.StatusNotFound {
		t.Fatalf("deleted tournament: want 404, got %d", w.Code)
	}
}
