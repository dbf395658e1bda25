package utils

import (
	"testing"

	"prode-api/packages/core/models"
)

func TestScorelineOutcome(t *testing.T) {
	cases := []struct {
		s    Scoreline
		want Outcome
	}{
		{Scoreline{2, 1}, OutcomeHome},
		{Scoreline{0, 3}, OutcomeAway},
		{Scoreline{1, 1}, OutcomeDraw},
		{Scoreline{0, 0}, OutcomeDraw},
	}
	for _, tc := range cases {
		if got := tc.s.Outcome(); got != tc.want {
			t.Fatalf("%+v: want %s, got %s", tc.s, tc.want, got)
		}
	}
}

func TestScorePrediction(t *testing.T) {
	cases := []struct {
		name       string
		rules      models.Rules
		predicted  Scoreline
		actual     Scoreline
		wantPoints int
		wantStatus models.PredictionStatus
		wantExact  bool
	}{
		{"default exact", models.RulesDefault, Scoreline{2, 1}, Scoreline{2, 1}, 3, models.PredictionCorrect, true},
		{"default outcome", models.RulesDefault, Scoreline{1, 0}, Scoreline{2, 1}, 1, models.PredictionCorrect, false},
		{"default miss", models.RulesDefault, Scoreline{0, 1}, Scoreline{2, 1}, 0, models.PredictionIncorrect, false},
		{"default draw outcome", models.RulesDefault, Scoreline{0, 0}, Scoreline{2, 2}, 1, models.PredictionCorrect, false},
		{"default one goal equal is not enough", models.RulesDefault, Scoreline{3, 0}, Scoreline{2, 0}, 1, models.PredictionCorrect, false},

		{"partial exact", models.RulesPartial, Scoreline{2, 0}, Scoreline{2, 0}, 3, models.PredictionCorrect, true},
		{"partial away goals equal", models.RulesPartial, Scoreline{3, 0}, Scoreline{2, 0}, 2, models.PredictionCorrect, false},
		{"partial home goals equal", models.RulesPartial, Scoreline{2, 1}, Scoreline{2, 0}, 2, models.PredictionCorrect, false},
		{"partial outcome only", models.RulesPartial, Scoreline{3, 1}, Scoreline{2, 0}, 1, models.PredictionCorrect, false},
		{"partial goal equal but wrong outcome", models.RulesPartial, Scoreline{2, 2}, Scoreline{2, 0}, 0, models.PredictionIncorrect, false},

		{"difference exact", models.RulesDifference, Scoreline{1, 0}, Scoreline{1, 0}, 3, models.PredictionCorrect, true},
		{"difference equal diff", models.RulesDifference, Scoreline{2, 1}, Scoreline{1, 0}, 2, models.PredictionCorrect, false},
		{"difference draw diff", models.RulesDifference, Scoreline{1, 1}, Scoreline{2, 2}, 2, models.PredictionCorrect, false},
		{"difference outcome only", models.RulesDifference, Scoreline{3, 0}, Scoreline{1, 0}, 1, models.PredictionCorrect, false},
		{"difference miss", models.RulesDifference, Scoreline{0, 1}, Scoreline{1, 0}, 0, models.PredictionIncorrect, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ScorePrediction(tc.rules, tc.predicted, tc.actual)
			if !got.Scored {
				t.Fatalf("expected prediction to be scored")
			}
			if got.Points != tc.wantPoints {
				t.Fatalf("points: want %d, got %d", tc.wantPoints, got.Points)
			}
			if got.Status != tc.wantStatus {
				t.Fatalf("status: want %s, got %s", tc.wantStatus, got.Status)
			}
			if got.Exact != tc.wantExact {
				t.Fatalf("exact: want %v, got %v", tc.wantExact, got.Exact)
			}
		})
	}
}

func TestScorePrediction_UnknownRulesIsNoop(t *testing.T) {
	got := ScorePrediction(models.Rules("bogus"), Scoreline{1, 0}, Scoreline{2, 0})
	if got.Scored || got.Points != 0 || got.Status != models.PredictionPending {
		t.Fatalf("unknown rules must not score, got %+v", got)
	}
}

func TestScorePrediction_ExactIgnoresRules(t *testing.T) {
	got := ScorePrediction(models.Rules("bogus"), Scoreline{1, 1}, Scoreline{1, 1})
	if !got.Exact || got.Points != ExactScorePoints {
		t.Fatalf("exact scoreline must score %d under any rules, got %+v", ExactScorePoints, got)
	}
}

func TestScorePrediction_NeverExceedsExact(t *testing.T) {
	rules := []models.Rules{models.RulesDefault, models.RulesPartial, models.RulesDifference}
	for _, r := range rules {
		for ph := 0; ph <= 4; ph++ {
			for pa := 0; pa <= 4; pa++ {
				for ah := 0; ah <= 4; ah++ {
					for aa := 0; aa <= 4; aa++ {
						p, a := Scoreline{ph, pa}, Scoreline{ah, aa}
						got := ScorePrediction(r, p, a)
						if got.Points > ExactScorePoints || got.Points < 0 {
							t.Fatalf("%s %v vs %v: points out of range: %d", r, p, a, got.Points)
						}
						if got.Points == ExactScorePoints && p != a {
							t.Fatalf("%s %v vs %v: only exact scorelines may score %d", r, p, a, ExactScorePoints)
						}
						if p.Outcome() != a.Outcome() && got.Points != 0 {
							t.Fatalf("%s %v vs %v: wrong outcome must score 0, got %d", r, p, a, got.Points)
						}
					}
				}
			}
		}
	}
}
