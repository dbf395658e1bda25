package utils

import "prode-api/packages/core/models"

const (
	ExactScorePoints = 3 // predicted scoreline equals the final one
	OutcomePoints    = 1 // predicted winner (or draw) is right
	BonusPoints      = 1 // rule-specific extra on top of the outcome
)

type Outcome string

const (
	OutcomeHome Outcome = "home"
	OutcomeAway Outcome = "away"
	OutcomeDraw Outcome = "draw"
)

// Scoreline is a home/away goal pair, predicted or final.
type Scoreline struct {
	Home int
	Away int
}

func (s Scoreline) Outcome() Outcome {
	switch {
	case s.Home > s.Away:
		return OutcomeHome
	case s.Home < s.Away:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}

// Difference is the signed goal difference, home minus away.
func (s Scoreline) Difference() int {
	return s.Home - s.Away
}

// RuleFunc scores a non-exact prediction. Exact scorelines never reach it.
type RuleFunc func(predicted, actual Scoreline) int

var ruleTable = map[models.Rules]RuleFunc{
	models.RulesDefault: func(predicted, actual Scoreline) int {
		if predicted.Outcome() != actual.Outcome() {
			return 0
		}
		return OutcomePoints
	},
	models.RulesPartial: func(predicted, actual Scoreline) int {
		if predicted.Outcome() != actual.Outcome() {
			return 0
		}
		if predicted.Home == actual.Home || predicted.Away == actual.Away {
			return OutcomePoints + BonusPoints
		}
		return OutcomePoints
	},
	models.RulesDifference: func(predicted, actual Scoreline) int {
		if predicted.Outcome() != actual.Outcome() {
			return 0
		}
		if predicted.Difference() == actual.Difference() {
			return OutcomePoints + BonusPoints
		}
		return OutcomePoints
	},
}

// ScoreResult is what a single prediction earns.
type ScoreResult struct {
	Points int
	Status models.PredictionStatus
	Exact  bool
	// Scored is false when the rule is unknown; the prediction is left
	// pending and nothing is awarded.
	Scored bool
}

// ScorePrediction returns the points and status for a prediction under the
// given tournament rules.
func ScorePrediction(rules models.Rules, predicted, actual Scoreline) ScoreResult {
	if predicted == actual {
		return ScoreResult{
			Points: ExactScorePoints,
			Status: models.PredictionCorrect,
			Exact:  true,
			Scored: true,
		}
	}

	rule, ok := ruleTable[rules]
	if !ok {
		return ScoreResult{Status: models.PredictionPending}
	}

	points := rule(predicted, actual)
	status := models.PredictionIncorrect
	if points > 0 {
		status = models.PredictionCorrect
	}
	return ScoreResult{Points: points, Status: status, Scored: true}
}
