package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PredictionsScored = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "prode_predictions_scored_total", Help: "Predictions scored, by tournament rules and resulting status"},
		[]string{"rules", "status"},
	)
	PointsAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "prode_points_awarded_total", Help: "Points added to participants, by tournament rules"},
		[]string{"rules"},
	)
	ScoreMatchRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "prode_score_match_total", Help: "Score match invocations by result"},
		[]string{"result"},
	)
	SyncedMatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "prode_sync_matches_total", Help: "Matches processed by the feed sync, by result"},
		[]string{"result"},
	)
)

func Register() {
	prometheus.MustRegister(PredictionsScored, PointsAwarded, ScoreMatchRuns, SyncedMatches)
}
