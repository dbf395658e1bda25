package models

type Stats struct {
	TotalUsers           int64 `json:"total_users"`
	TotalTournaments     int64 `json:"total_tournaments"`
	TotalParticipants    int64 `json:"total_participants"`
	MatchesFinished      int64 `json:"matches_finished"`
	MatchesUpcoming      int64 `json:"matches_upcoming"`
	PredictionsScored    int64 `json:"predictions_scored"`
	PredictionsLast7Days int64 `json:"predictions_last_7_days"`
}
