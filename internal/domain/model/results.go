package model

import "time"

// Prediction is the win-probability estimate for a single fixture.
// Probabilities are percentages rounded to two decimals; after rounding the
// two values may not sum to exactly 100.
type Prediction struct {
	Team1            string  `json:"team1"`
	Team2            string  `json:"team2"`
	Team1Probability float64 `json:"team1_probability"`
	Team2Probability float64 `json:"team2_probability"`
	PredictedWinner  string  `json:"predicted_winner"`
	Confidence       float64 `json:"confidence"`
	BasedOnMatches   int     `json:"based_on_matches"`
}

// TrainResult summarizes one completed training cycle.
type TrainResult struct {
	Success        bool      `json:"success"`
	MatchesTrained int       `json:"matches_trained"`
	TeamsAnalyzed  int       `json:"teams_analyzed"`
	VenuesAnalyzed int       `json:"venues_analyzed"`
	Accuracy       float64   `json:"accuracy"`
	TrainedAt      time.Time `json:"trained_at"`
}

// VenueRecord is one entry in a team's best-venues ranking. WinRate is the
// team's wins at the venue over the venue's overall match count, as a
// percentage.
type VenueRecord struct {
	Venue   string  `json:"venue"`
	WinRate float64 `json:"win_rate"`
	Wins    int     `json:"wins"`
}

// Recent-form classifications.
const (
	FormExcellent    = "Excellent"
	FormGood         = "Good"
	FormPoor         = "Poor"
	FormInsufficient = "Insufficient data"
)

// TeamInsight is the per-team report: season summary, best venues and recent
// form. Rates are percentages rounded to two decimals.
type TeamInsight struct {
	Team          string        `json:"team"`
	MatchesPlayed int           `json:"matches_played"`
	Wins          int           `json:"wins"`
	WinRate       float64       `json:"win_rate"`
	AvgScore      float64       `json:"avg_score"`
	BestVenues    []VenueRecord `json:"best_venues"`
	Form          string        `json:"form"`
}
