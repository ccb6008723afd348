// Package predict computes win probabilities from the current aggregates.
//
// The engine is a stateless reader of a stats.Snapshot; it is safe to call
// concurrently with training, which publishes a new snapshot atomically.
package predict

import (
	"math"

	"github.com/pitchside/oracle/internal/domain/model"
	"github.com/pitchside/oracle/internal/domain/stats"
)

const (
	probabilityScale = 100
	venueBonusScale  = 10
)

// Predict estimates the outcome of team1 vs team2, optionally at a venue.
// Pass venue == "" when the fixture venue is unknown.
//
// The venue adjustment is asymmetric: only team1 receives a bonus for wins at
// the venue, even when team2 also has history there. Swapping the fixture
// order can change the outcome; the package tests pin this down.
//
// Winner selection, including the tie-break to team2, compares the reported
// two-decimal probabilities rather than the raw normalized scores, so a raw
// gap under 0.005 counts as a tie.
func Predict(snap *stats.Snapshot, team1, team2, venue string) model.Prediction {
	t1 := snap.Team(team1)
	t2 := snap.Team(team2)

	t1Score := t1.WinRate * probabilityScale
	t2Score := t2.WinRate * probabilityScale

	if venue != "" {
		if vs, ok := snap.Venue(venue); ok {
			if wins, ok := vs.Teams[team1]; ok && vs.Matches > 0 {
				t1Score += float64(wins) / float64(vs.Matches) * venueBonusScale
			}
		}
	}

	var t1Prob, t2Prob float64
	if total := t1Score + t2Score; total > 0 {
		t1Prob = t1Score / total * probabilityScale
		t2Prob = t2Score / total * probabilityScale
	} else {
		t1Prob, t2Prob = 50, 50
	}
	t1Prob = round2(t1Prob)
	t2Prob = round2(t2Prob)

	// Ties resolve to team2.
	winner := team2
	if t1Prob > t2Prob {
		winner = team1
	}

	return model.Prediction{
		Team1:            team1,
		Team2:            team2,
		Team1Probability: t1Prob,
		Team2Probability: t2Prob,
		PredictedWinner:  winner,
		Confidence:       round2(math.Abs(t1Prob - t2Prob)),
		BasedOnMatches:   t1.MatchesPlayed + t2.MatchesPlayed,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
