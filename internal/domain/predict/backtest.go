package predict

import (
	"github.com/pitchside/oracle/internal/domain/model"
	"github.com/pitchside/oracle/internal/domain/stats"
)

// BaselineAccuracy is reported for histories too small to score. It is a
// placeholder, not a measured figure.
const BaselineAccuracy = 65

// minBacktestMatches is the smallest history Accuracy will actually score.
const minBacktestMatches = 10

// Accuracy re-scores the given history against the supplied snapshot and
// returns the percentage of matches whose winner the engine predicts
// correctly, rounded to two decimals.
//
// This is an in-sample metric: the snapshot was trained on the same records
// being scored, so the number demonstrates the aggregates' internal fit and
// says nothing about generalization to unseen fixtures.
func Accuracy(snap *stats.Snapshot, history []model.Match) float64 {
	if len(history) < minBacktestMatches {
		return BaselineAccuracy
	}

	correct := 0
	for i := range history {
		m := &history[i]
		p := Predict(snap, m.Team1, m.Team2, "")
		if p.PredictedWinner == m.WinnerTeam() {
			correct++
		}
	}
	return round2(float64(correct) / float64(len(history)) * 100)
}
