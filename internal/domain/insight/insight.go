// Package insight produces per-team reports from the trained aggregates and
// the raw match history: summary numbers, a best-venues ranking, and a coarse
// recent-form classification.
package insight

import (
	"math"
	"sort"

	"github.com/pitchside/oracle/internal/domain/model"
	"github.com/pitchside/oracle/internal/domain/stats"
)

const (
	maxBestVenues = 3

	// Form is judged over the team's appearances in the last formWindow
	// stored matches, scoring at most formSample of them.
	formWindow   = 10
	formSample   = 5
	formMinGames = 3

	formExcellentPct = 60
	formGoodPct      = 40
)

// Report builds the insight for team. Unknown teams are not an error; they
// report defaulted zero-stats and insufficient form data.
func Report(snap *stats.Snapshot, history []model.Match, team string) model.TeamInsight {
	ts := snap.Team(team)

	return model.TeamInsight{
		Team:          team,
		MatchesPlayed: ts.MatchesPlayed,
		Wins:          ts.Wins,
		WinRate:       round2(ts.WinRate * 100),
		AvgScore:      round2(ts.AvgScore),
		BestVenues:    bestVenues(snap, team),
		Form:          form(history, team),
	}
}

// bestVenues ranks venues where the team has recorded wins, by the team's
// wins over the venue's overall match count, descending. Top 3 only.
func bestVenues(snap *stats.Snapshot, team string) []model.VenueRecord {
	var records []model.VenueRecord
	for venue, vs := range snap.VenueStats {
		wins, ok := vs.Teams[team]
		if !ok || vs.Matches == 0 {
			continue
		}
		records = append(records, model.VenueRecord{
			Venue:   venue,
			WinRate: round2(float64(wins) / float64(vs.Matches) * 100),
			Wins:    wins,
		})
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].WinRate != records[j].WinRate {
			return records[i].WinRate > records[j].WinRate
		}
		return records[i].Venue < records[j].Venue
	})
	if len(records) > maxBestVenues {
		records = records[:maxBestVenues]
	}
	return records
}

// form classifies recent performance from the team's appearances in the last
// formWindow matches of the history, in insertion order.
func form(history []model.Match, team string) string {
	start := len(history) - formWindow
	if start < 0 {
		start = 0
	}
	var recent []model.Match
	for _, m := range history[start:] {
		if m.Involves(team) {
			recent = append(recent, m)
		}
	}
	if len(recent) < formMinGames {
		return model.FormInsufficient
	}

	sample := recent
	if len(sample) > formSample {
		sample = sample[len(sample)-formSample:]
	}
	wins := 0
	for i := range sample {
		if sample[i].WonBy(team) {
			wins++
		}
	}
	winPct := float64(wins) / float64(len(sample)) * 100

	switch {
	case winPct >= formExcellentPct:
		return model.FormExcellent
	case winPct >= formGoodPct:
		return model.FormGood
	default:
		return model.FormPoor
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
