// Package stats derives team, venue and toss aggregates from match history.
//
// Recompute is a pure fold over the full history: every training cycle starts
// from empty aggregates so that correcting or removing a historical record and
// retraining yields a fully consistent result with no residue from earlier
// trainings. Incremental merging would need reversible updates and risks
// drift; training is an explicit, infrequent admin action, so the CPU cost is
// acceptable.
package stats

import (
	"fmt"
	"time"

	"github.com/pitchside/oracle/internal/domain/model"
)

// MinTrainMatches is the smallest history Recompute accepts.
const MinTrainMatches = 5

// SchemaVersion tags persisted snapshots so future aggregate-shape changes
// can be migrated instead of breaking silently on load.
const SchemaVersion = 1

// NeutralWinRate is the prior used for teams with no recorded matches.
const NeutralWinRate = 0.5

// InsufficientDataError reports a training attempt on too little history.
// It is non-fatal; the caller may retry after more matches are ingested.
type InsufficientDataError struct {
	Current  int
	Required int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("need at least %d matches to train, have %d", e.Required, e.Current)
}

// TeamStats aggregates one team's record across the trained history.
type TeamStats struct {
	MatchesPlayed int     `json:"matches_played"`
	Wins          int     `json:"wins"`
	TotalScore    int     `json:"total_score"`
	WinRate       float64 `json:"win_rate"`
	AvgScore      float64 `json:"avg_score"`
}

// VenueStats aggregates matches at one venue, including per-team win counts.
type VenueStats struct {
	Matches int            `json:"matches"`
	Teams   map[string]int `json:"teams"` // winning team -> wins at this venue
}

// TossImpact counts matches where the toss winner also won the match,
// split by toss decision. Only matches with both toss fields recorded count.
type TossImpact struct {
	BatFirstWins  int `json:"bat_first_wins"`
	BowlFirstWins int `json:"bowl_first_wins"`
	Total         int `json:"total"`
}

// Snapshot is the complete aggregate produced by one training cycle. It is
// the unit of persistence and is published wholesale, never partially mutated.
type Snapshot struct {
	SchemaVersion int                    `json:"schema_version"`
	TeamStats     map[string]*TeamStats  `json:"team_stats"`
	VenueStats    map[string]*VenueStats `json:"venue_stats"`
	TossImpact    TossImpact             `json:"toss_impact"`
	TrainedAt     time.Time              `json:"trained_at"`
}

// NewSnapshot returns an empty snapshot. A cold process serves degenerate
// predictions from this until the first training cycle completes.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		SchemaVersion: SchemaVersion,
		TeamStats:     make(map[string]*TeamStats),
		VenueStats:    make(map[string]*VenueStats),
	}
}

// newTeamStats is the explicit per-key factory. Teams start with the neutral
// prior so a team that was never trained on looks the same whether it is
// missing from the map or freshly created.
func newTeamStats() *TeamStats {
	return &TeamStats{WinRate: NeutralWinRate}
}

// team returns the stats bucket for name, creating it on first access.
func (s *Snapshot) team(name string) *TeamStats {
	ts, ok := s.TeamStats[name]
	if !ok {
		ts = newTeamStats()
		s.TeamStats[name] = ts
	}
	return ts
}

// venue returns the stats bucket for name, creating it on first access.
func (s *Snapshot) venue(name string) *VenueStats {
	vs, ok := s.VenueStats[name]
	if !ok {
		vs = &VenueStats{Teams: make(map[string]int)}
		s.VenueStats[name] = vs
	}
	return vs
}

// Team returns the stats for name, or defaulted zero-stats for unknown teams.
// Unknown teams are not an error; they carry the neutral prior.
func (s *Snapshot) Team(name string) TeamStats {
	if ts, ok := s.TeamStats[name]; ok {
		return *ts
	}
	return *newTeamStats()
}

// Venue returns the stats for name and whether the venue has recorded history.
func (s *Snapshot) Venue(name string) (VenueStats, bool) {
	if vs, ok := s.VenueStats[name]; ok {
		return *vs, true
	}
	return VenueStats{}, false
}

// Recompute folds the full match history into a fresh snapshot. The input is
// not mutated; the returned snapshot shares no state with prior trainings.
func Recompute(history []model.Match) (*Snapshot, error) {
	if len(history) < MinTrainMatches {
		return nil, &InsufficientDataError{Current: len(history), Required: MinTrainMatches}
	}

	snap := NewSnapshot()
	for i := range history {
		fold(snap, &history[i])
	}

	// Derive rates after the pass. Every team in the map has played at least
	// one match, but guard the division anyway.
	for _, ts := range snap.TeamStats {
		if ts.MatchesPlayed > 0 {
			ts.WinRate = float64(ts.Wins) / float64(ts.MatchesPlayed)
			ts.AvgScore = float64(ts.TotalScore) / float64(ts.MatchesPlayed)
		}
	}

	snap.TrainedAt = time.Now().UTC()
	return snap, nil
}

// fold applies one match record to the aggregates.
func fold(snap *Snapshot, m *model.Match) {
	winner := m.WinnerTeam()

	t1 := snap.team(m.Team1)
	t1.MatchesPlayed++
	t1.TotalScore += m.Team1Score

	t2 := snap.team(m.Team2)
	t2.MatchesPlayed++
	t2.TotalScore += m.Team2Score

	snap.team(winner).Wins++

	vs := snap.venue(m.VenueOrDefault())
	vs.Matches++
	vs.Teams[winner]++

	if m.TossWinner != "" && m.TossDecision != "" {
		snap.TossImpact.Total++
		if m.TossWinnerTeam() == winner {
			if m.TossDecision == model.TossBat {
				snap.TossImpact.BatFirstWins++
			} else {
				snap.TossImpact.BowlFirstWins++
			}
		}
	}
}
