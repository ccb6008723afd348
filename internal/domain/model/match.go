// Package model contains domain models passed between layers.
package model

import "fmt"

// Winner slot values. A match record names its winner by slot rather than by
// team identifier, so the winner always resolves to one of the two teams.
const (
	SlotTeam1 = "team1"
	SlotTeam2 = "team2"
)

// Toss decision values.
const (
	TossBat  = "bat"
	TossBowl = "bowl"
)

// DefaultVenue is used when a record carries no venue.
const DefaultVenue = "unknown"

// Match represents one historical match record. Records are immutable once
// stored; corrections happen by editing the log and retraining.
type Match struct {
	ID           int64  `json:"id,omitempty"`
	EventID      string `json:"event_id,omitempty"` // idempotency key for ingestion
	Team1        string `json:"team1"`
	Team2        string `json:"team2"`
	Team1Score   int    `json:"team1Score"`
	Team2Score   int    `json:"team2Score"`
	Winner       string `json:"winner"` // "team1" or "team2"
	Venue        string `json:"venue,omitempty"`
	TossWinner   string `json:"tossWinner,omitempty"`   // "team1" or "team2"
	TossDecision string `json:"tossDecision,omitempty"` // "bat" or "bowl"
}

// ValidationError reports a malformed match record, naming the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid match record: %s: %s", e.Field, e.Reason)
}

// Validate checks the record against the ingestion contract. A record that
// fails validation is rejected entirely and never partially stored.
func (m *Match) Validate() error {
	switch {
	case m.Team1 == "":
		return &ValidationError{Field: "team1", Reason: "must not be empty"}
	case m.Team2 == "":
		return &ValidationError{Field: "team2", Reason: "must not be empty"}
	case m.Team1Score < 0:
		return &ValidationError{Field: "team1Score", Reason: "must be non-negative"}
	case m.Team2Score < 0:
		return &ValidationError{Field: "team2Score", Reason: "must be non-negative"}
	}
	if m.Winner != SlotTeam1 && m.Winner != SlotTeam2 {
		return &ValidationError{Field: "winner", Reason: `must be "team1" or "team2"`}
	}
	if m.TossWinner != "" && m.TossWinner != SlotTeam1 && m.TossWinner != SlotTeam2 {
		return &ValidationError{Field: "tossWinner", Reason: `must be "team1" or "team2"`}
	}
	if m.TossDecision != "" && m.TossDecision != TossBat && m.TossDecision != TossBowl {
		return &ValidationError{Field: "tossDecision", Reason: `must be "bat" or "bowl"`}
	}
	return nil
}

// WinnerTeam resolves the winner slot to a team identifier.
func (m *Match) WinnerTeam() string {
	if m.Winner == SlotTeam1 {
		return m.Team1
	}
	return m.Team2
}

// VenueOrDefault returns the recorded venue, or DefaultVenue when absent.
func (m *Match) VenueOrDefault() string {
	if m.Venue == "" {
		return DefaultVenue
	}
	return m.Venue
}

// TossWinnerTeam resolves the toss winner slot to a team identifier.
// Returns the empty string when no toss winner was recorded.
func (m *Match) TossWinnerTeam() string {
	switch m.TossWinner {
	case SlotTeam1:
		return m.Team1
	case SlotTeam2:
		return m.Team2
	}
	return ""
}

// Involves reports whether the given team played in this match.
func (m *Match) Involves(team string) bool {
	return m.Team1 == team || m.Team2 == team
}

// WonBy reports whether the given team is the recorded winner.
func (m *Match) WonBy(team string) bool {
	return m.WinnerTeam() == team
}
