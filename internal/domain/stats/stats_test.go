package stats_test

import (
	"errors"
	"testing"

	model "github.com/pitchside/oracle/internal/domain/model"
	stats "github.com/pitchside/oracle/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

// fiveMatchHistory is the smallest trainable history: the first team wins
// four of five head-to-head matches.
func fiveMatchHistory() []model.Match {
	h := make([]model.Match, 0, 5)
	for i := 0; i < 4; i++ {
		h = append(h, model.Match{
			Team1: "A", Team2: "B",
			Team1Score: 180, Team2Score: 150,
			Winner: model.SlotTeam1,
			Venue:  "Eden Gardens",
		})
	}
	h = append(h, model.Match{
		Team1: "A", Team2: "B",
		Team1Score: 160, Team2Score: 170,
		Winner: model.SlotTeam2,
		Venue:  "Wankhede Stadium",
	})
	return h
}

func TestRecompute(t *testing.T) {
	Convey("Given a trainable match history", t, func() {
		history := fiveMatchHistory()

		Convey("When recomputing the aggregates", func() {
			snap, err := stats.Recompute(history)

			Convey("Then it should succeed", func() {
				So(err, ShouldBeNil)
				So(snap, ShouldNotBeNil)
				So(snap.SchemaVersion, ShouldEqual, stats.SchemaVersion)
				So(snap.TrainedAt.IsZero(), ShouldBeFalse)
			})

			Convey("Then team records should reflect the history", func() {
				a := snap.Team("A")
				So(a.MatchesPlayed, ShouldEqual, 5)
				So(a.Wins, ShouldEqual, 4)
				So(a.WinRate, ShouldAlmostEqual, 0.8)
				So(a.TotalScore, ShouldEqual, 880)
				So(a.AvgScore, ShouldAlmostEqual, 176)

				b := snap.Team("B")
				So(b.MatchesPlayed, ShouldEqual, 5)
				So(b.Wins, ShouldEqual, 1)
				So(b.WinRate, ShouldAlmostEqual, 0.2)
				So(b.AvgScore, ShouldAlmostEqual, 154)
			})

			Convey("Then total wins should equal the match count", func() {
				wins := 0
				for _, ts := range snap.TeamStats {
					wins += ts.Wins
				}
				So(wins, ShouldEqual, len(history))
			})

			Convey("Then venues should carry per-team win counts", func() {
				eden, ok := snap.Venue("Eden Gardens")
				So(ok, ShouldBeTrue)
				So(eden.Matches, ShouldEqual, 4)
				So(eden.Teams["A"], ShouldEqual, 4)

				wankhede, ok := snap.Venue("Wankhede Stadium")
				So(ok, ShouldBeTrue)
				So(wankhede.Matches, ShouldEqual, 1)
				So(wankhede.Teams["B"], ShouldEqual, 1)
			})
		})

		Convey("When recomputing the same history twice", func() {
			first, err1 := stats.Recompute(history)
			second, err2 := stats.Recompute(history)

			Convey("Then both runs should agree on every aggregate", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(second.TeamStats, ShouldResemble, first.TeamStats)
				So(second.VenueStats, ShouldResemble, first.VenueStats)
				So(second.TossImpact, ShouldResemble, first.TossImpact)
			})
		})

		Convey("When a record is appended and training reruns", func() {
			extra := append(fiveMatchHistory(), model.Match{
				Team1: "A", Team2: "C",
				Team1Score: 140, Team2Score: 150,
				Winner: model.SlotTeam2,
			})
			snap, err := stats.Recompute(extra)

			Convey("Then the fold starts from empty aggregates", func() {
				So(err, ShouldBeNil)
				a := snap.Team("A")
				So(a.MatchesPlayed, ShouldEqual, 6)
				So(a.Wins, ShouldEqual, 4)
				c := snap.Team("C")
				So(c.MatchesPlayed, ShouldEqual, 1)
				So(c.Wins, ShouldEqual, 1)
			})

			Convey("Then the missing venue maps to the default bucket", func() {
				vs, ok := snap.Venue(model.DefaultVenue)
				So(ok, ShouldBeTrue)
				So(vs.Matches, ShouldEqual, 1)
				So(vs.Teams["C"], ShouldEqual, 1)
			})
		})
	})

	Convey("Given too little history", t, func() {
		history := fiveMatchHistory()[:4]

		Convey("When recomputing", func() {
			snap, err := stats.Recompute(history)

			Convey("Then it should report insufficient data", func() {
				So(snap, ShouldBeNil)
				var insufficient *stats.InsufficientDataError
				So(errors.As(err, &insufficient), ShouldBeTrue)
				So(insufficient.Current, ShouldEqual, 4)
				So(insufficient.Required, ShouldEqual, stats.MinTrainMatches)
			})
		})
	})

	Convey("Given a history with toss records", t, func() {
		history := fiveMatchHistory()
		// Toss winner bats and wins the match.
		history[0].TossWinner = model.SlotTeam1
		history[0].TossDecision = model.TossBat
		// Toss winner bowls and wins the match.
		history[1].TossWinner = model.SlotTeam1
		history[1].TossDecision = model.TossBowl
		// Toss winner loses the match.
		history[2].TossWinner = model.SlotTeam2
		history[2].TossDecision = model.TossBat

		Convey("When recomputing", func() {
			snap, err := stats.Recompute(history)

			Convey("Then toss impact counts only recorded tosses", func() {
				So(err, ShouldBeNil)
				So(snap.TossImpact.Total, ShouldEqual, 3)
				So(snap.TossImpact.BatFirstWins, ShouldEqual, 1)
				So(snap.TossImpact.BowlFirstWins, ShouldEqual, 1)
			})
		})
	})
}

func TestSnapshotAccessors(t *testing.T) {
	Convey("Given an empty snapshot", t, func() {
		snap := stats.NewSnapshot()

		Convey("Then unknown teams carry the neutral prior", func() {
			ts := snap.Team("nobody")
			So(ts.MatchesPlayed, ShouldEqual, 0)
			So(ts.WinRate, ShouldAlmostEqual, stats.NeutralWinRate)
		})

		Convey("Then unknown venues report no history", func() {
			_, ok := snap.Venue("nowhere")
			So(ok, ShouldBeFalse)
		})
	})
}
