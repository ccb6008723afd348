package insight_test

import (
	"testing"

	insight "github.com/pitchside/oracle/internal/domain/insight"
	model "github.com/pitchside/oracle/internal/domain/model"
	stats "github.com/pitchside/oracle/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func match(team1, team2, winner, venue string, s1, s2 int) model.Match {
	return model.Match{
		Team1: team1, Team2: team2,
		Team1Score: s1, Team2Score: s2,
		Winner: winner,
		Venue:  venue,
	}
}

func TestReport(t *testing.T) {
	Convey("Given a trained history across three venues", t, func() {
		history := []model.Match{
			match("A", "B", model.SlotTeam1, "Eden Gardens", 180, 150),
			match("A", "B", model.SlotTeam1, "Eden Gardens", 175, 160),
			match("A", "B", model.SlotTeam2, "Wankhede Stadium", 150, 160),
			match("A", "B", model.SlotTeam1, "Wankhede Stadium", 190, 140),
			match("A", "B", model.SlotTeam1, "Garden City Oval", 170, 70),
			match("A", "B", model.SlotTeam2, "Garden City Oval", 120, 130),
		}
		snap, err := stats.Recompute(history)
		So(err, ShouldBeNil)

		Convey("When reporting on the stronger team", func() {
			report := insight.Report(snap, history, "A")

			Convey("Then the season summary matches the aggregates", func() {
				So(report.Team, ShouldEqual, "A")
				So(report.MatchesPlayed, ShouldEqual, 6)
				So(report.Wins, ShouldEqual, 4)
				So(report.WinRate, ShouldAlmostEqual, 66.67)
				So(report.AvgScore, ShouldAlmostEqual, 164.17)
			})

			Convey("Then best venues rank by win share with name tie-breaks", func() {
				So(report.BestVenues, ShouldHaveLength, 3)
				So(report.BestVenues[0].Venue, ShouldEqual, "Eden Gardens")
				So(report.BestVenues[0].WinRate, ShouldAlmostEqual, 100)
				So(report.BestVenues[0].Wins, ShouldEqual, 2)
				// Both remaining venues sit at 50; alphabetical order decides.
				So(report.BestVenues[1].Venue, ShouldEqual, "Garden City Oval")
				So(report.BestVenues[2].Venue, ShouldEqual, "Wankhede Stadium")
			})

			Convey("Then recent form samples the last five appearances", func() {
				// Sampled record: W L W W L, three wins of five.
				So(report.Form, ShouldEqual, model.FormExcellent)
			})
		})

		Convey("When reporting on the weaker team", func() {
			report := insight.Report(snap, history, "B")

			Convey("Then the sampled form lands in the middle band", func() {
				// Sampled record: L W L L W, two wins of five.
				So(report.Form, ShouldEqual, model.FormGood)
			})

			Convey("Then venues without a win for the team are omitted", func() {
				for _, v := range report.BestVenues {
					So(v.Wins, ShouldBeGreaterThan, 0)
				}
			})
		})
	})

	Convey("Given a team losing every recent match", t, func() {
		var history []model.Match
		for i := 0; i < 6; i++ {
			history = append(history, match("A", "B", model.SlotTeam1, "Eden Gardens", 170, 120))
		}
		snap, err := stats.Recompute(history)
		So(err, ShouldBeNil)

		Convey("When reporting on the loser", func() {
			report := insight.Report(snap, history, "B")

			Convey("Then form is poor and no best venues exist", func() {
				So(report.Form, ShouldEqual, model.FormPoor)
				So(report.BestVenues, ShouldBeEmpty)
				So(report.WinRate, ShouldAlmostEqual, 0)
			})
		})
	})

	Convey("Given a team with too few recent appearances", t, func() {
		history := []model.Match{
			match("A", "B", model.SlotTeam1, "", 160, 150),
			match("A", "B", model.SlotTeam1, "", 160, 150),
			match("A", "B", model.SlotTeam1, "", 160, 150),
			match("A", "C", model.SlotTeam2, "", 140, 150),
			match("A", "B", model.SlotTeam1, "", 160, 150),
		}
		snap, err := stats.Recompute(history)
		So(err, ShouldBeNil)

		Convey("When reporting on the rare participant", func() {
			report := insight.Report(snap, history, "C")

			Convey("Then form reports insufficient data", func() {
				So(report.Form, ShouldEqual, model.FormInsufficient)
				So(report.MatchesPlayed, ShouldEqual, 1)
				So(report.Wins, ShouldEqual, 1)
			})
		})
	})

	Convey("Given an unknown team", t, func() {
		history := []model.Match{
			match("A", "B", model.SlotTeam1, "", 160, 150),
		}
		snap := stats.NewSnapshot()

		Convey("When reporting", func() {
			report := insight.Report(snap, history, "Z")

			Convey("Then the report is defaulted, not an error", func() {
				So(report.MatchesPlayed, ShouldEqual, 0)
				So(report.Wins, ShouldEqual, 0)
				So(report.BestVenues, ShouldBeEmpty)
				So(report.Form, ShouldEqual, model.FormInsufficient)
			})
		})
	})

	Convey("Given an older window that no longer includes the team", t, func() {
		// The team's appearances all fall outside the last ten matches.
		var history []model.Match
		for i := 0; i < 4; i++ {
			history = append(history, match("C", "D", model.SlotTeam1, "", 150, 140))
		}
		for i := 0; i < 10; i++ {
			history = append(history, match("A", "B", model.SlotTeam1, "", 160, 150))
		}
		snap, err := stats.Recompute(history)
		So(err, ShouldBeNil)

		Convey("When reporting on the early-season team", func() {
			report := insight.Report(snap, history, "C")

			Convey("Then season totals remain but form lacks data", func() {
				So(report.MatchesPlayed, ShouldEqual, 4)
				So(report.Form, ShouldEqual, model.FormInsufficient)
			})
		})
	})
}
