package model_test

import (
	"testing"

	model "github.com/pitchside/oracle/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func validMatch() model.Match {
	return model.Match{
		Team1:      "Mumbai Indians",
		Team2:      "Chennai Super Kings",
		Team1Score: 180,
		Team2Score: 165,
		Winner:     model.SlotTeam1,
	}
}

func TestMatchValidate(t *testing.T) {
	Convey("Given a match record", t, func() {
		Convey("When the record is well formed", func() {
			m := validMatch()

			Convey("Then it should validate", func() {
				So(m.Validate(), ShouldBeNil)
			})
		})

		Convey("When team1 is empty", func() {
			m := validMatch()
			m.Team1 = ""

			Convey("Then validation should name the field", func() {
				err := m.Validate()
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "team1")
			})
		})

		Convey("When team2 is empty", func() {
			m := validMatch()
			m.Team2 = ""

			Convey("Then validation should fail", func() {
				So(m.Validate(), ShouldNotBeNil)
			})
		})

		Convey("When a score is negative", func() {
			m := validMatch()
			m.Team2Score = -1

			Convey("Then validation should fail", func() {
				err := m.Validate()
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "team2Score")
			})
		})

		Convey("When the winner names neither slot", func() {
			m := validMatch()
			m.Winner = "Mumbai Indians"

			Convey("Then validation should fail", func() {
				err := m.Validate()
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "winner")
			})
		})

		Convey("When toss fields are present", func() {
			m := validMatch()
			m.TossWinner = model.SlotTeam2
			m.TossDecision = model.TossBowl

			Convey("Then valid slot and decision values pass", func() {
				So(m.Validate(), ShouldBeNil)
			})

			Convey("And an invalid toss winner fails", func() {
				m.TossWinner = "someone"
				So(m.Validate(), ShouldNotBeNil)
			})

			Convey("And an invalid toss decision fails", func() {
				m.TossDecision = "field"
				So(m.Validate(), ShouldNotBeNil)
			})
		})

		Convey("When toss fields are absent", func() {
			m := validMatch()

			Convey("Then the record still validates", func() {
				So(m.Validate(), ShouldBeNil)
			})
		})
	})
}

func TestMatchHelpers(t *testing.T) {
	Convey("Given a match won by the first team", t, func() {
		m := validMatch()

		Convey("Then WinnerTeam resolves the slot", func() {
			So(m.WinnerTeam(), ShouldEqual, "Mumbai Indians")
		})

		Convey("Then WonBy follows the winner", func() {
			So(m.WonBy("Mumbai Indians"), ShouldBeTrue)
			So(m.WonBy("Chennai Super Kings"), ShouldBeFalse)
		})

		Convey("Then Involves matches both participants only", func() {
			So(m.Involves("Mumbai Indians"), ShouldBeTrue)
			So(m.Involves("Chennai Super Kings"), ShouldBeTrue)
			So(m.Involves("Delhi Capitals"), ShouldBeFalse)
		})
	})

	Convey("Given a match with no venue", t, func() {
		m := validMatch()

		Convey("Then VenueOrDefault falls back to the default venue", func() {
			So(m.VenueOrDefault(), ShouldEqual, model.DefaultVenue)
		})
	})

	Convey("Given a match with a recorded toss", t, func() {
		m := validMatch()
		m.TossWinner = model.SlotTeam2

		Convey("Then TossWinnerTeam resolves the slot", func() {
			So(m.TossWinnerTeam(), ShouldEqual, "Chennai Super Kings")
		})
	})

	Convey("Given a match with no recorded toss", t, func() {
		m := validMatch()

		Convey("Then TossWinnerTeam is empty", func() {
			So(m.TossWinnerTeam(), ShouldBeEmpty)
		})
	})
}
