package momentum_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/hoopsight/momentum/internal/domain/model"
	momentum "github.com/hoopsight/momentum/internal/domain/momentum"
	. "github.com/smartystreets/goconvey/convey"
)

const (
	home = "home-1"
	away = "away-2"
)

func playAt(sec int, teamID, text string, scoring bool, points int) model.PlayEvent {
	return model.PlayEvent{
		SequenceID:    sec,
		WallClock:     time.Date(2026, 1, 10, 19, 0, sec, 0, time.UTC),
		Period:        1,
		TeamID:        teamID,
		Text:          text,
		IsScoringPlay: scoring,
		ScoreValue:    points,
	}
}

func TestBuilder_Build(t *testing.T) {
	Convey("Given a builder without visibility rescale", t, func() {
		b := momentum.NewBuilder(momentum.WithVisibilityRescale(false))

		Convey("When two home plays each carry raw impact 10 at full weight", func() {
			// steal + made three = 4 + 6 = 10 raw per play.
			plays := []model.PlayEvent{
				playAt(1, home, "steal, made three point jumper", true, 3),
				playAt(2, home, "steal, made three point jumper", true, 3),
			}
			got := b.Build(plays, home, away)

			Convey("Then momentum reaches 20 with no rescale applied", func() {
				So(got[0].Momentum, ShouldEqual, 10)
				So(got[1].Momentum, ShouldEqual, 20)
			})
		})

		Convey("When home plays accumulate", func() {
			// steal (+4) then block (+4) then made three (+6): all within the
			// full-weight window, so momentum is a plain running sum.
			plays := []model.PlayEvent{
				playAt(1, home, "steal by point guard", false, 0),
				playAt(2, home, "blocked shot", false, 0),
				playAt(3, home, "made three point jumper", true, 3),
			}
			got := b.Build(plays, home, away)

			Convey("Then each sample carries the post-clamp running value", func() {
				So(got, ShouldHaveLength, 3)
				So(got[0].Momentum, ShouldEqual, 4)
				So(got[1].Momentum, ShouldEqual, 8)
				So(got[2].Momentum, ShouldEqual, 14)
			})

			Convey("And raw impacts are stored pre-decay", func() {
				So(got[0].RawImpact, ShouldEqual, 4)
				So(got[2].RawImpact, ShouldEqual, 6)
			})
		})

		Convey("When away plays mirror home plays", func() {
			plays := []model.PlayEvent{
				playAt(1, away, "steal by point guard", false, 0),
				playAt(2, away, "made three point jumper", true, 3),
			}
			got := b.Build(plays, home, away)

			Convey("Then momentum runs negative", func() {
				So(got[0].Momentum, ShouldEqual, -4)
				So(got[1].Momentum, ShouldEqual, -10)
			})
		})

		Convey("When events arrive out of order", func() {
			plays := []model.PlayEvent{
				playAt(3, home, "made three point jumper", true, 3),
				playAt(1, home, "steal", false, 0),
				playAt(2, home, "blocked shot", false, 0),
			}
			got := b.Build(plays, home, away)

			Convey("Then the trace follows wall-clock order", func() {
				So(got[0].SequenceID, ShouldEqual, 1)
				So(got[1].SequenceID, ShouldEqual, 2)
				So(got[2].SequenceID, ShouldEqual, 3)
				So(got[2].Momentum, ShouldEqual, 14)
			})
		})

		Convey("When events lack a timestamp or team", func() {
			plays := []model.PlayEvent{
				{SequenceID: 1, TeamID: home, Text: "steal"},
				playAt(2, "", "timeout", false, 0),
				playAt(3, home, "made jumper", true, 2),
			}
			got := b.Build(plays, home, away)

			Convey("Then they are dropped, not zero-filled", func() {
				So(got, ShouldHaveLength, 1)
				So(got[0].SequenceID, ShouldEqual, 3)
			})
		})

		Convey("When an event belongs to an unrecognized team", func() {
			plays := []model.PlayEvent{
				playAt(1, "other-9", "made jumper", true, 2),
				playAt(2, home, "made jumper", true, 2),
			}
			got := b.Build(plays, home, away)

			Convey("Then it is silently skipped", func() {
				So(got, ShouldHaveLength, 1)
				So(got[0].Momentum, ShouldEqual, 4)
			})
		})

		Convey("When the input is empty", func() {
			Convey("Then the trace is empty, not an error", func() {
				So(b.Build(nil, home, away), ShouldHaveLength, 0)
			})
		})

		Convey("When a long one-sided game is built", func() {
			plays := make([]model.PlayEvent, 0, 60)
			for i := 0; i < 60; i++ {
				plays = append(plays, playAt(i+1, home, "made three point jumper", true, 3))
			}
			got := b.Build(plays, home, away)

			Convey("Then every sample stays within the clamp bounds", func() {
				for _, s := range got {
					So(s.Momentum, ShouldBeLessThanOrEqualTo, 100)
					So(s.Momentum, ShouldBeGreaterThanOrEqualTo, -100)
				}
				So(got[len(got)-1].Momentum, ShouldEqual, 100)
			})

			Convey("And old plays decay down to the floor, never to zero", func() {
				// Distance 59 from the end: 1-(59-10)/20 < 0.3, so floored.
				// First sample = 6 * 0.3 = 1.8.
				So(got[0].Momentum, ShouldAlmostEqual, 1.8, 1e-9)
			})
		})

		Convey("When the same input is built twice", func() {
			plays := []model.PlayEvent{
				playAt(1, home, "steal", false, 0),
				playAt(2, away, "turnover bad pass", false, 0),
				playAt(3, home, "fast break dunk", true, 2),
			}
			a := b.Build(plays, home, away)
			c := b.Build(plays, home, away)

			Convey("Then the traces are identical", func() {
				So(fmt.Sprintf("%v", a), ShouldEqual, fmt.Sprintf("%v", c))
			})
		})
	})

	Convey("Given a builder with visibility rescale enabled", t, func() {
		b := momentum.NewBuilder()

		Convey("When the trace range is positive but under 20", func() {
			plays := []model.PlayEvent{
				playAt(1, home, "made jumper", true, 2), // +4 -> 4
				playAt(2, home, "made jumper", true, 2), // +4 -> 8
			}
			got := b.Build(plays, home, away)

			Convey("Then values are stretched by 20/range preserving order and sign", func() {
				// Range 4; scale 5.
				So(got[0].Momentum, ShouldEqual, 20)
				So(got[1].Momentum, ShouldEqual, 40)
				So(got[0].Momentum, ShouldBeLessThan, got[1].Momentum)
			})

			Convey("And raw impacts are untouched", func() {
				So(got[0].RawImpact, ShouldEqual, 4)
			})
		})

		Convey("When the trace spans at least 20", func() {
			plays := []model.PlayEvent{
				playAt(1, home, "made three point jumper", true, 3), // 6
				playAt(2, away, "fast break dunk", true, 2),         // -11 -> -5
				playAt(3, home, "made three point jumper", true, 3), // +6 -> 1
				playAt(4, home, "fast break dunk and 1", true, 2),   // +13 -> 14
				playAt(5, home, "made three point jumper", true, 3), // +6 -> 20
			}
			got := b.Build(plays, home, away)

			Convey("Then values pass through unchanged", func() {
				So(got[0].Momentum, ShouldEqual, 6)
				So(got[1].Momentum, ShouldEqual, -5)
				So(got[4].Momentum, ShouldEqual, 20)
			})
		})
	})
}
