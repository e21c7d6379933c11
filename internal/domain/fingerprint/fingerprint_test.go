package fingerprint_test

import (
	"testing"

	fingerprint "github.com/hoopsight/momentum/internal/domain/fingerprint"
	"github.com/hoopsight/momentum/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVectorize(t *testing.T) {
	Convey("Given momentum series of varying lengths", t, func() {
		Convey("When the input is longer than 20", func() {
			in := make([]float64, 40)
			for i := range in {
				in[i] = float64(i) // scaled: i/100
			}
			out := fingerprint.Vectorize(in)

			Convey("Then decimation picks evenly spaced indices exactly", func() {
				So(out, ShouldHaveLength, model.VectorLength)
				for i := 0; i < model.VectorLength; i++ {
					So(out[i], ShouldEqual, float64(2*i)/100)
				}
			})
		})

		Convey("When the input is shorter than 20", func() {
			out := fingerprint.Vectorize([]float64{10, 20, 30})

			Convey("Then the last value is repeated to the right", func() {
				So(out, ShouldHaveLength, model.VectorLength)
				So(out[0], ShouldEqual, 0.1)
				So(out[1], ShouldEqual, 0.2)
				for i := 2; i < model.VectorLength; i++ {
					So(out[i], ShouldEqual, 0.3)
				}
			})
		})

		Convey("When the input is exactly 20", func() {
			in := make([]float64, 20)
			for i := range in {
				in[i] = 50
			}
			out := fingerprint.Vectorize(in)

			Convey("Then values pass through normalized", func() {
				for _, v := range out {
					So(v, ShouldEqual, 0.5)
				}
			})
		})

		Convey("When values exceed the momentum bounds", func() {
			out := fingerprint.Vectorize([]float64{250, -250})

			Convey("Then components are clamped to [-1,1]", func() {
				So(out[0], ShouldEqual, 1)
				So(out[1], ShouldEqual, -1)
			})
		})

		Convey("When called repeatedly on identical input", func() {
			in := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9, 3, 2, 3, 8, 4, 6, 2, 6}
			a := fingerprint.Vectorize(in)
			b := fingerprint.Vectorize(in)

			Convey("Then the output is bit-identical", func() {
				So(a, ShouldResemble, b)
			})
		})

		Convey("When the input spans lengths 1 through 500", func() {
			for _, n := range []int{1, 2, 19, 20, 21, 137, 500} {
				in := make([]float64, n)
				for i := range in {
					in[i] = float64(i%200) - 100
				}
				out := fingerprint.Vectorize(in)
				So(out, ShouldHaveLength, model.VectorLength)
				for _, v := range out {
					So(v, ShouldBeLessThanOrEqualTo, 1)
					So(v, ShouldBeGreaterThanOrEqualTo, -1)
				}
			}
		})

		Convey("When the input is empty", func() {
			Convey("Then a zero vector of full length comes back", func() {
				So(fingerprint.Vectorize(nil), ShouldResemble, make([]float64, model.VectorLength))
			})
		})
	})
}

func TestCosine(t *testing.T) {
	Convey("Given cosine similarity", t, func() {
		v := []float64{0.5, -0.2, 0.8, 0.1}

		Convey("A vector against itself scores 1", func() {
			got, ok := fingerprint.Cosine(v, v)
			So(ok, ShouldBeTrue)
			So(got, ShouldAlmostEqual, 1.0, 1e-9)
		})

		Convey("A vector against its negation scores -1", func() {
			neg := make([]float64, len(v))
			for i := range v {
				neg[i] = -v[i]
			}
			got, ok := fingerprint.Cosine(v, neg)
			So(ok, ShouldBeTrue)
			So(got, ShouldAlmostEqual, -1.0, 1e-9)
		})

		Convey("A zero vector is rejected, not divided by", func() {
			_, ok := fingerprint.Cosine(v, make([]float64, len(v)))
			So(ok, ShouldBeFalse)
		})

		Convey("Mismatched lengths are rejected", func() {
			_, ok := fingerprint.Cosine(v, []float64{1, 2})
			So(ok, ShouldBeFalse)
		})
	})
}

func storedGames(n int) []model.Fingerprint {
	games := make([]model.Fingerprint, 0, n)
	for i := 0; i < n; i++ {
		vec := make([]float64, model.VectorLength)
		for j := range vec {
			vec[j] = float64((i+j)%10) / 10
		}
		vec[0] = 0.01 // keep a nonzero norm
		games = append(games, model.Fingerprint{GameID: string(rune('a' + i)), Vector: vec})
	}
	return games
}

func TestSearch(t *testing.T) {
	Convey("Given a populated fingerprint store", t, func() {
		stored := storedGames(12)
		query := stored[4].Vector

		Convey("When searching for the top 3", func() {
			res := fingerprint.Search(query, stored, 3)

			Convey("Then real data is used and the exact match ranks first", func() {
				So(res.UsingSampleData, ShouldBeFalse)
				So(res.Matches, ShouldHaveLength, 3)
				So(res.Matches[0].Fingerprint.GameID, ShouldEqual, stored[4].GameID)
				So(res.Matches[0].Score, ShouldAlmostEqual, 1.0, 1e-9)
			})

			Convey("And scores are ordered descending", func() {
				So(res.Matches[0].Score, ShouldBeGreaterThanOrEqualTo, res.Matches[1].Score)
				So(res.Matches[1].Score, ShouldBeGreaterThanOrEqualTo, res.Matches[2].Score)
			})
		})

		Convey("When stored vectors are malformed or zero", func() {
			bad := append([]model.Fingerprint{
				{GameID: "short", Vector: []float64{1, 2, 3}},
				{GameID: "zero", Vector: make([]float64, model.VectorLength)},
			}, stored...)
			res := fingerprint.Search(query, bad, len(bad))

			Convey("Then they are excluded from the ranking", func() {
				for _, m := range res.Matches {
					So(m.Fingerprint.GameID, ShouldNotEqual, "short")
					So(m.Fingerprint.GameID, ShouldNotEqual, "zero")
				}
			})
		})

		Convey("When two stored games tie exactly", func() {
			dup := stored[4]
			dup.GameID = "twin"
			tied := append(append([]model.Fingerprint{}, stored...), dup)
			res := fingerprint.Search(query, tied, len(tied))

			Convey("Then first-seen order breaks the tie", func() {
				So(res.Matches[0].Fingerprint.GameID, ShouldEqual, stored[4].GameID)
				So(res.Matches[1].Fingerprint.GameID, ShouldEqual, "twin")
			})
		})
	})

	Convey("Given an undersized store", t, func() {
		stored := storedGames(4)
		query := make([]float64, model.VectorLength)
		query[0] = 0.5

		Convey("When searching", func() {
			res := fingerprint.Search(query, stored, 3)

			Convey("Then the result is flagged sample data, not a failure", func() {
				So(res.UsingSampleData, ShouldBeTrue)
				So(res.Matches, ShouldNotBeEmpty)
				So(res.Matches[0].Fingerprint.Season, ShouldEqual, "sample")
			})
		})

		Convey("When k is not positive", func() {
			res := fingerprint.Search(query, stored, 0)

			Convey("Then the default top-K applies", func() {
				So(len(res.Matches), ShouldBeLessThanOrEqualTo, fingerprint.DefaultTopK)
			})
		})
	})
}
