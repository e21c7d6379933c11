package fingerprint

import (
	"sort"

	"github.com/hoopsight/momentum/internal/domain/model"
)

// Default search configuration constants.
const (
	DefaultTopK = 3

	// SampleDataThreshold is the minimum stored fingerprint count for real
	// results. Thinner stores degrade to clearly flagged sample data so the
	// caller never sees an error for an empty library.
	SampleDataThreshold = 10
)

// Match is one ranked search result.
type Match struct {
	Fingerprint model.Fingerprint
	Score       float64 // cosine similarity in [-1,1]
}

// SearchResult carries the ranked matches plus a degradation flag.
type SearchResult struct {
	UsingSampleData bool
	Matches         []Match
}

// Search ranks stored fingerprints against the query vector by cosine
// similarity and returns the top k. Stored vectors of the wrong length and
// zero-norm vectors are skipped, never faulted on. Ties keep first-seen
// order. When the store holds fewer than SampleDataThreshold fingerprints
// the canned sample library is ranked instead and flagged as such.
func Search(query []float64, stored []model.Fingerprint, k int) SearchResult {
	if k <= 0 {
		k = DefaultTopK
	}

	if len(stored) < SampleDataThreshold {
		return SearchResult{
			UsingSampleData: true,
			Matches:         rank(query, SampleLibrary(), k),
		}
	}
	return SearchResult{Matches: rank(query, stored, k)}
}

func rank(query []float64, stored []model.Fingerprint, k int) []Match {
	matches := make([]Match, 0, len(stored))
	for _, fp := range stored {
		if len(fp.Vector) != model.VectorLength {
			continue
		}
		score, ok := Cosine(query, fp.Vector)
		if !ok {
			continue
		}
		matches = append(matches, Match{Fingerprint: fp, Score: score})
	}

	// Stable sort keeps first-seen order for equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}
