package analysis

import (
	"math"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// SimilarityThreshold is shared by both validity rules. Group validity uses
// an inclusive bound, page validity an exclusive one; the asymmetry is part
// of the decisioning contract.
const SimilarityThreshold = 0.2

// Similarity computes the Ratcliff/Obershelp ratio between two strings,
// case-insensitive, in [0, 1]. An empty input on either side scores 0.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	left := strings.Split(strings.ToLower(a), "")
	right := strings.Split(strings.ToLower(b), "")
	return difflib.NewMatcher(left, right).Ratio()
}

// GroupValid requires all three region types present and a similarity at or
// above the threshold.
func GroupValid(hasPole, hasTimestamp, hasDetail bool, similarity float64) bool {
	return hasPole && hasTimestamp && hasDetail && similarity >= SimilarityThreshold
}

// PageAverage is the mean of the group similarities rounded to two decimals,
// 0 for a page without groups.
func PageAverage(similarities []float64) float64 {
	if len(similarities) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range similarities {
		sum += s
	}
	return math.Round(sum/float64(len(similarities))*100) / 100
}

// PageValid is strict: an average exactly at the threshold is invalid.
func PageValid(avgSimilarity float64) bool {
	return avgSimilarity > SimilarityThreshold
}
