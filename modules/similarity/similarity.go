// Package similarity implements the fuzzy-matching contract used by the
// mapping builder and the paragraph split detector: a bounded LCS-ratio
// score between two byte strings.
package similarity

import "bytes"

const (
	// Match is the minimum ratio at which two entries from different files
	// are considered the same logical entry by the fuzzy mapping pass.
	Match = 0.6

	// Strict is the minimum ratio required before an "accidental paragraph
	// merge" split is accepted.
	Strict = 0.8
)

// Ratio scores how similar a and b are, as a fraction in [0,1].
//
// The score is 2*|LCS|/(|a|+|b|), where |LCS| is the length of a longest
// common subsequence. lowerBound licenses an early, cheaper exit: if the
// trivial upper bound on the achievable ratio already falls below
// lowerBound, Ratio returns 0 without computing the diff.
//
// An entry containing an embedded NUL byte never matches anything,
// including itself when compared against a distinct value, and always
// scores 0.
func Ratio(a, b []byte, lowerBound float64) float64 {
	if bytes.IndexByte(a, 0) >= 0 || bytes.IndexByte(b, 0) >= 0 {
		return 0
	}
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	total := len(a) + len(b)

	// The best possible LCS length is min(|a|,|b|); bail before running the
	// diff if even that can't clear lowerBound.
	upperBound := 2 * float64(min(len(a), len(b))) / float64(total)
	if upperBound < lowerBound {
		return 0
	}

	matches := lcsLength(a, b)
	return 2 * float64(matches) / float64(total)
}

// lcsLength returns the length of a longest common subsequence of a and b,
// computed by summing the Equal-tagged spans of a Myers/diff-match-patch
// style diff.
func lcsLength(a, b []byte) int {
	diffs := diffSlices(a, b)
	n := 0
	for _, d := range diffs {
		if d.op == opEqual {
			n += len(d.e)
		}
	}
	return n
}
