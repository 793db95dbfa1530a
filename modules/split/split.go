// Package split detects when a single changed entry actually represents
// two entries with the same title that were accidentally written as one,
// the second entry's title having been dropped, and reconstructs the two
// entries.
package split

import (
	"bytes"

	"github.com/jwiegley/git-merge-changelog/modules/similarity"
)

// Result holds the two entries recovered from an accidental merge.
//
// Head shares its bytes with the buffer new was taken from; Tail is a
// freshly allocated concatenation of new's title and the recovered body,
// since the original bytes for that pairing never existed contiguously in
// any input file.
type Result struct {
	Found bool
	Head  []byte
	Tail  []byte
}

// Try attempts to explain new as old, still present but with one or more
// paragraphs spliced in right after its title and before its body, with
// no second copy of the title in front of the old body. old is the single
// ancestor entry that changed; new is the modified entry it was matched to.
//
// It requires new to open with the same title as old, then scans
// paragraph boundaries within new looking for the point at which the
// remainder again resembles old's body closely enough
// (similarity.Strict). On success it returns the leading portion of new
// (the recovered addition) as Head and old's title reattached to the
// matched body as Tail.
func Try(old, new []byte) Result {
	oldTitleLen := titleLen(old)
	newTitleLen := titleLen(new)

	if oldTitleLen != newTitleLen || !bytes.Equal(old[:oldTitleLen], new[:oldTitleLen]) {
		return Result{}
	}

	oldBody := old[oldTitleLen:]

	candidates := []int{newTitleLen}
	for _, off := range paragraphEnds(new) {
		if off > newTitleLen {
			candidates = append(candidates, off)
		}
	}

	bestOffset := -1
	bestScore := 0.0
	for _, c := range candidates {
		if c >= len(new) {
			continue
		}
		body := new[c:]
		score := similarity.Ratio(oldBody, body, bestScore)
		if score > bestScore {
			bestScore = score
			bestOffset = c
		}
		if bestScore >= 1.0 {
			break
		}
	}

	if bestOffset == -1 || bestScore < similarity.Strict {
		return Result{}
	}

	head := new[:bestOffset]
	tail := make([]byte, 0, newTitleLen+(len(new)-bestOffset))
	tail = append(tail, new[:newTitleLen]...)
	tail = append(tail, new[bestOffset:]...)

	return Result{Found: true, Head: head, Tail: tail}
}

// titleLen returns the offset just past the first blank line in buf, or
// len(buf) if buf contains no blank line. Unlike the entry parser's
// paragraph-boundary rule, this does not require the byte after the blank
// line to be non-whitespace: a changelog entry's title is everything up
// to the first blank line regardless of what follows it.
func titleLen(buf []byte) int {
	if i := bytes.Index(buf, []byte("\n\n")); i >= 0 {
		return i + 2
	}
	return len(buf)
}

// paragraphEnds returns, in ascending order, every offset within buf just
// past a blank line. Unlike the entry parser's boundary rule this accepts
// any blank line, whatever follows it: within a single entry, paragraphs
// are separated by blank lines whose following line is indented, which is
// exactly why the parser kept them together.
func paragraphEnds(buf []byte) []int {
	var offsets []int
	for i := 0; i+1 < len(buf); i++ {
		if buf[i] == '\n' && buf[i+1] == '\n' {
			offsets = append(offsets, i+2)
		}
	}
	return offsets
}
