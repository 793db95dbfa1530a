// Package editscript computes the ordered sequence of additions, removals
// and changes that turns one entry log into another.
package editscript

import "github.com/jwiegley/git-merge-changelog/modules/entry"

// Kind classifies one edit-script operation.
type Kind int

const (
	// Addition means entries exist in the new log with no counterpart in
	// the old log at this position.
	Addition Kind = iota
	// Removal means entries from the old log have no counterpart in the
	// new log at this position.
	Removal
	// Change means a run of old entries was replaced by a run of new
	// entries at this position.
	Change
)

func (k Kind) String() string {
	switch k {
	case Addition:
		return "addition"
	case Removal:
		return "removal"
	case Change:
		return "change"
	default:
		return "unknown"
	}
}

// Edit is one operation in the script: entries [OldPos, OldPos+OldLen) of
// the old log correspond to entries [NewPos, NewPos+NewLen) of the new
// log. Exactly one of OldLen, NewLen is zero for Addition and Removal
// edits; both are non-zero for Change edits.
type Edit struct {
	Kind   Kind
	OldPos int
	OldLen int
	NewPos int
	NewLen int
}

// Build computes the minimal edit script turning old into new, identifying
// entries by content hash so that entries need not be the same pointer to
// be recognised as equal.
//
// It also returns the positional alignment the diff implies for every
// position the edit script leaves untouched: fwd[i] is the position in new
// that old's entry i was matched to (by the LCS walk, not by fuzzy
// similarity), or -1 if i falls inside a removal or change; rev is the
// same alignment in the other direction.
func Build(old, new *entry.Log) (edits []Edit, fwd []int, rev []int) {
	oldHashes := make([]entry.Hash, old.Len())
	for i := 0; i < old.Len(); i++ {
		oldHashes[i] = old.At(i).Hash()
	}
	newHashes := make([]entry.Hash, new.Len())
	for i := 0; i < new.Len(); i++ {
		newHashes[i] = new.At(i).Hash()
	}

	changes := myersDiff(oldHashes, newHashes)

	fwd = make([]int, old.Len())
	for i := range fwd {
		fwd[i] = -1
	}
	rev = make([]int, new.Len())
	for j := range rev {
		rev[j] = -1
	}

	edits = make([]Edit, 0, len(changes))
	prevOld, prevNew := 0, 0
	for _, c := range changes {
		eqLen := c.P1 - prevOld
		for k := 0; k < eqLen; k++ {
			fwd[prevOld+k] = prevNew + k
			rev[prevNew+k] = prevOld + k
		}

		var kind Kind
		switch {
		case c.Del > 0 && c.Ins > 0:
			kind = Change
		case c.Del > 0:
			kind = Removal
		default:
			kind = Addition
		}
		edits = append(edits, Edit{
			Kind:   kind,
			OldPos: c.P1,
			OldLen: c.Del,
			NewPos: c.P2,
			NewLen: c.Ins,
		})

		prevOld = c.P1 + c.Del
		prevNew = c.P2 + c.Ins
	}
	eqLen := old.Len() - prevOld
	for k := 0; k < eqLen; k++ {
		fwd[prevOld+k] = prevNew + k
		rev[prevNew+k] = prevOld + k
	}

	return edits, fwd, rev
}
