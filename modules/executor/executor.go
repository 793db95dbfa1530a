// Package executor applies an ancestor-to-modified edit script to a
// mainstream entry log, using an ancestor-to-mainstream mapping to decide,
// for every edit, whether it can be replayed unambiguously or must be
// surfaced as a conflict.
package executor

import (
	"github.com/jwiegley/git-merge-changelog/modules/editscript"
	"github.com/jwiegley/git-merge-changelog/modules/entry"
	"github.com/jwiegley/git-merge-changelog/modules/mapping"
	"github.com/jwiegley/git-merge-changelog/modules/similarity"
	"github.com/jwiegley/git-merge-changelog/modules/split"
)

// Conflict is a pair of entry runs that could not be reconciled
// automatically; either side may be empty, but not both.
type Conflict struct {
	Ancestor []*entry.Entry
	Modified []*entry.Entry
}

// Result is the outcome of a merge.
type Result struct {
	Entries   []*entry.Entry
	Conflicts []Conflict
}

type executor struct {
	a, m, u *entry.Log
	am      *mapping.Mapping

	revAU []int // U index -> A index, or -1

	slots      []*entry.Entry
	insertions map[int][]*entry.Entry
	conflicts  []Conflict
}

// Run merges a (ancestor), m (mainstream) and u (the user's modified copy)
// by replaying the edit script from a to u against m.
func Run(a, m, u *entry.Log) Result {
	ex := &executor{
		a:          a,
		m:          m,
		u:          u,
		am:         mapping.Build(a, m, true),
		slots:      append([]*entry.Entry(nil), m.Entries...),
		insertions: make(map[int][]*entry.Entry),
	}

	edits, _, revAU := editscript.Build(a, u)
	ex.revAU = revAU

	for _, e := range edits {
		switch e.Kind {
		case editscript.Addition:
			ex.applyAddition(e)
		case editscript.Removal:
			ex.applyRemoval(e)
		case editscript.Change:
			ex.applyChange(e)
		}
	}

	return ex.finish()
}

func (ex *executor) finish() Result {
	out := make([]*entry.Entry, 0, len(ex.slots))
	for k := 0; k <= len(ex.slots); k++ {
		out = append(out, ex.insertions[k]...)
		if k < len(ex.slots) && !ex.slots[k].IsDeleted() {
			out = append(out, ex.slots[k])
		}
	}
	return Result{Entries: out, Conflicts: ex.conflicts}
}

func (ex *executor) insertBefore(k int, items []*entry.Entry) {
	ex.insertions[k] = append(ex.insertions[k], items...)
}

func (ex *executor) addConflict(ancestor, modified []*entry.Entry) {
	ex.conflicts = append(ex.conflicts, Conflict{Ancestor: ancestor, Modified: modified})
}

// applyAddition handles an addition edit: a run of entries that exists in
// the modified copy with no ancestor counterpart.
func (ex *executor) applyAddition(e editscript.Edit) {
	j1, j2 := e.NewPos, e.NewPos+e.NewLen-1
	added := ex.u.Entries[j1 : j2+1]

	if j1 == 0 {
		ex.insertBefore(0, added)
		return
	}

	iBefore := ex.revAU[j1-1]
	var iAfter int
	if j2+1 == ex.u.Len() {
		iAfter = ex.a.Len()
	} else {
		iAfter = ex.revAU[j2+1]
	}
	if iBefore < 0 || iAfter < 0 || iAfter != iBefore+1 {
		ex.addConflict(nil, added)
		return
	}

	kBefore, okBefore := ex.am.Get(iBefore)
	var kAfter int
	okAfter := true
	if iAfter == ex.a.Len() {
		kAfter = ex.m.Len()
	} else {
		kAfter, okAfter = ex.am.Get(iAfter)
	}
	if !okBefore || !okAfter || kAfter != kBefore+1 {
		ex.addConflict(nil, added)
		return
	}
	ex.insertBefore(kAfter, added)
}

// applyRemoval handles a removal edit: a run of ancestor entries with no
// counterpart in the modified copy. Each entry is removed or conflicted
// independently.
func (ex *executor) applyRemoval(e editscript.Edit) {
	i1, i2 := e.OldPos, e.OldPos+e.OldLen-1
	for i := i1; i <= i2; i++ {
		k, ok := ex.am.Get(i)
		if ok && ex.a.At(i).Equal(ex.m.At(k)) {
			ex.slots[k] = entry.Deleted
		} else {
			ex.addConflict([]*entry.Entry{ex.a.At(i)}, nil)
		}
	}
}

// applyChange handles a change edit, dispatching to the first structural
// interpretation that applies: an accidentally-merged top entry, a simple
// change (in-place edits plus additions), a wholesale replacement of a run
// that survived untouched in the mainstream, or a conflict.
func (ex *executor) applyChange(e editscript.Edit) {
	i1, i2 := e.OldPos, e.OldPos+e.OldLen-1
	j1, j2 := e.NewPos, e.NewPos+e.NewLen-1

	numChanged := i2 - i1 + 1
	numAdded := (j2 - j1 + 1) - numChanged
	offset := j2 - i2 // aligns i with its natural U partner i+offset

	// The "simple" interpretations require the changed run to have grown or
	// kept its size; a run that shrank is always a big change.
	if numAdded >= 0 {
		if j1 == 0 && ex.trySimpleMergedAtTop(i1, i2, j1, numAdded, offset) {
			return
		}
		if ex.pairsSimilar(i1, i2, offset) {
			ex.applySimpleChange(i1, i2, j1, numAdded, offset)
			return
		}
	}
	if ex.tryBigChangeUnchanged(i1, i2, j1, j2) {
		return
	}
	ex.addConflict(
		append([]*entry.Entry(nil), ex.a.Entries[i1:i2+1]...),
		append([]*entry.Entry(nil), ex.u.Entries[j1:j2+1]...),
	)
}

// pairsSimilar reports whether similarity(A[i], U[i+offset]) is at least
// similarity.Match for every i in [i1,i2].
func (ex *executor) pairsSimilar(i1, i2, offset int) bool {
	for i := i1; i <= i2; i++ {
		if similarity.Ratio(ex.a.At(i).Bytes(), ex.u.At(i+offset).Bytes(), similarity.Match) < similarity.Match {
			return false
		}
	}
	return true
}

// trySimpleMergedAtTop handles the merged-top-entry form: the entry aligned with
// A[i1] is really the old entry with one or more new paragraphs accidentally
// glued in between its title and its body, under that single title.
func (ex *executor) trySimpleMergedAtTop(i1, i2, j1, numAdded, offset int) bool {
	r := split.Try(ex.a.At(i1).Bytes(), ex.u.At(i1+offset).Bytes())
	if !r.Found {
		return false
	}
	if !ex.pairsSimilar(i1+1, i2, offset) {
		return false
	}

	prepend := make([]*entry.Entry, 0, 1+numAdded)
	prepend = append(prepend, entry.New(r.Head))
	prepend = append(prepend, ex.u.Entries[j1:j1+numAdded]...)
	ex.insertBefore(0, prepend)

	ex.singleChange(i1, entry.New(r.Tail))
	for i := i1 + 1; i <= i2; i++ {
		ex.singleChange(i, ex.u.At(i+offset))
	}
	return true
}

// applySimpleChange handles a change whose aligned pairs are all similar
// enough to be ordinary edits, with some entries added alongside them.
func (ex *executor) applySimpleChange(i1, i2, j1, numAdded, offset int) {
	if j1 == 0 {
		ex.insertBefore(0, ex.u.Entries[j1:j1+numAdded])
		ex.applySingleEntryChanges(i1, i2, offset)
		return
	}

	iBefore := ex.revAU[j1-1]
	kBefore, linear := -1, false
	if iBefore >= 0 {
		if k, ok := ex.am.Get(iBefore); ok {
			kBefore = k
			linear = true
			numChanged := i2 - i1 + 1
			for i := iBefore + 1; i <= iBefore+numChanged; i++ {
				kk, ok := ex.am.Get(i)
				if !ok || kk != kBefore+(i-iBefore) {
					linear = false
					break
				}
			}
		}
	}

	if linear {
		ex.insertBefore(kBefore+1, ex.u.Entries[j1:j1+numAdded])
	}
	// When not linear, the new entries' insertion point can't be placed
	// with confidence, so they are simply not emitted; only the aligned
	// changed pairs are replayed.
	ex.applySingleEntryChanges(i1, i2, offset)
}

// applySingleEntryChanges replays each aligned pair (A[i], U[i+offset])
// as an independent single-entry modification.
func (ex *executor) applySingleEntryChanges(i1, i2, offset int) {
	for i := i1; i <= i2; i++ {
		ex.singleChange(i, ex.u.At(i+offset))
	}
}

// singleChange is the three-way test every single-entry modification goes
// through: replace the mainstream slot if the entry survived there
// unchanged, do nothing if the modified side made no real change,
// otherwise conflict.
func (ex *executor) singleChange(i int, content *entry.Entry) {
	a := ex.a.At(i)
	if k, ok := ex.am.Get(i); ok && a.Equal(ex.m.At(k)) {
		ex.slots[k] = content
		return
	}
	if a.Equal(content) {
		return
	}
	ex.addConflict([]*entry.Entry{a}, []*entry.Entry{content})
}

// tryBigChangeUnchanged handles a big change whose whole ancestor run is still
// present, consecutive and byte-identical in the mainstream, so the
// modified run can simply replace it wholesale.
func (ex *executor) tryBigChangeUnchanged(i1, i2, j1, j2 int) bool {
	k1, ok := ex.am.Get(i1)
	if !ok {
		return false
	}
	for i := i1; i <= i2; i++ {
		k, ok := ex.am.Get(i)
		if !ok || k != k1+(i-i1) || !ex.a.At(i).Equal(ex.m.At(k)) {
			return false
		}
	}
	ex.insertBefore(k1, append([]*entry.Entry(nil), ex.u.Entries[j1:j2+1]...))
	for i := i1; i <= i2; i++ {
		ex.slots[k1+(i-i1)] = entry.Deleted
	}
	return true
}
