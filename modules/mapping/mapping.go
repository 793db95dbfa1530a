// Package mapping builds a partial bijection between the entries of two
// changelog versions: an older log and a newer one derived from it.
//
// Each entry in the older log is bound to at most one entry in the newer
// log, and vice versa. A binding is either exact (byte-identical content)
// or fuzzy (similarity score at or above similarity.Match). Once an entry
// is bound, or decided to have no match, that decision is never revisited:
// the mapping is built monotonically.
package mapping

import (
	"github.com/jwiegley/git-merge-changelog/modules/entry"
	"github.com/jwiegley/git-merge-changelog/modules/similarity"
)

const (
	uncomputed = -2
	none       = -1
)

// Mapping is a partial bijection between the positions of a "from" log and
// a "to" log.
type Mapping struct {
	from, to   *entry.Log
	fwd        []int // from index -> to index, or none/uncomputed
	rev        []int // to index -> from index, or none/uncomputed
	fuzzyDone  bool
	fuzzyLazy  bool
}

// Build computes the exact-match pass eagerly. When lazy is true (the
// default posture for callers that may never need most bindings), the
// fuzzy-match pass is deferred until the first call to Get or GetReverse,
// which then runs it for every remaining position; when lazy is false, it
// runs immediately.
func Build(from, to *entry.Log, lazy bool) *Mapping {
	m := &Mapping{
		from:      from,
		to:        to,
		fwd:       make([]int, from.Len()),
		rev:       make([]int, to.Len()),
		fuzzyLazy: lazy,
	}
	for i := range m.fwd {
		m.fwd[i] = uncomputed
	}
	for j := range m.rev {
		m.rev[j] = uncomputed
	}
	m.exactPass()
	if !lazy {
		m.fuzzyPass()
	}
	return m
}

// bind records a monotonic, mutual binding between from-index i and
// to-index j. Re-binding an already-bound position to a different index is
// a programmer error.
func (m *Mapping) bind(i, j int) {
	if m.fwd[i] != uncomputed && m.fwd[i] != j {
		panic("mapping: attempted to re-bind an already-bound from-index")
	}
	if m.rev[j] != uncomputed && m.rev[j] != i {
		panic("mapping: attempted to re-bind an already-bound to-index")
	}
	m.fwd[i] = j
	m.rev[j] = i
}

// exactPass binds entries whose content is byte-identical, processing the
// "from" log from its most recent entry backward. Duplicate content is
// common in changelogs (boilerplate release-note paragraphs, repeated
// section headers); walking both logs from the end and consuming
// candidates off the tail of each hash bucket pairs the k-th-most-recent
// duplicate in "from" with the k-th-most-recent duplicate in "to", instead
// of garbling the pairing across unrelated occurrences.
func (m *Mapping) exactPass() {
	byHash := make(map[entry.Hash][]int, m.to.Len())
	for j := 0; j < m.to.Len(); j++ {
		h := m.to.At(j).Hash()
		byHash[h] = append(byHash[h], j)
	}
	for i := m.from.Len() - 1; i >= 0; i-- {
		fe := m.from.At(i)
		h := fe.Hash()
		cands := byHash[h]
		for len(cands) > 0 {
			j := cands[len(cands)-1]
			cands = cands[:len(cands)-1]
			if fe.Equal(m.to.At(j)) {
				m.bind(i, j)
				break
			}
		}
		byHash[h] = cands
	}
}

// fuzzyPass resolves every remaining uncomputed from-position, processing
// them in the same descending (latest-first) order as exactPass. For each
// one it finds the still-free to-entry maximising similarity, then
// performs the reverse lookup from that to-entry back across every
// still-free from-entry: the binding only survives if each is the other's
// best match. This mutual-best-match check is what keeps a slightly-edited
// entry from being stolen by an unrelated later entry that happens to be
// more similar to something else.
func (m *Mapping) fuzzyPass() {
	if m.fuzzyDone {
		return
	}
	m.fuzzyDone = true

	for i := m.from.Len() - 1; i >= 0; i-- {
		if m.fwd[i] != uncomputed {
			continue
		}
		fe := m.from.At(i)

		bestJ := -1
		bestScore := 0.0
		for j := 0; j < m.to.Len(); j++ {
			if m.rev[j] != uncomputed {
				continue
			}
			score := similarity.Ratio(fe.Bytes(), m.to.At(j).Bytes(), bestScore)
			if score > bestScore {
				bestScore = score
				bestJ = j
			}
		}
		if bestJ == -1 || bestScore < similarity.Match {
			m.fwd[i] = none
			continue
		}

		te := m.to.At(bestJ)
		bestI := -1
		bestIScore := 0.0
		for ip := 0; ip < m.from.Len(); ip++ {
			// Entries already decided to have no match still compete here:
			// only an entry bound elsewhere is out of the running.
			if ip != i && m.fwd[ip] >= 0 {
				continue
			}
			score := similarity.Ratio(m.from.At(ip).Bytes(), te.Bytes(), bestIScore)
			if score > bestIScore {
				bestIScore = score
				bestI = ip
			}
		}

		if bestIScore >= similarity.Match && bestI == i {
			m.bind(i, bestJ)
		} else {
			m.fwd[i] = none
		}
	}

	for j := range m.rev {
		if m.rev[j] == uncomputed {
			m.rev[j] = none
		}
	}
}

func (m *Mapping) ensureFuzzy() {
	if m.fuzzyLazy && !m.fuzzyDone {
		m.fuzzyPass()
	}
}

// Get returns the to-index bound to from-index i, and whether a binding
// exists at all.
func (m *Mapping) Get(i int) (int, bool) {
	m.ensureFuzzy()
	j := m.fwd[i]
	if j < 0 {
		return 0, false
	}
	return j, true
}

// GetReverse returns the from-index bound to to-index j, and whether a
// binding exists at all.
func (m *Mapping) GetReverse(j int) (int, bool) {
	m.ensureFuzzy()
	i := m.rev[j]
	if i < 0 {
		return 0, false
	}
	return i, true
}

// Len reports the number of positions in the "from" log.
func (m *Mapping) Len() int {
	return len(m.fwd)
}

// ToLen reports the number of positions in the "to" log.
func (m *Mapping) ToLen() int {
	return len(m.rev)
}
