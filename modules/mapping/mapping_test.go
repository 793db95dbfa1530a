package mapping

import (
	"testing"

	"github.com/jwiegley/git-merge-changelog/modules/entry"
)

func mustParse(s string) *entry.Log {
	return entry.Parse([]byte(s))
}

func TestExactMatchIdentity(t *testing.T) {
	log := mustParse("* First.\n\n* Second.\n")
	m := Build(log, log, false)
	for i := 0; i < log.Len(); i++ {
		j, ok := m.Get(i)
		if !ok || j != i {
			t.Errorf("Get(%d) = (%d, %v), want (%d, true)", i, j, ok, i)
		}
	}
}

func TestExactMatchReorderedDuplicates(t *testing.T) {
	from := mustParse("* Dup.\n\n* Dup.\n\n* Unique.\n")
	to := mustParse("* Dup.\n\n* Dup.\n\n* Unique.\n\n* New.\n")
	m := Build(from, to, false)
	for i := 0; i < from.Len(); i++ {
		j, ok := m.Get(i)
		if !ok {
			t.Fatalf("Get(%d): no binding", i)
		}
		if !from.At(i).Equal(to.At(j)) {
			t.Errorf("Get(%d) = %d, bound entries not equal", i, j)
		}
	}
	if _, ok := m.GetReverse(3); ok {
		t.Errorf("GetReverse(3) bound, want no binding for the new entry")
	}
}

func TestFuzzyMatch(t *testing.T) {
	from := mustParse("* Fix the frobnicator.\n")
	to := mustParse("* Fix the frobnicator, finally.\n")
	m := Build(from, to, false)
	j, ok := m.Get(0)
	if !ok || j != 0 {
		t.Errorf("Get(0) = (%d, %v), want (0, true)", j, ok)
	}
}

func TestNoMatch(t *testing.T) {
	from := mustParse("* Completely unrelated content here.\n")
	to := mustParse("* Totally different text over there.\n")
	m := Build(from, to, false)
	if _, ok := m.Get(0); ok {
		t.Errorf("Get(0) bound, want no match")
	}
}

func TestLazyFuzzyPass(t *testing.T) {
	from := mustParse("* Fix the frobnicator.\n")
	to := mustParse("* Fix the frobnicator, finally.\n")
	m := Build(from, to, true)
	if m.fuzzyDone {
		t.Fatalf("fuzzy pass ran eagerly despite lazy=true")
	}
	if _, ok := m.Get(0); !ok {
		t.Errorf("Get(0): expected fuzzy match on first access")
	}
	if !m.fuzzyDone {
		t.Errorf("fuzzy pass did not run after Get")
	}
}
