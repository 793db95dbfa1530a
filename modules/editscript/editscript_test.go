package editscript

import (
	"testing"

	"github.com/jwiegley/git-merge-changelog/modules/entry"
)

func mustParse(s string) *entry.Log {
	return entry.Parse([]byte(s))
}

func TestBuildIdentity(t *testing.T) {
	log := mustParse("* First.\n\n* Second.\n")
	edits, fwd, rev := Build(log, log)
	if len(edits) != 0 {
		t.Errorf("Build(log, log) = %v, want no edits", edits)
	}
	for i, j := range fwd {
		if j != i {
			t.Errorf("fwd[%d] = %d, want %d", i, j, i)
		}
	}
	for j, i := range rev {
		if i != j {
			t.Errorf("rev[%d] = %d, want %d", j, i, j)
		}
	}
}

func TestBuildTopAddition(t *testing.T) {
	old := mustParse("* First.\n\n* Second.\n")
	newer := mustParse("* New.\n\n* First.\n\n* Second.\n")
	edits, fwd, _ := Build(old, newer)
	if len(edits) != 1 {
		t.Fatalf("Build() = %v, want 1 edit", edits)
	}
	e := edits[0]
	if e.Kind != Addition || e.NewPos != 0 || e.NewLen != 1 || e.OldLen != 0 {
		t.Errorf("Build() = %+v, want top addition of length 1", e)
	}
	if fwd[0] != 1 || fwd[1] != 2 {
		t.Errorf("fwd = %v, want [1 2]", fwd)
	}
}

func TestBuildRemoval(t *testing.T) {
	old := mustParse("* First.\n\n* Second.\n")
	newer := mustParse("* Second.\n")
	edits, fwd, _ := Build(old, newer)
	if len(edits) != 1 {
		t.Fatalf("Build() = %v, want 1 edit", edits)
	}
	e := edits[0]
	if e.Kind != Removal || e.OldPos != 0 || e.OldLen != 1 || e.NewLen != 0 {
		t.Errorf("Build() = %+v, want removal of old entry 0", e)
	}
	if fwd[0] != -1 {
		t.Errorf("fwd[0] = %d, want -1 (removed)", fwd[0])
	}
	if fwd[1] != 0 {
		t.Errorf("fwd[1] = %d, want 0", fwd[1])
	}
}

func TestBuildChange(t *testing.T) {
	old := mustParse("* First.\n")
	newer := mustParse("* First, revised.\n")
	edits, _, _ := Build(old, newer)
	if len(edits) != 1 {
		t.Fatalf("Build() = %v, want 1 edit", edits)
	}
	if edits[0].Kind != Change {
		t.Errorf("Build() = %+v, want change", edits[0])
	}
}
