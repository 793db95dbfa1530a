package split

import "testing"

func TestTryFindsAccidentalMerge(t *testing.T) {
	old := []byte("2024-01-01  Author\n\n\t* Fix the frobnicator so it handles empty input.\n")
	merged := []byte("2024-01-01  Author\n\n\t* Add the new widget entry point.\n\n\t* Fix the frobnicator so it handles empty input.\n")
	r := Try(old, merged)
	if !r.Found {
		t.Fatalf("Try() did not find a split point")
	}
	wantHead := "2024-01-01  Author\n\n\t* Add the new widget entry point.\n\n"
	wantTail := "2024-01-01  Author\n\n\t* Fix the frobnicator so it handles empty input.\n"
	if string(r.Head) != wantHead {
		t.Errorf("Head = %q, want %q", r.Head, wantHead)
	}
	if string(r.Tail) != wantTail {
		t.Errorf("Tail = %q, want %q", r.Tail, wantTail)
	}
}

func TestTrySplitsAtBestOfSeveralParagraphs(t *testing.T) {
	old := []byte("2024-01-01  Author\n\n\t* Keep the old behaviour for empty logs.\n")
	merged := []byte("2024-01-01  Author\n\n\t* First added note.\n\n\t* Second added note.\n\n\t* Keep the old behaviour for empty logs.\n")
	r := Try(old, merged)
	if !r.Found {
		t.Fatalf("Try() did not find a split point")
	}
	wantHead := "2024-01-01  Author\n\n\t* First added note.\n\n\t* Second added note.\n\n"
	if string(r.Head) != wantHead {
		t.Errorf("Head = %q, want %q", r.Head, wantHead)
	}
}

func TestTryNoSplitWhenTitlesDiffer(t *testing.T) {
	old := []byte("2024-01-01  Author\n\n\t* Fix the frobnicator.\n")
	notMerged := []byte("2024-02-02  Someone Else\n\n\t* Fix the frobnicator, and also handle widgets.\n")
	r := Try(old, notMerged)
	if r.Found {
		t.Errorf("Try() found a split point despite differing titles")
	}
}

func TestTryNoSplitWhenBodyUnrelated(t *testing.T) {
	old := []byte("2024-01-01  Author\n\n\t* Fix the frobnicator.\n")
	unrelated := []byte("2024-01-01  Author\n\n\t* Completely different unrelated content entirely.\n")
	r := Try(old, unrelated)
	if r.Found {
		t.Errorf("Try() found a split point for unrelated body content")
	}
}

func TestTryNoSplitWhenOldHasNoBody(t *testing.T) {
	old := []byte("2024-01-01  Author\n\n")
	merged := []byte("2024-01-01  Author\n\n\t* Something new.\n")
	r := Try(old, merged)
	if r.Found {
		t.Errorf("Try() found a split point against a body-less entry")
	}
}
