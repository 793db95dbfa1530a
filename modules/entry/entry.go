// Package entry parses an append-at-the-top changelog file into an ordered
// sequence of immutable paragraph-delimited entries.
//
// An entry boundary is a blank line whose following line is not a
// continuation (see Parse for the exact rule). The parser is lossless:
// concatenating the bytes of every returned entry reproduces the input
// exactly.
package entry

import (
	"bytes"

	"github.com/zeebo/blake3"
)

// Hash is a memoised content digest, used both to reject unequal entries
// quickly and as the key for exact-match lookups in the mapping builder.
type Hash [32]byte

// Entry is an immutable byte region borrowed from the buffer it was parsed
// from. Two entries are equal iff their byte sequences are equal; Hash is
// only a fast-path cache of that comparison.
type Entry struct {
	data    []byte
	hash    Hash
	deleted bool
}

// Deleted is the sentinel value the merge executor uses to mark a slot as
// removed without disturbing the positions of its neighbours. Write skips
// it.
var Deleted = &Entry{deleted: true}

func newEntry(data []byte) *Entry {
	return &Entry{data: data, hash: sum(data)}
}

// New wraps a freshly constructed byte slice as an Entry. Unlike the
// entries Parse produces, the returned entry does not share storage with
// any input file's buffer; callers use this for entries synthesised
// during a merge, such as the reattached body half of a paragraph split.
func New(data []byte) *Entry {
	return newEntry(data)
}

func sum(data []byte) Hash {
	return Hash(blake3.Sum256(data))
}

// Bytes returns the entry's underlying byte region. Callers must not
// mutate it; it is shared with the source buffer and, in some cases, with
// other Entry values.
func (e *Entry) Bytes() []byte {
	return e.data
}

// Len reports the number of bytes in the entry.
func (e *Entry) Len() int {
	return len(e.data)
}

// Hash returns the memoised digest of the entry's bytes.
func (e *Entry) Hash() Hash {
	return e.hash
}

// IsDeleted reports whether e is the Deleted sentinel.
func (e *Entry) IsDeleted() bool {
	return e == Deleted || e.deleted
}

// Equal reports whether two entries have byte-identical content. The hash
// comparison is a cheap rejection test before the authoritative byte
// comparison.
func (e *Entry) Equal(o *Entry) bool {
	if e == o {
		return true
	}
	if e == nil || o == nil {
		return false
	}
	if e.deleted || o.deleted {
		return e.deleted == o.deleted
	}
	return e.hash == o.hash && bytes.Equal(e.data, o.data)
}

// HasNUL reports whether the entry's bytes contain an embedded NUL. Such
// entries never fuzzy-match any other entry (see the similarity package).
func (e *Entry) HasNUL() bool {
	return bytes.IndexByte(e.data, 0) >= 0
}

// Log is the ordered, indexable sequence of entries parsed from one file.
type Log struct {
	Entries []*Entry
}

// Len reports the number of entries.
func (l *Log) Len() int {
	return len(l.Entries)
}

// At returns the entry at position i.
func (l *Log) At(i int) *Entry {
	return l.Entries[i]
}

// Bytes reproduces the original input by concatenating every entry's bytes
// in order.
func (l *Log) Bytes() []byte {
	var size int
	for _, e := range l.Entries {
		size += e.Len()
	}
	buf := make([]byte, 0, size)
	for _, e := range l.Entries {
		buf = append(buf, e.data...)
	}
	return buf
}

// isContinuationByte reports whether b is one of the bytes that keep a
// blank line attached to the entry preceding it (newline, tab or space).
func isContinuationByte(b byte) bool {
	return b == '\n' || b == '\t' || b == ' '
}

// Parse splits buf into an ordered sequence of entries on paragraph
// boundaries.
//
// An entry ends when a newline is followed immediately by another newline
// (a blank-line delimiter) whose own following byte exists and is not
// itself a newline, tab or space; the blank line stays with the entry that
// precedes it, and the next entry starts at that following, non-whitespace
// byte. Continuation lines (leading tab or space) and additional blank
// lines are swallowed into the current entry. End-of-buffer terminates the
// last entry. The empty buffer yields no entries.
func Parse(buf []byte) *Log {
	if len(buf) == 0 {
		return &Log{}
	}
	var entries []*Entry
	start := 0
	for i := 0; i < len(buf); i++ {
		if buf[i] != '\n' {
			continue
		}
		if i+2 >= len(buf) {
			continue
		}
		if buf[i+1] != '\n' {
			continue
		}
		if isContinuationByte(buf[i+2]) {
			continue
		}
		end := i + 2
		entries = append(entries, newEntry(buf[start:end]))
		start = end
		i = end - 1
	}
	if start < len(buf) {
		entries = append(entries, newEntry(buf[start:]))
	}
	return &Log{Entries: entries}
}
