// Package rope implements the editable text container behind the editor.
// Text is stored as a balanced tree whose nodes carry rune, byte and
// newline counts, so per-keystroke insert, delete and line lookup stay
// logarithmic in the document size instead of rewriting a flat buffer.
//
// A Rope is an immutable value: every mutation returns a new Rope that
// shares structure with the original. All offsets are rune offsets.
package rope

import (
	"io"
	"strings"
)

// Rope holds a document as a balanced tree of text chunks.
type Rope struct {
	root *node
}

// New returns an empty rope.
func New() Rope {
	return Rope{root: newLeaf(nil)}
}

// FromString builds a rope from s.
func FromString(s string) Rope {
	if s == "" {
		return New()
	}
	return Rope{root: buildFromRunes([]rune(s))}
}

// FromReader builds a rope from UTF-8 text read off r.
func FromReader(r io.Reader) (Rope, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Rope{}, err
	}
	return FromString(string(data)), nil
}

// Len returns the total rune count.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.runes
}

// Bytes returns the total UTF-8 byte count.
func (r Rope) Bytes() int {
	if r.root == nil {
		return 0
	}
	return r.root.summary.bytes
}

// LineCount returns the number of lines. An empty rope still has one,
// empty, line; a trailing newline opens a final empty line.
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.summary.newlines + 1
}

// LineStart returns the rune offset of the first character of line i.
// Out-of-range lines map to the end of the text.
func (r Rope) LineStart(i int) int {
	if r.root == nil || i <= 0 {
		return 0
	}
	if i >= r.LineCount() {
		return r.Len()
	}
	return r.root.lineStart(i)
}

// Line returns the text of line i including its trailing newline, if
// any. Out-of-range lines return "".
func (r Rope) Line(i int) string {
	if r.root == nil || i < 0 || i >= r.LineCount() {
		return ""
	}
	start := r.LineStart(i)
	end := r.Len()
	if i+1 < r.LineCount() {
		end = r.LineStart(i + 1)
	}
	return r.Slice(start, end)
}

// Slice returns the text in the rune range [start, end), clamped to the
// rope bounds.
func (r Rope) Slice(start, end int) string {
	if r.root == nil {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end > r.Len() {
		end = r.Len()
	}
	if start >= end {
		return ""
	}
	var sb strings.Builder
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// String returns the full text.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.Grow(r.Bytes())
	r.root.appendTo(&sb)
	return sb.String()
}

// Insert returns a rope with s inserted at the given rune offset.
// Offsets past the end append.
func (r Rope) Insert(offset int, s string) Rope {
	if s == "" {
		return r
	}
	if r.root == nil || r.Len() == 0 {
		return FromString(s)
	}
	mid := buildFromRunes([]rune(s))
	if offset <= 0 {
		return Rope{root: concat(mid, r.root)}
	}
	if offset >= r.Len() {
		return Rope{root: concat(r.root, mid)}
	}
	left, right := r.root.split(offset)
	return Rope{root: concat(concat(left, mid), right)}
}

// InsertRune returns a rope with a single rune inserted at offset.
func (r Rope) InsertRune(offset int, ch rune) Rope {
	return r.Insert(offset, string(ch))
}

// Delete returns a rope with the rune range [start, end) removed,
// clamped to the rope bounds.
func (r Rope) Delete(start, end int) Rope {
	if r.root == nil || start >= end {
		return r
	}
	n := r.Len()
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if start >= n || start >= end {
		return r
	}
	if start == 0 && end == n {
		return New()
	}
	left, rest := r.root.split(start)
	_, right := rest.split(end - start)
	return Rope{root: concat(left, right)}
}

// IsEmpty reports whether the rope contains no text.
func (r Rope) IsEmpty() bool {
	return r.Len() == 0
}
