package rope

import "strings"

const (
	// maxChildren is the maximum children per internal node before splitting.
	maxChildren = 8

	// maxLeafLen is the maximum rune count stored in a single leaf.
	maxLeafLen = 512
)

// summary holds aggregated metrics for a subtree: rune count, byte count
// and newline count. Summaries let lookups descend the tree without
// touching leaf text.
type summary struct {
	runes    int
	bytes    int
	newlines int
}

func (s summary) add(other summary) summary {
	return summary{
		runes:    s.runes + other.runes,
		bytes:    s.bytes + other.bytes,
		newlines: s.newlines + other.newlines,
	}
}

func summarize(text []rune) summary {
	var s summary
	s.runes = len(text)
	for _, r := range text {
		s.bytes += runeLen(r)
		if r == '\n' {
			s.newlines++
		}
	}
	return s
}

func runeLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

// node is a node in the rope tree. Leaves (height == 0) hold text;
// internal nodes hold children plus per-child summaries for seeking.
type node struct {
	height    uint8
	summary   summary
	children  []*node
	childSums []summary
	text      []rune
}

func newLeaf(text []rune) *node {
	return &node{text: text, summary: summarize(text)}
}

func newInternal(children []*node) *node {
	if len(children) == 0 {
		return newLeaf(nil)
	}
	n := &node{
		height:    children[0].height + 1,
		children:  children,
		childSums: make([]summary, len(children)),
	}
	for i, child := range children {
		n.childSums[i] = child.summary
		n.summary = n.summary.add(child.summary)
	}
	return n
}

func (n *node) isLeaf() bool {
	return n.height == 0
}

// buildFromRunes builds a balanced tree from raw text, bottom-up.
func buildFromRunes(text []rune) *node {
	if len(text) == 0 {
		return newLeaf(nil)
	}
	var leaves []*node
	for i := 0; i < len(text); i += maxLeafLen {
		end := i + maxLeafLen
		if end > len(text) {
			end = len(text)
		}
		chunk := make([]rune, end-i)
		copy(chunk, text[i:end])
		leaves = append(leaves, newLeaf(chunk))
	}
	return buildFromNodes(leaves)
}

func buildFromNodes(nodes []*node) *node {
	if len(nodes) == 0 {
		return newLeaf(nil)
	}
	for len(nodes) > 1 {
		var parents []*node
		for i := 0; i < len(nodes); i += maxChildren {
			end := i + maxChildren
			if end > len(nodes) {
				end = len(nodes)
			}
			group := make([]*node, end-i)
			copy(group, nodes[i:end])
			parents = append(parents, newInternal(group))
		}
		nodes = parents
	}
	return nodes[0]
}

// split divides the subtree at a rune offset. The left result holds
// [0, offset), the right holds [offset, len).
func (n *node) split(offset int) (*node, *node) {
	if offset <= 0 {
		return newLeaf(nil), n
	}
	if offset >= n.summary.runes {
		return n, newLeaf(nil)
	}
	if n.isLeaf() {
		left := make([]rune, offset)
		copy(left, n.text[:offset])
		right := make([]rune, len(n.text)-offset)
		copy(right, n.text[offset:])
		return newLeaf(left), newLeaf(right)
	}

	var leftChildren, rightChildren []*node
	pos := 0
	for i, child := range n.children {
		childRunes := n.childSums[i].runes
		switch {
		case pos+childRunes <= offset:
			leftChildren = append(leftChildren, child)
		case pos >= offset:
			rightChildren = append(rightChildren, child)
		default:
			cl, cr := child.split(offset - pos)
			if cl.summary.runes > 0 {
				leftChildren = append(leftChildren, cl)
			}
			if cr.summary.runes > 0 {
				rightChildren = append(rightChildren, cr)
			}
		}
		pos += childRunes
	}
	return buildFromNodes(collapse(leftChildren)), buildFromNodes(collapse(rightChildren))
}

// collapse flattens single-child wrappers produced by splitting so the
// rebuilt tree stays shallow.
func collapse(nodes []*node) []*node {
	out := nodes[:0]
	for _, n := range nodes {
		for !n.isLeaf() && len(n.children) == 1 {
			n = n.children[0]
		}
		out = append(out, n)
	}
	return out
}

// concat joins two subtrees, keeping heights aligned.
func concat(left, right *node) *node {
	if left == nil || left.summary.runes == 0 {
		if right == nil {
			return newLeaf(nil)
		}
		return right
	}
	if right == nil || right.summary.runes == 0 {
		return left
	}

	if left.isLeaf() && right.isLeaf() {
		if len(left.text)+len(right.text) <= maxLeafLen {
			merged := make([]rune, 0, len(left.text)+len(right.text))
			merged = append(merged, left.text...)
			merged = append(merged, right.text...)
			return newLeaf(merged)
		}
		return newInternal([]*node{left, right})
	}

	for left.height < right.height {
		left = newInternal([]*node{left})
	}
	for right.height < left.height {
		right = newInternal([]*node{right})
	}

	all := make([]*node, 0, len(left.children)+len(right.children))
	if left.isLeaf() {
		all = append(all, left, right)
	} else {
		all = append(all, left.children...)
		all = append(all, right.children...)
	}
	if len(all) <= maxChildren {
		return newInternal(all)
	}
	var parents []*node
	for i := 0; i < len(all); i += maxChildren {
		end := i + maxChildren
		if end > len(all) {
			end = len(all)
		}
		parents = append(parents, newInternal(all[i:end]))
	}
	return buildFromNodes(parents)
}

// lineStart returns the rune offset at which the given line begins,
// i.e. the position just past the line-th newline.
func (n *node) lineStart(line int) int {
	if line <= 0 {
		return 0
	}
	if n.isLeaf() {
		seen := 0
		for i, r := range n.text {
			if r == '\n' {
				seen++
				if seen == line {
					return i + 1
				}
			}
		}
		return len(n.text)
	}
	offset := 0
	for i, child := range n.children {
		if n.childSums[i].newlines >= line {
			return offset + child.lineStart(line)
		}
		line -= n.childSums[i].newlines
		offset += n.childSums[i].runes
	}
	return n.summary.runes
}

func (n *node) appendTo(sb *strings.Builder) {
	if n.isLeaf() {
		sb.WriteString(string(n.text))
		return
	}
	for _, child := range n.children {
		child.appendTo(sb)
	}
}

// appendRange appends the text in the rune range [start, end).
func (n *node) appendRange(sb *strings.Builder, start, end int) {
	if start >= end {
		return
	}
	if n.isLeaf() {
		if start < 0 {
			start = 0
		}
		if end > len(n.text) {
			end = len(n.text)
		}
		sb.WriteString(string(n.text[start:end]))
		return
	}
	pos := 0
	for i, child := range n.children {
		childRunes := n.childSums[i].runes
		childEnd := pos + childRunes
		if childEnd <= start {
			pos = childEnd
			continue
		}
		if pos >= end {
			break
		}
		childStart := 0
		if start > pos {
			childStart = start - pos
		}
		childStop := childRunes
		if end < childEnd {
			childStop = end - pos
		}
		child.appendRange(sb, childStart, childStop)
		pos = childEnd
	}
}
