package page

import (
	"errors"
	"unicode/utf8"
)

// Range selects a span of text inside one element: from rune StartOffset in
// StartNode to rune EndOffset in EndNode, both text nodes under the same
// ancestor.
type Range struct {
	StartNode   *Node
	StartOffset int
	EndNode     *Node
	EndOffset   int
}

var errRangeDetached = errors.New("page: range nodes are not under the element")

// TextSpan locates one text node inside an element: Start is the rune
// offset of the node's first character in the element's text content.
type TextSpan struct {
	Node  *Node
	Start int
}

// TextSpans returns the element's text nodes with their offsets into
// TextContent. The walk counts the newlines TextContent inserts for <br>
// and block closes, so the offsets line up.
func (n *Node) TextSpans() []TextSpan {
	var spans []TextSpan
	offset := 0
	var walk func(cur *Node)
	walk = func(cur *Node) {
		if cur.kind == TextNode {
			spans = append(spans, TextSpan{Node: cur, Start: offset})
			offset += utf8.RuneCountInString(cur.text)
			return
		}
		if cur.tag == "br" {
			offset++
			return
		}
		for _, c := range cur.children {
			walk(c)
		}
		if blockTags[cur.tag] {
			offset++
		}
	}
	walk(n)
	return spans
}

// NewRange builds a range over the element's text nodes covering the rune
// span [start, end) of the element's text content. It fails when the span
// runs past the available text.
func NewRange(el *Node, start, end int) (*Range, error) {
	if end < start || start < 0 {
		return nil, errors.New("page: inverted range")
	}
	r := &Range{}
	for _, ts := range el.TextSpans() {
		n := utf8.RuneCountInString(ts.Node.text)
		if r.StartNode == nil && start < ts.Start+n {
			r.StartNode = ts.Node
			// A span starting on an inserted break clamps to the next node.
			r.StartOffset = max(start-ts.Start, 0)
		}
		if end <= ts.Start+n {
			r.EndNode = ts.Node
			r.EndOffset = max(end-ts.Start, 0)
			break
		}
	}
	if r.StartNode == nil || r.EndNode == nil {
		return nil, errors.New("page: range past end of text")
	}
	return r, nil
}

// globalOffset converts a (text node, rune offset) pair to a rune offset in
// el's text content. TextContent inserts newlines for breaks and block
// closes, so the same walk has to count them here.
func globalOffset(el, target *Node, off int) (int, error) {
	total := 0
	found := false
	var walk func(n *Node) bool
	walk = func(n *Node) bool {
		if n == target {
			total += off
			found = true
			return false
		}
		if n.kind == TextNode {
			total += utf8.RuneCountInString(n.text)
			return true
		}
		if n.tag == "br" {
			total++
			return true
		}
		for _, c := range n.children {
			if !walk(c) {
				return false
			}
		}
		if blockTags[n.tag] {
			total++
		}
		return true
	}
	walk(el)
	if !found {
		return 0, errRangeDetached
	}
	return total, nil
}

// ClientRects computes the viewport rects the range occupies inside el,
// one per laid-out line, scroll corrected. It fails when either endpoint is
// no longer under el, which callers treat as a signal to fall back to the
// element's own bounds.
func (r *Range) ClientRects(el *Node) ([]Rect, error) {
	start, err := globalOffset(el, r.StartNode, r.StartOffset)
	if err != nil {
		return nil, err
	}
	end, err := globalOffset(el, r.EndNode, r.EndOffset)
	if err != nil {
		return nil, err
	}
	return el.OffsetRects(start, end), nil
}
