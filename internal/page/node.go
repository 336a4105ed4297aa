// Package page is the in-memory host document the engine scans and
// decorates: an element/text-node tree with computed styles, bounds, scroll
// state and events. Hosts (the editor, tests) build a Document; the engine
// never owns it.
package page

import "strings"

// Kind distinguishes element nodes from text nodes.
type Kind int

const (
	ElementNode Kind = iota
	TextNode
)

// Event is delivered to node listeners.
type Event struct {
	Type   string
	Target *Node
	// Rune carries the typed character for "input" events, 0 otherwise.
	Rune rune
}

// Node is one node in the document tree.
type Node struct {
	kind     Kind
	tag      string
	text     string // text nodes only
	value    string // form controls only
	caret    int    // rune offset of the caret within the editable text
	attrs    map[string]string
	style    Style
	bounds   Rect
	scrollX  float64
	scrollY  float64
	parent   *Node
	children []*Node
	doc      *Document

	// CrossOrigin marks a subtree the scanner may not enter.
	CrossOrigin bool

	listeners map[string][]func(Event)
}

// Document is a node tree plus mutation observation.
type Document struct {
	root      *Node
	observers []func()
	Hostname  string
}

// NewDocument returns a document with an empty root element.
func NewDocument(hostname string) *Document {
	d := &Document{Hostname: hostname}
	d.root = NewElement("body")
	d.root.doc = d
	return d
}

// Root returns the document's root element.
func (d *Document) Root() *Node { return d.root }

// Observe registers a callback invoked after every structural or attribute
// mutation, mirroring a mutation observer.
func (d *Document) Observe(fn func()) {
	d.observers = append(d.observers, fn)
}

func (d *Document) mutated() {
	for _, fn := range d.observers {
		fn()
	}
}

// Walk visits every element under root in document order. Subtrees marked
// cross-origin are skipped entirely. The visit function returns false to
// prune a subtree.
func (d *Document) Walk(visit func(*Node) bool) {
	var walk func(n *Node)
	walk = func(n *Node) {
		if n.CrossOrigin {
			return
		}
		if n.kind == ElementNode && !visit(n) {
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(d.root)
}

// NewElement returns a detached element node.
func NewElement(tag string) *Node {
	return &Node{
		kind:      ElementNode,
		tag:       strings.ToLower(tag),
		attrs:     make(map[string]string),
		listeners: make(map[string][]func(Event)),
	}
}

// NewText returns a detached text node.
func NewText(text string) *Node {
	return &Node{kind: TextNode, text: text}
}

// Kind returns the node kind.
func (n *Node) Kind() Kind { return n.kind }

// Tag returns the element's lowercased tag name.
func (n *Node) Tag() string { return n.tag }

// Parent returns the parent node, nil for detached nodes and the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list.
func (n *Node) Children() []*Node { return n.children }

// Document returns the owning document, nil while detached.
func (n *Node) Document() *Document { return n.doc }

// IsConnected reports whether the node is reachable from a document root.
func (n *Node) IsConnected() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.doc != nil && cur.doc.root == cur {
			return true
		}
	}
	return false
}

// AppendChild attaches child as the last child of n.
func (n *Node) AppendChild(child *Node) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	child.adopt(n.doc)
	n.children = append(n.children, child)
	if n.doc != nil {
		n.doc.mutated()
	}
}

// RemoveChild detaches child from n. Unknown children are a no-op.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			child.adopt(nil)
			if n.doc != nil {
				n.doc.mutated()
			}
			return
		}
	}
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

func (n *Node) adopt(doc *Document) {
	n.doc = doc
	for _, c := range n.children {
		c.adopt(doc)
	}
}

// Attr returns an attribute value, "" when absent.
func (n *Node) Attr(name string) string {
	return n.attrs[strings.ToLower(name)]
}

// SetAttr sets an attribute and notifies observers.
func (n *Node) SetAttr(name, value string) {
	n.attrs[strings.ToLower(name)] = value
	if n.doc != nil {
		n.doc.mutated()
	}
}

// RemoveAttr deletes an attribute and notifies observers.
func (n *Node) RemoveAttr(name string) {
	delete(n.attrs, strings.ToLower(name))
	if n.doc != nil {
		n.doc.mutated()
	}
}

// Value returns a form control's current value.
func (n *Node) Value() string { return n.value }

// SetValue replaces a form control's value. It does not dispatch an input
// event; hosts do that when the change came from the user.
func (n *Node) SetValue(v string) { n.value = v }

// Caret returns the caret's rune offset within the editable text.
func (n *Node) Caret() int { return n.caret }

// SetCaret moves the caret. Hosts keep this current as the user types.
func (n *Node) SetCaret(off int) { n.caret = off }

// Text returns a text node's content.
func (n *Node) Text() string { return n.text }

// SetText replaces a text node's content.
func (n *Node) SetText(t string) {
	n.text = t
	if n.doc != nil {
		n.doc.mutated()
	}
}

// TextContent concatenates the text nodes under n in document order. A <br>
// or the close of a block-level child contributes a newline, so offsets into
// the result line up with what the user sees.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.appendTextContent(&b)
	return strings.TrimRight(b.String(), "\n")
}

var blockTags = map[string]bool{"div": true, "p": true, "li": true, "blockquote": true, "pre": true}

func (n *Node) appendTextContent(b *strings.Builder) {
	if n.kind == TextNode {
		b.WriteString(n.text)
		return
	}
	if n.tag == "br" {
		b.WriteString("\n")
		return
	}
	for _, c := range n.children {
		c.appendTextContent(b)
	}
	if blockTags[n.tag] {
		b.WriteString("\n")
	}
}

// TextNodes returns the text nodes under n in document order.
func (n *Node) TextNodes() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		if cur.kind == TextNode {
			out = append(out, cur)
			return
		}
		for _, c := range cur.children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// AddEventListener registers a handler for an event type.
func (n *Node) AddEventListener(typ string, fn func(Event)) {
	if n.listeners == nil {
		n.listeners = make(map[string][]func(Event))
	}
	n.listeners[typ] = append(n.listeners[typ], fn)
}

// RemoveEventListeners drops every handler for an event type.
func (n *Node) RemoveEventListeners(typ string) {
	delete(n.listeners, typ)
}

// Dispatch delivers an event to n's listeners.
func (n *Node) Dispatch(typ string, r rune) {
	for _, fn := range n.listeners[typ] {
		fn(Event{Type: typ, Target: n, Rune: r})
	}
}
