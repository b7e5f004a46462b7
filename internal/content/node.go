package content

import "encoding/json"

// Kind discriminates the closed set of content node variants.
type Kind string

const (
	KindParagraph  Kind = "paragraph"
	KindHeading    Kind = "heading"
	KindBulletList Kind = "bulletList"
	KindListItem   Kind = "listItem"
	KindText       Kind = "text"
	KindBadge      Kind = "badge"
	KindColumnPair Kind = "columnPair"
	KindColumn     Kind = "column"
	// KindUnknown carries node types the adapter does not understand.
	// The raw wire JSON is preserved so unknown nodes survive a
	// load/save round trip instead of being silently dropped.
	KindUnknown Kind = "unknown"
)

// Node is one node of a block's content tree. Exactly one shape per
// Kind: text/badge carry Text, heading carries Level, container kinds
// carry Children, unknown carries the original wire JSON.
type Node struct {
	Kind     Kind
	Text     string            // KindText and KindBadge
	Level    int               // KindHeading (1..6)
	Marks    []string          // inline marks on KindText (bold, italic, ...)
	Attrs    map[string]string // open attributes (badge color, ...)
	Children []Node

	raw json.RawMessage // original JSON for KindUnknown
}

// Fragment is an ordered sequence of sibling nodes. A Block's content
// is a Fragment of top-level nodes.
type Fragment []Node

// Paragraph builds a paragraph containing a single text run.
func Paragraph(text string) Node {
	return Node{Kind: KindParagraph, Children: []Node{Text(text)}}
}

// Heading builds a heading node. Levels outside 1..6 are clamped.
func Heading(level int, text string) Node {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	return Node{Kind: KindHeading, Level: level, Children: []Node{Text(text)}}
}

// Text builds a plain text run.
func Text(text string) Node {
	return Node{Kind: KindText, Text: text}
}

// Badge builds an inline badge with a label and color attribute.
func Badge(label, color string) Node {
	return Node{Kind: KindBadge, Text: label, Attrs: map[string]string{"color": color}}
}

// BulletList builds a bullet list where each item wraps one paragraph.
func BulletList(items ...string) Node {
	n := Node{Kind: KindBulletList}
	for _, it := range items {
		n.Children = append(n.Children, Node{
			Kind:     KindListItem,
			Children: []Node{Paragraph(it)},
		})
	}
	return n
}

// ColumnPair builds a two-column container. Column pairs may nest,
// which is what drives recursive split rendering.
func ColumnPair(left, right Fragment) Node {
	return Node{Kind: KindColumnPair, Children: []Node{
		{Kind: KindColumn, Children: left},
		{Kind: KindColumn, Children: right},
	}}
}

// Clone returns a deep copy of the node.
func (n Node) Clone() Node {
	out := n
	if n.Attrs != nil {
		out.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			out.Attrs[k] = v
		}
	}
	if n.Marks != nil {
		out.Marks = append([]string(nil), n.Marks...)
	}
	if n.Children != nil {
		out.Children = make([]Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	if n.raw != nil {
		out.raw = append(json.RawMessage(nil), n.raw...)
	}
	return out
}

// Clone returns a deep copy of the fragment.
func (f Fragment) Clone() Fragment {
	if f == nil {
		return nil
	}
	out := make(Fragment, len(f))
	for i, n := range f {
		out[i] = n.Clone()
	}
	return out
}

// PlainText flattens the node's text content, joining child runs.
func (n Node) PlainText() string {
	switch n.Kind {
	case KindText, KindBadge:
		return n.Text
	case KindParagraph, KindHeading, KindBulletList, KindListItem, KindColumnPair, KindColumn:
		var s string
		for i, c := range n.Children {
			if i > 0 && (n.Kind == KindBulletList || n.Kind == KindColumnPair) {
				s += "\n"
			}
			s += c.PlainText()
		}
		return s
	case KindUnknown:
		return ""
	default:
		return ""
	}
}
