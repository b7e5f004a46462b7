package content

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// wireNode is the type-tagged JSON shape shared with the editor widget.
type wireNode struct {
	Type    string            `json:"type"`
	Text    string            `json:"text,omitempty"`
	Marks   []string          `json:"marks,omitempty"`
	Attrs   map[string]string `json:"attrs,omitempty"`
	Content []json.RawMessage `json:"content,omitempty"`
}

// MarshalJSON encodes the node in the wire format. Unknown nodes are
// written back byte-for-byte from the JSON they were parsed from.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.Kind == KindUnknown {
		if n.raw == nil {
			return []byte(`{"type":"unknown"}`), nil
		}
		return n.raw, nil
	}

	w := wireNode{Type: string(n.Kind), Text: n.Text, Marks: n.Marks}
	if len(n.Attrs) > 0 || n.Kind == KindHeading {
		w.Attrs = make(map[string]string, len(n.Attrs)+1)
		for k, v := range n.Attrs {
			w.Attrs[k] = v
		}
	}
	if n.Kind == KindHeading {
		w.Attrs["level"] = strconv.Itoa(n.Level)
	}
	for _, c := range n.Children {
		raw, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		w.Content = append(w.Content, raw)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a wire node. Types outside the closed variant
// set become KindUnknown with the raw JSON retained.
func (n *Node) UnmarshalJSON(data []byte) error {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode content node: %w", err)
	}

	kind := Kind(w.Type)
	switch kind {
	case KindParagraph, KindHeading, KindBulletList, KindListItem,
		KindText, KindBadge, KindColumnPair, KindColumn:
		// recognized
	default:
		*n = Node{Kind: KindUnknown, raw: append(json.RawMessage(nil), data...)}
		return nil
	}

	out := Node{Kind: kind, Text: w.Text, Marks: w.Marks}
	if len(w.Attrs) > 0 {
		out.Attrs = make(map[string]string, len(w.Attrs))
		for k, v := range w.Attrs {
			out.Attrs[k] = v
		}
	}
	if kind == KindHeading {
		if lv, err := strconv.Atoi(out.Attrs["level"]); err == nil {
			out.Level = lv
		}
		delete(out.Attrs, "level")
		if len(out.Attrs) == 0 {
			out.Attrs = nil
		}
	}
	for _, rawChild := range w.Content {
		var c Node
		if err := c.UnmarshalJSON(rawChild); err != nil {
			return err
		}
		out.Children = append(out.Children, c)
	}
	*n = out
	return nil
}
