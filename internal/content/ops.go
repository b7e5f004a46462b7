package content

import "log"

// ─────────────────────────────────────────────────────────────
// Adapter operations — bridge between the editor widget and the
// block content tree. All operations are copy-on-write: the input
// fragment is never mutated.
// ─────────────────────────────────────────────────────────────

// InsertAt inserts a node among the fragment's top-level siblings.
// Out-of-range positions are clamped, never fatal.
func InsertAt(f Fragment, pos int, n Node) Fragment {
	if pos < 0 {
		pos = 0
	}
	if pos > len(f) {
		pos = len(f)
	}
	out := make(Fragment, 0, len(f)+1)
	out = append(out, f[:pos]...)
	out = append(out, n)
	out = append(out, f[pos:]...)
	return out
}

// DeleteNodeAt removes the top-level node enclosing pos. When the
// position cannot be resolved the fragment is returned unchanged —
// logged, not an error, to tolerate races with concurrent edits.
func DeleteNodeAt(f Fragment, pos int) Fragment {
	if pos < 0 || pos >= len(f) {
		log.Printf("[CONTENT] delete: position %d out of range (len %d), ignoring", pos, len(f))
		return f
	}
	out := make(Fragment, 0, len(f)-1)
	out = append(out, f[:pos]...)
	out = append(out, f[pos+1:]...)
	return out
}

// UpdateNodeAttributes partial-merges attrs onto a copy of the node.
// Existing attributes not named in attrs are kept.
func UpdateNodeAttributes(n Node, attrs map[string]string) Node {
	out := n.Clone()
	if out.Attrs == nil {
		out.Attrs = make(map[string]string, len(attrs))
	}
	for k, v := range attrs {
		out.Attrs[k] = v
	}
	return out
}
