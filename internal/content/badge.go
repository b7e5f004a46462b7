package content

import (
	"strings"
	"unicode/utf8"
)

// ─────────────────────────────────────────────────────────────
// Badge behavior: shorthand creation and cursor escape
// ─────────────────────────────────────────────────────────────

// DefaultBadgeColor is applied to shorthand-created badges; the user
// recolors them afterwards via UpdateNodeAttributes.
const DefaultBadgeColor = "#6366f1"

// EscapeKey is a forward-navigation key pressed inside a badge.
type EscapeKey string

const (
	KeyArrowRight EscapeKey = "ArrowRight"
	KeyTab        EscapeKey = "Tab"
	KeySpace      EscapeKey = "Space"
)

// CursorPos addresses an inline position: index of the inline node
// within its parent, plus a rune offset inside that node's text.
type CursorPos struct {
	Node   int `json:"node"`
	Offset int `json:"offset"`
}

// ApplyBadgeShorthand checks typed inline text for the trailing
// pattern "::<label>," and, when present, converts it into a badge.
// It returns the text preceding the pattern, the badge node, and
// whether the conversion fired. The label must be non-empty.
func ApplyBadgeShorthand(text string) (before string, badge Node, ok bool) {
	if !strings.HasSuffix(text, ",") {
		return "", Node{}, false
	}
	body := strings.TrimSuffix(text, ",")
	idx := strings.LastIndex(body, "::")
	if idx < 0 {
		return "", Node{}, false
	}
	label := body[idx+2:]
	if label == "" || strings.Contains(label, "\n") {
		return "", Node{}, false
	}
	return body[:idx], Badge(label, DefaultBadgeColor), true
}

// EscapeBadge implements the badge escape state machine. Given the
// inline siblings of a paragraph, the node index and rune offset of
// the cursor, and the pressed key, it decides whether the cursor
// escapes the badge.
//
// The transition fires only when the cursor sits at the badge's
// trailing boundary. If no sibling follows the badge, a single space
// is appended so the cursor has a landing spot. The returned fragment
// is a copy; the input is never mutated.
func EscapeBadge(inline Fragment, cursor CursorPos, key EscapeKey) (Fragment, CursorPos, bool) {
	switch key {
	case KeyArrowRight, KeyTab, KeySpace:
	default:
		return inline, cursor, false
	}
	if cursor.Node < 0 || cursor.Node >= len(inline) {
		return inline, cursor, false
	}
	badge := inline[cursor.Node]
	if badge.Kind != KindBadge {
		return inline, cursor, false
	}
	if cursor.Offset != utf8.RuneCountInString(badge.Text) {
		// not at the trailing boundary: no transition
		return inline, cursor, false
	}

	out := inline.Clone()
	if cursor.Node == len(out)-1 {
		out = append(out, Text(" "))
		return out, CursorPos{Node: cursor.Node + 1, Offset: 1}, true
	}
	return out, CursorPos{Node: cursor.Node + 1, Offset: 0}, true
}
