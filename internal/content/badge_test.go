package content_test

import (
	"testing"

	"vitae/internal/content"
)

// ─────────────────────────────────────────────────────────────
// Badge shorthand
// ─────────────────────────────────────────────────────────────

func TestApplyBadgeShorthand_Fires(t *testing.T) {
	before, badge, ok := content.ApplyBadgeShorthand("Skills: ::Go,")
	if !ok {
		t.Fatal("shorthand should fire on trailing ::label,")
	}
	if before != "Skills: " {
		t.Errorf("before text: %q", before)
	}
	if badge.Kind != content.KindBadge || badge.Text != "Go" {
		t.Errorf("badge: %+v", badge)
	}
	if badge.Attrs["color"] != content.DefaultBadgeColor {
		t.Errorf("badge should get the default color, got %q", badge.Attrs["color"])
	}
}

func TestApplyBadgeShorthand_DoesNotFire(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"no trailing comma", "::Go"},
		{"no marker", "plain text,"},
		{"empty label", "::,"},
		{"newline in label", "::a\nb,"},
		{"empty string", ""},
	}
	for _, tc := range cases {
		if _, _, ok := content.ApplyBadgeShorthand(tc.text); ok {
			t.Errorf("%s: shorthand fired on %q", tc.name, tc.text)
		}
	}
}

func TestApplyBadgeShorthand_UsesLastMarker(t *testing.T) {
	before, badge, ok := content.ApplyBadgeShorthand("a ::b c ::d,")
	if !ok {
		t.Fatal("shorthand should fire")
	}
	if before != "a ::b c " || badge.Text != "d" {
		t.Errorf("got before=%q label=%q", before, badge.Text)
	}
}

// ─────────────────────────────────────────────────────────────
// Badge escape state machine
// ─────────────────────────────────────────────────────────────

func badgeRun() content.Fragment {
	return content.Fragment{
		content.Text("skills "),
		content.Badge("Go", content.DefaultBadgeColor),
		content.Text(" and more"),
	}
}

func TestEscapeBadge_AtTrailingBoundary(t *testing.T) {
	inline := badgeRun()
	cursor := content.CursorPos{Node: 1, Offset: 2} // after "Go"

	out, pos, ok := content.EscapeBadge(inline, cursor, content.KeyArrowRight)
	if !ok {
		t.Fatal("escape should fire at the trailing boundary")
	}
	if pos.Node != 2 || pos.Offset != 0 {
		t.Errorf("cursor should land at start of next sibling, got %+v", pos)
	}
	if len(out) != len(inline) {
		t.Errorf("run length changed: %d", len(out))
	}
}

func TestEscapeBadge_MidBadgeDoesNotFire(t *testing.T) {
	inline := badgeRun()
	cursor := content.CursorPos{Node: 1, Offset: 1} // inside "Go"

	_, pos, ok := content.EscapeBadge(inline, cursor, content.KeyTab)
	if ok {
		t.Error("escape fired away from the trailing boundary")
	}
	if pos != cursor {
		t.Errorf("cursor moved: %+v", pos)
	}
}

func TestEscapeBadge_TrailingBadgeGetsSpace(t *testing.T) {
	inline := content.Fragment{
		content.Text("skills "),
		content.Badge("Go", content.DefaultBadgeColor),
	}
	cursor := content.CursorPos{Node: 1, Offset: 2}

	out, pos, ok := content.EscapeBadge(inline, cursor, content.KeySpace)
	if !ok {
		t.Fatal("escape should fire")
	}
	if len(out) != 3 {
		t.Fatalf("a landing space should be appended, got %d nodes", len(out))
	}
	last := out[2]
	if last.Kind != content.KindText || last.Text != " " {
		t.Errorf("appended node: %+v", last)
	}
	if pos.Node != 2 || pos.Offset != 1 {
		t.Errorf("cursor should sit after the space, got %+v", pos)
	}
	// input untouched
	if len(inline) != 2 {
		t.Error("EscapeBadge mutated its input")
	}
}

func TestEscapeBadge_NonEscapeKey(t *testing.T) {
	inline := badgeRun()
	cursor := content.CursorPos{Node: 1, Offset: 2}
	if _, _, ok := content.EscapeBadge(inline, cursor, content.EscapeKey("ArrowLeft")); ok {
		t.Error("ArrowLeft must not escape")
	}
}

func TestEscapeBadge_NotOnBadge(t *testing.T) {
	inline := badgeRun()
	cursor := content.CursorPos{Node: 0, Offset: 7} // end of leading text
	if _, _, ok := content.EscapeBadge(inline, cursor, content.KeyTab); ok {
		t.Error("escape fired on a text node")
	}
}

func TestEscapeBadge_MultibyteLabel(t *testing.T) {
	inline := content.Fragment{content.Badge("héllo", content.DefaultBadgeColor)}
	// boundary is measured in runes, not bytes
	cursor := content.CursorPos{Node: 0, Offset: 5}

	_, _, ok := content.EscapeBadge(inline, cursor, content.KeyArrowRight)
	if !ok {
		t.Error("rune-count boundary not recognized for multibyte label")
	}
}
