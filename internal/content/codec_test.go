package content_test

import (
	"encoding/json"
	"strings"
	"testing"

	"vitae/internal/content"
)

// ─────────────────────────────────────────────────────────────
// Wire codec tests
// ─────────────────────────────────────────────────────────────

func TestCodec_RoundTripKnownKinds(t *testing.T) {
	in := content.Fragment{
		content.Heading(2, "Experience"),
		content.Paragraph("Built things."),
		content.BulletList("shipped", "maintained"),
		content.ColumnPair(
			content.Fragment{content.Paragraph("left")},
			content.Fragment{content.Paragraph("right")},
		),
	}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out content.Fragment
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(out) != len(in) {
		t.Fatalf("got %d nodes, want %d", len(out), len(in))
	}
	if out[0].Kind != content.KindHeading || out[0].Level != 2 {
		t.Errorf("heading lost its level: %+v", out[0])
	}
	if out[0].PlainText() != "Experience" {
		t.Errorf("heading text: %q", out[0].PlainText())
	}
	if out[2].Kind != content.KindBulletList || len(out[2].Children) != 2 {
		t.Errorf("bullet list shape: %+v", out[2])
	}
	if out[3].Kind != content.KindColumnPair {
		t.Errorf("column pair kind: %s", out[3].Kind)
	}
}

func TestCodec_HeadingLevelTravelsInAttrs(t *testing.T) {
	data, err := json.Marshal(content.Heading(3, "Skills"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"level":"3"`) {
		t.Errorf("wire heading should carry level in attrs: %s", data)
	}
}

func TestCodec_BadgePreservesColor(t *testing.T) {
	badge := content.Badge("Go", "#336699")
	data, err := json.Marshal(badge)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out content.Node
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Kind != content.KindBadge || out.Text != "Go" {
		t.Errorf("badge shape: %+v", out)
	}
	if out.Attrs["color"] != "#336699" {
		t.Errorf("badge color lost: %v", out.Attrs)
	}
}

func TestCodec_UnknownKindSurvivesRoundTrip(t *testing.T) {
	wire := `{"type":"mermaidDiagram","attrs":{"code":"graph TD"},"content":[{"type":"text","text":"x"}]}`

	var n content.Node
	if err := json.Unmarshal([]byte(wire), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if n.Kind != content.KindUnknown {
		t.Fatalf("unrecognized type should map to KindUnknown, got %s", n.Kind)
	}

	out, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != wire {
		t.Errorf("unknown node not written back byte-for-byte:\n got %s\nwant %s", out, wire)
	}
}

func TestCodec_UnknownSurvivesClone(t *testing.T) {
	wire := `{"type":"futureWidget","text":"hi"}`
	var n content.Node
	if err := json.Unmarshal([]byte(wire), &n); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	clone := n.Clone()
	out, err := json.Marshal(clone)
	if err != nil {
		t.Fatalf("marshal clone: %v", err)
	}
	if string(out) != wire {
		t.Errorf("clone dropped raw payload: %s", out)
	}
}

func TestCodec_MarksPreserved(t *testing.T) {
	n := content.Text("bold bit")
	n.Marks = []string{"bold"}

	data, _ := json.Marshal(n)
	var out content.Node
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out.Marks) != 1 || out.Marks[0] != "bold" {
		t.Errorf("marks lost: %v", out.Marks)
	}
}
