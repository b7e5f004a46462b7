package export

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"vitae/internal/content"
	"vitae/internal/domain"
)

// A4 page geometry in millimeters.
const (
	pageW  = 210.0
	pageH  = 297.0
	margin = 15.0
)

// Type scale in points, indexed by heading level (0 = body text).
var headingSizes = [...]float64{10.5, 22, 17, 14, 12, 11, 10.5}

// PDFExporter renders a document snapshot into a paginated A4 PDF.
// The grid/split geometry is editor-screen geometry, not print
// geometry: export flows blocks top-to-bottom in render order
// (layout.y, then layout.x), splitting columns where the content
// carries column pairs.
type PDFExporter struct {
	family *canvas.FontFamily
}

// NewPDFExporter loads a system font for body text. Export is an
// optional collaborator: failure to find a font surfaces here, at
// construction, not at export time.
func NewPDFExporter() (*PDFExporter, error) {
	family := canvas.NewFontFamily("vitae")
	var lastErr error
	for _, name := range []string{"sans-serif", "Helvetica", "Arial", "DejaVu Sans"} {
		if err := family.LoadSystemFont(name, canvas.FontRegular); err != nil {
			lastErr = err
			continue
		}
		return &PDFExporter{family: family}, nil
	}
	return nil, fmt.Errorf("export: no usable system font: %w", lastErr)
}

// Render produces the PDF bytes for a complete, internally consistent
// snapshot. In-memory state is never touched; a failure here loses no
// edits.
func (e *PDFExporter) Render(doc domain.Document) ([]byte, error) {
	var buf bytes.Buffer
	writer := pdf.New(&buf, pageW, pageH, nil)
	writer.SetInfo(doc.Title, "Resume", "", "", "vitae")

	p := &page{exporter: e, writer: writer}
	p.open()

	for _, b := range renderOrder(doc.Blocks) {
		p.fragment(b.Content, margin, pageW-2*margin)
		p.y += 4 // block separation
	}

	p.flush()
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// renderOrder sorts blocks by grid row, then column. Slice order is
// tab order, not render order.
func renderOrder(blocks []domain.Block) []domain.Block {
	out := append([]domain.Block(nil), blocks...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Layout.Y != out[j].Layout.Y {
			return out[i].Layout.Y < out[j].Layout.Y
		}
		return out[i].Layout.X < out[j].Layout.X
	})
	return out
}

// page tracks the draw cursor and handles page breaks.
type page struct {
	exporter *PDFExporter
	writer   *pdf.PDF
	canvas   *canvas.Canvas
	ctx      *canvas.Context
	y        float64
	first    bool
}

func (p *page) open() {
	if p.canvas != nil {
		p.flush()
		p.writer.NewPage(pageW, pageH)
	}
	p.canvas = canvas.New(pageW, pageH)
	p.ctx = canvas.NewContext(p.canvas)
	p.ctx.SetCoordSystem(canvas.CartesianIV) // top-left origin, like the editor
	p.y = margin
}

func (p *page) flush() {
	if p.canvas != nil {
		p.canvas.RenderTo(p.writer)
	}
}

// ensure breaks to a new page when fewer than h millimeters remain.
func (p *page) ensure(h float64) {
	if p.y+h > pageH-margin {
		p.open()
	}
}

// fragment draws a fragment into the horizontal band [x, x+width),
// advancing the page cursor.
func (p *page) fragment(frag content.Fragment, x, width float64) {
	for _, n := range frag {
		p.node(n, x, width)
	}
}

func (p *page) node(n content.Node, x, width float64) {
	switch n.Kind {
	case content.KindHeading:
		level := n.Level
		if level < 1 || level >= len(headingSizes) {
			level = 1
		}
		p.inline(n.Children, x, width, headingSizes[level])
		p.y += 1.5
	case content.KindParagraph:
		p.inline(n.Children, x, width, headingSizes[0])
	case content.KindBulletList:
		for _, item := range n.Children {
			p.text("•", x, headingSizes[0])
			for _, c := range item.Children {
				p.node(c, x+5, width-5)
			}
		}
	case content.KindListItem:
		for _, c := range n.Children {
			p.node(c, x, width)
		}
	case content.KindColumnPair:
		p.columns(n, x, width)
	case content.KindColumn:
		p.fragment(content.Fragment(n.Children), x, width)
	case content.KindText, content.KindBadge:
		p.inline([]content.Node{n}, x, width, headingSizes[0])
	case content.KindUnknown:
		// unsupported node kinds are skipped, never guessed at
	}
}

// columns draws a column pair side by side: both halves start at the
// same y, and the cursor continues below the taller one. Nested pairs
// recurse with narrower bands.
func (p *page) columns(n content.Node, x, width float64) {
	if len(n.Children) < 2 {
		return
	}
	half := (width - 4) / 2
	top := p.y
	p.fragment(content.Fragment(n.Children[0].Children), x, half)
	leftEnd := p.y

	p.y = top
	p.fragment(content.Fragment(n.Children[1].Children), x+half+4, half)
	if leftEnd > p.y {
		p.y = leftEnd
	}
}

// inline lays out a run of text/badge nodes with greedy word wrap.
func (p *page) inline(runs []content.Node, x, width float64, size float64) {
	face := p.exporter.family.Face(size, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	lineH := face.Metrics().LineHeight
	cx := x

	newline := func() {
		p.y += lineH
		cx = x
	}

	p.ensure(lineH)
	for _, run := range runs {
		switch run.Kind {
		case content.KindBadge:
			w := face.TextWidth(run.Text) + 4
			if cx+w > x+width && cx > x {
				newline()
				p.ensure(lineH)
			}
			p.badge(face, run, cx, lineH, w)
			cx += w + 1
		case content.KindText:
			for _, word := range splitWords(run.Text) {
				w := face.TextWidth(word + " ")
				if cx+w > x+width && cx > x {
					newline()
					p.ensure(lineH)
				}
				p.ctx.DrawText(cx, p.y+lineH*0.8, canvas.NewTextLine(face, word, canvas.Left))
				cx += w
			}
		default:
			// inline position only ever holds text or badges
		}
	}
	newline()
}

func (p *page) badge(face *canvas.FontFace, n content.Node, x, lineH, w float64) {
	fill := canvas.Hex("#e0e7ff")
	if c, ok := n.Attrs["color"]; ok && c != "" {
		fill = canvas.Hex(c)
	}
	p.ctx.SetFillColor(fill)
	p.ctx.DrawPath(x, p.y, canvas.Rectangle(w, lineH))
	p.ctx.SetFillColor(canvas.Black)
	p.ctx.DrawText(x+2, p.y+lineH*0.8, canvas.NewTextLine(face, n.Text, canvas.Left))
}

// text draws a single short string (bullet glyphs) without wrapping.
func (p *page) text(s string, x float64, size float64) {
	face := p.exporter.family.Face(size, canvas.Black, canvas.FontRegular, canvas.FontNormal)
	p.ctx.DrawText(x, p.y+face.Metrics().LineHeight*0.8, canvas.NewTextLine(face, s, canvas.Left))
}

func splitWords(s string) []string {
	var words []string
	start := -1
	for i, r := range s {
		if r == ' ' {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}
