package session

import (
	"strings"

	"vitae/internal/content"
	"vitae/internal/domain"
)

// BlocksFromResume converts a parsed resume record into the block
// fragments of a new document: one heading block per section, bullet
// lists for highlights, and skill badges. The caller inserts them
// through the store so ids and layout slots are assigned the normal
// way.
func BlocksFromResume(r domain.Resume) []content.Fragment {
	var frags []content.Fragment

	if r.Personal.Name != "" {
		head := content.Fragment{content.Heading(1, r.Personal.Name)}
		if line := contactLine(r.Personal); line != "" {
			head = append(head, content.Paragraph(line))
		}
		frags = append(frags, head)
	}

	if r.Summary != "" {
		frags = append(frags, content.Fragment{
			content.Heading(2, "Summary"),
			content.Paragraph(r.Summary),
		})
	}

	if len(r.Experience) > 0 {
		frag := content.Fragment{content.Heading(2, "Experience")}
		for _, exp := range r.Experience {
			frag = append(frag, content.Heading(3, expTitle(exp)))
			if span := dateSpan(exp.Start, exp.End); span != "" {
				frag = append(frag, content.Paragraph(span))
			}
			if len(exp.Highlights) > 0 {
				frag = append(frag, content.BulletList(exp.Highlights...))
			}
		}
		frags = append(frags, frag)
	}

	if len(r.Education) > 0 {
		frag := content.Fragment{content.Heading(2, "Education")}
		for _, edu := range r.Education {
			title := edu.School
			if edu.Degree != "" {
				title = edu.Degree + ", " + edu.School
			}
			frag = append(frag, content.Heading(3, title))
			if span := dateSpan(edu.Start, edu.End); span != "" {
				frag = append(frag, content.Paragraph(span))
			}
		}
		frags = append(frags, frag)
	}

	if len(r.Skills) > 0 {
		para := content.Node{Kind: content.KindParagraph}
		for _, skill := range r.Skills {
			para.Children = append(para.Children,
				content.Badge(skill, content.DefaultBadgeColor),
				content.Text(" "))
		}
		frags = append(frags, content.Fragment{
			content.Heading(2, "Skills"),
			para,
		})
	}

	return frags
}

func contactLine(p domain.PersonalInfo) string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.Email, p.Phone, p.Location, p.Website} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " · ")
}

func expTitle(e domain.Experience) string {
	switch {
	case e.Role != "" && e.Company != "":
		return e.Role + " at " + e.Company
	case e.Role != "":
		return e.Role
	default:
		return e.Company
	}
}

func dateSpan(start, end string) string {
	if start == "" && end == "" {
		return ""
	}
	if end == "" {
		end = "present"
	}
	return start + " – " + end
}
