package testutil

import (
	"bytes"
	"fmt"
	"strings"
)

// Bookmark describes one outline entry for BuildPDF. Page is the 1-based
// destination page; zero emits a bookmark without a destination.
type Bookmark struct {
	Title string
	Page  int
	Kids  []Bookmark

	// TitleAsRef stores the title as an indirect string object.
	TitleAsRef bool
	// AsAction targets the page through a /A GoTo action instead of /Dest.
	AsAction bool
}

// BuildPDF renders a small but structurally complete PDF with the given page
// count and outline, suitable for exercising the document loader, the
// outline walker, and the splitter against real parser behavior.
func BuildPDF(pages int, bookmarks []Bookmark) []byte {
	b := NewBuilder()

	pageObj := func(p int) int { return 3 + p }
	contentObj := func(p int) int { return 3 + pages + p }

	kids := make([]string, 0, pages)
	for p := 1; p <= pages; p++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", pageObj(p)))
	}
	b.Add(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	b.Add(3, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	for p := 1; p <= pages; p++ {
		b.Add(pageObj(p), fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			contentObj(p)))
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (Page %d) Tj ET", p)
		b.Add(contentObj(p), fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	}

	if len(bookmarks) == 0 {
		b.Add(1, "<< /Type /Catalog /Pages 2 0 R >>")
		return b.Bytes()
	}

	rootNr := 3 + 2*pages + 1
	b.Add(1, fmt.Sprintf("<< /Type /Catalog /Pages 2 0 R /Outlines %d 0 R >>", rootNr))

	// Assign item object numbers pre-order, then place indirect title
	// strings after the items.
	next := rootNr + 1
	var titleRefs []*bmNode
	var alloc func(items []Bookmark) []*bmNode
	alloc = func(items []Bookmark) []*bmNode {
		nodes := make([]*bmNode, 0, len(items))
		for _, bm := range items {
			n := &bmNode{bm: bm, objNr: next}
			next++
			if bm.TitleAsRef {
				titleRefs = append(titleRefs, n)
			}
			n.kids = alloc(bm.Kids)
			nodes = append(nodes, n)
		}
		return nodes
	}
	top := alloc(bookmarks)
	for _, n := range titleRefs {
		n.titleObj = next
		next++
	}

	b.Add(rootNr, fmt.Sprintf("<< /Type /Outlines /First %d 0 R /Last %d 0 R /Count %d >>",
		top[0].objNr, top[len(top)-1].objNr, len(top)))

	var render func(nodes []*bmNode, parent int)
	render = func(nodes []*bmNode, parent int) {
		for i, n := range nodes {
			var sb strings.Builder
			if n.titleObj != 0 {
				fmt.Fprintf(&sb, "<< /Title %d 0 R", n.titleObj)
			} else {
				fmt.Fprintf(&sb, "<< /Title (%s)", EscapeString(n.bm.Title))
			}
			fmt.Fprintf(&sb, " /Parent %d 0 R", parent)
			if i > 0 {
				fmt.Fprintf(&sb, " /Prev %d 0 R", nodes[i-1].objNr)
			}
			if i+1 < len(nodes) {
				fmt.Fprintf(&sb, " /Next %d 0 R", nodes[i+1].objNr)
			}
			if len(n.kids) > 0 {
				fmt.Fprintf(&sb, " /First %d 0 R /Last %d 0 R /Count %d",
					n.kids[0].objNr, n.kids[len(n.kids)-1].objNr, -len(n.kids))
			}
			if n.bm.Page > 0 {
				if n.bm.AsAction {
					fmt.Fprintf(&sb, " /A << /S /GoTo /D [%d 0 R /Fit] >>", pageObj(n.bm.Page))
				} else {
					fmt.Fprintf(&sb, " /Dest [%d 0 R /Fit]", pageObj(n.bm.Page))
				}
			}
			sb.WriteString(" >>")
			b.Add(n.objNr, sb.String())
			render(n.kids, n.objNr)
		}
	}
	render(top, rootNr)

	for _, n := range titleRefs {
		b.Add(n.titleObj, fmt.Sprintf("(%s)", EscapeString(n.bm.Title)))
	}

	return b.Bytes()
}

type bmNode struct {
	bm       Bookmark
	objNr    int
	titleObj int
	kids     []*bmNode
}

// Builder assembles a PDF object by object and renders it with a correctly
// computed cross-reference table. Object 1 must be the catalog. Gaps in the
// object numbering are rendered as null objects.
type Builder struct {
	objs map[int]string
	max  int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{objs: make(map[int]string)}
}

// Add registers the body of an object, without the surrounding obj/endobj.
func (b *Builder) Add(objNr int, body string) {
	b.objs[objNr] = body
	if objNr > b.max {
		b.max = objNr
	}
}

// Bytes renders the document.
func (b *Builder) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, b.max+1)
	for n := 1; n <= b.max; n++ {
		body, ok := b.objs[n]
		if !ok {
			body = "null"
		}
		offsets[n] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", n, body)
	}

	xrefOff := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", b.max+1)
	buf.WriteString("0000000000 65535 f \n")
	for n := 1; n <= b.max; n++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[n])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n", b.max+1, xrefOff)
	buf.WriteString("%%EOF\n")
	return buf.Bytes()
}

// EscapeString escapes a string for use inside PDF literal string parens.
func EscapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "(", `\(`)
	s = strings.ReplaceAll(s, ")", `\)`)
	return s
}
