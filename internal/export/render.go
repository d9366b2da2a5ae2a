// Package export renders a read-only project snapshot into a paginated
// HTML document.
//
// The renderer consumes (ProjectState, selected folder ids), resolves
// image references through the blob store, and orders folders and
// articles with the same sibling sort used everywhere else. A referenced
// image with no payload renders as a placeholder; it is a display
// condition, never a render failure, and the reference is not removed.
package export

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/designzioncontato-crypto/estudiodoescritor/internal/blobstore"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/models"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/tree"
)

//go:embed templates/*.html
var templateFS embed.FS

var documentTemplate = template.Must(
	template.New("document.html").Funcs(template.FuncMap{
		"markdownLite": markdownLite,
	}).ParseFS(templateFS, "templates/document.html"))

// Document is the root of the rendered output.
type Document struct {
	Title   string
	Folders []*RenderedFolder
}

// RenderedFolder is one folder page in the output.
type RenderedFolder struct {
	Name     string
	Color    string
	Depth    int
	Articles []*RenderedArticle
}

// RenderedArticle is one article with its resolved sections.
type RenderedArticle struct {
	Title    string
	Depth    int
	Sections []RenderedSection
	Related  []string
}

// RenderedSection is a section with variant-specific content resolved.
type RenderedSection struct {
	Title  string
	Fields []models.Field
	Images []RenderedImage
}

// RenderedImage is an image with its payload resolved to a data URI, or
// Missing set when the blob store has no payload for it.
type RenderedImage struct {
	Caption string
	Src     template.URL
	Missing bool
}

// Renderer builds HTML documents from project snapshots.
type Renderer struct {
	blobs blobstore.Store
}

// NewRenderer returns a Renderer resolving images through blobs.
func NewRenderer(blobs blobstore.Store) *Renderer {
	return &Renderer{blobs: blobs}
}

// Render writes the document for the selected folders to w. Folders not
// in selectedFolderIDs are skipped; an empty selection renders every
// folder.
func (r *Renderer) Render(w io.Writer, st models.ProjectState, title string, selectedFolderIDs []string) error {
	selected := models.NewIDSet(selectedFolderIDs...)
	doc := &Document{Title: title}
	for _, root := range tree.Build(st.Folders) {
		r.walkFolder(&st, root, 0, selected, doc)
	}
	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, doc); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (r *Renderer) walkFolder(st *models.ProjectState, item *tree.Item[models.Folder], depth int, selected models.IDSet, doc *Document) {
	f := item.Value
	if len(selected) == 0 || selected.Has(f.ID) {
		rf := &RenderedFolder{Name: f.Name, Color: f.Color, Depth: depth}
		var scoped []models.Article
		for _, a := range st.Articles {
			if a.FolderID == f.ID {
				scoped = append(scoped, a)
			}
		}
		for _, root := range tree.Build(scoped) {
			r.walkArticle(st, root, 0, rf)
		}
		doc.Folders = append(doc.Folders, rf)
	}
	for _, child := range item.Children {
		r.walkFolder(st, child, depth+1, selected, doc)
	}
}

func (r *Renderer) walkArticle(st *models.ProjectState, item *tree.Item[models.Article], depth int, rf *RenderedFolder) {
	a := item.Value
	ra := &RenderedArticle{Title: a.Title, Depth: depth}
	for i := range a.Sections {
		s := &a.Sections[i]
		rs := RenderedSection{Title: s.Title}
		switch s.Kind {
		case models.SectionKindFields:
			rs.Fields = s.Fields
		case models.SectionKindImages:
			for _, img := range s.Images {
				rs.Images = append(rs.Images, r.resolveImage(img))
			}
		}
		ra.Sections = append(ra.Sections, rs)
	}
	for _, rid := range a.RelatedArticleIDs {
		if other, ok := st.Article(rid); ok {
			ra.Related = append(ra.Related, other.Title)
		}
	}
	rf.Articles = append(rf.Articles, ra)
	for _, child := range item.Children {
		r.walkArticle(st, child, depth+1, rf)
	}
}

func (r *Renderer) resolveImage(img models.ImageRef) RenderedImage {
	payload, ok, err := r.blobs.Get(img.ID)
	if err != nil || !ok {
		return RenderedImage{Caption: img.Caption, Missing: true}
	}
	// Payloads are data URIs when produced by the crop step; wrap bare
	// base64 from older payloads.
	src := payload
	if !strings.HasPrefix(src, "data:") {
		src = "data:image/png;base64," + src
	}
	return RenderedImage{Caption: img.Caption, Src: template.URL(src)}
}

// markdownLite converts the fields' markdown-lite free text to HTML:
// paragraphs on blank lines, line breaks, **bold** and *italic* spans.
// Input is escaped before any markup is applied.
func markdownLite(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	var b strings.Builder
	for i, para := range strings.Split(escaped, "\n\n") {
		if i > 0 {
			b.WriteString("</p><p>")
		}
		b.WriteString(strings.ReplaceAll(para, "\n", "<br>"))
	}
	out := applySpans(b.String(), "**", "strong")
	out = applySpans(out, "*", "em")
	return template.HTML("<p>" + out + "</p>")
}

// applySpans replaces paired occurrences of marker with the given HTML
// tag. Unpaired markers are left as-is.
func applySpans(s, marker, tag string) string {
	parts := strings.Split(s, marker)
	if len(parts) < 3 {
		return s
	}
	var b strings.Builder
	b.WriteString(parts[0])
	open := false
	for i := 1; i < len(parts); i++ {
		// The final unpaired marker stays literal.
		if !open && i == len(parts)-1 {
			b.WriteString(marker)
			b.WriteString(parts[i])
			break
		}
		if open {
			b.WriteString("</" + tag + ">")
		} else {
			b.WriteString("<" + tag + ">")
		}
		open = !open
		b.WriteString(parts[i])
	}
	return b.String()
}
