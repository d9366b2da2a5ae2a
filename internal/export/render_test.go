package export

import (
	"strings"
	"testing"

	"github.com/designzioncontato-crypto/estudiodoescritor/internal/blobstore"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/models"
)

func renderState() models.ProjectState {
	st := models.NewProjectState()
	st.Folders = []models.Folder{
		{ID: "f2", Name: "Segunda", SortOrder: 5},
		{ID: "f1", Name: "Primeira", SortOrder: 0},
		{ID: "f3", Name: "Filha", ParentID: "f1", SortOrder: 0},
	}
	st.Articles = []models.Article{
		{ID: "a2", Title: "Artigo dois", FolderID: "f1", SortOrder: 9},
		{ID: "a1", Title: "Artigo um", FolderID: "f1", SortOrder: 1, RelatedArticleIDs: []string{"a2", "fantasma"}, Sections: []models.Section{
			{Kind: models.SectionKindFields, Title: "Notas", Fields: []models.Field{{ID: "c1", Title: "Resumo", Content: "Era **assim** que *começava*."}}},
			{Kind: models.SectionKindImages, Title: "Galeria", Images: []models.ImageRef{
				{ID: "img1", Caption: "capa"},
				{ID: "perdida", Caption: "sumiu"},
			}},
		}},
		{ID: "sub", Title: "Aninhado", FolderID: "f1", ParentID: "a1", SortOrder: 0},
	}
	return st
}

func render(t *testing.T, st models.ProjectState, selected []string) string {
	t.Helper()
	blobs := blobstore.NewMemory()
	if err := blobs.Put("img1", "data:image/png;base64,AAAA"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	var b strings.Builder
	if err := NewRenderer(blobs).Render(&b, st, "Meu projeto", selected); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return b.String()
}

func TestRenderOrdering(t *testing.T) {
	out := render(t, renderState(), nil)
	// Folders depth-first by sort order, articles likewise within scope.
	// Headings only: article titles also appear in related-article lines.
	order := []string{
		"Primeira</h1>",
		"<h2>Artigo um</h2>",
		"<h2>Aninhado</h2>",
		"<h2>Artigo dois</h2>",
		"Filha</h1>",
		"Segunda</h1>",
	}
	last := -1
	for _, heading := range order {
		i := strings.Index(out, heading)
		if i < 0 {
			t.Fatalf("output lacks %q", heading)
		}
		if i < last {
			t.Errorf("%q rendered out of order", heading)
		}
		last = i
	}
}

func TestRenderFolderSelection(t *testing.T) {
	out := render(t, renderState(), []string{"f2"})
	if strings.Contains(out, "Primeira") || strings.Contains(out, "Artigo um") {
		t.Error("unselected folder rendered")
	}
	if !strings.Contains(out, "Segunda") {
		t.Error("selected folder missing")
	}
}

func TestRenderImages(t *testing.T) {
	out := render(t, renderState(), nil)
	if !strings.Contains(out, `src="data:image/png;base64,AAAA"`) {
		t.Error("resolved image src missing")
	}
	if !strings.Contains(out, "imagem não encontrada") {
		t.Error("missing-image placeholder absent")
	}
	// A missing payload must not drop the caption.
	if !strings.Contains(out, "sumiu") {
		t.Error("caption of the missing image absent")
	}
}

func TestRenderRelatedArticles(t *testing.T) {
	out := render(t, renderState(), nil)
	if !strings.Contains(out, "Veja também:") {
		t.Error("related list missing")
	}
	// Dangling related ids resolve to nothing, not to an empty entry.
	if strings.Contains(out, "fantasma") {
		t.Error("dangling related id leaked into the output")
	}
}

func TestRenderEscapesContent(t *testing.T) {
	st := models.NewProjectState()
	st.Folders = []models.Folder{{ID: "f1", Name: "<script>alert(1)</script>"}}
	st.Articles = []models.Article{{ID: "a1", Title: "Um", FolderID: "f1", Sections: []models.Section{
		{Kind: models.SectionKindFields, Fields: []models.Field{{ID: "c1", Content: "<b>bruto</b>"}}},
	}}}
	out := render(t, st, nil)
	if strings.Contains(out, "<script>") || strings.Contains(out, "<b>bruto</b>") {
		t.Error("user content rendered unescaped")
	}
}

func TestMarkdownLite(t *testing.T) {
	data := []struct {
		in   string
		want string
	}{
		{"simples", "<p>simples</p>"},
		{"um\ndois", "<p>um<br>dois</p>"},
		{"um\n\ndois", "<p>um</p><p>dois</p>"},
		{"**forte**", "<p><strong>forte</strong></p>"},
		{"*suave*", "<p><em>suave</em></p>"},
		{"a **b** c **d** e", "<p>a <strong>b</strong> c <strong>d</strong> e</p>"},
		{"sem *par", "<p>sem *par</p>"},
		{"<i>html</i>", "<p>&lt;i&gt;html&lt;/i&gt;</p>"},
	}
	for _, line := range data {
		if got := string(markdownLite(line.in)); got != line.want {
			t.Errorf("markdownLite(%q) = %q, want %q", line.in, got, line.want)
		}
	}
}
