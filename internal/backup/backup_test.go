package backup

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/designzioncontato-crypto/estudiodoescritor/internal/blobstore"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/migrate"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/models"
)

func sampleState() models.ProjectState {
	st := models.NewProjectState()
	st.Folders = []models.Folder{
		{ID: "f1", Name: "Raiz", Color: "#aa0000", SortOrder: 0},
		{ID: "f2", Name: "Capítulos", ParentID: "f1", SortOrder: 0},
	}
	st.Articles = []models.Article{
		{ID: "a1", Title: "Protagonista", FolderID: "f2", SortOrder: 0, Sections: []models.Section{
			{Kind: models.SectionKindFields, Title: "Notas", Fields: []models.Field{{ID: "c1", Title: "Resumo", Content: "texto"}}},
			{Kind: models.SectionKindImages, Title: "Galeria", Images: []models.ImageRef{{ID: "img1", Caption: "capa"}}},
		}},
	}
	st.ExpandedFolderIDs.Add("f1")
	return st
}

func TestExportImportRoundTrip(t *testing.T) {
	blobs := blobstore.NewMemory()
	if err := blobs.Put("img1", "data:image/png;base64,AAAA"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	st := sampleState()

	data, err := Export(st, blobs)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	res, err := Import(data)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	b1, _ := json.Marshal(&st)
	b2, _ := json.Marshal(&res.State)
	if string(b1) != string(b2) {
		t.Errorf("state round-trip mismatch:\n%s\n%s", b1, b2)
	}
	if len(res.Blobs) != 1 || res.Blobs[0].ID != "img1" || res.Blobs[0].Payload != "data:image/png;base64,AAAA" {
		t.Errorf("blobs = %+v", res.Blobs)
	}
}

func TestExportEmptyProject(t *testing.T) {
	data, err := Export(models.NewProjectState(), blobstore.NewMemory())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	// The archive must stay parseable by strict external consumers: both
	// top-level keys present, images an array rather than null.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("archive is not a JSON object: %v", err)
	}
	if string(raw["images"]) != "[]" {
		t.Errorf("images = %s, want []", raw["images"])
	}
	if _, ok := raw["projectState"]; !ok {
		t.Error("projectState key missing")
	}
}

func TestImportLegacyBareState(t *testing.T) {
	doc := `{"folders": [{"id": "f1", "name": "Antiga"}], "articles": []}`
	res, err := Import([]byte(doc))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(res.State.Folders) != 1 || res.State.Folders[0].Name != "Antiga" {
		t.Errorf("folders = %+v", res.State.Folders)
	}
}

func TestImportMalformed(t *testing.T) {
	if _, err := Import([]byte(`{"nem": "projeto"}`)); !errors.Is(err, migrate.ErrMalformedDocument) {
		t.Errorf("Import err = %v, want ErrMalformedDocument", err)
	}
}
