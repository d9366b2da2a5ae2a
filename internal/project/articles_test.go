package project

import (
	"testing"

	"github.com/designzioncontato-crypto/estudiodoescritor/internal/models"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/tree"
)

func TestCreateArticle(t *testing.T) {
	t.Run("appends after existing siblings", func(t *testing.T) {
		st := fixture()
		st, hint := CreateArticle(st, "capitulos")
		a, ok := st.Article(hint.FocusID)
		if !ok {
			t.Fatal("created article not found")
		}
		if a.FolderID != "capitulos" {
			t.Errorf("folder = %q", a.FolderID)
		}
		if a.SortOrder != 2 {
			t.Errorf("sort order = %d, want 2 (after um and dois)", a.SortOrder)
		}
		if !st.ExpandedFolderIDs.Has("capitulos") {
			t.Error("owning folder not expanded")
		}
	})

	t.Run("unknown folder is a no-op", func(t *testing.T) {
		st := fixture()
		next, hint := CreateArticle(st, "ghost")
		if hint.FocusID != "" || len(next.Articles) != len(st.Articles) {
			t.Error("article created under missing folder")
		}
	})
}

func TestCreateSubArticle(t *testing.T) {
	t.Run("inherits the parent's folder", func(t *testing.T) {
		st := fixture()
		st, hint := CreateSubArticle(st, "um")
		a, ok := st.Article(hint.FocusID)
		if !ok {
			t.Fatal("created sub-article not found")
		}
		if a.ParentID != "um" || a.FolderID != "capitulos" {
			t.Errorf("parent = %q, folder = %q", a.ParentID, a.FolderID)
		}
		if a.SortOrder != 1 {
			t.Errorf("sort order = %d, want 1 (after sub)", a.SortOrder)
		}
		if !st.ExpandedArticleIDs.Has("um") {
			t.Error("parent article not expanded")
		}
	})

	t.Run("unknown parent is a no-op", func(t *testing.T) {
		st := fixture()
		next, hint := CreateSubArticle(st, "ghost")
		if hint.FocusID != "" || len(next.Articles) != len(st.Articles) {
			t.Error("sub-article created under missing parent")
		}
	})
}

func TestUpdateArticleTitle(t *testing.T) {
	st := fixture()
	st = UpdateArticleTitle(st, "um", "Novo título")
	if a, _ := st.Article("um"); a.Title != "Novo título" {
		t.Errorf("title = %q", a.Title)
	}
	next := UpdateArticleTitle(st, "ghost", "x")
	if _, ok := next.Article("ghost"); ok {
		t.Error("update created a phantom article")
	}
}

func TestSaveArticle(t *testing.T) {
	t.Run("reports dropped images", func(t *testing.T) {
		st := fixture()
		updated, _ := st.Article("dois")
		replacement := updated.Clone()
		replacement.Sections[0].Images = replacement.Sections[0].Images[:1] // drop img2
		next, removed := SaveArticle(st, replacement)
		if len(removed) != 1 || removed[0] != "img2" {
			t.Errorf("removed = %v, want [img2]", removed)
		}
		a, _ := next.Article("dois")
		if got := a.ImageIDs(); len(got) != 1 || got[0] != "img1" {
			t.Errorf("images = %v, want [img1]", got)
		}
	})

	t.Run("identity and ordering are preserved", func(t *testing.T) {
		st := fixture()
		orig, _ := st.Article("dois")
		replacement := orig.Clone()
		replacement.FolderID = "solta"
		replacement.ParentID = "um"
		replacement.SortOrder = 99
		next, _ := SaveArticle(st, replacement)
		a, _ := next.Article("dois")
		if a.FolderID != orig.FolderID || a.ParentID != orig.ParentID || a.SortOrder != orig.SortOrder {
			t.Errorf("identity fields changed: %+v", a)
		}
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		st := fixture()
		next, removed := SaveArticle(st, models.Article{ID: "ghost"})
		if removed != nil || len(next.Articles) != len(st.Articles) {
			t.Error("save of unknown article changed state")
		}
	})
}

func TestDeleteArticleCascade(t *testing.T) {
	st := fixture()
	next, _, images := DeleteArticle(st, Session{}, "um")
	if _, ok := next.Article("um"); ok {
		t.Error("um still present")
	}
	if _, ok := next.Article("sub"); ok {
		t.Error("sub-article not cascaded")
	}
	if _, ok := next.Article("dois"); !ok {
		t.Error("unrelated article removed")
	}
	if len(images) != 0 {
		t.Errorf("images = %v, want none", images)
	}

	t.Run("gallery images are reported", func(t *testing.T) {
		st := fixture()
		_, _, images := DeleteArticle(st, Session{}, "dois")
		if len(images) != 2 {
			t.Errorf("images = %v, want [img1 img2]", images)
		}
	})
}

func TestDeleteArticleSelectionFallback(t *testing.T) {
	t.Run("parent survives", func(t *testing.T) {
		st := fixture()
		sess := Session{SelectedArticleID: "sub"}
		_, sess, _ = DeleteArticle(st, sess, "sub")
		if sess.SelectedArticleID != "um" {
			t.Errorf("selected = %q, want um", sess.SelectedArticleID)
		}
	})

	t.Run("falls back to first top-level article of the folder", func(t *testing.T) {
		st := fixture()
		sess := Session{SelectedArticleID: "um"}
		_, sess, _ = DeleteArticle(st, sess, "um")
		if sess.SelectedArticleID != "dois" {
			t.Errorf("selected = %q, want dois", sess.SelectedArticleID)
		}
	})

	t.Run("nothing left to select", func(t *testing.T) {
		st := fixture()
		var sess Session
		next, sess, _ := DeleteArticle(st, Session{SelectedArticleID: "dois"}, "dois")
		next, sess, _ = DeleteArticle(next, Session{SelectedArticleID: "um"}, "um")
		_ = next
		if sess.SelectedArticleID != "" {
			t.Errorf("selected = %q, want none", sess.SelectedArticleID)
		}
	})
}

func TestRelatedArticles(t *testing.T) {
	st := fixture()
	st = AddRelatedArticle(st, "um", "dois")
	if a, _ := st.Article("um"); len(a.RelatedArticleIDs) != 1 || a.RelatedArticleIDs[0] != "dois" {
		t.Fatalf("related = %v", a.RelatedArticleIDs)
	}

	t.Run("duplicate and self links are no-ops", func(t *testing.T) {
		next := AddRelatedArticle(st, "um", "dois")
		if a, _ := next.Article("um"); len(a.RelatedArticleIDs) != 1 {
			t.Error("duplicate link added")
		}
		next = AddRelatedArticle(st, "um", "um")
		if a, _ := next.Article("um"); len(a.RelatedArticleIDs) != 1 {
			t.Error("self link added")
		}
	})

	t.Run("relation is one-directional", func(t *testing.T) {
		if a, _ := st.Article("dois"); len(a.RelatedArticleIDs) != 0 {
			t.Error("reverse link appeared")
		}
	})

	t.Run("deleting the target sweeps the link", func(t *testing.T) {
		next, _, _ := DeleteArticle(st, Session{}, "dois")
		if a, _ := next.Article("um"); len(a.RelatedArticleIDs) != 0 {
			t.Errorf("dangling related ids: %v", a.RelatedArticleIDs)
		}
	})

	t.Run("remove unlinks", func(t *testing.T) {
		next := RemoveRelatedArticle(st, "um", "dois")
		if a, _ := next.Article("um"); len(a.RelatedArticleIDs) != 0 {
			t.Errorf("related = %v, want none", a.RelatedArticleIDs)
		}
	})
}

func TestReorderArticle(t *testing.T) {
	t.Run("scoped to parent and folder", func(t *testing.T) {
		st := fixture()
		next := ReorderArticle(st, "dois", tree.Up)
		um, _ := next.Article("um")
		dois, _ := next.Article("dois")
		if dois.SortOrder != 0 || um.SortOrder != 1 {
			t.Errorf("orders: um=%d dois=%d, want um=1 dois=0", um.SortOrder, dois.SortOrder)
		}
		// sub is alone in its sibling group and must be untouched.
		if sub, _ := next.Article("sub"); sub.SortOrder != 0 {
			t.Error("sub-article order changed")
		}
	})

	t.Run("boundary is a no-op", func(t *testing.T) {
		st := fixture()
		next := ReorderArticle(st, "um", tree.Up)
		if a, _ := next.Article("um"); a.SortOrder != 0 {
			t.Error("first sibling moved up")
		}
	})
}
