// Package project implements the project aggregate: the folder tree, the
// article tree grouped by owning folder, the expansion-state sets, and
// the cross-entity invariants between them.
//
// Every mutation is a pure transformation of a ProjectState into the next
// one; inputs are never modified. Operations that remove entities also
// return the ids of image blobs that became unreferenced, so the caller
// can run best-effort cleanup against the blob store without coupling the
// state transition to it. UI-state consequences (focus the new item,
// selection fallback after a delete) are explicit results, not ambient
// callbacks: creations return a Hint, deletions take and return a Session.
package project

import (
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/models"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/tree"
)

// Default display values for newly created entities.
const (
	DefaultFolderName   = "Nova pasta"
	DefaultFolderColor  = "#888888"
	DefaultArticleTitle = "Novo artigo"
)

// Session is the transient UI selection state. It is not part of the
// persisted document.
type Session struct {
	SelectedFolderID  string
	SelectedArticleID string
}

// SelectFolder returns the session after selecting folderID. Changing the
// folder selection always resets the article selection, even when
// re-selecting the current folder.
func (s Session) SelectFolder(folderID string) Session {
	return Session{SelectedFolderID: folderID}
}

// SelectArticle returns the session after selecting articleID.
func (s Session) SelectArticle(articleID string) Session {
	s.SelectedArticleID = articleID
	return s
}

// AutoSelect fills an empty folder selection: the lowest-sorted root
// folder if one exists, otherwise any folder, otherwise no selection.
// Used on initial load.
func AutoSelect(st models.ProjectState, sess Session) Session {
	if sess.SelectedFolderID != "" || len(st.Folders) == 0 {
		return sess
	}
	best := -1
	for i := range st.Folders {
		if st.Folders[i].ParentID != "" {
			continue
		}
		if best < 0 || st.Folders[i].SortOrder < st.Folders[best].SortOrder {
			best = i
		}
	}
	if best < 0 {
		// No root folder; fall back to any folder.
		best = 0
	}
	return sess.SelectFolder(st.Folders[best].ID)
}

// Hint describes what a creation expects the UI to do next: focus (and
// select) the freshly created entity. The zero Hint means nothing.
type Hint struct {
	FocusID string
}

// CreateFolder appends a new folder under parentID (empty for root) with
// a sort order placing it after every existing sibling. If the parent
// exists it is added to the expanded set so the new folder is visible.
func CreateFolder(st models.ProjectState, parentID string) (models.ProjectState, Hint) {
	next := st.Clone()
	f := models.Folder{
		ID:        models.NewID(),
		Name:      DefaultFolderName,
		Color:     DefaultFolderColor,
		ParentID:  parentID,
		SortOrder: tree.NextSortOrder(next.Folders, parentID),
	}
	next.Folders = append(next.Folders, f)
	if parentID != "" {
		if _, ok := next.Folder(parentID); ok {
			next.ExpandedFolderIDs.Add(parentID)
		}
	}
	return next, Hint{FocusID: f.ID}
}

// RenameFolder replaces the folder's name. Unknown ids are a silent no-op.
func RenameFolder(st models.ProjectState, id, name string) models.ProjectState {
	next := st.Clone()
	if f, ok := next.Folder(id); ok {
		f.Name = name
	}
	return next
}

// RecolorFolder replaces the folder's display color. Unknown ids are a
// silent no-op.
func RecolorFolder(st models.ProjectState, id, color string) models.ProjectState {
	next := st.Clone()
	if f, ok := next.Folder(id); ok {
		f.Color = color
	}
	return next
}

// DeleteFolder removes the folder, every folder in its subtree, every
// article owned by a removed folder, and reports the image blobs those
// articles referenced. The returned session applies the selection
// fallback: parent folder if it survives, else the first remaining root
// folder, else none.
func DeleteFolder(st models.ProjectState, sess Session, id string) (models.ProjectState, Session, []string) {
	target, ok := st.Folder(id)
	if !ok {
		return st, sess, nil
	}
	parentID := target.ParentID
	removed := tree.CollectSubtree(st.Folders, id)

	next := st.Clone()
	kept := next.Folders[:0]
	for _, f := range next.Folders {
		if _, gone := removed[f.ID]; !gone {
			kept = append(kept, f)
		}
	}
	next.Folders = kept

	removedArticles := models.IDSet{}
	var imageIDs []string
	keptArticles := next.Articles[:0]
	for i := range next.Articles {
		a := next.Articles[i]
		if _, gone := removed[a.FolderID]; gone {
			removedArticles.Add(a.ID)
			imageIDs = append(imageIDs, a.ImageIDs()...)
			continue
		}
		keptArticles = append(keptArticles, a)
	}
	next.Articles = keptArticles

	for fid := range removed {
		next.ExpandedFolderIDs.Remove(fid)
	}
	sweepRemovedArticles(&next, removedArticles)

	if _, gone := removed[sess.SelectedFolderID]; gone {
		sess = sess.SelectFolder(fallbackFolder(next, parentID))
	} else if removedArticles.Has(sess.SelectedArticleID) {
		sess.SelectedArticleID = ""
	}
	return next, sess, imageIDs
}

// ReorderFolder exchanges the folder's sort order with its adjacent
// sibling in the given direction. A no-op at the sibling boundary and for
// unknown ids.
func ReorderFolder(st models.ProjectState, id string, dir tree.Direction) models.ProjectState {
	i, j, ok := tree.Swap(st.Folders, id, dir)
	if !ok {
		return st
	}
	next := st.Clone()
	next.Folders[i].SortOrder, next.Folders[j].SortOrder = next.Folders[j].SortOrder, next.Folders[i].SortOrder
	return next
}

// ToggleFolderExpansion flips the folder's presence in the expanded set.
func ToggleFolderExpansion(st models.ProjectState, id string) models.ProjectState {
	next := st.Clone()
	next.ExpandedFolderIDs.Toggle(id)
	return next
}

// fallbackFolder picks the selection after the selected folder was
// deleted: its parent if it survives, otherwise the lowest-sorted
// remaining root folder, otherwise none.
func fallbackFolder(st models.ProjectState, parentID string) string {
	if parentID != "" {
		if _, ok := st.Folder(parentID); ok {
			return parentID
		}
	}
	best := ""
	bestOrder := 0
	for i := range st.Folders {
		f := &st.Folders[i]
		if f.ParentID != "" {
			continue
		}
		if best == "" || f.SortOrder < bestOrder {
			best = f.ID
			bestOrder = f.SortOrder
		}
	}
	return best
}

// sweepRemovedArticles removes the given article ids from the expansion
// set and from surviving articles' related-article links, so no
// cross-link dangles after a cascade.
func sweepRemovedArticles(st *models.ProjectState, removed models.IDSet) {
	if len(removed) == 0 {
		return
	}
	for id := range removed {
		st.ExpandedArticleIDs.Remove(id)
	}
	for i := range st.Articles {
		a := &st.Articles[i]
		if len(a.RelatedArticleIDs) == 0 {
			continue
		}
		kept := a.RelatedArticleIDs[:0]
		for _, rid := range a.RelatedArticleIDs {
			if !removed.Has(rid) {
				kept = append(kept, rid)
			}
		}
		if len(kept) == 0 {
			a.RelatedArticleIDs = nil
		} else {
			a.RelatedArticleIDs = kept
		}
	}
}
