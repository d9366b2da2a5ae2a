// Article operations of the project aggregate.

package project

import (
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/models"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/tree"
)

// CreateArticle appends a new top-level article to the given folder and
// expands the folder so the article is visible. A silent no-op if the
// folder does not exist.
func CreateArticle(st models.ProjectState, folderID string) (models.ProjectState, Hint) {
	if _, ok := st.Folder(folderID); !ok {
		return st, Hint{}
	}
	next := st.Clone()
	a := models.Article{
		ID:       models.NewID(),
		Title:    DefaultArticleTitle,
		FolderID: folderID,
	}
	a.SortOrder = tree.NextSortOrder(next.Articles, a.SiblingKey())
	next.Articles = append(next.Articles, a)
	next.ExpandedFolderIDs.Add(folderID)
	return next, Hint{FocusID: a.ID}
}

// CreateSubArticle appends a new article under the given parent article,
// inheriting the parent's folder, and expands the parent. A silent no-op
// if the parent does not exist.
func CreateSubArticle(st models.ProjectState, parentID string) (models.ProjectState, Hint) {
	parent, ok := st.Article(parentID)
	if !ok {
		return st, Hint{}
	}
	next := st.Clone()
	a := models.Article{
		ID:       models.NewID(),
		Title:    DefaultArticleTitle,
		FolderID: parent.FolderID,
		ParentID: parentID,
	}
	a.SortOrder = tree.NextSortOrder(next.Articles, a.SiblingKey())
	next.Articles = append(next.Articles, a)
	next.ExpandedArticleIDs.Add(parentID)
	return next, Hint{FocusID: a.ID}
}

// UpdateArticleTitle replaces the article's title. Unknown ids are a
// silent no-op.
func UpdateArticleTitle(st models.ProjectState, id, title string) models.ProjectState {
	next := st.Clone()
	if a, ok := next.Article(id); ok {
		a.Title = title
	}
	return next
}

// SaveArticle replaces the entire article record with a. Identity,
// ownership and ordering are preserved from the stored record: ID,
// FolderID, ParentID and SortOrder cannot be changed through a save. The
// returned ids are images the previous revision referenced that the new
// one no longer does. A silent no-op (and no removals) for unknown ids.
func SaveArticle(st models.ProjectState, a models.Article) (models.ProjectState, []string) {
	old, ok := st.Article(a.ID)
	if !ok {
		return st, nil
	}
	replacement := a.Clone()
	replacement.FolderID = old.FolderID
	replacement.ParentID = old.ParentID
	replacement.SortOrder = old.SortOrder

	stillUsed := models.NewIDSet(replacement.ImageIDs()...)
	var removed []string
	for _, imgID := range old.ImageIDs() {
		if !stillUsed.Has(imgID) {
			removed = append(removed, imgID)
		}
	}

	next := st.Clone()
	for i := range next.Articles {
		if next.Articles[i].ID == a.ID {
			next.Articles[i] = replacement
			break
		}
	}
	return next, removed
}

// DeleteArticle removes the article and its sub-article subtree, reports
// the image blobs they referenced, and applies the selection fallback:
// parent article if it survives, else the first remaining top-level
// article of the same folder, else none.
func DeleteArticle(st models.ProjectState, sess Session, id string) (models.ProjectState, Session, []string) {
	target, ok := st.Article(id)
	if !ok {
		return st, sess, nil
	}
	parentID := target.ParentID
	folderID := target.FolderID
	removed := tree.CollectSubtree(st.Articles, id)

	next := st.Clone()
	removedSet := models.IDSet{}
	var imageIDs []string
	kept := next.Articles[:0]
	for i := range next.Articles {
		a := next.Articles[i]
		if _, gone := removed[a.ID]; gone {
			removedSet.Add(a.ID)
			imageIDs = append(imageIDs, a.ImageIDs()...)
			continue
		}
		kept = append(kept, a)
	}
	next.Articles = kept
	sweepRemovedArticles(&next, removedSet)

	if removedSet.Has(sess.SelectedArticleID) {
		sess.SelectedArticleID = fallbackArticle(next, parentID, folderID)
	}
	return next, sess, imageIDs
}

// ReorderArticle exchanges the article's sort order with its adjacent
// sibling (same parent, same folder). A no-op at the boundary and for
// unknown ids.
func ReorderArticle(st models.ProjectState, id string, dir tree.Direction) models.ProjectState {
	i, j, ok := tree.Swap(st.Articles, id, dir)
	if !ok {
		return st
	}
	next := st.Clone()
	next.Articles[i].SortOrder, next.Articles[j].SortOrder = next.Articles[j].SortOrder, next.Articles[i].SortOrder
	return next
}

// ToggleArticleExpansion flips the article's presence in the expanded set.
func ToggleArticleExpansion(st models.ProjectState, id string) models.ProjectState {
	next := st.Clone()
	next.ExpandedArticleIDs.Toggle(id)
	return next
}

// AddRelatedArticle links other to the article. The relation is
// one-directional; linking both ways takes two calls. Unknown ids, self
// links and duplicates are silent no-ops.
func AddRelatedArticle(st models.ProjectState, id, other string) models.ProjectState {
	if id == other {
		return st
	}
	if _, ok := st.Article(other); !ok {
		return st
	}
	next := st.Clone()
	a, ok := next.Article(id)
	if !ok {
		return st
	}
	for _, rid := range a.RelatedArticleIDs {
		if rid == other {
			return st
		}
	}
	a.RelatedArticleIDs = append(a.RelatedArticleIDs, other)
	return next
}

// RemoveRelatedArticle unlinks other from the article. Silent no-op when
// the link does not exist.
func RemoveRelatedArticle(st models.ProjectState, id, other string) models.ProjectState {
	next := st.Clone()
	a, ok := next.Article(id)
	if !ok {
		return st
	}
	kept := a.RelatedArticleIDs[:0]
	for _, rid := range a.RelatedArticleIDs {
		if rid != other {
			kept = append(kept, rid)
		}
	}
	if len(kept) == 0 {
		a.RelatedArticleIDs = nil
	} else {
		a.RelatedArticleIDs = kept
	}
	return next
}

// fallbackArticle picks the selection after the selected article was
// deleted: its parent if it survives, otherwise the lowest-sorted
// remaining top-level article of the folder, otherwise none.
func fallbackArticle(st models.ProjectState, parentID, folderID string) string {
	if parentID != "" {
		if _, ok := st.Article(parentID); ok {
			return parentID
		}
	}
	best := ""
	bestOrder := 0
	for i := range st.Articles {
		a := &st.Articles[i]
		if a.FolderID != folderID || a.ParentID != "" {
			continue
		}
		if best == "" || a.SortOrder < bestOrder {
			best = a.ID
			bestOrder = a.SortOrder
		}
	}
	return best
}
