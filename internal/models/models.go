// Package models defines the project domain types: the folder and article
// hierarchies, article sections (text field groups and image galleries), and
// the ProjectState document that is the sole unit of structured persistence.
//
// All persisted types use camelCase JSON field names because the on-disk
// document and the backup archive format predate this codebase; the JSON
// shape is an external contract, not a style choice.
package models

import (
	"errors"

	"github.com/maruel/ksid"
)

var errFolderNameRequired = errors.New("folder name is required")

// NewID returns a fresh time-sortable identifier encoded as a string.
//
// IDs are stored as strings rather than ksid.ID because documents imported
// from older versions of the application carry arbitrary string ids that
// must survive migration unchanged.
func NewID() string {
	return ksid.NewID().String()
}

// Folder is a node in the folder hierarchy. Folders form an ordered,
// acyclic parent-pointer tree; the tree shape is derived, the flat
// collection in ProjectState is the source of truth.
type Folder struct {
	ID        string `json:"id" jsonschema:"description=Unique folder identifier"`
	Name      string `json:"name" jsonschema:"description=Display name"`
	Color     string `json:"color,omitempty" jsonschema:"description=Display tag color (opaque string)"`
	ParentID  string `json:"parentId,omitempty" jsonschema:"description=Parent folder ID; empty for root folders"`
	SortOrder int    `json:"sortOrder" jsonschema:"description=Position among siblings sharing the same parent"`
}

// Clone returns a copy of the Folder.
func (f *Folder) Clone() Folder {
	return *f
}

// Validate checks that the Folder is well-formed.
func (f *Folder) Validate() error {
	if f.Name == "" {
		return errFolderNameRequired
	}
	return nil
}

// Article is a node in the article hierarchy. Every article belongs to a
// folder; sub-articles inherit their parent article's folder at creation.
// Sibling order is scoped to (ParentID, FolderID).
type Article struct {
	ID                string    `json:"id" jsonschema:"description=Unique article identifier"`
	Title             string    `json:"title" jsonschema:"description=Article title"`
	FolderID          string    `json:"folderId" jsonschema:"description=Owning folder ID (required)"`
	ParentID          string    `json:"parentId,omitempty" jsonschema:"description=Parent article ID for sub-articles; empty for top-level articles"`
	SortOrder         int       `json:"sortOrder" jsonschema:"description=Position among siblings sharing the same parent and folder"`
	Sections          []Section `json:"sections,omitempty" jsonschema:"description=Ordered content sections"`
	RelatedArticleIDs []string  `json:"relatedArticleIds,omitempty" jsonschema:"description=Cross-links to other articles (not necessarily symmetric)"`
}

// Clone returns a deep copy of the Article.
func (a *Article) Clone() Article {
	c := *a
	if a.Sections != nil {
		c.Sections = make([]Section, len(a.Sections))
		for i := range a.Sections {
			c.Sections[i] = a.Sections[i].Clone()
		}
	}
	if a.RelatedArticleIDs != nil {
		c.RelatedArticleIDs = make([]string, len(a.RelatedArticleIDs))
		copy(c.RelatedArticleIDs, a.RelatedArticleIDs)
	}
	return c
}

// ImageIDs returns the ids of every image referenced by the article's
// sections, in document order.
func (a *Article) ImageIDs() []string {
	var ids []string
	for i := range a.Sections {
		s := &a.Sections[i]
		switch s.Kind {
		case SectionKindFields:
			// No images in field sections.
		case SectionKindImages:
			for _, img := range s.Images {
				ids = append(ids, img.ID)
			}
		}
	}
	return ids
}

// ImageBlob is a binary image payload stored in the blob store, keyed by
// the ImageRef id that references it. The payload is an opaque
// binary-as-text encoding produced by the interactive crop step.
type ImageBlob struct {
	ID      string `json:"id" jsonschema:"description=Image id; join key with ImageRef"`
	Payload string `json:"payload" jsonschema:"description=Opaque binary-as-text image payload"`
}

// Clone returns a copy of the ImageBlob.
func (b *ImageBlob) Clone() ImageBlob {
	return *b
}

// ProjectState is the entire structured project document. It is created
// empty, loaded from the structured store, or restored from a backup
// archive, and is replaced wholesale by any of those actions. The blob
// store is a sibling store keyed by ids referenced from within it, never
// embedded.
type ProjectState struct {
	Folders            []Folder  `json:"folders" jsonschema:"description=Flat collection of all folders"`
	Articles           []Article `json:"articles" jsonschema:"description=Flat collection of all articles"`
	ExpandedFolderIDs  IDSet     `json:"expandedFolderIds,omitempty" jsonschema:"description=Folder ids currently expanded in the tree view"`
	ExpandedArticleIDs IDSet     `json:"expandedArticleIds,omitempty" jsonschema:"description=Article ids currently expanded in the tree view"`
}

// NewProjectState returns an empty project.
func NewProjectState() ProjectState {
	return ProjectState{
		Folders:            []Folder{},
		Articles:           []Article{},
		ExpandedFolderIDs:  IDSet{},
		ExpandedArticleIDs: IDSet{},
	}
}

// Clone returns a deep copy of the ProjectState.
func (p *ProjectState) Clone() ProjectState {
	c := ProjectState{
		ExpandedFolderIDs:  p.ExpandedFolderIDs.Clone(),
		ExpandedArticleIDs: p.ExpandedArticleIDs.Clone(),
	}
	if p.Folders != nil {
		c.Folders = make([]Folder, len(p.Folders))
		copy(c.Folders, p.Folders)
	}
	if p.Articles != nil {
		c.Articles = make([]Article, len(p.Articles))
		for i := range p.Articles {
			c.Articles[i] = p.Articles[i].Clone()
		}
	}
	return c
}

// Folder returns the folder with the given id, or false.
func (p *ProjectState) Folder(id string) (*Folder, bool) {
	for i := range p.Folders {
		if p.Folders[i].ID == id {
			return &p.Folders[i], true
		}
	}
	return nil, false
}

// Article returns the article with the given id, or false.
func (p *ProjectState) Article(id string) (*Article, bool) {
	for i := range p.Articles {
		if p.Articles[i].ID == id {
			return &p.Articles[i], true
		}
	}
	return nil, false
}
