// Service wires the pure aggregate operations to the two stores.

package project

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/designzioncontato-crypto/estudiodoescritor/internal/backup"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/blobstore"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/docstore"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/migrate"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/models"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/tree"
)

// Service owns the in-memory ProjectState and keeps the structured store
// and the blob store consistent with it.
//
// Every mutation re-persists the full document. The in-memory state is
// authoritative: a failed persist (e.g. capacity exceeded) is returned to
// be surfaced to the user but does not roll the mutation back. Blob
// deletions triggered by cascades are best-effort cleanup; their failure
// is logged and never affects the structured mutation.
type Service struct {
	docs  *docstore.Store
	blobs blobstore.Store

	mu    sync.Mutex
	state models.ProjectState
	sess  Session
}

// NewService returns a Service over the given stores with an empty
// project. Call Load to read the persisted document.
func NewService(docs *docstore.Store, blobs blobstore.Store) *Service {
	return &Service{docs: docs, blobs: blobs, state: models.NewProjectState()}
}

// State returns a deep copy of the current project state.
func (s *Service) State() models.ProjectState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Session returns the current selection state.
func (s *Service) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess
}

// Load reads the persisted document, normalizes it across schema
// versions, migrates any legacy inline images into the blob store, and
// applies the initial auto-selection. A missing document yields an empty
// project.
func (s *Service) Load(ctx context.Context) error {
	doc, ok, err := s.docs.Load()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok {
		s.state = models.NewProjectState()
		s.sess = Session{}
		return nil
	}
	res, err := migrate.Normalize(doc)
	if err != nil {
		return err
	}
	if len(res.Blobs) > 0 {
		if err := s.blobs.PutAll(res.Blobs); err != nil {
			return fmt.Errorf("failed to migrate inline images: %w", err)
		}
		slog.InfoContext(ctx, "Migrated legacy inline images", "count", len(res.Blobs))
	}
	s.state = res.State
	s.sess = AutoSelect(s.state, Session{})
	return nil
}

// Reset replaces the project with an empty one and persists it. The blob
// store is cleared: a new project owns no images.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = models.NewProjectState()
	s.sess = Session{}
	if err := s.blobs.Clear(); err != nil {
		slog.WarnContext(ctx, "Failed to clear blob store", "err", err)
	}
	return s.persist(ctx)
}

// ImportArchive replaces the project with the archive's contents. On a
// malformed archive nothing changes: the archive's images are validated
// and written before the state is replaced, and payloads the archive does
// not carry are removed only after the import has succeeded.
func (s *Service) ImportArchive(ctx context.Context, data []byte) error {
	res, err := backup.Import(data)
	if err != nil {
		return err
	}
	keep := models.IDSet{}
	for _, b := range res.Blobs {
		if b.ID == "" {
			return fmt.Errorf("%w: image with empty id", migrate.ErrMalformedDocument)
		}
		keep.Add(b.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prior, err := s.blobs.GetAll()
	if err != nil {
		return fmt.Errorf("failed to read image store: %w", err)
	}
	if err := s.blobs.PutAll(res.Blobs); err != nil {
		return fmt.Errorf("failed to restore images: %w", err)
	}
	var stale []string
	for _, b := range prior {
		if !keep.Has(b.ID) {
			stale = append(stale, b.ID)
		}
	}
	s.state = res.State
	s.sess = AutoSelect(s.state, Session{})
	err = s.persist(ctx)
	s.removeBlobs(ctx, stale)
	return err
}

// ExportArchive serializes the project and every image payload.
func (s *Service) ExportArchive(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	st := s.state.Clone()
	s.mu.Unlock()
	return backup.Export(st, s.blobs)
}

// AttachImage stores an image payload and appends its reference to the
// given images section of the article. Returns the new image id. A silent
// no-op ("" id, nil error) if the article or section is missing or the
// section is not a gallery.
func (s *Service) AttachImage(ctx context.Context, articleID string, sectionIndex int, caption, payload string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.Clone()
	a, ok := next.Article(articleID)
	if !ok || sectionIndex < 0 || sectionIndex >= len(a.Sections) {
		return "", nil
	}
	sec := &a.Sections[sectionIndex]
	switch sec.Kind {
	case models.SectionKindImages:
	default:
		// Fields sections and unrecognized kinds hold no images.
		return "", nil
	}
	id := models.NewID()
	// The payload must be durable before the reference is: a reference
	// without a payload renders as "image not found".
	if err := s.blobs.Put(id, payload); err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	sec.Images = append(sec.Images, models.ImageRef{ID: id, Caption: caption})
	s.state = next
	return id, s.persist(ctx)
}

// CreateFolder applies the aggregate operation and persists.
func (s *Service) CreateFolder(ctx context.Context, parentID string) (Hint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, hint := CreateFolder(s.state, parentID)
	s.state = next
	s.sess = s.sess.SelectFolder(hint.FocusID)
	return hint, s.persist(ctx)
}

// RenameFolder applies the aggregate operation and persists.
func (s *Service) RenameFolder(ctx context.Context, id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = RenameFolder(s.state, id, name)
	return s.persist(ctx)
}

// RecolorFolder applies the aggregate operation and persists.
func (s *Service) RecolorFolder(ctx context.Context, id, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = RecolorFolder(s.state, id, color)
	return s.persist(ctx)
}

// DeleteFolder applies the cascading delete, persists, and then removes
// the orphaned image blobs best-effort.
func (s *Service) DeleteFolder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, sess, imageIDs := DeleteFolder(s.state, s.sess, id)
	s.state = next
	s.sess = sess
	err := s.persist(ctx)
	s.removeBlobs(ctx, imageIDs)
	return err
}

// ReorderFolder applies the sibling swap and persists.
func (s *Service) ReorderFolder(ctx context.Context, id string, dir tree.Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = ReorderFolder(s.state, id, dir)
	return s.persist(ctx)
}

// ToggleFolderExpansion flips the expansion state and persists.
func (s *Service) ToggleFolderExpansion(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = ToggleFolderExpansion(s.state, id)
	return s.persist(ctx)
}

// SelectFolder updates the selection. Selecting a folder always clears
// the selected article. Selection is session state; nothing is persisted.
func (s *Service) SelectFolder(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = s.sess.SelectFolder(id)
}

// SelectArticle updates the selected article.
func (s *Service) SelectArticle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = s.sess.SelectArticle(id)
}

// CreateArticle applies the aggregate operation and persists.
func (s *Service) CreateArticle(ctx context.Context, folderID string) (Hint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, hint := CreateArticle(s.state, folderID)
	s.state = next
	if hint.FocusID != "" {
		s.sess = s.sess.SelectArticle(hint.FocusID)
	}
	return hint, s.persist(ctx)
}

// CreateSubArticle applies the aggregate operation and persists.
func (s *Service) CreateSubArticle(ctx context.Context, parentID string) (Hint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, hint := CreateSubArticle(s.state, parentID)
	s.state = next
	if hint.FocusID != "" {
		s.sess = s.sess.SelectArticle(hint.FocusID)
	}
	return hint, s.persist(ctx)
}

// UpdateArticleTitle applies the aggregate operation and persists.
func (s *Service) UpdateArticleTitle(ctx context.Context, id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = UpdateArticleTitle(s.state, id, title)
	return s.persist(ctx)
}

// SaveArticle replaces the article record, persists, and removes images
// the new revision no longer references.
func (s *Service) SaveArticle(ctx context.Context, a models.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, removed := SaveArticle(s.state, a)
	s.state = next
	err := s.persist(ctx)
	s.removeBlobs(ctx, removed)
	return err
}

// DeleteArticle applies the cascading delete, persists, and removes the
// orphaned image blobs best-effort.
func (s *Service) DeleteArticle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, sess, imageIDs := DeleteArticle(s.state, s.sess, id)
	s.state = next
	s.sess = sess
	err := s.persist(ctx)
	s.removeBlobs(ctx, imageIDs)
	return err
}

// ReorderArticle applies the sibling swap and persists.
func (s *Service) ReorderArticle(ctx context.Context, id string, dir tree.Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = ReorderArticle(s.state, id, dir)
	return s.persist(ctx)
}

// ToggleArticleExpansion flips the expansion state and persists.
func (s *Service) ToggleArticleExpansion(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = ToggleArticleExpansion(s.state, id)
	return s.persist(ctx)
}

// persist writes the full document. Callers hold s.mu.
func (s *Service) persist(ctx context.Context) error {
	doc, err := json.Marshal(&s.state)
	if err != nil {
		return fmt.Errorf("failed to encode project: %w", err)
	}
	if err := s.docs.Save(doc); err != nil {
		// The in-memory state stays authoritative; the caller surfaces
		// the failure to the user.
		return err
	}
	return nil
}

// removeBlobs deletes image payloads best-effort: failures are logged
// and never affect the already-applied structured mutation.
func (s *Service) removeBlobs(ctx context.Context, ids []string) {
	for _, id := range ids {
		if err := s.blobs.Delete(id); err != nil {
			slog.WarnContext(ctx, "Failed to delete image blob", "id", id, "err", err)
		}
	}
}
