// Package backup serializes the whole project (structured state plus
// image payloads) to and from a portable JSON archive.
//
// The archive format is {projectState, images:[{id,payload},...]}. Legacy
// archives are a bare ProjectState, possibly with payloads inlined in the
// galleries; those are recognized and normalized by the migrate package.
package backup

import (
	"encoding/json"
	"fmt"

	"github.com/designzioncontato-crypto/estudiodoescritor/internal/blobstore"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/migrate"
	"github.com/designzioncontato-crypto/estudiodoescritor/internal/models"
)

// Archive is the current portable backup format.
type Archive struct {
	ProjectState models.ProjectState `json:"projectState" jsonschema:"description=The full structured project document"`
	Images       []models.ImageBlob  `json:"images" jsonschema:"description=Every image payload referenced by the project"`
}

// Export builds an archive from a state snapshot and every blob in the
// store.
func Export(st models.ProjectState, blobs blobstore.Store) ([]byte, error) {
	images, err := blobs.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to collect images: %w", err)
	}
	if images == nil {
		images = []models.ImageBlob{}
	}
	arch := Archive{ProjectState: st.Clone(), Images: images}
	data, err := json.MarshalIndent(&arch, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode archive: %w", err)
	}
	return data, nil
}

// Import parses and normalizes an archive in any supported format. On
// error nothing is returned, so the caller's prior state stays intact.
func Import(data []byte) (*migrate.Result, error) {
	return migrate.Normalize(data)
}
