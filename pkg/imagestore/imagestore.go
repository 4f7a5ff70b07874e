// Package imagestore abstracts where uploaded review and menu images live.
package imagestore

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Stored struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

type Store interface {
	Upload(data []byte, ext string) (*Stored, error)
	Delete(publicID string) error
}

// DiskStore writes files under Dir and serves them at BaseURL. The router
// exposes Dir as a static route.
type DiskStore struct {
	Dir     string
	BaseURL string // e.g. "/uploads"
}

func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create upload dir")
	}
	return &DiskStore{Dir: dir, BaseURL: baseURL}, nil
}

func (d *DiskStore) Upload(data []byte, ext string) (*Stored, error) {
	id := uuid.NewString()
	name := id + ext
	if err := os.WriteFile(filepath.Join(d.Dir, name), data, 0o644); err != nil {
		return nil, errors.Wrap(err, "write image")
	}
	return &Stored{URL: d.BaseURL + "/" + name, PublicID: name}, nil
}

func (d *DiskStore) Delete(publicID string) error {
	err := os.Remove(filepath.Join(d.Dir, filepath.Base(publicID)))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "delete image")
	}
	return nil
}
