package database

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/ds124wfegd/image-enhancer/internal/entity"
	"github.com/ds124wfegd/image-enhancer/internal/pkg/storage"
)

func NewImageRepository(storage storage.FileStorage) ImageRepository {
	return &fileImageRepository{storage: storage}
}

func (r *fileImageRepository) Save(image *entity.Image) error {
	data, err := json.Marshal(image)
	if err != nil {
		return err
	}

	return r.storage.SaveBytes(r.metadataPath(image.ID), data)
}

func (r *fileImageRepository) FindByID(id string) (*entity.Image, error) {
	reader, err := r.storage.Get(r.metadataPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer reader.Close()

	var image entity.Image
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&image); err != nil {
		return nil, err
	}

	return &image, nil
}

// Delete removes the record and any output files it points at. Paths
// stored on the record are public URLs rooted at the static dir, so
// the leading path element is stripped before touching storage.
func (r *fileImageRepository) Delete(id string) error {
	image, err := r.FindByID(id)
	if err != nil {
		return err
	}

	if image != nil {
		for _, p := range []string{image.OutputPath, image.ThumbnailPath} {
			if p == "" {
				continue
			}
			rel := stripStaticPrefix(p)
			if err := r.storage.Delete(rel); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
	}

	if err := r.storage.Delete(r.metadataPath(id)); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func (r *fileImageRepository) metadataPath(id string) string {
	return filepath.Join("metadata", id+".json")
}

// Public paths look like "static/output/<name>"; storage paths are
// rooted below the static dir, so the "static/" element is dropped.
func stripStaticPrefix(p string) string {
	return strings.TrimPrefix(filepath.ToSlash(p), "static/")
}
