package blob_storage

import (
	"context"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"

	"github.com/tuanng/mediahost/internal/application/service"
)

// FSStore keeps blobs on a local filesystem, mirroring the earlier
// disk-backed revision of the service. Keys map directly to file paths
// under the root.
type FSStore struct {
	fs      afero.Fs
	baseURL string
}

// NewFSStore serves blobs from root on the host filesystem.
func NewFSStore(root, publicBaseURL string) service.BlobStore {
	return &FSStore{
		fs:      afero.NewBasePathFs(afero.NewOsFs(), root),
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// NewMemStore is an in-memory variant used by tests.
func NewMemStore(publicBaseURL string) service.BlobStore {
	return &FSStore{
		fs:      afero.NewMemMapFs(),
		baseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

func (s *FSStore) Put(_ context.Context, key string, data []byte, _ string) error {
	if dir := path.Dir(key); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return afero.WriteFile(s.fs, key, data, 0o644)
}

func (s *FSStore) Delete(_ context.Context, key string) error {
	err := s.fs.Remove(key)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FSStore) DeletePrefix(_ context.Context, prefix string) (int, error) {
	dir := strings.TrimRight(prefix, "/")

	count := 0
	err := afero.Walk(s.fs, dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasPrefix(p, dir) {
			count++
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	if err := s.fs.RemoveAll(dir); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *FSStore) Exists(_ context.Context, key string) (bool, error) {
	return afero.Exists(s.fs, key)
}

func (s *FSStore) PublicURL(key string) string {
	return s.baseURL + "/" + key
}

// ReadBlob returns a stored object's bytes. Used by tests to verify
// round-trips; not part of the BlobStore contract.
func (s *FSStore) ReadBlob(key string) ([]byte, error) {
	return afero.ReadFile(s.fs, key)
}
