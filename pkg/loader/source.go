package loader

import (
	"context"
	"os"
	"path/filepath"

	"github.com/navkit-dev/navkit/internal/errors"
)

// Source fetches raw route-module manifests by module name.
type Source interface {
	// Fetch returns the manifest document for the named module.
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context, name string) ([]byte, error)

func (f SourceFunc) Fetch(ctx context.Context, name string) ([]byte, error) {
	return f(ctx, name)
}

// DiskSource reads manifests from a local directory, one file per module
// named <module>.json.
type DiskSource struct {
	dir string
}

// NewDiskSource creates a DiskSource rooted at dir.
func NewDiskSource(dir string) *DiskSource {
	return &DiskSource{dir: dir}
}

func (s *DiskSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("N062").WithMessagef("no manifest for module %q in %s", name, s.dir)
		}
		return nil, errors.FromError(err, "N062")
	}
	return data, nil
}
