package shader

import (
	"fmt"
	"path/filepath"

	"github.com/hack-pad/hackpadfs"
	osfs "github.com/hack-pad/hackpadfs/os"
)

// OpenDir returns the directory dir of the host file system as an asset
// root. Debug dumps written through it land next to the templates.
func OpenDir(dir string) (hackpadfs.FS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("shader: asset root %s: %w", dir, err)
	}
	host := osfs.NewFS()
	rel, err := host.FromOSPath(abs)
	if err != nil {
		return nil, fmt.Errorf("shader: asset root %s: %w", dir, err)
	}
	sub, err := host.Sub(rel)
	if err != nil {
		return nil, fmt.Errorf("shader: asset root %s: %w", dir, err)
	}
	root, ok := sub.(hackpadfs.FS)
	if !ok {
		return nil, fmt.Errorf("shader: asset root %s is not a hackpadfs file system", dir)
	}
	return root, nil
}
