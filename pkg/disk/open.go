package disk

import (
	"fmt"

	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// Open resolves a name to its inode number through the root directory.
func (fs *FileSystem) Open(name string) (Ino, error) {
	if !fs.mounted {
		return 0, fmt.Errorf("opening `%s`: %w", name, NotMountedErr)
	}

	_, db, err := fs.loadRootDir()
	if err != nil {
		return 0, fmt.Errorf("opening `%s`: %w", name, err)
	}

	_, ino, err := db.lookup(name)
	if err != nil {
		return 0, fmt.Errorf("opening `%s`: %w", name, err)
	}
	return ino, nil
}
