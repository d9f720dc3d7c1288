package disk

import (
	"fmt"

	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// List returns the valid root entries, excluding the reserved "." slot.
func (fs *FileSystem) List() ([]DirEntry, error) {
	if !fs.mounted {
		return nil, fmt.Errorf("listing files: %w", NotMountedErr)
	}

	_, db, err := fs.loadRootDir()
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	return db.list(), nil
}

// FileSize reads the inode and returns its size.
func (fs *FileSystem) FileSize(ino Ino) (Byte, error) {
	if !fs.mounted {
		return 0, fmt.Errorf("sizing inode `%d`: %w", ino, NotMountedErr)
	}

	inode, err := fs.readInode(ino)
	if err != nil {
		return 0, fmt.Errorf("sizing inode `%d`: %w", ino, err)
	}
	if !inode.Used {
		return 0, fmt.Errorf("sizing inode `%d`: %w", ino, NotFoundErr)
	}
	return inode.Size, nil
}
