package disk

import (
	"fmt"
	"time"

	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// Delete frees the file's data blocks and inode, then tombstones its
// directory entry. The bitmap frees run first so the free counters already
// account for the file when the entry disappears.
func (fs *FileSystem) Delete(name string) error {
	if !fs.mounted {
		return fmt.Errorf("deleting `%s`: %w", name, NotMountedErr)
	}

	root, db, err := fs.loadRootDir()
	if err != nil {
		return fmt.Errorf("deleting `%s`: %w", name, err)
	}

	_, ino, err := db.lookup(name)
	if err != nil {
		return fmt.Errorf("deleting `%s`: %w", name, err)
	}

	inode, err := fs.readInode(ino)
	if err != nil {
		return fmt.Errorf("deleting `%s`: %w", name, err)
	}
	if !inode.Used || inode.FileType != FileTypeRegular {
		return fmt.Errorf(
			"deleting `%s`: inode `%d` used=%t type=%s: %w",
			name,
			ino,
			inode.Used,
			inode.FileType,
			NotFoundErr,
		)
	}

	for i := 0; i < DirectBlocksCount; i++ {
		if inode.Blocks[i] == BlockNil {
			continue
		}
		if err := fs.setBlockBitmap(inode.Blocks[i], false); err != nil {
			return fmt.Errorf("deleting `%s`: %w", name, err)
		}
		inode.Blocks[i] = BlockNil
	}

	inode.Used = false
	inode.Size = 0
	if err := fs.writeInode(&inode); err != nil {
		return fmt.Errorf("deleting `%s`: %w", name, err)
	}
	if err := fs.setInodeBitmap(ino, false); err != nil {
		return fmt.Errorf("deleting `%s`: %w", name, err)
	}

	if _, err := db.remove(name); err != nil {
		return fmt.Errorf("deleting `%s`: %w", name, err)
	}
	if err := fs.flushDir(db); err != nil {
		return fmt.Errorf("deleting `%s`: %w", name, err)
	}

	root.ModifyTime = time.Now().Unix()
	if err := fs.writeInode(&root); err != nil {
		return fmt.Errorf("deleting `%s`: %w", name, err)
	}
	return nil
}
