package disk

import (
	"errors"
	"fmt"
	"time"

	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// Create allocates an inode for an empty regular file and links it into the
// root directory. The inode record is written before its bitmap bit is set,
// so a failed record write cannot leak an allocation; a failed directory
// insert rolls the bitmap bit back.
func (fs *FileSystem) Create(name string) (Ino, error) {
	if !fs.mounted {
		return 0, fmt.Errorf("creating `%s`: %w", name, NotMountedErr)
	}
	if name == "" || len(name) > MaxNameLen {
		return 0, fmt.Errorf(
			"creating `%s`: name length `%d`: %w",
			name,
			len(name),
			InvalidArgumentErr,
		)
	}

	root, db, err := fs.loadRootDir()
	if err != nil {
		return 0, fmt.Errorf("creating `%s`: %w", name, err)
	}
	if _, _, err := db.lookup(name); err == nil {
		return 0, fmt.Errorf("creating `%s`: %w", name, ExistsErr)
	} else if !errors.Is(err, NotFoundErr) {
		return 0, fmt.Errorf("creating `%s`: %w", name, err)
	}

	ino, err := fs.findFreeInode()
	if err != nil {
		return 0, fmt.Errorf("creating `%s`: %w", name, err)
	}

	now := time.Now().Unix()
	inode := Inode{
		Ino:        ino,
		FileType:   FileTypeRegular,
		Used:       true,
		CreateTime: now,
		ModifyTime: now,
	}
	if err := fs.writeInode(&inode); err != nil {
		return 0, fmt.Errorf("creating `%s`: %w", name, err)
	}
	if err := fs.setInodeBitmap(ino, true); err != nil {
		return 0, fmt.Errorf("creating `%s`: %w", name, err)
	}

	if err := db.insert(name, ino); err != nil {
		return 0, fs.rollbackCreate(name, ino, err)
	}
	if err := fs.flushDir(db); err != nil {
		return 0, fs.rollbackCreate(name, ino, err)
	}

	// Touch the root's modify time; the file exists either way, so a failure
	// here is not fatal.
	root.ModifyTime = now
	_ = fs.writeInode(&root)
	return ino, nil
}

// rollbackCreate clears the bitmap bit of an inode the directory never
// learned about.
func (fs *FileSystem) rollbackCreate(name string, ino Ino, cause error) error {
	if err := fs.setInodeBitmap(ino, false); err != nil {
		return fmt.Errorf(
			"creating `%s`: %v; rolling back inode `%d`: %w",
			name,
			cause,
			ino,
			err,
		)
	}
	return fmt.Errorf("creating `%s`: %w", name, cause)
}
