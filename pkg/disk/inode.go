package disk

import (
	"fmt"

	"github.com/watsonliu1/disk-simulator-v2/pkg/encode"
	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// inodePos computes the byte offset of an inode record within the image:
// inode table start plus the record stride. The stride is InodeSize, the
// same constant the format writes with.
func (fs *FileSystem) inodePos(ino Ino) (Byte, error) {
	if ino >= fs.super.TotalInodes {
		return 0, fmt.Errorf(
			"locating inode `%d` of `%d`: %w",
			ino,
			fs.super.TotalInodes,
			InvalidArgumentErr,
		)
	}
	return Byte(fs.super.InodeStart)*BlockSize + Byte(ino)*InodeSize, nil
}

func (fs *FileSystem) readInode(ino Ino) (Inode, error) {
	pos, err := fs.inodePos(ino)
	if err != nil {
		return Inode{}, fmt.Errorf("reading inode `%d`: %w", ino, err)
	}

	var buf [InodeSize]byte
	if err := fs.dev.ReadAt(pos, buf[:]); err != nil {
		return Inode{}, fmt.Errorf("reading inode `%d`: %w", ino, err)
	}

	var inode Inode
	if err := encode.DecodeInode(&inode, &buf); err != nil {
		return Inode{}, fmt.Errorf("reading inode `%d`: %w", ino, err)
	}
	return inode, nil
}

func (fs *FileSystem) writeInode(inode *Inode) error {
	pos, err := fs.inodePos(inode.Ino)
	if err != nil {
		return fmt.Errorf("writing inode `%d`: %w", inode.Ino, err)
	}

	var buf [InodeSize]byte
	encode.EncodeInode(inode, &buf)
	if err := fs.dev.WriteAt(pos, buf[:]); err != nil {
		return fmt.Errorf("writing inode `%d`: %w", inode.Ino, err)
	}
	return nil
}

// IsInodeUsed reports the used flag of the inode record.
func (fs *FileSystem) IsInodeUsed(ino Ino) (bool, error) {
	if !fs.mounted {
		return false, NotMountedErr
	}
	inode, err := fs.readInode(ino)
	if err != nil {
		return false, err
	}
	return inode.Used, nil
}

// readRoot loads inode 0 and asserts the structural invariants that every
// directory operation depends on: the root is a used directory with a data
// block.
func (fs *FileSystem) readRoot() (Inode, error) {
	root, err := fs.readInode(InoRoot)
	if err != nil {
		return Inode{}, fmt.Errorf("reading root inode: %w", err)
	}
	if !root.Used || root.FileType != FileTypeDir || root.Blocks[0] == BlockNil {
		return Inode{}, fmt.Errorf(
			"reading root inode: used=%t type=%s block=%d: %w",
			root.Used,
			root.FileType,
			root.Blocks[0],
			CorruptErr,
		)
	}
	return root, nil
}
