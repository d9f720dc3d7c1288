package disk

import (
	"fmt"

	"github.com/watsonliu1/disk-simulator-v2/pkg/math"
	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// Read copies up to len(p) bytes of the file into p starting at offset,
// block by block. The effective read size is clamped to the file size; an
// unallocated block pointer terminates the read early with whatever was
// copied so far.
func (fs *FileSystem) Read(ino Ino, p []byte, offset Byte) (Byte, error) {
	if !fs.mounted {
		return 0, fmt.Errorf("reading inode `%d`: %w", ino, NotMountedErr)
	}
	if offset < 0 {
		return 0, fmt.Errorf(
			"reading inode `%d` at offset `%d`: %w",
			ino,
			offset,
			InvalidArgumentErr,
		)
	}

	inode, err := fs.readInode(ino)
	if err != nil {
		return 0, fmt.Errorf("reading inode `%d`: %w", ino, err)
	}
	if !inode.Used || inode.FileType != FileTypeRegular {
		return 0, fmt.Errorf("reading inode `%d`: %w", ino, NotFoundErr)
	}

	size := math.Min(Byte(len(p)), math.Max(inode.Size-offset, 0))
	if size == 0 {
		return 0, nil
	}

	var block [BlockSize]byte
	read := Byte(0)
	current := offset
	for read < size {
		blockIdx := current / BlockSize
		if blockIdx >= DirectBlocksCount {
			break
		}
		blockNum := inode.Blocks[blockIdx]
		if blockNum == BlockNil {
			break
		}

		if err := fs.dev.ReadBlock(blockNum, &block); err != nil {
			return read, fmt.Errorf("reading inode `%d`: %w", ino, err)
		}

		inBlock := current % BlockSize
		n := math.Min(BlockSize-inBlock, size-read)
		copy(p[read:read+n], block[inBlock:inBlock+n])
		read += n
		current += n
	}

	return read, nil
}
