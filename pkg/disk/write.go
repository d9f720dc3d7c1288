package disk

import (
	"fmt"
	"time"

	"github.com/watsonliu1/disk-simulator-v2/pkg/math"
	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// Write overlays p onto the file starting at offset, block by block,
// allocating data blocks on first touch. A file is bounded by its sixteen
// direct blocks: running past the last one stops the write short and the
// partial count is returned. There is no rollback; blocks allocated before a
// failure stay visible on disk.
func (fs *FileSystem) Write(ino Ino, p []byte, offset Byte) (Byte, error) {
	if !fs.mounted {
		return 0, fmt.Errorf("writing inode `%d`: %w", ino, NotMountedErr)
	}
	if len(p) == 0 || offset < 0 {
		return 0, fmt.Errorf(
			"writing `%d` bytes to inode `%d` at offset `%d`: %w",
			len(p),
			ino,
			offset,
			InvalidArgumentErr,
		)
	}

	inode, err := fs.readInode(ino)
	if err != nil {
		return 0, fmt.Errorf("writing inode `%d`: %w", ino, err)
	}
	if !inode.Used || inode.FileType != FileTypeRegular {
		return 0, fmt.Errorf("writing inode `%d`: %w", ino, NotFoundErr)
	}

	var block [BlockSize]byte
	size := Byte(len(p))
	written := Byte(0)
	current := offset
	for written < size {
		blockIdx := current / BlockSize
		if blockIdx >= DirectBlocksCount {
			break
		}

		blockNum := inode.Blocks[blockIdx]
		if blockNum == BlockNil {
			blockNum, err = fs.findFreeBlock()
			if err != nil {
				if written == 0 {
					return 0, fmt.Errorf("writing inode `%d`: %w", ino, err)
				}
				break
			}
			if err := fs.setBlockBitmap(blockNum, true); err != nil {
				return written, fmt.Errorf("writing inode `%d`: %w", ino, err)
			}
			inode.Blocks[blockIdx] = blockNum
			block = [BlockSize]byte{}
		} else {
			if err := fs.dev.ReadBlock(blockNum, &block); err != nil {
				return written, fmt.Errorf("writing inode `%d`: %w", ino, err)
			}
		}

		inBlock := current % BlockSize
		n := math.Min(BlockSize-inBlock, size-written)
		copy(block[inBlock:inBlock+n], p[written:written+n])
		if err := fs.dev.WriteBlock(blockNum, &block); err != nil {
			return written, fmt.Errorf("writing inode `%d`: %w", ino, err)
		}

		written += n
		current += n
	}

	inode.Size = math.Max(inode.Size, offset+written)
	inode.ModifyTime = time.Now().Unix()
	if err := fs.writeInode(&inode); err != nil {
		return written, fmt.Errorf("writing inode `%d`: %w", ino, err)
	}

	return written, nil
}
