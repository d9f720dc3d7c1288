package disk

import (
	"fmt"

	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// The two on-disk bitmaps cover the data region (bit i ↔ block data_start+i)
// and the inode table (bit i ↔ inode i). Every set loads the bitmap block
// holding the target bit, flips it, and writes the block and the superblock
// back. The free counters move only on an actual transition, so repeated
// same-value sets are idempotent.

const bitsPerBlock = Block(BlockSize) * 8

// setBlockBitmap marks a data-region block used or free. The block number is
// absolute; anything outside [data_start, data_start+data_blocks) is
// rejected.
func (fs *FileSystem) setBlockBitmap(block Block, used bool) error {
	dataEnd := fs.super.DataStart + fs.super.DataBlocks
	if block < fs.super.DataStart || block >= dataEnd {
		return fmt.Errorf(
			"setting block bitmap bit for block `%d` outside data region "+
				"[`%d`, `%d`): %w",
			block,
			fs.super.DataStart,
			dataEnd,
			InvalidArgumentErr,
		)
	}

	idx := block - fs.super.DataStart
	flipped, err := fs.setBitmapBit(fs.super.BlockBitmap, idx, used)
	if err != nil {
		return fmt.Errorf("setting block bitmap bit `%d`: %w", idx, err)
	}
	if flipped {
		if used {
			fs.super.FreeBlocks--
		} else {
			fs.super.FreeBlocks++
		}
		if err := fs.writeSuperblock(); err != nil {
			return fmt.Errorf("setting block bitmap bit `%d`: %w", idx, err)
		}
	}
	return nil
}

// setInodeBitmap marks an inode used or free.
func (fs *FileSystem) setInodeBitmap(ino Ino, used bool) error {
	if ino >= fs.super.TotalInodes {
		return fmt.Errorf(
			"setting inode bitmap bit for inode `%d` of `%d`: %w",
			ino,
			fs.super.TotalInodes,
			InvalidArgumentErr,
		)
	}

	flipped, err := fs.setBitmapBit(fs.super.InodeBitmap, Block(ino), used)
	if err != nil {
		return fmt.Errorf("setting inode bitmap bit `%d`: %w", ino, err)
	}
	if flipped {
		if used {
			fs.super.FreeInodes--
		} else {
			fs.super.FreeInodes++
		}
		if err := fs.writeSuperblock(); err != nil {
			return fmt.Errorf("setting inode bitmap bit `%d`: %w", ino, err)
		}
	}
	return nil
}

// setBitmapBit flips bit idx of the bitmap starting at block start and
// reports whether the bit actually changed.
func (fs *FileSystem) setBitmapBit(
	start Block,
	idx Block,
	value bool,
) (bool, error) {
	target := start + idx/bitsPerBlock
	bitInBlock := idx % bitsPerBlock
	byt := bitInBlock / 8
	bit := bitInBlock % 8

	var buf [BlockSize]byte
	if err := fs.dev.ReadBlock(target, &buf); err != nil {
		return false, err
	}

	mask := byte(1) << bit
	current := buf[byt]&mask != 0
	if current == value {
		return false, nil
	}

	if value {
		buf[byt] |= mask
	} else {
		buf[byt] &^= mask
	}

	if err := fs.dev.WriteBlock(target, &buf); err != nil {
		return false, err
	}
	return true, nil
}

// findFreeBlock scans the block bitmap in block-sized chunks and returns the
// absolute block number of the smallest free data block.
func (fs *FileSystem) findFreeBlock() (Block, error) {
	idx, err := fs.findZeroBit(
		fs.super.BlockBitmap,
		Block(fs.super.DataBlocks),
	)
	if err != nil {
		return BlockNil, fmt.Errorf("finding free block: %w", err)
	}
	return fs.super.DataStart + idx, nil
}

// findFreeInode returns the smallest free inode number.
func (fs *FileSystem) findFreeInode() (Ino, error) {
	idx, err := fs.findZeroBit(
		fs.super.InodeBitmap,
		Block(fs.super.TotalInodes),
	)
	if err != nil {
		return 0, fmt.Errorf("finding free inode: %w", err)
	}
	return Ino(idx), nil
}

func (fs *FileSystem) findZeroBit(start Block, limit Block) (Block, error) {
	var buf [BlockSize]byte
	chunks := Block(0)
	if limit > 0 {
		chunks = (limit-1)/bitsPerBlock + 1
	}

	for chunk := Block(0); chunk < chunks; chunk++ {
		if err := fs.dev.ReadBlock(start+chunk, &buf); err != nil {
			return 0, err
		}
		for byt := Block(0); byt < Block(BlockSize); byt++ {
			if buf[byt] == 0xff {
				continue
			}
			for bit := Block(0); bit < 8; bit++ {
				idx := chunk*bitsPerBlock + byt*8 + bit
				if idx >= limit {
					return 0, outOfBitsErr(start == fs.super.InodeBitmap)
				}
				if buf[byt]&(1<<bit) == 0 {
					return idx, nil
				}
			}
		}
	}
	return 0, outOfBitsErr(start == fs.super.InodeBitmap)
}

func outOfBitsErr(inodes bool) error {
	if inodes {
		return OutOfInodesErr
	}
	return OutOfBlocksErr
}
