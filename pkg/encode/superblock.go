package encode

import (
	"bytes"
	"fmt"

	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// EncodeSuperblock writes the superblock record into a SuperblockSize
// buffer. All integer fields are little-endian uint32.
func EncodeSuperblock(sb *Superblock, b *[SuperblockSize]byte) {
	p := b[:]

	copy(p[superMagicStart:superMagicEnd], Magic)
	p[superMagicEnd-1] = 0

	putU32(p, superBlockSizeStart, uint32(sb.BlockSize))
	putBlock(p, superTotalBlocksStart, sb.TotalBlocks)
	putBlock(p, superInodeBlocksStart, sb.InodeBlocks)
	putBlock(p, superDataBlocksStart, sb.DataBlocks)
	putIno(p, superTotalInodesStart, sb.TotalInodes)
	putBlock(p, superFreeBlocksStart, sb.FreeBlocks)
	putIno(p, superFreeInodesStart, sb.FreeInodes)
	putBlock(p, superBlockBitmapStart, sb.BlockBitmap)
	putBlock(p, superInodeBitmapStart, sb.InodeBitmap)
	putBlock(p, superInodeStartStart, sb.InodeStart)
	putBlock(p, superDataStartStart, sb.DataStart)
}

// DecodeSuperblock validates the magic tag and decodes the record. The
// superblock pointee is not mutated on error.
func DecodeSuperblock(sb *Superblock, b *[SuperblockSize]byte) error {
	p := b[:]

	if !bytes.Equal(p[superMagicStart:superMagicStart+Byte(len(Magic))], []byte(Magic)) {
		return fmt.Errorf(
			"decoding superblock: magic `%q`: %w",
			p[superMagicStart:superMagicEnd],
			BadFilesystemErr,
		)
	}

	sb.BlockSize = Byte(getU32(p, superBlockSizeStart))
	sb.TotalBlocks = getBlock(p, superTotalBlocksStart)
	sb.InodeBlocks = getBlock(p, superInodeBlocksStart)
	sb.DataBlocks = getBlock(p, superDataBlocksStart)
	sb.TotalInodes = getIno(p, superTotalInodesStart)
	sb.FreeBlocks = getBlock(p, superFreeBlocksStart)
	sb.FreeInodes = getIno(p, superFreeInodesStart)
	sb.BlockBitmap = getBlock(p, superBlockBitmapStart)
	sb.InodeBitmap = getBlock(p, superInodeBitmapStart)
	sb.InodeStart = getBlock(p, superInodeStartStart)
	sb.DataStart = getBlock(p, superDataStartStart)

	return nil
}

const (
	superMagicStart = 0
	superMagicSize  = 8
	superMagicEnd   = superMagicStart + superMagicSize

	superBlockSizeStart = superMagicEnd
	superBlockSizeSize  = 4
	superBlockSizeEnd   = superBlockSizeStart + superBlockSizeSize

	superTotalBlocksStart = superBlockSizeEnd
	superTotalBlocksSize  = 4
	superTotalBlocksEnd   = superTotalBlocksStart + superTotalBlocksSize

	superInodeBlocksStart = superTotalBlocksEnd
	superInodeBlocksSize  = 4
	superInodeBlocksEnd   = superInodeBlocksStart + superInodeBlocksSize

	superDataBlocksStart = superInodeBlocksEnd
	superDataBlocksSize  = 4
	superDataBlocksEnd   = superDataBlocksStart + superDataBlocksSize

	superTotalInodesStart = superDataBlocksEnd
	superTotalInodesSize  = 4
	superTotalInodesEnd   = superTotalInodesStart + superTotalInodesSize

	superFreeBlocksStart = superTotalInodesEnd
	superFreeBlocksSize  = 4
	superFreeBlocksEnd   = superFreeBlocksStart + superFreeBlocksSize

	superFreeInodesStart = superFreeBlocksEnd
	superFreeInodesSize  = 4
	superFreeInodesEnd   = superFreeInodesStart + superFreeInodesSize

	superBlockBitmapStart = superFreeInodesEnd
	superBlockBitmapSize  = 4
	superBlockBitmapEnd   = superBlockBitmapStart + superBlockBitmapSize

	superInodeBitmapStart = superBlockBitmapEnd
	superInodeBitmapSize  = 4
	superInodeBitmapEnd   = superInodeBitmapStart + superInodeBitmapSize

	superInodeStartStart = superInodeBitmapEnd
	superInodeStartSize  = 4
	superInodeStartEnd   = superInodeStartStart + superInodeStartSize

	superDataStartStart = superInodeStartEnd
	superDataStartSize  = 4
	superDataStartEnd   = superDataStartStart + superDataStartSize

	// SuperblockSize is the serialized record footprint. The record lives in
	// the leading bytes of block 0; the remainder of the block is zero.
	SuperblockSize = superDataStartEnd
)
