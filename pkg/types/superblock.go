package types

// Magic identifies a formatted image. Mount compares the leading 7 bytes of
// the 8-byte on-disk field against this tag.
const Magic = "SIMFSv1"

const (
	// DefaultBlockCount sizes a default image at 100 MiB.
	DefaultBlockCount Block = (100 * 1024 * 1024) / Block(BlockSize)
)

// Superblock is the in-memory copy of the image's metadata record. It is
// loaded by mount and written back on every bitmap mutation and on unmount.
type Superblock struct {
	BlockSize   Byte
	TotalBlocks Block
	InodeBlocks Block
	DataBlocks  Block
	TotalInodes Ino
	FreeBlocks  Block
	FreeInodes  Ino

	// Region start block numbers, in layout order:
	// [0] superblock | block bitmap | inode bitmap | inode table | data.
	BlockBitmap Block
	InodeBitmap Block
	InodeStart  Block
	DataStart   Block
}
