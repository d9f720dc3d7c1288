package disk

import (
	"fmt"

	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// Info is a snapshot of the mounted image's metadata for the `info` verb.
type Info struct {
	Magic       string
	BlockSize   Byte
	TotalBlocks Block
	TotalBytes  Byte
	UsedBytes   Byte
	FreeBytes   Byte
	TotalInodes Ino
	UsedInodes  Ino
	FreeInodes  Ino
}

func (fs *FileSystem) Info() (Info, error) {
	if !fs.mounted {
		return Info{}, fmt.Errorf("reading filesystem info: %w", NotMountedErr)
	}

	super := &fs.super
	return Info{
		Magic:       Magic,
		BlockSize:   super.BlockSize,
		TotalBlocks: super.TotalBlocks,
		TotalBytes:  Byte(super.TotalBlocks) * super.BlockSize,
		UsedBytes:   Byte(super.DataBlocks-super.FreeBlocks) * super.BlockSize,
		FreeBytes:   Byte(super.FreeBlocks) * super.BlockSize,
		TotalInodes: super.TotalInodes,
		UsedInodes:  super.TotalInodes - super.FreeInodes,
		FreeInodes:  super.FreeInodes,
	}, nil
}

// Superblock returns a copy of the in-memory superblock. Tests use it to
// check counter coherence against the bitmaps.
func (fs *FileSystem) Superblock() Superblock { return fs.super }
