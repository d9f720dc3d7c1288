// Package disk implements the filesystem facade: the on-disk layout, the
// allocation bitmaps, the fixed inode table, the flat root directory, and the
// mount/format/unmount lifecycle. One mutex owns all mutable state, including
// the open backing device; concurrent callers hold it (Lock/Unlock) around
// every exported operation.
package disk

import (
	"sync"

	"github.com/watsonliu1/disk-simulator-v2/pkg/device"
	"github.com/watsonliu1/disk-simulator-v2/pkg/math"
	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// Geometry parameterizes format. The defaults are the format's contract;
// tests shrink them to keep images small.
type Geometry struct {
	TotalBlocks Block
	TotalInodes Ino
}

func DefaultGeometry() Geometry {
	return Geometry{
		TotalBlocks: DefaultBlockCount,
		TotalInodes: DefaultInodeCount,
	}
}

// Layout is the block accounting derived from a geometry at format time.
type Layout struct {
	BlockBitmapBlocks Block
	InodeBitmapBlocks Block
	InodeBlocks       Block
	DataBlocks        Block

	BlockBitmapStart Block
	InodeBitmapStart Block
	InodeStart       Block
	DataStart        Block
}

func ComputeLayout(geometry Geometry) Layout {
	const superBlocks = 1

	blockBitmapBytes := math.DivRoundUp(Byte(geometry.TotalBlocks), 8)
	blockBitmapBlocks := Block(math.DivRoundUp(blockBitmapBytes, BlockSize))

	inodeBitmapBytes := math.DivRoundUp(Byte(geometry.TotalInodes), 8)
	inodeBitmapBlocks := Block(math.DivRoundUp(inodeBitmapBytes, BlockSize))

	inodeBlocks := Block(math.DivRoundUp(
		Byte(geometry.TotalInodes)*InodeSize,
		BlockSize,
	))

	layout := Layout{
		BlockBitmapBlocks: blockBitmapBlocks,
		InodeBitmapBlocks: inodeBitmapBlocks,
		InodeBlocks:       inodeBlocks,
	}
	layout.BlockBitmapStart = superBlocks
	layout.InodeBitmapStart = layout.BlockBitmapStart + blockBitmapBlocks
	layout.InodeStart = layout.InodeBitmapStart + inodeBitmapBlocks
	layout.DataStart = layout.InodeStart + inodeBlocks
	layout.DataBlocks = geometry.TotalBlocks - layout.DataStart
	return layout
}

// FileSystem is the facade over one backing image. The zero state is
// Unmounted; Format and Mount are legal there, file operations are not.
//
// The struct owns one mutex covering every mutable field, the open backing
// device included. The methods themselves do not lock: concurrent callers
// (the worker pool, the administrative path) hold Lock around each operation
// or compound sequence, which is what keeps a multi-step handler such as COPY
// atomic with respect to other workers.
type FileSystem struct {
	mu      sync.Mutex
	path    string
	dev     *device.BlockDevice
	volume  device.FileVolume
	super   Superblock
	mounted bool
}

func New(path string) *FileSystem {
	return &FileSystem{path: path}
}

func (fs *FileSystem) Path() string { return fs.path }

func (fs *FileSystem) Mounted() bool { return fs.mounted }

// Lock acquires the filesystem-wide serialization mutex.
func (fs *FileSystem) Lock()   { fs.mu.Lock() }
func (fs *FileSystem) Unlock() { fs.mu.Unlock() }
