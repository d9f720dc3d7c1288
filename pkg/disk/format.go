package disk

import (
	"fmt"
	"os"
	"time"

	"github.com/watsonliu1/disk-simulator-v2/pkg/device"
	"github.com/watsonliu1/disk-simulator-v2/pkg/encode"
	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// Format initializes the backing image to a consistent empty state: the
// superblock, two zeroed bitmaps, a zeroed inode table, and a root directory
// holding only its "." self-entry. Legal only while unmounted; the state
// remains Unmounted afterwards.
func (fs *FileSystem) Format(geometry Geometry) error {
	if fs.mounted {
		return fmt.Errorf("formatting `%s`: already mounted", fs.path)
	}

	file, err := os.OpenFile(fs.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("formatting `%s`: %w: %v", fs.path, IOErr, err)
	}
	defer file.Close()

	if err := file.Truncate(int64(Byte(geometry.TotalBlocks) * BlockSize)); err != nil {
		return fmt.Errorf("formatting `%s`: %w: %v", fs.path, IOErr, err)
	}

	layout := ComputeLayout(geometry)
	fs.super = Superblock{
		BlockSize:   BlockSize,
		TotalBlocks: geometry.TotalBlocks,
		InodeBlocks: layout.InodeBlocks,
		DataBlocks:  layout.DataBlocks,
		TotalInodes: geometry.TotalInodes,
		FreeBlocks:  layout.DataBlocks,
		FreeInodes:  geometry.TotalInodes,
		BlockBitmap: layout.BlockBitmapStart,
		InodeBitmap: layout.InodeBitmapStart,
		InodeStart:  layout.InodeStart,
		DataStart:   layout.DataStart,
	}

	fs.volume = device.NewFileVolume(file)
	fs.dev = device.NewBlockDevice(fs.volume, geometry.TotalBlocks)
	defer func() {
		fs.dev = nil
		fs.volume = device.FileVolume{}
	}()

	if err := fs.writeSuperblock(); err != nil {
		return fmt.Errorf("formatting `%s`: %w", fs.path, err)
	}

	// Truncate already zeroed both bitmap regions and the inode table, but
	// write the bitmap blocks explicitly so a reformat of a dirty image
	// cannot inherit stale bits.
	var zero [BlockSize]byte
	for i := Block(0); i < layout.BlockBitmapBlocks; i++ {
		if err := fs.dev.WriteBlock(fs.super.BlockBitmap+i, &zero); err != nil {
			return fmt.Errorf("formatting `%s`: zeroing block bitmap: %w", fs.path, err)
		}
	}
	for i := Block(0); i < layout.InodeBitmapBlocks; i++ {
		if err := fs.dev.WriteBlock(fs.super.InodeBitmap+i, &zero); err != nil {
			return fmt.Errorf("formatting `%s`: zeroing inode bitmap: %w", fs.path, err)
		}
	}

	if err := fs.setInodeBitmap(InoRoot, true); err != nil {
		return fmt.Errorf("formatting `%s`: reserving root inode: %w", fs.path, err)
	}

	for ino := Ino(1); ino < geometry.TotalInodes; ino++ {
		record := Inode{Ino: ino}
		if err := fs.writeInode(&record); err != nil {
			return fmt.Errorf("formatting `%s`: initializing inode table: %w", fs.path, err)
		}
	}

	rootBlock, err := fs.findFreeBlock()
	if err != nil {
		return fmt.Errorf("formatting `%s`: allocating root block: %w", fs.path, err)
	}

	now := time.Now().Unix()
	root := Inode{
		Ino:        InoRoot,
		Size:       BlockSize,
		FileType:   FileTypeDir,
		Used:       true,
		CreateTime: now,
		ModifyTime: now,
	}
	root.Blocks[0] = rootBlock
	if err := fs.writeInode(&root); err != nil {
		return fmt.Errorf("formatting `%s`: writing root inode: %w", fs.path, err)
	}

	var dirBuf [BlockSize]byte
	self := DirEntry{Name: ".", Ino: InoRoot, Valid: true}
	if err := encode.EncodeDirEntry(
		&self,
		(*[DirEntrySize]byte)(dirBuf[:DirEntrySize]),
	); err != nil {
		return fmt.Errorf("formatting `%s`: %w", fs.path, err)
	}

	if err := fs.setBlockBitmap(rootBlock, true); err != nil {
		return fmt.Errorf("formatting `%s`: reserving root block: %w", fs.path, err)
	}
	if err := fs.dev.WriteBlock(rootBlock, &dirBuf); err != nil {
		return fmt.Errorf("formatting `%s`: writing root directory: %w", fs.path, err)
	}

	return nil
}
