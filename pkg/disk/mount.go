package disk

import (
	"fmt"
	"os"

	"github.com/watsonliu1/disk-simulator-v2/pkg/device"
	"github.com/watsonliu1/disk-simulator-v2/pkg/encode"
	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// Mount opens the backing file, loads the superblock, and validates the
// magic tag. Mounting an already-mounted filesystem is a no-op.
func (fs *FileSystem) Mount() error {
	if fs.mounted {
		return nil
	}

	file, err := os.OpenFile(fs.path, os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("mounting `%s`: %w: %v", fs.path, IOErr, err)
	}

	volume := device.NewFileVolume(file)
	var buf [encode.SuperblockSize]byte
	if err := volume.Read(0, buf[:]); err != nil {
		file.Close()
		return fmt.Errorf("mounting `%s`: reading superblock: %w", fs.path, IOErr)
	}

	var super Superblock
	if err := encode.DecodeSuperblock(&super, &buf); err != nil {
		file.Close()
		return fmt.Errorf("mounting `%s`: %w", fs.path, err)
	}

	fs.volume = volume
	fs.dev = device.NewBlockDevice(volume, super.TotalBlocks)
	fs.super = super
	fs.mounted = true
	return nil
}

// Unmount writes the in-memory superblock back and closes the backing file.
// Unmounting an unmounted filesystem is a no-op.
func (fs *FileSystem) Unmount() error {
	if !fs.mounted {
		return nil
	}

	if err := fs.writeSuperblock(); err != nil {
		return fmt.Errorf("unmounting `%s`: %w", fs.path, err)
	}
	if err := fs.volume.Close(); err != nil {
		return fmt.Errorf("unmounting `%s`: %w: %v", fs.path, IOErr, err)
	}

	fs.dev = nil
	fs.volume = device.FileVolume{}
	fs.mounted = false
	return nil
}

// writeSuperblock seeks to byte 0 and writes the record. Every bitmap
// mutation is followed by this writeback so the free counters stay durable.
func (fs *FileSystem) writeSuperblock() error {
	var buf [encode.SuperblockSize]byte
	encode.EncodeSuperblock(&fs.super, &buf)
	if err := fs.dev.WriteAt(0, buf[:]); err != nil {
		return fmt.Errorf("writing superblock: %w", err)
	}
	return nil
}
