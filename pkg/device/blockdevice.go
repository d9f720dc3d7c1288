package device

import (
	"fmt"

	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// BlockDevice layers fixed-size block I/O over a volume. It does not buffer:
// every call performs one positioned read or write of exactly BlockSize
// bytes.
type BlockDevice struct {
	volume      Volume
	totalBlocks Block
}

func NewBlockDevice(volume Volume, totalBlocks Block) *BlockDevice {
	return &BlockDevice{volume: volume, totalBlocks: totalBlocks}
}

func (dev *BlockDevice) TotalBlocks() Block { return dev.totalBlocks }

func (dev *BlockDevice) ReadBlock(n Block, buf *[BlockSize]byte) error {
	if n >= dev.totalBlocks {
		return fmt.Errorf(
			"reading block `%d` of `%d`: %w",
			n,
			dev.totalBlocks,
			IOErr,
		)
	}
	if err := dev.volume.Read(Byte(n)*BlockSize, buf[:]); err != nil {
		return fmt.Errorf("reading block `%d`: %w: %v", n, IOErr, err)
	}
	return nil
}

func (dev *BlockDevice) WriteBlock(n Block, buf *[BlockSize]byte) error {
	if n >= dev.totalBlocks {
		return fmt.Errorf(
			"writing block `%d` of `%d`: %w",
			n,
			dev.totalBlocks,
			IOErr,
		)
	}
	if err := dev.volume.Write(Byte(n)*BlockSize, buf[:]); err != nil {
		return fmt.Errorf("writing block `%d`: %w: %v", n, IOErr, err)
	}
	return nil
}

// ReadAt and WriteAt expose sub-block positioned access for records that do
// not fall on block boundaries (the inode table).
func (dev *BlockDevice) ReadAt(offset Byte, buf []byte) error {
	if offset < 0 || offset+Byte(len(buf)) > Byte(dev.totalBlocks)*BlockSize {
		return fmt.Errorf("reading `%d` bytes at offset `%d`: %w", len(buf), offset, IOErr)
	}
	if err := dev.volume.Read(offset, buf); err != nil {
		return fmt.Errorf("reading at offset `%d`: %w: %v", offset, IOErr, err)
	}
	return nil
}

func (dev *BlockDevice) WriteAt(offset Byte, buf []byte) error {
	if offset < 0 || offset+Byte(len(buf)) > Byte(dev.totalBlocks)*BlockSize {
		return fmt.Errorf("writing `%d` bytes at offset `%d`: %w", len(buf), offset, IOErr)
	}
	if err := dev.volume.Write(offset, buf); err != nil {
		return fmt.Errorf("writing at offset `%d`: %w: %v", offset, IOErr, err)
	}
	return nil
}
