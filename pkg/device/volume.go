package device

import (
	"fmt"
	"os"

	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// Volume is the offset-addressed byte interface under the block device.
type Volume interface {
	Read(offset Byte, buffer []byte) error
	Write(offset Byte, buffer []byte) error
}

// FileVolume backs a volume with positioned I/O against a host file.
type FileVolume struct {
	file *os.File
}

func NewFileVolume(file *os.File) FileVolume {
	return FileVolume{file}
}

func (volume FileVolume) Read(offset Byte, buffer []byte) error {
	if _, err := volume.file.ReadAt(buffer, int64(offset)); err != nil {
		return fmt.Errorf(
			"reading file `%s` at offset `%d`: %w",
			volume.file.Name(),
			offset,
			err,
		)
	}
	return nil
}

func (volume FileVolume) Write(offset Byte, buffer []byte) error {
	if _, err := volume.file.WriteAt(buffer, int64(offset)); err != nil {
		return fmt.Errorf(
			"writing file `%s` at offset `%d`: %w",
			volume.file.Name(),
			offset,
			err,
		)
	}
	return nil
}

func (volume FileVolume) Close() error { return volume.file.Close() }

// MemoryVolume backs a volume with a byte slice. Reads and writes past the
// end fail the way a truncated backing file would.
type MemoryVolume struct {
	buf []byte
}

func NewMemoryVolume(capacity Byte) *MemoryVolume {
	return &MemoryVolume{make([]byte, capacity)}
}

func (volume *MemoryVolume) Read(offset Byte, buffer []byte) error {
	if offset < 0 || offset+Byte(len(buffer)) > Byte(len(volume.buf)) {
		return fmt.Errorf(
			"reading `%d` bytes from memory volume of `%d` bytes at offset "+
				"`%d`: %w",
			len(buffer),
			len(volume.buf),
			offset,
			IOErr,
		)
	}
	copy(buffer, volume.buf[offset:])
	return nil
}

func (volume *MemoryVolume) Write(offset Byte, buffer []byte) error {
	if offset < 0 || offset+Byte(len(buffer)) > Byte(len(volume.buf)) {
		return fmt.Errorf(
			"writing `%d` bytes to memory volume of `%d` bytes at offset "+
				"`%d`: %w",
			len(buffer),
			len(volume.buf),
			offset,
			IOErr,
		)
	}
	copy(volume.buf[offset:], buffer)
	return nil
}

var (
	_ Volume = FileVolume{}
	_ Volume = (*MemoryVolume)(nil)
)
