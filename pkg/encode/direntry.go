package encode

import (
	"bytes"
	"fmt"

	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// EncodeDirEntry writes one directory entry record. The name field is
// NUL-terminated; names longer than MaxNameLen are rejected by the directory
// layer before they reach the codec.
func EncodeDirEntry(entry *DirEntry, b *[DirEntrySize]byte) error {
	p := b[:]

	if len(entry.Name) > MaxNameLen {
		return fmt.Errorf(
			"encoding dir entry `%s`: name length `%d`: %w",
			entry.Name,
			len(entry.Name),
			InvalidArgumentErr,
		)
	}

	for i := dirEntryNameStart; i < dirEntryNameEnd; i++ {
		p[i] = 0
	}
	copy(p[dirEntryNameStart:dirEntryNameEnd], entry.Name)

	putIno(p, dirEntryInoStart, entry.Ino)
	if entry.Valid {
		putU8(p, dirEntryValidStart, 1)
	} else {
		putU8(p, dirEntryValidStart, 0)
	}
	return nil
}

// DecodeDirEntry decodes one directory entry record. A zeroed record decodes
// to an invalid entry with an empty name; callers treat it as a free slot.
func DecodeDirEntry(entry *DirEntry, b *[DirEntrySize]byte) {
	p := b[:]

	name := p[dirEntryNameStart:dirEntryNameEnd]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	entry.Name = string(name)
	entry.Ino = getIno(p, dirEntryInoStart)
	entry.Valid = getU8(p, dirEntryValidStart) != 0
}

const (
	dirEntryNameStart = 0
	dirEntryNameSize  = 32
	dirEntryNameEnd   = dirEntryNameStart + dirEntryNameSize

	dirEntryInoStart = dirEntryNameEnd
	dirEntryInoSize  = 4
	dirEntryInoEnd   = dirEntryInoStart + dirEntryInoSize

	dirEntryValidStart = dirEntryInoEnd
	dirEntryValidSize  = 1
	dirEntryValidEnd   = dirEntryValidStart + dirEntryValidSize
)
