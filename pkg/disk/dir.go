package disk

import (
	"fmt"

	"github.com/watsonliu1/disk-simulator-v2/pkg/encode"
	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// The root directory is a single data block interpreted as a dense array of
// entry records. Slot 0 is the reserved "." self-entry; insertion scans from
// slot 1 and removal tombstones in place, so slots are reusable and never
// compacted.

type dirBlock struct {
	block Block
	buf   [BlockSize]byte
}

func (db *dirBlock) entry(slot int) DirEntry {
	var entry DirEntry
	off := Byte(slot) * DirEntrySize
	encode.DecodeDirEntry(
		&entry,
		(*[DirEntrySize]byte)(db.buf[off:off+DirEntrySize]),
	)
	return entry
}

func (db *dirBlock) setEntry(slot int, entry *DirEntry) error {
	off := Byte(slot) * DirEntrySize
	if err := encode.EncodeDirEntry(
		entry,
		(*[DirEntrySize]byte)(db.buf[off:off+DirEntrySize]),
	); err != nil {
		return fmt.Errorf("setting directory slot `%d`: %w", slot, err)
	}
	return nil
}

// loadRootDir reads the root inode and its directory block.
func (fs *FileSystem) loadRootDir() (Inode, *dirBlock, error) {
	root, err := fs.readRoot()
	if err != nil {
		return Inode{}, nil, err
	}

	db := &dirBlock{block: root.Blocks[0]}
	if err := fs.dev.ReadBlock(db.block, &db.buf); err != nil {
		return Inode{}, nil, fmt.Errorf("reading root directory block: %w", err)
	}
	return root, db, nil
}

func (fs *FileSystem) flushDir(db *dirBlock) error {
	if err := fs.dev.WriteBlock(db.block, &db.buf); err != nil {
		return fmt.Errorf("writing root directory block: %w", err)
	}
	return nil
}

// lookup returns the slot and inode of the first valid entry with the
// name, scanning from slot 1. NotFoundErr if no entry matches.
func (db *dirBlock) lookup(name string) (int, Ino, error) {
	for slot := 1; slot < DirEntriesPerBlock; slot++ {
		if entry := db.entry(slot); entry.Valid && entry.Name == name {
			return slot, entry.Ino, nil
		}
	}
	return 0, 0, fmt.Errorf("looking up `%s`: %w", name, NotFoundErr)
}

// insert writes the entry into the first free slot. ExistsErr if a valid
// entry already has the name; DirectoryFullErr if every non-reserved slot is
// valid.
func (db *dirBlock) insert(name string, ino Ino) error {
	free := -1
	for slot := 1; slot < DirEntriesPerBlock; slot++ {
		entry := db.entry(slot)
		if entry.Valid {
			if entry.Name == name {
				return fmt.Errorf("inserting `%s`: %w", name, ExistsErr)
			}
			continue
		}
		if free == -1 {
			free = slot
		}
	}
	if free == -1 {
		return fmt.Errorf("inserting `%s`: %w", name, DirectoryFullErr)
	}

	entry := DirEntry{Name: name, Ino: ino, Valid: true}
	if err := db.setEntry(free, &entry); err != nil {
		return fmt.Errorf("inserting `%s`: %w", name, err)
	}
	return nil
}

// remove tombstones the slot holding the named entry.
func (db *dirBlock) remove(name string) (Ino, error) {
	slot, ino, err := db.lookup(name)
	if err != nil {
		return 0, fmt.Errorf("removing `%s`: %w", name, err)
	}

	entry := db.entry(slot)
	entry.Valid = false
	if err := db.setEntry(slot, &entry); err != nil {
		return 0, fmt.Errorf("removing `%s`: %w", name, err)
	}
	return ino, nil
}

// list collects the valid entries, excluding the reserved "." slot.
func (db *dirBlock) list() []DirEntry {
	var entries []DirEntry
	for slot := 1; slot < DirEntriesPerBlock; slot++ {
		if entry := db.entry(slot); entry.Valid {
			entries = append(entries, entry)
		}
	}
	return entries
}
