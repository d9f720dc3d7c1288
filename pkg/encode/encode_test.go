package encode

import (
	"errors"
	"testing"

	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

func TestSuperblockRoundTrip(t *testing.T) {
	sb := Superblock{
		BlockSize:   BlockSize,
		TotalBlocks: 25600,
		InodeBlocks: 32,
		DataBlocks:  25565,
		TotalInodes: 1024,
		FreeBlocks:  25564,
		FreeInodes:  1023,
		BlockBitmap: 1,
		InodeBitmap: 2,
		InodeStart:  3,
		DataStart:   35,
	}

	var buf [SuperblockSize]byte
	EncodeSuperblock(&sb, &buf)

	var decoded Superblock
	if err := DecodeSuperblock(&decoded, &buf); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if decoded != sb {
		t.Fatalf("round trip: wanted %+v; found %+v", sb, decoded)
	}
}

func TestDecodeSuperblockRejectsBadMagic(t *testing.T) {
	var buf [SuperblockSize]byte
	copy(buf[:], "NOTSIMFS")

	var sb Superblock
	if err := DecodeSuperblock(&sb, &buf); !errors.Is(err, BadFilesystemErr) {
		t.Fatalf("wanted BadFilesystemErr; found %v", err)
	}
	if sb != (Superblock{}) {
		t.Fatalf("superblock mutated on failed decode: %+v", sb)
	}
}

func TestDecodeInodeValidatesUsedRecords(t *testing.T) {
	var buf [InodeSize]byte
	buf[inodeUsedStart] = 1
	buf[inodeTypeStart] = 9 // not a file type

	var inode Inode
	if err := DecodeInode(&inode, &buf); !errors.Is(err, InvalidFileTypeErr) {
		t.Fatalf("wanted InvalidFileTypeErr; found %v", err)
	}

	// An all-zero record is a legal free inode, not a corruption.
	buf = [InodeSize]byte{}
	if err := DecodeInode(&inode, &buf); err != nil {
		t.Fatalf("decoding zero record: %v", err)
	}
	if inode.Used {
		t.Fatal("zero record decoded as used")
	}
}

func TestDirEntryRejectsLongName(t *testing.T) {
	entry := DirEntry{
		Name:  "0123456789012345678901234567", // 28 chars
		Ino:   3,
		Valid: true,
	}
	var buf [DirEntrySize]byte
	if err := EncodeDirEntry(&entry, &buf); !errors.Is(err, InvalidArgumentErr) {
		t.Fatalf("wanted InvalidArgumentErr; found %v", err)
	}
}

func TestDirEntryTombstone(t *testing.T) {
	entry := DirEntry{Name: "victim", Ino: 7, Valid: true}
	var buf [DirEntrySize]byte
	if err := EncodeDirEntry(&entry, &buf); err != nil {
		t.Fatalf("encoding: %v", err)
	}

	// Re-encoding with Valid=false over the same slot leaves the record
	// decodable as a free slot.
	entry.Valid = false
	if err := EncodeDirEntry(&entry, &buf); err != nil {
		t.Fatalf("tombstoning: %v", err)
	}

	var decoded DirEntry
	DecodeDirEntry(&decoded, &buf)
	if decoded.Valid {
		t.Fatal("tombstoned entry decoded as valid")
	}
	if decoded.Name != "victim" || decoded.Ino != 7 {
		t.Fatalf("tombstone lost record fields: %+v", decoded)
	}
}
