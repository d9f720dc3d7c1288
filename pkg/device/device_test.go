package device

import (
	"bytes"
	"errors"
	"testing"

	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

func TestBlockDeviceRoundTrip(t *testing.T) {
	dev := NewBlockDevice(NewMemoryVolume(8*BlockSize), 8)

	var out [BlockSize]byte
	copy(out[:], "payload")
	if err := dev.WriteBlock(3, &out); err != nil {
		t.Fatalf("writing block 3: %v", err)
	}

	var in [BlockSize]byte
	if err := dev.ReadBlock(3, &in); err != nil {
		t.Fatalf("reading block 3: %v", err)
	}
	if !bytes.Equal(in[:], out[:]) {
		t.Fatal("read back block does not match written block")
	}

	// Neighboring blocks are untouched.
	if err := dev.ReadBlock(2, &in); err != nil {
		t.Fatalf("reading block 2: %v", err)
	}
	if in != ([BlockSize]byte{}) {
		t.Fatal("write to block 3 leaked into block 2")
	}
}

func TestBlockDeviceBounds(t *testing.T) {
	dev := NewBlockDevice(NewMemoryVolume(4*BlockSize), 4)

	var buf [BlockSize]byte
	if err := dev.ReadBlock(4, &buf); !errors.Is(err, IOErr) {
		t.Fatalf("reading block 4 of 4: wanted IOErr; found %v", err)
	}
	if err := dev.WriteBlock(100, &buf); !errors.Is(err, IOErr) {
		t.Fatalf("writing block 100 of 4: wanted IOErr; found %v", err)
	}
}

func TestMemoryVolumeBounds(t *testing.T) {
	volume := NewMemoryVolume(16)

	if err := volume.Write(8, make([]byte, 16)); !errors.Is(err, IOErr) {
		t.Fatalf("overlong write: wanted IOErr; found %v", err)
	}
	if err := volume.Read(-1, make([]byte, 1)); !errors.Is(err, IOErr) {
		t.Fatalf("negative offset: wanted IOErr; found %v", err)
	}
	if err := volume.Write(0, make([]byte, 16)); err != nil {
		t.Fatalf("exact-fit write: %v", err)
	}
}
