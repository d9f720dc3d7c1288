package encode

import (
	"encoding/binary"

	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

func putIno(b []byte, start Byte, u Ino) {
	putU32(b, start, uint32(u))
}

func getIno(b []byte, start Byte) Ino {
	return Ino(getU32(b, start))
}

func putBlock(b []byte, start Byte, u Block) {
	putU32(b, start, uint32(u))
}

func getBlock(b []byte, start Byte) Block {
	return Block(getU32(b, start))
}

func putI64(b []byte, start Byte, i int64) {
	binary.LittleEndian.PutUint64(b[start:start+8], uint64(i))
}

func getI64(b []byte, start Byte) int64 {
	return int64(binary.LittleEndian.Uint64(b[start : start+8]))
}

func putU32(b []byte, start Byte, u uint32) {
	binary.LittleEndian.PutUint32(b[start:start+4], u)
}

func getU32(b []byte, start Byte) uint32 {
	return binary.LittleEndian.Uint32(b[start : start+4])
}

func putU8(b []byte, start Byte, u uint8) {
	b[start] = u
}

func getU8(b []byte, start Byte) uint8 {
	return b[start]
}
