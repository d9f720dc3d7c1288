package encode

import (
	"fmt"

	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// EncodeInode writes one inode record. The record is InodeSize bytes; the
// tail beyond the last field stays zero.
func EncodeInode(inode *Inode, b *[InodeSize]byte) {
	p := b[:]

	putIno(p, inodeNumStart, inode.Ino)
	putU32(p, inodeSizeStart, uint32(inode.Size))

	for i := 0; i < DirectBlocksCount; i++ {
		putBlock(p, inodeBlocksStart+Byte(i)*4, inode.Blocks[i])
	}

	putU8(p, inodeTypeStart, uint8(inode.FileType))
	if inode.Used {
		putU8(p, inodeUsedStart, 1)
	} else {
		putU8(p, inodeUsedStart, 0)
	}
	putI64(p, inodeCreateTimeStart, inode.CreateTime)
	putI64(p, inodeModifyTimeStart, inode.ModifyTime)
}

// DecodeInode decodes one inode record. Unused records may be all-zero, so
// the file type is validated only when the record is marked used.
func DecodeInode(inode *Inode, b *[InodeSize]byte) error {
	p := b[:]

	used := getU8(p, inodeUsedStart) != 0
	ft := FileType(getU8(p, inodeTypeStart))
	if used {
		if err := ft.Validate(); err != nil {
			return fmt.Errorf("decoding inode: %w", err)
		}
	}

	inode.Ino = getIno(p, inodeNumStart)
	inode.Size = Byte(getU32(p, inodeSizeStart))
	for i := 0; i < DirectBlocksCount; i++ {
		inode.Blocks[i] = getBlock(p, inodeBlocksStart+Byte(i)*4)
	}
	inode.FileType = ft
	inode.Used = used
	inode.CreateTime = getI64(p, inodeCreateTimeStart)
	inode.ModifyTime = getI64(p, inodeModifyTimeStart)

	return nil
}

const (
	inodeNumStart = 0
	inodeNumSize  = 4
	inodeNumEnd   = inodeNumStart + inodeNumSize

	inodeSizeStart = inodeNumEnd
	inodeSizeSize  = 4
	inodeSizeEnd   = inodeSizeStart + inodeSizeSize

	inodeBlocksStart = inodeSizeEnd
	inodeBlocksSize  = DirectBlocksCount * 4
	inodeBlocksEnd   = inodeBlocksStart + inodeBlocksSize

	inodeTypeStart = inodeBlocksEnd
	inodeTypeSize  = 1
	inodeTypeEnd   = inodeTypeStart + inodeTypeSize

	inodeUsedStart = inodeTypeEnd
	inodeUsedSize  = 1
	inodeUsedEnd   = inodeUsedStart + inodeUsedSize

	inodeCreateTimeStart = inodeUsedEnd
	inodeCreateTimeSize  = 8
	inodeCreateTimeEnd   = inodeCreateTimeStart + inodeCreateTimeSize

	inodeModifyTimeStart = inodeCreateTimeEnd
	inodeModifyTimeSize  = 8
	inodeModifyTimeEnd   = inodeModifyTimeStart + inodeModifyTimeSize
)
