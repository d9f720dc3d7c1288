package types

// ConstError is a string-constant error type. Errors declared as ConstError
// constants are comparable with errors.Is even after wrapping.
type ConstError string

func (err ConstError) Error() string { return string(err) }

const (
	// NotMountedErr is returned by any file operation invoked while the
	// filesystem is unmounted.
	NotMountedErr ConstError = "filesystem not mounted"

	// BadFilesystemErr is returned by mount when the superblock magic does
	// not match.
	BadFilesystemErr ConstError = "bad filesystem magic"

	// NotFoundErr is returned when no valid directory entry has the given
	// name, or an inode lookup hit an unused or wrong-type record.
	NotFoundErr ConstError = "file not found"

	// ExistsErr is returned by create when the directory already has a valid
	// entry with the name.
	ExistsErr ConstError = "file already exists"

	OutOfInodesErr   ConstError = "out of inodes"
	OutOfBlocksErr   ConstError = "out of blocks"
	DirectoryFullErr ConstError = "directory full"

	// InvalidArgumentErr covers empty or over-long names, bad offsets, and
	// nil buffers.
	InvalidArgumentErr ConstError = "invalid argument"

	// IOErr wraps any block-level read or write failure.
	IOErr ConstError = "i/o failed"

	// CorruptErr flags a structural violation detected at runtime, e.g. the
	// root inode's type is not directory.
	CorruptErr ConstError = "filesystem corrupt"
)
