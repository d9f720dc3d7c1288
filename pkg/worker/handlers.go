package worker

import (
	"fmt"
	"strings"

	"github.com/watsonliu1/disk-simulator-v2/pkg/command"
	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// The handlers below run with the filesystem lock held; each composes facade
// calls into one command's compound operation and renders the outcome as the
// task's result string.

func (pool *Pool) handleList() string {
	entries, err := pool.fs.List()
	if err != nil {
		return fmt.Sprintf("ls failed: %v\n", err)
	}

	var b strings.Builder
	b.WriteString("files:\n")
	for _, entry := range entries {
		fmt.Fprintf(&b, "  %-27s (inode: %d)\n", entry.Name, entry.Ino)
	}
	if len(entries) == 0 {
		b.WriteString("  (none)\n")
	}
	return b.String()
}

func (pool *Pool) handleCat(args []string) string {
	if len(args) < 1 {
		return "cat: missing file name\n"
	}
	name := args[0]

	ino, err := pool.fs.Open(name)
	if err != nil {
		return fmt.Sprintf("cat: %v\n", err)
	}

	size, err := pool.fs.FileSize(ino)
	if err != nil {
		return fmt.Sprintf("cat: %v\n", err)
	}
	if size <= 0 {
		return "file empty\n"
	}

	buf := make([]byte, size)
	n, err := pool.fs.Read(ino, buf, 0)
	if err != nil {
		return fmt.Sprintf("cat: %v\n", err)
	}
	return fmt.Sprintf("%s\n", buf[:n])
}

func (pool *Pool) handleRemove(args []string) string {
	if len(args) < 1 {
		return "rm: missing file name\n"
	}
	name := args[0]

	if err := pool.fs.Delete(name); err != nil {
		return fmt.Sprintf("rm: %v\n", err)
	}
	return fmt.Sprintf("deleted %s\n", name)
}

// handleCopy duplicates src into a freshly created dst. A short or failed
// transfer deletes the half-written destination so a failed copy leaves no
// trace.
func (pool *Pool) handleCopy(args []string) string {
	if len(args) < 2 {
		return "copy: missing source or destination name\n"
	}
	src, dst := args[0], args[1]

	srcIno, err := pool.fs.Open(src)
	if err != nil {
		return fmt.Sprintf("copy: source not found: %v\n", err)
	}

	dstIno, err := pool.fs.Create(dst)
	if err != nil {
		return fmt.Sprintf("copy: target creation failed: %v\n", err)
	}

	size, err := pool.fs.FileSize(srcIno)
	if err != nil {
		return fmt.Sprintf("copy: %v\n", err)
	}
	if size <= 0 {
		return fmt.Sprintf("copied empty %s to %s\n", src, dst)
	}

	buf := make([]byte, size)
	read, err := pool.fs.Read(srcIno, buf, 0)
	if err != nil {
		_ = pool.fs.Delete(dst)
		return fmt.Sprintf("copy: reading source failed: %v\n", err)
	}

	written, err := pool.fs.Write(dstIno, buf[:read], 0)
	if err != nil || written != read {
		_ = pool.fs.Delete(dst)
		if err == nil {
			err = fmt.Errorf(
				"wrote `%d` of `%d` bytes: %w",
				written,
				read,
				OutOfBlocksErr,
			)
		}
		return fmt.Sprintf("copy: writing target failed: %v\n", err)
	}

	return fmt.Sprintf("copied %s to %s (%d bytes)\n", src, dst, written)
}

// handleWrite overwrites the named file from offset 0, creating it first if
// it does not exist. Content shorter than the previous content leaves the
// trailing bytes in place: overwrite does not shrink.
func (pool *Pool) handleWrite(args []string) string {
	if len(args) < 2 {
		return "write: missing file name or content\n"
	}
	name := args[0]
	content := command.JoinContent(args[1:])

	ino, err := pool.fs.Open(name)
	if err != nil {
		ino, err = pool.fs.Create(name)
		if err != nil {
			return fmt.Sprintf("write: %v\n", err)
		}
	}

	if content == "" {
		return fmt.Sprintf("wrote 0 bytes to %s\n", name)
	}

	written, err := pool.fs.Write(ino, []byte(content), 0)
	if err != nil {
		return fmt.Sprintf("write: %v\n", err)
	}
	return fmt.Sprintf("wrote %d bytes to %s\n", written, name)
}

func (pool *Pool) handleTouch(args []string) string {
	if len(args) < 1 {
		return "touch: missing file name\n"
	}
	name := args[0]

	if _, err := pool.fs.Open(name); err == nil {
		return fmt.Sprintf("touch: %s already exists\n", name)
	}

	ino, err := pool.fs.Create(name)
	if err != nil {
		return fmt.Sprintf("touch: %v\n", err)
	}
	return fmt.Sprintf("created %s (inode: %d)\n", name, ino)
}
