package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/watsonliu1/disk-simulator-v2/pkg/disk"
	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

// runSelfTest formats the image and drives the full operation sequence
// against it, reporting each step. It returns true only when every step
// passes.
func runSelfTest(image string, out io.Writer) bool {
	fs := disk.New(image)
	total, passed := 0, 0

	step := func(name string, ok bool) {
		total++
		status := "FAIL"
		if ok {
			passed++
			status = "ok"
		}
		fmt.Fprintf(out, "%2d  %-24s %s\n", total, name, status)
	}

	step("format", fs.Format(disk.DefaultGeometry()) == nil)
	step("mount", fs.Mount() == nil)

	ino, err := fs.Create("test1.txt")
	step("create file", err == nil && ino >= 1)

	_, err = fs.Create("test1.txt")
	step("reject duplicate name", err != nil)

	content := []byte("hello, disk fs!")
	written, err := fs.Write(ino, content, 0)
	step("write file", err == nil && written == Byte(len(content)))

	buf := make([]byte, len(content))
	read, err := fs.Read(ino, buf, 0)
	step("read file", err == nil && read == Byte(len(content)) &&
		bytes.Equal(buf, content))

	entries, err := fs.List()
	found := false
	for _, entry := range entries {
		if entry.Name == "test1.txt" && entry.Ino == ino && entry.Valid {
			found = true
		}
	}
	step("list files", err == nil && found)

	step("delete file", fs.Delete("test1.txt") == nil)

	_, err = fs.Open("test1.txt")
	step("verify deletion", err != nil)

	step("unmount", fs.Unmount() == nil)

	fmt.Fprintf(out, "\n%d/%d passed\n", passed, total)
	return passed == total
}
