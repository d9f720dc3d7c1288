package worker

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/watsonliu1/disk-simulator-v2/pkg/disk"
	"github.com/watsonliu1/disk-simulator-v2/pkg/task"
	. "github.com/watsonliu1/disk-simulator-v2/pkg/types"
)

var testGeometry = disk.Geometry{TotalBlocks: 128, TotalInodes: 16}

func newTestFS(t *testing.T) *disk.FileSystem {
	t.Helper()
	fs := disk.New(filepath.Join(t.TempDir(), "worker.img"))
	if err := fs.Format(testGeometry); err != nil {
		t.Fatalf("formatting test image: %v", err)
	}
	if err := fs.Mount(); err != nil {
		t.Fatalf("mounting test image: %v", err)
	}
	t.Cleanup(func() {
		if fs.Mounted() {
			if err := fs.Unmount(); err != nil {
				t.Errorf("unmounting test image: %v", err)
			}
		}
	})
	return fs
}

// runTasks drives a single-worker pool through the tasks in order and
// returns everything written to the output stream.
func runTasks(t *testing.T, fs *disk.FileSystem, tasks ...task.Task) string {
	t.Helper()

	queue, err := task.NewQueue(task.DefaultQueueDepth)
	if err != nil {
		t.Fatalf("creating queue: %v", err)
	}

	var out bytes.Buffer
	pool := NewPool(&PoolParams{
		FileSystem: fs,
		Queue:      queue,
		Out:        &out,
		Prompt:     "> ",
		Size:       1,
	})
	pool.Start()

	for _, tsk := range tasks {
		queue.Enqueue(tsk)
	}
	queue.Shutdown()
	pool.Wait()

	return out.String()
}

func TestTouchWriteCat(t *testing.T) {
	fs := newTestFS(t)

	out := runTasks(t, fs,
		task.New(task.KindTouch, "notes.txt"),
		task.New(task.KindWrite, "notes.txt", `"hello`, `world"`),
		task.New(task.KindCat, "notes.txt"),
	)

	if !strings.Contains(out, "created notes.txt") {
		t.Fatalf("touch output missing; found: %s", out)
	}
	if !strings.Contains(out, "wrote 11 bytes to notes.txt") {
		t.Fatalf("write output missing; found: %s", out)
	}
	if !strings.Contains(out, "hello world") {
		t.Fatalf("cat output missing; found: %s", out)
	}

	// The quotes were stripped before the content hit the disk.
	ino, err := fs.Open("notes.txt")
	if err != nil {
		t.Fatalf("opening: %v", err)
	}
	size, err := fs.FileSize(ino)
	if err != nil {
		t.Fatalf("sizing: %v", err)
	}
	if size != 11 {
		t.Fatalf("size: wanted `11`; found `%d`", size)
	}
}

func TestTouchExistingReportsConflict(t *testing.T) {
	fs := newTestFS(t)
	if _, err := fs.Create("f"); err != nil {
		t.Fatalf("creating: %v", err)
	}

	out := runTasks(t, fs, task.New(task.KindTouch, "f"))
	if !strings.Contains(out, "already exists") {
		t.Fatalf("wanted conflict report; found: %s", out)
	}
}

func TestWriteCreatesMissingFile(t *testing.T) {
	fs := newTestFS(t)

	out := runTasks(t, fs, task.New(task.KindWrite, "fresh", "content"))
	if !strings.Contains(out, "wrote 7 bytes to fresh") {
		t.Fatalf("wanted write report; found: %s", out)
	}

	if _, err := fs.Open("fresh"); err != nil {
		t.Fatalf("file missing after write: %v", err)
	}
}

func TestCatEmptyFile(t *testing.T) {
	fs := newTestFS(t)
	if _, err := fs.Create("empty"); err != nil {
		t.Fatalf("creating: %v", err)
	}

	out := runTasks(t, fs, task.New(task.KindCat, "empty"))
	if !strings.Contains(out, "file empty") {
		t.Fatalf("wanted empty-file report; found: %s", out)
	}
}

func TestRemove(t *testing.T) {
	fs := newTestFS(t)
	if _, err := fs.Create("victim"); err != nil {
		t.Fatalf("creating: %v", err)
	}

	out := runTasks(t, fs, task.New(task.KindRM, "victim"))
	if !strings.Contains(out, "deleted victim") {
		t.Fatalf("wanted delete report; found: %s", out)
	}
	if _, err := fs.Open("victim"); err == nil {
		t.Fatal("file still present after rm")
	}
}

func TestCopy(t *testing.T) {
	fs := newTestFS(t)

	ino, err := fs.Create("src")
	if err != nil {
		t.Fatalf("creating src: %v", err)
	}
	content := []byte("copy me, block by block")
	if _, err := fs.Write(ino, content, 0); err != nil {
		t.Fatalf("writing src: %v", err)
	}

	out := runTasks(t, fs, task.New(task.KindCopy, "src", "dst"))
	if !strings.Contains(out, "copied src to dst") {
		t.Fatalf("wanted copy report; found: %s", out)
	}

	dstIno, err := fs.Open("dst")
	if err != nil {
		t.Fatalf("opening dst: %v", err)
	}
	buf := make([]byte, len(content))
	n, err := fs.Read(dstIno, buf, 0)
	if err != nil {
		t.Fatalf("reading dst: %v", err)
	}
	if n != Byte(len(content)) || !bytes.Equal(buf, content) {
		t.Fatalf("dst content: wanted `%s`; found `%s`", content, buf[:n])
	}
}

func TestCopyMissingSource(t *testing.T) {
	fs := newTestFS(t)

	out := runTasks(t, fs, task.New(task.KindCopy, "ghost", "dst"))
	if !strings.Contains(out, "source not found") {
		t.Fatalf("wanted source-not-found report; found: %s", out)
	}
	if _, err := fs.Open("dst"); err == nil {
		t.Fatal("destination created despite missing source")
	}
}

func TestCopyOntoExistingTargetLeavesBothIntact(t *testing.T) {
	fs := newTestFS(t)

	aIno, err := fs.Create("a")
	if err != nil {
		t.Fatalf("creating a: %v", err)
	}
	bIno, err := fs.Create("b")
	if err != nil {
		t.Fatalf("creating b: %v", err)
	}

	out := runTasks(t, fs, task.New(task.KindCopy, "a", "b"))
	if !strings.Contains(out, "target creation failed") {
		t.Fatalf("wanted target-creation failure; found: %s", out)
	}

	// Both entries survive with their inodes unchanged.
	entries, err := fs.List()
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries: wanted `2`; found `%d`", len(entries))
	}
	inos := map[string]Ino{}
	for _, entry := range entries {
		inos[entry.Name] = entry.Ino
	}
	if inos["a"] != aIno || inos["b"] != bIno {
		t.Fatalf(
			"inodes changed: wanted a=%d b=%d; found a=%d b=%d",
			aIno,
			bIno,
			inos["a"],
			inos["b"],
		)
	}
}

func TestCopyEmptySource(t *testing.T) {
	fs := newTestFS(t)
	if _, err := fs.Create("src"); err != nil {
		t.Fatalf("creating src: %v", err)
	}

	out := runTasks(t, fs, task.New(task.KindCopy, "src", "dst"))
	if !strings.Contains(out, "copied empty src to dst") {
		t.Fatalf("wanted empty-copy report; found: %s", out)
	}
	if _, err := fs.Open("dst"); err != nil {
		t.Fatalf("empty copy left no destination: %v", err)
	}
}

func TestUnknownCommand(t *testing.T) {
	fs := newTestFS(t)

	out := runTasks(t, fs, task.New(task.KindUnknown, "frobnicate"))
	if !strings.Contains(out, "unknown command") {
		t.Fatalf("wanted unknown-command report; found: %s", out)
	}
}

func TestExitStopsPool(t *testing.T) {
	fs := newTestFS(t)

	queue, err := task.NewQueue(task.DefaultQueueDepth)
	if err != nil {
		t.Fatalf("creating queue: %v", err)
	}

	var out bytes.Buffer
	pool := NewPool(&PoolParams{
		FileSystem: fs,
		Queue:      queue,
		Out:        &out,
		Prompt:     "> ",
		Size:       3,
	})
	pool.Start()

	queue.Enqueue(task.New(task.KindExit))
	pool.Wait() // returns only if exit shut the queue down

	if pool.Running() {
		t.Fatal("pool still reports running after exit")
	}
	if !strings.Contains(out.String(), "bye") {
		t.Fatalf("wanted farewell; found: %s", out.String())
	}
}
