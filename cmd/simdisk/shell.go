package main

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/watsonliu1/disk-simulator-v2/pkg/command"
	"github.com/watsonliu1/disk-simulator-v2/pkg/config"
	"github.com/watsonliu1/disk-simulator-v2/pkg/disk"
	"github.com/watsonliu1/disk-simulator-v2/pkg/task"
	"github.com/watsonliu1/disk-simulator-v2/pkg/worker"
)

const prompt = "> "

const helpText = `commands:
  ls                       list files
  cat <name>               print file contents
  rm <name>                delete a file
  copy <src> <dst>         duplicate a file
  write <name> <content>   overwrite a file from offset 0
  touch <name>             create an empty file (alias: create)
  format                   format the disk image
  mount                    mount the disk image
  umount                   unmount the disk image
  info                     show disk information
  help                     show this help
  exit                     drain pending commands and quit
`

// runShell is the producer side: it reads lines, runs administrative verbs
// inline under the filesystem lock, and queues everything else for the
// worker pool.
func runShell(cfg *config.Config, in io.Reader, out io.Writer) error {
	// The workers and the producer share one output stream; serialize the
	// writes so prompts cannot shear a result line.
	out = &syncWriter{w: out}

	fs, err := openImage(cfg)
	if err != nil {
		return err
	}

	depth := cfg.QueueDepth
	if depth < 1 {
		depth = task.DefaultQueueDepth
	}
	queue, err := task.NewQueue(depth)
	if err != nil {
		return err
	}

	pool := worker.NewPool(&worker.PoolParams{
		FileSystem: fs,
		Queue:      queue,
		Out:        out,
		Prompt:     prompt,
		Size:       cfg.Workers,
	})
	pool.Start()

	fmt.Fprint(out, helpText)
	fmt.Fprint(out, prompt)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		t, admin := command.Parse(scanner.Text())

		if admin != command.AdminNone {
			runAdmin(fs, admin, out)
			fmt.Fprint(out, prompt)
			continue
		}

		if t.Kind == task.KindEmpty {
			fmt.Fprint(out, prompt)
			continue
		}

		queue.Enqueue(t)
		if t.Kind == task.KindExit {
			break
		}
		fmt.Fprint(out, prompt)
	}

	if err := scanner.Err(); err != nil {
		log.WithError(err).Error("reading command stream")
	}

	queue.Shutdown()
	pool.Wait()

	fs.Lock()
	defer fs.Unlock()
	if err := fs.Unmount(); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// runAdmin executes format/mount/umount/info/help on the producer thread so
// they cannot race with in-flight tasks.
func runAdmin(fs *disk.FileSystem, admin command.Admin, out io.Writer) {
	fs.Lock()
	defer fs.Unlock()

	switch admin {
	case command.AdminFormat:
		if fs.Mounted() {
			fmt.Fprintln(out, "format: unmount first")
			return
		}
		if err := fs.Format(disk.DefaultGeometry()); err != nil {
			fmt.Fprintf(out, "format failed: %v\n", err)
			return
		}
		fmt.Fprintln(out, "format complete")

	case command.AdminMount:
		if err := fs.Mount(); err != nil {
			fmt.Fprintf(out, "mount failed: %v\n", err)
			return
		}
		fmt.Fprintln(out, "mounted")

	case command.AdminUnmount:
		if err := fs.Unmount(); err != nil {
			fmt.Fprintf(out, "umount failed: %v\n", err)
			return
		}
		fmt.Fprintln(out, "unmounted")

	case command.AdminInfo:
		info, err := fs.Info()
		if err != nil {
			fmt.Fprintf(out, "info failed: %v\n", err)
			return
		}
		printInfo(info, out)

	case command.AdminHelp:
		fmt.Fprint(out, helpText)
	}
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (sw *syncWriter) Write(p []byte) (int, error) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.w.Write(p)
}

func printInfo(info disk.Info, out io.Writer) {
	const mib = 1024 * 1024
	fmt.Fprintf(out, "filesystem:   %s\n", info.Magic)
	fmt.Fprintf(out, "block size:   %d bytes\n", info.BlockSize)
	fmt.Fprintf(out, "total blocks: %d\n", info.TotalBlocks)
	fmt.Fprintf(out, "capacity:     %.2f MiB\n", float64(info.TotalBytes)/mib)
	fmt.Fprintf(out, "used:         %.2f MiB\n", float64(info.UsedBytes)/mib)
	fmt.Fprintf(out, "free:         %.2f MiB\n", float64(info.FreeBytes)/mib)
	fmt.Fprintf(out, "inodes:       %d total, %d used, %d free\n",
		info.TotalInodes, info.UsedInodes, info.FreeInodes)
}
