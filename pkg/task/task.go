// Package task defines the unit of work exchanged between the command
// producer and the worker pool, and the bounded FIFO that carries it.
package task

import "github.com/google/uuid"

// Kind tags a parsed command verb.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindEmpty
	KindLS
	KindCat
	KindRM
	KindCopy
	KindWrite
	KindTouch
	KindExit
)

func (kind Kind) String() string {
	switch kind {
	case KindEmpty:
		return "empty"
	case KindLS:
		return "ls"
	case KindCat:
		return "cat"
	case KindRM:
		return "rm"
	case KindCopy:
		return "copy"
	case KindWrite:
		return "write"
	case KindTouch:
		return "touch"
	case KindExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Task carries one command from the producer to a worker. The worker fills
// Result and flips Completed; the ID correlates log lines with results.
type Task struct {
	ID        uuid.UUID
	Kind      Kind
	Args      []string
	Result    string
	Completed bool
}

func New(kind Kind, args ...string) Task {
	return Task{ID: uuid.New(), Kind: kind, Args: args}
}
