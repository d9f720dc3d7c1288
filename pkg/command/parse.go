// Package command turns input lines into tasks. Verbs are case-insensitive;
// arguments keep their case.
package command

import (
	"strings"

	"github.com/watsonliu1/disk-simulator-v2/pkg/task"
)

// Admin tags the administrative verbs that the producer runs inline instead
// of queueing: they must not race with in-flight tasks.
type Admin uint8

const (
	AdminNone Admin = iota
	AdminFormat
	AdminMount
	AdminUnmount
	AdminInfo
	AdminHelp
)

// Parse tokenizes a line. When the verb is administrative the second return
// identifies it and the task is KindEmpty; everything else becomes a
// queueable task.
func Parse(line string) (task.Task, Admin) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return task.New(task.KindEmpty), AdminNone
	}

	verb := strings.ToLower(tokens[0])
	args := tokens[1:]

	switch verb {
	case "ls":
		return task.New(task.KindLS), AdminNone
	case "cat":
		return task.New(task.KindCat, args...), AdminNone
	case "rm":
		return task.New(task.KindRM, args...), AdminNone
	case "copy":
		return task.New(task.KindCopy, args...), AdminNone
	case "write":
		return task.New(task.KindWrite, args...), AdminNone
	case "touch", "create":
		return task.New(task.KindTouch, args...), AdminNone
	case "exit":
		return task.New(task.KindExit), AdminNone
	case "format":
		return task.New(task.KindEmpty), AdminFormat
	case "mount":
		return task.New(task.KindEmpty), AdminMount
	case "umount":
		return task.New(task.KindEmpty), AdminUnmount
	case "info":
		return task.New(task.KindEmpty), AdminInfo
	case "help":
		return task.New(task.KindEmpty), AdminHelp
	default:
		return task.New(task.KindUnknown, tokens...), AdminNone
	}
}

// JoinContent reassembles a write command's content tokens with single
// spaces and strips one pair of surrounding double quotes when both ends
// carry one.
func JoinContent(tokens []string) string {
	content := strings.Join(tokens, " ")
	if len(content) >= 2 &&
		strings.HasPrefix(content, `"`) &&
		strings.HasSuffix(content, `"`) {
		content = content[1 : len(content)-1]
	}
	return content
}
