package command

import (
	"reflect"
	"testing"

	"github.com/watsonliu1/disk-simulator-v2/pkg/task"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		wantedKind task.Kind
		wantedArgs []string
		wantedAdm  Admin
	}{{
		name:       "empty line",
		input:      "",
		wantedKind: task.KindEmpty,
	}, {
		name:       "whitespace only",
		input:      "   \t ",
		wantedKind: task.KindEmpty,
	}, {
		name:       "ls",
		input:      "ls",
		wantedKind: task.KindLS,
	}, {
		name:       "verb is case-insensitive",
		input:      "LS",
		wantedKind: task.KindLS,
	}, {
		name:       "cat",
		input:      "cat notes.txt",
		wantedKind: task.KindCat,
		wantedArgs: []string{"notes.txt"},
	}, {
		name:       "arguments keep their case",
		input:      "CAT Notes.TXT",
		wantedKind: task.KindCat,
		wantedArgs: []string{"Notes.TXT"},
	}, {
		name:       "copy",
		input:      "copy a b",
		wantedKind: task.KindCopy,
		wantedArgs: []string{"a", "b"},
	}, {
		name:       "write keeps content tokens",
		input:      `write f "hello there friend"`,
		wantedKind: task.KindWrite,
		wantedArgs: []string{"f", `"hello`, "there", `friend"`},
	}, {
		name:       "touch",
		input:      "touch f",
		wantedKind: task.KindTouch,
		wantedArgs: []string{"f"},
	}, {
		name:       "create aliases touch",
		input:      "create f",
		wantedKind: task.KindTouch,
		wantedArgs: []string{"f"},
	}, {
		name:       "exit",
		input:      "exit",
		wantedKind: task.KindExit,
	}, {
		name:       "unknown verb",
		input:      "frobnicate x",
		wantedKind: task.KindUnknown,
		wantedArgs: []string{"frobnicate", "x"},
	}, {
		name:       "format is administrative",
		input:      "format",
		wantedKind: task.KindEmpty,
		wantedAdm:  AdminFormat,
	}, {
		name:       "mount is administrative",
		input:      "mount",
		wantedKind: task.KindEmpty,
		wantedAdm:  AdminMount,
	}, {
		name:       "umount is administrative",
		input:      "umount",
		wantedKind: task.KindEmpty,
		wantedAdm:  AdminUnmount,
	}, {
		name:       "info is administrative",
		input:      "info",
		wantedKind: task.KindEmpty,
		wantedAdm:  AdminInfo,
	}, {
		name:       "help is administrative",
		input:      "help",
		wantedKind: task.KindEmpty,
		wantedAdm:  AdminHelp,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, admin := Parse(tc.input)
			if parsed.Kind != tc.wantedKind {
				t.Fatalf(
					"kind: wanted `%s`; found `%s`",
					tc.wantedKind,
					parsed.Kind,
				)
			}
			if admin != tc.wantedAdm {
				t.Fatalf("admin: wanted `%d`; found `%d`", tc.wantedAdm, admin)
			}
			if len(tc.wantedArgs) != 0 || len(parsed.Args) != 0 {
				if !reflect.DeepEqual(parsed.Args, tc.wantedArgs) {
					t.Fatalf(
						"args: wanted `%v`; found `%v`",
						tc.wantedArgs,
						parsed.Args,
					)
				}
			}
		})
	}
}

func TestJoinContent(t *testing.T) {
	testCases := []struct {
		name   string
		tokens []string
		wanted string
	}{{
		name:   "plain tokens joined by spaces",
		tokens: []string{"hello", "world"},
		wanted: "hello world",
	}, {
		name:   "matched surrounding quotes stripped",
		tokens: []string{`"hello`, `world"`},
		wanted: "hello world",
	}, {
		name:   "leading quote only is kept",
		tokens: []string{`"hello`, "world"},
		wanted: `"hello world`,
	}, {
		name:   "single token",
		tokens: []string{"x"},
		wanted: "x",
	}, {
		name:   "lone quote pair",
		tokens: []string{`""`},
		wanted: "",
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if found := JoinContent(tc.tokens); found != tc.wanted {
				t.Fatalf("wanted `%s`; found `%s`", tc.wanted, found)
			}
		})
	}
}
