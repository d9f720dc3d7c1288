package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/watsonliu1/disk-simulator-v2/pkg/config"
)

func TestRunShellEndToEnd(t *testing.T) {
	cfg := &config.Config{
		Image:      filepath.Join(t.TempDir(), "shell.img"),
		Workers:    1,
		AutoFormat: true,
	}

	script := strings.Join([]string{
		"touch notes.txt",
		`write notes.txt "hello from the shell"`,
		"cat notes.txt",
		"info",
		"ls",
		"exit",
	}, "\n") + "\n"

	var out bytes.Buffer
	if err := runShell(cfg, strings.NewReader(script), &out); err != nil {
		t.Fatalf("running shell: %v", err)
	}

	output := out.String()
	for _, wanted := range []string{
		"created notes.txt",
		"hello from the shell",
		"filesystem:   SIMFSv1",
		"notes.txt",
	} {
		if !strings.Contains(output, wanted) {
			t.Fatalf("output missing `%s`; found:\n%s", wanted, output)
		}
	}
}

func TestRunShellRefusesUnformattedImage(t *testing.T) {
	cfg := &config.Config{
		Image: filepath.Join(t.TempDir(), "missing.img"),
	}

	var out bytes.Buffer
	if err := runShell(cfg, strings.NewReader("exit\n"), &out); err == nil {
		t.Fatal("shell started against a missing image without --auto-format")
	}
}

func TestSelfTest(t *testing.T) {
	var out bytes.Buffer
	if !runSelfTest(filepath.Join(t.TempDir(), "selftest.img"), &out) {
		t.Fatalf("selftest failed:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "10/10 passed") {
		t.Fatalf("wanted full pass summary; found:\n%s", out.String())
	}
}
