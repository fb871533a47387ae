//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const webTF = `resource "aws_instance" "web" {
  ami = "ami-123"
}

resource "aws_instance" "db" {
  count = 2
  ami   = "ami-456"
}
`

const networkTF = `module "vpc" {
  source = "./modules/vpc"
}

resource "aws_subnet" "private" {
  for_each = toset(["a", "b"])
  vpc_id   = module.vpc.id
}
`

// StubOption configures the fake terraform
type StubOption func(*stubOptions)

type stubOptions struct {
	exitCode  int
	sleep     bool
	ignoreInt bool
}

// WithExitCode makes the stub exit with code once it has recorded its args
func WithExitCode(code int) StubOption {
	return func(opts *stubOptions) {
		opts.exitCode = code
	}
}

// WithLongRun makes the stub block until it is signalled
func WithLongRun() StubOption {
	return func(opts *stubOptions) {
		opts.sleep = true
	}
}

// WithIgnoredInterrupt makes the long-running stub ignore SIGINT
func WithIgnoredInterrupt() StubOption {
	return func(opts *stubOptions) {
		opts.sleep = true
		opts.ignoreInt = true
	}
}

// CreateTestWorkspace creates a temporary directory to scan
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteTF writes a .tf file relative to the workspace
func (tf *TUITestFramework) WriteTF(rel, content string) error {
	if tf.workspace == "" {
		return fmt.Errorf("workspace not created")
	}
	path := filepath.Join(tf.workspace, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

// CreateStubTerraform installs a fake terraform outside the workspace. It
// writes one argument per line, then its working directory, to the returned path.
func (tf *TUITestFramework) CreateStubTerraform(options ...StubOption) (string, error) {
	opts := &stubOptions{}
	for _, opt := range options {
		opt(opts)
	}

	dir := tf.t.TempDir()
	argsFile := filepath.Join(dir, "args")

	var script strings.Builder
	script.WriteString("#!/bin/sh\n")
	if opts.ignoreInt {
		script.WriteString("trap '' INT\n")
	}
	fmt.Fprintf(&script, "printf '%%s\\n' \"$@\" > %q.tmp\n", argsFile)
	fmt.Fprintf(&script, "pwd >> %q.tmp\n", argsFile)
	fmt.Fprintf(&script, "mv %q.tmp %q\n", argsFile, argsFile)
	script.WriteString("echo 'stub terraform running'\n")
	if opts.sleep {
		script.WriteString("exec sleep 30\n")
	}
	fmt.Fprintf(&script, "exit %d\n", opts.exitCode)

	bin := filepath.Join(dir, "terraform")
	if err := os.WriteFile(bin, []byte(script.String()), 0755); err != nil {
		return "", err
	}
	tf.stub = bin
	return argsFile, nil
}

// WriteConfig writes a project config file into the workspace
func (tf *TUITestFramework) WriteConfig(content string) error {
	return tf.WriteTF(".tfocus.toml", content)
}

// RecordedArgs returns the arguments and working directory the stub saw
func RecordedArgs(argsFile string) (args []string, dir string, err error) {
	data, err := os.ReadFile(argsFile)
	if err != nil {
		return nil, "", err
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 0 {
		return nil, "", fmt.Errorf("empty args file")
	}
	return lines[:len(lines)-1], lines[len(lines)-1], nil
}
