// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nmcli runs the NetworkManager command line tool and reports
// its output.
package nmcli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds every invocation.
const DefaultTimeout = 15 * time.Second

// waitDelay is how long Run waits for the output pipes to close once the
// tool has been killed. Children of a wrapper script can hold them open.
const waitDelay = 500 * time.Millisecond

// ErrTimeout is returned when the tool does not finish before the deadline.
var ErrTimeout = errors.New("Timeout")

// CommandError is returned when the tool writes to stderr or exits badly.
type CommandError struct {
	Task   string
	Output []byte
	Err    error
}

func (e *CommandError) Error() string {
	if len(e.Output) > 0 {
		return fmt.Sprintf("error on %s: %s", e.Task, strings.TrimSpace(string(e.Output)))
	}
	return fmt.Sprintf("error on %s: %v", e.Task, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Runner executes one tool invocation. task names the operation for
// diagnostics. A nil error means the tool succeeded and out is its stdout.
type Runner interface {
	Run(ctx context.Context, task string, args ...string) (out []byte, err error)
}

// ExecRunner runs the tool as a subprocess.
type ExecRunner struct {
	// Path is the tool binary, "nmcli" when empty.
	Path    string
	Timeout time.Duration
	Log     logrus.FieldLogger
}

var _ = Runner(&ExecRunner{})

// NewExecRunner returns a runner for the binary at path.
func NewExecRunner(path string, timeout time.Duration, log logrus.FieldLogger) *ExecRunner {
	return &ExecRunner{Path: path, Timeout: timeout, Log: log}
}

func (r *ExecRunner) path() string {
	if r.Path == "" {
		return "nmcli"
	}
	return r.Path
}

func (r *ExecRunner) logger() logrus.FieldLogger {
	if r.Log == nil {
		return logrus.StandardLogger()
	}
	return r.Log
}

// Run starts the tool and waits for it. Anything written to stderr turns
// the call into a failure carrying that text, even on a zero exit status.
func (r *ExecRunner) Run(ctx context.Context, task string, args ...string) ([]byte, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log := r.logger().WithFields(logrus.Fields{"task": task, "args": args})
	log.Debug("Running command")

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.path(), args...)
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	cmd.WaitDelay = waitDelay
	err := cmd.Run()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		log.Warnf("Timeout on %s", task)
		return nil, ErrTimeout
	}
	if stderr.Len() > 0 || err != nil {
		cerr := &CommandError{Task: task, Output: stderr.Bytes(), Err: err}
		log.Warn(cerr.Error())
		return nil, cerr
	}
	return stdout.Bytes(), nil
}
