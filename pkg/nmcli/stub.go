// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nmcli

import (
	"context"
	"fmt"
	"strings"
)

var _ = Runner(&StubRunner{})

// Response is a scripted answer for one command line.
type Response struct {
	Out []byte
	Err error
}

// StubRunner answers from a table keyed by the space-joined arguments and
// records every call it sees.
type StubRunner struct {
	Responses map[string]Response
	Calls     [][]string
}

// NewStubRunner returns a runner with no scripted responses.
func NewStubRunner() *StubRunner {
	return &StubRunner{Responses: map[string]Response{}}
}

// On scripts the stdout returned for args.
func (s *StubRunner) On(out string, args ...string) *StubRunner {
	s.Responses[strings.Join(args, " ")] = Response{Out: []byte(out)}
	return s
}

// Fail scripts a failure for args.
func (s *StubRunner) Fail(err error, args ...string) *StubRunner {
	s.Responses[strings.Join(args, " ")] = Response{Err: err}
	return s
}

// Run implements Runner. Unscripted commands fail.
func (s *StubRunner) Run(_ context.Context, task string, args ...string) ([]byte, error) {
	s.Calls = append(s.Calls, append([]string(nil), args...))
	r, ok := s.Responses[strings.Join(args, " ")]
	if !ok {
		return nil, &CommandError{Task: task, Err: fmt.Errorf("unscripted command %q", args)}
	}
	return r.Out, r.Err
}

// Called reports whether args was run.
func (s *StubRunner) Called(args ...string) bool {
	want := strings.Join(args, " ")
	for _, c := range s.Calls {
		if strings.Join(c, " ") == want {
			return true
		}
	}
	return false
}
