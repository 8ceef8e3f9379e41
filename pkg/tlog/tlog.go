// Copyright 2019 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tlog routes logrus output into the test log.
package tlog

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// Testing is an io.Writer over testing.TB.
type Testing struct {
	Test testing.TB
}

// Write logs p as one test log line.
func (t Testing) Write(p []byte) (int, error) {
	t.Test.Helper()
	t.Test.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// New returns a debug level logger that writes to t.
func New(t testing.TB) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(Testing{Test: t})
	l.SetLevel(logrus.DebugLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	return l
}
