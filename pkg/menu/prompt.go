// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package menu

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	ui "github.com/gizak/termui/v3"
	"github.com/u-root/wifimgr/pkg/wifi"
	"golang.org/x/crypto/ssh/terminal"
)

var (
	_ = wifi.Prompter(&UIPrompter{})
	_ = wifi.Prompter(&LinePrompter{})
)

// UIPrompter asks questions in termui windows.
type UIPrompter struct {
	Events <-chan ui.Event
}

func (p *UIPrompter) Confirm(question string) (bool, error) {
	return Confirm(question, p.Events)
}

func (p *UIPrompter) Password(prompt string) (string, error) {
	return NewPasswordWindow(prompt, p.Events)
}

// LinePrompter asks questions on a plain terminal or pipe.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
	// fd is the terminal read for passwords, or -1 when in is not a tty.
	fd int
}

// NewLinePrompter reads answers from in. If in is a terminal, passwords
// are read without echo.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	p := &LinePrompter{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok && terminal.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

func (p *LinePrompter) readLine() (string, error) {
	s, err := p.in.ReadString('\n')
	if err != nil && !(err == io.EOF && s != "") {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// Confirm prints question and accepts only y or yes.
func (p *LinePrompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N] ", question)
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	yes, _, _ := yesOrNo(answer)
	return yes == "y", nil
}

// Password prints prompt and reads a secret.
func (p *LinePrompter) Password(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if p.fd < 0 {
		return p.readLine()
	}
	b, err := terminal.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
