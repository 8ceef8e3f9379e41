// Copyright 2020 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package menu draws full-screen input, confirmation and selection
// windows with termui.
package menu

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	ui "github.com/gizak/termui/v3"
	"github.com/gizak/termui/v3/widgets"
)

const (
	menuWidth    = 80
	menuHeight   = 12
	pageSize     = 10
	resultHeight = 20
	resultWidth  = 70
)

// ErrEscaped is returned when the user leaves a window with <Escape>.
var ErrEscaped = errors.New("escaped")

type validCheck func(string) (string, string, bool)

// Entry is one selectable line of a menu.
type Entry interface {
	// Label returns the string shown in the menu.
	Label() string
}

func Init() error {
	return ui.Init()
}

func Close() {
	ui.Close()
}

// Events returns the termui event stream. Init must have been called.
func Events() <-chan ui.Event {
	return ui.PollEvents()
}

// AlwaysValid accepts any input.
func AlwaysValid(input string) (string, string, bool) {
	return input, "", true
}

func newParagraph(initText string, border bool, location int, wid int, ht int) *widgets.Paragraph {
	p := widgets.NewParagraph()
	p.Text = initText
	p.Border = border
	p.SetRect(0, location, wid, location+ht)
	p.TextStyle.Fg = ui.ColorWhite
	return p
}

// readKey blocks until a keyboard or mouse event arrives.
func readKey(uiEvents <-chan ui.Event) string {
	for {
		e := <-uiEvents
		if e.Type == ui.KeyboardEvent || e.Type == ui.MouseEvent {
			return e.ID
		}
	}
}

// lineEditor applies key presses to a line of text.
type lineEditor struct {
	text []rune
	mask bool
}

// apply edits the line and reports whether the key was consumed.
func (l *lineEditor) apply(k string) bool {
	switch {
	case k == "<Backspace>":
		if len(l.text) > 0 {
			l.text = l.text[:len(l.text)-1]
		}
	case k == "<Space>":
		l.text = append(l.text, ' ')
	case strings.HasPrefix(k, "<"):
		// termui names special keys like "<F1>"; only plain characters are input.
		return false
	default:
		l.text = append(l.text, []rune(k)...)
	}
	return true
}

func (l *lineEditor) String() string {
	return string(l.text)
}

func (l *lineEditor) display() string {
	if l.mask {
		return strings.Repeat("*", len(l.text))
	}
	return string(l.text)
}

// processInput shows an input box and returns what the user entered once
// isValid accepts it. Rejected input is cleared and the warning shown.
func processInput(introwords string, location int, wid int, ht int, mask bool, isValid validCheck, uiEvents <-chan ui.Event) (string, string, error) {
	intro := newParagraph(introwords, false, location, len(introwords)+4, 3)
	location += 2
	input := newParagraph("", true, location, wid, ht+2)
	location += ht + 2
	warning := newParagraph("", false, location, wid, 15)

	ui.Render(intro, input, warning)

	line := &lineEditor{mask: mask}
	for {
		k := readKey(uiEvents)
		switch k {
		case "<C-d>":
			return line.String(), warning.Text, io.EOF
		case "<Escape>":
			return "", warning.Text, ErrEscaped
		case "<Enter>":
			s, warn, ok := isValid(line.String())
			if ok {
				return s, warning.Text, nil
			}
			line.text = nil
			input.Text = ""
			warning.Text = warn
			ui.Render(input, warning)
		default:
			if line.apply(k) {
				input.Text = line.display()
				ui.Render(input)
			}
		}
	}
}

// NewInputWindow asks for one line of text.
func NewInputWindow(introwords string, isValid validCheck, uiEvents <-chan ui.Event) (string, error) {
	defer ui.Clear()
	input, _, err := processInput(introwords, 0, menuWidth, 1, false, isValid, uiEvents)
	return input, err
}

// NewPasswordWindow asks for a secret, echoing '*' per character.
func NewPasswordWindow(introwords string, uiEvents <-chan ui.Event) (string, error) {
	defer ui.Clear()
	input, _, err := processInput(introwords, 0, menuWidth, 1, true, AlwaysValid, uiEvents)
	return input, err
}

// yesOrNo accepts y, yes, n, no or an empty line, which means no.
func yesOrNo(input string) (string, string, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return "y", "", true
	case "", "n", "no":
		return "n", "", true
	}
	return "", "Please answer y or n.", false
}

// Confirm asks a yes/no question. Only an explicit yes is true; <Escape>
// counts as no.
func Confirm(question string, uiEvents <-chan ui.Event) (bool, error) {
	defer ui.Clear()
	answer, _, err := processInput(question+" [y/N]", 0, menuWidth, 1, false, yesOrNo, uiEvents)
	if err == ErrEscaped {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return answer == "y", nil
}

// DisplayResult shows a message one page at a time. Each element of
// message starts a new line; long lines are wrapped. <Escape> stops
// early with ErrEscaped and <C-d> with io.EOF.
func DisplayResult(message []string, uiEvents <-chan ui.Event) (string, error) {
	defer ui.Clear()

	var text []string
	for _, m := range message {
		for len(m) > resultWidth {
			text = append(text, m[:resultWidth])
			m = m[resultWidth:]
		}
		text = append(text, m)
	}

	p := widgets.NewParagraph()
	p.Border = true
	p.SetRect(0, 0, resultWidth+2, resultHeight+3)
	p.TextStyle.Fg = ui.ColorWhite

	const hint = "(Press any key to continue, press <Esc> to exit.)"
	for line := 0; line < len(text); line += resultHeight {
		p.Title = fmt.Sprintf("Message---%v/%v", line, len(text))
		p.Text = strings.Join(text[line:min(len(text), line+resultHeight)], "\n") + "\n" + hint
		ui.Render(p)
		switch readKey(uiEvents) {
		case "<C-d>":
			return p.Text, io.EOF
		case "<Escape>":
			return p.Text, ErrEscaped
		}
	}
	return p.Text, nil
}

// pager tracks the visible window of a long menu.
type pager struct {
	list   *widgets.List
	title  string
	labels []string
	first  int
	last   int
}

func (p *pager) show(first int) {
	p.first = max(0, min(first, len(p.labels)-1))
	p.last = min(p.first+pageSize, len(p.labels))
	p.list.Rows = p.labels[p.first:p.last]
	p.list.Title = fmt.Sprintf("%s---%v/%v", p.title, p.first, len(p.labels))
	ui.Render(p.list)
}

// choose reads keys until the user enters the number of a visible entry.
func (p *pager) choose(input, warning *widgets.Paragraph, uiEvents <-chan ui.Event) (int, error) {
	line := &lineEditor{}
	p.show(0)
	for {
		k := readKey(uiEvents)
		switch k {
		case "<C-d>":
			return 0, io.EOF
		case "<Escape>":
			return 0, ErrEscaped
		case "<Enter>":
			c, err := strconv.Atoi(line.String())
			line.text = nil
			input.Text = ""
			ui.Render(input)
			if err == nil && c >= p.first && c < p.last {
				return c, nil
			}
			warning.Text = "Please enter a valid entry number."
			ui.Render(warning)
		case "<Left>", "<PageUp>":
			p.show(p.first - pageSize)
		case "<Right>", "<PageDown>":
			if p.first+pageSize < len(p.labels) {
				p.show(p.first + pageSize)
			}
		case "<Up>", "<MouseWheelUp>":
			p.show(p.first - 1)
		case "<Down>", "<MouseWheelDown>":
			if p.last < len(p.labels) {
				p.show(p.first + 1)
			}
		case "<Home>":
			p.show(0)
		case "<End>":
			p.show(len(p.labels) - pageSize)
		default:
			if line.apply(k) {
				input.Text = line.display()
				ui.Render(input)
			}
		}
	}
}

// DisplayMenu numbers the entries and returns the one the user picks.
func DisplayMenu(menuTitle string, introwords string, entries []Entry, uiEvents <-chan ui.Event) (Entry, error) {
	defer ui.Clear()

	if len(entries) == 0 {
		return nil, fmt.Errorf("no entry in the menu")
	}

	var labels []string
	for i, e := range entries {
		labels = append(labels, fmt.Sprintf("[%d] %s", i, e.Label()))
	}

	location := 0
	list := widgets.NewList()
	list.SetRect(0, location, menuWidth, location+menuHeight)
	list.TextStyle.Fg = ui.ColorWhite
	location += menuHeight

	intro := newParagraph(introwords, false, location, len(introwords)+4, 3)
	location += 2
	input := newParagraph("", true, location, menuWidth, 3)
	location += 3
	warning := newParagraph("", false, location, menuWidth, 3)
	ui.Render(intro, input, warning)

	p := &pager{list: list, title: menuTitle, labels: labels}
	i, err := p.choose(input, warning, uiEvents)
	if err != nil {
		return nil, fmt.Errorf("failed to get the choice from menu: %w", err)
	}
	return entries[i], nil
}

// Progress is a box showing that a long operation is running.
type Progress struct {
	paragraph *widgets.Paragraph
	animated  bool
	sigTerm   chan bool
	ackTerm   chan bool
}

func NewProgress(text string, animated bool) *Progress {
	paragraph := widgets.NewParagraph()
	paragraph.Border = true
	paragraph.SetRect(0, 0, resultWidth, 10)
	paragraph.TextStyle.Fg = ui.ColorWhite
	paragraph.Title = "Operation Running"
	paragraph.Text = text
	ui.Render(paragraph)

	p := &Progress{paragraph, animated, make(chan bool), make(chan bool)}
	if animated {
		go p.animate()
	}
	return p
}

func (p *Progress) animate() {
	text := p.paragraph.Text
	for counter := 0; ; counter++ {
		select {
		case <-p.sigTerm:
			p.ackTerm <- true
			return
		case <-time.After(time.Second):
			p.paragraph.Text = text + strings.Repeat(".", counter%4)
			ui.Render(p.paragraph)
		}
	}
}

func (p *Progress) Close() {
	if p.animated {
		p.sigTerm <- true
		<-p.ackTerm
	}
	ui.Clear()
}
