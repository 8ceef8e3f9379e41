// Copyright 2026 the u-root Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wifi

var _ = Prompter(&StubPrompter{})

// StubPrompter answers prompts from fixed values and records the questions.
type StubPrompter struct {
	Answer bool
	Secret string
	Err    error

	Asked []string
}

func NewStubPrompter(answer bool, secret string) *StubPrompter {
	return &StubPrompter{Answer: answer, Secret: secret}
}

func (p *StubPrompter) Confirm(question string) (bool, error) {
	p.Asked = append(p.Asked, question)
	return p.Answer, p.Err
}

func (p *StubPrompter) Password(prompt string) (string, error) {
	p.Asked = append(p.Asked, prompt)
	return p.Secret, p.Err
}
