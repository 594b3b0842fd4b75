package browser

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TerminalPrompter implements Prompter over a line-oriented terminal
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{in: bufio.NewReader(in), out: out}
}

// ReadLine reads one line without its trailing newline.
// ok is false at end of input.
func (p *TerminalPrompter) ReadLine() (line string, ok bool) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// Prompt shows message and reads a line. An empty answer keeps initial
// when there is one; end of input cancels.
func (p *TerminalPrompter) Prompt(message, initial string) (string, bool) {
	if initial != "" {
		fmt.Fprintf(p.out, "%s [%s] ", message, initial)
	} else {
		fmt.Fprintf(p.out, "%s ", message)
	}

	line, ok := p.ReadLine()
	if !ok {
		return "", false
	}
	if line = strings.TrimSpace(line); line == "" {
		return initial, true
	}
	return line, true
}

// Confirm accepts y or yes, case-insensitively
func (p *TerminalPrompter) Confirm(message string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", message)
	line, ok := p.ReadLine()
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func (p *TerminalPrompter) Alert(message string) {
	fmt.Fprintf(p.out, "! %s\n", message)
}
