// Package input reads scope console lines from a terminal or any other
// stream. Both readers implement command.Reader.
package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// DefaultPrompt is shown before each line read by an InteractiveCommandReader.
const DefaultPrompt = "scope> "

// lineSource is the one operation the two readers differ in.
type lineSource func() (string, error)

// readNonBlank calls next until it gives a line with something besides
// whitespace in it, or until allowBlank is set and a blank line is read.
// Surrounding whitespace is trimmed; inner spacing is kept as typed since it
// is significant to the parser.
func readNonBlank(next lineSource, allowBlank bool) (string, error) {
	for {
		line, err := next()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)
		if line != "" || allowBlank {
			return line, nil
		}
	}
}

// DirectCommandReader reads lines from any io.Reader. It does not clean
// editing escape sequences out of the input, so it is meant for piped input
// and tests rather than a person at a terminal.
//
// Create one with NewDirectReader.
type DirectCommandReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// NewDirectReader creates a DirectCommandReader reading from r.
func NewDirectReader(r io.Reader) *DirectCommandReader {
	return &DirectCommandReader{
		r: bufio.NewReader(r),
	}
}

// ReadCommand reads the next line. Blank lines are skipped unless AllowBlank
// has been set. At end of input it returns "" and io.EOF.
func (dcr *DirectCommandReader) ReadCommand() (string, error) {
	return readNonBlank(func() (string, error) {
		return dcr.r.ReadString('\n')
	}, dcr.blanksAllowed)
}

// AllowBlank sets whether blank lines are returned. By default they are not.
func (dcr *DirectCommandReader) AllowBlank(allow bool) {
	dcr.blanksAllowed = allow
}

// Close does nothing; it exists so DirectCommandReader can be handled the
// same as an InteractiveCommandReader.
func (dcr *DirectCommandReader) Close() error {
	return nil
}

// InteractiveCommandReader reads lines from the terminal using readline, which
// gives line editing and in-session recall of earlier lines. History is kept
// in memory only.
//
// Create one with NewInteractiveReader and call Close when done with it.
type InteractiveCommandReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewInteractiveReader initializes readline on stdin and stdout.
func NewInteractiveReader() (*InteractiveCommandReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          DefaultPrompt,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveCommandReader{
		rl:     rl,
		prompt: DefaultPrompt,
	}, nil
}

// ReadCommand reads the next line typed at the terminal. Blank lines are
// skipped unless AllowBlank has been set. At end of input it returns "" and
// io.EOF; an interrupt (Ctrl-C) gives readline.ErrInterrupt.
func (icr *InteractiveCommandReader) ReadCommand() (string, error) {
	return readNonBlank(icr.rl.Readline, icr.blanksAllowed)
}

// AllowBlank sets whether blank lines are returned. By default they are not.
func (icr *InteractiveCommandReader) AllowBlank(allow bool) {
	icr.blanksAllowed = allow
}

// SetPrompt updates the prompt to the given text.
func (icr *InteractiveCommandReader) SetPrompt(p string) {
	icr.prompt = p
	icr.rl.SetPrompt(p)
}

// Prompt gets the current prompt.
func (icr *InteractiveCommandReader) Prompt() string {
	return icr.prompt
}

// Close tears down readline.
func (icr *InteractiveCommandReader) Close() error {
	return icr.rl.Close()
}
