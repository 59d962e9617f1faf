// Package input owns the terminal while a recording session runs: raw mode,
// a non-blocking keypress poller, and the line prompts used at exit points.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/muesli/cancelreader"
	"golang.org/x/term"
)

// control bytes seen in raw mode
const (
	ctrlC     = 0x03
	backspace = 0x08
	del       = 0x7f
)

// Terminal multiplexes raw-mode keypresses between the session loop's Poll
// and the blocking line prompts. A single goroutine reads stdin; nothing
// else may read it while the Terminal is open.
type Terminal struct {
	fd    int
	state *term.State
	out   io.Writer
	src   cancelreader.CancelReader

	keys chan rune
	intr chan os.Signal
}

// Open switches stdin to raw mode and starts the key reader. Close restores
// the previous terminal state.
func Open() (*Terminal, error) {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	src, err := cancelreader.NewReader(os.Stdin)
	if err != nil {
		term.Restore(fd, state)
		return nil, fmt.Errorf("open stdin reader: %w", err)
	}
	t := &Terminal{
		fd:    fd,
		state: state,
		out:   os.Stdout,
		src:   src,
		keys:  make(chan rune, 16),
		intr:  make(chan os.Signal, 1),
	}
	go t.read(src)
	return t, nil
}

// Close cancels the key reader and restores the terminal state. The
// Terminal must not be used afterwards; the next session opens its own.
func (t *Terminal) Close() error {
	if t.src != nil {
		t.src.Cancel()
	}
	if t.state == nil {
		return nil
	}
	return term.Restore(t.fd, t.state)
}

// read exits when src fails, which includes cancellation through Close.
// It owns intr; closing it on exit unhooks anyone fanning in interrupts.
func (t *Terminal) read(src io.Reader) {
	defer close(t.intr)
	r := bufio.NewReader(src)
	for {
		ch, _, err := r.ReadRune()
		if err != nil {
			return
		}
		// Raw mode swallows the SIGINT translation; surface Ctrl+C as an
		// interrupt for the session loop.
		if ch == ctrlC {
			select {
			case t.intr <- os.Interrupt:
			default:
			}
			continue
		}
		select {
		case t.keys <- ch:
		default:
			// The loop is behind; dropping beats blocking the reader.
		}
	}
}

// Poll implements the session loop's key source without blocking.
func (t *Terminal) Poll() (rune, bool) {
	select {
	case r := <-t.keys:
		return r, true
	default:
		return 0, false
	}
}

// Interrupt delivers Ctrl+C presses. Callers may also fan in signals from
// signal.Notify.
func (t *Terminal) Interrupt() <-chan os.Signal {
	return t.intr
}

// ConfirmDiscard asks for a typed confirmation. Only "y" or "yes" confirm.
func (t *Terminal) ConfirmDiscard() bool {
	line, ok := t.readLine("discard recording? [y/N]: ")
	return ok && acceptsDiscard(line)
}

func acceptsDiscard(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// RecordingName asks for an optional filename; empty keeps the default.
func (t *Terminal) RecordingName(defaultName string) string {
	line, ok := t.readLine(fmt.Sprintf("filename [%s]: ", defaultName))
	if !ok {
		return ""
	}
	return line
}

// readLine collects a line with manual echo, since raw mode disables the
// terminal's own line editing. Ctrl+C cancels the prompt.
func (t *Terminal) readLine(prompt string) (string, bool) {
	fmt.Fprint(t.out, "\r\n"+prompt)
	var buf []rune
	for {
		select {
		case <-t.intr:
			fmt.Fprint(t.out, "\r\n")
			return "", false
		case r, ok := <-t.keys:
			if !ok {
				return "", false
			}
			switch {
			case r == '\r' || r == '\n':
				fmt.Fprint(t.out, "\r\n")
				return string(buf), true
			case r == del || r == backspace:
				if len(buf) > 0 {
					buf = buf[:len(buf)-1]
					fmt.Fprint(t.out, "\b \b")
				}
			case unicode.IsPrint(r):
				buf = append(buf, r)
				fmt.Fprintf(t.out, "%c", r)
			}
		}
	}
}
