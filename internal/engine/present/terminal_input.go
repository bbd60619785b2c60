package present

import (
	"fmt"
	"os"

	"github.com/muesli/cancelreader"
	"go.uber.org/multierr"
	"golang.org/x/term"

	"github.com/Faultbox/softrast/internal/engine/input"
)

// TerminalInput reads keys from a terminal in raw mode.
type TerminalInput struct {
	in       *os.File
	reader   cancelreader.CancelReader
	oldState *term.State
	actions  chan input.Action
}

// NewTerminalInput puts in into raw mode and starts reading keys. It returns
// ErrNotTerminal when in is not a terminal.
func NewTerminalInput(in *os.File) (*TerminalInput, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%s: %w", in.Name(), ErrNotTerminal)
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting raw mode: %w", err)
	}

	reader, err := cancelreader.NewReader(in)
	if err != nil {
		term.Restore(fd, oldState)
		return nil, fmt.Errorf("opening terminal reader: %w", err)
	}

	ti := &TerminalInput{
		in:       in,
		reader:   reader,
		oldState: oldState,
		actions:  make(chan input.Action, 64),
	}
	go ti.read()
	return ti, nil
}

func (ti *TerminalInput) read() {
	var dec input.Decoder
	buf := make([]byte, 64)
	for {
		n, err := ti.reader.Read(buf)
		for _, a := range dec.Feed(buf[:n]) {
			select {
			case ti.actions <- a:
			default:
			}
		}
		if err != nil {
			close(ti.actions)
			return
		}
	}
}

// Poll taps every action read since the last call into st. It reports
// whether the input stream ended.
func (ti *TerminalInput) Poll(st *input.State) (closed bool) {
	for {
		select {
		case a, ok := <-ti.actions:
			if !ok {
				return true
			}
			st.Tap(a)
		default:
			return false
		}
	}
}

// Close stops the reader and restores the terminal mode.
func (ti *TerminalInput) Close() error {
	ti.reader.Cancel()
	err := ti.reader.Close()
	return multierr.Append(err, term.Restore(int(ti.in.Fd()), ti.oldState))
}
