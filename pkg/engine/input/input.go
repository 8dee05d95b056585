package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when raw key input is requested without a tty.
var ErrNotTerminal = errors.New("stdin is not a terminal")

var stdinReader *bufio.Reader

// GetInput reads a line of input from stdin
func GetInput() (string, error) {
	if stdinReader == nil {
		stdinReader = bufio.NewReader(os.Stdin)
	}

	line, err := stdinReader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read stdin: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// DecodeKey reads one key press from r and returns its binding code
// ("arrow_up", "enter", "q", ...). Unknown escape sequences decode to "".
func DecodeKey(r io.ByteReader) (string, error) {
	b1, err := r.ReadByte()
	if err != nil {
		return "", err
	}

	switch b1 {
	case 0x1b:
		return decodeEscape(r)
	case 3:
		return "ctrl_c", nil
	case '\r', '\n':
		return "enter", nil
	case '\t':
		return "tab", nil
	}

	if b1 >= 32 && b1 < 127 {
		return strings.ToLower(string(b1)), nil
	}
	return "", nil
}

// decodeEscape handles both CSI sequences (ESC [) and SS3 sequences (ESC O).
// A bare ESC (no pending bytes) is the escape key.
func decodeEscape(r io.ByteReader) (string, error) {
	b2, err := r.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "escape", nil
		}
		return "", err
	}
	if b2 != '[' && b2 != 'O' {
		return "escape", nil
	}

	b3, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	switch b3 {
	case 'A':
		return "arrow_up", nil
	case 'B':
		return "arrow_down", nil
	case 'C':
		return "arrow_right", nil
	case 'D':
		return "arrow_left", nil
	case 'H':
		return "home", nil
	}
	// Unknown escape sequence - discard it
	return "", nil
}

// ReadKey puts the terminal into raw mode, reads one key press from stdin
// and restores the terminal.
func ReadKey() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNotTerminal
	}

	// Reset the buffered reader to avoid conflicts with raw mode
	stdinReader = nil

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	// A single read returns a whole escape sequence, so a bare ESC arrives
	// alone and hits EOF in decodeEscape.
	buf := make([]byte, 8)
	n, err := os.Stdin.Read(buf)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return DecodeKey(strings.NewReader(string(buf[:n])))
}
