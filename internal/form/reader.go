package form

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
)

// LineReader prints a prompt and returns one line of input without the
// trailing newline. It returns io.EOF when input is exhausted.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// ScannerReader reads lines from any io.Reader.
type ScannerReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewScannerReader returns a LineReader over in that writes prompts to out.
func NewScannerReader(in io.Reader, out io.Writer) *ScannerReader {
	return &ScannerReader{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// ReadLine implements LineReader.
func (r *ScannerReader) ReadLine(prompt string) (string, error) {
	if _, err := io.WriteString(r.out, prompt); err != nil {
		return "", err
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

// TerminalReader reads lines with readline editing and history.
type TerminalReader struct {
	rl *readline.Instance
}

// NewTerminalReader opens a readline instance on the process terminal.
func NewTerminalReader() (*TerminalReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		InterruptPrompt: "^C",
		EOFPrompt:       "",
		UniqueEditLine:  false,
		Stdin:           readline.NewCancelableStdin(os.Stdin),
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}
	return &TerminalReader{rl: rl}, nil
}

// ReadLine implements LineReader. The multi-line question is printed
// above the edit line; only its last line becomes the readline prompt.
func (r *TerminalReader) ReadLine(prompt string) (string, error) {
	head, last := splitLastLine(prompt)
	if head != "" {
		if _, err := io.WriteString(r.rl.Stdout(), head); err != nil {
			return "", err
		}
	}
	r.rl.SetPrompt(last)

	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupted
	}
	return line, err
}

// Close releases the terminal.
func (r *TerminalReader) Close() error {
	return r.rl.Close()
}

func splitLastLine(s string) (head, last string) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '\n' {
			return s[:i+1], s[i+1:]
		}
	}
	return "", s
}
