package terminal

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/peterh/liner"

	"github.com/mrlokans/plotpoint/internal/config"
)

// ErrInputClosed is returned once input reaches end of file or the user
// aborts a prompt. Callers unwind and exit.
var ErrInputClosed = errors.New("input closed")

// LineReader reads one line of user input per call.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
	Close() error
}

// NewLineReader picks the liner editor when stdin is an interactive terminal
// and a buffered reader otherwise (pipes, scripts, TERMINAL_PLAIN).
func NewLineReader(cfg config.Terminal) LineReader {
	if !cfg.Plain && isTerminal(os.Stdin) && liner.TerminalSupported() {
		return NewLinerReader(cfg.HistoryFile)
	}
	return NewBufferedReader(os.Stdin, os.Stdout)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// LinerReader is a readline-style editor with optional persistent history.
type LinerReader struct {
	state       *liner.State
	historyFile string
}

// NewLinerReader takes over the terminal. Close must be called to restore it.
func NewLinerReader(historyFile string) *LinerReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
	}

	return &LinerReader{state: state, historyFile: historyFile}
}

func (r *LinerReader) ReadLine(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if err != nil {
		return "", mapLinerError(err)
	}
	if strings.TrimSpace(line) != "" {
		r.state.AppendHistory(line)
	}
	return line, nil
}

// ReadPassword reads without echo. Passwords never enter the history.
func (r *LinerReader) ReadPassword(prompt string) (string, error) {
	line, err := r.state.PasswordPrompt(prompt)
	if err != nil {
		return "", mapLinerError(err)
	}
	return line, nil
}

// Close saves the history and restores the terminal mode.
func (r *LinerReader) Close() error {
	if r.historyFile != "" {
		var buf bytes.Buffer
		if _, err := r.state.WriteHistory(&buf); err == nil {
			if err := atomic.WriteFile(r.historyFile, &buf); err != nil {
				log.Printf("Failed to save history to %s: %v", r.historyFile, err)
			}
		}
	}
	return r.state.Close()
}

func mapLinerError(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return ErrInputClosed
	}
	return fmt.Errorf("reading input: %w", err)
}

// BufferedReader reads lines from any io.Reader and echoes prompts to out.
// It serves non-interactive input and tests.
type BufferedReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func NewBufferedReader(in io.Reader, out io.Writer) *BufferedReader {
	return &BufferedReader{scanner: bufio.NewScanner(in), out: out}
}

func (r *BufferedReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimRight(r.scanner.Text(), "\r"), nil
}

func (r *BufferedReader) ReadPassword(prompt string) (string, error) {
	return r.ReadLine(prompt)
}

func (r *BufferedReader) Close() error {
	return nil
}
