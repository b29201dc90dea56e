package terminal

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Console combines a LineReader with an output writer and provides the
// re-prompting input helpers the menus are built from.
type Console struct {
	in  LineReader
	out io.Writer
}

func NewConsole(in LineReader, out io.Writer) *Console {
	return &Console{in: in, out: out}
}

// Out returns the writer the console prints to.
func (c *Console) Out() io.Writer {
	return c.out
}

func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}

// Print writes rendered box lines.
func (c *Console) Print(lines []string) {
	Print(c.out, lines)
}

// Prompt reads one line with surrounding whitespace removed.
func (c *Console) Prompt(label string) (string, error) {
	line, err := c.in.ReadLine(label)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Password reads a line without echo where the reader supports it.
func (c *Console) Password(label string) (string, error) {
	return c.in.ReadPassword(label)
}

// PromptValid re-prompts until check accepts the answer. The check error is
// shown to the user between attempts as "Invalid input: <err>."
func (c *Console) PromptValid(label string, check func(string) error) (string, error) {
	for {
		answer, err := c.Prompt(label)
		if err != nil {
			return "", err
		}
		if err := check(answer); err != nil {
			c.Printf("Invalid input: %v.\n", err)
			continue
		}
		return answer, nil
	}
}

// Choice reads an integer in [min, max], re-prompting on anything else.
func (c *Console) Choice(label string, min, max int) (int, error) {
	for {
		answer, err := c.Prompt(label)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < min || n > max {
			c.Println("Invalid choice.")
			continue
		}
		return n, nil
	}
}

// Confirm asks a yes/no question. Anything but y or yes counts as no.
func (c *Console) Confirm(label string) (bool, error) {
	answer, err := c.Prompt(label + " (y/n): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Pause waits for enter.
func (c *Console) Pause() error {
	_, err := c.in.ReadLine("\n Press enter to return.")
	return err
}

// IsClosed reports whether err means input has ended.
func IsClosed(err error) bool {
	return errors.Is(err, ErrInputClosed)
}
