package terminal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrSelectionFormat = errors.New("enter numbers separated by commas, e.g. 1, 2, 3")
	ErrSelectionRange  = errors.New("selection out of range")
)

// ParseSelection reads a comma-separated list of 1-based indexes no larger
// than max. Repeated numbers are kept once, in first-seen order; blank
// entries are skipped, so an empty answer selects nothing.
func ParseSelection(answer string, max int) ([]int, error) {
	var picked []int
	seen := make(map[int]bool)
	for _, part := range strings.Split(answer, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, ErrSelectionFormat
		}
		if n < 1 || n > max {
			return nil, fmt.Errorf("%w: enter numbers between 1 and %d", ErrSelectionRange, max)
		}
		if !seen[n] {
			seen[n] = true
			picked = append(picked, n)
		}
	}
	return picked, nil
}

// SelectMany prompts until the answer parses as a selection out of count
// items. It returns 0-based indexes.
func (c *Console) SelectMany(label string, count int) ([]int, error) {
	for {
		answer, err := c.Prompt(label)
		if err != nil {
			return nil, err
		}
		picked, err := ParseSelection(answer, count)
		if err != nil {
			c.Printf("\nInvalid input: %v.\n", err)
			continue
		}
		indexes := make([]int, len(picked))
		for i, n := range picked {
			indexes[i] = n - 1
		}
		return indexes, nil
	}
}
