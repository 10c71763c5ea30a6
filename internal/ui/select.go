package ui

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// SelectOption shows a numbered list and returns the zero-based index picked.
// Empty input picks defaultIndex; out-of-range defaults fall back to the first option.
func SelectOption(message string, options []string, defaultIndex int, input io.Reader, output io.Writer) (int, error) {
	if len(options) == 0 {
		return -1, errors.New("no options to select from")
	}
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}

	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)

	if _, err := bold.Fprintln(output, message); err != nil {
		return -1, err
	}
	for i, option := range options {
		marker := " "
		if i == defaultIndex {
			marker = "*"
		}
		if _, err := cyan.Fprintf(output, " %s %d) ", marker, i+1); err != nil {
			return -1, err
		}
		if _, err := fmt.Fprintln(output, option); err != nil {
			return -1, err
		}
	}

	for {
		if _, err := fmt.Fprintf(output, "Select [1-%d] (default %d): ", len(options), defaultIndex+1); err != nil {
			return -1, err
		}

		line, err := readLine(input)
		if err != nil {
			return -1, err
		}

		answer := strings.TrimSpace(line)
		if answer == "" {
			return defaultIndex, nil
		}

		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(options) {
			return n - 1, nil
		}

		if _, err := fmt.Fprintf(output, "Please enter a number between 1 and %d\n", len(options)); err != nil {
			return -1, err
		}
	}
}
