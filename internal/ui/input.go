package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	// ErrEmptyInput is returned when the user provides no input
	ErrEmptyInput = errors.New("empty input")

	// ErrInterrupted is returned when the user interrupts input with Ctrl+C
	ErrInterrupted = errors.New("input interrupted")
)

// IsTerminal reports whether r is an interactive terminal
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// LinePrompt asks for a single line of input
type LinePrompt struct {
	Prompt   string   // The main prompt message
	Hint     string   // Hint text shown to help users
	Examples []string // Example inputs to show users
	Default  string   // Returned on empty input when set
	Mask     bool     // Hide typed characters (API keys)
}

// Show displays the prompt and reads one line.
// Terminals get line editing through readline; anything else is read plainly.
func (p *LinePrompt) Show(input io.Reader, output io.Writer) (string, error) {
	if err := p.displayPrompt(output); err != nil {
		return "", err
	}

	var line string
	var err error
	if IsTerminal(input) && input == os.Stdin {
		line, err = p.readWithReadline(output)
	} else {
		_, _ = fmt.Fprint(output, p.cursor())
		line, err = readLine(input)
	}
	if err != nil {
		return "", err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		if p.Default != "" {
			return p.Default, nil
		}
		return "", ErrEmptyInput
	}
	return line, nil
}

func (p *LinePrompt) cursor() string {
	if p.Default != "" && !p.Mask {
		return fmt.Sprintf("[%s] > ", p.Default)
	}
	return "> "
}

// displayPrompt shows the prompt, hint, and examples
func (p *LinePrompt) displayPrompt(output io.Writer) error {
	bold := color.New(color.Bold)
	cyan := color.New(color.FgCyan)
	dim := color.New(color.FgHiBlack)
	green := color.New(color.FgGreen)

	if _, err := bold.Fprintln(output, p.Prompt); err != nil {
		return err
	}

	if p.Hint != "" {
		if _, err := dim.Fprintf(output, "   %s\n", p.Hint); err != nil {
			return err
		}
	}

	if len(p.Examples) > 0 {
		if _, err := cyan.Fprintln(output, "   Examples:"); err != nil {
			return err
		}
		for _, example := range p.Examples {
			if _, err := green.Fprintf(output, "   • %s\n", example); err != nil {
				return err
			}
		}
	}
	return nil
}

// readWithReadline uses readline for a better terminal input experience
func (p *LinePrompt) readWithReadline(output io.Writer) (string, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          p.cursor(),
		InterruptPrompt: "^C",
		EOFPrompt:       "^D",
		EnableMask:      p.Mask,
		MaskRune:        '*',
	})
	if err != nil {
		// Fallback to regular input if readline fails
		_, _ = fmt.Fprint(output, p.cursor())
		return readLine(os.Stdin)
	}
	defer rl.Close()

	line, err := rl.Readline()
	switch {
	case errors.Is(err, readline.ErrInterrupt):
		_, _ = fmt.Fprintln(output, "\nInput cancelled.")
		return "", ErrInterrupted
	case errors.Is(err, io.EOF):
		return "", ErrEmptyInput
	case err != nil:
		return "", err
	}
	return line, nil
}

// readLine reads up to a newline one byte at a time, so several prompts can
// share one reader without buffering ahead of each other.
func readLine(input io.Reader) (string, error) {
	var b strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := input.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return strings.TrimRight(b.String(), "\r"), nil
			}
			b.WriteByte(buf[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && b.Len() > 0 {
				return strings.TrimRight(b.String(), "\r"), nil
			}
			return "", err
		}
	}
}
