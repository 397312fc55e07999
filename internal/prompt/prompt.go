package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

var ErrNoInput = errors.New("prompt: input closed before a choice was made")

// Chooser picks one of a bounded set of options and returns its 0-based index.
type Chooser interface {
	Choose(title string, options []string) (int, error)
}

// Console reads numbered choices from a line-oriented reader.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Choose prints options as a 1-based menu and blocks until a valid number is read.
func (c *Console) Choose(title string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, fmt.Errorf("prompt: no options to choose from")
	}

	fmt.Fprintln(c.out, title)
	width := len(strconv.Itoa(len(options)))
	for i, option := range options {
		fmt.Fprintf(c.out, "%*d) %s\n", width, i+1, option)
	}

	for {
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}
		if line == "" {
			fmt.Fprintln(c.out, "No input detected, please enter a number.")
			continue
		}

		choice, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(c.out, "Unable to read input as a whole number.")
			continue
		}
		if choice <= 0 || choice > len(options) {
			fmt.Fprintln(c.out, "Input was not a valid option.")
			continue
		}
		return choice - 1, nil
	}
}

// Confirm asks a y/N question; anything but y or yes declines.
func (c *Console) Confirm(question string) (bool, error) {
	fmt.Fprintf(c.out, "%s (y/N): ", question)
	line, err := c.readLine()
	if err != nil {
		return false, err
	}
	return slices.Contains([]string{"y", "yes"}, strings.ToLower(line)), nil
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("prompt: read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Scripted answers Choose from a fixed list of 0-based indexes, for tests
// and non-interactive runs.
type Scripted struct {
	Answers []int
	Titles  []string
}

func (s *Scripted) Choose(title string, options []string) (int, error) {
	s.Titles = append(s.Titles, title)
	if len(s.Answers) == 0 {
		return 0, ErrNoInput
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	if answer < 0 || answer >= len(options) {
		return 0, fmt.Errorf("prompt: scripted answer %d out of range for %d options", answer, len(options))
	}
	return answer, nil
}
