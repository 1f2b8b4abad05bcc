package prompt

import (
	// Stdlib
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	// Vendor
	"github.com/bgentry/speakeasy"
	"golang.org/x/term"
)

var ErrCanceled = errors.New("operation canceled")

type InvalidInputError struct {
	input string
}

func (i *InvalidInputError) Error() string {
	return "Invalid input: " + i.input
}

type OutOfBoundsError struct {
	input string
}

func (i *OutOfBoundsError) Error() string {
	return "Index out of bounds: " + i.input
}

// Asker asks the user for a single value.
type Asker interface {
	Prompt(msg string) (string, error)
	Password(msg string) (string, error)
}

// Console prompts the user over a pair of streams, stdin and stdout by default.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	// interactive is set when in is a terminal, enabling hidden input.
	interactive bool
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	console := &Console{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok {
		console.interactive = term.IsTerminal(int(f.Fd()))
	}
	return console
}

var std = NewConsole(os.Stdin, os.Stdout)

// Default returns the console bound to stdin and stdout.
func Default() *Console {
	return std
}

func (console *Console) readLine() (string, error) {
	line, err := console.in.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			if line == "" {
				return "", ErrCanceled
			}
		} else {
			return "", err
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (console *Console) Prompt(msg string) (string, error) {
	fmt.Fprint(console.out, msg)
	return console.readLine()
}

// Password reads a line without echoing it when running in a terminal.
// An empty answer cancels the operation.
func (console *Console) Password(msg string) (string, error) {
	var (
		answer string
		err    error
	)
	if console.interactive {
		answer, err = speakeasy.Ask(msg)
	} else {
		answer, err = console.Prompt(msg)
	}
	if err != nil {
		return "", err
	}
	if answer = strings.TrimSpace(answer); answer == "" {
		return "", ErrCanceled
	}
	return answer, nil
}

func (console *Console) PromptIndex(msg string, min, max int) (int, error) {
	line, err := console.Prompt(msg)
	if err != nil {
		return 0, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, ErrCanceled
	}

	index, err := strconv.Atoi(line)
	if err != nil {
		return 0, &InvalidInputError{line}
	}

	if index < min || index > max {
		return 0, &OutOfBoundsError{line}
	}

	return index, nil
}
