// Package prompt provides the interactive questions next-codemod asks when a
// transform or path is missing and before follow-up package actions.
package prompt

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// ErrCancelled indicates the user aborted an interactive prompt. A cancelled
// prompt aborts the whole run before anything is spawned.
var ErrCancelled = errors.New("prompt: cancelled")

// ErrNonInteractive indicates a prompt was required but stdin is not a
// terminal. Callers should supply the missing argument on the command line.
var ErrNonInteractive = errors.New("prompt: stdin is not a terminal, pass the missing argument explicitly")

// Prompter asks a single question and returns the answer, or ErrCancelled
// when the user aborts.
type Prompter interface {
	// Select presents options and returns the index of the chosen one.
	Select(question string, options []string) (int, error)

	// Input asks for free text with a pre-filled default value.
	Input(question, defaultValue string) (string, error)

	// Confirm asks a yes/no question with the given default answer.
	Confirm(question string, defaultYes bool) (bool, error)
}

// Terminal implements Prompter on top of pterm's interactive printers.
type Terminal struct{}

// NewTerminal returns a Prompter backed by the controlling terminal.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Select presents a scrollable list and returns the chosen index.
func (t *Terminal) Select(question string, options []string) (int, error) {
	if err := requireTTY(); err != nil {
		return 0, err
	}
	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText(question).
		WithMaxHeight(10).
		Show()
	if err != nil {
		return 0, cancelled(err)
	}
	for i, opt := range options {
		if opt == choice {
			return i, nil
		}
	}
	return 0, fmt.Errorf("prompt: answer %q is not one of the presented options", choice)
}

// Input asks for a line of text, returning defaultValue on empty input.
func (t *Terminal) Input(question, defaultValue string) (string, error) {
	if err := requireTTY(); err != nil {
		return "", err
	}
	answer, err := pterm.DefaultInteractiveTextInput.
		WithDefaultText(question).
		WithDefaultValue(defaultValue).
		Show()
	if err != nil {
		return "", cancelled(err)
	}
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question.
func (t *Terminal) Confirm(question string, defaultYes bool) (bool, error) {
	if err := requireTTY(); err != nil {
		return false, err
	}
	answer, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(defaultYes).
		Show(question)
	if err != nil {
		return false, cancelled(err)
	}
	return answer, nil
}

func requireTTY() error {
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return nil
	}
	return ErrNonInteractive
}

func cancelled(err error) error {
	return fmt.Errorf("%w: %v", ErrCancelled, err)
}
