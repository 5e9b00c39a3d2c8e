package output

import (
	"fmt"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title string
	tty   func() bool
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// withTTYCheck overrides terminal detection.
func withTTYCheck(fn func() bool) SpinnerOption {
	return func(c *spinnerConfig) {
		c.tty = fn
	}
}

// RunWithSpinner executes action while a spinner is shown on stderr.
// On a non-terminal the action runs directly. Returns the action's error.
func RunWithSpinner(action func() error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{
		title: "Working...",
		tty:   IsTTY,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if !cfg.tty() {
		return action()
	}

	var actionErr error
	if err := spinner.New().Title(cfg.title).Action(func() {
		actionErr = action()
	}).Run(); err != nil {
		return fmt.Errorf("spinner error: %w", err)
	}

	return actionErr
}
