package cmd

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// promptSecret reads a secret from the terminal without echoing it.
// The prompt goes to stderr so command output stays pipeable.
func promptSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no terminal available to prompt for a secret")
	}
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	if len(raw) == 0 {
		return "", errors.New("empty secret")
	}
	return string(raw), nil
}
