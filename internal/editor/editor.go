package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrUnavailable signals that no external editor could be launched; the
// caller falls back to inline collection.
var ErrUnavailable = errors.New("external editor unavailable")

// Launcher opens seed text in an external editor and returns the edited
// result.
type Launcher interface {
	Edit(seed string) (string, error)
}

// EnvLauncher runs the configured command, or $EDITOR, on a temp file.
type EnvLauncher struct {
	Command string // overrides $EDITOR when non-empty
}

func (l EnvLauncher) Edit(seed string) (string, error) {
	command := l.Command
	if command == "" {
		command = os.Getenv("EDITOR")
	}
	if command == "" {
		return "", ErrUnavailable
	}

	tmp, err := os.CreateTemp("", "docgaps-*.txt")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(seed); err != nil {
		tmp.Close()
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	parts := strings.Fields(command)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return strings.TrimSpace(string(edited)), nil
}

// None always reports unavailability. It is the capability default when
// editing is disabled outright.
type None struct{}

func (None) Edit(seed string) (string, error) { return "", ErrUnavailable }
