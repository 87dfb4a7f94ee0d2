package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// editorVars are checked in order; the first one set names the editor.
var editorVars = []string{"KEX_EDITOR", "VISUAL", "EDITOR"}

// Editor runs an external editor on a scratch copy of a file.
type Editor struct {
	// Command is the editor command line, e.g. "code --wait". The file
	// path is appended as the last argument.
	Command string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// EditorFromEnv returns the editor named by $KEX_EDITOR, $VISUAL or
// $EDITOR, attached to the process's standard streams.
func EditorFromEnv() (*Editor, error) {
	for _, v := range editorVars {
		if command := strings.TrimSpace(os.Getenv(v)); command != "" {
			return &Editor{Command: command, Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}, nil
		}
	}
	return nil, &ValidationError{
		Field:   "editor",
		Message: "EDITOR not set. Set KEX_EDITOR, VISUAL or EDITOR to edit problems",
	}
}

// Edit writes content to a scratch file called name, waits for the editor
// to exit and returns the saved content. changed is false when the file
// was saved as it was.
func (e *Editor) Edit(name string, content []byte) (edited []byte, changed bool, err error) {
	dir, err := os.MkdirTemp("", "kex-edit-*")
	if err != nil {
		return nil, false, fmt.Errorf("failed to create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, content, 0600); err != nil {
		return nil, false, fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err := e.run(path); err != nil {
		return nil, false, err
	}

	edited, err = os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return edited, !bytes.Equal(edited, content), nil
}

func (e *Editor) run(path string) error {
	fields := strings.Fields(e.Command)
	if len(fields) == 0 {
		return fmt.Errorf("empty editor command")
	}

	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = e.Stdin, e.Stdout, e.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &exitErr):
		return fmt.Errorf("editor %s exited with status %d", fields[0], exitErr.ExitCode())
	default:
		return fmt.Errorf("failed to run editor %s: %w", fields[0], err)
	}
}
