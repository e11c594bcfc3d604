// Copyright (c) 2025 BVK Chaitanya

package subcmds

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// isTerminal returns true if r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readWord reads the first whitespace separated word from the input. Prompt
// is printed only for interactive terminals.
func readWord(r io.Reader, w io.Writer, prompt string) (string, error) {
	if isTerminal(r) {
		fmt.Fprint(w, prompt)
	}
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// readSecret reads a line from the terminal without echo.
func readSecret(r io.Reader, w io.Writer, prompt string) (string, error) {
	f, ok := r.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("secret can only be read from a terminal")
	}
	fmt.Fprint(w, prompt)
	data, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
