package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Interactive prompts write a question to out and read the answer. They are
// variables so tests can answer without a terminal.
var (
	askLine   = readLine
	askSecret = readSecret
	askStory  = readStory
)

var (
	secretReader = term.ReadPassword
	stdinFD      = func() int { return int(os.Stdin.Fd()) }
)

// readLine asks for a single trimmed line. A last line without a newline
// still counts; an input that is already exhausted yields io.EOF.
func readLine(in *bufio.Reader, question string, out io.Writer) (string, error) {
	if _, err := fmt.Fprintf(out, "%s: ", question); err != nil {
		return "", err
	}
	line, err := in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readSecret reads a password from the terminal with echo turned off.
func readSecret(out io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(out, "Password: "); err != nil {
		return nil, err
	}
	secret, err := secretReader(stdinFD())
	fmt.Fprintln(out)
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return secret, nil
}

// readStory collects lines up to the first blank one or the end of input.
func readStory(in *bufio.Reader, question string, out io.Writer) (string, error) {
	if _, err := fmt.Fprintf(out, "%s (finish with an empty line):\n", question); err != nil {
		return "", err
	}

	var b strings.Builder
	for {
		line, err := in.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if err != nil {
			break
		}
	}
	return strings.TrimSpace(b.String()), nil
}
