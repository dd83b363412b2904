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

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// StdinIsTerminal reports whether the shell should print its prompt.
func StdinIsTerminal() bool {
	return isTerminal(int(os.Stdin.Fd()))
}

// readLine reads one line without its line ending. A final line without a
// newline is returned as is; io.EOF is returned only when nothing was read.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// GetSimpleText prints prompt to w and reads a single trimmed line.
//
//	Title [Personal Photo 1]
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := readLine(reader)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetWithDefault is GetSimpleText with a prefilled value: an empty answer
// keeps current and a single "-" stands for an empty value.
func GetWithDefault(reader *bufio.Reader, label, current string, w io.Writer) (string, error) {
	answer, err := GetSimpleText(reader, fmt.Sprintf("%s [%s] (- to clear)", label, current), w)
	if err != nil {
		return "", err
	}
	switch answer {
	case "":
		return current, nil
	case "-":
		return "", nil
	default:
		return answer, nil
	}
}
