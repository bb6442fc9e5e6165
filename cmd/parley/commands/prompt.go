package commands

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// readPIN returns the --pin flag when set, otherwise prompts on the
// terminal without echo.
func readPIN(label string, confirm bool) (string, error) {
	if pin != "" {
		return pin, nil
	}
	return promptSecret(label, confirm)
}

// promptSecret always prompts, ignoring the --pin flag. Used where a second
// secret is needed in the same run, like the new PIN in passwd.
func promptSecret(label string, confirm bool) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	first, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if confirm {
		fmt.Fprintf(os.Stderr, "Confirm %s: ", strings.ToLower(label))
		again, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		if string(first) != string(again) {
			return "", errors.New("entries do not match")
		}
	}
	return string(first), nil
}

// promptLine reads one visible line from stdin.
func promptLine(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
