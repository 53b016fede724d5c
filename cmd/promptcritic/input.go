package main

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// readInput returns the prompt from args, --file, or stdin, in that order.
func readInput(args []string, file string, stdin io.Reader) (string, error) {
	switch {
	case len(args) > 0 && file != "":
		return "", fmt.Errorf("give the prompt as an argument or --file, not both")
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
}
