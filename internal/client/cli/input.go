package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/linekeeper/internal/client/client"
	pb "github.com/dmitrijs2005/linekeeper/internal/proto"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// promptValue marks a key=value assignment whose value is read from the
// terminal, e.g. secret=-.
const promptValue = "-"

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// If EOF occurs after some input was read, the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints a prompt to w and reads a secret from the terminal
// without echo. The caller should wipe the returned slice.
func GetPassword(w io.Writer, prompt string) ([]byte, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// parseAssignments turns key=value words into Fields. Keys must be known
// field keys; a key may appear once.
func parseAssignments(words []string) (client.Fields, error) {
	known := make(map[string]struct{}, len(pb.FieldKeys))
	for _, k := range pb.FieldKeys {
		known[k] = struct{}{}
	}

	fields := client.Fields{}
	for _, w := range words {
		key, value, ok := strings.Cut(w, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", w)
		}
		if _, ok := known[key]; !ok {
			return nil, fmt.Errorf("unknown field %q (known: %s)", key, strings.Join(pb.FieldKeys, ", "))
		}
		if _, dup := fields[key]; dup {
			return nil, fmt.Errorf("field %q given twice", key)
		}
		fields[key] = value
	}
	return fields, nil
}
