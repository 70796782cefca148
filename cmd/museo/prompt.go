package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"museo/internal/authview"
)

// prompter asks for form values on stdin. Secret fields are read without
// echo when stdin is a terminal.
type prompter struct {
	reader *bufio.Reader
	out    io.Writer
	fd     int
	tty    bool
}

func newPrompter(cmd *cobra.Command) *prompter {
	in := cmd.InOrStdin()
	p := &prompter{reader: bufio.NewReader(in), out: cmd.ErrOrStderr()}
	if file, ok := in.(*os.File); ok && isatty.IsTerminal(file.Fd()) {
		p.tty = true
		p.fd = int(file.Fd())
	}
	return p
}

func (p *prompter) ask(spec authview.FieldSpec) (string, error) {
	label := spec.Label
	if spec.Placeholder != "" {
		label += " (" + spec.Placeholder + ")"
	}
	fmt.Fprintf(p.out, "%s: ", label)

	if spec.Secret && p.tty {
		value, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", strings.ToLower(spec.Label), err)
		}
		return string(value), nil
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(spec.Label), err)
	}
	if !p.tty {
		fmt.Fprintln(p.out)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
