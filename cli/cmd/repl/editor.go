package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/manifest/log"
	"github.com/ardnew/manifest/manifest"
)

const defaultEditor = "vi"

// editCommand implements [tea.ExecCommand]. It writes the manifest source to
// a temporary file, opens it in the user's editor and parses the result,
// offering to re-edit until the text parses or the user declines.
type editCommand struct {
	ctxFunc  func() context.Context
	manifest *manifest.Manifest
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	source   string
	opts     []manifest.Option
	logger   log.Logger
}

func (c *editCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *editCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *editCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse loop. On success c.manifest and c.source hold
// the new manifest; if the user emptied the file c.manifest stays nil.
// Declining to re-edit returns [ErrEditDeclined].
func (c *editCommand) Run() error {
	ctx := c.ctxFunc()

	f, err := os.CreateTemp("", "manifest-repl-*.toml")
	if err != nil {
		return err
	}

	path := f.Name()
	defer os.Remove(path)

	if err := f.Close(); err != nil {
		return err
	}

	content := c.source

	for {
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		content = string(data)
		if strings.TrimSpace(content) == "" {
			return nil
		}

		m, err := manifest.Parse(content, c.opts...)

		c.logger.TraceContext(ctx, "editor parse attempt",
			slog.Int("bytes", len(data)),
			slog.Bool("success", err == nil),
		)

		if err == nil {
			c.manifest, c.source = m, content

			return nil
		}

		fmt.Fprintf(c.stderr, "\n%s\n", err)
		fmt.Fprint(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "no":
			return ErrEditDeclined
		}
	}
}

// runEditor opens path in $EDITOR, or vi if unset, and waits for it to exit.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout, stderr io.Writer,
	path string,
) error {
	args := strings.Fields(os.Getenv("EDITOR"))
	if len(args) == 0 {
		args = []string{defaultEditor}
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
