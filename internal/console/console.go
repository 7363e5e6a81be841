package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"roostaboosta/internal/logging"
)

// Exec runs a parsed command and returns the text to print back.
type Exec func(ctx context.Context, cmd Command) (string, error)

// Console pumps lines between a serial peer and an executor.
type Console struct {
	rw     io.ReadWriter
	exec   Exec
	logger *slog.Logger
}

// New wires a console to its transport and executor.
func New(rw io.ReadWriter, exec Exec, logger *slog.Logger) *Console {
	return &Console{
		rw:     rw,
		exec:   exec,
		logger: logging.NewComponentLogger(logger, "console"),
	}
}

// Run reads commands until the reader is exhausted or the context ends.
// Parse and execution failures are reported to the peer, not returned.
func (c *Console) Run(ctx context.Context) error {
	c.reply("roosta console ready, 'help' for commands")
	scanner := bufio.NewScanner(c.rw)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, err := Parse(line)
		if err != nil {
			c.reply("ERR " + err.Error())
			continue
		}
		if cmd.Kind == KindHelp {
			c.reply(Usage)
			continue
		}
		out, err := c.exec(ctx, cmd)
		if err != nil {
			c.logger.Warn("command failed",
				logging.String("line", line),
				logging.Error(err))
			c.reply("ERR " + err.Error())
			continue
		}
		if out == "" {
			out = "OK"
		}
		c.reply(out)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read console: %w", err)
	}
	return nil
}

// reply writes one response with CRLF line endings, the convention for
// serial terminals.
func (c *Console) reply(text string) {
	for _, line := range strings.Split(text, "\n") {
		if _, err := io.WriteString(c.rw, line+"\r\n"); err != nil {
			c.logger.Debug("write reply", logging.Error(err))
			return
		}
	}
}
