package renderer

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/vk/lteval/internal/ctxlog"
)

const maxLineSize = 1 << 20

// scanOutputLines splits renderer output at '\n', '\r' or "\r\n", so
// progress bars redrawn with carriage returns arrive update by update. A
// line longer than maxLineSize is forwarded in maxLineSize chunks.
func scanOutputLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// A trailing '\r' may be the first half of "\r\n".
		if i < maxLineSize {
			return 0, nil, nil
		}
	}
	if len(data) >= maxLineSize {
		return maxLineSize, data[:maxLineSize], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// ExitError reports a renderer process that exited unsuccessfully.
type ExitError struct {
	Executable string
	Code       int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("renderer %s exited with code %d", e.Executable, e.Code)
}

// Run starts the executable and forwards its combined output to sink line by
// line while it runs. filter, when set, rewrites each line before it is
// forwarded. Run returns once the process has exited; its outcome depends on
// the exit status only, never on how the output could be read.
func Run(ctx context.Context, executable string, args []string, sink Sink, filter func(string) string) error {
	logger := ctxlog.FromContext(ctx)
	if sink == nil {
		sink = DiscardSink
	}

	cmd := exec.CommandContext(ctx, executable, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("connecting to renderer output: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	logger.Debug("Starting renderer.", "executable", executable, "args", args)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting renderer %s: %w", executable, err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize+1)
	scanner.Split(scanOutputLines)
	for scanner.Scan() {
		line := scanner.Text()
		if filter != nil {
			line = filter(line)
		}
		sink.WriteLine(line)
	}
	if scanErr := scanner.Err(); scanErr != nil {
		logger.Warn("Renderer output could not be read, discarding the rest.", "executable", executable, "error", scanErr)
		_, _ = io.Copy(io.Discard, stdout)
	}

	err = cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Executable: executable, Code: exitErr.ExitCode()}
	}
	if err != nil {
		return fmt.Errorf("waiting for renderer %s: %w", executable, err)
	}
	logger.Debug("Renderer finished.", "executable", executable)
	return nil
}
