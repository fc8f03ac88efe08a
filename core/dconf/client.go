package dconf

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Client defines the interface for dconf database operations.
type Client interface {
	// Dump returns a full snapshot of the database.
	Dump(ctx context.Context) (*Snapshot, error)
	// Write sets the key at path to the given GVariant text value.
	Write(ctx context.Context, path, value string) error
	// Reset removes the key at path, or everything under a directory prefix
	// when path ends with a slash.
	Reset(ctx context.Context, path string) error
}

// CommandError reports a failed dconf invocation.
type CommandError struct {
	// Args is the full argv of the failed invocation, binary included.
	Args []string
	// Stderr is the captured standard error output, trimmed.
	Stderr string
	// Err is the underlying process error.
	Err error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// execClient implements Client by running the dconf binary.
type execClient struct {
	binary  string
	timeout time.Duration
}

// NewClient creates a new dconf client based on the configuration.
func NewClient(cfg Config) Client {
	binary := cfg.Binary
	if binary == "" {
		binary = "dconf"
	}

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	return &execClient{
		binary:  binary,
		timeout: time.Duration(timeout) * time.Second,
	}
}

func (c *execClient) Dump(ctx context.Context) (*Snapshot, error) {
	out, err := c.run(ctx, "dump", "/")
	if err != nil {
		return nil, err
	}

	snap, err := ParseDump(out)
	if err != nil {
		return nil, fmt.Errorf("parsing dconf dump: %w", err)
	}

	return snap, nil
}

func (c *execClient) Write(ctx context.Context, path, value string) error {
	_, err := c.run(ctx, "write", path, value)
	return err
}

func (c *execClient) Reset(ctx context.Context, path string) error {
	_, err := c.run(ctx, "reset", "-f", path)
	return err
}

// run executes one dconf invocation with the configured timeout.
func (c *execClient) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binary, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &CommandError{
			Args:   append([]string{c.binary}, args...),
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	return stdout.String(), nil
}
