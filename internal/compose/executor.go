package compose

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"ddsmatrix/pkg/logging"
)

// Command is one invocation of an external program.
type Command struct {
	Args  []string    // argv, Args[0] is the executable
	Env   Environment // complete environment of the child
	Dir   string      // working directory, empty for the current one
	Quiet bool        // discard output instead of inheriting it
}

func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// Stream is the combined output of a running command.
// Terminate stops the command and releases the output pipe; it is safe to
// call more than once and from any goroutine.
type Stream interface {
	io.Reader
	Terminate() error
}

// Executor runs external commands.
type Executor interface {
	// Run executes cmd to completion. A non-zero exit is reported as
	// *CommandFailedError.
	Run(ctx context.Context, cmd Command) error
	// Start launches cmd and returns its combined stdout and stderr.
	Start(ctx context.Context, cmd Command) (Stream, error)
}

// minWaitDelay is the shortest time a terminated command gets to release
// its output.
const minWaitDelay = time.Second

// ExecExecutor runs commands with os/exec.
type ExecExecutor struct {
	stdout          io.Writer
	stderr          io.Writer
	stopGracePeriod time.Duration
}

// NewExecExecutor creates an executor writing inherited output to stdout and
// stderr. stopGracePeriod is the delay between SIGTERM and SIGKILL when a
// started command is terminated; zero kills immediately. Output still held
// by leftover children is released after at most one second.
func NewExecExecutor(stdout, stderr io.Writer, stopGracePeriod time.Duration) *ExecExecutor {
	return &ExecExecutor{
		stdout:          stdout,
		stderr:          stderr,
		stopGracePeriod: stopGracePeriod,
	}
}

// Run implements Executor.
func (e *ExecExecutor) Run(ctx context.Context, cmd Command) error {
	if len(cmd.Args) == 0 {
		return errors.New("empty command")
	}

	c := exec.CommandContext(ctx, cmd.Args[0], cmd.Args[1:]...)
	c.Env = cmd.Env.Environ()
	c.Dir = cmd.Dir
	if !cmd.Quiet {
		c.Stdout = e.stdout
		c.Stderr = e.stderr
	}

	logging.Debug("Exec", "Running %s", cmd)
	start := time.Now()
	if err := c.Run(); err != nil {
		return newCommandFailed(cmd.Args, err)
	}
	logging.Debug("Exec", "Finished %s in %v", cmd, time.Since(start).Round(time.Millisecond))
	return nil
}

// Start implements Executor.
func (e *ExecExecutor) Start(ctx context.Context, cmd Command) (Stream, error) {
	if len(cmd.Args) == 0 {
		return nil, errors.New("empty command")
	}

	cmdCtx, cancel := context.WithCancel(ctx)
	c := exec.CommandContext(cmdCtx, cmd.Args[0], cmd.Args[1:]...)
	c.Env = cmd.Env.Environ()
	c.Dir = cmd.Dir
	if e.stopGracePeriod > 0 {
		// Ask nicely first; exec kills the process once WaitDelay expires.
		c.Cancel = func() error {
			return c.Process.Signal(syscall.SIGTERM)
		}
	}
	// Children of the follower may keep the output pipe open after it died.
	// WaitDelay bounds how long Wait waits for them before closing the pipe.
	c.WaitDelay = max(e.stopGracePeriod, minWaitDelay)

	pr, pw := io.Pipe()
	c.Stdout = pw
	c.Stderr = pw

	if err := c.Start(); err != nil {
		cancel()
		pw.Close()
		pr.Close()
		return nil, newCommandFailed(cmd.Args, err)
	}

	logging.Debug("Exec", "Started %s (PID: %d)", cmd, c.Process.Pid)

	s := &processStream{
		args:   cmd.Args,
		reader: pr,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		s.waitErr = c.Wait()
		pw.Close()
		close(s.done)
	}()
	return s, nil
}

func newCommandFailed(args []string, err error) *CommandFailedError {
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return &CommandFailedError{
		Args:     append([]string(nil), args...),
		ExitCode: exitCode,
		Err:      err,
	}
}

// processStream is the Stream of a command started by ExecExecutor.
type processStream struct {
	args   []string
	reader *io.PipeReader
	cancel context.CancelFunc

	done    chan struct{} // closed once Wait returned
	waitErr error

	once         sync.Once
	terminateErr error
}

func (s *processStream) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

// Terminate signals the process, unblocks pending writes of its output and
// waits for it to exit.
func (s *processStream) Terminate() error {
	s.once.Do(func() {
		s.cancel()
		// Nobody reads the output any more; fail writes instead of blocking.
		s.reader.Close()
		<-s.done

		if errors.Is(s.waitErr, exec.ErrWaitDelay) {
			s.terminateErr = fmt.Errorf("%s did not release its output within the stop grace period", strings.Join(s.args, " "))
		}
		logging.Debug("Exec", "Terminated %s (wait result: %v)", strings.Join(s.args, " "), s.waitErr)
	})
	return s.terminateErr
}
