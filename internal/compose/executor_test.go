package compose

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func shell(script string, env Environment) Command {
	return Command{Args: []string{"sh", "-c", script}, Env: env}
}

func TestExecExecutorRun_Success(t *testing.T) {
	requireShell(t)
	var stdout, stderr bytes.Buffer
	e := NewExecExecutor(&stdout, &stderr, time.Second)

	env := InheritedEnvironment().With(map[string]string{EnvROSDistro: "humble"})
	err := e.Run(context.Background(), shell(`echo "distro=$ROS_DISTRO"; echo oops >&2`, env))
	require.NoError(t, err)
	assert.Equal(t, "distro=humble\n", stdout.String())
	assert.Equal(t, "oops\n", stderr.String())
}

func TestExecExecutorRun_Quiet(t *testing.T) {
	requireShell(t)
	var stdout bytes.Buffer
	e := NewExecExecutor(&stdout, &stdout, time.Second)

	cmd := shell("echo discarded", InheritedEnvironment())
	cmd.Quiet = true
	require.NoError(t, e.Run(context.Background(), cmd))
	assert.Empty(t, stdout.String())
}

func TestExecExecutorRun_NonZeroExit(t *testing.T) {
	requireShell(t)
	e := NewExecExecutor(io.Discard, io.Discard, time.Second)

	err := e.Run(context.Background(), shell("exit 3", InheritedEnvironment()))
	require.Error(t, err)

	var cmdErr *CommandFailedError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, []string{"sh", "-c", "exit 3"}, cmdErr.Args)
	assert.Contains(t, err.Error(), "exited with code 3")
}

func TestExecExecutorRun_MissingBinary(t *testing.T) {
	e := NewExecExecutor(io.Discard, io.Discard, time.Second)

	err := e.Run(context.Background(), Command{Args: []string{"ddsmatrix-definitely-not-installed"}})
	var cmdErr *CommandFailedError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, -1, cmdErr.ExitCode)
}

func TestExecExecutorRun_EmptyCommand(t *testing.T) {
	e := NewExecExecutor(io.Discard, io.Discard, time.Second)
	assert.Error(t, e.Run(context.Background(), Command{}))
	_, err := e.Start(context.Background(), Command{})
	assert.Error(t, err)
}

func TestExecExecutorStart_ReadsCombinedOutputUntilExit(t *testing.T) {
	requireShell(t)
	e := NewExecExecutor(io.Discard, io.Discard, time.Second)

	stream, err := e.Start(context.Background(), shell("echo one; echo two >&2; echo three", InheritedEnvironment()))
	require.NoError(t, err)
	defer stream.Terminate()

	var lines []string
	scanner := bufio.NewScanner(stream)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	assert.ElementsMatch(t, []string{"one", "two", "three"}, lines)
}

func TestExecExecutorStart_TerminateStopsFollower(t *testing.T) {
	requireShell(t)
	e := NewExecExecutor(io.Discard, io.Discard, 2*time.Second)

	stream, err := e.Start(context.Background(), shell("echo ready; exec sleep 60", InheritedEnvironment()))
	require.NoError(t, err)

	scanner := bufio.NewScanner(stream)
	require.True(t, scanner.Scan())
	assert.Equal(t, "ready", scanner.Text())

	done := make(chan error, 1)
	go func() { done <- stream.Terminate() }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Terminate did not return")
	}

	// Idempotent
	assert.NoError(t, stream.Terminate())
	assert.False(t, scanner.Scan(), "no output after termination")
}

func TestExecExecutorStart_TerminateWithUnreadOutput(t *testing.T) {
	requireShell(t)
	e := NewExecExecutor(io.Discard, io.Discard, time.Second)

	// Writes far more than the pipe buffers while nobody reads.
	stream, err := e.Start(context.Background(), shell("exec yes I heard", InheritedEnvironment()))
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	done := make(chan struct{})
	go func() {
		stream.Terminate()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Terminate blocked on unread output")
	}
}

func TestExecExecutorStart_TerminateWithoutGraceDoesNotWaitForChildren(t *testing.T) {
	requireShell(t)
	e := NewExecExecutor(io.Discard, io.Discard, 0)

	// sleep is a forked child inheriting the output pipe; killing sh leaves it behind.
	stream, err := e.Start(context.Background(), shell("echo ready; sleep 8; echo done", InheritedEnvironment()))
	require.NoError(t, err)

	scanner := bufio.NewScanner(stream)
	require.True(t, scanner.Scan())
	assert.Equal(t, "ready", scanner.Text())

	start := time.Now()
	done := make(chan error, 1)
	go func() { done <- stream.Terminate() }()

	select {
	case <-done:
		assert.Less(t, time.Since(start), 4*time.Second)
	case <-time.After(6 * time.Second):
		t.Fatal("Terminate waited for the orphaned child")
	}
}
