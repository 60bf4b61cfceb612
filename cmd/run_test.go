package cmd

import (
	"bytes"
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterruptContext_SignalCancels(t *testing.T) {
	var errOut bytes.Buffer
	ctx, stop := interruptContext(context.Background(), &errOut)
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context not cancelled by SIGTERM")
	}
	assert.Contains(t, errOut.String(), "Received interrupt signal")
}

func TestInterruptContext_StopIsQuiet(t *testing.T) {
	var errOut bytes.Buffer
	ctx, stop := interruptContext(context.Background(), &errOut)
	stop()

	<-ctx.Done()
	assert.Empty(t, errOut.String())
}

func TestRootCommand_RejectsUnknownTheme(t *testing.T) {
	isolateConfig(t)
	configPath = ""

	originalTheme := theme
	defer func() {
		theme = originalTheme
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}()

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"plan", "--theme", "solarized"})

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme")
}
