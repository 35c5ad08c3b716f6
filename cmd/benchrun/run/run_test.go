//go:build unix

// Copyright (c) 2016-2019, Andreas T Jonsson
// All rights reserved.

package run

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMeasureCapturesOutput(t *testing.T) {
	var stdout bytes.Buffer
	r := &Runner{Stdout: &stdout}

	res, err := r.Measure(context.Background(), "sh", "-c", "echo hello")
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode)
	require.Equal(t, "hello\n", stdout.String())
	require.True(t, res.Elapsed > 0)
	require.True(t, res.PeakRSS >= 0)
}

func TestMeasureExitCode(t *testing.T) {
	r := &Runner{}
	res, err := r.Measure(context.Background(), "sh", "-c", "exit 3")
	require.NoError(t, err)
	require.Equal(t, 3, res.ExitCode)
}

func TestMeasureStdinAndDir(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	var stdout bytes.Buffer
	r := &Runner{Dir: dir, Stdin: strings.NewReader("abc"), Stdout: &stdout}

	_, err = r.Measure(context.Background(), "sh", "-c", "cat; pwd")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout.String(), "abc"))
	require.Contains(t, stdout.String(), dir)
}

func TestMeasureStartFailure(t *testing.T) {
	r := &Runner{}
	res, err := r.Measure(context.Background(), "/nonexistent/program")
	require.Error(t, err)
	require.Nil(t, res)
	require.Contains(t, err.Error(), "failed to start")
}

func TestMeasureCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	r := &Runner{}
	res, err := r.Measure(ctx, "sleep", "10")
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.NotNil(t, res)
	require.True(t, res.Elapsed < 10*time.Second)
}

func TestWriteResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResult(&buf, &Result{Elapsed: 1500 * time.Millisecond, PeakRSS: 2048}))
	require.Equal(t, "Time: 1.50000s\nPeak Memory: 2048 KB\n", buf.String())
}

func TestMeasurePeakRSSIsPerProcess(t *testing.T) {
	r := &Runner{Stdout: &bytes.Buffer{}}

	big, err := r.Measure(context.Background(), "sh", "-c", `x=$(head -c 80000000 /dev/zero | tr '\0' a); echo ${#x}`)
	require.NoError(t, err)
	require.Equal(t, 0, big.ExitCode)

	tiny, err := r.Measure(context.Background(), "true")
	require.NoError(t, err)
	require.True(t, big.PeakRSS > 50000, "big child: %d KB", big.PeakRSS)
	require.True(t, tiny.PeakRSS < big.PeakRSS/2, "tiny child: %d KB, big child: %d KB", tiny.PeakRSS, big.PeakRSS)
}

func TestMeasureCancelKillsGrandchildren(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	var stdout bytes.Buffer
	r := &Runner{Stdout: &stdout}
	start := time.Now()
	_, err := r.Measure(ctx, "sh", "-c", "sleep 10; echo done")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.True(t, time.Since(start) < 5*time.Second)
	require.NotContains(t, stdout.String(), "done")
}
