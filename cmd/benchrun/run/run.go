/*
Copyright (C) 2016-2019 Andreas T Jonsson

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package run executes a command and reports its wall time, peak memory
// and exit status.
package run

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Result describes one finished process.
type Result struct {
	Elapsed time.Duration
	// PeakRSS is the maximum resident set size in kilobytes of the measured
	// process alone, zero where the platform does not report it.
	PeakRSS  int64
	ExitCode int
}

// Runner starts processes with the given working directory and standard
// streams. Nil streams are connected to the null device.
type Runner struct {
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Measure runs prog to completion. A non-zero exit status is reported in
// the result, not as an error. Cancelling ctx kills the process.
func (r *Runner) Measure(ctx context.Context, prog string, args ...string) (*Result, error) {
	logrus.WithField("dir", r.Dir).Debug(prog, " ", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, prog, args...)
	cmd.Dir = r.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	setProcessGroup(cmd)

	t := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", prog, err)
	}
	err := cmd.Wait()
	res := &Result{Elapsed: time.Since(t), PeakRSS: peakRSS(cmd.ProcessState)}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, fmt.Errorf("%s interrupted: %w", prog, ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return res, fmt.Errorf("failed to wait for %s: %w", prog, err)
		}
		res.ExitCode = exitErr.ExitCode()
	}
	return res, nil
}

// WriteResult prints res in the report format of the run tool.
func WriteResult(w io.Writer, res *Result) error {
	_, err := fmt.Fprintf(w, "Time: %.5fs\nPeak Memory: %d KB\n", res.Elapsed.Seconds(), res.PeakRSS)
	return err
}

// ConfigureLogging maps the silent and verbose switches shared by all
// tools onto the logrus level.
func ConfigureLogging(silent, verbose bool) {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	switch {
	case verbose:
		logrus.SetLevel(logrus.DebugLevel)
	case silent:
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}

func Run() int {
	setupFlags()
	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: benchrun run [flags] <command> [args...]")
		return 1
	}
	ConfigureLogging(silent, verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	r := &Runner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	res, err := r.Measure(ctx, args[0], args[1:]...)
	if err != nil {
		logrus.Error(err)
		return 1
	}

	if err := WriteResult(os.Stdout, res); err != nil {
		logrus.Error(err)
		return 1
	}
	return res.ExitCode
}

func About() string {
	return "run a command and report its time and peak memory"
}

var (
	silent,
	verbose bool
)

func setupFlags() {
	flag.BoolVar(&silent, "s", silent, "silent mode")
	flag.BoolVar(&verbose, "v", verbose, "verbose")
	flag.Parse()
}

func PrintDefaults() {
	setupFlags()
	fmt.Println("benchrun run [flags] <command> [args...]")
	flag.PrintDefaults()
}
