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

// Package suite builds benchmark programs, runs them and checks that they
// print exactly what they are supposed to.
package suite

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gopherc/fibloop/cmd/benchrun/run"
	"github.com/gopherc/fibloop/workload"
)

// Case is a buildable program and the exact output it must produce.
type Case struct {
	Name     string
	Package  string
	Args     []string
	Expected string
}

// DefaultCases is what the suite tool runs.
var DefaultCases = []Case{
	{Name: "fibloop", Package: "./cmd/fibloop", Expected: workload.Expected},
}

// Outcome holds the measured runs of one case.
type Outcome struct {
	Case   Case
	Runs   []run.Result
	Output string
}

// MismatchError reports a run whose output was not the expected one.
type MismatchError struct {
	Case   string
	Run    int
	Reason string
	Want   string
	Got    string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: run %d: %s\nwant:\n%s\ngot:\n%s", e.Case, e.Run, e.Reason, e.Want, e.Got)
}

// Driver builds cases with GoBin from Dir and runs each Count times.
type Driver struct {
	GoBin string
	Dir   string
	Count int
}

// Run builds c into a temporary directory and runs it. Every run must exit
// cleanly and print the same output, and that output must equal c.Expected.
func (s *Driver) Run(ctx context.Context, c Case) (*Outcome, error) {
	tmp, err := ioutil.TempDir("", "benchrun")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmp)

	var suffix = ""
	if runtime.GOOS == "windows" {
		suffix = ".exe"
	}
	output := filepath.Join(tmp, c.Name+suffix)

	logrus.WithField("case", c.Name).Info("Building...")
	if err := Build(ctx, s.GoBin, s.Dir, c.Package, output); err != nil {
		return nil, fmt.Errorf("failed to build %s: %w", c.Name, err)
	}

	count := s.Count
	if count < 1 {
		count = 1
	}

	outcome := &Outcome{Case: c}
	var outputs []string
	for i := 0; i < count; i++ {
		var stdout, stderr bytes.Buffer
		r := &run.Runner{Dir: s.Dir, Stdout: &stdout, Stderr: &stderr}

		res, err := r.Measure(ctx, output, c.Args...)
		if err != nil {
			return outcome, err
		}
		if res.ExitCode != 0 {
			return outcome, fmt.Errorf("%s: run %d: exit status %d: %s", c.Name, i+1, res.ExitCode, stderr.String())
		}

		logrus.WithFields(logrus.Fields{"case": c.Name, "run": i + 1}).Debug(res.Elapsed)
		outcome.Runs = append(outcome.Runs, *res)
		outputs = append(outputs, stdout.String())
	}
	outcome.Output = outputs[0]

	return outcome, verify(c, outputs)
}

func verify(c Case, outputs []string) error {
	for i := 1; i < len(outputs); i++ {
		if outputs[i] != outputs[0] {
			return &MismatchError{Case: c.Name, Run: i + 1, Reason: "output differs from first run", Want: outputs[0], Got: outputs[i]}
		}
	}
	if len(outputs) > 0 && outputs[0] != c.Expected {
		return &MismatchError{Case: c.Name, Run: 1, Reason: "unexpected output", Want: c.Expected, Got: outputs[0]}
	}
	return nil
}

// Build compiles pkg into output. On failure the compiler's stderr is the
// error text.
func Build(ctx context.Context, goBin, dir, pkg, output string) error {
	logrus.WithField("dir", dir).Debug(goBin, " build -o ", output, " ", pkg)

	cmd := exec.CommandContext(ctx, goBin, "build", "-o", output, pkg)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	cmd.Dir = dir
	if err := cmd.Start(); err != nil {
		return err
	}

	slurp, err := ioutil.ReadAll(stderr)
	if err != nil {
		return err
	}

	if err := cmd.Wait(); err != nil {
		if len(slurp) == 0 {
			return err
		}
		return errors.New(string(slurp))
	}
	return nil
}

func Suite() int {
	setupFlags()
	run.ConfigureLogging(silent, verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	d := &Driver{GoBin: goBin, Dir: dir, Count: count}
	return runCases(ctx, os.Stdout, d, DefaultCases)
}

// runCases stops at the first failing case and returns -1 for it.
func runCases(ctx context.Context, w io.Writer, d *Driver, cases []Case) int {
	for _, c := range cases {
		outcome, err := d.Run(ctx, c)
		if outcome != nil {
			if werr := writeOutcome(w, outcome); werr != nil {
				logrus.Error(werr)
				return -1
			}
		}
		if err != nil {
			logrus.Error(err)
			return -1
		}
	}
	return 0
}

// writeOutcome prints one line per measured run.
func writeOutcome(w io.Writer, outcome *Outcome) error {
	for _, res := range outcome.Runs {
		if _, err := fmt.Fprintf(w, "[go] %s: %v (%d KB)\n", outcome.Case.Name, res.Elapsed.Round(time.Millisecond), res.PeakRSS); err != nil {
			return err
		}
	}
	return nil
}

func About() string {
	return "build, run and verify the benchmark programs"
}

var (
	goBin = os.Getenv("GO")
	dir   = "."
	count = 1

	silent,
	verbose bool
)

func setupFlags() {
	if goBin == "" {
		goBin = "go"
	}

	flag.StringVar(&goBin, "go", goBin, "Go command used to build (GO)")
	flag.StringVar(&dir, "dir", dir, "module root the packages are built from")
	flag.IntVar(&count, "count", count, "runs per program")
	flag.BoolVar(&silent, "s", silent, "silent mode")
	flag.BoolVar(&verbose, "v", verbose, "verbose")
	flag.Parse()
}

func PrintDefaults() {
	setupFlags()
	fmt.Println("benchrun suite [flags]")
	flag.PrintDefaults()
}
