// Copyright (c) 2016-2019, Andreas T Jonsson
// All rights reserved.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gopherc/fibloop/workload"
)

var (
	iterations int64 = 1000000
	cpuProfile string
)

func main() {
	flag.Int64Var(&iterations, "n", iterations, "loop iterations")
	flag.StringVar(&cpuProfile, "cpuprofile", "", "write a CPU profile of the loop to `file`")
	flag.Parse()

	os.Exit(run(os.Stdout, iterations, cpuProfile))
}

// run returns the exit code so the profile is flushed on every path.
func run(w io.Writer, n int64, profile string) int {
	if profile != "" {
		f, err := os.Create(profile)
		if err != nil {
			logrus.Error(err)
			return 1
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			logrus.Error(err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	if _, err := measure(w, n); err != nil {
		logrus.Error(err)
		return 1
	}
	return 0
}

// measure times Count(n) and prints the elapsed milliseconds.
func measure(w io.Writer, n int64) (time.Duration, error) {
	t := time.Now()
	if got := workload.Count(n); got != n {
		return 0, fmt.Errorf("loop counted %d, want %d", got, n)
	}
	elapsed := time.Since(t)

	ms := float64(elapsed) / float64(time.Millisecond)
	if _, err := fmt.Fprintf(w, "Go Native   : %.4f ms\n", ms); err != nil {
		return elapsed, err
	}
	return elapsed, nil
}
