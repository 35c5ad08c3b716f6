// Copyright (c) 2016-2019, Andreas T Jonsson
// All rights reserved.

package workload

import (
	"fmt"
	"io"
)

const (
	FibN  = 40
	LoopN = 100000000
)

// Expected is the exact output of Report.
const Expected = "Fibonacci(40):\n102334155\n\nLoop 100M iterations:\n4999999950000000\n"

// Report runs Fib(FibN) and then Sum(LoopN), writing each result to w
// under its header as soon as it is known.
func Report(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Fibonacci(%d):\n", FibN); err != nil {
		return fmt.Errorf("failed to write fibonacci header: %w", err)
	}
	if _, err := fmt.Fprintln(w, Fib(FibN)); err != nil {
		return fmt.Errorf("failed to write fibonacci result: %w", err)
	}

	if _, err := fmt.Fprintf(w, "\nLoop %dM iterations:\n", LoopN/1000000); err != nil {
		return fmt.Errorf("failed to write loop header: %w", err)
	}
	if _, err := fmt.Fprintln(w, Sum(LoopN)); err != nil {
		return fmt.Errorf("failed to write loop result: %w", err)
	}
	return nil
}
