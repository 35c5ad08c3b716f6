// Copyright (c) 2016-2019, Andreas T Jonsson
// All rights reserved.

package workload

// Fib returns the n-th Fibonacci number using naive double recursion.
// Overlapping subproblems are recomputed on purpose; the exponential
// call tree is the workload.
func Fib(n int64) int64 {
	if n < 2 {
		return n
	}
	return Fib(n-1) + Fib(n-2)
}
