// Copyright (c) 2016-2019, Andreas T Jonsson
// All rights reserved.

package workload

// Sum adds every integer in [0, n) with an explicit counter.
// The result for n = 100M does not fit in 32 bits.
func Sum(n int64) int64 {
	var sum int64
	var i int64
	for i < n {
		sum += i
		i++
	}
	return sum
}

// Count increments an accumulator n times.
func Count(n int64) int64 {
	var sum int64
	for i := int64(0); i < n; i++ {
		sum++
	}
	return sum
}
