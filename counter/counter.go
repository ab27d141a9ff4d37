// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package counter

import (
	"sync/atomic"
)

// Counter - a 64 bit unsigned value that can be changed from any goroutine
type Counter uint64

// Increment - add 1 to a counter, returns new value
func (c *Counter) Increment() uint64 {
	return atomic.AddUint64((*uint64)(c), 1)
}

// Decrement - subtract 1 from a counter, returns new value
func (c *Counter) Decrement() uint64 {
	return atomic.AddUint64((*uint64)(c), ^uint64(0))
}

// Uint64 - returns current value
func (c *Counter) Uint64() uint64 {
	return atomic.LoadUint64((*uint64)(c))
}

// Jobs - lifecycle totals of hashing requests
//
// every request ends in exactly one of Rejected, Completed or Failed;
// Submitted counts only the requests that passed validation
type Jobs struct {
	Submitted Counter
	Completed Counter
	Failed    Counter
	Rejected  Counter
	CacheHits Counter
}

// JobsSnapshot - a copy of the totals at one instant
type JobsSnapshot struct {
	Submitted uint64 `json:"submitted"`
	Completed uint64 `json:"completed"`
	Failed    uint64 `json:"failed"`
	Rejected  uint64 `json:"rejected"`
	CacheHits uint64 `json:"cacheHits"`
}

// Snapshot - read all totals
func (j *Jobs) Snapshot() JobsSnapshot {
	return JobsSnapshot{
		Submitted: j.Submitted.Uint64(),
		Completed: j.Completed.Uint64(),
		Failed:    j.Failed.Uint64(),
		Rejected:  j.Rejected.Uint64(),
		CacheHits: j.CacheHits.Uint64(),
	}
}

// Pending - submitted jobs that have not yet finished
func (s JobsSnapshot) Pending() uint64 {
	return s.Submitted - s.Completed - s.Failed
}
