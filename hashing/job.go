// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashing

import (
	"sync/atomic"

	"github.com/bitmark-inc/multihashd/digest"
)

// State - position of a job in its lifecycle
type State int32

// job states, a job only ever moves forward
const (
	Queued State = iota
	Running
	Completed
	Failed
)

func (s State) String() string {
	switch s {
	case Queued:
		return "queued"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result - outcome of one job, Err is nil on success
type Result struct {
	Job    uint64
	Digest digest.Digest
	Err    error
}

// Job - one queued digest computation
type Job struct {
	ID       uint64
	Selector Selector

	state      int32
	input      []byte
	result     Result
	done       chan struct{}
	completion chan<- Result
}

func newJob(id uint64, request Request, completion chan<- Result) *Job {
	input := make([]byte, len(request.Input))
	copy(input, request.Input)

	return &Job{
		ID:         id,
		Selector:   request.Selector,
		state:      int32(Queued),
		input:      input,
		done:       make(chan struct{}),
		completion: completion,
	}
}

// State - current state
func (j *Job) State() State {
	return State(atomic.LoadInt32(&j.state))
}

// Done - closed once the result is available
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait - block until the job finishes
func (j *Job) Wait() Result {
	<-j.done
	return j.result
}

// Result - the result if the job has finished
func (j *Job) Result() (Result, bool) {
	select {
	case <-j.done:
		return j.result, true
	default:
		return Result{}, false
	}
}

func (j *Job) start() {
	atomic.StoreInt32(&j.state, int32(Running))
}

// finish - record the result and notify, must only be called once
func (j *Job) finish(d digest.Digest, err error) {
	j.result = Result{
		Job:    j.ID,
		Digest: d,
		Err:    err,
	}
	j.input = nil

	if nil == err {
		atomic.StoreInt32(&j.state, int32(Completed))
	} else {
		atomic.StoreInt32(&j.state, int32(Failed))
	}

	// a buffered channel with room gets the result before Done closes
	delivered := nil == j.completion
	if !delivered {
		select {
		case j.completion <- j.result:
			delivered = true
		default:
		}
	}
	close(j.done)

	// otherwise a goroutine waits for the reader, it lives until the
	// channel is drained
	if !delivered {
		go func(completion chan<- Result, result Result) {
			completion <- result
		}(j.completion, j.result)
	}
}
