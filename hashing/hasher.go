// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashing

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/multihashd/cache"
	"github.com/bitmark-inc/multihashd/counter"
	"github.com/bitmark-inc/multihashd/digest"
	"github.com/bitmark-inc/multihashd/primitive"
	"github.com/bitmark-inc/multihashd/worker"
)

// Hasher - the entry points of the service
type Hasher struct {
	log        *logger.L
	primitives primitive.Primitives
	executor   worker.Executor
	digests    cache.Cache
	jobs       counter.Jobs
	lastID     counter.Counter
}

// Function - one exported entry point
type Function struct {
	Name      string
	Algorithm Algorithm
	Async     bool
}

// the exported entry points, light async runs the light primitive
var functions = []Function{
	{Name: "cryptonight", Algorithm: Cryptonight},
	{Name: "CNAsync", Algorithm: Cryptonight, Async: true},
	{Name: "cryptonight_light", Algorithm: CryptonightLight},
	{Name: "CNLAsync", Algorithm: CryptonightLight, Async: true},
	{Name: "k12", Algorithm: K12},
	{Name: "K12Async", Algorithm: K12, Async: true},
}

// Functions - list of all entry points
func Functions() []Function {
	f := make([]Function, len(functions))
	copy(f, functions)
	return f
}

// New - create a hasher, digests may be nil to disable memoisation
func New(log *logger.L, primitives primitive.Primitives, executor worker.Executor, digests cache.Cache) *Hasher {
	return &Hasher{
		log:        log,
		primitives: primitives,
		executor:   executor,
		digests:    digests,
	}
}

// Counts - lifecycle totals so far
func (h *Hasher) Counts() counter.JobsSnapshot {
	return h.jobs.Snapshot()
}

// Cryptonight - blocking CryptoNight digest
func (h *Hasher) Cryptonight(args ...interface{}) (digest.Digest, error) {
	return h.Call(Cryptonight, args...)
}

// CryptonightLight - blocking CryptoNight-light digest
func (h *Hasher) CryptonightLight(args ...interface{}) (digest.Digest, error) {
	return h.Call(CryptonightLight, args...)
}

// K12 - blocking KangarooTwelve digest
func (h *Hasher) K12(args ...interface{}) (digest.Digest, error) {
	return h.Call(K12, args...)
}

// CryptonightAsync - queue a CryptoNight digest
func (h *Hasher) CryptonightAsync(completion chan<- Result, args ...interface{}) (*Job, error) {
	return h.CallAsync(Cryptonight, completion, args...)
}

// CryptonightLightAsync - queue a CryptoNight-light digest
func (h *Hasher) CryptonightLightAsync(completion chan<- Result, args ...interface{}) (*Job, error) {
	return h.CallAsync(CryptonightLight, completion, args...)
}

// K12Async - queue a KangarooTwelve digest
func (h *Hasher) K12Async(completion chan<- Result, args ...interface{}) (*Job, error) {
	return h.CallAsync(K12, completion, args...)
}

// Call - validate raw arguments then run on the calling goroutine
func (h *Hasher) Call(algorithm Algorithm, args ...interface{}) (digest.Digest, error) {
	request, err := Validate(algorithm, args...)
	if nil != err {
		h.jobs.Rejected.Increment()
		h.log.Debugf("%s rejected: %s", algorithm, err)
		return digest.Digest{}, err
	}
	return h.Invoke(request)
}

// CallAsync - validate raw arguments then queue, see Submit for the
// completion channel
func (h *Hasher) CallAsync(algorithm Algorithm, completion chan<- Result, args ...interface{}) (*Job, error) {
	request, err := Validate(algorithm, args...)
	if nil != err {
		h.jobs.Rejected.Increment()
		h.log.Debugf("%s async rejected: %s", algorithm, err)
		return nil, err
	}
	return h.Submit(request, completion)
}

// Invoke - run a validated request on the calling goroutine
func (h *Hasher) Invoke(request Request) (digest.Digest, error) {
	h.jobs.Submitted.Increment()
	d, err := h.compute(request.Selector, request.Input)
	h.account(err)
	return d, err
}

// Submit - queue a validated request
//
// the input is copied, so the caller may reuse its buffer as soon as
// Submit returns; if completion is not nil exactly one Result is sent
// to it once the job finishes
//
// completion should be buffered: a full or unbuffered channel is sent
// to from a separate goroutine, which only exits when the Result is
// received, so a channel that is never read leaks that goroutine
func (h *Hasher) Submit(request Request, completion chan<- Result) (*Job, error) {
	job := newJob(h.lastID.Increment(), request, completion)

	h.jobs.Submitted.Increment()
	err := h.executor.Enqueue(func() {
		h.run(job)
	})
	if nil != err {
		h.jobs.Submitted.Decrement()
		h.jobs.Rejected.Increment()
		h.log.Warnf("job: %d not queued: %s", job.ID, err)
		return nil, err
	}

	h.log.Debugf("job: %d queued: %s  input length: %d", job.ID, job.Selector, len(request.Input))
	return job, nil
}

func (h *Hasher) run(job *Job) {
	job.start()
	d, err := h.compute(job.Selector, job.input)
	h.account(err)
	if nil != err {
		h.log.Warnf("job: %d failed: %s", job.ID, err)
	} else {
		h.log.Debugf("job: %d digest: %s", job.ID, d)
	}
	job.finish(d, err)
}

func (h *Hasher) compute(selector Selector, input []byte) (digest.Digest, error) {
	if nil == h.digests {
		return dispatch(h.primitives, selector, input)
	}

	key := cache.NewKey(selector.String(), input)
	if d, ok := h.digests.Get(key); ok {
		h.jobs.CacheHits.Increment()
		return d, nil
	}

	d, err := dispatch(h.primitives, selector, input)
	if nil == err {
		h.digests.Put(key, d)
	}
	return d, err
}

func (h *Hasher) account(err error) {
	if nil == err {
		h.jobs.Completed.Increment()
	} else {
		h.jobs.Failed.Increment()
	}
}
