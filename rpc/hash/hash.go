// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hash

import (
	"encoding/hex"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/multihashd/counter"
	"github.com/bitmark-inc/multihashd/digest"
	"github.com/bitmark-inc/multihashd/fault"
	"github.com/bitmark-inc/multihashd/hashing"
	"github.com/bitmark-inc/multihashd/primitive"
	"github.com/bitmark-inc/multihashd/rpc/ratelimit"
)

// each started block of input costs one rate token
const rateBlockSize = 4096

// Pool - worker pool state reported by Info
type Pool interface {
	Threads() int
	Queued() int
	Busy() uint64
}

// Hash - type for RPC calls
type Hash struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	hasher  *hashing.Hasher
	jobs    *Jobs
	pool    Pool
	counter *counter.Counter
}

// New - create the RPC service
func New(log *logger.L, limiter *rate.Limiter, start time.Time, version string, hasher *hashing.Hasher, jobs *Jobs, pool Pool, counter *counter.Counter) *Hash {
	return &Hash{
		Log:     log,
		Limiter: limiter,
		Start:   start,
		Version: version,
		hasher:  hasher,
		jobs:    jobs,
		pool:    pool,
		counter: counter,
	}
}

// ---

// DigestArguments - hex input and an optional mode
//
// mode is a boolean (fast) or, for cryptonight-light only, a
// variant number
type DigestArguments struct {
	Input string      `json:"input"`
	Mode  interface{} `json:"mode"`
}

// DigestReply - result from a synchronous digest
type DigestReply struct {
	Digest digest.Digest `json:"digest"`
}

// Cryptonight - compute a CryptoNight digest
func (h *Hash) Cryptonight(arguments *DigestArguments, reply *DigestReply) error {
	return h.digest(hashing.Cryptonight, arguments, reply)
}

// CryptonightLight - compute a CryptoNight-light digest
func (h *Hash) CryptonightLight(arguments *DigestArguments, reply *DigestReply) error {
	return h.digest(hashing.CryptonightLight, arguments, reply)
}

// K12 - compute a KangarooTwelve digest
func (h *Hash) K12(arguments *DigestArguments, reply *DigestReply) error {
	return h.digest(hashing.K12, arguments, reply)
}

func (h *Hash) digest(algorithm hashing.Algorithm, arguments *DigestArguments, reply *DigestReply) error {
	if nil == arguments {
		return fault.MissingParameters
	}

	if err := ratelimit.LimitBytes(h.Limiter, len(arguments.Input)/2, rateBlockSize); nil != err {
		return err
	}

	args, err := callArguments(arguments.Input, arguments.Mode)
	if nil != err {
		return err
	}

	d, err := h.hasher.Call(algorithm, args...)
	if nil != err {
		return err
	}

	h.Log.Debugf("%s: digest: %s", algorithm, d)
	reply.Digest = d
	return nil
}

// ---

// SubmitArguments - queue a digest
type SubmitArguments struct {
	Algorithm string      `json:"algorithm"`
	Input     string      `json:"input"`
	Mode      interface{} `json:"mode"`
}

// SubmitReply - handle for polling the result
type SubmitReply struct {
	Job uint64 `json:"job,string"`
}

// Submit - validate and queue a digest, poll with Result
func (h *Hash) Submit(arguments *SubmitArguments, reply *SubmitReply) error {
	if nil == arguments {
		return fault.MissingParameters
	}

	if err := ratelimit.LimitBytes(h.Limiter, len(arguments.Input)/2, rateBlockSize); nil != err {
		return err
	}

	algorithm, err := hashing.ParseAlgorithm(arguments.Algorithm)
	if nil != err {
		return err
	}

	args, err := callArguments(arguments.Input, arguments.Mode)
	if nil != err {
		return err
	}

	job, err := h.hasher.CallAsync(algorithm, nil, args...)
	if nil != err {
		return err
	}
	h.jobs.Add(job)

	h.Log.Debugf("job: %d submitted: %s", job.ID, job.Selector)
	reply.Job = job.ID
	return nil
}

// ---

// ResultArguments - the job to query
type ResultArguments struct {
	Job uint64 `json:"job,string"`
}

// ResultReply - state of a job, digest or error once finished
type ResultReply struct {
	Job    uint64         `json:"job,string"`
	State  string         `json:"state"`
	Digest *digest.Digest `json:"digest,omitempty"`
	Error  string         `json:"error,omitempty"`
	Class  string         `json:"class,omitempty"`
}

// Result - poll a submitted job, finished jobs are forgotten once read
func (h *Hash) Result(arguments *ResultArguments, reply *ResultReply) error {
	if nil == arguments {
		return fault.MissingParameters
	}

	if err := ratelimit.Limit(h.Limiter); nil != err {
		return err
	}

	job, ok := h.jobs.Get(arguments.Job)
	if !ok {
		return fault.JobNotFound
	}

	reply.Job = job.ID

	result, done := job.Result()
	if !done {
		reply.State = job.State().String()
		return nil
	}
	h.jobs.Remove(job.ID)

	reply.State = job.State().String()
	if nil != result.Err {
		reply.Error = result.Err.Error()
		reply.Class = fault.Class(result.Err)
		return nil
	}
	d := result.Digest
	reply.Digest = &d
	return nil
}

// ---

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Version  string               `json:"version"`
	Backend  string               `json:"backend"`
	Missing  []string             `json:"unavailable"`
	Uptime   string               `json:"uptime"`
	RPCs     uint64               `json:"rpcs"`
	Threads  int                  `json:"threads"`
	Queued   int                  `json:"queued"`
	Busy     uint64               `json:"busy"`
	Pending  int                  `json:"pendingResults"`
	Counters counter.JobsSnapshot `json:"counters"`
}

// Info - return service status
func (h *Hash) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(h.Limiter); nil != err {
		return err
	}

	reply.Version = h.Version
	reply.Backend = primitive.Backend
	reply.Missing = primitive.Unavailable
	reply.Uptime = time.Since(h.Start).String()
	if nil != h.counter {
		reply.RPCs = h.counter.Uint64()
	}
	if nil != h.pool {
		reply.Threads = h.pool.Threads()
		reply.Queued = h.pool.Queued()
		reply.Busy = h.pool.Busy()
	}
	reply.Pending = h.jobs.Count()
	reply.Counters = h.hasher.Counts()
	return nil
}

// convert wire arguments to the raw form the validator expects
func callArguments(input string, mode interface{}) ([]interface{}, error) {
	buffer, err := hex.DecodeString(input)
	if nil != err {
		return nil, fault.InvalidHexInput
	}
	if nil == buffer {
		buffer = []byte{}
	}

	if nil == mode {
		return []interface{}{buffer}, nil
	}
	return []interface{}{buffer, mode}, nil
}
