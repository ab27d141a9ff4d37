// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"encoding/hex"
	"time"

	"github.com/bitmark-inc/multihashd/digest"
	"github.com/bitmark-inc/multihashd/fault"
	"github.com/bitmark-inc/multihashd/hashing"
	"github.com/bitmark-inc/multihashd/rpc/hash"
)

// DigestData - one digest request
//
// Mode is nil for the default, a bool for fast or a variant number
type DigestData struct {
	Algorithm hashing.Algorithm
	Input     []byte
	Mode      interface{}
}

func (d *DigestData) arguments() hash.DigestArguments {
	return hash.DigestArguments{
		Input: hex.EncodeToString(d.Input),
		Mode:  d.Mode,
	}
}

// Digest - synchronous digest on the server
func (client *Client) Digest(data *DigestData) (digest.Digest, error) {
	method := ""
	switch data.Algorithm {
	case hashing.Cryptonight:
		method = "Hash.Cryptonight"
	case hashing.CryptonightLight:
		method = "Hash.CryptonightLight"
	case hashing.K12:
		method = "Hash.K12"
	default:
		return digest.Digest{}, fault.InvalidAlgorithm
	}

	args := data.arguments()
	client.printJson(method+" Request", args)

	var reply hash.DigestReply
	if err := client.client.Call(method, &args, &reply); err != nil {
		return digest.Digest{}, err
	}

	client.printJson(method+" Reply", reply)
	return reply.Digest, nil
}

// Submit - queue a digest on the server and return its job id
func (client *Client) Submit(data *DigestData) (uint64, error) {
	d := data.arguments()
	args := hash.SubmitArguments{
		Algorithm: data.Algorithm.String(),
		Input:     d.Input,
		Mode:      d.Mode,
	}
	client.printJson("Submit Request", args)

	var reply hash.SubmitReply
	if err := client.client.Call("Hash.Submit", &args, &reply); err != nil {
		return 0, err
	}

	client.printJson("Submit Reply", reply)
	return reply.Job, nil
}

// Result - poll a job once
func (client *Client) Result(job uint64) (*hash.ResultReply, error) {
	args := hash.ResultArguments{
		Job: job,
	}
	client.printJson("Result Request", args)

	var reply hash.ResultReply
	if err := client.client.Call("Hash.Result", &args, &reply); err != nil {
		return nil, err
	}

	client.printJson("Result Reply", reply)
	return &reply, nil
}

// Wait - poll a job until it finishes or timeout passes
func (client *Client) Wait(job uint64, interval time.Duration, timeout time.Duration) (*hash.ResultReply, error) {
	deadline := time.Now().Add(timeout)
	for {
		reply, err := client.Result(job)
		if nil != err {
			return nil, err
		}
		if nil != reply.Digest || "" != reply.Error {
			return reply, nil
		}
		if time.Now().After(deadline) {
			return reply, fault.JobTimeout
		}
		time.Sleep(interval)
	}
}
