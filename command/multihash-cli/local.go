// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/multihashd/command/multihash-cli/rpccalls"
	"github.com/bitmark-inc/multihashd/hashing"
	"github.com/bitmark-inc/multihashd/primitive"
	"github.com/bitmark-inc/multihashd/worker"
)

const (
	localLogFile  = "multihash-cli.log"
	localLogSize  = 1048576
	localLogCount = 1
)

// compute in process, async runs on a single worker thread
func localDigest(data *rpccalls.DigestData, async bool) (*digestResult, error) {
	dir, err := ioutil.TempDir("", "multihash-cli")
	if nil != err {
		return nil, err
	}
	defer os.RemoveAll(dir)

	err = logger.Initialise(logger.Configuration{
		Directory: dir,
		File:      localLogFile,
		Size:      localLogSize,
		Count:     localLogCount,
		Levels: map[string]string{
			logger.DefaultTag: "error",
		},
	})
	if nil != err {
		return nil, err
	}
	defer logger.Finalise()

	log := logger.New("local")

	pool, err := worker.New(log, 1, 0)
	if nil != err {
		return nil, err
	}
	defer pool.Stop()

	hasher := hashing.New(log, primitive.Default(), pool, nil)

	args := []interface{}{data.Input}
	if nil != data.Mode {
		args = append(args, data.Mode)
	}

	result := &digestResult{
		Algorithm: data.Algorithm.String(),
		Via:       "local-" + primitive.Backend,
	}

	if !async {
		result.Digest, err = hasher.Call(data.Algorithm, args...)
		if nil != err {
			return nil, err
		}
		return result, nil
	}

	job, err := hasher.CallAsync(data.Algorithm, nil, args...)
	if nil != err {
		return nil, err
	}
	r := job.Wait()
	if nil != r.Err {
		return nil, r.Err
	}
	result.Job = r.Job
	result.Digest = r.Digest
	return result, nil
}
