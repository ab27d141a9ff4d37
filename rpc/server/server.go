// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/multihashd/counter"
	"github.com/bitmark-inc/multihashd/hashing"
	"github.com/bitmark-inc/multihashd/rpc/hash"
)

// Create - an RPC server with the Hash service registered
func Create(log *logger.L, version string, limiter *rate.Limiter, hasher *hashing.Hasher, jobs *hash.Jobs, pool hash.Pool, rpcCount *counter.Counter) *rpc.Server {
	start := time.Now().UTC()

	server := rpc.NewServer()
	_ = server.Register(hash.New(log, limiter, start, version, hasher, jobs, pool, rpcCount))

	return server
}
