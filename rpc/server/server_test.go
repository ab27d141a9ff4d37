// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server_test

import (
	"encoding/hex"
	"net"
	"net/rpc/jsonrpc"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/multihashd/counter"
	"github.com/bitmark-inc/multihashd/fixtures"
	"github.com/bitmark-inc/multihashd/hashing"
	"github.com/bitmark-inc/multihashd/primitive"
	"github.com/bitmark-inc/multihashd/rpc/hash"
	"github.com/bitmark-inc/multihashd/rpc/server"
	"github.com/bitmark-inc/multihashd/worker"
)

func TestCreate(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	log := logger.New(fixtures.LogCategory)
	pool, err := worker.New(log, 1, 0)
	assert.Nil(t, err, "wrong worker.New")
	defer pool.Stop()

	h := hashing.New(log, primitive.NewPortable(), pool, nil)
	count := counter.Counter(0)
	s := server.Create(log, "test", rate.NewLimiter(100, 100), h, hash.NewJobs(time.Minute), pool, &count)

	clientConn, serverConn := net.Pipe()
	go s.ServeCodec(jsonrpc.NewServerCodec(serverConn))

	client := jsonrpc.NewClient(clientConn)
	defer client.Close()

	expected, err := h.K12([]byte("abc"))
	assert.Nil(t, err, "wrong K12")

	var reply hash.DigestReply
	err = client.Call("Hash.K12", &hash.DigestArguments{Input: hex.EncodeToString([]byte("abc"))}, &reply)
	assert.Nil(t, err, "wrong Hash.K12 call")
	assert.Equal(t, expected, reply.Digest, "wrong digest over RPC")

	var info hash.InfoReply
	err = client.Call("Hash.Info", &hash.InfoArguments{}, &info)
	assert.Nil(t, err, "wrong Hash.Info call")
	assert.Equal(t, "test", info.Version, "wrong version")
	assert.Equal(t, primitive.Backend, info.Backend, "wrong backend")
}
