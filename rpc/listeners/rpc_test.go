// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/multihashd/counter"
	"github.com/bitmark-inc/multihashd/fault"
	"github.com/bitmark-inc/multihashd/fixtures"
	"github.com/bitmark-inc/multihashd/rpc/certificate"
	"github.com/bitmark-inc/multihashd/rpc/listeners"
)

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func newServer(t *testing.T) *rpc.Server {
	s := rpc.NewServer()
	err := s.Register(Add{})
	if err != nil {
		t.Fatalf("register with error: %s", err)
	}
	return s
}

func TestRpcListenerServeTLS(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	port := rand.Intn(30000) + 30000
	listen := fmt.Sprintf("127.0.0.1:%d", port)
	con := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{listen},
	}

	count := counter.Counter(0)

	cer, key, err := certificate.SelfSigned("test", nil)
	assert.Nil(t, err, "wrong SelfSigned")
	tlsCertificate, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", string(cer), string(key))
	assert.Nil(t, err, "wrong Get")

	l, err := listeners.NewRPC(&con, logger.New(fixtures.LogCategory), &count, newServer(t), tlsCertificate)
	assert.Nil(t, err, "wrong NewRPC")

	err = l.Serve()
	assert.Nil(t, err, "wrong Serve")
	defer l.Stop()

	c, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	if err != nil {
		t.Fatalf("dial with error: %s", err)
	}

	arg := AddArg{
		A: 2,
		B: 5,
	}
	var reply int

	client := jsonrpc.NewClient(c)
	defer client.Close()

	err = client.Call("Add.Add", &arg, &reply)
	assert.Nil(t, err, "wrong client Call")
	assert.Equal(t, arg.A+arg.B, reply, "wrong result")
}

func TestRpcListenerServePlain(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	port := rand.Intn(30000) + 30000
	listen := fmt.Sprintf("127.0.0.1:%d", port)
	con := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Listen:             []string{listen},
	}

	count := counter.Counter(0)

	l, err := listeners.NewRPC(&con, logger.New(fixtures.LogCategory), &count, newServer(t), nil)
	assert.Nil(t, err, "wrong NewRPC")
	assert.Nil(t, l.Serve(), "wrong Serve")

	c, err := net.Dial("tcp", listen)
	if err != nil {
		t.Fatalf("dial with error: %s", err)
	}
	client := jsonrpc.NewClient(c)

	var reply int
	err = client.Call("Add.Add", &AddArg{A: 3, B: 4}, &reply)
	assert.Nil(t, err, "wrong client Call")
	assert.Equal(t, 7, reply, "wrong result")
	client.Close()

	l.Stop()

	_, err = net.Dial("tcp", listen)
	assert.NotNil(t, err, "listener still open after stop")
}

func TestRpcListenerInvalidConfiguration(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	count := counter.Counter(0)
	s := rpc.NewServer()

	tests := []struct {
		configuration listeners.RPCConfiguration
		err           error
	}{
		{listeners.RPCConfiguration{MaximumConnections: 0, Listen: []string{"127.0.0.1:1234"}}, fault.MissingParameters},
		{listeners.RPCConfiguration{MaximumConnections: 1, Listen: []string{}}, fault.MissingParameters},
		{listeners.RPCConfiguration{MaximumConnections: 1, Listen: []string{"1"}}, fault.InvalidIpAddress},
		{listeners.RPCConfiguration{MaximumConnections: 1, Listen: []string{"host.domain:1234"}}, fault.InvalidIpAddress},
		{listeners.RPCConfiguration{MaximumConnections: 1, Listen: []string{"*:1234"}}, nil},
		{listeners.RPCConfiguration{MaximumConnections: 1, Listen: []string{"[::1]:1234"}}, nil},
	}

	for i, item := range tests {
		_, err := listeners.NewRPC(&item.configuration, logger.New(fixtures.LogCategory), &count, s, nil)
		assert.Equal(t, item.err, err, "%d: wrong error", i)
	}
}
