// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zmqutil

import (
	"strings"
	"time"

	zmq "github.com/pebbe/zmq4"

	"github.com/bitmark-inc/logger"
)

const (
	heartbeatInterval = 15 * time.Second
	heartbeatTimeout  = 60 * time.Second
	heartbeatTTL      = 120 * time.Second
	lingerTime        = 0
)

// NewSignalPair - a connected push/pull pair on an inproc endpoint
//
// the push half belongs to one goroutine, the pull half to the
// goroutine that owns the poller
func NewSignalPair(signal string) (*zmq.Socket, *zmq.Socket, error) {
	push, err := zmq.NewSocket(zmq.PUSH)
	if nil != err {
		return nil, nil, err
	}
	_ = push.SetLinger(lingerTime)
	err = push.Bind(signal)
	if nil != err {
		push.Close()
		return nil, nil, err
	}

	pull, err := zmq.NewSocket(zmq.PULL)
	if nil != err {
		push.Close()
		return nil, nil, err
	}
	_ = pull.SetLinger(lingerTime)
	err = pull.Connect(signal)
	if nil != err {
		push.Close()
		pull.Close()
		return nil, nil, err
	}

	return push, pull, nil
}

// NewBind - one socket bound to every endpoint
//
// with a private key the socket is a CURVE server accepting any
// client key, otherwise traffic is plain
func NewBind(log *logger.L, socketType zmq.Type, zapDomain string, privateKey []byte, publicKey []byte, listen []string) (*zmq.Socket, error) {
	v6 := false
	for _, address := range listen {
		if strings.Contains(address, "[") {
			v6 = true
		}
	}

	socket, err := NewServerSocket(socketType, zapDomain, privateKey, publicKey, v6)
	if nil != err {
		return nil, err
	}

	for i, bindTo := range listen {
		err = socket.Bind(bindTo)
		if nil != err {
			log.Errorf("cannot bind[%d]: %q  error: %s", i, bindTo, err)
			socket.Close()
			return nil, err
		}
		log.Infof("bind[%d]: %q  IPv6: %v", i, bindTo, v6)
	}
	return socket, nil
}

// NewServerSocket - create a socket suitable for a server side connection
func NewServerSocket(socketType zmq.Type, zapDomain string, privateKey []byte, publicKey []byte, v6 bool) (*zmq.Socket, error) {
	socket, err := zmq.NewSocket(socketType)
	if nil != err {
		return nil, err
	}

	if len(privateKey) > 0 {
		zmq.AuthCurveAdd(zapDomain, zmq.CURVE_ALLOW_ANY)

		if err = socket.SetCurveServer(1); nil != err {
			goto failure
		}
		if err = socket.SetCurveSecretkey(string(privateKey)); nil != err {
			goto failure
		}
		if err = socket.SetZapDomain(zapDomain); nil != err {
			goto failure
		}
		if err = socket.SetIdentity(string(publicKey)); nil != err {
			goto failure
		}
	}

	if err = socket.SetIpv6(v6); nil != err {
		goto failure
	}
	if err = socket.SetLinger(lingerTime); nil != err {
		goto failure
	}

	// unroutable replies are dropped silently
	if zmq.ROUTER == socketType {
		if err = socket.SetRouterMandatory(0); nil != err {
			goto failure
		}
	}

	_ = socket.SetHeartbeatIvl(heartbeatInterval)
	_ = socket.SetHeartbeatTimeout(heartbeatTimeout)
	_ = socket.SetHeartbeatTtl(heartbeatTTL)

	return socket, nil

failure:
	socket.Close()
	return nil, err
}
