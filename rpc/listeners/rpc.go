// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"strings"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/multihashd/counter"
	"github.com/bitmark-inc/multihashd/fault"
)

const (
	logName            = "client_rpc"
	minConnectionCount = 1
)

// Listener - accepts JSON-RPC connections until stopped
type Listener interface {
	Serve() error
	Stop()
}

// RPCConfiguration - where to listen and how many clients to accept
type RPCConfiguration struct {
	MaximumConnections uint64
	Listen             []string
}

type rpcListener struct {
	sync.Mutex
	log             *logger.L
	listeners       []net.Listener
	count           *counter.Counter
	server          *rpc.Server
	maxConnections  uint64
	tlsConfig       *tls.Config
	ipType          []string
	listenIPAndPort []string
	stopping        bool
	wg              sync.WaitGroup
}

// NewRPC - validate the configuration and prepare a listener
//
// tlsConfig may be nil for plain TCP
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	tlsConfig *tls.Config,
) (Listener, error) {
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}

	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.MissingParameters
	}

	listen := make([]string, len(configuration.Listen))
	copy(listen, configuration.Listen)

	ipType, err := parseListenAddress(listen, log)
	if nil != err {
		return nil, err
	}

	return &rpcListener{
		log:             log,
		maxConnections:  configuration.MaximumConnections,
		listenIPAndPort: listen,
		ipType:          ipType,
		server:          server,
		count:           count,
		tlsConfig:       tlsConfig,
	}, nil
}

func (r *rpcListener) Serve() error {
	r.Lock()
	defer r.Unlock()

	for i, listen := range r.listenIPAndPort {
		r.log.Infof("starting RPC server: %s  tls: %t", listen, nil != r.tlsConfig)

		var l net.Listener
		var err error
		if nil == r.tlsConfig {
			l, err = net.Listen(r.ipType[i], listen)
		} else {
			l, err = tls.Listen(r.ipType[i], listen, r.tlsConfig)
		}
		if err != nil {
			r.log.Errorf("rpc server listen error: %s", err)
			r.closeAll()
			return err
		}
		r.listeners = append(r.listeners, l)

		r.wg.Add(1)
		go r.accept(l)
	}
	return nil
}

// Stop - close all listening sockets, open connections are left to
// finish their current request
func (r *rpcListener) Stop() {
	r.Lock()
	r.stopping = true
	r.closeAll()
	r.Unlock()

	r.wg.Wait()
	r.log.Info("RPC listeners stopped")
}

// must hold lock
func (r *rpcListener) closeAll() {
	for _, l := range r.listeners {
		_ = l.Close()
	}
	r.listeners = nil
}

func (r *rpcListener) accept(listen net.Listener) {
	defer r.wg.Done()

	for {
		conn, err := listen.Accept()
		if err != nil {
			r.Lock()
			stopping := r.stopping
			r.Unlock()
			if !stopping {
				r.log.Errorf("rpc.server terminated: accept error: %s", err)
			}
			break
		}
		if r.count.Increment() <= r.maxConnections {
			go func() {
				r.server.ServeCodec(jsonrpc.NewServerCodec(conn))
				_ = conn.Close()
				r.count.Decrement()
			}()
		} else {
			r.count.Decrement()
			_ = conn.Close()
		}
	}
	_ = listen.Close()
}

// "*:PORT" listens on tcp4 and tcp6, "[v6]:PORT" on tcp6 only
func parseListenAddress(addrs []string, log *logger.L) ([]string, error) {
	parsed := make([]string, len(addrs))
	for i, listen := range addrs {
		if "" == listen {
			log.Errorf("rpc server listen error: %s", fault.InvalidIpAddress)
			return nil, fault.InvalidIpAddress
		}

		host, _, err := net.SplitHostPort(listen)
		if nil != err {
			log.Errorf("rpc server listen: %q  error: %s", listen, err)
			return nil, fault.InvalidIpAddress
		}

		switch {
		case "*" == host:
			addrs[i] = "[::]" + ":" + strings.Split(listen, ":")[1]
			host = "::"
			parsed[i] = "tcp"
		case '[' == listen[0]:
			parsed[i] = "tcp6"
		default:
			parsed[i] = "tcp4"
		}

		if ip := net.ParseIP(host); nil == ip {
			err := fault.InvalidIpAddress
			log.Errorf("rpc server listen error: %s", err)
			return nil, err
		}
	}

	return parsed, nil
}
