// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/tls"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/multihashd/counter"
	"github.com/bitmark-inc/multihashd/fault"
	"github.com/bitmark-inc/multihashd/hashing"
	"github.com/bitmark-inc/multihashd/rpc/certificate"
	"github.com/bitmark-inc/multihashd/rpc/hash"
	"github.com/bitmark-inc/multihashd/rpc/listeners"
	"github.com/bitmark-inc/multihashd/rpc/ratelimit"
	"github.com/bitmark-inc/multihashd/rpc/server"
)

const (
	tlsName = "client_rpc"
)

// Configuration - configuration file data for RPC setup
//
// Certificate and PrivateKey hold PEM data, leave both empty for
// plain TCP; ResultExpiry is how long a submitted job can be polled
type Configuration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	RequestRate        float64  `gluamapper:"request_rate" json:"request_rate"`
	RequestBurst       int      `gluamapper:"request_burst" json:"request_burst"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
	ResultExpiry       string   `gluamapper:"result_expiry" json:"result_expiry"`
}

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listener listeners.Listener
	limiter  *rate.Limiter

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// number of open client connections
var connectionCountRPC counter.Counter

// Initialise - start the listeners
func Initialise(configuration *Configuration, hasher *hashing.Hasher, pool hash.Pool, version string) error {
	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	if 0 == len(configuration.Listen) {
		log.Info("disabled: no listen addresses")
		globalData.initialised = true
		return nil
	}

	var tlsConfig *tls.Config
	if "" != configuration.Certificate || "" != configuration.PrivateKey {
		var err error
		tlsConfig, _, err = certificate.Get(log, tlsName, configuration.Certificate, configuration.PrivateKey)
		if nil != err {
			return err
		}
	}

	expiry := time.Duration(0)
	if "" != configuration.ResultExpiry {
		var err error
		expiry, err = time.ParseDuration(configuration.ResultExpiry)
		if nil != err {
			log.Errorf("invalid result expiry: %q  error: %s", configuration.ResultExpiry, err)
			return err
		}
	}

	globalData.limiter = ratelimit.New(configuration.RequestRate, configuration.RequestBurst)

	listenerConfiguration := listeners.RPCConfiguration{
		MaximumConnections: configuration.MaximumConnections,
		Listen:             configuration.Listen,
	}
	rpcListener, err := listeners.NewRPC(
		&listenerConfiguration,
		log,
		&connectionCountRPC,
		server.Create(log, version, globalData.limiter, hasher, hash.NewJobs(expiry), pool, &connectionCountRPC),
		tlsConfig,
	)
	if nil != err {
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		return err
	}
	globalData.listener = rpcListener

	// all data initialised
	globalData.initialised = true

	return nil
}

// SetRateLimit - change the request rate of the running service
func SetRateLimit(limit float64, burst int) {
	globalData.RLock()
	defer globalData.RUnlock()

	if nil == globalData.limiter {
		return
	}
	ratelimit.Update(globalData.limiter, limit, burst)
	globalData.log.Infof("rate limit: %v/s  burst: %d", globalData.limiter.Limit(), globalData.limiter.Burst())
}

// Finalise - stop all listeners
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	if nil != globalData.listener {
		globalData.listener.Stop()
		globalData.listener = nil
	}
	globalData.limiter = nil

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}
