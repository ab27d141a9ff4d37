// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/multihashd/cache"
	"github.com/bitmark-inc/multihashd/worker"
)

const (
	configReaderLoggerPrefix = "config-reader"
)

// anything whose thread count can change while running
type resizer interface {
	Resize(threads int) error
}

// ConfigReader - re-reads the configuration file after each change
// event and applies the settings that can change while running
//
// only max_cpu_usage, client_rpc request limits and the digest
// cache follow a reload, everything else needs a restart
type ConfigReader struct {
	sync.RWMutex

	fileName     string
	log          *logger.L
	current      *Configuration
	channels     WatcherChannel
	pool         resizer
	digests      cache.Cache
	setRateLimit func(limit float64, burst int)
	threadCount  func(maxCPUUsage int) int
}

func newConfigReader(fileName string, current *Configuration, channels WatcherChannel, log *logger.L) *ConfigReader {
	return &ConfigReader{
		fileName:    fileName,
		log:         log,
		current:     current,
		channels:    channels,
		threadCount: worker.ThreadCount,
	}
}

// SetTargets - the running components a reload adjusts, digests may
// be nil when caching is disabled
func (c *ConfigReader) SetTargets(pool resizer, digests cache.Cache, setRateLimit func(float64, int)) {
	c.Lock()
	defer c.Unlock()

	c.pool = pool
	c.digests = digests
	c.setRateLimit = setRateLimit
}

// GetConfig - the configuration last applied
func (c *ConfigReader) GetConfig() *Configuration {
	c.RLock()
	defer c.RUnlock()
	return c.current
}

// Refresh - parse the file and apply it, the running configuration
// is kept when the file does not parse
func (c *ConfigReader) Refresh() error {
	configuration, err := getConfiguration(c.fileName)
	if nil != err {
		c.log.Errorf("failed to read configuration from: %q  error: %s", c.fileName, err)
		return err
	}
	c.update(configuration)
	return nil
}

func (c *ConfigReader) update(next *Configuration) {
	c.Lock()
	defer c.Unlock()

	previous := c.current
	c.current = next

	if nil != c.pool && (nil == previous || previous.MaxCPUUsage != next.MaxCPUUsage) {
		threads := c.threadCount(next.MaxCPUUsage)
		err := c.pool.Resize(threads)
		if nil != err {
			c.log.Errorf("resize to: %d threads error: %s", threads, err)
		} else {
			c.log.Infof("max cpu usage: %d%%  threads: %d", next.MaxCPUUsage, threads)
		}
	}

	if nil != c.setRateLimit {
		c.setRateLimit(next.ClientRPC.RequestRate, next.ClientRPC.RequestBurst)
	}

	if nil != c.digests {
		c.log.Debugf("flush %d cached digests", c.digests.Count())
		c.digests.Flush()
	}
}

// Run - apply change events until shutdown
func (c *ConfigReader) Run(args interface{}, shutdown <-chan struct{}) {
	log := c.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case <-c.channels.change:
			delay := c.GetConfig().reloadDelay()
			log.Debugf("file change event, wait: %s", delay)

			// let an editor finish writing
			select {
			case <-time.After(delay):
			case <-shutdown:
				break loop
			}
			_ = c.Refresh()

		case <-c.channels.remove:
			log.Warnf("config file: %q removed, keeping running configuration", c.fileName)
		}
	}

	log.Info("stopped")
}
